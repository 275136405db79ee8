// Package calendar pushes dated tasks to Google Calendar.
//
// Every Deadline and Event that is not done becomes one calendar event.
// The event carries a private extended property holding a stable ID
// derived from the task, so a later sync patches the same event instead
// of creating a duplicate.
package calendar

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	gcal "google.golang.org/api/calendar/v3"

	"github.com/nibzard/sam-go/internal/task"
)

// PropertyKey names the private extended property holding the task ID.
const PropertyKey = "sam_id"

// namespace seeds the name-based task IDs.
var namespace = uuid.MustParse("6f1c9a52-3a8e-4d4b-9a57-2d6c1f0e8b11")

// ErrNotSchedulable is returned for tasks without a date.
var ErrNotSchedulable = errors.New("task has no date to schedule")

// TaskID returns a stable ID for t that ignores its done state. Tasks
// with the same kind, description and dates share an ID.
func TaskID(t task.Task) string {
	name := string(t.Kind()) + task.Delimiter + t.Description()
	switch t.Kind() {
	case task.KindDeadline:
		name += task.Delimiter + task.FormatDateTime(t.By())
	case task.KindEvent:
		name += task.Delimiter + task.FormatDateTime(t.From()) + task.Delimiter + task.FormatDateTime(t.To())
	}
	return uuid.NewSHA1(namespace, []byte(name)).String()
}

// ToEvent converts a deadline or event into a calendar event. A deadline
// occupies the slot that ends at its due time.
func ToEvent(t task.Task, slot time.Duration) (*gcal.Event, error) {
	var start, end time.Time
	switch t.Kind() {
	case task.KindDeadline:
		start, end = t.By().Add(-slot), t.By()
	case task.KindEvent:
		start, end = t.From(), t.To()
	default:
		return nil, fmt.Errorf("%w: %s", ErrNotSchedulable, t.Render())
	}

	return &gcal.Event{
		Summary:     summary(t),
		Description: "Added by sam: " + t.Render(),
		Start:       &gcal.EventDateTime{DateTime: start.Format(time.RFC3339)},
		End:         &gcal.EventDateTime{DateTime: end.Format(time.RFC3339)},
		ExtendedProperties: &gcal.EventExtendedProperties{
			Private: map[string]string{PropertyKey: TaskID(t)},
		},
	}, nil
}

func summary(t task.Task) string {
	if t.Kind() == task.KindDeadline {
		return "Due: " + t.Description()
	}
	return t.Description()
}

// eventPatch returns the fields of target that differ from existing, or
// nil when the event is up to date.
func eventPatch(existing, target *gcal.Event) (*gcal.Event, error) {
	patch := &gcal.Event{}
	changed := false

	if existing.Summary != target.Summary {
		patch.Summary = target.Summary
		changed = true
	}
	if existing.Description != target.Description {
		patch.Description = target.Description
		changed = true
	}

	same, err := sameTimes(existing, target)
	if err != nil {
		return nil, err
	}
	if !same {
		patch.Start = target.Start
		patch.End = target.End
		changed = true
	}

	if !changed {
		return nil, nil
	}
	return patch, nil
}

func sameTimes(a, b *gcal.Event) (bool, error) {
	if a.Start == nil || a.End == nil {
		return false, nil
	}
	pairs := [][2]string{
		{a.Start.DateTime, b.Start.DateTime},
		{a.End.DateTime, b.End.DateTime},
	}
	for _, p := range pairs {
		if p[0] == "" {
			// all-day or malformed remote event; rewrite it
			return false, nil
		}
		x, err := time.Parse(time.RFC3339, p[0])
		if err != nil {
			return false, fmt.Errorf("parse event time %q: %w", p[0], err)
		}
		y, err := time.Parse(time.RFC3339, p[1])
		if err != nil {
			return false, fmt.Errorf("parse event time %q: %w", p[1], err)
		}
		if !x.Equal(y) {
			return false, nil
		}
	}
	return true, nil
}
