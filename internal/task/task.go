package task

import (
	"fmt"
	"strings"
	"time"
)

// Kind is the variant tag of a task.
type Kind string

const (
	KindTodo     Kind = "T"
	KindDeadline Kind = "D"
	KindEvent    Kind = "E"
)

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case KindTodo:
		return "todo"
	case KindDeadline:
		return "deadline"
	case KindEvent:
		return "event"
	default:
		return string(k)
	}
}

const (
	// DateTimeLayout is the only accepted input and persisted date-time form.
	DateTimeLayout = "2006-01-02 1504"
	// DisplayLayout is used when rendering date-times for people.
	DisplayLayout = "Jan 02 2006 15:04"
)

// ParseDateTime parses s with DateTimeLayout in the local zone.
func ParseDateTime(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateTimeLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("date-time %q must look like yyyy-MM-dd HHmm", strings.TrimSpace(s))
	}
	return t, nil
}

// FormatDateTime formats t with DateTimeLayout.
func FormatDateTime(t time.Time) string {
	return t.Format(DateTimeLayout)
}

// Task is a todo, a deadline, or an event.
//
// The zero value is not a valid task; use NewTodo, NewDeadline or NewEvent.
type Task struct {
	kind        Kind
	description string
	done        bool
	by          time.Time
	from        time.Time
	to          time.Time
}

// NewTodo returns a not-done todo.
func NewTodo(description string) Task {
	return Task{kind: KindTodo, description: description}
}

// NewDeadline returns a not-done deadline due at by.
func NewDeadline(description string, by time.Time) Task {
	return Task{kind: KindDeadline, description: description, by: by}
}

// NewEvent returns a not-done event spanning from..to.
func NewEvent(description string, from, to time.Time) Task {
	return Task{kind: KindEvent, description: description, from: from, to: to}
}

// Kind returns the variant tag.
func (t Task) Kind() Kind { return t.kind }

// Description returns the task's text.
func (t Task) Description() string { return t.description }

// Done reports whether the task is marked done.
func (t Task) Done() bool { return t.done }

// By returns the due date-time of a deadline, or the zero time.
func (t Task) By() time.Time { return t.by }

// From returns the start of an event, or the zero time.
func (t Task) From() time.Time { return t.from }

// To returns the end of an event, or the zero time.
func (t Task) To() time.Time { return t.to }

// MarkDone marks the task done. Marking a done task again is a no-op.
func (t *Task) MarkDone() { t.done = true }

// MarkNotDone clears the done flag.
func (t *Task) MarkNotDone() { t.done = false }

// Equal reports whether two tasks have the same kind, text, state and times.
func (t Task) Equal(o Task) bool {
	return t.kind == o.kind &&
		t.description == o.description &&
		t.done == o.done &&
		t.by.Equal(o.by) &&
		t.from.Equal(o.from) &&
		t.to.Equal(o.to)
}

// Render returns the one-line human form, e.g. "[D][X] report (by: Nov 15 2023 08:00)".
func (t Task) Render() string {
	status := " "
	if t.done {
		status = "X"
	}
	line := fmt.Sprintf("[%s][%s] %s", t.kind, status, t.description)
	switch t.kind {
	case KindDeadline:
		line += fmt.Sprintf(" (by: %s)", t.by.Format(DisplayLayout))
	case KindEvent:
		line += fmt.Sprintf(" (from: %s to: %s)", t.from.Format(DisplayLayout), t.to.Format(DisplayLayout))
	}
	return line
}

// String implements fmt.Stringer with Render.
func (t Task) String() string {
	return t.Render()
}
