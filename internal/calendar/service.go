package calendar

import (
	"context"
	"fmt"
	"net/http"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// PrimaryCalendar is the alias for the user's main calendar.
const PrimaryCalendar = "primary"

// EventService is the slice of the Calendar API that Sync needs.
type EventService interface {
	// FindByTaskID returns the event tagged with id, or nil.
	FindByTaskID(ctx context.Context, id string) (*gcal.Event, error)
	Insert(ctx context.Context, event *gcal.Event) (*gcal.Event, error)
	Patch(ctx context.Context, eventID string, patch *gcal.Event) (*gcal.Event, error)
}

// GoogleService talks to one Google calendar.
type GoogleService struct {
	srv        *gcal.Service
	calendarID string
}

// NewGoogleService creates a service on client for the calendar whose
// summary is name. "primary" skips the lookup.
func NewGoogleService(ctx context.Context, client *http.Client, name string, opts ...option.ClientOption) (*GoogleService, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(client)}, opts...)
	srv, err := gcal.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}

	if name == "" || name == PrimaryCalendar {
		return &GoogleService{srv: srv, calendarID: PrimaryCalendar}, nil
	}

	list, err := srv.CalendarList.List().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list calendars: %w", err)
	}
	for _, item := range list.Items {
		if item.Summary == name {
			return &GoogleService{srv: srv, calendarID: item.Id}, nil
		}
	}
	return nil, fmt.Errorf("calendar %q not found", name)
}

// CalendarID returns the resolved calendar ID.
func (g *GoogleService) CalendarID() string {
	return g.calendarID
}

// FindByTaskID searches the private extended property.
func (g *GoogleService) FindByTaskID(ctx context.Context, id string) (*gcal.Event, error) {
	events, err := g.srv.Events.List(g.calendarID).
		PrivateExtendedProperty(fmt.Sprintf("%s=%s", PropertyKey, id)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	if len(events.Items) == 0 {
		return nil, nil
	}
	return events.Items[0], nil
}

// Insert creates event.
func (g *GoogleService) Insert(ctx context.Context, event *gcal.Event) (*gcal.Event, error) {
	return g.srv.Events.Insert(g.calendarID, event).Context(ctx).Do()
}

// Patch updates the fields set in patch.
func (g *GoogleService) Patch(ctx context.Context, eventID string, patch *gcal.Event) (*gcal.Event, error) {
	return g.srv.Events.Patch(g.calendarID, eventID, patch).Context(ctx).Do()
}
