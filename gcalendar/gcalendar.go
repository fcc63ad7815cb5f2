// Package gcalendar adapts the Google Calendar v3 API to windows and event
// time specs.
package gcalendar

import (
	"context"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/toniov/gcal-cli/eventtime"
	"github.com/toniov/gcal-cli/term"
)

type Service struct {
	svc        *calendar.Service
	calendarID string
	order      string
}

// New builds a Service on an already authorized HTTP client.
func New(ctx context.Context, client *http.Client, calendarID, order string, opts ...option.ClientOption) (*Service, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(client)}, opts...)
	svc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve calendar service: %w", err)
	}
	return &Service{svc: svc, calendarID: calendarID, order: order}, nil
}

func (s *Service) CalendarID() string {
	return s.calendarID
}

// List returns the expanded single instances overlapping w. Unbounded sides
// of w are left out of the request.
func (s *Service) List(ctx context.Context, w term.Window) ([]*calendar.Event, error) {
	call := s.svc.Events.List(s.calendarID).
		ShowDeleted(false).
		SingleEvents(true).
		OrderBy(s.order)
	if w.HasStart() {
		call = call.TimeMin(w.Start.Format(time.RFC3339))
	}
	if w.HasEnd() {
		call = call.TimeMax(w.End.Format(time.RFC3339))
	}

	log.Debugf("listing events in %s (%s)", s.calendarID, w)
	var items []*calendar.Event
	err := call.Pages(ctx, func(events *calendar.Events) error {
		items = append(items, events.Items...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve events: %w", err)
	}
	return items, nil
}

func (s *Service) Insert(ctx context.Context, ev *calendar.Event) (*calendar.Event, error) {
	log.Debugf("inserting event %q into %s", ev.Summary, s.calendarID)
	inserted, err := s.svc.Events.Insert(s.calendarID, ev).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to insert event %q: %w", ev.Summary, err)
	}
	return inserted, nil
}

func (s *Service) Calendars(ctx context.Context) ([]*calendar.CalendarListEntry, error) {
	var items []*calendar.CalendarListEntry
	err := s.svc.CalendarList.List().Pages(ctx, func(list *calendar.CalendarList) error {
		items = append(items, list.Items...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve calendar list: %w", err)
	}
	return items, nil
}

// EventDateTimes maps an event time to the API's start and end. All-day events
// use the date fields; timed events use RFC 3339 date-times.
func EventDateTimes(spec eventtime.Spec) (start, end *calendar.EventDateTime) {
	switch spec := spec.(type) {
	case eventtime.AllDay:
		return &calendar.EventDateTime{Date: spec.Start.String()},
			&calendar.EventDateTime{Date: spec.End.String()}
	case eventtime.Timed:
		return &calendar.EventDateTime{DateTime: spec.Start.Format(time.RFC3339)},
			&calendar.EventDateTime{DateTime: spec.End.Format(time.RFC3339)}
	default:
		panic(fmt.Sprintf("gcalendar: unexpected spec %T", spec))
	}
}

// Details holds the optional free-form fields of an inserted event.
type Details struct {
	Description string
	Location    string
}

func NewEvent(ev eventtime.Event, details Details) *calendar.Event {
	start, end := EventDateTimes(ev.Time)
	return &calendar.Event{
		Summary:     ev.Summary,
		Description: details.Description,
		Location:    details.Location,
		Start:       start,
		End:         end,
	}
}

// Start reports when item begins and whether it is an all-day event.
func Start(item *calendar.Event, loc *time.Location) (time.Time, bool, error) {
	if item.Start == nil {
		return time.Time{}, false, fmt.Errorf("event %s has no start", item.Id)
	}
	if item.Start.Date != "" {
		t, err := time.ParseInLocation("2006-01-02", item.Start.Date, loc)
		return t, true, err
	}
	t, err := time.Parse(time.RFC3339, item.Start.DateTime)
	if err != nil {
		return time.Time{}, false, err
	}
	return t.In(loc), false, nil
}
