package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// GoogleFeed lists events through the Google Calendar API.
type GoogleFeed struct {
	srv        *gcal.Service
	calendarID string
}

// NewGoogleFeed builds a feed for calendarID. Public calendars need only an
// API key; private ones take a token source via opts (see TokenSourceFromFiles).
func NewGoogleFeed(ctx context.Context, calendarID, apiKey string, opts ...option.ClientOption) (*GoogleFeed, error) {
	if calendarID == "" {
		return nil, ErrInvalidCalendarID
	}
	if apiKey != "" {
		opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	}
	if len(opts) == 0 {
		return nil, errors.New("calendar: google feed needs an api key or credentials")
	}
	srv, err := gcal.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create calendar service: %w", err)
	}
	return &GoogleFeed{srv: srv, calendarID: calendarID}, nil
}

// Events returns the single (expanded) events overlapping the local day.
func (f *GoogleFeed) Events(ctx context.Context, day time.Time) ([]Event, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	var out []Event
	call := f.srv.Events.List(f.calendarID).
		TimeMin(start.Format(time.RFC3339)).
		TimeMax(end.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime")
	err := call.Pages(ctx, func(page *gcal.Events) error {
		for _, item := range page.Items {
			ev, ok := convertGoogleEvent(item, day.Location())
			if ok {
				out = append(out, ev)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}
	return out, nil
}

func convertGoogleEvent(item *gcal.Event, loc *time.Location) (Event, bool) {
	if item == nil || item.Status == "cancelled" || item.Start == nil {
		return Event{}, false
	}
	ev := Event{Title: item.Summary}
	if item.Start.Date != "" {
		t, err := time.ParseInLocation(time.DateOnly, item.Start.Date, loc)
		if err != nil {
			return Event{}, false
		}
		ev.Start, ev.End, ev.AllDay = t, t.AddDate(0, 0, 1), true
		return ev, true
	}
	t, err := time.Parse(time.RFC3339, item.Start.DateTime)
	if err != nil {
		return Event{}, false
	}
	ev.Start, ev.End = t, t
	if item.End != nil && item.End.DateTime != "" {
		if e, err := time.Parse(time.RFC3339, item.End.DateTime); err == nil {
			ev.End = e
		}
	}
	return ev, true
}
