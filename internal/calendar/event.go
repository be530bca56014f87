package calendar

import (
	"context"
	"errors"
	"time"

	"github.com/sandeepkv93/hummingbird/internal/model"
)

var (
	ErrInvalidCalendarID = errors.New("calendar: invalid calendar id")
	ErrFeedUnavailable   = errors.New("calendar: feed unavailable")
	ErrNoCalendar        = errors.New("calendar: no calendar set")
)

const (
	// Category is assigned to every imported task.
	Category = "Meetings"
	// Color is the colour token of imported tasks.
	Color = "#3495C0"
	// UntitledEvent replaces empty summaries.
	UntitledEvent = "Busy"
)

// Event is a single calendar entry as read from a feed.
type Event struct {
	Title  string
	Start  time.Time
	End    time.Time
	AllDay bool
}

// Feed lists the events that may fall on day.
type Feed interface {
	Events(ctx context.Context, day time.Time) ([]Event, error)
}

// ToDrafts converts the timed events starting on day (in loc) to task drafts.
// All-day events are skipped. Durations that are not positive become
// model.MinimumDuration.
func ToDrafts(events []Event, day time.Time, loc *time.Location) []model.Draft {
	if loc == nil {
		loc = time.Local
	}
	want := day.In(loc).Format(model.DateLayout)
	var out []model.Draft
	for _, ev := range events {
		if ev.AllDay {
			continue
		}
		start := ev.Start.In(loc)
		if start.Format(model.DateLayout) != want {
			continue
		}
		title := ev.Title
		if title == "" {
			title = UntitledEvent
		}
		minutes := int(ev.End.Sub(ev.Start) / time.Minute)
		out = append(out, model.Draft{
			Title:     title,
			Duration:  model.NormalizeDuration(minutes),
			Category:  Category,
			Color:     Color,
			StartTime: model.Clock{Hour: start.Hour(), Minute: start.Minute()}.String(),
		})
	}
	return out
}

// FetchDrafts reads day's events from feed and converts them.
func FetchDrafts(ctx context.Context, feed Feed, day time.Time, loc *time.Location) ([]model.Draft, error) {
	events, err := feed.Events(ctx, day)
	if err != nil {
		return nil, err
	}
	return ToDrafts(events, day, loc), nil
}
