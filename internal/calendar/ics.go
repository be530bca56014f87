package calendar

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	_ "time/tzdata"

	ics "github.com/arran4/golang-ical"
)

const icsDateLayout = "20060102"

// ICSFeed reads a public iCalendar feed over HTTP.
type ICSFeed struct {
	URL      string
	Client   *http.Client
	Location *time.Location
}

func NewICSFeed(calendarID string, loc *time.Location) *ICSFeed {
	return &ICSFeed{URL: PublicICSURL(calendarID), Client: http.DefaultClient, Location: loc}
}

func (f *ICSFeed) Events(ctx context.Context, _ time.Time) ([]Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return nil, err
	}
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d (is the calendar public?)", ErrFeedUnavailable, resp.StatusCode)
	}
	return ParseICS(resp.Body, f.Location)
}

// ParseICS extracts VEVENTs from an iCalendar stream. Floating times are
// read in loc. Cancelled events and events without a readable start are
// dropped; recurrence rules are ignored.
func ParseICS(r io.Reader, loc *time.Location) ([]Event, error) {
	if loc == nil {
		loc = time.Local
	}
	cal, err := ics.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("read ics: %w", err)
	}
	var events []Event
	for _, ve := range cal.Events() {
		if ev, keep := buildEvent(ve, loc); keep {
			events = append(events, ev)
		}
	}
	return events, nil
}

func buildEvent(ve *ics.VEvent, loc *time.Location) (Event, bool) {
	if p := ve.GetProperty(ics.ComponentPropertyStatus); p != nil && strings.EqualFold(p.Value, string(ics.ObjectStatusCancelled)) {
		return Event{}, false
	}
	start, allDay, err := eventTime(ve, ics.ComponentPropertyDtStart, loc)
	if err != nil {
		return Event{}, false
	}
	ev := Event{Start: start, End: start, AllDay: allDay}
	if end, _, err := eventTime(ve, ics.ComponentPropertyDtEnd, loc); err == nil {
		ev.End = end
	}
	if p := ve.GetProperty(ics.ComponentPropertySummary); p != nil {
		ev.Title = strings.TrimSpace(p.Value)
	}
	return ev, true
}

// eventTime reads DTSTART or DTEND. DATE values are all-day; times with
// neither a TZID nor a UTC suffix are floating and take loc.
func eventTime(ve *ics.VEvent, prop ics.ComponentProperty, loc *time.Location) (time.Time, bool, error) {
	p := ve.GetProperty(prop)
	if p == nil {
		return time.Time{}, false, ics.ErrorPropertyNotFound
	}
	value := strings.TrimSpace(p.Value)
	allDay := len(value) == len(icsDateLayout)
	if v := p.ICalParameters[string(ics.ParameterValue)]; len(v) == 1 && strings.EqualFold(v[0], string(ics.ValueDataTypeDate)) {
		allDay = true
	}

	var (
		t   time.Time
		err error
	)
	switch {
	case prop == ics.ComponentPropertyDtStart && allDay:
		t, err = ve.GetAllDayStartAt()
	case allDay:
		t, err = ve.GetAllDayEndAt()
	case prop == ics.ComponentPropertyDtStart:
		t, err = ve.GetStartAt()
	default:
		t, err = ve.GetEndAt()
	}
	if err != nil {
		return time.Time{}, false, err
	}
	if _, zoned := p.ICalParameters[string(ics.ParameterTzid)]; !zoned && !strings.HasSuffix(value, "Z") {
		t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc)
	}
	return t, allDay, nil
}
