package calendar

import (
	"fmt"
	"net/url"
	"strings"
)

// ParseCalendarID accepts a bare calendar id or an embed URL carrying the id
// in its src parameter.
func ParseCalendarID(input string) (string, error) {
	id := strings.TrimSpace(input)
	if i := strings.Index(id, "src="); i >= 0 {
		raw := id[i+len("src="):]
		if j := strings.IndexByte(raw, '&'); j >= 0 {
			raw = raw[:j]
		}
		decoded, err := url.PathUnescape(raw)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidCalendarID, err)
		}
		id = strings.TrimSpace(decoded)
	}
	if id == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidCalendarID)
	}
	return id, nil
}

// ResolveCalendarID picks the calendar to sync: the explicit input, then the
// stored id, then the configured one. remember reports an explicit id that
// differs from the stored one.
func ResolveCalendarID(explicit, stored, configured string) (id string, remember bool, err error) {
	source := strings.TrimSpace(explicit)
	if source == "" {
		source = stored
	}
	if source == "" {
		source = configured
	}
	if source == "" {
		return "", false, ErrNoCalendar
	}
	if id, err = ParseCalendarID(source); err != nil {
		return "", false, err
	}
	return id, strings.TrimSpace(explicit) != "" && id != stored, nil
}

// PublicICSURL is the public iCal address of a Google calendar.
func PublicICSURL(calendarID string) string {
	return "https://calendar.google.com/calendar/ical/" + url.PathEscape(calendarID) + "/public/basic.ics"
}
