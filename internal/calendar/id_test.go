package calendar

import (
	"errors"
	"testing"
)

func TestParseCalendarID(t *testing.T) {
	cases := map[string]string{
		"team@example.com":    "team@example.com",
		"  team@example.com ": "team@example.com",
		"https://calendar.google.com/calendar/embed?src=team%40example.com&ctz=UTC": "team@example.com",
		"https://calendar.google.com/calendar/embed?src=abc%2Bdef%40group.calendar.google.com": "abc+def@group.calendar.google.com",
	}
	for in, want := range cases {
		got, err := ParseCalendarID(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if got != want {
			t.Fatalf("parse %q: expected %q, got %q", in, want, got)
		}
	}
	for _, in := range []string{"", "   ", "https://x/embed?src=&ctz=UTC", "src=%zz"} {
		if _, err := ParseCalendarID(in); !errors.Is(err, ErrInvalidCalendarID) {
			t.Fatalf("parse %q: expected ErrInvalidCalendarID, got %v", in, err)
		}
	}
}

func TestPublicICSURL(t *testing.T) {
	got := PublicICSURL("team@example.com")
	want := "https://calendar.google.com/calendar/ical/team@example.com/public/basic.ics"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestResolveCalendarID(t *testing.T) {
	cases := []struct {
		name                         string
		explicit, stored, configured string
		want                         string
		remember                     bool
	}{
		{"explicit wins", "new@example.com", "old@example.com", "cfg@example.com", "new@example.com", true},
		{"explicit equal to stored", " old@example.com ", "old@example.com", "", "old@example.com", false},
		{"embed url", "https://calendar.google.com/calendar/embed?src=team%40example.com", "", "", "team@example.com", true},
		{"stored before config", "", "old@example.com", "cfg@example.com", "old@example.com", false},
		{"config last", "  ", "", "cfg@example.com", "cfg@example.com", false},
	}
	for _, tc := range cases {
		id, remember, err := ResolveCalendarID(tc.explicit, tc.stored, tc.configured)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if id != tc.want || remember != tc.remember {
			t.Fatalf("%s: got %q remember=%v, want %q remember=%v", tc.name, id, remember, tc.want, tc.remember)
		}
	}
	if _, _, err := ResolveCalendarID("", "", ""); !errors.Is(err, ErrNoCalendar) {
		t.Fatalf("expected ErrNoCalendar, got %v", err)
	}
	if _, _, err := ResolveCalendarID("https://x/embed?src=&ctz=UTC", "", ""); !errors.Is(err, ErrInvalidCalendarID) {
		t.Fatalf("expected ErrInvalidCalendarID, got %v", err)
	}
}
