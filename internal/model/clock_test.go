package model

import (
	"errors"
	"testing"
)

func TestParseClock(t *testing.T) {
	cases := map[string]Clock{
		"09:30": {9, 30},
		"9:05":  {9, 5},
		"00:00": {0, 0},
		"23:59": {23, 59},
	}
	for in, want := range cases {
		got, err := ParseClock(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if got != want {
			t.Fatalf("parse %q: expected %+v, got %+v", in, want, got)
		}
	}
}

func TestParseClockRejects(t *testing.T) {
	for _, in := range []string{"", "930", "24:00", "12:60", "1:5", "ab:cd", "123:00"} {
		if _, err := ParseClock(in); !errors.Is(err, ErrInvalidClock) {
			t.Fatalf("parse %q: expected ErrInvalidClock, got %v", in, err)
		}
	}
}

func TestClockStringAndMinutes(t *testing.T) {
	c := Clock{Hour: 7, Minute: 5}
	if c.String() != "07:05" {
		t.Fatalf("unexpected string %q", c.String())
	}
	if c.Minutes() != 425 {
		t.Fatalf("unexpected minutes %d", c.Minutes())
	}
	if ClockFromMinutes(425) != c {
		t.Fatalf("unexpected clock from minutes")
	}
}

func TestClampClock(t *testing.T) {
	if got := ClampClock(27, -3); got != (Clock{23, 0}) {
		t.Fatalf("unexpected clamp %+v", got)
	}
	if got := ClampClock(-1, 75); got != (Clock{0, 59}) {
		t.Fatalf("unexpected clamp %+v", got)
	}
}
