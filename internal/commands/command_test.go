package commands

import (
	"errors"
	"testing"

	"github.com/sandeepkv93/hummingbird/internal/model"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add pay rent 15m", TypeAdd},
		{"tomorrow call dentist", TypeTomorrow},
		{"at 9:30", TypeAt},
		{"move tomorrow", TypeMove},
		{"hours 7 18", TypeHours},
		{"sync", TypeSync},
		{"routine on", TypeRoutine},
		{"category add Reading", TypeCategory},
		{"export out.csv", TypeExport},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseAddTokens(t *testing.T) {
	cmd, err := Parse("/add write quarterly report 1h30 @Work")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	a := cmd.Add
	if a.Title != "write quarterly report" || a.Duration != 90 || a.Category != "Work" || a.Tomorrow {
		t.Fatalf("unexpected add args: %+v", a)
	}

	cmd, err = Parse("tomorrow stretch")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !cmd.Add.Tomorrow || cmd.Add.Duration != DefaultDuration {
		t.Fatalf("unexpected tomorrow args: %+v", cmd.Add)
	}

	if _, err := Parse("add 45m @Work"); err == nil {
		t.Fatal("expected error for add without title")
	}
}

func TestParseDuration(t *testing.T) {
	cases := map[string]int{"45m": 45, "2h": 120, "1h30": 90, "1H15M": 75}
	for in, want := range cases {
		got, ok := ParseDuration(in)
		if !ok || got != want {
			t.Fatalf("duration %q: expected %d, got %d (%v)", in, want, got, ok)
		}
	}
	for _, in := range []string{"0m", "90", "meh", "h", "-5m", "1h-3"} {
		if _, ok := ParseDuration(in); ok {
			t.Fatalf("duration %q: expected rejection", in)
		}
	}
}

func TestParseArgumentErrors(t *testing.T) {
	for _, in := range []string{"at", "at 25:00", "move yesterday", "hours 7", "hours a b", "routine maybe", "category add", "category rename x"} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("parse %q: expected invalid argument error, got %v", in, err)
		}
	}
}

func TestParseAt(t *testing.T) {
	cmd, err := Parse("at 9:30")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.At.Start != (model.Clock{Hour: 9, Minute: 30}) {
		t.Fatalf("unexpected start %s", cmd.At.Start)
	}
}

func TestParseUnknownCommand(t *testing.T) {
	_, err := Parse("/unknown do x")
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
	if _, err := Parse(" / "); err == nil {
		t.Fatal("expected empty input error")
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/add write docs")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Add: func(a AddArgs) (Result, error) {
			called = true
			if a.Title != "write docs" {
				t.Fatalf("unexpected title: %q", a.Title)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("routine off")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}
