package timeline

import (
	"testing"
	"time"

	"github.com/sandeepkv93/hummingbird/internal/model"
)

func at(h, m int) time.Time {
	return time.Date(2026, 2, 9, h, m, 30, 0, time.Local)
}

func TestComputeRelations(t *testing.T) {
	tasks := []model.Task{
		task("standup", "09:00", 15),
		task("deep", "09:30", 90),
		task("lunch", "13:00", 60),
	}

	r := Compute(tasks, at(9, 40))
	if r.Active == nil || r.Active.ID != "deep" {
		t.Fatalf("expected deep active, got %+v", r.Active)
	}
	if !r.HasRemaining || r.Remaining != 80 {
		t.Fatalf("expected 80 remaining, got %d (%v)", r.Remaining, r.HasRemaining)
	}
	if r.Next == nil || r.Next.ID != "lunch" || r.Until != 200 || r.Urgent() {
		t.Fatalf("unexpected next: %+v until=%d", r.Next, r.Until)
	}

	r = Compute(tasks, at(9, 15))
	if r.Active != nil {
		t.Fatalf("expected no active task at span end, got %s", r.Active.ID)
	}
	if r.Next == nil || r.Next.ID != "deep" || r.Until != 15 {
		t.Fatalf("unexpected next: %+v", r.Next)
	}

	r = Compute(tasks, at(12, 56))
	if !r.Urgent() {
		t.Fatalf("expected urgent with %d minutes to go", r.Until)
	}

	r = Compute(tasks, at(18, 0))
	if r.Active != nil || r.Next != nil {
		t.Fatalf("expected nothing after the last task, got %+v", r)
	}
}

func TestActiveAndNextDisjoint(t *testing.T) {
	tasks := []model.Task{
		task("a", "08:00", 45),
		task("b", "08:45", 30),
		task("c", "10:00", 60),
		task("d", "", 60),
	}
	for m := 0; m < 24*60; m++ {
		now := at(m/60, m%60)
		active, okA := ActiveTask(tasks, now)
		next, okN := NextTask(tasks, now)
		if okA && okN && active.ID == next.ID {
			t.Fatalf("active and next coincide at %02d:%02d", m/60, m%60)
		}
		if okN {
			c, _ := next.Start()
			if c.Minutes() <= m {
				t.Fatalf("next starts at or before now at %02d:%02d", m/60, m%60)
			}
		}
	}
}

func TestActiveTieBreakFirstInSortedOrder(t *testing.T) {
	tasks := []model.Task{
		task("late", "09:30", 60),
		task("early", "09:00", 120),
	}
	got, ok := ActiveTask(tasks, at(9, 45))
	if !ok || got.ID != "early" {
		t.Fatalf("expected early, got %+v", got)
	}
}

func TestRemainingAndUntilNonPositive(t *testing.T) {
	tk := task("a", "09:00", 30)
	if _, ok := RemainingMinutes(tk, at(9, 30)); ok {
		t.Fatal("expected no remaining once the span has ended")
	}
	if _, ok := UntilNextMinutes(tk, at(9, 0)); ok {
		t.Fatal("expected no until for a task starting now")
	}
	if _, ok := RemainingMinutes(task("b", "", 30), at(9, 0)); ok {
		t.Fatal("expected no remaining for a backlog task")
	}
}
