package timeline

import (
	"testing"

	"github.com/sandeepkv93/hummingbird/internal/model"
)

func task(id, start string, duration int) model.Task {
	return model.Task{
		ID:             id,
		Title:          id,
		Duration:       duration,
		StartTime:      start,
		ParentCategory: "Work",
		Date:           "2026-02-09",
	}
}

func TestLayoutFiltersAndSortsStable(t *testing.T) {
	g := NewGrid(Window{StartHour: 8, EndHour: 19}, PixelsPerMinute)
	tasks := []model.Task{
		task("c", "11:00", 30),
		task("backlog", "", 60),
		task("a", "09:00", 60),
		task("b", "09:00", 15),
		task("neg", "10:00", -5),
	}
	got := Layout(tasks, g)
	order := []string{"a", "b", "neg", "c"}
	if len(got) != len(order) {
		t.Fatalf("expected %d placements, got %d", len(order), len(got))
	}
	for i, id := range order {
		if got[i].Task.ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, got[i].Task.ID)
		}
	}
	if got[0].Offset != 240 || got[0].Width != 240 {
		t.Fatalf("unexpected placement for a: %+v", got[0])
	}
	if got[2].Width != float64(model.MinimumDuration)*PixelsPerMinute {
		t.Fatalf("expected non-positive duration clamped, got width %v", got[2].Width)
	}
}

func TestResolveDropClampsHour(t *testing.T) {
	g := NewGrid(Window{StartHour: 8, EndHour: 19}, PixelsPerMinute)
	// 17 hours past 08:00 is raw hour 25.
	px := float64(17*60) * PixelsPerMinute
	if got := ResolveDrop(px, 0, g); got != (model.Clock{Hour: 23}) {
		t.Fatalf("expected 23:00, got %s", got)
	}
	if got := ResolveDrop(px-100, 100, g); got != (model.Clock{Hour: 23}) {
		t.Fatalf("expected scroll offset to be added, got %s", got)
	}
}

func TestResolveDropSnaps(t *testing.T) {
	g := NewGrid(Window{StartHour: 8, EndHour: 19}, PixelsPerMinute)
	if got := ResolveDrop(float64(98)*PixelsPerMinute, 0, g); got != (model.Clock{Hour: 9, Minute: 45}) {
		t.Fatalf("expected 09:45, got %s", got)
	}
	if got := ResolveDrop(float64(113)*PixelsPerMinute, 0, g); got != (model.Clock{Hour: 10}) {
		t.Fatalf("expected carry to 10:00, got %s", got)
	}
	if got := ResolveDrop(-50, 0, NewGrid(Window{StartHour: 0, EndHour: 5}, 1)); got.Hour != 0 {
		t.Fatalf("expected negative drop to clamp to hour 0, got %s", got)
	}
}

func TestPreviewSnapPosition(t *testing.T) {
	g := NewGrid(Window{StartHour: 8, EndHour: 19}, 2)
	if got := PreviewSnapPosition(20, 0, g); got != 30 {
		t.Fatalf("expected guide at 30, got %v", got)
	}
	if got := PreviewSnapPosition(10, 6, g); got != 30 {
		t.Fatalf("expected guide at 30, got %v", got)
	}
}

func TestOverlapping(t *testing.T) {
	tasks := []model.Task{
		task("a", "09:00", 60),
		task("b", "09:30", 15),
		task("c", "10:00", 30),
	}
	got := Overlapping(tasks)
	if !got["a"] || !got["b"] || got["c"] {
		t.Fatalf("unexpected overlap set: %v", got)
	}
}
