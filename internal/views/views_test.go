package views

import (
	"strings"
	"testing"
)

func sampleTimeline() TimelineData {
	return TimelineData{
		Marks: []HourMarkData{
			{Label: "08", Offset: 0},
			{Label: "09", Offset: 12},
		},
		GridWidth: 24,
		Viewport:  24,
		Bars: []TimelineBarData{
			{ID: "a", Title: "Standup", Color: "#3495C0", Offset: 12, Width: 6, Selected: true},
		},
	}
}

func TestRenderTimelineRuler(t *testing.T) {
	out := RenderTimeline(sampleTimeline())
	lines := strings.Split(out, "\n")
	if !strings.HasPrefix(lines[0], "  08          09") {
		t.Fatalf("unexpected ruler %q", lines[0])
	}
	if !strings.Contains(out, "> ") || !strings.Contains(out, "Stand") {
		t.Fatalf("expected selected bar in output:\n%s", out)
	}
}

func TestRenderTimelineNowAndGuide(t *testing.T) {
	data := sampleTimeline()
	data.ShowNow = true
	data.NowOffset = 3
	data.NowLabel = "08:15"
	data.Guide = &GuideData{Offset: 15, Label: "09:15"}
	out := RenderTimeline(data)
	if !strings.Contains(out, "v now 08:15") {
		t.Fatalf("expected now marker:\n%s", out)
	}
	if !strings.Contains(out, "| 09:15") {
		t.Fatalf("expected drop guide:\n%s", out)
	}
}

func TestRenderTimelineClipsScrolledBars(t *testing.T) {
	data := sampleTimeline()
	data.Bars = append(data.Bars, TimelineBarData{ID: "b", Title: "Early", Color: "#F59E0B", Offset: 0, Width: 6})
	data.Scroll = 20
	out := RenderTimeline(data)
	if !strings.Contains(out, "< Early") {
		t.Fatalf("expected clipped marker for bar left of the viewport:\n%s", out)
	}
}

func TestRenderTimelineEmpty(t *testing.T) {
	data := sampleTimeline()
	data.Bars = nil
	if out := RenderTimeline(data); !strings.Contains(out, "nothing scheduled") {
		t.Fatalf("expected empty hint:\n%s", out)
	}
}

func TestRenderRelations(t *testing.T) {
	out := RenderRelations(RelationsData{
		Now:          "10:05",
		ActiveTitle:  "Deep work",
		HasActive:    true,
		Remaining:    25,
		HasRemaining: true,
		NextTitle:    "Standup",
		NextStart:    "10:30",
		HasNext:      true,
		Until:        25,
		HasUntil:     true,
	})
	for _, want := range []string{"now 10:05", "active: Deep work (25m left)", "next: Standup at 10:30 (in 25m)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %q", want, out)
		}
	}

	idle := RenderRelations(RelationsData{Now: "07:00"})
	if !strings.Contains(idle, "active: -") || !strings.Contains(idle, "next: -") {
		t.Fatalf("unexpected idle relations %q", idle)
	}
}

func TestRenderTaskList(t *testing.T) {
	out := RenderTaskList(TaskListData{
		Title: "backlog",
		Rows: []TaskRowData{
			{ID: "1", Title: "Write report", Category: "Work", Duration: 45, Selected: true, Subtasks: 2, SubtasksDone: 1},
			{ID: "2", Title: "Gym", Category: "Personal", Duration: 60, Start: "18:00", Completed: true},
		},
	})
	if !strings.Contains(out, "> [ ]") || !strings.Contains(out, "(1/2)") {
		t.Fatalf("unexpected list output:\n%s", out)
	}
	if !strings.Contains(out, "[x]") || !strings.Contains(out, "@18:00") {
		t.Fatalf("unexpected completed row:\n%s", out)
	}

	empty := RenderTaskList(TaskListData{Title: "tomorrow", Empty: "(nothing planned)"})
	if !strings.Contains(empty, "(nothing planned)") {
		t.Fatalf("unexpected empty list %q", empty)
	}
}

func TestRenderCaptureFormShowsError(t *testing.T) {
	out := RenderCaptureForm(CaptureFormData{
		Tomorrow: true,
		Fields:   []CaptureFieldData{{Label: "title", View: "> ", Focused: true}},
		Error:    "title is required",
	})
	if !strings.Contains(out, "tomorrow") || !strings.Contains(out, "error: title is required") {
		t.Fatalf("unexpected capture form:\n%s", out)
	}
}

func TestRenderAppIncludesRegions(t *testing.T) {
	out := RenderApp(AppData{
		Header:     "hummingbird",
		Relations:  "now 10:00",
		Timeline:   "grid",
		LeftPane:   "left",
		RightPane:  "right",
		StatusLine: "status: ok",
		Footer:     "keys",
		Focused:    RegionLeft,
		Width:      80,
	})
	for _, want := range []string{"hummingbird", "now 10:00", "grid", "left", "right", "status: ok", "keys"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in app view", want)
		}
	}
}

func TestRenderMarkdownEmpty(t *testing.T) {
	if got := RenderMarkdown("   "); got != "" {
		t.Fatalf("expected empty render, got %q", got)
	}
}
