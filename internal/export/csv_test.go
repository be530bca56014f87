package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/sandeepkv93/hummingbird/internal/model"
	"github.com/sandeepkv93/hummingbird/internal/planner"
)

func TestWriteCSV(t *testing.T) {
	at := time.Date(2026, 2, 9, 14, 30, 0, 0, time.UTC).UnixMilli()
	tasks := []model.Task{
		{ID: "a", Title: "Plan, then ship", Duration: 90, ParentCategory: "Work", Date: "2026-02-09", Completed: true,
			Subtasks: []model.SubTask{
				{ID: "s1", Text: `Write "notes"`, Completed: true, CompletedAt: &at},
				{ID: "s2", Text: "Review"},
			}},
		{ID: "b", Title: "Nap", Duration: 20, ParentCategory: "Me", Date: "2026-02-10"},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, planner.ExportRows(tasks), time.UTC); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "\uFEFF") {
		t.Fatal("expected byte order mark")
	}

	records, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(out, "\uFEFF"))).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected header and 3 rows, got %d", len(records))
	}
	if records[0][0] != "ID" || records[0][7] != "Completed At" {
		t.Fatalf("unexpected header: %v", records[0])
	}
	first := records[1]
	if first[0] != "WOR-01-20260209" || first[2] != "Plan, then ship" || first[4] != "Yes" {
		t.Fatalf("unexpected first row: %v", first)
	}
	if first[5] != `Write "notes"` || first[6] != "Completed" || first[7] != "2026-02-09 14:30:00" {
		t.Fatalf("unexpected subtask columns: %v", first)
	}
	if records[2][6] != "Pending" || records[2][7] != "N/A" {
		t.Fatalf("unexpected pending row: %v", records[2])
	}
	last := records[3]
	if last[0] != "ME-02-20260210" || last[5] != "N/A" || last[4] != "No" {
		t.Fatalf("unexpected subtask-less row: %v", last)
	}
}

func TestFilename(t *testing.T) {
	got := Filename(time.Date(2026, 2, 9, 8, 0, 0, 0, time.UTC))
	if got != "hummingbird_planner_2026-02-09.csv" {
		t.Fatalf("unexpected filename %q", got)
	}
}
