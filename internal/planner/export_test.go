package planner

import (
	"testing"

	"github.com/sandeepkv93/hummingbird/internal/model"
)

func TestExportRows(t *testing.T) {
	at := int64(1760000000000)
	tasks := []model.Task{
		{ID: "b", Title: "Later", Date: "2026-02-10", ParentCategory: "Work", Subtasks: []model.SubTask{
			{ID: "s1", Text: "one", Completed: true, CompletedAt: &at},
			{ID: "s2", Text: "two"},
		}},
		{ID: "a", Title: "Earlier", Date: "2026-02-09", ParentCategory: "Focus"},
	}
	rows := ExportRows(tasks)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].Task.ID != "a" || rows[0].Subtask != nil || rows[0].Seq != 1 {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[1].Subtask == nil || rows[1].Subtask.ID != "s1" || rows[1].Seq != 2 {
		t.Fatalf("unexpected second row: %+v", rows[1])
	}
	if rows[2].Subtask == nil || rows[2].Subtask.ID != "s2" || rows[2].Seq != 2 {
		t.Fatalf("unexpected third row: %+v", rows[2])
	}
}
