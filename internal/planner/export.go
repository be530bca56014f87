package planner

import (
	"sort"

	"github.com/sandeepkv93/hummingbird/internal/model"
)

// ExportRow pairs a task with one of its subtasks, or with nil when the task
// has none. Seq numbers tasks from 1 in export order.
type ExportRow struct {
	Task    model.Task
	Subtask *model.SubTask
	Seq     int
}

// ExportRows flattens tasks ordered by date for tabular export.
func ExportRows(tasks []model.Task) []ExportRow {
	sorted := append([]model.Task(nil), tasks...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })

	var rows []ExportRow
	for i, t := range sorted {
		if len(t.Subtasks) == 0 {
			rows = append(rows, ExportRow{Task: t, Seq: i + 1})
			continue
		}
		for j := range t.Subtasks {
			s := t.Subtasks[j]
			rows = append(rows, ExportRow{Task: t, Subtask: &s, Seq: i + 1})
		}
	}
	return rows
}

func (p *Planner) ExportRows() []ExportRow {
	return ExportRows(p.Tasks())
}
