package planner

import (
	"time"

	"github.com/sandeepkv93/hummingbird/internal/model"
)

// DayKeys are the three calendar days a session works with.
type DayKeys struct {
	Yesterday string
	Today     string
	Tomorrow  string
}

// NewDayKeys derives the keys from the local calendar date of now.
func NewDayKeys(now time.Time) DayKeys {
	noon := time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, now.Location())
	return DayKeys{
		Yesterday: noon.AddDate(0, 0, -1).Format(model.DateLayout),
		Today:     noon.Format(model.DateLayout),
		Tomorrow:  noon.AddDate(0, 0, 1).Format(model.DateLayout),
	}
}

func (k DayKeys) Contains(date string) bool {
	return date == k.Yesterday || date == k.Today || date == k.Tomorrow
}

// Prune drops tasks dated outside the window.
func Prune(tasks []model.Task, days DayKeys) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if days.Contains(t.Date) {
			out = append(out, t)
		}
	}
	return out
}

func filter(tasks []model.Task, keep func(model.Task) bool) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// AllFor returns every task dated date.
func AllFor(tasks []model.Task, date string) []model.Task {
	return filter(tasks, func(t model.Task) bool { return t.Date == date })
}

// BacklogFor returns the unscheduled tasks of date.
func BacklogFor(tasks []model.Task, date string) []model.Task {
	return filter(tasks, func(t model.Task) bool { return t.Date == date && !t.IsScheduled() })
}

// ScheduledFor returns the tasks of date that have a start time, in input order.
func ScheduledFor(tasks []model.Task, date string) []model.Task {
	return filter(tasks, func(t model.Task) bool { return t.Date == date && t.IsScheduled() })
}

// PendingFrom returns the unfinished tasks of date.
func PendingFrom(tasks []model.Task, date string) []model.Task {
	return filter(tasks, func(t model.Task) bool { return t.Date == date && !t.Completed })
}

// MoveTask re-dates t and sends it back to the backlog.
func MoveTask(t model.Task, date string) model.Task {
	t.Date = date
	t.StartTime = ""
	return t
}
