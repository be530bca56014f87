package timeline

import (
	"sort"

	"github.com/sandeepkv93/hummingbird/internal/model"
)

// Placement is the layout rectangle of one scheduled task.
type Placement struct {
	Task   model.Task
	Start  model.Clock
	Offset float64
	Width  float64
}

// End is the right edge of the placement.
func (p Placement) End() float64 {
	return p.Offset + p.Width
}

type scheduled struct {
	task  model.Task
	start model.Clock
}

// sortedScheduled keeps tasks with a parseable start time, ordered by start.
// Ties keep their input order.
func sortedScheduled(tasks []model.Task) []scheduled {
	out := make([]scheduled, 0, len(tasks))
	for _, t := range tasks {
		c, ok := t.Start()
		if !ok {
			continue
		}
		out = append(out, scheduled{task: t, start: c})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].start.Minutes() < out[j].start.Minutes()
	})
	return out
}

// ScheduledTasks filters tasks to those on the timeline, sorted by start time.
func ScheduledTasks(tasks []model.Task) []model.Task {
	s := sortedScheduled(tasks)
	out := make([]model.Task, len(s))
	for i := range s {
		out[i] = s[i].task
	}
	return out
}

// Layout computes placements for the scheduled tasks. Overlapping tasks are
// placed where they fall; see Overlapping.
func Layout(tasks []model.Task, g Grid) []Placement {
	s := sortedScheduled(tasks)
	out := make([]Placement, len(s))
	for i, st := range s {
		out[i] = Placement{
			Task:   st.task,
			Start:  st.start,
			Offset: g.TimeToOffset(st.start),
			Width:  float64(st.task.EffectiveDuration()) * g.PxPerMinute,
		}
	}
	return out
}

// ResolveDrop turns a pointer position into the new start time of a dropped
// task. Drops past the end of the day clamp to hour 23.
func ResolveDrop(pointerX, scrollOffset float64, g Grid) model.Clock {
	c := g.OffsetToTime(pointerX + scrollOffset)
	if c.Hour < 0 {
		c.Hour = 0
	}
	if c.Hour > 23 {
		c.Hour = 23
	}
	return c
}

// PreviewSnapPosition is the offset of the snapping guide shown while dragging.
func PreviewSnapPosition(pointerX, scrollOffset float64, g Grid) float64 {
	raw := g.MinutesAt(pointerX + scrollOffset)
	return float64(SnapMinutes(raw)) * g.PxPerMinute
}

// Overlapping returns the ids of scheduled tasks whose spans intersect another
// task's span. Nothing is moved.
func Overlapping(tasks []model.Task) map[string]bool {
	s := sortedScheduled(tasks)
	out := map[string]bool{}
	maxEnd := -1
	maxID := ""
	for _, st := range s {
		start := st.start.Minutes()
		end := start + st.task.EffectiveDuration()
		if start < maxEnd {
			out[st.task.ID] = true
			out[maxID] = true
		}
		if end > maxEnd {
			maxEnd = end
			maxID = st.task.ID
		}
	}
	return out
}
