package timeline

import (
	"time"

	"github.com/sandeepkv93/hummingbird/internal/model"
)

// UrgentThresholdMinutes marks the next task as imminent.
const UrgentThresholdMinutes = 5

// Relations is the view of the schedule against the clock at one instant.
type Relations struct {
	Active    *model.Task
	Next      *model.Task
	Remaining int
	Until     int
	// HasRemaining and HasUntil are false when the value is not positive.
	HasRemaining bool
	HasUntil     bool
}

// Urgent reports whether the next task starts within the threshold.
func (r Relations) Urgent() bool {
	return r.HasUntil && r.Until <= UrgentThresholdMinutes
}

// MinuteOfDay truncates now to whole minutes since local midnight.
func MinuteOfDay(now time.Time) int {
	return now.Hour()*60 + now.Minute()
}

// ActiveTask returns the first scheduled task whose span contains now.
func ActiveTask(tasks []model.Task, now time.Time) (model.Task, bool) {
	n := MinuteOfDay(now)
	for _, st := range sortedScheduled(tasks) {
		start := st.start.Minutes()
		if start <= n && n < start+st.task.EffectiveDuration() {
			return st.task, true
		}
	}
	return model.Task{}, false
}

// NextTask returns the first scheduled task starting strictly after now.
func NextTask(tasks []model.Task, now time.Time) (model.Task, bool) {
	n := MinuteOfDay(now)
	for _, st := range sortedScheduled(tasks) {
		if st.start.Minutes() > n {
			return st.task, true
		}
	}
	return model.Task{}, false
}

func RemainingMinutes(active model.Task, now time.Time) (int, bool) {
	c, ok := active.Start()
	if !ok {
		return 0, false
	}
	diff := c.Minutes() + active.EffectiveDuration() - MinuteOfDay(now)
	if diff <= 0 {
		return 0, false
	}
	return diff, true
}

func UntilNextMinutes(next model.Task, now time.Time) (int, bool) {
	c, ok := next.Start()
	if !ok {
		return 0, false
	}
	diff := c.Minutes() - MinuteOfDay(now)
	if diff <= 0 {
		return 0, false
	}
	return diff, true
}

// Compute evaluates all clock relations for tasks at now.
func Compute(tasks []model.Task, now time.Time) Relations {
	var r Relations
	if t, ok := ActiveTask(tasks, now); ok {
		r.Active = &t
		r.Remaining, r.HasRemaining = RemainingMinutes(t, now)
	}
	if t, ok := NextTask(tasks, now); ok {
		r.Next = &t
		r.Until, r.HasUntil = UntilNextMinutes(t, now)
	}
	return r
}
