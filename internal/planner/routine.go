package planner

import "github.com/sandeepkv93/hummingbird/internal/model"

const (
	lunchColor  = "#F59E0B"
	coffeeColor = "#8B5CF6"
)

// RoutineDrafts are the blocks added to today's backlog when the daily
// routine is on.
func RoutineDrafts() []model.Draft {
	return []model.Draft{
		{Title: "Lunch", Duration: 60, Category: "Personal", Color: lunchColor},
		{Title: "Coffee", Duration: 15, Category: "Personal", Color: coffeeColor},
		{Title: "Coffee", Duration: 15, Category: "Personal", Color: coffeeColor},
	}
}

// ApplyRoutine injects the routine blocks at most once per calendar day.
// It reports whether anything was added.
func (p *Planner) ApplyRoutine() bool {
	if !p.routineActive || p.routineAppliedOn == p.days.Today {
		return false
	}
	now := p.now()
	for _, d := range RoutineDrafts() {
		t, err := model.NewTask(d, p.days.Today, now)
		if err != nil {
			p.log.WithError(err).Warn("skipping routine block")
			continue
		}
		p.tasks = append(p.tasks, t)
	}
	p.routineAppliedOn = p.days.Today
	p.markDirty(KeyTasks, KeyLastRoutineDate)
	p.log.WithField("date", p.days.Today).Info("daily routine loaded")
	return true
}

// SetRoutine toggles the daily routine. Turning it on injects today's blocks
// unless they were already added today.
func (p *Planner) SetRoutine(on bool) bool {
	if p.routineActive != on {
		p.routineActive = on
		p.markDirty(KeyRoutineActive)
	}
	return p.ApplyRoutine()
}

func (p *Planner) RoutineActive() bool {
	return p.routineActive
}

func (p *Planner) RoutineAppliedOn() string {
	return p.routineAppliedOn
}

// Rollover moves the session to a new local day once the clock passes
// midnight: tasks leaving the window are pruned and the routine is applied.
// It reports whether the day changed.
func (p *Planner) Rollover() bool {
	days := NewDayKeys(p.now())
	if days == p.days {
		return false
	}
	p.days = days
	if kept := Prune(p.tasks, days); len(kept) != len(p.tasks) {
		p.tasks = kept
		p.markDirty(KeyTasks)
	}
	p.ApplyRoutine()
	p.log.WithField("today", days.Today).Info("rolled over to a new day")
	return true
}
