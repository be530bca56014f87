package scheduler

import (
	"time"

	"github.com/sandeepkv93/hummingbird/internal/model"
	"github.com/sandeepkv93/hummingbird/internal/timeline"
)

// PlanAlerts derives the alerts still ahead of now for the unfinished,
// scheduled tasks dated date. Each task gets an alert at its start and one
// UrgentThresholdMinutes before it.
func PlanAlerts(tasks []model.Task, date string, now time.Time) []Alert {
	day, err := time.ParseInLocation(model.DateLayout, date, now.Location())
	if err != nil {
		return nil
	}
	var out []Alert
	for _, t := range timeline.ScheduledTasks(tasks) {
		if t.Date != date || t.Completed {
			continue
		}
		c, _ := t.Start()
		start := time.Date(day.Year(), day.Month(), day.Day(), c.Hour, c.Minute, 0, 0, day.Location())
		soon := start.Add(-timeline.UrgentThresholdMinutes * time.Minute)
		if soon.After(now) {
			out = append(out, Alert{ID: t.ID + ":" + string(AlertSoon), TaskID: t.ID, Kind: AlertSoon, Title: t.Title, TriggerAt: soon})
		}
		if start.After(now) {
			out = append(out, Alert{ID: t.ID + ":" + string(AlertStart), TaskID: t.ID, Kind: AlertStart, Title: t.Title, TriggerAt: start})
		}
	}
	return out
}
