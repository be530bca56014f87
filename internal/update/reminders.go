package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/hummingbird/internal/scheduler"
)

const alertLogLimit = 20

// replanAlerts replaces the pending alerts with the ones derived from
// today's schedule.
func (m *Model) replanAlerts() {
	if m.Scheduler == nil {
		return
	}
	alerts := scheduler.PlanAlerts(m.planner.TodayTasks(), m.planner.Days().Today, m.Now)
	if err := m.Scheduler.Replace(alerts); err != nil {
		m.log.WithError(err).Warn("failed to reschedule alerts")
	}
}

func (m *Model) onAlert(a scheduler.Alert) {
	// alerts planned before an edit may still be in flight
	t, ok := m.planner.Task(a.TaskID)
	if !ok || t.Completed || !t.IsScheduled() {
		return
	}
	m.AlertLog = append(m.AlertLog, a)
	if len(m.AlertLog) > alertLogLimit {
		m.AlertLog = m.AlertLog[len(m.AlertLog)-alertLogLimit:]
	}
	switch a.Kind {
	case scheduler.AlertSoon:
		m.Status = StatusBar{Text: fmt.Sprintf("%s starts at %s", t.Title, t.StartTime)}
		m.notify("Up next", m.Status.Text, "urgent")
	default:
		m.Status = StatusBar{Text: fmt.Sprintf("starting now: %s", t.Title)}
		m.notify("Starting", m.Status.Text, "info")
	}
}

func waitForAlertCmd(ch <-chan scheduler.Alert) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		a, ok := <-ch
		if !ok {
			return nil
		}
		return AlertDueMsg{Alert: a}
	}
}
