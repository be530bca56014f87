package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/hummingbird/internal/model"
	"github.com/sandeepkv93/hummingbird/internal/timeline"
)

func (m Model) handlePlannerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case m.Keys.Backlog:
		m.setPane(PaneBacklog)
	case m.Keys.Timeline:
		m.setPane(PaneTimeline)
	case m.Keys.Yesterday:
		m.setPane(PaneYesterday)
	case m.Keys.Tomorrow:
		m.setPane(PaneTomorrow)
	case "tab":
		m.setPane(paneOrder[(paneIndex(m.Pane)+1)%len(paneOrder)])
	case "shift+tab":
		m.setPane(paneOrder[(paneIndex(m.Pane)+len(paneOrder)-1)%len(paneOrder)])
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "a":
		return m.openCapture(false), nil
	case "A":
		return m.openCapture(true), nil
	case "S":
		return m.startSync("")
	case "R":
		on := !m.planner.RoutineActive()
		added := m.planner.SetRoutine(on)
		m.Status = StatusBar{Text: routineStatus(on, added)}
		return m, m.commit()
	case "F":
		return m.openFocus(model.Task{}, false), nil
	}

	switch m.Pane {
	case PaneTimeline:
		switch msg.String() {
		case "left", "h":
			m.scrollBy(-60)
			return m, nil
		case "right", "l":
			m.scrollBy(60)
			return m, nil
		case ".":
			m.scrollToNow()
			return m, nil
		}
	}

	t, ok := m.selectedTask()
	if !ok {
		return m, nil
	}
	switch msg.String() {
	case "enter":
		return m.openDetail(t.ID), nil
	case "f":
		return m.openFocus(t, true), nil
	case " ", "x":
		m.planner.ToggleComplete(t.ID)
		return m, m.commit()
	case "d", "delete":
		m.planner.DeleteTask(t.ID)
		m.Status = StatusBar{Text: fmt.Sprintf("deleted: %s", t.Title)}
		return m, m.commit()
	case "t":
		if m.planner.MoveToTomorrow(t.ID) {
			m.Status = StatusBar{Text: fmt.Sprintf("moved to tomorrow: %s", t.Title)}
		}
		return m, m.commit()
	case "b":
		if t.Date != m.planner.Days().Today && m.planner.BringToToday(t.ID) {
			m.Status = StatusBar{Text: fmt.Sprintf("brought to today: %s", t.Title)}
		}
		return m, m.commit()
	case "u":
		if t.IsScheduled() && m.planner.ClearStartTime(t.ID) {
			m.Status = StatusBar{Text: fmt.Sprintf("back to backlog: %s", t.Title)}
		}
		return m, m.commit()
	case "m":
		return m.startDrag(t, nil), nil
	}
	return m, nil
}

func paneIndex(p Pane) int {
	for i, candidate := range paneOrder {
		if candidate == p {
			return i
		}
	}
	return 0
}

func routineStatus(on, added bool) string {
	switch {
	case on && added:
		return "daily routine on: blocks added to today"
	case on:
		return "daily routine on"
	default:
		return "daily routine off"
	}
}

func (m *Model) setPane(p Pane) {
	m.Pane = p
	m.syncSelection()
}

func (m Model) paneTasks(p Pane) []model.Task {
	switch p {
	case PaneTimeline:
		return m.planner.ScheduledToday()
	case PaneYesterday:
		return m.planner.PendingFromYesterday()
	case PaneTomorrow:
		return m.planner.PlannedForTomorrow()
	default:
		return m.planner.BacklogToday()
	}
}

func (m *Model) moveCursor(delta int) {
	m.Cursors[m.Pane] += delta
	m.syncSelection()
	if m.Pane == PaneTimeline {
		if t, ok := m.selectedTask(); ok {
			if c, ok := t.Start(); ok {
				m.ensureVisible(m.Grid().TimeToOffset(c))
			}
		}
	}
}

// syncSelection clamps the pane cursor and updates SelectedTaskID.
func (m *Model) syncSelection() {
	tasks := m.paneTasks(m.Pane)
	cursor := m.Cursors[m.Pane]
	if cursor >= len(tasks) {
		cursor = len(tasks) - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	m.Cursors[m.Pane] = cursor
	if len(tasks) == 0 {
		m.SelectedTaskID = ""
		return
	}
	m.SelectedTaskID = tasks[cursor].ID
}

func (m Model) selectedTask() (model.Task, bool) {
	if m.SelectedTaskID == "" {
		return model.Task{}, false
	}
	return m.planner.Task(m.SelectedTaskID)
}

// selectTask moves the cursor of the pane that lists id.
func (m *Model) selectTask(id string) {
	for _, p := range paneOrder {
		for i, t := range m.paneTasks(p) {
			if t.ID == id {
				m.Pane = p
				m.Cursors[p] = i
				m.SelectedTaskID = id
				return
			}
		}
	}
}

// refreshClock re-evaluates the active and next tasks for the current time.
func (m *Model) refreshClock() {
	m.Now = m.clock()
	m.Relations = timeline.Compute(m.planner.TodayTasks(), m.Now)
}
