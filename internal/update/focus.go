package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/hummingbird/internal/model"
	"github.com/sandeepkv93/hummingbird/internal/views"
)

// openFocus switches to the focus view. With a task the timer counts down
// the task's duration; without one it runs work and break phases.
func (m Model) openFocus(t model.Task, withTask bool) Model {
	m.CurrentView = ViewFocus
	m.Focus.Running = false
	if withTask {
		m.Focus.TaskID = t.ID
		m.Focus.TaskTitle = t.Title
		m.Focus.TaskDurationSec = t.EffectiveDuration() * 60
		m.Focus.Phase = FocusPhaseTask
		m.Focus.RemainingSec = m.Focus.TaskDurationSec
		return m
	}
	m.Focus.TaskID = ""
	m.Focus.TaskTitle = ""
	m.Focus.Phase = FocusPhaseWork
	m.Focus.RemainingSec = m.Focus.WorkDurationSec
	return m
}

func (m Model) handleFocusKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case " ":
		if m.Focus.Running {
			m.Focus.Running = false
			m.Status = StatusBar{Text: "focus paused"}
			return m, nil
		}
		if m.Focus.RemainingSec <= 0 {
			m.Focus.RemainingSec = m.currentFocusTotal()
		}
		m.Focus.Running = true
		m.Focus.gen++
		m.Status = StatusBar{Text: "focus running"}
		return m, focusTickCmd(m.Focus.gen)
	case "r":
		m.Focus.Running = false
		m.Focus.RemainingSec = m.currentFocusTotal()
		m.Status = StatusBar{Text: "focus reset"}
		return m, nil
	case "n":
		if m.Focus.Phase != FocusPhaseTask {
			m.completeFocusPhase()
		}
		return m, nil
	case "esc":
		// the timer does not outlive its view
		m.Focus.Running = false
		m.CurrentView = ViewPlanner
		m.syncSelection()
		return m, nil
	}
	return m, nil
}

func (m Model) onFocusTick(msg FocusTickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.Focus.gen {
		return m, nil
	}
	if !m.Focus.Running || m.CurrentView != ViewFocus {
		m.Focus.Running = false
		return m, nil
	}
	if m.Focus.RemainingSec > 0 {
		m.Focus.RemainingSec--
	}
	if m.Focus.RemainingSec > 0 {
		return m, focusTickCmd(m.Focus.gen)
	}
	m.Focus.Running = false
	switch m.Focus.Phase {
	case FocusPhaseTask:
		return m, m.finishFocusTask()
	case FocusPhaseWork:
		m.Status = StatusBar{Text: "work session complete; press n to start break"}
	default:
		m.Status = StatusBar{Text: "break complete; press n for next focus block"}
	}
	return m, nil
}

// finishFocusTask marks the focused task complete when its countdown ends.
func (m *Model) finishFocusTask() tea.Cmd {
	t, ok := m.planner.Task(m.Focus.TaskID)
	if !ok {
		m.Status = StatusBar{Text: "focus finished; the task no longer exists"}
		return nil
	}
	if !t.Completed {
		m.planner.ToggleComplete(t.ID)
	}
	m.Status = StatusBar{Text: fmt.Sprintf("focus finished: %s marked done", t.Title)}
	m.notify("Focus", m.Status.Text, "info")
	return m.commit()
}

func (m *Model) completeFocusPhase() {
	if m.Focus.Phase == FocusPhaseWork {
		m.Focus.CompletedPomodoros++
		m.Focus.Phase = FocusPhaseBreak
		m.Focus.RemainingSec = m.Focus.BreakDurationSec
		m.Focus.Running = false
		m.Status = StatusBar{Text: "break ready"}
		return
	}
	m.Focus.Phase = FocusPhaseWork
	m.Focus.RemainingSec = m.Focus.WorkDurationSec
	m.Focus.Running = false
	m.Status = StatusBar{Text: "focus block ready"}
}

func (m Model) currentFocusTotal() int {
	switch m.Focus.Phase {
	case FocusPhaseTask:
		return m.Focus.TaskDurationSec
	case FocusPhaseBreak:
		return m.Focus.BreakDurationSec
	default:
		return m.Focus.WorkDurationSec
	}
}

func (m Model) renderFocusView() string {
	total := m.currentFocusTotal()
	progress := 0.0
	if total > 0 {
		progress = float64(total-m.Focus.RemainingSec) / float64(total)
	}
	return views.RenderFocusPanel(views.FocusPanelData{
		TaskTitle:          m.Focus.TaskTitle,
		Phase:              string(m.Focus.Phase),
		Timer:              formatDuration(m.Focus.RemainingSec),
		ProgressView:       m.focusProgress.ViewAs(progress),
		ProgressPct:        int(progress * 100),
		CompletedPomodoros: m.Focus.CompletedPomodoros,
		ShowEndPrompt:      !m.Focus.Running && m.Focus.RemainingSec == 0,
	})
}

func focusTickCmd(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return FocusTickMsg{Gen: gen} })
}
