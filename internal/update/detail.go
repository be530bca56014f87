package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/hummingbird/internal/model"
	"github.com/sandeepkv93/hummingbird/internal/views"
)

func (m Model) openDetail(id string) Model {
	m.CurrentView = ViewDetail
	m.Detail = DetailState{TaskID: id}
	m.refreshDetail()
	return m
}

func (m Model) closeDetail() Model {
	m.CurrentView = ViewPlanner
	m.Detail = DetailState{}
	m.subtaskInput.Blur()
	m.subtaskInput.SetValue("")
	m.syncSelection()
	return m
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	t, ok := m.planner.Task(m.Detail.TaskID)
	if !ok {
		return m.closeDetail(), nil
	}

	if m.Detail.Editing {
		switch msg.String() {
		case "esc":
			m.Detail.Editing = false
			m.subtaskInput.Blur()
			m.subtaskInput.SetValue("")
			return m, nil
		case "enter":
			text := m.subtaskInput.Value()
			if err := m.planner.AddSubtask(t.ID, text); err != nil {
				m.Status = StatusBar{Text: err.Error(), IsError: true}
				return m, nil
			}
			m.subtaskInput.SetValue("")
			m.Detail.Cursor = len(t.Subtasks)
			m.Status = StatusBar{Text: "subtask added"}
			return m, m.commitDetail()
		}
		var cmd tea.Cmd
		m.subtaskInput, cmd = m.subtaskInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "esc", "backspace":
		return m.closeDetail(), nil
	case "up", "k":
		if m.Detail.Cursor > 0 {
			m.Detail.Cursor--
		}
	case "down", "j":
		if m.Detail.Cursor < len(t.Subtasks)-1 {
			m.Detail.Cursor++
		}
	case "a":
		m.Detail.Editing = true
		m.subtaskInput.SetValue("")
		m.subtaskInput.Focus()
		return m, nil
	case " ":
		if s, ok := subtaskAt(t, m.Detail.Cursor); ok {
			m.planner.ToggleSubtask(t.ID, s.ID)
			return m, m.commitDetail()
		}
	case "x":
		if s, ok := subtaskAt(t, m.Detail.Cursor); ok {
			m.planner.RemoveSubtask(t.ID, s.ID)
			if m.Detail.Cursor >= len(t.Subtasks)-1 && m.Detail.Cursor > 0 {
				m.Detail.Cursor--
			}
			return m, m.commitDetail()
		}
	case "c":
		m.planner.ToggleComplete(t.ID)
		return m, m.commitDetail()
	case "+", "=":
		return m.adjustDuration(t, 15)
	case "-":
		return m.adjustDuration(t, -15)
	case ">", ".":
		return m.adjustStart(t, 15)
	case "<", ",":
		return m.adjustStart(t, -15)
	case "t":
		m.planner.MoveToTomorrow(t.ID)
		m.Status = StatusBar{Text: fmt.Sprintf("moved to tomorrow: %s", t.Title)}
		return m, m.commitDetail()
	case "d", "delete":
		m.planner.DeleteTask(t.ID)
		m.Status = StatusBar{Text: fmt.Sprintf("deleted: %s", t.Title)}
		next := m.closeDetail()
		return next, next.commit()
	case "f":
		return m.openFocus(t, true), nil
	}
	m.refreshDetail()
	return m, nil
}

func (m *Model) commitDetail() tea.Cmd {
	cmd := m.commit()
	m.refreshDetail()
	return cmd
}

func (m Model) adjustDuration(t model.Task, delta int) (tea.Model, tea.Cmd) {
	total := t.Duration + delta
	if err := m.planner.SetDuration(t.ID, total/60, total%60); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	return m, m.commitDetail()
}

// adjustStart nudges a scheduled task along the grid. Backlog tasks have no
// start to nudge.
func (m Model) adjustStart(t model.Task, delta int) (tea.Model, tea.Cmd) {
	c, ok := t.Start()
	if !ok {
		m.Status = StatusBar{Text: "task is not on the timeline; press m to place it", IsError: true}
		return m, nil
	}
	minutes := min(max(c.Minutes()+delta, 0), 23*60+59)
	next := model.ClockFromMinutes(minutes)
	if err := m.planner.SetStartTime(t.ID, next.Hour, next.Minute); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	return m, m.commitDetail()
}

func subtaskAt(t model.Task, i int) (model.SubTask, bool) {
	if i < 0 || i >= len(t.Subtasks) {
		return model.SubTask{}, false
	}
	return t.Subtasks[i], true
}

// refreshDetail re-renders the markdown summary into the detail viewport.
func (m *Model) refreshDetail() {
	t, ok := m.planner.Task(m.Detail.TaskID)
	if !ok {
		m.detailViewport.SetContent("")
		return
	}
	m.detailViewport.SetContent(views.RenderMarkdown(detailMarkdown(t)))
}

func detailMarkdown(t model.Task) string {
	var b strings.Builder
	b.WriteString("# " + t.Title + "\n\n")
	b.WriteString(fmt.Sprintf("- **Category:** %s\n", t.ParentCategory))
	b.WriteString(fmt.Sprintf("- **Day:** %s\n", t.Date))
	if t.IsScheduled() {
		b.WriteString(fmt.Sprintf("- **Starts:** %s\n", t.StartTime))
	} else {
		b.WriteString("- **Starts:** not scheduled\n")
	}
	b.WriteString(fmt.Sprintf("- **Duration:** %s\n", formatMinutes(t.Duration)))
	status := "open"
	if t.Completed {
		status = "done"
	}
	b.WriteString(fmt.Sprintf("- **Status:** %s\n", status))
	return b.String()
}

func (m Model) renderDetailView() string {
	t, ok := m.planner.Task(m.Detail.TaskID)
	if !ok {
		return "detail:\n(task no longer exists)"
	}
	rows := make([]views.SubtaskRowData, 0, len(t.Subtasks))
	for i, s := range t.Subtasks {
		row := views.SubtaskRowData{Text: s.Text, Completed: s.Completed, Selected: i == m.Detail.Cursor}
		if s.CompletedAt != nil {
			row.CompletedAt = m.timeFromMillis(*s.CompletedAt).Format("15:04")
		}
		rows = append(rows, row)
	}
	progress := t.Progress()
	return views.RenderDetailPanel(views.DetailPanelData{
		Title:        t.Title,
		MarkdownView: m.detailViewport.View(),
		Subtasks:     rows,
		ProgressView: m.detailProgress.ViewAs(progress),
		ProgressPct:  int(progress * 100),
		InputView:    m.subtaskInput.View(),
		Editing:      m.Detail.Editing,
	})
}
