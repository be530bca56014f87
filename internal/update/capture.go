package update

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/hummingbird/internal/commands"
	"github.com/sandeepkv93/hummingbird/internal/model"
	"github.com/sandeepkv93/hummingbird/internal/views"
)

const (
	captureTitle = iota
	captureDuration
	captureCategory
)

var captureLabels = []string{"title", "duration", "category"}

var errBadDuration = errors.New("duration must look like 30m, 1h or 1h30")

func (m Model) openCapture(tomorrow bool) Model {
	m.CurrentView = ViewCapture
	m.Capture = CaptureState{Tomorrow: tomorrow}
	for i := range m.captureInputs {
		m.captureInputs[i].SetValue("")
		m.captureInputs[i].Blur()
	}
	m.captureInputs[captureTitle].Focus()
	return m
}

func (m Model) closeCapture() Model {
	for i := range m.captureInputs {
		m.captureInputs[i].Blur()
	}
	m.CurrentView = ViewPlanner
	m.Capture = CaptureState{}
	return m
}

func (m Model) handleCaptureKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m = m.closeCapture()
		m.Status = StatusBar{Text: "capture cancelled"}
		return m, nil
	case "tab", "down":
		m.focusCaptureField((m.Capture.Field + 1) % len(m.captureInputs))
		return m, nil
	case "shift+tab", "up":
		m.focusCaptureField((m.Capture.Field + len(m.captureInputs) - 1) % len(m.captureInputs))
		return m, nil
	case "ctrl+t":
		m.Capture.Tomorrow = !m.Capture.Tomorrow
		return m, nil
	case "enter":
		return m.submitCapture()
	}
	var cmd tea.Cmd
	m.captureInputs[m.Capture.Field], cmd = m.captureInputs[m.Capture.Field].Update(msg)
	return m, cmd
}

func (m *Model) focusCaptureField(i int) {
	m.captureInputs[m.Capture.Field].Blur()
	m.Capture.Field = i
	m.captureInputs[i].Focus()
}

func (m Model) submitCapture() (tea.Model, tea.Cmd) {
	d, err := m.captureDraft()
	if err != nil {
		m.Capture.Err = err.Error()
		return m, nil
	}
	t, err := m.planner.AddTask(d, m.Capture.Tomorrow)
	if err != nil {
		m.Capture.Err = err.Error()
		return m, nil
	}
	tomorrow := m.Capture.Tomorrow
	m = m.closeCapture()
	if tomorrow {
		m.Status = StatusBar{Text: fmt.Sprintf("added for tomorrow: %s", t.Title)}
	} else {
		m.Status = StatusBar{Text: fmt.Sprintf("added task: %s", t.Title)}
	}
	cmd := m.commit()
	m.selectTask(t.ID)
	return m, cmd
}

func (m Model) captureDraft() (model.Draft, error) {
	d := model.Draft{
		Title:    m.captureInputs[captureTitle].Value(),
		Duration: commands.DefaultDuration,
		Category: model.CategoryOr(m.captureInputs[captureCategory].Value()),
	}
	if raw := strings.TrimSpace(m.captureInputs[captureDuration].Value()); raw != "" {
		minutes, ok := commands.ParseDuration(raw)
		if !ok {
			return model.Draft{}, errBadDuration
		}
		d.Duration = minutes
	}
	return d, nil
}

func (m Model) renderCaptureView() string {
	fields := make([]views.CaptureFieldData, 0, len(m.captureInputs))
	for i, in := range m.captureInputs {
		fields = append(fields, views.CaptureFieldData{
			Label:   captureLabels[i],
			View:    in.View(),
			Focused: i == m.Capture.Field,
		})
	}
	out := views.RenderCaptureForm(views.CaptureFormData{
		Tomorrow: m.Capture.Tomorrow,
		Fields:   fields,
		Error:    m.Capture.Err,
	})
	return out + "\n" + categoriesLine(m.planner.Categories())
}

func categoriesLine(cats []string) string {
	return "categories: " + strings.Join(cats, ", ")
}
