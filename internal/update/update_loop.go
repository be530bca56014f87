package update

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/hummingbird/internal/model"
	"github.com/sandeepkv93/hummingbird/internal/planner"
	"github.com/sandeepkv93/hummingbird/internal/scheduler"
	"github.com/sandeepkv93/hummingbird/internal/views"
)

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// ClockTickMsg drives the once-a-second re-evaluation of the clock relations.
type ClockTickMsg struct {
	At time.Time
}

type FocusTickMsg struct {
	Gen int
}

type AlertDueMsg struct {
	Alert scheduler.Alert
}

// SavedMsg reports the outcome of an asynchronous store write.
type SavedMsg struct {
	Writes []planner.Write
	Err    error
}

type SyncResultMsg struct {
	Drafts []model.Draft
	Err    error
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{clockTickCmd(), m.commit()}
	if m.Scheduler != nil {
		cmds = append(cmds, waitForAlertCmd(m.Scheduler.C()))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = typed.Width
		m.Height = typed.Height
		m.clampScroll()
		return m, nil
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		if m.Palette.Active {
			if typed.String() == m.Keys.Help {
				m.HelpVisible = !m.HelpVisible
				return m, nil
			}
			return m.handlePaletteKey(typed)
		}
		switch m.CurrentView {
		case ViewCapture:
			return m.handleCaptureKey(typed)
		case ViewDetail:
			if m.Detail.Editing {
				return m.handleDetailKey(typed)
			}
		}
		if m.Drag.Active {
			return m.handleDragKey(typed)
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.SetValue("")
			m.commandInput.Focus()
			m.Status = StatusBar{Text: "command palette active"}
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown"}
			} else {
				m.Status = StatusBar{Text: "help hidden"}
			}
			return m, nil
		case m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}

		switch m.CurrentView {
		case ViewDetail:
			return m.handleDetailKey(typed)
		case ViewFocus:
			return m.handleFocusKey(typed)
		default:
			return m.handlePlannerKey(typed)
		}
	case tea.MouseMsg:
		if m.CurrentView == ViewCapture || m.Palette.Active {
			return m, nil
		}
		return m.handleMouse(typed)
	case spinner.TickMsg:
		if m.spinnerActive {
			var cmd tea.Cmd
			m.syncSpinner, cmd = m.syncSpinner.Update(typed)
			return m, cmd
		}
	case ClockTickMsg:
		var cmd tea.Cmd
		if m.planner.Rollover() {
			m.Status = StatusBar{Text: "good morning: a new day has started"}
			m.Drag = DragState{}
			cmd = m.commit()
		}
		m.refreshClock()
		return m, tea.Batch(clockTickCmd(), cmd)
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	case SavedMsg:
		m.saving = false
		if typed.Err != nil {
			m.LastError = typed.Err
			m.planner.Requeue(typed.Writes)
			m.log.WithError(typed.Err).Warn("failed to persist planner state")
			m.Status = StatusBar{Text: fmt.Sprintf("save failed: %v", typed.Err), IsError: true}
			return m, nil
		}
		return m, m.saveCmd()
	case SyncResultMsg:
		return m.onSyncResult(typed)
	case FocusTickMsg:
		return m.onFocusTick(typed)
	case AlertDueMsg:
		m.onAlert(typed.Alert)
		if m.Scheduler != nil {
			return m, waitForAlertCmd(m.Scheduler.C())
		}
		return m, nil
	}

	return m, nil
}

// commit runs after every collection change: the alert schedule follows the
// new plan and dirty state is written in the background.
func (m *Model) commit() tea.Cmd {
	m.refreshClock()
	m.syncSelection()
	m.replanAlerts()
	return m.saveCmd()
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	right := ""
	focused := views.RegionLeft
	switch m.CurrentView {
	case ViewDetail:
		right = m.renderDetailView()
		focused = views.RegionRight
	case ViewFocus:
		right = m.renderFocusView()
		focused = views.RegionRight
	case ViewCapture:
		right = m.renderCaptureView()
		focused = views.RegionRight
	default:
		right = m.renderSideLists()
		switch m.Pane {
		case PaneTimeline:
			focused = views.RegionTimeline
		case PaneYesterday, PaneTomorrow:
			focused = views.RegionRight
		}
	}
	if m.Palette.Active {
		right = views.RenderCommandPalette(true, m.commandInput.View()) + "\n\n" + right
	}
	right += m.renderHelpIfVisible()

	notification := ""
	if m.spinnerActive {
		notification = "sync: " + m.syncSpinner.View() + " running"
	}
	notification = strings.TrimSpace(strings.Join([]string{notification, m.renderNotificationsView()}, "\n"))

	days := m.planner.Days()
	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("hummingbird | %s | %s | pane: %s", m.Now.Format("Mon 02 Jan"), days.Today, m.Pane),
		Relations:    m.renderRelations(),
		Timeline:     m.renderTimeline(),
		LeftPane:     m.renderBacklog(),
		RightPane:    right,
		StatusLine:   status,
		StatusError:  m.Status.IsError,
		Notification: notification,
		Footer:       fmt.Sprintf("keys: %s-%s panes | a add | m move | enter detail | f focus | S sync | / cmd | %s help | %s quit", m.Keys.Backlog, m.Keys.Tomorrow, m.Keys.Help, m.Keys.Quit),
		Width:        m.Width,
		Focused:      focused,
	})
}

func clockTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return ClockTickMsg{At: t} })
}
