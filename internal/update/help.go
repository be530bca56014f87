package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/hummingbird/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return "\n\n" + m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.viewBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Bindings:    plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Backlog, Action: "focus backlog"},
		{Key: m.Keys.Timeline, Action: "focus timeline"},
		{Key: m.Keys.Yesterday, Action: "focus yesterday's pending"},
		{Key: m.Keys.Tomorrow, Action: "focus tomorrow"},
		{Key: "/", Action: "open command palette"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	if m.Drag.Active {
		return []KeyBinding{
			{Key: "h/l", Action: "nudge 15 minutes"},
			{Key: "H/L", Action: "nudge one hour"},
			{Key: "enter", Action: "drop here"},
			{Key: "esc", Action: "cancel placement"},
		}
	}
	switch m.CurrentView {
	case ViewPlanner:
		return []KeyBinding{
			{Key: "j/k", Action: "move selection"},
			{Key: "a/A", Action: "add task today/tomorrow"},
			{Key: "m", Action: "place on timeline"},
			{Key: "u", Action: "back to backlog"},
			{Key: "space", Action: "toggle complete"},
			{Key: "t/b", Action: "move to tomorrow / bring to today"},
			{Key: "enter", Action: "open detail"},
			{Key: "f/F", Action: "focus task / pomodoro"},
			{Key: "h/l .", Action: "scroll timeline / jump to now"},
			{Key: "S", Action: "sync calendar"},
			{Key: "R", Action: "toggle daily routine"},
		}
	case ViewDetail:
		return []KeyBinding{
			{Key: "j/k", Action: "move subtask cursor"},
			{Key: "a", Action: "add subtask"},
			{Key: "space/x", Action: "toggle / remove subtask"},
			{Key: "+/-", Action: "longer / shorter"},
			{Key: "</>", Action: "start earlier / later"},
			{Key: "c", Action: "toggle complete"},
			{Key: "esc", Action: "back"},
		}
	case ViewFocus:
		return []KeyBinding{
			{Key: "space", Action: "start/pause timer"},
			{Key: "r", Action: "reset timer"},
			{Key: "n", Action: "next focus phase"},
		}
	case ViewCapture:
		return []KeyBinding{
			{Key: "tab", Action: "next field"},
			{Key: "ctrl+t", Action: "toggle today/tomorrow"},
			{Key: "enter", Action: "save task"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.viewBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.viewBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
