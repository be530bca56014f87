package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type TaskRowData struct {
	ID           string
	Title        string
	Category     string
	Color        string
	Start        string
	Duration     int
	Completed    bool
	Selected     bool
	Subtasks     int
	SubtasksDone int
}

type TaskListData struct {
	Title   string
	Actions string
	Empty   string
	Rows    []TaskRowData
}

type RelationsData struct {
	Now          string
	ActiveTitle  string
	HasActive    bool
	Remaining    int
	HasRemaining bool
	NextTitle    string
	NextStart    string
	HasNext      bool
	Until        int
	HasUntil     bool
	Urgent       bool
}

type SubtaskRowData struct {
	Text        string
	Completed   bool
	Selected    bool
	CompletedAt string
}

type DetailPanelData struct {
	Title        string
	MarkdownView string
	Subtasks     []SubtaskRowData
	ProgressView string
	ProgressPct  int
	InputView    string
	Editing      bool
}

type CaptureFieldData struct {
	Label   string
	View    string
	Focused bool
}

type CaptureFormData struct {
	Tomorrow bool
	Fields   []CaptureFieldData
	Error    string
}

type FocusPanelData struct {
	TaskTitle          string
	Phase              string
	Timer              string
	ProgressView       string
	ProgressPct        int
	CompletedPomodoros int
	ShowEndPrompt      bool
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderTaskList(data TaskListData) string {
	var b strings.Builder
	b.WriteString(data.Title + ":\n")
	if data.Actions != "" {
		b.WriteString(mutedStyle.Render("actions: "+data.Actions) + "\n")
	}
	if len(data.Rows) == 0 {
		empty := data.Empty
		if empty == "" {
			empty = "(none)"
		}
		b.WriteString("  " + empty)
		return b.String()
	}
	for _, row := range data.Rows {
		b.WriteString(renderTaskRow(row) + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func renderTaskRow(row TaskRowData) string {
	cursor := " "
	if row.Selected {
		cursor = ">"
	}
	check := "[ ]"
	if row.Completed {
		check = "[x]"
	}
	swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(row.Color)).Render("■")
	title := row.Title
	if row.Completed {
		title = mutedStyle.Render(title)
	}
	line := fmt.Sprintf("%s %s %s %s %s", cursor, check, swatch, title, mutedStyle.Render(fmt.Sprintf("%dm #%s", row.Duration, row.Category)))
	if row.Start != "" {
		line += " @" + row.Start
	}
	if row.Subtasks > 0 {
		line += fmt.Sprintf(" (%d/%d)", row.SubtasksDone, row.Subtasks)
	}
	return line
}

func RenderRelations(data RelationsData) string {
	parts := []string{"now " + data.Now}
	switch {
	case data.HasActive && data.HasRemaining:
		parts = append(parts, fmt.Sprintf("active: %s (%dm left)", data.ActiveTitle, data.Remaining))
	case data.HasActive:
		parts = append(parts, "active: "+data.ActiveTitle)
	default:
		parts = append(parts, "active: -")
	}
	if data.HasNext {
		next := fmt.Sprintf("next: %s at %s", data.NextTitle, data.NextStart)
		if data.HasUntil {
			next += fmt.Sprintf(" (in %dm)", data.Until)
		}
		if data.Urgent {
			next = urgentStyle.Render(next + " soon")
		}
		parts = append(parts, next)
	} else {
		parts = append(parts, "next: -")
	}
	return strings.Join(parts, " | ")
}

func RenderDetailPanel(data DetailPanelData) string {
	var b strings.Builder
	b.WriteString("detail:\n")
	b.WriteString(data.MarkdownView + "\n\n")
	b.WriteString(fmt.Sprintf("subtasks: %s %d%%\n", data.ProgressView, data.ProgressPct))
	if len(data.Subtasks) == 0 {
		b.WriteString("  (no subtasks)\n")
	}
	for _, s := range data.Subtasks {
		cursor := " "
		if s.Selected {
			cursor = ">"
		}
		check := "[ ]"
		if s.Completed {
			check = "[x]"
		}
		line := fmt.Sprintf("%s %s %s", cursor, check, s.Text)
		if s.CompletedAt != "" {
			line += mutedStyle.Render(" done " + s.CompletedAt)
		}
		b.WriteString(line + "\n")
	}
	if data.Editing {
		b.WriteString(data.InputView + "\n")
	}
	b.WriteString(mutedStyle.Render("actions: [j/k]move [space]toggle [a]add [x]remove [+/-]15m [esc]back"))
	return b.String()
}

func RenderCaptureForm(data CaptureFormData) string {
	var b strings.Builder
	if data.Tomorrow {
		b.WriteString("new task for tomorrow:\n")
	} else {
		b.WriteString("new task for today:\n")
	}
	for _, f := range data.Fields {
		cursor := " "
		if f.Focused {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %-9s %s\n", cursor, f.Label, f.View))
	}
	if data.Error != "" {
		b.WriteString(errorStyle.Render("error: "+data.Error) + "\n")
	}
	b.WriteString(mutedStyle.Render("keys: [tab]next field [ctrl+t]today/tomorrow [enter]save [esc]cancel"))
	return b.String()
}

func RenderFocusPanel(data FocusPanelData) string {
	var b strings.Builder
	b.WriteString("focus:\n")
	if data.TaskTitle != "" {
		b.WriteString(fmt.Sprintf("task: %s\n", data.TaskTitle))
	} else {
		b.WriteString("task: (none selected)\n")
	}
	b.WriteString(fmt.Sprintf("phase: %s\n", strings.ToUpper(data.Phase)))
	b.WriteString(fmt.Sprintf("timer: %s\n", data.Timer))
	b.WriteString(fmt.Sprintf("progress: %s %d%%\n", data.ProgressView, data.ProgressPct))
	if data.CompletedPomodoros > 0 {
		b.WriteString(fmt.Sprintf("pomodoros completed: %d\n", data.CompletedPomodoros))
	}
	b.WriteString("actions: [space]start/pause [r]reset [n]next-phase [esc]back\n")
	if data.ShowEndPrompt {
		b.WriteString("prompt: session ended")
	}
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: %s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	text := fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
	if level == "urgent" || level == "error" {
		return urgentStyle.Render(text)
	}
	return text
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}
