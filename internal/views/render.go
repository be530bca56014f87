package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Header       string
	Relations    string
	Timeline     string
	LeftPane     string
	RightPane    string
	StatusLine   string
	StatusError  bool
	Footer       string
	Notification string
	Width        int
	Focused      Region
}

// Region names a bordered area of the layout.
type Region int

const (
	RegionNone Region = iota
	RegionTimeline
	RegionLeft
	RegionRight
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	urgentStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	focusStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("12")).Padding(0, 1)
)

// DefaultWidth is used when the terminal size is not known yet.
const DefaultWidth = 120

func RenderApp(data AppData) string {
	width := data.Width
	if width <= 0 {
		width = DefaultWidth
	}
	// lipgloss widths exclude the border
	full := width - 2
	half := width/2 - 2

	lines := []string{headerStyle.Render(data.Header)}
	if data.Relations != "" {
		lines = append(lines, data.Relations)
	}
	if data.Timeline != "" {
		lines = append(lines, pane(data.Timeline, data.Focused == RegionTimeline, full))
	}
	left := pane(data.LeftPane, data.Focused == RegionLeft, half)
	right := pane(data.RightPane, data.Focused == RegionRight, half)
	lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, left, right))

	status := statusStyle.Render(data.StatusLine)
	if data.StatusError {
		status = errorStyle.Render(data.StatusLine)
	}
	lines = append(lines, status)
	if data.Notification != "" {
		lines = append(lines, panelStyle.Render(data.Notification))
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

func pane(content string, focused bool, width int) string {
	if focused {
		return focusStyle.Width(width).Render(content)
	}
	return panelStyle.Width(width).Render(content)
}

func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
