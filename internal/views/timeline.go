package views

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type HourMarkData struct {
	Label  string
	Offset float64
}

type TimelineBarData struct {
	ID        string
	Title     string
	Color     string
	Offset    float64
	Width     float64
	Completed bool
	Selected  bool
	Active    bool
	Overlap   bool
}

type GuideData struct {
	Offset float64
	Label  string
}

// TimelineData describes the grid in cell units. Scroll is the left edge of
// the visible range and Viewport its width in cells.
type TimelineData struct {
	Marks     []HourMarkData
	Bars      []TimelineBarData
	Scroll    float64
	Viewport  int
	GridWidth float64
	ShowNow   bool
	NowOffset float64
	NowLabel  string
	Guide     *GuideData
	Dragging  string
}

var (
	nowStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	guideStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	tickStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func RenderTimeline(data TimelineData) string {
	cols := data.Viewport
	if cols <= 0 {
		cols = int(math.Ceil(data.GridWidth - data.Scroll))
	}
	if cols <= 0 {
		return "timeline: (no visible hours)"
	}
	cell := func(offset float64) int {
		return int(math.Floor(offset - data.Scroll))
	}

	labels := blank(cols)
	ticks := []rune(strings.Repeat(".", cols))
	for _, mark := range data.Marks {
		c := cell(mark.Offset)
		if c < 0 || c >= cols {
			continue
		}
		ticks[c] = '|'
		for i, r := range mark.Label {
			if c+i < cols {
				labels[c+i] = r
			}
		}
	}
	if end := cell(data.GridWidth); end < cols {
		for i := max(end, 0); i < cols; i++ {
			ticks[i] = ' '
		}
	}

	var b strings.Builder
	b.WriteString(gutter + string(labels) + "\n")
	b.WriteString(gutter + tickStyle.Render(string(ticks)) + "\n")
	b.WriteString(markerRow(cols, data.ShowNow, cell(data.NowOffset), "v now "+data.NowLabel, nowStyle) + "\n")
	if data.Guide != nil {
		b.WriteString(markerRow(cols, true, cell(data.Guide.Offset), "| "+data.Guide.Label, guideStyle) + "\n")
	}

	if len(data.Bars) == 0 {
		b.WriteString(mutedStyle.Render("(nothing scheduled, press m on a backlog task to place it)"))
		return strings.TrimRight(b.String(), "\n")
	}
	for _, bar := range data.Bars {
		b.WriteString(renderBar(bar, cols, cell) + "\n")
	}
	if data.Dragging != "" {
		b.WriteString(guideStyle.Render("moving: "+data.Dragging) + "  " + mutedStyle.Render("[h/l]15m [H/L]1h [enter]drop [esc]cancel"))
	}
	return strings.TrimRight(b.String(), "\n")
}

// Terminal coordinates of the first grid cell and the first timeline line
// when RenderApp draws the timeline under the header and relations lines.
const (
	TimelineOriginX = 4
	TimelineOriginY = 3
)

// BarRow is the timeline line holding the i-th bar.
func BarRow(i int, guide bool) int {
	row := 3 + i
	if guide {
		row++
	}
	return row
}

// gutter holds the selection cursor left of the grid.
const gutter = "  "

func blank(n int) []rune {
	return []rune(strings.Repeat(" ", n))
}

func markerRow(cols int, show bool, c int, label string, style lipgloss.Style) string {
	if !show || c < 0 || c >= cols {
		return ""
	}
	row := blank(cols)
	for i, r := range label {
		if c+i >= cols {
			break
		}
		row[c+i] = r
	}
	return gutter + style.Render(strings.TrimRight(string(row), " "))
}

func renderBar(bar TimelineBarData, cols int, cell func(float64) int) string {
	start := cell(bar.Offset)
	end := cell(bar.Offset + bar.Width)
	if end <= start {
		end = start + 1
	}
	label := bar.Title
	if bar.Overlap {
		label = "!" + label
	}
	if bar.Completed {
		label = "✓ " + label
	}
	cursor := gutter
	if bar.Selected {
		cursor = "> "
	}
	switch {
	case end <= 0:
		return cursor + mutedStyle.Render("< "+label)
	case start >= cols:
		return cursor + mutedStyle.Render(fmt.Sprintf("%*s", max(cols, 0), label+" >"))
	}
	start = max(start, 0)
	end = min(end, cols)

	width := end - start
	text := []rune(" " + label)
	if len(text) > width {
		text = text[:width]
	}
	body := string(text) + strings.Repeat(" ", width-len(text))

	style := lipgloss.NewStyle().Background(lipgloss.Color(bar.Color)).Foreground(lipgloss.Color("0"))
	if bar.Completed {
		style = style.Faint(true).Strikethrough(true)
	}
	if bar.Active {
		style = style.Bold(true)
	}
	if bar.Selected {
		style = style.Underline(true)
	}
	return cursor + strings.Repeat(" ", start) + style.Render(body)
}
