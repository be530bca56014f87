package update

import (
	"fmt"
	"math"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/hummingbird/internal/model"
	"github.com/sandeepkv93/hummingbird/internal/timeline"
	"github.com/sandeepkv93/hummingbird/internal/views"
)

// viewportCells is the number of grid cells visible inside the timeline panel.
func (m Model) viewportCells() int {
	width := m.Width
	if width <= 0 {
		width = views.DefaultWidth
	}
	// two border columns, two padding columns and the cursor gutter
	return max(width-6, 1)
}

func (m *Model) clampScroll() {
	limit := math.Max(m.Grid().Width()-float64(m.viewportCells()), 0)
	m.Scroll = math.Min(math.Max(m.Scroll, 0), limit)
}

// scrollBy shifts the visible range by the given number of minutes.
func (m *Model) scrollBy(minutes int) {
	m.Scroll += float64(minutes) * m.Grid().PxPerMinute
	m.clampScroll()
}

// scrollToNow puts the current time a third of the way into the viewport.
func (m *Model) scrollToNow() {
	g := m.Grid()
	now := g.TimeToOffset(model.Clock{Hour: m.Now.Hour(), Minute: m.Now.Minute()})
	m.Scroll = now - float64(m.viewportCells())/3
	m.clampScroll()
}

func (m *Model) ensureVisible(offset float64) {
	cells := float64(m.viewportCells())
	switch {
	case offset < m.Scroll:
		m.Scroll = offset
	case offset >= m.Scroll+cells:
		m.Scroll = offset - cells + 1
	}
	m.clampScroll()
}

func (m Model) nowOffset() (float64, bool) {
	g := m.Grid()
	off := g.TimeToOffset(model.Clock{Hour: m.Now.Hour(), Minute: m.Now.Minute()})
	return off, off >= 0 && off < g.Width()
}

// startDrag picks up t. With a pointer offset the task follows the mouse;
// without one it starts at its current slot, the current time, or the left
// edge of the viewport, snapped to the grid.
func (m Model) startDrag(t model.Task, pointer *float64) Model {
	if t.Date != m.planner.Days().Today {
		m.Status = StatusBar{Text: "only today's tasks can be placed on the timeline", IsError: true}
		return m
	}
	g := m.Grid()
	var offset float64
	switch {
	case pointer != nil:
		offset = *pointer
	default:
		offset = m.Scroll
		if c, ok := t.Start(); ok {
			offset = g.TimeToOffset(c)
		} else if now, ok := m.nowOffset(); ok {
			offset = now
		}
		offset = timeline.PreviewSnapPosition(offset-m.Scroll, m.Scroll, g)
	}
	m.Drag = DragState{Active: true, TaskID: t.ID, Title: t.Title, Offset: m.clampDrag(offset)}
	m.ensureVisible(m.Drag.Offset)
	m.Status = StatusBar{Text: fmt.Sprintf("moving %s", t.Title)}
	return m
}

func (m Model) clampDrag(offset float64) float64 {
	g := m.Grid()
	last := g.Width() - timeline.SnapStep*g.PxPerMinute
	return math.Min(math.Max(offset, 0), last)
}

func (m Model) handleDragKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	step := timeline.SnapStep * m.Grid().PxPerMinute
	switch msg.String() {
	case "left", "h":
		m.moveDrag(-step)
	case "right", "l":
		m.moveDrag(step)
	case "H":
		m.moveDrag(-4 * step)
	case "L":
		m.moveDrag(4 * step)
	case "enter", "m":
		return m.drop()
	case "esc":
		m.Drag = DragState{}
		m.Status = StatusBar{Text: "move cancelled"}
	}
	return m, nil
}

func (m *Model) moveDrag(delta float64) {
	m.Drag.Offset = m.clampDrag(m.Drag.Offset + delta)
	m.ensureVisible(m.Drag.Offset)
}

// drop writes the snapped start time of the dragged task. This is the only
// mutation a drag performs.
func (m Model) drop() (tea.Model, tea.Cmd) {
	if !m.Drag.Active {
		return m, nil
	}
	start := timeline.ResolveDrop(m.Drag.Offset-m.Scroll, m.Scroll, m.Grid())
	id, title := m.Drag.TaskID, m.Drag.Title
	m.Drag = DragState{}
	if !m.planner.DropTask(id, start) {
		return m, nil
	}
	m.Status = StatusBar{Text: fmt.Sprintf("placed %s at %s", title, start)}
	cmd := m.commit()
	m.selectTask(id)
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelLeft:
		m.scrollBy(-timeline.SnapStep)
		return m, nil
	case tea.MouseButtonWheelDown, tea.MouseButtonWheelRight:
		m.scrollBy(timeline.SnapStep)
		return m, nil
	}

	pointer := float64(msg.X-views.TimelineOriginX) + m.Scroll
	if m.Drag.Active {
		switch msg.Action {
		case tea.MouseActionMotion:
			m.Drag.Offset = m.clampDrag(pointer)
		case tea.MouseActionRelease:
			m.Drag.Offset = m.clampDrag(pointer)
			return m.drop()
		}
		return m, nil
	}

	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	row := msg.Y - views.TimelineOriginY
	bars := m.planner.ScheduledToday()
	if i := row - views.BarRow(0, false); i >= 0 && i < len(bars) {
		m.selectTask(bars[i].ID)
		return m.startDrag(bars[i], &pointer), nil
	}
	// a press on the ruler places the selected backlog task there
	if row >= 0 && row < views.BarRow(0, false) {
		if t, ok := m.selectedTask(); ok && !t.IsScheduled() {
			return m.startDrag(t, &pointer), nil
		}
	}
	return m, nil
}

func (m Model) renderTimeline() string {
	g := m.Grid()
	marks := g.HourMarks()
	markData := make([]views.HourMarkData, 0, len(marks))
	for _, mk := range marks {
		markData = append(markData, views.HourMarkData{Label: fmt.Sprintf("%02d", mk.Hour), Offset: mk.Offset})
	}

	today := m.planner.TodayTasks()
	overlaps := timeline.Overlapping(today)
	activeID := ""
	if m.Relations.Active != nil {
		activeID = m.Relations.Active.ID
	}
	placements := timeline.Layout(today, g)
	bars := make([]views.TimelineBarData, 0, len(placements))
	for _, p := range placements {
		bars = append(bars, views.TimelineBarData{
			ID:        p.Task.ID,
			Title:     p.Task.Title,
			Color:     p.Task.Color,
			Offset:    p.Offset,
			Width:     p.Width,
			Completed: p.Task.Completed,
			Selected:  p.Task.ID == m.SelectedTaskID,
			Active:    p.Task.ID == activeID,
			Overlap:   overlaps[p.Task.ID],
		})
	}

	data := views.TimelineData{
		Marks:     markData,
		Bars:      bars,
		Scroll:    m.Scroll,
		Viewport:  m.viewportCells(),
		GridWidth: g.Width(),
		NowLabel:  m.Now.Format("15:04"),
	}
	data.NowOffset, data.ShowNow = m.nowOffset()
	if m.Drag.Active {
		snapped := timeline.PreviewSnapPosition(m.Drag.Offset-m.Scroll, m.Scroll, g)
		at := timeline.ResolveDrop(m.Drag.Offset-m.Scroll, m.Scroll, g)
		data.Guide = &views.GuideData{Offset: snapped, Label: at.String()}
		data.Dragging = m.Drag.Title
	}
	return views.RenderTimeline(data)
}
