package update

import (
	"strings"
	"time"

	"github.com/sandeepkv93/hummingbird/internal/views"
)

const notificationLimit = 40

func (m Model) taskRows(p Pane) []views.TaskRowData {
	tasks := m.paneTasks(p)
	rows := make([]views.TaskRowData, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, views.TaskRowData{
			ID:           t.ID,
			Title:        t.Title,
			Category:     t.ParentCategory,
			Color:        t.Color,
			Start:        t.StartTime,
			Duration:     t.Duration,
			Completed:    t.Completed,
			Selected:     m.Pane == p && t.ID == m.SelectedTaskID,
			Subtasks:     len(t.Subtasks),
			SubtasksDone: t.CompletedSubtasks(),
		})
	}
	return rows
}

func (m Model) renderBacklog() string {
	return views.RenderTaskList(views.TaskListData{
		Title:   "backlog",
		Actions: "[j/k]move [m]place [space]done [t]tomorrow [d]delete [enter]detail",
		Empty:   "(empty, press a to add a task)",
		Rows:    m.taskRows(PaneBacklog),
	})
}

func (m Model) renderSideLists() string {
	yesterday := views.RenderTaskList(views.TaskListData{
		Title:   "pending from yesterday",
		Actions: "[b]bring to today",
		Empty:   "(all clear)",
		Rows:    m.taskRows(PaneYesterday),
	})
	tomorrow := views.RenderTaskList(views.TaskListData{
		Title:   "tomorrow",
		Actions: "[b]bring to today [A]add",
		Empty:   "(nothing planned)",
		Rows:    m.taskRows(PaneTomorrow),
	})
	return yesterday + "\n\n" + tomorrow
}

func (m Model) renderRelations() string {
	r := m.Relations
	data := views.RelationsData{
		Now:          m.Now.Format("15:04:05"),
		Remaining:    r.Remaining,
		HasRemaining: r.HasRemaining,
		Until:        r.Until,
		HasUntil:     r.HasUntil,
		Urgent:       r.Urgent(),
	}
	if r.Active != nil {
		data.HasActive = true
		data.ActiveTitle = r.Active.Title
	}
	if r.Next != nil {
		data.HasNext = true
		data.NextTitle = r.Next.Title
		data.NextStart = r.Next.StartTime
	}
	return views.RenderRelations(data)
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Body)
}

func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	n := Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    m.clock(),
	}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > notificationLimit {
		m.Notifications = m.Notifications[len(m.Notifications)-notificationLimit:]
	}
	if m.DesktopEnabled && m.notifier != nil {
		if err := m.notifier.Send(n); err != nil {
			m.log.WithError(err).Debug("desktop notification failed")
		}
	}
}

// timeFromMillis converts a stored epoch-millisecond stamp to the display zone.
func (m Model) timeFromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).In(m.loc)
}
