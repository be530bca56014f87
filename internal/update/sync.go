package update

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/hummingbird/internal/calendar"
	"github.com/sandeepkv93/hummingbird/internal/planner"
)

const (
	saveTimeout = 5 * time.Second
	syncTimeout = 20 * time.Second
)

// saveCmd hands the dirty state to a background write. Only one write is in
// flight at a time; changes made meanwhile stay dirty until its SavedMsg.
func (m *Model) saveCmd() tea.Cmd {
	if m.saving {
		return nil
	}
	writes := m.planner.DirtyWrites()
	if len(writes) == 0 {
		return nil
	}
	m.saving = true
	return saveWritesCmd(m.planner, writes)
}

func saveWritesCmd(p *planner.Planner, writes []planner.Write) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		return SavedMsg{Writes: writes, Err: p.SaveWrites(ctx, writes)}
	}
}

// startSync imports today's events from the calendar. An explicit id (raw id
// or embed URL) is remembered for later syncs.
func (m Model) startSync(raw string) (Model, tea.Cmd) {
	if m.spinnerActive {
		return m, nil
	}
	if m.feeds == nil {
		m.Status = StatusBar{Text: "calendar import is not configured", IsError: true}
		return m, nil
	}
	id, remember, err := calendar.ResolveCalendarID(raw, m.planner.CalendarID(), m.cfg.CalendarID)
	if errors.Is(err, calendar.ErrNoCalendar) {
		m.Status = StatusBar{Text: "no calendar set; use /sync <calendar id or embed url>", IsError: true}
		return m, nil
	}
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	var save tea.Cmd
	if remember {
		m.planner.SetCalendarID(id)
		save = m.saveCmd()
	}

	m.spinnerActive = true
	m.Status = StatusBar{Text: "sync started"}
	return m, tea.Batch(m.syncSpinner.Tick, save, fetchDraftsCmd(m.feeds, id, m.Now, m.loc))
}

func fetchDraftsCmd(feeds FeedFactory, id string, day time.Time, loc *time.Location) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
		defer cancel()
		feed, err := feeds(ctx, id)
		if err != nil {
			return SyncResultMsg{Err: err}
		}
		drafts, err := calendar.FetchDrafts(ctx, feed, day, loc)
		return SyncResultMsg{Drafts: drafts, Err: err}
	}
}

func (m Model) onSyncResult(msg SyncResultMsg) (tea.Model, tea.Cmd) {
	m.spinnerActive = false
	if msg.Err != nil {
		m.LastError = msg.Err
		m.log.WithError(msg.Err).Warn("calendar sync failed")
		m.Status = StatusBar{Text: fmt.Sprintf("sync failed: %v", msg.Err), IsError: true}
		m.notify("Calendar", m.Status.Text, "error")
		return m, nil
	}
	added := m.planner.MergeImported(msg.Drafts)
	m.Status = StatusBar{Text: fmt.Sprintf("sync complete: %d new of %d event(s)", added, len(msg.Drafts))}
	m.notify("Calendar", m.Status.Text, "info")
	return m, m.commit()
}
