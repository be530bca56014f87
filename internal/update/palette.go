package update

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/hummingbird/internal/commands"
	"github.com/sandeepkv93/hummingbird/internal/export"
	"github.com/sandeepkv93/hummingbird/internal/model"
	"github.com/sandeepkv93/hummingbird/internal/timeline"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	m.Palette.Input = m.commandInput.Value()
	return m, cmd
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) executePaletteCommand() (tea.Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m.closePalette()
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	var followUp tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			t, err := m.planner.AddTask(model.Draft{Title: a.Title, Duration: a.Duration, Category: model.CategoryOr(a.Category)}, a.Tomorrow)
			if err != nil {
				return commands.Result{}, err
			}
			if a.Tomorrow {
				return commands.Result{Message: fmt.Sprintf("added for tomorrow: %s", t.Title)}, nil
			}
			m.selectTask(t.ID)
			return commands.Result{Message: fmt.Sprintf("added task: %s", t.Title)}, nil
		},
		At: func(a commands.AtArgs) (commands.Result, error) {
			t, ok := m.selectedTask()
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "select a task first"}
			}
			if err := m.planner.SetStartTime(t.ID, a.Start.Hour, a.Start.Minute); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("%s starts at %s", t.Title, a.Start)}, nil
		},
		Move: func(a commands.MoveArgs) (commands.Result, error) {
			t, ok := m.selectedTask()
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "select a task first"}
			}
			if a.Tomorrow {
				m.planner.MoveToTomorrow(t.ID)
				return commands.Result{Message: fmt.Sprintf("moved to tomorrow: %s", t.Title)}, nil
			}
			m.planner.BringToToday(t.ID)
			return commands.Result{Message: fmt.Sprintf("brought to today: %s", t.Title)}, nil
		},
		Hours: func(a commands.HoursArgs) (commands.Result, error) {
			if err := m.planner.SetHours(timeline.Window{StartHour: a.Start, EndHour: a.End}); err != nil {
				return commands.Result{}, err
			}
			m.scrollToNow()
			return commands.Result{Message: fmt.Sprintf("timeline hours %02d:00-%02d:59", a.Start, a.End)}, nil
		},
		Sync: func(a commands.SyncArgs) (commands.Result, error) {
			next, cmd := m.startSync(a.Calendar)
			if next.Status.IsError {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: next.Status.Text}
			}
			m = next
			followUp = cmd
			return commands.Result{Message: m.Status.Text}, nil
		},
		Routine: func(a commands.RoutineArgs) (commands.Result, error) {
			added := m.planner.SetRoutine(a.On)
			return commands.Result{Message: routineStatus(a.On, added)}, nil
		},
		Category: func(a commands.CategoryArgs) (commands.Result, error) {
			if a.Remove {
				if !m.planner.DeleteCategory(a.Name) {
					return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no category %q", a.Name)}
				}
				return commands.Result{Message: fmt.Sprintf("category removed: %s", a.Name)}, nil
			}
			if err := m.planner.AddCategory(a.Name); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("category added: %s", strings.TrimSpace(a.Name))}, nil
		},
		Export: func(a commands.ExportArgs) (commands.Result, error) {
			path := a.Path
			if path == "" {
				path = export.Filename(m.Now)
			}
			n, err := m.writeExport(path)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("exported %d row(s) to %s", n, path)}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "error")
		return m, nil
	}
	m.Status = StatusBar{Text: res.Message}
	m.notify("Command", res.Message, "info")
	return m, tea.Batch(m.commit(), followUp)
}

func (m Model) writeExport(path string) (int, error) {
	rows := m.planner.ExportRows()
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	if err := export.WriteCSV(f, rows, m.loc); err != nil {
		_ = f.Close()
		return 0, err
	}
	return len(rows), f.Close()
}
