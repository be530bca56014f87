package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/hummingbird/internal/scheduler"
	"github.com/sandeepkv93/hummingbird/internal/update"
)

func runUI(ctx context.Context) error {
	s, err := openSession(ctx, true)
	if err != nil {
		return err
	}

	engine := scheduler.NewEngine(s.cfg.AlertBuffer)
	engine.Start()
	defer engine.Stop()

	var notifier update.DesktopNotifier = update.NoopDesktopNotifier{}
	if s.cfg.DesktopNotifications {
		notifier = update.ExecDesktopNotifier{}
	}
	m := update.NewModel(s.planner, update.Options{
		Config:    s.cfg,
		Scheduler: engine,
		Notifier:  notifier,
		Feeds:     s.feeds(),
		Logger:    s.log.WithField("component", "ui"),
	})

	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, runErr := program.Run()
	if runErr != nil {
		s.log.WithError(runErr).Error("ui stopped")
	}
	// saves still in flight when the program quit are repeated here
	s.planner.MarkAllDirty()
	if err := s.Close(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}
