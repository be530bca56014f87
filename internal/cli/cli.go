package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/hummingbird/internal/calendar"
	"github.com/sandeepkv93/hummingbird/internal/planner"
	"github.com/sandeepkv93/hummingbird/internal/storage"
	"github.com/sandeepkv93/hummingbird/internal/update"
)

const flushTimeout = 5 * time.Second

// New is the root command. Without a subcommand it opens the planner UI.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hummingbird",
		Short: "A one-day planner for the terminal.",
		Long: `hummingbird keeps yesterday, today and tomorrow in view: capture tasks
into a backlog, place them on the timeline and follow the clock.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUI(cmd.Context())
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addToday(topLevel)
	addAdd(topLevel)
	addExport(topLevel)
	addSync(topLevel)
	addTransfer(topLevel)
	addRoutine(topLevel)
	addHours(topLevel)
}

// session is the loaded state behind one command invocation.
type session struct {
	cfg     update.RuntimeConfig
	store   storage.Store
	planner *planner.Planner
	log     *log.Entry
	logFile *os.File
}

// openSession reads the config, opens the configured store and loads the
// planner. With logToFile the log goes to the data directory so it does not
// draw over the UI.
func openSession(ctx context.Context, logToFile bool) (*session, error) {
	cfg, err := update.LoadRuntimeConfig(update.NewConfigViper())
	if err != nil {
		return nil, err
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("unable to create data dir: %w", err)
	}
	s := &session{cfg: cfg, log: log.WithField("component", "cli")}
	if logToFile {
		f, err := os.OpenFile(cfg.LogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("unable to open log file: %w", err)
		}
		log.SetOutput(f)
		log.SetFormatter(&log.JSONFormatter{})
		s.logFile = f
	}

	store, err := storage.Open(ctx, cfg.StorageOptions())
	if err != nil {
		s.closeLog()
		return nil, err
	}
	s.store = store

	loc := cfg.Location()
	s.planner = planner.New(store, planner.Options{
		Now:    func() time.Time { return time.Now().In(loc) },
		Logger: log.WithField("component", "planner"),
	})
	if err := s.planner.Load(ctx); err != nil {
		_ = store.Close()
		s.closeLog()
		return nil, fmt.Errorf("unable to load planner state: %w", err)
	}
	s.log.WithFields(log.Fields{"store": cfg.Store, "today": s.planner.Days().Today}).Debug("session opened")
	return s, nil
}

// Close writes any pending state and releases the store.
func (s *session) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	err := s.planner.Flush(ctx)
	if err != nil {
		s.log.WithError(err).Error("failed to write planner state")
	}
	if cerr := s.store.Close(); cerr != nil && err == nil {
		err = cerr
	}
	s.closeLog()
	return err
}

func (s *session) closeLog() {
	if s.logFile == nil {
		return
	}
	log.SetOutput(os.Stderr)
	_ = s.logFile.Close()
	s.logFile = nil
}

// feeds picks the calendar source: the Google API when an API key or OAuth
// files are configured, the public iCal feed otherwise.
func (s *session) feeds() update.FeedFactory {
	cfg := s.cfg
	loc := cfg.Location()
	return func(ctx context.Context, calendarID string) (calendar.Feed, error) {
		if cfg.GoogleCredentialsFile != "" && cfg.GoogleTokenFile != "" {
			opt, err := calendar.WithTokenFiles(ctx, cfg.GoogleCredentialsFile, cfg.GoogleTokenFile)
			if err != nil {
				return nil, err
			}
			return calendar.NewGoogleFeed(ctx, calendarID, cfg.GoogleAPIKey, opt)
		}
		if cfg.GoogleAPIKey != "" {
			return calendar.NewGoogleFeed(ctx, calendarID, cfg.GoogleAPIKey)
		}
		return calendar.NewICSFeed(calendarID, loc), nil
	}
}

// withSession runs fn against a loaded planner and flushes afterwards.
func withSession(ctx context.Context, fn func(*session) error) error {
	s, err := openSession(ctx, false)
	if err != nil {
		return err
	}
	runErr := fn(s)
	if err := s.Close(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}
