package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/hummingbird/internal/calendar"
	"github.com/sandeepkv93/hummingbird/internal/commands"
	"github.com/sandeepkv93/hummingbird/internal/export"
	"github.com/sandeepkv93/hummingbird/internal/model"
	"github.com/sandeepkv93/hummingbird/internal/timeline"
)

const syncTimeout = 20 * time.Second

func addAdd(topLevel *cobra.Command) {
	var (
		duration string
		category string
		tomorrow bool
	)
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Capture a task into the backlog",
		Example: `
hummingbird add write the weekly report --duration 1h30 --category Work
hummingbird add call the dentist --tomorrow
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			minutes := commands.DefaultDuration
			if duration != "" {
				n, ok := commands.ParseDuration(duration)
				if !ok {
					return fmt.Errorf("invalid duration %q, use 30m, 1h or 1h30", duration)
				}
				minutes = n
			}
			return withSession(cmd.Context(), func(s *session) error {
				t, err := s.planner.AddTask(model.Draft{
					Title:    strings.Join(args, " "),
					Duration: minutes,
					Category: model.CategoryOr(category),
				}, tomorrow)
				if err != nil {
					return err
				}
				fmt.Fprintf(color.Output, "added %s for %s\n", color.New(color.Bold).Sprint(t.Title), t.Date)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&duration, "duration", "d", "", "task length, e.g. 45m or 1h30")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category name")
	cmd.Flags().BoolVarP(&tomorrow, "tomorrow", "t", false, "plan the task for tomorrow")
	topLevel.AddCommand(cmd)
}

func addExport(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "export [path]",
		Short: "Write every task to a CSV file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd.Context(), func(s *session) error {
				path := export.Filename(s.planner.Now())
				if len(args) == 1 {
					path = args[0]
				}
				rows := s.planner.ExportRows()
				f, err := os.Create(path)
				if err != nil {
					return err
				}
				if err := export.WriteCSV(f, rows, s.cfg.Location()); err != nil {
					_ = f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return err
				}
				fmt.Fprintf(color.Output, "exported %d row(s) to %s\n", len(rows), path)
				return nil
			})
		},
	}
	topLevel.AddCommand(cmd)
}

func addSync(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "sync [calendar id or embed url]",
		Short: "Import today's calendar events onto the timeline",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd.Context(), func(s *session) error {
				raw := ""
				if len(args) == 1 {
					raw = args[0]
				}
				added, total, err := syncCalendar(cmd.Context(), s, raw)
				if err != nil {
					return err
				}
				fmt.Fprintf(color.Output, "sync complete: %d new of %d event(s)\n", added, total)
				return nil
			})
		},
	}
	topLevel.AddCommand(cmd)
}

func syncCalendar(ctx context.Context, s *session, raw string) (int, int, error) {
	id, remember, err := calendar.ResolveCalendarID(raw, s.planner.CalendarID(), s.cfg.CalendarID)
	if errors.Is(err, calendar.ErrNoCalendar) {
		return 0, 0, errors.New("no calendar set; pass a calendar id or embed url")
	}
	if err != nil {
		return 0, 0, err
	}
	if remember {
		s.planner.SetCalendarID(id)
	}

	ctx, cancel := context.WithTimeout(ctx, syncTimeout)
	defer cancel()
	feed, err := s.feeds()(ctx, id)
	if err != nil {
		return 0, 0, err
	}
	drafts, err := calendar.FetchDrafts(ctx, feed, s.planner.Now(), s.cfg.Location())
	if err != nil {
		return 0, 0, err
	}
	return s.planner.MergeImported(drafts), len(drafts), nil
}

func addTransfer(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Move the planner to another machine with a transfer code",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "export",
		Short: "Print a transfer code for the current state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd.Context(), func(s *session) error {
				code, err := s.planner.ExportTransfer()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), code)
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "import <code>",
		Short: "Replace the current state with a transfer code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd.Context(), func(s *session) error {
				if err := s.planner.ApplyTransfer(strings.TrimSpace(args[0])); err != nil {
					return err
				}
				fmt.Fprintf(color.Output, "imported %d task(s)\n", len(s.planner.Tasks()))
				return nil
			})
		},
	})
	topLevel.AddCommand(cmd)
}

func addRoutine(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:       "routine on|off",
		Short:     "Turn the daily lunch and coffee blocks on or off",
		Args:      cobra.ExactValidArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			on := args[0] == "on"
			return withSession(cmd.Context(), func(s *session) error {
				added := s.planner.SetRoutine(on)
				switch {
				case on && added:
					fmt.Fprintln(color.Output, "daily routine on: blocks added to today")
				case on:
					fmt.Fprintln(color.Output, "daily routine on")
				default:
					fmt.Fprintln(color.Output, "daily routine off")
				}
				return nil
			})
		},
	}
	topLevel.AddCommand(cmd)
}

func addHours(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "hours <start> <end>",
		Short: "Set the visible hours of the timeline",
		Example: `
hummingbird hours 7 18
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err1 := strconv.Atoi(args[0])
			end, err2 := strconv.Atoi(args[1])
			if err1 != nil || err2 != nil {
				return fmt.Errorf("hours must be numbers, got %q %q", args[0], args[1])
			}
			return withSession(cmd.Context(), func(s *session) error {
				if err := s.planner.SetHours(timeline.Window{StartHour: start, EndHour: end}); err != nil {
					return err
				}
				fmt.Fprintf(color.Output, "timeline hours %02d:00-%02d:59\n", start, end)
				return nil
			})
		},
	}
	topLevel.AddCommand(cmd)
}
