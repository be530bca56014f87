package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/hummingbird/internal/model"
	"github.com/sandeepkv93/hummingbird/internal/planner"
	"github.com/sandeepkv93/hummingbird/internal/storage"
	"github.com/sandeepkv93/hummingbird/internal/timeline"
)

func addToday(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "today",
		Short: "Print today's plan",
		Example: `
hummingbird today
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd.Context(), func(s *session) error {
				printToday(cmd.Context(), s)
				return nil
			})
		},
	}
	topLevel.AddCommand(cmd)
}

func printToday(ctx context.Context, s *session) {
	p := s.planner
	bold := color.New(color.Bold)
	now := p.Now()
	rel := timeline.Compute(p.TodayTasks(), now)

	fmt.Fprintln(color.Output, bold.Sprintf("%s  %s", now.Format("Monday 02 January"), now.Format("15:04")))
	fmt.Fprintln(color.Output, relationLine(rel))
	fmt.Fprintln(color.Output, "")

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Start"), bold.Sprint("Task"), bold.Sprint("Length"), bold.Sprint("Category"), bold.Sprint("Subtasks"))
	for _, t := range p.ScheduledToday() {
		tbl.AddRow(t.StartTime, taskTitle(t, rel), fmt.Sprintf("%dm", t.Duration), t.ParentCategory, subtaskCount(t))
	}
	for _, t := range p.BacklogToday() {
		tbl.AddRow("-", taskTitle(t, rel), fmt.Sprintf("%dm", t.Duration), t.ParentCategory, subtaskCount(t))
	}
	fmt.Fprintln(color.Output, tbl)

	if pending := p.PendingFromYesterday(); len(pending) > 0 {
		fmt.Fprintln(color.Output, "")
		fmt.Fprintln(color.Output, color.YellowString("%d pending from yesterday", len(pending)))
	}
	if planned := p.PlannedForTomorrow(); len(planned) > 0 {
		fmt.Fprintln(color.Output, color.HiBlackString("%d planned for tomorrow", len(planned)))
	}
	if sq, ok := s.store.(*storage.SQLiteStore); ok {
		if at, err := sq.UpdatedAt(ctx, planner.KeyTasks); err == nil {
			fmt.Fprintln(color.Output, color.HiBlackString("saved %s", at.In(s.cfg.Location()).Format("2006-01-02 15:04")))
		}
	}
}

func relationLine(rel timeline.Relations) string {
	parts := []string{}
	if rel.Active != nil {
		active := "now: " + rel.Active.Title
		if rel.HasRemaining {
			active += fmt.Sprintf(" (%dm left)", rel.Remaining)
		}
		parts = append(parts, active)
	}
	if rel.Next != nil {
		next := fmt.Sprintf("next: %s at %s", rel.Next.Title, rel.Next.StartTime)
		if rel.HasUntil {
			next += fmt.Sprintf(" (in %dm)", rel.Until)
		}
		if rel.Urgent() {
			next = color.RedString(next)
		}
		parts = append(parts, next)
	}
	if len(parts) == 0 {
		return color.HiBlackString("nothing on the clock")
	}
	return strings.Join(parts, "  |  ")
}

func taskTitle(t model.Task, rel timeline.Relations) string {
	switch {
	case t.Completed:
		return color.HiBlackString("[x] %s", t.Title)
	case rel.Active != nil && rel.Active.ID == t.ID:
		return color.GreenString("[>] %s", t.Title)
	default:
		return "[ ] " + t.Title
	}
}

func subtaskCount(t model.Task) string {
	if len(t.Subtasks) == 0 {
		return ""
	}
	return fmt.Sprintf("%d/%d", t.CompletedSubtasks(), len(t.Subtasks))
}
