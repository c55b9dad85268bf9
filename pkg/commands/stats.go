package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/runner/stats"
	"tableflip.dev/planner/pkg/timeutil"
)

func addStats(topLevel *cobra.Command) {
	var (
		on    string
		week  int
		month int
		last  string
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Count items by kind and to-do completion",
		Long: `Count items by kind and to-do completion. Without flags every day is
counted. --on summarizes one day, --week and --month a calendar window
relative to now, and --last a trailing window such as 7d, 2w or 1w3d.`,
		Example: `
planner stats
planner stats --on today
planner stats --week 0 -o json
planner stats --last 2w
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			set := 0
			for _, name := range []string{"on", "week", "month", "last"} {
				if cmd.Flags().Changed(name) {
					set++
				}
			}
			if set > 1 {
				cmd.SilenceUsage = true
				return errors.New("use only one of --on, --week, --month or --last")
			}

			return withSession(cmd, func(ctx context.Context, s *session) error {
				now := s.Clock.Now()
				r := stats.Stats{
					Format:  output.Structured(),
					Printer: s.printer(false),
					Service: s.Service,
				}
				switch {
				case cmd.Flags().Changed("on"):
					date, err := resolveOn(now, on)
					if err != nil {
						return err
					}
					r.Date = date
				case cmd.Flags().Changed("week"):
					r.Dates = timeutil.WeekWindow(now, week)
					r.Label = timeutil.WeekRangeLabel(r.Dates)
				case cmd.Flags().Changed("month"):
					first := timeutil.FirstOfMonth(now, month)
					r.Dates = monthDates(first)
					r.Label = timeutil.MonthLabel(first)
				case cmd.Flags().Changed("last"):
					n, label, err := timeutil.ParseWindow(last)
					if err != nil {
						return err
					}
					r.Dates = timeutil.LastDays(now, n)
					r.Label = label
				}
				return r.Do(ctx)
			})
		},
	}

	cmd.Flags().StringVar(&on, "on", "today", "Summarize one date.")
	cmd.Flags().IntVar(&week, "week", 0, "Summarize the week window this many weeks from now.")
	cmd.Flags().IntVar(&month, "month", 0, "Summarize the calendar month this many months from now.")
	cmd.Flags().StringVar(&last, "last", "", "Summarize a trailing window ending today, such as 7d, 2w or 1w3d.")
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

func addReport(topLevel *cobra.Command) {
	last := "1w"

	cmd := &cobra.Command{
		Use:   "report",
		Short: "List the to-dos completed over a trailing window, by day",
		Example: `
planner report
planner report --last 4w -o yaml
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				n, _, err := timeutil.ParseWindow(last)
				if err != nil {
					return err
				}
				r := stats.Report{
					Dates:   timeutil.LastDays(s.Clock.Now(), n),
					Format:  output.Structured(),
					Printer: s.printer(false),
					Service: s.Service,
				}
				return r.Do(ctx)
			})
		},
	}

	cmd.Flags().StringVar(&last, "last", last, "Trailing window ending today, such as 7d, 2w or 1w3d.")
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

func monthDates(first time.Time) []time.Time {
	var out []time.Time
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}

func resolveOn(now time.Time, v string) (string, error) {
	date, err := options.ResolveDate(now, v)
	if err != nil {
		return "", fmt.Errorf("--on: %w", err)
	}
	return date, nil
}
