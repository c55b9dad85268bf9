package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/runner/get"
	"tableflip.dev/planner/pkg/timeutil"
)

func addList(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "day"},
		Short:   "List the items of one day",
		Example: `
planner list
planner list --on tomorrow -k
planner list --on 3/4 -o yaml
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				date, err := on.GetOn(s.Clock.Now())
				if err != nil {
					return err
				}
				t, err := timeutil.ParseDateKey(date)
				if err != nil {
					return err
				}
				g := get.Get{
					Dates:   []time.Time{t},
					Format:  output.Structured(),
					Printer: s.printer(io.ShowID),
					Service: s.Service,
				}
				return g.Do(ctx)
			})
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

func addWeek(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	offset := 0

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show the nine day week window, Monday through the next Tuesday",
		Example: `
planner week
planner week --offset -1
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				g := get.Get{
					Dates:   timeutil.WeekWindow(s.Clock.Now(), offset),
					Week:    true,
					Format:  output.Structured(),
					Printer: s.printer(io.ShowID),
					Service: s.Service,
				}
				return g.Do(ctx)
			})
		},
	}

	cmd.Flags().IntVar(&offset, "offset", 0, "Weeks from the current week, negative for the past.")
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

func addMonth(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	offset := 0

	cmd := &cobra.Command{
		Use:   "month",
		Short: "Show a month as a calendar grid with item counts",
		Example: `
planner month
planner month --offset 1
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				m := get.Month{
					Offset:  offset,
					Format:  output.Structured(),
					Printer: s.printer(io.ShowID),
					Service: s.Service,
				}
				return m.Do(ctx)
			})
		},
	}

	cmd.Flags().IntVar(&offset, "offset", 0, "Months from the current month, negative for the past.")
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

func addShow(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one item with all of its fields",
		Example: `
planner show 0190f3b4-5c1e-7d2a-9f00-1b2c3d4e5f60
planner show 0190f3b4-5c1e-7d2a-9f00-1b2c3d4e5f60 -o json
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				sh := get.Show{
					ID:      args[0],
					Format:  output.Structured(),
					Printer: s.printer(true),
					Service: s.Service,
				}
				return sh.Do(ctx)
			})
		},
	}

	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
