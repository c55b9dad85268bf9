package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/runner/export"
)

func addExport(topLevel *cobra.Command) {
	out := ""

	cmd := &cobra.Command{
		Use:       "export <ics|json>",
		Short:     "Export the planner as an iCalendar file or as the stored json",
		Long: `Export the planner. ics writes every event item as a VEVENT: items with a
start time are timed events and items without one are all-day events. json
writes the stored blob, keyed by date.`,
		Example: `
planner export ics --out planner.ics
planner export json > backup.json
`,
		ValidArgs: []string{export.FormatICS, export.FormatJSON},
		Args:      cobra.ExactValidArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				e := export.Export{
					Format:  args[0],
					Path:    out,
					Out:     cmd.OutOrStdout(),
					Clock:   s.Clock,
					Service: s.Service,
				}
				return e.Do(ctx)
			})
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Write to this file instead of stdout.")

	topLevel.AddCommand(cmd)
}
