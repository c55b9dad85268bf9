package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
planner ui
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				i := ui.UI{
					Service: s.Service,
					Adapter: s.Adapter,
					Logger:  s.Logger,
				}
				return i.Do(ctx)
			})
		},
	}

	topLevel.AddCommand(cmd)
}
