package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the configuration and where the planner is stored.",
		Example: `
planner info
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				i := info.Info{
					Config:   s.Config,
					Location: s.Adapter.Location(),
					Service:  s.Service,
				}
				return i.Do(ctx)
			})
		},
	}

	topLevel.AddCommand(cmd)
}
