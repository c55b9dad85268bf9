package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/runner/api"
)

func addServe(topLevel *cobra.Command) {
	addr := "127.0.0.1:8081"
	quiet := false

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the planner as a JSON HTTP API",
		Long: `Serve the planner as a JSON HTTP API. Days live under /api/days/:date,
items under /api/days/:date/items/:id, and /api/range, /api/stats and
/api/export cover windows of days.`,
		Example: `
planner serve
planner serve --addr :9000 --quiet
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
				defer stop()

				cfg := api.Config{
					Addr:      addr,
					LogOutput: os.Stderr,
					OnListening: func(a string) {
						_, _ = fmt.Fprintf(cmd.OutOrStdout(), "planner API listening on http://%s\n", a)
					},
				}
				if quiet {
					cfg.LogOutput = io.Discard
				}
				return api.NewServer(cfg, s.Service, s.Clock).Run(ctx)
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", addr, "Address to listen on.")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not write the access log.")

	topLevel.AddCommand(cmd)
}
