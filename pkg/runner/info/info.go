package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/stats"
	"tableflip.dev/planner/pkg/store"
)

const configEnv = "PLANNER_CONFIG_PATH"

type Info struct {
	Config   store.Config
	Location string
	Service  *app.Service
	// Out defaults to color.Output.
	Out io.Writer
}

func (n *Info) Do(_ context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv(configEnv); override != "" {
		_, _ = fmt.Fprintln(out, configEnv+" found on env, using ", override)
	} else {
		_, _ = fmt.Fprintln(out, configEnv+" env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintln(out, "Config.path: ", n.Config.BasePath())
	_, _ = fmt.Fprintln(out, "Config.backend: ", n.Config.Backend())
	_, _ = fmt.Fprintln(out, "Config.key: ", n.Config.Key())
	if n.Location != "" {
		_, _ = fmt.Fprintln(out, "Stored at: ", n.Location)
	} else {
		_, _ = fmt.Fprintln(out, "Stored at: ", "memory only")
	}

	if n.Service == nil {
		return fmt.Errorf("failed to create planner service")
	}

	snap := n.Service.Snapshot()
	dates := snap.Dates()
	total := stats.Totals(snap)
	_, _ = fmt.Fprintf(out, "Days:\n")
	if len(dates) == 0 {
		_, _ = fmt.Fprintf(out, "  %s\n", "no days")
		return nil
	}
	_, _ = fmt.Fprintf(out, "  %d days from %s to %s, %d items\n", len(dates), dates[0], dates[len(dates)-1], total.Total)
	return nil
}
