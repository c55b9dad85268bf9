package ui

import (
	"context"
	"errors"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/logging"
	"tableflip.dev/planner/pkg/store"
	teaui "tableflip.dev/planner/pkg/tui/app"
	"tableflip.dev/planner/pkg/tui/theme"
)

// ErrNotATerminal is returned when stdin or stdout is redirected.
var ErrNotATerminal = errors.New("ui needs an interactive terminal")

// UI runs the interactive planner.
type UI struct {
	Service *app.Service
	// Adapter, when file backed, feeds external changes back into the view.
	Adapter *store.Adapter
	Logger  logging.Logger
}

func (u *UI) Do(ctx context.Context) error {
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return ErrNotATerminal
	}
	log := logging.OrDiscard(u.Logger)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	dark := termenv.HasDarkBackground()
	style := "light"
	if dark {
		style = "dark"
	}
	opts := []teaui.Option{teaui.WithTheme(theme.For(dark), style)}

	if u.Adapter != nil && u.Adapter.Location() != "" {
		events, err := u.Adapter.Watch(ctx)
		if err != nil {
			log.Warn(ctx, "watch disabled", "error", err)
		} else {
			opts = append(opts, teaui.WithEvents(events))
		}
	}
	return teaui.Run(ctx, u.Service, opts...)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
