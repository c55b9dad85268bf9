package teaui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/planner/pkg/app"
)

// Run launches the Bubble Tea program in the alternate screen and blocks until
// the user quits or ctx is cancelled.
func Run(ctx context.Context, svc *app.Service, opts ...Option) error {
	opts = append([]Option{WithContext(ctx)}, opts...)
	p := tea.NewProgram(New(svc, opts...), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
