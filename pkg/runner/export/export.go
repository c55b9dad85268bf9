// Package export provides the runner behind `planner export`.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/export"
	"tableflip.dev/planner/pkg/store"
	"tableflip.dev/planner/pkg/timeutil"
)

const (
	FormatICS  = "ics"
	FormatJSON = "json"
)

// Export writes every day as an iCalendar file or as the stored json blob.
// An empty Path writes to Out.
type Export struct {
	Format string
	Path   string
	Out    io.Writer

	Clock   timeutil.Clock
	Service *app.Service
}

func (n *Export) Do(_ context.Context) (err error) {
	if n.Service == nil {
		return errors.New("can not export, no service")
	}

	w := n.Out
	if n.Path != "" {
		f, ferr := os.Create(n.Path)
		if ferr != nil {
			return ferr
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}
	if w == nil {
		w = os.Stdout
	}

	snap := n.Service.Snapshot()
	switch n.Format {
	case "", FormatICS:
		return export.ICS(w, snap, n.Clock.Now())
	case FormatJSON:
		b, err := store.Encode(snap)
		if err != nil {
			return err
		}
		_, err = w.Write(append(b, '\n'))
		return err
	}
	return fmt.Errorf("unknown export format %q", n.Format)
}
