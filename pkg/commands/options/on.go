package options

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/timeutil"
)

const (
	layoutISOShort = "1/2"
)

// OnOptions
type OnOptions struct {
	OnString string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "today",
		`Specify a date, example: --on="2024-03-04", --on="3/4" or --on=tomorrow.`)
}

// GetOn resolves the flag to a date key relative to now.
func (o *OnOptions) GetOn(now time.Time) (string, error) {
	return ResolveDate(now, o.OnString)
}

// ResolveDate accepts everything timeutil.ResolveDate does plus a short
// month/day form.
func ResolveDate(now time.Time, v string) (string, error) {
	key, err := timeutil.ResolveDate(now, v)
	if err == nil {
		return key, nil
	}
	t, serr := time.ParseInLocation(layoutISOShort, v, time.Local)
	if serr != nil {
		return "", err
	}
	month, day := t.Month(), t.Day()
	// Let the year be the same.
	t = time.Date(now.Year(), month, day, 0, 0, 0, 0, time.Local)
	// I am gonna assume if you said 1/3 on 12/5, you meant next year, not 11 months ago.
	if t.Before(timeutil.Midnight(now)) {
		t = time.Date(now.Year()+1, month, day, 0, 0, 0, 0, time.Local)
	}
	// 2/29 outside a leap year would otherwise roll over into March.
	if t.Month() != month || t.Day() != day {
		return "", fmt.Errorf("invalid date %q: %d/%d does not exist in %d", v, month, day, t.Year())
	}
	return timeutil.DateKey(t), nil
}
