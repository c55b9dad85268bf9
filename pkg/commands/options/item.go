package options

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/app"
)

// ItemOptions holds the optional item fields settable from flags. Only flags
// the user actually passed end up in the patch.
type ItemOptions struct {
	Title     string
	Content   string
	Mood      string
	StartTime string
	EndTime   string
}

func AddItemArgs(cmd *cobra.Command, o *ItemOptions, withTitle bool) {
	if withTitle {
		cmd.Flags().StringVar(&o.Title, "title", "", "Set the title.")
	}
	cmd.Flags().StringVar(&o.Content, "content", "", "Set the free text body.")
	cmd.Flags().StringVar(&o.Mood, "mood", "", "Set the mood value, mood items only.")
	cmd.Flags().StringVar(&o.StartTime, "start", "", "Set the start time (HH:MM), events only.")
	cmd.Flags().StringVar(&o.EndTime, "end", "", "Set the end time (HH:MM), events only.")
}

// Patch converts the changed flags into an app.Patch.
func (o *ItemOptions) Patch(cmd *cobra.Command) app.Patch {
	var p app.Patch
	set := func(name string, v string, dst **string) {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			*dst = app.String(v)
		}
	}
	set("title", o.Title, &p.Title)
	set("content", o.Content, &p.Content)
	set("mood", o.Mood, &p.Mood)
	set("start", o.StartTime, &p.StartTime)
	set("end", o.EndTime, &p.EndTime)
	return p
}

// TitleFromArgs joins positional words into a title.
func TitleFromArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
