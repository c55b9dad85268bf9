package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/entry"
	"tableflip.dev/planner/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	io := &options.IDOptions{}
	item := &options.ItemOptions{}

	validArgs := make([]string, 0, len(entry.Kinds()))
	for _, k := range entry.Kinds() {
		validArgs = append(validArgs, string(k))
	}

	cmd := &cobra.Command{
		Use:   "add <todo|note|mood|event> [title...]",
		Short: "Add an item to a day",
		Long: fmt.Sprintf(`Add an item to a day. Kinds: %s.
Without a title the item gets the default title of its kind.`, strings.Join(validArgs, ", ")),
		Example: `
planner add todo buy milk
planner add note --on tomorrow --content "bring the charger"
planner add event standup --start 09:30 --end 09:45 --on 2024-03-04
planner add mood --mood 😊
`,
		ValidArgs: validArgs,
		Args:      cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := entry.ParseKind(args[0])
			if err != nil {
				cmd.SilenceUsage = true
				return err
			}
			patch := item.Patch(cmd)
			if title := options.TitleFromArgs(args[1:]); title != "" {
				patch.Title = &title
			}

			return withSession(cmd, func(ctx context.Context, s *session) error {
				date, err := on.GetOn(s.Clock.Now())
				if err != nil {
					return err
				}
				a := add.Add{
					Date:    date,
					Kind:    kind,
					Patch:   patch,
					Format:  output.Structured(),
					Printer: s.printer(io.ShowID),
					Service: s.Service,
				}
				return a.Do(ctx)
			})
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddShowIDArgs(cmd, io)
	options.AddItemArgs(cmd, item, false)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
