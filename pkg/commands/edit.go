package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/entry"
	"tableflip.dev/planner/pkg/runner/edit"
)

// runEdit applies op to the item with id and prints the outcome.
func runEdit(cmd *cobra.Command, id string, showID bool, op func(s *session) (edit.Op, error)) error {
	return withSession(cmd, func(ctx context.Context, s *session) error {
		o, err := op(s)
		if err != nil {
			return err
		}
		e := edit.Edit{
			ID:      id,
			Op:      o,
			Format:  output.Structured(),
			Printer: s.printer(showID),
			Service: s.Service,
		}
		return e.Do(ctx)
	})
}

func fixed(op edit.Op) func(*session) (edit.Op, error) {
	return func(*session) (edit.Op, error) { return op, nil }
}

func addEdit(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	item := &options.ItemOptions{}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the title, text or times of an item",
		Example: `
planner edit <id> --title "Call the bank"
planner edit <id> --start 14:00 --end 15:00
planner edit <id> --content ""
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := item.Patch(cmd)
			if patch.IsEmpty() {
				return errors.New("nothing to change, pass at least one of --title, --content, --mood, --start or --end")
			}
			return runEdit(cmd, args[0], io.ShowID, fixed(edit.Patch(patch)))
		},
	}

	options.AddItemArgs(cmd, item, true)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

func addDone(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "done <id>",
		Aliases: []string{"complete", "toggle"},
		Short:   "Toggle completion of a to-do",
		Example: `
planner done <id>
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, args[0], io.ShowID, fixed(edit.ToggleComplete()))
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

func addSubtask(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "subtask",
		Short: "Add or complete subtasks of a to-do",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addSubtaskAdd(cmd)
	addSubtaskDone(cmd)

	topLevel.AddCommand(cmd)
}

func addSubtaskAdd(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "add <id> <title...>",
		Short: "Append a subtask to a to-do",
		Example: `
planner subtask add <id> pick up the keys
`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := options.TitleFromArgs(args[1:])
			if title == "" {
				return errors.New("subtask title is required")
			}
			return runEdit(cmd, args[0], io.ShowID, fixed(edit.AddSubtask(title)))
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

func addSubtaskDone(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "done <id> <subtask-id>",
		Short: "Toggle completion of a subtask",
		Example: `
planner subtask done <id> <subtask-id>
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, args[0], io.ShowID, fixed(edit.ToggleSubtask(args[1])))
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

func addMood(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "mood <id> <value>",
		Short: "Set the mood of a mood item",
		Long: fmt.Sprintf(`Set the mood of a mood item. Any text is accepted; the palette is
%s`, strings.Join(entry.Moods, " ")),
		Example: `
planner mood <id> 😊
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, args[0], io.ShowID, fixed(edit.Mood(args[1])))
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

func addDelete(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an item",
		Example: `
planner delete <id>
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, args[0], io.ShowID, fixed(edit.Delete()))
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

func addMove(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	to := ""

	cmd := &cobra.Command{
		Use:   "move <id> --to DATE",
		Short: "Move an item to the end of another day",
		Example: `
planner move <id> --to tomorrow
planner move <id> --to 2024-03-08
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, args[0], io.ShowID, func(s *session) (edit.Op, error) {
				date, err := options.ResolveDate(s.Clock.Now(), to)
				if err != nil {
					return nil, err
				}
				return edit.MoveTo(date), nil
			})
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Destination date, example: --to=tomorrow.")
	_ = cmd.MarkFlagRequired("to")
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

func addReorder(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "reorder --on DATE <from> <to>",
		Short: "Move the item at one position of a day to another position",
		Long: `Move the item at one position of a day to another position. Positions
start at 0, in the order "planner list" prints them.`,
		Example: `
planner reorder 2 0
planner reorder --on tomorrow 0 3
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid from index %q", args[0])
			}
			to, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid to index %q", args[1])
			}
			return withSession(cmd, func(ctx context.Context, s *session) error {
				date, err := on.GetOn(s.Clock.Now())
				if err != nil {
					return err
				}
				r := edit.Reorder{
					Date:    date,
					From:    from,
					To:      to,
					Format:  output.Structured(),
					Printer: s.printer(io.ShowID),
					Service: s.Service,
				}
				return r.Do(ctx)
			})
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
