package commands

import (
	"context"
	"os"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/commands/options"
	"tableflip.dev/planner/pkg/logging"
	"tableflip.dev/planner/pkg/printers"
	"tableflip.dev/planner/pkg/store"
	"tableflip.dev/planner/pkg/timeutil"
)

var (
	output = &options.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "planner",
		Short: base.Wrap80("A day, week and month planner for to-dos, notes, moods and events."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addAdd(topLevel)
	addList(topLevel)
	addWeek(topLevel)
	addMonth(topLevel)
	addShow(topLevel)
	addEdit(topLevel)
	addDone(topLevel)
	addSubtask(topLevel)
	addMood(topLevel)
	addDelete(topLevel)
	addMove(topLevel)
	addReorder(topLevel)
	addStats(topLevel)
	addReport(topLevel)
	addExport(topLevel)
	addUI(topLevel)
	addMCP(topLevel)
	addServe(topLevel)
	addInfo(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

// session is the configured store and service a command works against.
type session struct {
	Config  store.Config
	Logger  logging.Logger
	Adapter *store.Adapter
	Service *app.Service
	Clock   timeutil.Clock
}

// openSession loads config, opens the configured backend and the service on
// top of it. Callers must Close it.
func openSession(ctx context.Context) (*session, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	log, err := logging.New(os.Stderr, cfg.LogLevel())
	if err != nil {
		return nil, err
	}
	adapter := store.Open(ctx, cfg, log)

	var clock timeutil.Clock
	svc := &app.Service{
		Persistence: adapter,
		Clock:       clock,
		Logger:      log,
	}
	svc.Open(ctx)
	return &session{Config: cfg, Logger: log, Adapter: adapter, Service: svc, Clock: clock}, nil
}

func (s *session) Close() {
	_ = s.Adapter.Close()
}

// printer returns the pretty printer for command output.
func (s *session) printer(showID bool) printers.PrettyPrint {
	return printers.PrettyPrint{ShowID: showID, Now: s.Clock}
}

// withSession runs fn against an open session and routes the error through
// the output options.
func withSession(cmd *cobra.Command, fn func(ctx context.Context, s *session) error) error {
	cmd.SilenceUsage = true
	if err := output.Validate(); err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := openSession(ctx)
	if err != nil {
		return output.HandleError(err)
	}
	defer s.Close()
	return output.HandleError(fn(ctx, s))
}
