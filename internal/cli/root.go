// Package cli implements the daily command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezkam/daily/internal/application/task"
	"github.com/rezkam/daily/internal/application/worker"
	"github.com/rezkam/daily/internal/config"
	"github.com/rezkam/daily/internal/storage/backend"
)

// Session is an open task store plus whatever must be released after the
// command finishes.
type Session struct {
	Store *task.Store
	Close func() error
}

// Opener hydrates a store for one invocation.
type Opener func(ctx context.Context) (*Session, error)

// Options configure one invocation.
type Options struct {
	Open Opener
	Now  func() time.Time // defaults to time.Now
	In   io.Reader
	Out  io.Writer
	Err  io.Writer
}

// app is the state shared by every subcommand of one invocation.
type app struct {
	open    Opener
	now     func() time.Time
	session *Session
	expired []string // ids expired by the startup pass
	jsonOut bool
}

func (a *app) store() *task.Store {
	return a.session.Store
}

// Run executes one command line and releases the session afterwards.
func Run(ctx context.Context, opts Options, args []string) error {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	a := &app{open: opts.Open, now: opts.Now}

	root := newRootCmd(a)
	root.SetArgs(args)
	if opts.In != nil {
		root.SetIn(opts.In)
	}
	if opts.Out != nil {
		root.SetOut(opts.Out)
	}
	if opts.Err != nil {
		root.SetErr(opts.Err)
	}

	err := root.ExecuteContext(ctx)
	return errors.Join(err, a.close())
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "daily",
		Short: "Personal task tracker",
		Long: `daily keeps a personal task list with priorities, categories,
due dates and comments. Tasks past their due date are marked expired
every time a command runs.

Quick start:
  daily add "Comprar pan" --priority Alta --due 2025-03-10
  daily list
  daily toggle <id>`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.start(cmd.Context())
		},
	}

	root.PersistentFlags().BoolVar(&a.jsonOut, "json", false, "output as JSON")

	root.AddCommand(newAddCmd(a))
	root.AddCommand(newListCmd(a))
	root.AddCommand(newShowCmd(a))
	root.AddCommand(newStatusCmd(a))
	root.AddCommand(newToggleCmd(a))
	root.AddCommand(newEditCmd(a))
	root.AddCommand(newCommentCmd(a))
	root.AddCommand(newRmCmd(a))
	root.AddCommand(newClearCmd(a))
	root.AddCommand(newStatsCmd(a))
	root.AddCommand(newCalendarCmd(a))
	root.AddCommand(newExportCmd(a))
	root.AddCommand(newImportCmd(a))
	root.AddCommand(newExpireCmd(a))

	return root
}

func (a *app) start(ctx context.Context) error {
	session, err := a.open(ctx)
	if err != nil {
		return err
	}
	a.session = session

	monitor := worker.NewExpirationMonitor(session.Store, worker.WithClock(a.now))
	expired, err := monitor.RunOnce(ctx)
	if err != nil {
		return err
	}
	a.expired = expired
	return nil
}

func (a *app) close() error {
	if a.session == nil || a.session.Close == nil {
		return nil
	}
	return a.session.Close()
}

// DefaultOpener loads configuration from the environment and opens the
// configured backend.
func DefaultOpener(ctx context.Context) (*Session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Expiration.Location()
	if err != nil {
		return nil, err
	}

	adapter, err := backend.OpenAdapter(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}

	store, err := task.NewStore(ctx, adapter, task.WithLocation(loc))
	if err != nil {
		_ = adapter.Close()
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	slog.DebugContext(ctx, "session opened", "storage", cfg.Storage.Type)
	return &Session{Store: store, Close: adapter.Close}, nil
}
