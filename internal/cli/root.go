// Package cli implements the intake command line: store setup, logging and
// reviewing drinks, and the local HTTP API.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/intakelog/internal/app"
	"github.com/heartmarshall/intakelog/internal/config"
	"github.com/heartmarshall/intakelog/internal/domain"
)

// Exit codes returned by Execute.
const (
	ExitOK           = 0
	ExitFailure      = 1
	ExitStoreFailure = 2
)

// IO is the terminal the commands talk to.
type IO struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

type globalFlags struct {
	configPath string
	engine     string
	logLevel   string
}

// Execute runs the command line with args and returns the process exit code.
func Execute(ctx context.Context, args []string, term IO) int {
	cmd := NewRootCommand(term)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}

	fmt.Fprintf(term.Err, "error: %v\n", err)
	return ExitCode(err)
}

// ExitCode maps an error to a process exit code: store failures exit 2,
// everything else (validation, usage, configuration) exits 1.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, domain.ErrStoreUnavailable), errors.As(err, new(*storeError)):
		return ExitStoreFailure
	default:
		return ExitFailure
	}
}

// storeError marks a failure reported by the record store.
type storeError struct{ err error }

func (e *storeError) Error() string { return e.err.Error() }
func (e *storeError) Unwrap() error { return e.err }

// NewRootCommand builds the intake command tree.
func NewRootCommand(term IO) *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:           "intake",
		Short:         "Log drinks and review your intake history",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.SetIn(term.In)
	cmd.SetOut(term.Out)
	cmd.SetErr(term.Err)

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Path to the YAML config file (default $CONFIG_PATH or ./config.yaml)")
	cmd.PersistentFlags().StringVar(&flags.engine, "engine", "", "Storage engine override: sqlite, postgres or memory")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level override: debug, info, warn or error")

	cmd.AddCommand(
		newInitCommand(flags, term),
		newAddCommand(flags, term),
		newListCommand(flags, term),
		newTotalCommand(flags, term),
		newClearCommand(flags, term),
		newServeCommand(flags, term),
		newVersionCommand(term),
	)
	return cmd
}

// loadConfig reads configuration and applies command line overrides.
func (f *globalFlags) loadConfig() (*config.Config, error) {
	path := f.configPath
	var (
		cfg *config.Config
		err error
	)
	if path == "" {
		cfg, err = config.Load()
	} else {
		cfg, err = config.LoadFrom(path)
	}
	if err != nil {
		return nil, err
	}

	if f.engine == "" && f.logLevel == "" {
		return cfg, nil
	}
	if f.engine != "" {
		cfg.Store.Engine = f.engine
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return cfg, nil
}

// session is an initialized application for one command invocation.
type session struct {
	app *app.App
	cfg *config.Config
	log *slog.Logger
}

// openSession loads configuration, builds the application and initializes
// the store.
func (f *globalFlags) openSession(ctx context.Context, term IO) (*session, error) {
	cfg, err := f.loadConfig()
	if err != nil {
		return nil, err
	}

	log := app.NewLogger(term.Err, cfg.Log)
	a, err := app.New(cfg, log)
	if err != nil {
		return nil, err
	}

	if err := a.Initialize(ctx); err != nil {
		return nil, &storeError{err: err}
	}

	return &session{app: a, cfg: cfg, log: log}, nil
}

func (s *session) close() {
	if err := s.app.Close(); err != nil {
		s.log.Warn("close store", slog.String("error", err.Error()))
	}
}

// wrapStore tags errors that did not come from input validation as store
// failures.
func wrapStore(err error) error {
	if err == nil || errors.Is(err, domain.ErrValidation) {
		return err
	}
	return &storeError{err: err}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
