package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/heartmarshall/intakelog/internal/adapter/memory"
	"github.com/heartmarshall/intakelog/internal/adapter/postgres"
	pgintake "github.com/heartmarshall/intakelog/internal/adapter/postgres/intake"
	"github.com/heartmarshall/intakelog/internal/adapter/sqlite"
	sqliteintake "github.com/heartmarshall/intakelog/internal/adapter/sqlite/intake"
	"github.com/heartmarshall/intakelog/internal/config"
	"github.com/heartmarshall/intakelog/internal/observability"
	"github.com/heartmarshall/intakelog/internal/service/intake"
	"github.com/heartmarshall/intakelog/internal/store"
	"github.com/heartmarshall/intakelog/internal/transport/rest"
)

// App wires the record store, the intake workflow and the HTTP API.
type App struct {
	cfg     *config.Config
	log     *slog.Logger
	Store   *store.Store
	Intake  *intake.Service
	Metrics *observability.Metrics
}

// New assembles the application from cfg. No engine is opened until
// Initialize is called.
func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	open, err := OpenerFor(cfg.Store, log)
	if err != nil {
		return nil, err
	}

	metrics, err := observability.NewMetrics()
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	st := store.New(log, open,
		store.WithLocation(cfg.Intake.Location),
		store.WithObserver(metrics.Store),
		store.WithListener(metrics.Store.OnEvent),
	)

	return &App{
		cfg:     cfg,
		log:     log,
		Store:   st,
		Intake:  intake.NewService(log, st, cfg.Intake),
		Metrics: metrics,
	}, nil
}

// OpenerFor returns a store.Opener for the configured engine. Each open is
// bounded by cfg.OpenTimeout.
func OpenerFor(cfg config.StoreConfig, log *slog.Logger) (store.Opener, error) {
	switch cfg.Engine {
	case config.EngineSQLite:
		return func(ctx context.Context) (store.Engine, error) {
			ctx, cancel := context.WithTimeout(ctx, cfg.OpenTimeout)
			defer cancel()

			db, err := sqlite.Open(ctx, cfg)
			if err != nil {
				return nil, err
			}
			return sqliteintake.New(db, log), nil
		}, nil
	case config.EnginePostgres:
		return func(ctx context.Context) (store.Engine, error) {
			ctx, cancel := context.WithTimeout(ctx, cfg.OpenTimeout)
			defer cancel()

			pool, err := postgres.NewPool(ctx, cfg)
			if err != nil {
				return nil, err
			}
			return pgintake.New(pool, log), nil
		}, nil
	case config.EngineMemory:
		return func(context.Context) (store.Engine, error) {
			return memory.New(), nil
		}, nil
	default:
		return nil, fmt.Errorf("unknown store engine %q", cfg.Engine)
	}
}

// Initialize opens the store. A failure is logged by the store and returned;
// the store then reports itself unavailable.
func (a *App) Initialize(ctx context.Context) error {
	return a.Store.Initialize(ctx)
}

// Close releases the store.
func (a *App) Close() error {
	return a.Store.Close()
}

// Handler builds the HTTP API.
func (a *App) Handler() http.Handler {
	return rest.NewRouter(rest.RouterDeps{
		Log:            a.log,
		Health:         rest.NewHealthHandler(a.Store, a.cfg.Store.Engine, Version),
		Intake:         rest.NewIntakeHandler(a.Intake, a.log),
		Metrics:        a.Metrics.Handler(),
		CORS:           a.cfg.CORS,
		WriteRateLimit: a.cfg.Server.WriteRateLimit,
	})
}

// Addr is the configured listen address.
func (a *App) Addr() string {
	return net.JoinHostPort(a.cfg.Server.Host, strconv.Itoa(a.cfg.Server.Port))
}

// Serve listens on the configured address and serves the API until ctx is
// canceled.
func (a *App) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.Addr())
	if err != nil {
		return fmt.Errorf("listen %s: %w", a.Addr(), err)
	}
	return a.ServeListener(ctx, ln)
}

// ServeListener initializes the store, serves the API on ln and shuts the
// server down gracefully once ctx is canceled. A store that fails to
// initialize does not stop the server: /ready reports it and data
// endpoints answer 503.
func (a *App) ServeListener(ctx context.Context, ln net.Listener) error {
	a.log.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("engine", a.cfg.Store.Engine),
		slog.String("log_level", a.cfg.Log.Level),
	)

	if err := a.Initialize(ctx); err != nil {
		a.log.Warn("serving without a usable store", slog.String("error", err.Error()))
	}

	srv := &http.Server{
		Handler:      a.Handler(),
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
		IdleTimeout:  a.cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(a.log.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("http server listening", slog.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
		if errors.Is(serveErr, http.ErrServerClosed) {
			serveErr = nil
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	a.log.Info("shutting down http server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		serveErr = errors.Join(serveErr, fmt.Errorf("shutdown http server: %w", err))
	}

	if err := a.Close(); err != nil {
		serveErr = errors.Join(serveErr, fmt.Errorf("close store: %w", err))
	}

	a.log.Info("application stopped")
	return serveErr
}
