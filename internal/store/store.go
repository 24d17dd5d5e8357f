// Package store implements the local record store: a single intake
// collection behind an injectable storage engine, with an explicit
// Initialize/Close lifecycle.
package store

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/heartmarshall/intakelog/internal/domain"
)

type state int

const (
	stateNew state = iota
	stateReady
	stateFailed
	stateClosed
)

// Observer receives the outcome of every engine operation.
type Observer interface {
	ObserveOperation(op string, duration time.Duration, err error)
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the wall clock used to stamp records.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocation sets the zone in which record dates and times are derived.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithObserver attaches an operation observer (metrics).
func WithObserver(o Observer) Option {
	return func(s *Store) {
		s.observer = o
	}
}

// WithListener subscribes a change listener at construction time.
func WithListener(l Listener) Option {
	return func(s *Store) {
		if l != nil {
			s.listeners = append(s.listeners, l)
		}
	}
}

// Store owns one engine handle and serialises its lifecycle.
// Operations share the handle; the engine provides isolation between them.
type Store struct {
	open     Opener
	log      *slog.Logger
	now      func() time.Time
	loc      *time.Location
	observer Observer

	mu     sync.RWMutex
	engine Engine
	state  state

	lmu       sync.RWMutex
	listeners []Listener
}

// New creates a Store. No engine is opened until Initialize is called.
func New(log *slog.Logger, open Opener, opts ...Option) *Store {
	s := &Store{
		open: open,
		log:  log.With("service", "store"),
		now:  time.Now,
		loc:  time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize opens the engine if needed and ensures the intake collection
// and its date index exist. It is safe to call repeatedly; a failed
// initialization leaves the store unavailable until Initialize succeeds.
func (s *Store) Initialize(ctx context.Context) error {
	count, err := s.initialize(ctx)
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "record store initialized", slog.Int("records", count))
	s.notify(ctx, Event{Kind: EventInitialized, Count: count})

	return nil
}

func (s *Store) initialize(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.engine == nil {
		engine, err := s.open(ctx)
		if err != nil {
			return 0, s.failInit(ctx, "open", err)
		}
		s.engine = engine
	}

	if err := s.engine.Migrate(ctx); err != nil {
		if cerr := s.engine.Close(); cerr != nil {
			s.log.WarnContext(ctx, "close engine after failed migration", slog.String("error", cerr.Error()))
		}
		s.engine = nil
		return 0, s.failInit(ctx, "migrate", err)
	}

	count, err := s.engine.Count(ctx)
	if err != nil {
		return 0, s.failInit(ctx, "count", err)
	}

	s.state = stateReady
	return count, nil
}

func (s *Store) failInit(ctx context.Context, stage string, err error) error {
	s.state = stateFailed
	s.log.ErrorContext(ctx, "record store unavailable",
		slog.String("stage", stage),
		slog.String("error", err.Error()),
	)
	return &InitializationError{Stage: stage, Err: err}
}

// Ready reports whether the store has been initialized and not closed.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state == stateReady
}

// Close releases the engine handle. Calling Close more than once is a no-op.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = stateClosed
	if s.engine == nil {
		return nil
	}

	err := s.engine.Close()
	s.engine = nil
	return err
}

// Insert stamps a new record with the current date and time, stores it and
// returns it with its assigned ID. The record is visible to ListAll once
// Insert returns.
func (s *Store) Insert(ctx context.Context, amount float64, drinkType *string) (*domain.IntakeRecord, error) {
	rec := domain.NewIntakeRecord(s.now().In(s.loc), amount, drinkType)

	var saved *domain.IntakeRecord
	err := s.do(ctx, OpInsert, func(ctx context.Context, e Engine) error {
		var err error
		saved, err = e.Insert(ctx, rec)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "intake recorded",
		slog.Int64("record_id", saved.ID),
		slog.Float64("amount", saved.Amount),
		slog.String("date", saved.Date),
	)
	s.notify(ctx, Event{Kind: EventInserted, Record: saved})

	return saved, nil
}

// ListAll returns every record in ascending ID (insertion) order.
// It never returns a nil slice on success.
func (s *Store) ListAll(ctx context.Context) ([]domain.IntakeRecord, error) {
	var records []domain.IntakeRecord
	err := s.do(ctx, OpList, func(ctx context.Context, e Engine) error {
		var err error
		records, err = e.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return nonNil(records), nil
}

// ListByDate returns the records logged on date (YYYY-MM-DD) in ascending ID order.
func (s *Store) ListByDate(ctx context.Context, date string) ([]domain.IntakeRecord, error) {
	var records []domain.IntakeRecord
	err := s.do(ctx, OpListByDate, func(ctx context.Context, e Engine) error {
		var err error
		records, err = e.ListByDate(ctx, date)
		return err
	})
	if err != nil {
		return nil, err
	}
	return nonNil(records), nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.do(ctx, OpCount, func(ctx context.Context, e Engine) error {
		var err error
		n, err = e.Count(ctx)
		return err
	})
	return n, err
}

// ClearAll removes every record and returns how many were removed.
// Clearing an empty collection succeeds.
func (s *Store) ClearAll(ctx context.Context) (int, error) {
	var deleted int
	err := s.do(ctx, OpClear, func(ctx context.Context, e Engine) error {
		var err error
		deleted, err = e.Clear(ctx)
		return err
	})
	if err != nil {
		return 0, err
	}

	s.log.InfoContext(ctx, "intake history cleared", slog.Int("deleted_count", deleted))
	s.notify(ctx, Event{Kind: EventCleared, Count: deleted})

	return deleted, nil
}

// Ping checks that the engine is reachable.
func (s *Store) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state != stateReady {
		return &OperationError{Op: OpPing, Err: domain.ErrStoreUnavailable}
	}
	if err := s.engine.Ping(ctx); err != nil {
		return &OperationError{Op: OpPing, Err: err}
	}
	return nil
}

// do runs fn against the engine while holding the lifecycle read lock, then
// reports the outcome. Listeners are notified by callers after do returns so
// that they may call back into the store.
func (s *Store) do(ctx context.Context, op string, fn func(ctx context.Context, e Engine) error) error {
	start := time.Now()
	err := s.withEngine(ctx, fn)
	duration := time.Since(start)

	if s.observer != nil {
		s.observer.ObserveOperation(op, duration, err)
	}

	if err != nil {
		if !errors.Is(err, domain.ErrStoreUnavailable) {
			s.log.ErrorContext(ctx, "store operation failed",
				slog.String("op", op),
				slog.String("error", err.Error()),
			)
		}
		return &OperationError{Op: op, Err: err}
	}

	s.log.DebugContext(ctx, "store operation completed",
		slog.String("op", op),
		slog.Duration("duration", duration),
	)
	return nil
}

func (s *Store) withEngine(ctx context.Context, fn func(ctx context.Context, e Engine) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state != stateReady {
		return domain.ErrStoreUnavailable
	}
	return fn(ctx, s.engine)
}

func nonNil(records []domain.IntakeRecord) []domain.IntakeRecord {
	if records == nil {
		return []domain.IntakeRecord{}
	}
	return records
}
