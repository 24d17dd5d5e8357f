// Package memory implements an in-process intake engine. It keeps records in
// insertion order and maintains a date index like the persistent engines.
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/heartmarshall/intakelog/internal/domain"
)

// ErrClosed is returned by every method after Close.
var ErrClosed = errors.New("memory engine closed")

// Engine stores intake records in memory. The zero value is not usable;
// call New.
type Engine struct {
	mu       sync.RWMutex
	migrated bool
	closed   bool
	nextID   int64
	records  []domain.IntakeRecord
	byDate   map[string][]int
}

// New creates an empty engine.
func New() *Engine {
	return &Engine{nextID: 1, byDate: make(map[string][]int)}
}

// Migrate is idempotent and only marks the collection as present.
func (e *Engine) Migrate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	e.migrated = true
	return nil
}

// Insert appends rec with the next ID. IDs are never reused, even after Clear.
func (e *Engine) Insert(ctx context.Context, rec domain.IntakeRecord) (*domain.IntakeRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.usable(); err != nil {
		return nil, err
	}

	rec.ID = e.nextID
	e.nextID++
	rec.DrinkType = cloneString(rec.DrinkType)

	e.records = append(e.records, rec)
	e.byDate[rec.Date] = append(e.byDate[rec.Date], len(e.records)-1)

	out := rec
	out.DrinkType = cloneString(rec.DrinkType)
	return &out, nil
}

// List returns copies of all records in insertion order.
func (e *Engine) List(ctx context.Context) ([]domain.IntakeRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	if err := e.usable(); err != nil {
		return nil, err
	}

	out := make([]domain.IntakeRecord, len(e.records))
	for i, r := range e.records {
		out[i] = r
		out[i].DrinkType = cloneString(r.DrinkType)
	}
	return out, nil
}

// ListByDate returns copies of the records indexed under date.
func (e *Engine) ListByDate(ctx context.Context, date string) ([]domain.IntakeRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	if err := e.usable(); err != nil {
		return nil, err
	}

	positions := e.byDate[date]
	out := make([]domain.IntakeRecord, 0, len(positions))
	for _, pos := range positions {
		r := e.records[pos]
		r.DrinkType = cloneString(r.DrinkType)
		out = append(out, r)
	}
	return out, nil
}

// Count returns the number of records.
func (e *Engine) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	if err := e.usable(); err != nil {
		return 0, err
	}
	return len(e.records), nil
}

// Clear drops all records and the date index.
func (e *Engine) Clear(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.usable(); err != nil {
		return 0, err
	}

	n := len(e.records)
	e.records = nil
	e.byDate = make(map[string][]int)
	return n, nil
}

// Ping fails only after Close.
func (e *Engine) Ping(ctx context.Context) error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return ErrClosed
	}
	return ctx.Err()
}

// Close discards the records. Subsequent calls return ErrClosed.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	e.records = nil
	e.byDate = nil
	return nil
}

func (e *Engine) usable() error {
	if e.closed {
		return ErrClosed
	}
	if !e.migrated {
		return errors.New("memory engine: collection intake does not exist")
	}
	return nil
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
