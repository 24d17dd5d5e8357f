package store

import (
	"context"

	"github.com/heartmarshall/intakelog/internal/domain"
)

// Engine is a storage backend holding the single intake collection.
// Implementations assign record IDs, keep a non-unique index on date and
// provide their own transaction isolation.
type Engine interface {
	// Migrate creates the collection and its date index if absent.
	// It must be idempotent.
	Migrate(ctx context.Context) error
	Insert(ctx context.Context, rec domain.IntakeRecord) (*domain.IntakeRecord, error)
	List(ctx context.Context) ([]domain.IntakeRecord, error)
	ListByDate(ctx context.Context, date string) ([]domain.IntakeRecord, error)
	Count(ctx context.Context) (int, error)
	// Clear removes every record atomically and returns how many were removed.
	Clear(ctx context.Context) (int, error)
	Ping(ctx context.Context) error
	Close() error
}

// Opener opens a handle to a storage engine.
type Opener func(ctx context.Context) (Engine, error)
