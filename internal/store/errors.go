package store

import (
	"fmt"

	"github.com/heartmarshall/intakelog/internal/domain"
)

// Operation names reported in errors, logs and metrics.
const (
	OpInsert     = "insert"
	OpList       = "list"
	OpListByDate = "list_by_date"
	OpCount      = "count"
	OpClear      = "clear"
	OpPing       = "ping"
)

// InitializationError reports that the engine could not be opened or migrated.
// It matches domain.ErrStoreUnavailable as well as the underlying cause.
type InitializationError struct {
	Stage string
	Err   error
}

func (e *InitializationError) Error() string {
	return fmt.Sprintf("initialize store: %s: %v", e.Stage, e.Err)
}

func (e *InitializationError) Unwrap() []error {
	return []error{domain.ErrStoreUnavailable, e.Err}
}

// OperationError reports a failed store operation.
type OperationError struct {
	Op  string
	Err error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *OperationError) Unwrap() error { return e.Err }
