package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/intakelog/internal/domain"
)

// MapError converts pgx/pgconn errors to domain errors.
// context.DeadlineExceeded and context.Canceled are NOT mapped; they pass through.
func MapError(err error, entity, op string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, op, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, op, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23514": // check_violation
			return fmt.Errorf("%s %s: %w", entity, op, domain.ErrValidation)
		case len(pgErr.Code) == 5 && pgErr.Code[:2] == "08": // connection_exception class
			return fmt.Errorf("%s %s: %w: %w", entity, op, domain.ErrStoreUnavailable, err)
		case pgErr.Code == "57P01", pgErr.Code == "57P03": // admin_shutdown, cannot_connect_now
			return fmt.Errorf("%s %s: %w: %w", entity, op, domain.ErrStoreUnavailable, err)
		}
	}

	if pgconn.SafeToRetry(err) {
		return fmt.Errorf("%s %s: %w: %w", entity, op, domain.ErrStoreUnavailable, err)
	}

	return fmt.Errorf("%s %s: %w", entity, op, err)
}
