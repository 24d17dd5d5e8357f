package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/intakelog/internal/domain"
)

func TestMapError_Nil(t *testing.T) {
	t.Parallel()

	if got := MapError(nil, "intake", "insert"); got != nil {
		t.Errorf("MapError(nil) = %v, want nil", got)
	}
}

func TestMapError_NoRows(t *testing.T) {
	t.Parallel()

	got := MapError(pgx.ErrNoRows, "intake", "count")

	if !errors.Is(got, domain.ErrNotFound) {
		t.Errorf("MapError(ErrNoRows) does not wrap domain.ErrNotFound: %v", got)
	}
	if want := "intake count: not found"; got.Error() != want {
		t.Errorf("MapError(ErrNoRows).Error() = %q, want %q", got.Error(), want)
	}
}

func TestMapError_WrappedNoRows(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("scan row: %w", pgx.ErrNoRows)
	if got := MapError(wrapped, "intake", "list"); !errors.Is(got, domain.ErrNotFound) {
		t.Errorf("MapError(wrapped ErrNoRows) does not wrap domain.ErrNotFound: %v", got)
	}
}

func TestMapError_CheckViolation(t *testing.T) {
	t.Parallel()

	pgErr := &pgconn.PgError{Code: "23514", Message: "check constraint"}
	if got := MapError(pgErr, "intake", "insert"); !errors.Is(got, domain.ErrValidation) {
		t.Errorf("MapError(23514) does not wrap domain.ErrValidation: %v", got)
	}
}

func TestMapError_ConnectionException(t *testing.T) {
	t.Parallel()

	for _, code := range []string{"08000", "08006", "57P01", "57P03"} {
		pgErr := &pgconn.PgError{Code: code}
		got := MapError(pgErr, "intake", "list")

		if !errors.Is(got, domain.ErrStoreUnavailable) {
			t.Errorf("MapError(%s) does not wrap domain.ErrStoreUnavailable: %v", code, got)
		}
		var target *pgconn.PgError
		if !errors.As(got, &target) {
			t.Errorf("MapError(%s) lost the original PgError", code)
		}
	}
}

func TestMapError_ContextPassThrough(t *testing.T) {
	t.Parallel()

	for _, ctxErr := range []error{context.Canceled, context.DeadlineExceeded} {
		got := MapError(ctxErr, "intake", "clear")
		if !errors.Is(got, ctxErr) {
			t.Errorf("MapError(%v) does not wrap original: %v", ctxErr, got)
		}
		if errors.Is(got, domain.ErrStoreUnavailable) {
			t.Errorf("MapError(%v) should not be mapped to ErrStoreUnavailable", ctxErr)
		}
	}
}

func TestMapError_Unknown(t *testing.T) {
	t.Parallel()

	orig := errors.New("boom")
	got := MapError(orig, "intake", "insert")

	if !errors.Is(got, orig) {
		t.Errorf("MapError(unknown) does not wrap original: %v", got)
	}
	if got.Error() != "intake insert: boom" {
		t.Errorf("MapError(unknown).Error() = %q", got.Error())
	}
}
