// Package intake implements the intake collection on PostgreSQL.
package intake

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/intakelog/internal/adapter/postgres"
	"github.com/heartmarshall/intakelog/internal/domain"
)

const (
	table  = "intake"
	entity = "intake"
)

var columns = []string{"id", "date", "time", "amount", "drink_type"}

var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

type row struct {
	ID        int64       `db:"id"`
	Date      string      `db:"date"`
	Time      string      `db:"time"`
	Amount    float64     `db:"amount"`
	DrinkType pgtype.Text `db:"drink_type"`
}

// Repo provides intake persistence backed by PostgreSQL.
type Repo struct {
	pool    postgres.Pool
	migrate func(ctx context.Context) error
}

// New creates a new intake repository over a pgx pool.
func New(pool *pgxpool.Pool, log *slog.Logger) *Repo {
	log = log.With("engine", "postgres")
	return NewWithPool(pool, func(ctx context.Context) error {
		return postgres.MigratePool(ctx, pool, log)
	})
}

// NewWithPool creates a repository over any Pool. migrate is run by Migrate.
func NewWithPool(pool postgres.Pool, migrate func(ctx context.Context) error) *Repo {
	return &Repo{pool: pool, migrate: migrate}
}

// Migrate creates the intake table and its date index if absent.
func (r *Repo) Migrate(ctx context.Context) error {
	if r.migrate == nil {
		return nil
	}
	return r.migrate(ctx)
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// List returns all rows ordered by id.
func (r *Repo) List(ctx context.Context) ([]domain.IntakeRecord, error) {
	query := builder.Select(columns...).From(table).OrderBy("id ASC")
	return r.selectRecords(ctx, query, "list")
}

// ListByDate returns the rows for one date ordered by id.
func (r *Repo) ListByDate(ctx context.Context, date string) ([]domain.IntakeRecord, error) {
	query := builder.Select(columns...).From(table).
		Where(squirrel.Eq{"date": date}).
		OrderBy("id ASC")
	return r.selectRecords(ctx, query, "list by date")
}

// Count returns the number of rows.
func (r *Repo) Count(ctx context.Context) (int, error) {
	sqlStr, args, err := builder.Select("COUNT(*)").From(table).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}

	var n int64
	if err := r.pool.QueryRow(ctx, sqlStr, args...).Scan(&n); err != nil {
		return 0, postgres.MapError(err, entity, "count")
	}
	return int(n), nil
}

func (r *Repo) selectRecords(ctx context.Context, query squirrel.SelectBuilder, op string) ([]domain.IntakeRecord, error) {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, r.pool, &rows, sqlStr, args...); err != nil {
		return nil, postgres.MapError(err, entity, op)
	}

	records := make([]domain.IntakeRecord, len(rows))
	for i, rw := range rows {
		records[i] = toDomain(rw)
	}
	return records, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Insert stores rec and returns it with the identity value assigned by PostgreSQL.
func (r *Repo) Insert(ctx context.Context, rec domain.IntakeRecord) (*domain.IntakeRecord, error) {
	sqlStr, args, err := builder.Insert(table).
		Columns("date", "time", "amount", "drink_type").
		Values(rec.Date, rec.Time, rec.Amount, ptrStringToPgText(rec.DrinkType)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}

	if err := r.pool.QueryRow(ctx, sqlStr, args...).Scan(&rec.ID); err != nil {
		return nil, postgres.MapError(err, entity, "insert")
	}
	return &rec, nil
}

// Clear deletes every row. Idempotent: calling on an empty table is not an
// error. Returns the number of deleted rows.
func (r *Repo) Clear(ctx context.Context) (int, error) {
	sqlStr, args, err := builder.Delete(table).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}

	tag, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		return 0, postgres.MapError(err, entity, "clear")
	}
	return int(tag.RowsAffected()), nil
}

// Ping checks the pool.
func (r *Repo) Ping(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return postgres.MapError(err, entity, "ping")
	}
	return nil
}

// Close closes the pool.
func (r *Repo) Close() error {
	r.pool.Close()
	return nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func toDomain(rw row) domain.IntakeRecord {
	rec := domain.IntakeRecord{
		ID:     rw.ID,
		Date:   rw.Date,
		Time:   rw.Time,
		Amount: rw.Amount,
	}
	if rw.DrinkType.Valid {
		rec.DrinkType = &rw.DrinkType.String
	}
	return rec
}

// ptrStringToPgText converts a *string to pgtype.Text (nil -> NULL).
func ptrStringToPgText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}
