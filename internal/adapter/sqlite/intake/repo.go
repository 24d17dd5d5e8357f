// Package intake implements the intake collection on SQLite.
package intake

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"

	"github.com/heartmarshall/intakelog/internal/adapter/sqlite"
	"github.com/heartmarshall/intakelog/internal/domain"
)

const table = "intake"

var columns = []string{"id", "date", "time", "amount", "drink_type"}

var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// row is the scan target for one intake row.
type row struct {
	ID        int64          `db:"id"`
	Date      string         `db:"date"`
	Time      string         `db:"time"`
	Amount    float64        `db:"amount"`
	DrinkType sql.NullString `db:"drink_type"`
}

// Repo provides intake persistence backed by a SQLite file.
type Repo struct {
	db  *sql.DB
	log *slog.Logger
}

// New creates a new intake repository over an open database.
func New(db *sql.DB, log *slog.Logger) *Repo {
	return &Repo{db: db, log: log.With("engine", "sqlite")}
}

// Migrate creates the intake table and its date index if absent.
func (r *Repo) Migrate(ctx context.Context) error {
	results, err := sqlite.Migrate(ctx, r.db)
	if err != nil {
		return err
	}
	sqlite.LogMigrations(ctx, r.log, results)
	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// List returns all rows ordered by id.
func (r *Repo) List(ctx context.Context) ([]domain.IntakeRecord, error) {
	query := builder.Select(columns...).From(table).OrderBy("id ASC")
	return r.selectRecords(ctx, query)
}

// ListByDate returns the rows for one date, served by idx_intake_date.
func (r *Repo) ListByDate(ctx context.Context, date string) ([]domain.IntakeRecord, error) {
	query := builder.Select(columns...).From(table).
		Where(squirrel.Eq{"date": date}).
		OrderBy("id ASC")
	return r.selectRecords(ctx, query)
}

// Count returns the number of rows.
func (r *Repo) Count(ctx context.Context) (int, error) {
	sqlStr, args, err := builder.Select("COUNT(*)").From(table).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}

	var n int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&n); err != nil {
		return 0, mapError(err, "count")
	}
	return n, nil
}

func (r *Repo) selectRecords(ctx context.Context, query squirrel.SelectBuilder) ([]domain.IntakeRecord, error) {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var rows []row
	if err := sqlscan.Select(ctx, r.db, &rows, sqlStr, args...); err != nil {
		return nil, mapError(err, "select")
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

// Insert stores rec and returns it with the row id assigned by SQLite.
func (r *Repo) Insert(ctx context.Context, rec domain.IntakeRecord) (*domain.IntakeRecord, error) {
	sqlStr, args, err := builder.Insert(table).
		Columns("date", "time", "amount", "drink_type").
		Values(rec.Date, rec.Time, rec.Amount, toNullString(rec.DrinkType)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}

	res, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, mapError(err, "insert")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("intake last insert id: %w", err)
	}

	rec.ID = id
	return &rec, nil
}

// Clear deletes every row in one statement. Idempotent: clearing an empty
// table is not an error. Returns the number of deleted rows.
func (r *Repo) Clear(ctx context.Context) (int, error) {
	sqlStr, args, err := builder.Delete(table).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}

	res, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, mapError(err, "delete")
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("intake rows affected: %w", err)
	}
	return int(n), nil
}

// Ping checks the database connection.
func (r *Repo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close closes the database.
func (r *Repo) Close() error {
	return r.db.Close()
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// mapError tags a failed statement with the operation that ran it.
func mapError(err error, op string) error {
	return fmt.Errorf("intake %s: %w", op, err)
}

func toDomain(rw row) domain.IntakeRecord {
	rec := domain.IntakeRecord{
		ID:     rw.ID,
		Date:   rw.Date,
		Time:   rw.Time,
		Amount: rw.Amount,
	}
	if rw.DrinkType.Valid {
		dt := rw.DrinkType.String
		rec.DrinkType = &dt
	}
	return rec
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
