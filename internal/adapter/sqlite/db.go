// Package sqlite opens the local SQLite file that backs the intake store and
// applies its schema migrations.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/heartmarshall/intakelog/internal/config"
)

// DriverName is the database/sql driver registered by modernc.org/sqlite.
const DriverName = "sqlite"

// Open opens (creating if needed) the SQLite file named by cfg.Path, applies
// connection pragmas and pings it for fail-fast validation.
// The pool is limited to one connection: SQLite allows a single writer and
// this keeps writers from contending for the file lock.
func Open(ctx context.Context, cfg config.StoreConfig) (*sql.DB, error) {
	if dir := filepath.Dir(cfg.Path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	db, err := sql.Open(DriverName, DSN(cfg.Path, cfg.BusyTimeout))
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", cfg.Path, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", cfg.Path, err)
	}

	return db, nil
}

// DSN builds a modernc.org/sqlite connection string with WAL journaling,
// a busy timeout and foreign keys enabled. The path is escaped so that
// SQLite's URI parser opens exactly that file.
func DSN(path string, busyTimeout time.Duration) string {
	q := url.Values{}
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busyTimeout.Milliseconds()))
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "foreign_keys(1)")
	return "file:" + uriPathEscaper.Replace(path) + "?" + q.Encode()
}

// uriPathEscaper escapes the characters that end or alter the path part of
// an SQLite URI filename.
var uriPathEscaper = strings.NewReplacer("%", "%25", "?", "%3F", "#", "%23")
