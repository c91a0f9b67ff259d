// Package sqlite provides the shared database handle, transaction manager,
// and error mapping used by every repository. The engine is a single local
// SQLite file: one process, one logical writer, opened once at startup and
// injected into repository constructors.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"github.com/socialcapital-app/backend/internal/config"
	"github.com/socialcapital-app/backend/migrations"
)

// DB wraps the sql.DB connection to the local database file.
type DB struct {
	conn *sql.DB
	path string
}

// Open opens (creating if necessary) the database file at cfg.Path, applies
// the connection pragmas, and brings the schema up to date with the embedded
// goose migrations. Migrations are additive only, so opening an older file
// with a newer binary is always safe.
func Open(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (*DB, error) {
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		fmt.Sprintf("PRAGMA busy_timeout=%d", cfg.BusyTimeout.Milliseconds()),
	}
	for _, pragma := range pragmas {
		if _, err := conn.ExecContext(ctx, pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("set pragma: %w", err)
		}
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, conn, migrations.FS)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("goose provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}
	if len(results) > 0 {
		log.Info("database migrated",
			slog.String("path", cfg.Path),
			slog.Int("applied", len(results)),
		)
	}

	return &DB{conn: conn, path: cfg.Path}, nil
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// Path returns the database file path.
func (db *DB) Path() string { return db.path }
