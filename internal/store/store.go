package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Database wraps the SQL connection and the per-table stores.
type Database struct {
	db *sql.DB

	Sessions  *SessionStore
	Callbacks *CallbackLogStore
}

// Open connects to PostgreSQL at uri and verifies the connection.
func Open(ctx context.Context, uri string, maxOpen, maxIdle int) (*Database, error) {
	db, err := sql.Open("postgres", uri)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return New(db), nil
}

// New wraps an already opened connection.
func New(db *sql.DB) *Database {
	return &Database{
		db:        db,
		Sessions:  &SessionStore{db: db},
		Callbacks: &CallbackLogStore{db: db},
	}
}

// RunMigrations applies every embedded migration newer than the recorded
// schema version, each in its own transaction.
func (d *Database) RunMigrations(ctx context.Context) error {
	_, err := d.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INT PRIMARY KEY,
			applied_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	var current int
	err = d.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&current)
	if err != nil {
		return fmt.Errorf("get current migration version: %w", err)
	}

	entries, err := migrationFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("read migrations directory: %w", err)
	}

	for _, entry := range entries {
		var version int
		if entry.IsDir() {
			continue
		}
		if _, err := fmt.Sscanf(entry.Name(), "%04d_", &version); err != nil || version <= current {
			continue
		}
		if err := d.applyMigration(ctx, version, "migrations/"+entry.Name()); err != nil {
			return err
		}
	}
	return nil
}

func (d *Database) applyMigration(ctx context.Context, version int, name string) error {
	data, err := migrationFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read migration %s: %w", name, err)
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction for migration %d: %w", version, err)
	}
	if _, err := tx.ExecContext(ctx, string(data)); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("execute migration %s: %w", name, err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES ($1)", version); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("record migration %d: %w", version, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %d: %w", version, err)
	}
	return nil
}

func (d *Database) Close() error {
	return d.db.Close()
}
