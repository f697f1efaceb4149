package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/haguru/localauth/internal/interfaces"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

const (
	DriverName    = "sqlite"
	MigrationsDir = "migrations"

	// InMemoryDSN opens a private database that lives as long as the connection.
	InMemoryDSN = ":memory:"
)

//go:embed migrations/*.sql
var migrations embed.FS

// SQLiteClient stores values in a single kv_store table of an SQLite file.
type SQLiteClient struct {
	db *sql.DB
}

// NewSQLiteClient opens the database at dsn and applies the embedded migrations.
func NewSQLiteClient(ctx context.Context, dsn string) (*SQLiteClient, error) {
	db, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// an in-memory database is per connection, so keep exactly one
	if dsn == InMemoryDSN {
		db.SetMaxOpenConns(1)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run sqlite migrations: %w", err)
	}

	return &SQLiteClient{db: db}, nil
}

// RunMigrations brings the kv_store schema up to date.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, MigrationsDir)
}

var _ interfaces.KVStore = (*SQLiteClient)(nil)

func (c *SQLiteClient) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := c.db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get kv_store[%s]: %w", key, err)
	}
	return value, true, nil
}

func (c *SQLiteClient) Set(ctx context.Context, key, value string) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO kv_store (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set kv_store[%s]: %w", key, err)
	}
	return nil
}

func (c *SQLiteClient) Remove(ctx context.Context, key string) error {
	_, err := c.db.ExecContext(ctx, `DELETE FROM kv_store WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete kv_store[%s]: %w", key, err)
	}
	return nil
}

func (c *SQLiteClient) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

func (c *SQLiteClient) Close(context.Context) error {
	return c.db.Close()
}
