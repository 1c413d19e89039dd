// internal/common/database/postgres.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"payment-reminder/internal/common/config"

	_ "github.com/lib/pq"
)

// connMaxLifetime bounds how long a pooled connection to the notifications
// database is reused.
const connMaxLifetime = 5 * time.Minute

// PostgresClient is the handle the postgres notification store writes through.
type PostgresClient struct {
	DB *sql.DB
}

// NewPostgres opens a lib/pq pool for cfg. No connection is made until the
// first Ping or Exec.
func NewPostgres(cfg config.PostgresConfig) (*PostgresClient, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(connMaxLifetime)
	db.SetConnMaxIdleTime(connMaxLifetime)

	return NewPostgresFromDB(db), nil
}

// NewPostgresFromDB wraps an already opened pool.
func NewPostgresFromDB(db *sql.DB) *PostgresClient {
	return &PostgresClient{DB: db}
}

// Ping is used as the admin listener's readiness check.
func (c *PostgresClient) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

func (c *PostgresClient) Close() error {
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}

// Exec runs a statement that returns no rows, bound to ctx.
func (c *PostgresClient) Exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return c.DB.ExecContext(ctx, query, args...)
}
