// Package postgres opens pooled sqlx connections to PostgreSQL through the
// pgx driver and applies schema migrations.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const driverName = "pgx"

type poolConfig struct {
	connMaxIdleTime time.Duration
	connMaxLifetime time.Duration
	maxIdleConns    int
	maxOpenConns    int
}

var defaultPoolConfig = poolConfig{
	connMaxIdleTime: 5 * time.Minute,
	connMaxLifetime: 30 * time.Minute,
	maxIdleConns:    5,
	maxOpenConns:    25,
}

type Option func(*poolConfig)

func WithConnMaxIdleTime(d time.Duration) Option {
	return func(c *poolConfig) {
		c.connMaxIdleTime = d
	}
}

func WithConnMaxLifetime(d time.Duration) Option {
	return func(c *poolConfig) {
		c.connMaxLifetime = d
	}
}

func WithMaxIdleConns(n int) Option {
	return func(c *poolConfig) {
		c.maxIdleConns = n
	}
}

func WithMaxOpenConns(n int) Option {
	return func(c *poolConfig) {
		c.maxOpenConns = n
	}
}

// New connects to the database at dsn and verifies the connection with a ping.
func New(ctx context.Context, dsn string, opts ...Option) (*sqlx.DB, error) {
	const op = "postgres.New"

	cfg := defaultPoolConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	db, err := sqlx.ConnectContext(ctx, driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to connect to database: %w", op, err)
	}

	db.SetConnMaxIdleTime(cfg.connMaxIdleTime)
	db.SetConnMaxLifetime(cfg.connMaxLifetime)
	db.SetMaxIdleConns(cfg.maxIdleConns)
	db.SetMaxOpenConns(cfg.maxOpenConns)

	return db, nil
}
