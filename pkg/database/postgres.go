package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hkbk-garden/plant-catalog/pkg/config"
)

const applicationName = "plant-catalog"

// DB wraps a pgxpool connection pool.
type DB struct {
	*pgxpool.Pool
}

// Config holds database connection configuration.
type Config struct {
	URL      string
	Settings config.DatabaseConfig
	// Writable leaves sessions read-write. Catalog pools only read, so
	// sessions default to read-only and the server rejects any write.
	Writable bool
}

// PoolConfig builds the pgxpool configuration. Pool size comes from
// Settings.MaxConnections alone.
func (c *Config) PoolConfig() (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(c.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}
	if c.Settings.MaxConnections <= 0 {
		return nil, fmt.Errorf("max connections must be positive, got %d", c.Settings.MaxConnections)
	}

	poolConfig.MaxConns = c.Settings.MaxConnections
	if c.Settings.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = c.Settings.MaxConnLifetime
	}
	if c.Settings.MaxConnIdleTime > 0 {
		poolConfig.MaxConnIdleTime = c.Settings.MaxConnIdleTime
	}

	params := poolConfig.ConnConfig.RuntimeParams
	params["application_name"] = applicationName
	if !c.Writable {
		params["default_transaction_read_only"] = "on"
	}
	return poolConfig, nil
}

// NewConnection opens the pool and pings it so a bad address fails at
// startup instead of on the first page load.
func NewConnection(ctx context.Context, cfg *Config) (*DB, error) {
	poolConfig, err := cfg.PoolConfig()
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// Close closes the connection pool.
func (db *DB) Close() {
	db.Pool.Close()
}
