// Package postgres provides a server-backed storage driver for
// deployments where several instances share one durable store.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmorelli/confab/internal/config"
)

// KV implements storage.KV over a postgres table.
type KV struct {
	pool *pgxpool.Pool
}

// Open connects to postgres and ensures the kv table exists.
func Open(ctx context.Context, cfg config.PostgresConfig) (*KV, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS confab_kv (
		key   TEXT PRIMARY KEY,
		value BYTEA NOT NULL
	)`
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &KV{pool: pool}, nil
}

func (k *KV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := k.pool.QueryRow(ctx, `SELECT value FROM confab_kv WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, true, nil
}

func (k *KV) Set(ctx context.Context, key string, value []byte) error {
	query := `INSERT INTO confab_kv (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`
	if _, err := k.pool.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (k *KV) Delete(ctx context.Context, key string) error {
	if _, err := k.pool.Exec(ctx, `DELETE FROM confab_kv WHERE key = $1`, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (k *KV) Close() error {
	k.pool.Close()
	return nil
}
