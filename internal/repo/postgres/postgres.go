package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Gunvolt24/logistics/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolOptions — параметры пула. Нулевые значения оставляют настройки из DSN.
type PoolOptions struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	ConnectTimeout time.Duration
}

// NewPool — пул соединений к Postgres. Пингует базу сразу, чтобы сервис не стартовал без неё.
func NewPool(ctx context.Context, opts PoolOptions) (*pgxpool.Pool, error) {
	cfg, err := poolConfig(opts)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, domain.StoreUnavailable("postgres: open pool", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, domain.StoreUnavailable("postgres: ping", err)
	}
	return pool, nil
}

func poolConfig(opts PoolOptions) (*pgxpool.Config, error) {
	cfg, err := pgxpool.ParseConfig(opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse dsn: %w", err)
	}

	if opts.MaxConns > 0 {
		cfg.MaxConns = opts.MaxConns
	}
	if opts.MinConns > 0 && opts.MinConns <= cfg.MaxConns {
		cfg.MinConns = opts.MinConns
	}
	if opts.ConnectTimeout > 0 {
		cfg.ConnConfig.ConnectTimeout = opts.ConnectTimeout
	}

	cfg.MaxConnLifetime = time.Hour
	cfg.MaxConnIdleTime = 30 * time.Minute
	cfg.HealthCheckPeriod = time.Minute
	return cfg, nil
}
