package db

import (
	"context"
	"fmt"
	"time"

	"tasks_api/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect builds the process-wide pool and verifies it with a ping.
// The caller owns the pool and must Close it on shutdown.
func Connect(ctx context.Context, dsn string, maxConns int32) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	if maxConns > 0 {
		poolCfg.MaxConns = maxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create database pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger.Info("database connected",
		"host", poolCfg.ConnConfig.Host,
		"database", poolCfg.ConnConfig.Database,
		"max_conns", poolCfg.MaxConns,
	)
	return pool, nil
}

// MustConnect is Connect for command line tools that cannot continue without a database.
func MustConnect(dsn string, maxConns int32) *pgxpool.Pool {
	pool, err := Connect(context.Background(), dsn, maxConns)
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}
	return pool
}
