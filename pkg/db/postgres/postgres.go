// Package postgres содержит общий код подключения к PostgreSQL и применения миграций.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"gonotes/pkg/logger"
)

// Сообщения логгера.
const (
	LogConnecting        = "connecting to Postgres database"
	LogConnected         = "successfully connected to Postgres"
	LogClosing           = "closing Postgres connection pool"
	LogMigrationsApplied = "database migrations successfully applied"
)

// Сообщения об ошибках.
const (
	ErrParseConfig  = "failed to parse connection config"
	ErrCreatePool   = "failed to create connection pool"
	ErrPingDatabase = "failed to ping database"
)

const defaultConnectTimeout = 5 * time.Second

// Database представляет пул соединений с Postgres.
type Database struct {
	pool *pgxpool.Pool
}

// New открывает пул и проверяет соединение.
// Некорректные границы пула приводятся к допустимым значениям.
func New(ctx context.Context, dsn string, minConn, maxConn int) (*Database, error) {
	log := logger.Log(ctx)
	log.Info(ctx, LogConnecting)

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Error(ctx, ErrParseConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrParseConfig, err)
	}

	minConn, maxConn = poolBounds(minConn, maxConn)
	poolCfg.MinConns = int32(minConn) //nolint:gosec // ограничено poolBounds
	poolCfg.MaxConns = int32(maxConn) //nolint:gosec // ограничено poolBounds
	if poolCfg.ConnConfig.ConnectTimeout == 0 {
		poolCfg.ConnConfig.ConnectTimeout = defaultConnectTimeout
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		log.Error(ctx, ErrCreatePool, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrCreatePool, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		log.Error(ctx, ErrPingDatabase, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrPingDatabase, err)
	}

	log.Info(ctx, LogConnected, zap.Int("min_conn", minConn), zap.Int("max_conn", maxConn))
	return &Database{pool: pool}, nil
}

func poolBounds(minConn, maxConn int) (int, int) {
	const limit = 1000
	if maxConn <= 0 {
		maxConn = 1
	}
	if maxConn > limit {
		maxConn = limit
	}
	if minConn < 0 {
		minConn = 0
	}
	if minConn > maxConn {
		minConn = maxConn
	}
	return minConn, maxConn
}

// Pool возвращает пул соединений.
func (db *Database) Pool() *pgxpool.Pool {
	return db.pool
}

// Close закрывает пул.
func (db *Database) Close(ctx context.Context) {
	logger.Log(ctx).Info(ctx, LogClosing)
	db.pool.Close()
}

// Ping проверяет доступность базы данных.
func (db *Database) Ping(ctx context.Context) error {
	if err := db.pool.Ping(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrPingDatabase, err)
	}
	return nil
}
