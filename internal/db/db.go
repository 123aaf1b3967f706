// Package db поднимает хранилище заметок: применяет миграции и открывает пул соединений.
package db

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"gonotes/internal/config"
	"gonotes/pkg/db/postgres"
	"gonotes/pkg/logger"
	"gonotes/pkg/retry"
)

// Сообщения логгера.
const (
	LogDBInitializing    = "initializing notes database"
	LogDBInitialized     = "notes database initialized successfully"
	LogMigrationStarting = "starting database migrations"
)

// Сообщения об ошибках.
const (
	ErrDBMigrations = "failed to apply notes database migrations"
	ErrDBConnection = "failed to connect to notes database"
	ErrGetPath      = "failed to get path"
)

// DB - соединение с базой данных сервиса.
type DB struct {
	database *postgres.Database
}

// New применяет миграции и открывает пул. Обе операции повторяются,
// пока база поднимается вместе с сервисом.
func New(ctx context.Context, cfg *config.PostgresConfig) (*DB, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogDBInitializing,
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.Int("min_conn", cfg.MinConn),
		zap.Int("max_conn", cfg.MaxConn))

	migrationsPath, err := MigrationsURL(cfg.MigrationsDir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	retrier := retry.New("postgres", retry.DefaultConfig())

	log.Info(ctx, LogMigrationStarting, zap.String("migrations_path", migrationsPath))
	if err := retrier.Execute(ctx, func(ctx context.Context) error {
		return postgres.MigrateDSN(ctx, cfg.GetConnectionURL(), migrationsPath)
	}); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	var database *postgres.Database
	if err := retrier.Execute(ctx, func(ctx context.Context) error {
		var connErr error
		database, connErr = postgres.New(ctx, cfg.GetDSN(), cfg.MinConn, cfg.MaxConn)
		return connErr
	}); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBConnection, err)
	}

	log.Info(ctx, LogDBInitialized)

	return &DB{database: database}, nil
}

// MigrationsURL превращает каталог миграций в URL источника golang-migrate.
func MigrationsURL(dir string) (string, error) {
	if filepath.IsAbs(dir) {
		return "file://" + filepath.ToSlash(dir), nil
	}
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrGetPath, err)
	}
	return "file://" + filepath.ToSlash(absPath), nil
}

// Close закрывает пул соединений.
func (db *DB) Close(ctx context.Context) {
	db.database.Close(ctx)
}

// Pool возвращает пул соединений.
func (db *DB) Pool() *pgxpool.Pool {
	return db.database.Pool()
}

// Ping проверяет соединение с базой данных.
func (db *DB) Ping(ctx context.Context) error {
	return db.database.Ping(ctx)
}
