// Package session хранит сессию клиента (токен и пользователя) в локальной базе SQLite.
package session

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // драйвер sqlite для database/sql

	"gonotes/pkg/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const (
	driverName     = "sqlite"
	migrationsDir  = "migrations"
	errCtxOpen     = "opening session database"
	errCtxMigrate  = "applying session migrations"
	errCtxGet      = "reading session entry"
	errCtxSet      = "writing session entry"
	errCtxDelete   = "deleting session entries"
	msgStoreOpened = "session store opened"
)

// gooseMu защищает глобальное состояние goose.
var gooseMu sync.Mutex

// Store - хранилище ключ-значение поверх SQLite.
type Store struct {
	db *sql.DB
}

// OpenStore открывает базу по пути dsn и применяет миграции.
func OpenStore(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxOpen, err)
	}

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Log(ctx).Debug(ctx, msgStoreOpened, zap.String("dsn", dsn))
	return &Store{db: db}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("%s: %w", errCtxMigrate, err)
	}
	if err := goose.UpContext(ctx, db, migrationsDir); err != nil {
		return fmt.Errorf("%s: %w", errCtxMigrate, err)
	}
	return nil
}

// Get возвращает значение по ключу. ok равен false, если ключа нет.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%s[%s]: %w", errCtxGet, key, err)
	}
	return value, true, nil
}

// Set сохраняет значение по ключу.
func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO session (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value)
	if err != nil {
		return fmt.Errorf("%s[%s]: %w", errCtxSet, key, err)
	}
	return nil
}

// Delete удаляет ключи. Отсутствующие ключи не считаются ошибкой.
func (s *Store) Delete(ctx context.Context, keys ...string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxDelete, err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, key := range keys {
		if _, err := tx.ExecContext(ctx, `DELETE FROM session WHERE key = ?`, key); err != nil {
			return fmt.Errorf("%s: %w", errCtxDelete, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", errCtxDelete, err)
	}
	return nil
}

// Close закрывает базу.
func (s *Store) Close() error {
	return s.db.Close()
}
