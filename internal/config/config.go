// Package config содержит конфигурацию сервиса заметок.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	pkgconfig "gonotes/pkg/config"
	"gonotes/pkg/logger"
)

// EnvConfigPath - переменная окружения с путем к необязательному файлу конфигурации.
const EnvConfigPath = "NOTES_CONFIG_PATH"

const (
	serviceName = "notes-api"

	LogConfigLoaded     = "configuration loaded successfully"
	ErrFailedLoadConfig = "failed to load configuration"
)

// ErrEmptyJWTSecret возвращается, если секрет подписи токенов не задан.
var ErrEmptyJWTSecret = errors.New("NOTES_JWT_SECRET must be set")

// Config - полная конфигурация процесса. Создается один раз в main и дальше не меняется.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Postgres PostgresConfig `yaml:"postgres"`
	JWT      JWTConfig      `yaml:"jwt"`
	Redis    RedisConfig    `yaml:"redis"`
	Logging  LoggingConfig  `yaml:"logging"`
	Shutdown ShutdownConfig `yaml:"shutdown"`
}

// Load читает конфигурацию из окружения и файла NOTES_CONFIG_PATH, если он указан.
func Load(ctx context.Context) (*Config, error) {
	log := logger.Log(ctx)

	cfg, err := pkgconfig.Load[Config](ctx, serviceName, os.Getenv(EnvConfigPath))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		log.Error(ctx, ErrFailedLoadConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	log.Info(ctx, LogConfigLoaded,
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("postgres_host", cfg.Postgres.Host),
		zap.Int("postgres_port", cfg.Postgres.Port),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Duration("token_ttl", cfg.JWT.GetTokenTTL()),
		zap.Int("shutdown_timeout_seconds", cfg.Shutdown.Timeout))

	return cfg, nil
}

// Validate проверяет значения, которые нельзя выразить тегами.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return ErrEmptyJWTSecret
	}
	return nil
}
