// Package redis содержит общий код подключения к Redis.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"gonotes/pkg/logger"
)

const (
	LogConnecting = "connecting to Redis"
	LogConnected  = "successfully connected to Redis"
	LogClosing    = "closing Redis connection"

	ErrPing  = "failed to ping Redis"
	ErrClose = "failed to close Redis connection"
)

// Client владеет соединением с Redis.
type Client struct {
	client *redis.Client
}

// NewClient создает клиента и проверяет соединение командой PING.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	cfg = cfg.withDefaults()
	log := logger.Log(ctx).With(zap.String("addr", cfg.Addr), zap.Int("db", cfg.DB))
	log.Info(ctx, LogConnecting)

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		log.Error(ctx, ErrPing, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrPing, err)
	}

	log.Info(ctx, LogConnected)
	return &Client{client: rdb}, nil
}

// Raw возвращает клиент go-redis.
func (c *Client) Raw() *redis.Client {
	return c.client
}

// Close закрывает соединение.
func (c *Client) Close(ctx context.Context) error {
	logger.Log(ctx).Info(ctx, LogClosing)
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrClose, err)
	}
	return nil
}
