package services

import (
	"context"
	"time"
)

// TokenService выпускает и проверяет токены доступа.
type TokenService interface {
	Issue(ctx context.Context, userID string) (string, time.Time, error)

	// Verify возвращает ID пользователя из валидного токена.
	Verify(ctx context.Context, token string) (string, error)
}
