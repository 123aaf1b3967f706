package api

import (
	"context"

	"gonotes/internal/auth/domain/entities"
)

// UserUseCase - операции над текущим пользователем.
type UserUseCase interface {
	GetCurrentUser(ctx context.Context, userID string) (*entities.PublicUser, error)
}
