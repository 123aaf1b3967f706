// Package repositories описывает порты хранения учетных записей.
package repositories

import (
	"context"

	"gonotes/internal/auth/domain/entities"
)

// UserRepository хранит учетные записи.
// Create возвращает services.ErrEmailAlreadyExists при нарушении уникальности email,
// FindByID и FindByEmail - entities.ErrUserNotFound, если записи нет.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)

	FindByID(ctx context.Context, id string) (*entities.User, error)

	FindByEmail(ctx context.Context, email string) (*entities.User, error)
}
