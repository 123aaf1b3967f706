package services

import (
	"time"

	"gonotes/internal/auth/domain/entities"
	"gonotes/pkg/apperror"
)

// Ошибки домена аутентификации.
var (
	ErrInvalidCredentials = apperror.New(apperror.InvalidCredentials, "Invalid email or password")
	ErrEmailAlreadyExists = apperror.New(apperror.DuplicateEmail, "User already exists with this email")
)

// AuthResult - результат регистрации или входа.
type AuthResult struct {
	User      entities.PublicUser
	Token     string
	ExpiresAt time.Time
}
