// Package api описывает входные порты домена аутентификации.
package api

import (
	"context"

	"gonotes/internal/auth/domain/services"
)

// AuthUseCase - регистрация и вход по email и паролю.
type AuthUseCase interface {
	Register(ctx context.Context, email, password string) (*services.AuthResult, error)

	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
}
