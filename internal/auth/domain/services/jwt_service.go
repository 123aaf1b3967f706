package services

import (
	"time"

	"gonotes/pkg/apperror"
)

// Ошибки, связанные с токенами.
var (
	ErrInvalidToken       = apperror.New(apperror.Unauthorized, "Invalid token")
	ErrGeneratingJWTToken = apperror.New(apperror.Internal, "failed to generate JWT token")
)

// JWTConfig - настройки сервиса токенов.
type JWTConfig struct {
	SecretKey []byte
	TokenTTL  time.Duration
}

// JWTClaims - содержимое токена в терминах домена.
type JWTClaims struct {
	UserID    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
