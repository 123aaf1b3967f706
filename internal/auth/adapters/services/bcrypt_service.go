package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"gonotes/internal/auth/domain/services"
	svc "gonotes/internal/auth/ports/services"
)

// DefaultBcryptCost - стоимость хеширования по умолчанию.
const DefaultBcryptCost = 10

const (
	errMsgFailedToGenerateHash = "failed to generate password hash"
	errMsgErrorComparingHash   = "error comparing password with hash"
)

// ServiceBcrypt реализует PasswordService на bcrypt.
type ServiceBcrypt struct {
	cost int
}

// NewBcrypt создает сервис. Стоимость вне допустимого диапазона заменяется на DefaultBcryptCost.
func NewBcrypt(cost int) svc.PasswordService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &ServiceBcrypt{cost: cost}
}

// Hash возвращает соленый bcrypt-хеш пароля.
func (s *ServiceBcrypt) Hash(_ context.Context, password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", errMsgFailedToGenerateHash, services.ErrHashingFailed, err)
	}
	return string(hashedBytes), nil
}

// Verify сравнивает пароль с хешем за постоянное время.
func (s *ServiceBcrypt) Verify(_ context.Context, password, hash string) (bool, error) {
	if hash == "" {
		return false, services.ErrInvalidPassword
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, fmt.Errorf("%s: %w: %w", errMsgErrorComparingHash, services.ErrInvalidPassword, err)
	}

	return true, nil
}
