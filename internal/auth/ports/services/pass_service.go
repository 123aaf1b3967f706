// Package services описывает порты криптографических сервисов.
package services

import "context"

// PasswordService хеширует и проверяет пароли.
type PasswordService interface {
	Hash(ctx context.Context, password string) (string, error)

	// Verify возвращает false без ошибки, если пароль не совпадает с хешем.
	Verify(ctx context.Context, password, hash string) (bool, error)
}
