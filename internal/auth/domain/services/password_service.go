// Package services содержит ошибки и типы доменных сервисов аутентификации.
package services

import "gonotes/pkg/apperror"

// Ошибки, связанные с паролями.
var (
	ErrHashingFailed   = apperror.New(apperror.Internal, "failed to hash password")
	ErrInvalidPassword = apperror.New(apperror.Internal, "invalid password hash")
)
