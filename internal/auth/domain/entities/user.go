// Package entities содержит сущности домена аутентификации.
package entities

import (
	"strings"
	"time"

	"gonotes/pkg/apperror"
)

// MinPasswordLength - минимальная длина пароля в символах.
const MinPasswordLength = 6

// Ошибки домена пользователя.
var (
	ErrEmptyUserID         = apperror.New(apperror.Unauthorized, "Unauthorized")
	ErrCredentialsRequired = apperror.New(apperror.Validation, "Email and password are required")
	ErrPasswordTooShort    = apperror.New(apperror.Validation, "Password must be at least 6 characters")
	ErrUserNotFound        = apperror.New(apperror.NotFound, "User not found")
)

// User - учетная запись. PasswordHash никогда не покидает сервер.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser - представление пользователя, которое можно отдавать клиенту.
type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Public возвращает публичное представление пользователя.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email}
}

// NormalizeEmail приводит email к каноническому виду: без пробелов по краям и в нижнем регистре.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
