// Package dto содержит объекты передачи данных HTTP API.
package dto

import (
	authEntities "gonotes/internal/auth/domain/entities"
	"gonotes/internal/auth/domain/services"
)

// RegisterRequest содержит данные для регистрации пользователя.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest содержит данные для входа пользователя.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse - публичные данные пользователя.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AuthResponse возвращается при регистрации и входе.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// NewUserResponse преобразует публичного пользователя в ответ.
func NewUserResponse(user authEntities.PublicUser) UserResponse {
	return UserResponse{ID: user.ID, Email: user.Email}
}

// NewAuthResponse преобразует результат аутентификации в ответ.
func NewAuthResponse(result *services.AuthResult) AuthResponse {
	return AuthResponse{
		User:  NewUserResponse(result.User),
		Token: result.Token,
	}
}
