// Package apperror описывает типизированные ошибки приложения и их HTTP-статусы.
package apperror

import (
	"errors"
	"net/http"
)

// Kind - категория ошибки.
type Kind int

// Категории ошибок.
const (
	Internal Kind = iota
	Validation
	DuplicateEmail
	InvalidCredentials
	Unauthorized
	NotFound
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case DuplicateEmail:
		return "duplicate_email"
	case InvalidCredentials:
		return "invalid_credentials"
	case Unauthorized:
		return "unauthorized"
	case NotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// FieldError описывает нарушение правила для одного поля.
type FieldError struct {
	Field   string
	Message string
	Rule    string
}

// Error - ошибка приложения с категорией и сообщением для клиента.
type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
}

func (e *Error) Error() string {
	return e.Message
}

// StatusCode возвращает HTTP-статус для категории ошибки.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case Validation, DuplicateEmail:
		return http.StatusBadRequest
	case InvalidCredentials, Unauthorized:
		return http.StatusUnauthorized
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// New создает ошибку заданной категории.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// NewValidation создает ошибку валидации с перечнем полей.
func NewValidation(message string, fields []FieldError) *Error {
	return &Error{Kind: Validation, Message: message, Fields: fields}
}

// As извлекает *Error из цепочки.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf возвращает категорию ошибки; для посторонних ошибок - Internal.
func KindOf(err error) Kind {
	if appErr, ok := As(err); ok {
		return appErr.Kind
	}
	return Internal
}

// Is сообщает, относится ли ошибка к категории kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
