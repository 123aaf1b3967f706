package entities

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"gonotes/pkg/apperror"
)

const (
	msgNoteValidationFailed = "Note validation failed"

	// ruleNoNUL запрещает символ U+0000 в строке.
	ruleNoNUL = "nonul"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation(ruleNoNUL, func(fl validator.FieldLevel) bool {
		return !strings.ContainsRune(fl.Field().String(), 0)
	}); err != nil {
		panic(err)
	}
	return v
}

// ValidateNote проверяет обязательные поля заметки и возвращает нарушения в порядке полей.
func ValidateNote(note *Note) []apperror.FieldError {
	err := validate.Struct(note)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []apperror.FieldError{{Field: "note", Message: err.Error(), Rule: "invalid"}}
	}

	fields := make([]apperror.FieldError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fields = append(fields, apperror.FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
			Rule:    fe.Tag(),
		})
	}
	return fields
}

// NewValidationError собирает ошибку валидации с общим сообщением по всем полям.
func NewValidationError(fields []apperror.FieldError) *apperror.Error {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return apperror.NewValidation(msgNoteValidationFailed+": "+strings.Join(parts, ", "), fields)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Path `%s` is required.", fe.Field())
	case ruleNoNUL:
		return fmt.Sprintf("Path `%s` must not contain NUL characters.", fe.Field())
	}
	return fmt.Sprintf("Path `%s` is invalid (%s).", fe.Field(), fe.Tag())
}
