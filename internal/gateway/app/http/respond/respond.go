// Package respond формирует JSON-ответы HTTP API, включая ответы с ошибками.
package respond

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gonotes/internal/gateway/app/dto"
	"gonotes/pkg/apperror"
	"gonotes/pkg/logger"
)

const (
	// MsgInvalidRequestBody - ответ на тело запроса, которое не разбирается как JSON.
	MsgInvalidRequestBody = "Invalid request body"
	// MsgServerError - сообщение по умолчанию для внутренних ошибок.
	MsgServerError = "Server error"

	errSendResponse = "failed to send response"
)

// JSON отправляет тело с указанным статусом.
func JSON(c fiber.Ctx, status int, body any) error {
	if err := c.Status(status).JSON(body); err != nil {
		return fmt.Errorf("%s: %w", errSendResponse, err)
	}
	return nil
}

// Message отправляет {"message": msg}.
func Message(c fiber.Ctx, status int, msg string) error {
	return JSON(c, status, dto.MessageResponse{Message: msg})
}

// Error отображает ошибку приложения в ответ. Внутренние ошибки логируются,
// а клиент получает только fallback.
func Error(c fiber.Ctx, err error, fallback string) error {
	if fallback == "" {
		fallback = MsgServerError
	}

	if apperror.KindOf(err) == apperror.Internal {
		ctx := c.Context()
		logger.Log(ctx).Error(ctx, fallback, zap.Error(err))
		return Message(c, fiber.StatusInternalServerError, fallback)
	}

	appErr, _ := apperror.As(err)
	return JSON(c, appErr.StatusCode(), NewErrorResponse(appErr))
}

// NewErrorResponse строит тело ответа по ошибке приложения.
func NewErrorResponse(appErr *apperror.Error) dto.ErrorResponse {
	resp := dto.ErrorResponse{Message: appErr.Message}
	if len(appErr.Fields) == 0 {
		return resp
	}

	resp.Errors = make(map[string]dto.FieldErrorResponse, len(appErr.Fields))
	for _, f := range appErr.Fields {
		resp.Errors[f.Field] = dto.FieldErrorResponse{
			Message: f.Message,
			Path:    f.Field,
			Kind:    f.Rule,
		}
	}
	return resp
}
