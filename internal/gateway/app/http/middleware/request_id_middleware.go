// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"github.com/gofiber/fiber/v3"

	"gonotes/pkg/logger"
)

// HeaderRequestID - заголовок с идентификатором запроса.
const HeaderRequestID = fiber.HeaderXRequestID

// NewRequestIDMiddleware принимает идентификатор запроса из заголовка или генерирует новый,
// кладет его в контекст запроса и возвращает клиенту.
func NewRequestIDMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		requestID := logger.NormalizeRequestID(c.Get(HeaderRequestID))

		c.Set(HeaderRequestID, requestID)
		c.SetContext(logger.NewRequestIDContext(c.Context(), requestID))

		return c.Next()
	}
}
