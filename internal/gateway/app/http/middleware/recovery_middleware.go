package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gonotes/internal/gateway/app/http/respond"
	"gonotes/pkg/logger"
)

// NewRecoveryMiddleware перехватывает панику обработчика и отвечает 500.
func NewRecoveryMiddleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				requestCtx := c.Context()
				log := logger.Log(requestCtx)

				log.Error(requestCtx, "Server panic",
					zap.String("error", fmt.Sprintf("%v", r)),
					zap.String("stack", string(debug.Stack())),
				)

				if sendErr := respond.Message(c, fiber.StatusInternalServerError, respond.MsgServerError); sendErr != nil {
					log.Error(requestCtx, "Failed to send error response after panic", zap.Error(sendErr))
				}
				err = nil
			}
		}()

		return c.Next()
	}
}
