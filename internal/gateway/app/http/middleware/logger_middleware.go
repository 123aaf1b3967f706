package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gonotes/pkg/logger"
)

// NewLoggerMiddleware создает промежуточное ПО для логирования HTTP запросов.
// Логгер с полями запроса кладется в контекст, его получают обработчики и сценарии.
func NewLoggerMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		log := logger.Log(c.Context()).With(
			zap.String("path", c.Path()),
			zap.String("http_method", c.Method()),
			zap.String("ip", c.IP()),
		)
		requestCtx := logger.NewContext(c.Context(), log)
		c.SetContext(requestCtx)

		log.Debug(requestCtx, "Request started")

		err := c.Next()

		logFields := []zap.Field{
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
		}

		if err != nil {
			log.Error(requestCtx, "Request failed", append(logFields, zap.Error(err))...)
			return fmt.Errorf("request processing error: %w", err)
		}

		log.Info(requestCtx, "Request completed", logFields...)
		return nil
	}
}
