package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gonotes/internal/auth/ports/services"
	"gonotes/internal/gateway/app/http/respond"
	"gonotes/pkg/logger"
)

// UserIDKey - ключ Locals, под которым хранится ID аутентифицированного пользователя.
const UserIDKey = "userID"

const (
	bearerPrefix = "Bearer "

	LogAuthMiddleware = "auth middleware"

	MsgNoToken      = "No token provided"
	MsgInvalidToken = "Invalid token"
)

// NewAuthMiddleware проверяет заголовок Authorization: Bearer <token>.
// Хранилище пользователей не запрашивается.
func NewAuthMiddleware(tokenService services.TokenService) fiber.Handler {
	return func(c fiber.Ctx) error {
		requestCtx := c.Context()
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))
		log.Debug(requestCtx, LogAuthMiddleware)

		authHeader := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			log.Debug(requestCtx, "missing bearer token")
			return respond.Message(c, fiber.StatusUnauthorized, MsgNoToken)
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
		if token == "" {
			log.Debug(requestCtx, "empty bearer token")
			return respond.Message(c, fiber.StatusUnauthorized, MsgNoToken)
		}

		userID, err := tokenService.Verify(requestCtx, token)
		if err != nil {
			log.Debug(requestCtx, "token rejected", zap.Error(err))
			return respond.Message(c, fiber.StatusUnauthorized, MsgInvalidToken)
		}

		c.Locals(UserIDKey, userID)
		return c.Next()
	}
}

// UserID возвращает ID пользователя, сохраненный NewAuthMiddleware.
func UserID(c fiber.Ctx) string {
	userID, _ := c.Locals(UserIDKey).(string)
	return userID
}
