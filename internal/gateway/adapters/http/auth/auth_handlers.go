// Package auth содержит HTTP обработчики регистрации, входа и текущего пользователя.
package auth

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gonotes/internal/auth/ports/api"
	"gonotes/internal/gateway/app/dto"
	"gonotes/internal/gateway/app/http/middleware"
	"gonotes/internal/gateway/app/http/respond"
	"gonotes/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerRegister = "auth handler: register"
	LogHandlerLogin    = "auth handler: login"
	LogHandlerMe       = "auth handler: me"

	ErrorInvalidRequest = "invalid request"
)

// Handler содержит HTTP обработчики для аутентификации.
type Handler struct {
	authUseCase api.AuthUseCase
	userUseCase api.UserUseCase
}

// NewHandler создает обработчик аутентификации.
func NewHandler(authUseCase api.AuthUseCase, userUseCase api.UserUseCase) *Handler {
	return &Handler{
		authUseCase: authUseCase,
		userUseCase: userUseCase,
	}
}

// Register обрабатывает POST /api/auth/register.
func (h *Handler) Register(c fiber.Ctx) error {
	requestCtx := c.Context()
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerRegister)

	var req dto.RegisterRequest
	if err := respond.BindJSON(c, &req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return respond.Message(c, fiber.StatusBadRequest, respond.MsgInvalidRequestBody)
	}

	result, err := h.authUseCase.Register(requestCtx, req.Email, req.Password)
	if err != nil {
		return respond.Error(c, err, respond.MsgServerError)
	}

	return respond.JSON(c, fiber.StatusCreated, dto.NewAuthResponse(result))
}

// Login обрабатывает POST /api/auth/login.
func (h *Handler) Login(c fiber.Ctx) error {
	requestCtx := c.Context()
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerLogin)

	var req dto.LoginRequest
	if err := respond.BindJSON(c, &req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return respond.Message(c, fiber.StatusBadRequest, respond.MsgInvalidRequestBody)
	}

	result, err := h.authUseCase.Login(requestCtx, req.Email, req.Password)
	if err != nil {
		return respond.Error(c, err, respond.MsgServerError)
	}

	return respond.JSON(c, fiber.StatusOK, dto.NewAuthResponse(result))
}

// Me обрабатывает GET /api/auth/me. Требует NewAuthMiddleware.
func (h *Handler) Me(c fiber.Ctx) error {
	requestCtx := c.Context()
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerMe)

	user, err := h.userUseCase.GetCurrentUser(requestCtx, middleware.UserID(c))
	if err != nil {
		return respond.Error(c, err, respond.MsgServerError)
	}

	return respond.JSON(c, fiber.StatusOK, dto.NewUserResponse(*user))
}
