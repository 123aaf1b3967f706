// Package http собирает HTTP API: middleware, маршруты и обработчик неизвестных путей.
package http

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"

	authPorts "gonotes/internal/auth/ports/api"
	tokenPorts "gonotes/internal/auth/ports/services"
	"gonotes/internal/gateway/adapters/http/auth"
	"gonotes/internal/gateway/adapters/http/notes"
	"gonotes/internal/gateway/app/dto"
	"gonotes/internal/gateway/app/http/middleware"
	"gonotes/internal/gateway/app/http/respond"
	notePorts "gonotes/internal/notes/ports/api"
)

// MsgRouteNotFound - ответ на запрос к неизвестному маршруту.
const MsgRouteNotFound = "Route not found"

// Dependencies - сервисы, которые обслуживает HTTP API.
type Dependencies struct {
	AuthUseCase  authPorts.AuthUseCase
	UserUseCase  authPorts.UserUseCase
	NoteUseCase  notePorts.NoteUseCase
	TokenService tokenPorts.TokenService
	CORSOrigins  []string
}

// SetupRouter настраивает маршрутизацию HTTP сервера.
func SetupRouter(app *fiber.App, deps Dependencies) {
	authHandler := auth.NewHandler(deps.AuthUseCase, deps.UserUseCase)
	notesHandler := notes.NewHandler(deps.NoteUseCase)

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())
	app.Use(cors.New(corsConfig(deps.CORSOrigins)))

	api := app.Group("/api")

	api.Get("/health", func(c fiber.Ctx) error {
		return respond.JSON(c, fiber.StatusOK, dto.HealthResponse{Status: "ok"})
	})

	// Аутентификация.
	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Get("/me", authHandler.Me, middleware.NewAuthMiddleware(deps.TokenService))

	// Заметки. userId передает клиент, сессия не проверяется.
	notesRoutes := api.Group("/notes")
	notesRoutes.Get("/user/:userId?", notesHandler.ListNotes)
	notesRoutes.Post("/", notesHandler.CreateNote)
	notesRoutes.Get("/:id", notesHandler.GetNote)
	notesRoutes.Put("/:id", notesHandler.UpdateNote)
	notesRoutes.Delete("/:id", notesHandler.DeleteNote)
	notesRoutes.Patch("/:id/archive", notesHandler.ToggleArchive)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return respond.Message(c, fiber.StatusNotFound, MsgRouteNotFound)
	})
}

func corsConfig(origins []string) cors.Config {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Config{
		AllowOrigins: origins,
		AllowHeaders: []string{fiber.HeaderOrigin, fiber.HeaderContentType, fiber.HeaderAccept, fiber.HeaderAuthorization, middleware.HeaderRequestID},
	}
}
