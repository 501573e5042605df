package handlers

import (
	"errors"

	"skynet/internal/app"
	authController "skynet/internal/controllers/auth"
	clientController "skynet/internal/controllers/clients"
	userController "skynet/internal/controllers/users"
	visitController "skynet/internal/controllers/visits"
	"skynet/internal/handlers/middleware"
	"skynet/internal/logger"
	"skynet/internal/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type Handler struct {
	middleware middleware.Middleware
	log        logger.Logger
	router     fiber.Router
}

func Router(router fiber.Router, app *app.App) (err error) {
	setupWebSocketRoute(router, app)

	api := router.Group("/api")
	HealthHandler(api, app.Config)
	NewAuthHandler(*app, api).Register()
	NewUserHandler(*app, api).Register()
	NewClientHandler(*app, api).Register()
	NewVisitHandler(*app, api).Register()

	return nil
}

func setupWebSocketRoute(router fiber.Router, app *app.App) {
	router.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	router.Get("/ws", app.Middleware.RequireSession(), websocket.New(func(c *websocket.Conn) {
		app.Websocket.HandleWebSocket(c)
	}))
}

// errorResponse maps the error taxonomy onto HTTP: validation before any
// remote work is 400, a missing row is 404, a row policy rejection is 403,
// bad credentials are 401, anything else is a 500 scoped to this action.
func errorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, authController.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "error", "error": "credenciales invalidas"})
	case errors.Is(err, authController.ErrValidation),
		errors.Is(err, userController.ErrValidation),
		errors.Is(err, clientController.ErrValidation),
		errors.Is(err, visitController.ErrValidation):
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "error", "error": err.Error()})
	case errors.Is(err, repositories.ErrNotFound):
		return c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"message": "error", "error": "registro no encontrado"})
	case errors.Is(err, repositories.ErrRowPolicy):
		return c.Status(fiber.StatusForbidden).
			JSON(fiber.Map{"message": "error", "error": "operacion no permitida"})
	default:
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "error", "error": "error interno"})
	}
}
