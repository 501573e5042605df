package handlers

import (
	"skynet/internal/app"
	authController "skynet/internal/controllers/auth"
	"skynet/internal/handlers/middleware"
	"skynet/internal/logger"
	. "skynet/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Handler
	controller *authController.AuthController
}

func NewAuthHandler(app app.App, router fiber.Router) *AuthHandler {
	log := logger.New("handlers").File("auth_handler")
	return &AuthHandler{
		controller: app.AuthController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AuthHandler) Register() {
	auth := h.router.Group("/auth")
	auth.Post("/login", h.login)
	auth.Post("/register", h.register)
	auth.Post("/logout", h.middleware.RequireSession(), h.logout)
	auth.Get("/me", h.middleware.RequireSession(), h.me)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	log := h.log.Function("login")

	var loginRequest LoginRequest
	if err := c.BodyParser(&loginRequest); err != nil {
		log.Er("failed to parse login request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse login request"})
	}

	profile, token, err := h.controller.Login(c.Context(), loginRequest)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"message":  "success",
		"token":    token,
		"user":     profile,
		"redirect": profile.Role().HomeRoute(),
	})
}

func (h *AuthHandler) register(c *fiber.Ctx) error {
	log := h.log.Function("register")

	var registerRequest RegisterRequest
	if err := c.BodyParser(&registerRequest); err != nil {
		log.Er("failed to parse register request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse register request"})
	}

	profile, err := h.controller.Register(c.Context(), registerRequest)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "success", "user": profile})
}

func (h *AuthHandler) logout(c *fiber.Ctx) error {
	if err := h.controller.Logout(c.Context(), middleware.Token(c)); err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "success"})
}

func (h *AuthHandler) me(c *fiber.Ctx) error {
	profile := middleware.SessionProfile(c)
	if profile.ID == "" {
		h.log.Function("me").ErMsg("No profile found in locals")
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "error", "error": "failed to get profile"})
	}

	return c.JSON(fiber.Map{"message": "success", "user": profile})
}
