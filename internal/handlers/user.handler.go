package handlers

import (
	"skynet/internal/app"
	userController "skynet/internal/controllers/users"
	"skynet/internal/logger"
	. "skynet/internal/models"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	Handler
	controller *userController.UserController
}

func NewUserHandler(app app.App, router fiber.Router) *UserHandler {
	log := logger.New("handlers").File("user_handler")
	return &UserHandler{
		controller: app.UserController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *UserHandler) Register() {
	h.router.Post("/users", h.middleware.RequireSession(RoleAdmin), h.createUser)
	h.router.Get("/users", h.middleware.RequireSession(RoleAdmin), h.listUsers)
	// Legacy path kept for the admin screen that already calls it.
	h.router.Delete("/delete-user/:id", h.middleware.RequireSession(RoleAdmin), h.deleteUser)

	h.router.Get("/users/tecnicos",
		h.middleware.RequireSession(RoleSupervisor, RoleAdmin), h.listTechnicians)
}

func (h *UserHandler) createUser(c *fiber.Ctx) error {
	log := h.log.Function("createUser")

	var request CreateUserRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse create user request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "failed to parse request"})
	}

	profile, password, err := h.controller.CreateUser(c.Context(), request)
	if err != nil {
		return errorResponse(c, err)
	}

	response := fiber.Map{"message": "success", "user": profile}
	if request.Password == "" {
		response["generatedPassword"] = password
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}

func (h *UserHandler) listUsers(c *fiber.Ctx) error {
	users, err := h.controller.ListUsers(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "success", "users": users})
}

func (h *UserHandler) listTechnicians(c *fiber.Ctx) error {
	technicians, err := h.controller.ListTechnicians(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "success", "tecnicos": technicians})
}

func (h *UserHandler) deleteUser(c *fiber.Ctx) error {
	if err := h.controller.DeleteUser(c.Context(), c.Params("id")); err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "success"})
}
