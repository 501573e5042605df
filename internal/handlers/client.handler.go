package handlers

import (
	"skynet/internal/app"
	clientController "skynet/internal/controllers/clients"
	"skynet/internal/handlers/middleware"
	"skynet/internal/logger"
	. "skynet/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ClientHandler struct {
	Handler
	controller *clientController.ClientController
}

func NewClientHandler(app app.App, router fiber.Router) *ClientHandler {
	log := logger.New("handlers").File("client_handler")
	return &ClientHandler{
		controller: app.ClientController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ClientHandler) Register() {
	clients := h.router.Group("/clientes", h.middleware.RequireSession(RoleSupervisor))
	clients.Post("/", h.createClient)
	clients.Get("/", h.listClients)
	clients.Delete("/:id", h.deleteClient)
}

func (h *ClientHandler) createClient(c *fiber.Ctx) error {
	log := h.log.Function("createClient")

	var request CreateClientRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse create client request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "failed to parse request"})
	}

	client, err := h.controller.CreateClient(c.Context(), middleware.SessionProfile(c).ID, request)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "success", "cliente": client})
}

func (h *ClientHandler) listClients(c *fiber.Ctx) error {
	clients, err := h.controller.ListClients(c.Context(), middleware.SessionProfile(c).ID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "success", "clientes": clients})
}

func (h *ClientHandler) deleteClient(c *fiber.Ctx) error {
	err := h.controller.DeleteClient(c.Context(), c.Params("id"), middleware.SessionProfile(c).ID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "success"})
}
