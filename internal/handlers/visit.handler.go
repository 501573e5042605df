package handlers

import (
	"fmt"

	"skynet/internal/app"
	documentController "skynet/internal/controllers/documents"
	visitController "skynet/internal/controllers/visits"
	"skynet/internal/handlers/middleware"
	"skynet/internal/logger"
	. "skynet/internal/models"

	"github.com/gofiber/fiber/v2"
)

type VisitHandler struct {
	Handler
	controller *visitController.VisitController
	documents  *documentController.DocumentController
}

func NewVisitHandler(app app.App, router fiber.Router) *VisitHandler {
	log := logger.New("handlers").File("visit_handler")
	return &VisitHandler{
		controller: app.VisitController,
		documents:  app.DocumentController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *VisitHandler) Register() {
	visits := h.router.Group("/visitas")

	visits.Post("/", h.middleware.RequireSession(RoleSupervisor), h.createVisit)
	visits.Get("/", h.middleware.RequireSession(RoleSupervisor, RoleAdmin), h.listVisits)
	visits.Get("/hoy", h.middleware.RequireSession(RoleTechnician), h.todayForTechnician)
	visits.Get("/hoy/resumen",
		h.middleware.RequireSession(RoleSupervisor, RoleAdmin), h.todaySummary)

	visits.Post("/:id/iniciar", h.middleware.RequireSession(RoleTechnician), h.startVisit)
	visits.Post("/:id/cancelar",
		h.middleware.RequireSession(RoleSupervisor, RoleTechnician), h.cancelVisit)
	visits.Post("/:id/reporte", h.middleware.RequireSession(RoleTechnician), h.submitReport)
	visits.Get("/:id/pdf",
		h.middleware.RequireSession(RoleSupervisor, RoleAdmin), h.downloadPDF)
}

func (h *VisitHandler) createVisit(c *fiber.Ctx) error {
	log := h.log.Function("createVisit")

	var request CreateVisitRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse create visit request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "failed to parse request"})
	}

	visit, err := h.controller.CreateVisit(c.Context(), middleware.SessionProfile(c).ID, request)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "success", "visita": visit})
}

func (h *VisitHandler) listVisits(c *fiber.Ctx) error {
	visits, err := h.controller.ListVisits(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "success", "visitas": visits})
}

func (h *VisitHandler) todayForTechnician(c *fiber.Ctx) error {
	visits, err := h.controller.TodayForTechnician(c.Context(), middleware.SessionProfile(c).ID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "success", "visitas": visits})
}

func (h *VisitHandler) todaySummary(c *fiber.Ctx) error {
	summary, err := h.controller.TodaySummary(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "success", "resumen": summary})
}

func (h *VisitHandler) startVisit(c *fiber.Ctx) error {
	err := h.controller.StartVisit(c.Context(), c.Params("id"), middleware.SessionProfile(c).ID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "success"})
}

func (h *VisitHandler) cancelVisit(c *fiber.Ctx) error {
	if err := h.controller.CancelVisit(c.Context(), c.Params("id")); err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{"message": "success"})
}

func (h *VisitHandler) submitReport(c *fiber.Ctx) error {
	log := h.log.Function("submitReport")

	var request SubmitReportRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse submit report request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "failed to parse request"})
	}

	result, err := h.controller.SubmitReport(
		c.Context(), c.Params("id"), middleware.SessionProfile(c).ID, request)
	if err != nil {
		return errorResponse(c, err)
	}

	message := "visita finalizada y reporte enviado al cliente"
	if !result.NotificationSent {
		message = "reporte guardado pero el email no pudo enviarse"
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":          message,
		"report":           result.Report,
		"notificationSent": result.NotificationSent,
	})
}

func (h *VisitHandler) downloadPDF(c *fiber.Ctx) error {
	raw, filename, err := h.documents.BuildVisitPDF(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))

	return c.Send(raw)
}
