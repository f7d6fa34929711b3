package handlers

import (
	"camarao/internal/middleware"
	"camarao/internal/services"

	"github.com/gofiber/fiber/v2"
)

// WaterQualityHandler handles HTTP requests for water inspections. The
// route group is /tank, the original mount point for tank readings.
type WaterQualityHandler struct {
	service *services.WaterQualityService
}

// NewWaterQualityHandler creates a new WaterQualityHandler.
func NewWaterQualityHandler(service *services.WaterQualityService) *WaterQualityHandler {
	return &WaterQualityHandler{
		service: service,
	}
}

// RegisterRoutes registers the water-quality routes.
func (h *WaterQualityHandler) RegisterRoutes(router fiber.Router) {
	waterRoutes := router.Group("/tank")
	waterRoutes.Get("/dashboard", h.HandleDashboard)
	waterRoutes.Get("/", h.HandleList)
	waterRoutes.Post("/", h.HandleCreate)
	waterRoutes.Put("/:id", h.HandleUpdate)
	waterRoutes.Delete("/:id", h.HandleDelete)
}

// HandleList returns one page of the caller's readings.
func (h *WaterQualityHandler) HandleList(c *fiber.Ctx) error {
	page, limit := pagination(c)
	start, end := dateRange(c)
	readings, total, err := h.service.List(middleware.UserID(c), services.WaterQualityListFilter{
		Page:      page,
		Limit:     limit,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return writeError(c, err, "Registro não encontrado", "Erro ao buscar dados do tanque")
	}
	return c.JSON(fiber.Map{
		"tankData":    readings,
		"totalPages":  totalPages(total, limit),
		"currentPage": page,
		"total":       total,
	})
}

// HandleCreate records a new water inspection for the caller.
func (h *WaterQualityHandler) HandleCreate(c *fiber.Ctx) error {
	var in services.WaterQualityInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	reading, err := h.service.Create(middleware.UserID(c), in)
	if err != nil {
		return writeError(c, err, "Registro não encontrado", "Erro ao cadastrar dados do tanque")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Dados do tanque cadastrados com sucesso",
		"tankData": reading,
	})
}

// HandleUpdate partially updates one of the caller's readings.
func (h *WaterQualityHandler) HandleUpdate(c *fiber.Ctx) error {
	var in services.WaterQualityUpdate
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	reading, err := h.service.Update(middleware.UserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err, "Registro não encontrado", "Erro ao atualizar dados do tanque")
	}
	return c.JSON(fiber.Map{
		"message":  "Dados atualizados com sucesso",
		"tankData": reading,
	})
}

// HandleDelete removes one of the caller's readings.
func (h *WaterQualityHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.Delete(middleware.UserID(c), c.Params("id")); err != nil {
		return writeError(c, err, "Registro não encontrado", "Erro ao excluir registro")
	}
	return c.JSON(fiber.Map{"message": "Registro excluído com sucesso"})
}

// HandleDashboard returns the caller's 30-day water-quality summary.
func (h *WaterQualityHandler) HandleDashboard(c *fiber.Ctx) error {
	dashboard, err := h.service.Dashboard(middleware.UserID(c))
	if err != nil {
		return writeError(c, err, "Registro não encontrado", "Erro ao buscar dados do dashboard")
	}
	return c.JSON(dashboard)
}
