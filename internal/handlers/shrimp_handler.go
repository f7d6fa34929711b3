package handlers

import (
	"camarao/internal/middleware"
	"camarao/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ShrimpHandler handles HTTP requests for shrimp batch records.
type ShrimpHandler struct {
	service *services.ShrimpService
}

// NewShrimpHandler creates a new ShrimpHandler.
func NewShrimpHandler(service *services.ShrimpService) *ShrimpHandler {
	return &ShrimpHandler{
		service: service,
	}
}

// RegisterRoutes registers the shrimp routes.
func (h *ShrimpHandler) RegisterRoutes(router fiber.Router) {
	shrimpRoutes := router.Group("/shrimp")
	shrimpRoutes.Get("/dashboard", h.HandleDashboard)
	shrimpRoutes.Get("/tank/:tankId", h.HandleListByTank)
	shrimpRoutes.Get("/", h.HandleList)
	shrimpRoutes.Post("/", h.HandleCreate)
	shrimpRoutes.Put("/:id", h.HandleUpdate)
	shrimpRoutes.Delete("/:id", h.HandleDelete)
}

// HandleList returns one page of the caller's shrimp records.
func (h *ShrimpHandler) HandleList(c *fiber.Ctx) error {
	page, limit := pagination(c)
	records, total, err := h.service.List(middleware.UserID(c), services.ShrimpListFilter{
		Page:   page,
		Limit:  limit,
		TankID: c.Query("tankId"),
	})
	if err != nil {
		return writeError(c, err, "Registro não encontrado", "Erro ao buscar dados dos camarões")
	}
	return c.JSON(fiber.Map{
		"shrimp":      records,
		"totalPages":  totalPages(total, limit),
		"currentPage": page,
		"total":       total,
	})
}

// HandleListByTank returns every shrimp record of one caller-owned tank.
func (h *ShrimpHandler) HandleListByTank(c *fiber.Ctx) error {
	records, err := h.service.ListByTank(middleware.UserID(c), c.Params("tankId"))
	if err != nil {
		return writeError(c, err, "Tanque não encontrado", "Erro ao buscar camarões do tanque")
	}
	return c.JSON(fiber.Map{"shrimp": records})
}

// HandleCreate records a new shrimp batch evaluation for the caller.
func (h *ShrimpHandler) HandleCreate(c *fiber.Ctx) error {
	var in services.ShrimpInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	shrimp, err := h.service.Create(middleware.UserID(c), in)
	if err != nil {
		return writeError(c, err, "Tanque não encontrado", "Erro ao cadastrar dados dos camarões")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Dados dos camarões cadastrados com sucesso",
		"shrimp":  shrimp,
	})
}

// HandleUpdate partially updates one of the caller's shrimp records.
func (h *ShrimpHandler) HandleUpdate(c *fiber.Ctx) error {
	var in services.ShrimpUpdate
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	shrimp, err := h.service.Update(middleware.UserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err, "Registro não encontrado", "Erro ao atualizar dados dos camarões")
	}
	return c.JSON(fiber.Map{
		"message": "Dados atualizados com sucesso",
		"shrimp":  shrimp,
	})
}

// HandleDelete removes one of the caller's shrimp records.
func (h *ShrimpHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.Delete(middleware.UserID(c), c.Params("id")); err != nil {
		return writeError(c, err, "Registro não encontrado", "Erro ao excluir registro")
	}
	return c.JSON(fiber.Map{"message": "Registro excluído com sucesso"})
}

// HandleDashboard returns the caller's biological summary.
func (h *ShrimpHandler) HandleDashboard(c *fiber.Ctx) error {
	dashboard, err := h.service.Dashboard(middleware.UserID(c))
	if err != nil {
		return writeError(c, err, "Registro não encontrado", "Erro ao buscar dados biológicos do dashboard")
	}
	return c.JSON(dashboard)
}
