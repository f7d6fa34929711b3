package handlers

import (
	"camarao/internal/middleware"
	"camarao/internal/services"

	"github.com/gofiber/fiber/v2"
)

// TankHandler handles HTTP requests for tanks.
type TankHandler struct {
	service *services.TankService
}

// NewTankHandler creates a new TankHandler.
func NewTankHandler(service *services.TankService) *TankHandler {
	return &TankHandler{
		service: service,
	}
}

// RegisterRoutes registers the tank routes. The static dashboard route
// must precede the :id routes so Fiber matches it first.
func (h *TankHandler) RegisterRoutes(router fiber.Router) {
	tankRoutes := router.Group("/tanks")
	tankRoutes.Get("/dashboard/stats", h.HandleDashboardStats)
	tankRoutes.Get("/", h.HandleList)
	tankRoutes.Get("/:id", h.HandleGet)
	tankRoutes.Post("/", h.HandleCreate)
	tankRoutes.Put("/:id", h.HandleUpdate)
	tankRoutes.Delete("/:id", h.HandleDelete)
}

// HandleList returns one page of the caller's tanks.
func (h *TankHandler) HandleList(c *fiber.Ctx) error {
	page, limit := pagination(c)
	tanks, total, err := h.service.List(middleware.UserID(c), services.TankListFilter{
		Page:   page,
		Limit:  limit,
		Status: c.Query("status"),
	})
	if err != nil {
		return writeError(c, err, "Tanque não encontrado", "Erro ao buscar tanques")
	}
	return c.JSON(fiber.Map{
		"tanks":       tanks,
		"totalPages":  totalPages(total, limit),
		"currentPage": page,
		"total":       total,
	})
}

// HandleGet returns one of the caller's tanks by ID.
func (h *TankHandler) HandleGet(c *fiber.Ctx) error {
	tank, err := h.service.Get(middleware.UserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err, "Tanque não encontrado", "Erro ao buscar tanque")
	}
	return c.JSON(tank)
}

// HandleCreate registers a new tank for the caller.
func (h *TankHandler) HandleCreate(c *fiber.Ctx) error {
	var in services.TankInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	tank, err := h.service.Create(middleware.UserID(c), in)
	if err != nil {
		return writeError(c, err, "Tanque não encontrado", "Erro ao cadastrar tanque")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Tanque cadastrado com sucesso",
		"tank":    tank,
	})
}

// HandleUpdate partially updates one of the caller's tanks.
func (h *TankHandler) HandleUpdate(c *fiber.Ctx) error {
	var in services.TankUpdate
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	tank, err := h.service.Update(middleware.UserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err, "Tanque não encontrado", "Erro ao atualizar tanque")
	}
	return c.JSON(fiber.Map{
		"message": "Tanque atualizado com sucesso",
		"tank":    tank,
	})
}

// HandleDelete removes one of the caller's tanks.
func (h *TankHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.Delete(middleware.UserID(c), c.Params("id")); err != nil {
		return writeError(c, err, "Tanque não encontrado", "Erro ao excluir tanque")
	}
	return c.JSON(fiber.Map{"message": "Tanque excluído com sucesso"})
}

// HandleDashboardStats returns the caller's tank summary.
func (h *TankHandler) HandleDashboardStats(c *fiber.Ctx) error {
	stats, err := h.service.DashboardStats(middleware.UserID(c))
	if err != nil {
		return writeError(c, err, "Tanque não encontrado", "Erro ao buscar estatísticas")
	}
	return c.JSON(stats)
}
