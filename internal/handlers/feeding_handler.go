package handlers

import (
	"camarao/internal/middleware"
	"camarao/internal/services"

	"github.com/gofiber/fiber/v2"
)

// FeedingHandler handles HTTP requests for feeding records.
type FeedingHandler struct {
	service *services.FeedingService
}

// NewFeedingHandler creates a new FeedingHandler.
func NewFeedingHandler(service *services.FeedingService) *FeedingHandler {
	return &FeedingHandler{
		service: service,
	}
}

// RegisterRoutes registers the feeding routes.
func (h *FeedingHandler) RegisterRoutes(router fiber.Router) {
	feedingRoutes := router.Group("/feeding")
	feedingRoutes.Get("/tank/:tankId", h.HandleListByTank)
	feedingRoutes.Get("/", h.HandleList)
	feedingRoutes.Post("/", h.HandleCreate)
	feedingRoutes.Put("/:id", h.HandleUpdate)
	feedingRoutes.Delete("/:id", h.HandleDelete)
}

// HandleList returns one page of the caller's feeding records.
func (h *FeedingHandler) HandleList(c *fiber.Ctx) error {
	page, limit := pagination(c)
	start, end := dateRange(c)
	records, total, err := h.service.List(middleware.UserID(c), services.FeedingListFilter{
		Page:      page,
		Limit:     limit,
		TankID:    c.Query("tankId"),
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return writeError(c, err, "Registro não encontrado", "Erro ao buscar registros de alimentação")
	}
	return c.JSON(fiber.Map{
		"feeding":     records,
		"totalPages":  totalPages(total, limit),
		"currentPage": page,
		"total":       total,
	})
}

// HandleListByTank returns every feeding record of one caller-owned tank.
func (h *FeedingHandler) HandleListByTank(c *fiber.Ctx) error {
	records, err := h.service.ListByTank(middleware.UserID(c), c.Params("tankId"))
	if err != nil {
		return writeError(c, err, "Tanque não encontrado", "Erro ao buscar alimentação do tanque")
	}
	return c.JSON(fiber.Map{"feeding": records})
}

// HandleCreate records a new feeding event for the caller.
func (h *FeedingHandler) HandleCreate(c *fiber.Ctx) error {
	var in services.FeedingInputPayload
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	feeding, err := h.service.Create(middleware.UserID(c), in)
	if err != nil {
		return writeError(c, err, "Tanque não encontrado", "Erro ao cadastrar registro de alimentação")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Registro de alimentação cadastrado com sucesso",
		"feeding": feeding,
	})
}

// HandleUpdate partially updates one of the caller's feeding records.
func (h *FeedingHandler) HandleUpdate(c *fiber.Ctx) error {
	var in services.FeedingUpdate
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	feeding, err := h.service.Update(middleware.UserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err, "Registro não encontrado", "Erro ao atualizar registro de alimentação")
	}
	return c.JSON(fiber.Map{
		"message": "Registro atualizado com sucesso",
		"feeding": feeding,
	})
}

// HandleDelete removes one of the caller's feeding records.
func (h *FeedingHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.Delete(middleware.UserID(c), c.Params("id")); err != nil {
		return writeError(c, err, "Registro não encontrado", "Erro ao excluir registro")
	}
	return c.JSON(fiber.Map{"message": "Registro excluído com sucesso"})
}
