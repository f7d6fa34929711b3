package handlers

import (
	"camarao/internal/middleware"
	"camarao/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ExpenseHandler handles HTTP requests for tank expenses.
type ExpenseHandler struct {
	service *services.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(service *services.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{
		service: service,
	}
}

// RegisterRoutes registers the expense routes.
func (h *ExpenseHandler) RegisterRoutes(router fiber.Router) {
	expenseRoutes := router.Group("/expenses")
	expenseRoutes.Get("/metrics", h.HandleMetrics)
	expenseRoutes.Get("/", h.HandleList)
	expenseRoutes.Post("/", h.HandleCreate)
	expenseRoutes.Put("/:id", h.HandleUpdate)
	expenseRoutes.Delete("/:id", h.HandleDelete)
}

// HandleList returns one page of the caller's expenses.
func (h *ExpenseHandler) HandleList(c *fiber.Ctx) error {
	page, limit := pagination(c)
	start, end := dateRange(c)
	expenses, total, err := h.service.List(middleware.UserID(c), services.ExpenseListFilter{
		Page:      page,
		Limit:     limit,
		TankID:    c.Query("tankId"),
		Category:  c.Query("category"),
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return writeError(c, err, "Despesa não encontrada", "Erro ao buscar despesas")
	}
	return c.JSON(fiber.Map{
		"expenses":    expenses,
		"totalPages":  totalPages(total, limit),
		"currentPage": page,
		"total":       total,
	})
}

// HandleCreate registers a new expense for the caller.
func (h *ExpenseHandler) HandleCreate(c *fiber.Ctx) error {
	var in services.ExpenseInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	expense, err := h.service.Create(middleware.UserID(c), in)
	if err != nil {
		return writeError(c, err, "Tanque não encontrado", "Erro ao cadastrar despesa")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Despesa cadastrada com sucesso",
		"expense": expense,
	})
}

// HandleUpdate partially updates one of the caller's expenses.
func (h *ExpenseHandler) HandleUpdate(c *fiber.Ctx) error {
	var in services.ExpenseUpdate
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	expense, err := h.service.Update(middleware.UserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err, "Despesa não encontrada", "Erro ao atualizar despesa")
	}
	return c.JSON(fiber.Map{
		"message": "Despesa atualizada com sucesso",
		"expense": expense,
	})
}

// HandleDelete removes one of the caller's expenses.
func (h *ExpenseHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.Delete(middleware.UserID(c), c.Params("id")); err != nil {
		return writeError(c, err, "Despesa não encontrada", "Erro ao excluir despesa")
	}
	return c.JSON(fiber.Map{"message": "Despesa excluída com sucesso"})
}

// HandleMetrics returns the caller's financial summary.
func (h *ExpenseHandler) HandleMetrics(c *fiber.Ctx) error {
	start, end := dateRange(c)
	metrics, err := h.service.Metrics(middleware.UserID(c), services.ExpenseMetricsFilter{
		TankID:    c.Query("tankId"),
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return writeError(c, err, "Despesa não encontrada", "Erro ao calcular métricas financeiras")
	}
	return c.JSON(metrics)
}
