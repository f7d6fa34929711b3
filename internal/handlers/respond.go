package handlers

import (
	"errors"
	"log"
	"time"

	"camarao/internal/apperrors"

	"github.com/gofiber/fiber/v2"
)

// writeError maps a service error to its HTTP response. notFoundMsg and
// internalMsg are the per-endpoint messages; internal detail is logged
// server-side and never sent to the client.
func writeError(c *fiber.Ctx, err error, notFoundMsg, internalMsg string) error {
	if ve, ok := apperrors.AsValidation(err); ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": ve.Message})
	}
	switch {
	case errors.Is(err, apperrors.ErrConflict):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid credentials"})
	case errors.Is(err, apperrors.ErrInvalidToken):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid or expired token"})
	case errors.Is(err, apperrors.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Access denied. Admin role required."})
	case errors.Is(err, apperrors.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": notFoundMsg})
	default:
		log.Printf("%s %s: %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": internalMsg})
	}
}

// pagination reads page/limit query parameters with the standard defaults.
func pagination(c *fiber.Ctx) (page, limit int) {
	page = c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit = c.QueryInt("limit", 10)
	if limit < 1 {
		limit = 10
	}
	return page, limit
}

// dateRange reads optional startDate/endDate query parameters.
func dateRange(c *fiber.Ctx) (start, end *time.Time) {
	if s := c.Query("startDate"); s != "" {
		if t, err := parseQueryDate(s); err == nil {
			start = &t
		}
	}
	if s := c.Query("endDate"); s != "" {
		if t, err := parseQueryDate(s); err == nil {
			end = &t
		}
	}
	return start, end
}

func parseQueryDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

// totalPages computes the page count for a list response.
func totalPages(total int64, limit int) int64 {
	if limit < 1 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}
