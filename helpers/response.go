package helpers

import (
	"github.com/gofiber/fiber/v2"
)

func JSONSuccess(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func JSONError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": message,
		"data":    nil,
	})
}

// JSONErrorDetail is JSONError with a structured diagnostic payload, used
// where the caller needs more than a code (imbalance sums, per-player
// discrepancies).
func JSONErrorDetail(c *fiber.Ctx, message string, detail any) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": message,
		"data":    detail,
	})
}
