package player

import (
	"chipsplit/models"

	"github.com/gofiber/fiber/v2"
)

func RecordBuyIn(c *fiber.Ctx) error {
	return recordEntry(c, models.EntryTypeBuyIn)
}
