package player

import (
	"chipsplit/models"

	"github.com/gofiber/fiber/v2"
)

func RecordCashOut(c *fiber.Ctx) error {
	return recordEntry(c, models.EntryTypeCashOut)
}
