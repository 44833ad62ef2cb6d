package middlewares

import (
	"chipsplit/database"
	"chipsplit/helpers"
	"chipsplit/models"

	"github.com/gofiber/fiber/v2"
)

func HostAuthMiddleware(c *fiber.Ctx) error {
	hostCode := c.Get("X-Host-Code")
	secretKey := c.Get("X-Secret-Key")

	if hostCode == "" || secretKey == "" {
		return helpers.JSONError(c, "HOST_CODE_AND_SECRET_REQUIRED")
	}

	var host models.Host
	if err := database.DB.Where("host_code = ? AND secret_key = ? AND is_active = true", hostCode, secretKey).First(&host).Error; err != nil {
		return helpers.JSONError(c, "INVALID_HOST_CREDENTIALS")
	}

	c.Locals("host", host)
	return c.Next()
}
