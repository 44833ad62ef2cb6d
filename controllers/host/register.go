package host

import (
	"chipsplit/database"
	"chipsplit/helpers"
	"chipsplit/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type RegisterHostRequest struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

func RegisterHost(c *fiber.Ctx) error {
	var req RegisterHostRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	if req.Name == "" {
		return helpers.JSONError(c, "NAME_REQUIRED")
	}
	if req.Currency == "" {
		req.Currency = "USD"
	}

	hostCode := helpers.GenerateHostCode()
	secretKey := uuid.New().String()

	var existing models.Host
	if err := database.DB.Where("host_code = ?", hostCode).First(&existing).Error; err == nil {
		return helpers.JSONError(c, "HOST_CODE_ALREADY_EXISTS")
	}

	host := models.Host{
		Name:      req.Name,
		HostCode:  hostCode,
		SecretKey: secretKey,
		Currency:  req.Currency,
		IsActive:  true,
	}

	if err := database.DB.Create(&host).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_REGISTER_HOST")
	}

	return helpers.JSONSuccess(c, "Host registered successfully", fiber.Map{
		"name":       host.Name,
		"host_code":  host.HostCode,
		"secret_key": host.SecretKey,
		"currency":   host.Currency,
	})
}
