package session

import (
	"chipsplit/database"
	"chipsplit/helpers"
	"chipsplit/models"

	"github.com/gofiber/fiber/v2"
)

type CreateSessionRequest struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

func CreateSession(c *fiber.Ctx) error {
	var req CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	host, ok := c.Locals("host").(models.Host)
	if !ok {
		return helpers.JSONError(c, "INVALID_HOST_SESSION")
	}

	if req.Name == "" {
		return helpers.JSONError(c, "NAME_REQUIRED")
	}
	if req.Currency == "" {
		req.Currency = host.Currency
	}

	session := models.Session{
		TableCode: helpers.GenerateTableCode(),
		HostCode:  host.HostCode,
		Name:      req.Name,
		Currency:  req.Currency,
		Status:    models.SessionStatusOpen,
	}

	if err := database.DB.Create(&session).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_CREATE_SESSION")
	}

	return helpers.JSONSuccess(c, "Session created successfully", fiber.Map{
		"session_code": session.SessionCode,
		"table_code":   session.TableCode,
		"name":         session.Name,
		"currency":     session.Currency,
		"status":       session.Status,
	})
}
