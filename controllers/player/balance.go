package player

import (
	"chipsplit/database"
	"chipsplit/helpers"
	"chipsplit/models"

	"github.com/gofiber/fiber/v2"
)

type CheckBalanceRequest struct {
	SessionCode string `json:"session_code"`
	PlayerCode  string `json:"player_code"`
}

func CheckPlayerBalance(c *fiber.Ctx) error {
	var req CheckBalanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	if req.SessionCode == "" || req.PlayerCode == "" {
		return helpers.JSONError(c, "SESSION_CODE_AND_PLAYER_CODE_REQUIRED")
	}

	host, ok := c.Locals("host").(models.Host)
	if !ok {
		return helpers.JSONError(c, "INVALID_HOST_SESSION")
	}

	var session models.Session
	if err := database.DB.
		Where("session_code = ? AND host_code = ?", req.SessionCode, host.HostCode).
		First(&session).Error; err != nil {
		return helpers.JSONError(c, "SESSION_NOT_FOUND_OR_UNAUTHORIZED")
	}

	var player models.Player
	if err := database.DB.
		Where("session_id = ? AND player_code = ?", session.ID, req.PlayerCode).
		First(&player).Error; err != nil {
		return helpers.JSONError(c, "PLAYER_NOT_FOUND")
	}

	return helpers.JSONSuccess(c, "Balance retrieved successfully", fiber.Map{
		"player_code": player.PlayerCode,
		"name":        player.Name,
		"buy_ins":     helpers.FromCents(player.BuyInCents),
		"cash_outs":   helpers.FromCents(player.CashOutCents),
		"net":         helpers.FromCents(player.NetCents),
		"currency":    session.Currency,
	})
}
