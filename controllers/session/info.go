package session

import (
	"chipsplit/database"
	"chipsplit/helpers"
	"chipsplit/models"

	"github.com/gofiber/fiber/v2"
)

type SessionInfoRequest struct {
	SessionCode string `json:"session_code"`
}

func SessionInfo(c *fiber.Ctx) error {
	var req SessionInfoRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	if req.SessionCode == "" {
		return helpers.JSONError(c, "SESSION_CODE_REQUIRED")
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

	var players []models.Player
	if err := database.DB.Where("session_id = ?", session.ID).
		Order("player_code").Find(&players).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_FETCH_PLAYERS")
	}

	var totalBuyIn, totalCashOut int64
	playerList := make([]fiber.Map, 0, len(players))
	for _, p := range players {
		totalBuyIn += p.BuyInCents
		totalCashOut += p.CashOutCents
		playerList = append(playerList, fiber.Map{
			"player_code": p.PlayerCode,
			"name":        p.Name,
			"is_active":   p.IsActive,
			"buy_ins":     helpers.FromCents(p.BuyInCents),
			"cash_outs":   helpers.FromCents(p.CashOutCents),
			"net":         helpers.FromCents(p.NetCents),
		})
	}

	return helpers.JSONSuccess(c, "Session retrieved successfully", fiber.Map{
		"session_code":    session.SessionCode,
		"table_code":      session.TableCode,
		"name":            session.Name,
		"currency":        session.Currency,
		"status":          session.Status,
		"settled_at":      session.SettledAt,
		"players":         playerList,
		"total_buy_ins":   helpers.FromCents(totalBuyIn),
		"total_cash_outs": helpers.FromCents(totalCashOut),
		"chips_in_play":   helpers.FromCents(totalBuyIn - totalCashOut),
	})
}
