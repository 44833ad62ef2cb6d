package host

import (
	"chipsplit/database"
	"chipsplit/helpers"
	"chipsplit/models"

	"github.com/gofiber/fiber/v2"
)

func HostInfo(c *fiber.Ctx) error {
	hostCode := c.Get("X-Host-Code")
	secretKey := c.Get("X-Secret-Key")

	var host models.Host
	if err := database.DB.Where("host_code = ? AND secret_key = ? AND is_active = true", hostCode, secretKey).
		First(&host).Error; err != nil {
		return helpers.JSONError(c, "INVALID_HOST_CREDENTIALS")
	}

	var openSessions, settledSessions int64
	database.DB.Model(&models.Session{}).
		Where("host_code = ? AND status = ?", host.HostCode, models.SessionStatusOpen).
		Count(&openSessions)
	database.DB.Model(&models.Session{}).
		Where("host_code = ? AND status = ?", host.HostCode, models.SessionStatusSettled).
		Count(&settledSessions)

	// Chips still on the table across every open session.
	var chipsInPlayCents int64
	err := database.DB.Model(&models.Player{}).
		Joins("JOIN sessions ON sessions.id = players.session_id").
		Where("sessions.host_code = ? AND sessions.status = ?", host.HostCode, models.SessionStatusOpen).
		Select("COALESCE(SUM(players.buy_in_cents - players.cash_out_cents),0)").
		Scan(&chipsInPlayCents).Error

	if err != nil {
		return helpers.JSONError(c, "FAILED_TO_FETCH_CHIPS_IN_PLAY")
	}

	return helpers.JSONSuccess(c, "Host info retrieved successfully", fiber.Map{
		"name":             host.Name,
		"host_code":        host.HostCode,
		"currency":         host.Currency,
		"open_sessions":    openSessions,
		"settled_sessions": settledSessions,
		"chips_in_play":    helpers.FromCents(chipsInPlayCents),
	})
}
