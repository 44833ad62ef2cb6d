package player

import (
	"strings"

	"chipsplit/database"
	"chipsplit/helpers"
	"chipsplit/models"

	"github.com/gofiber/fiber/v2"
)

type JoinSessionRequest struct {
	SessionCode string `json:"session_code"`
	Name        string `json:"name"`
}

func JoinSession(c *fiber.Ctx) error {
	var req JoinSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	if req.SessionCode == "" || strings.TrimSpace(req.Name) == "" {
		return helpers.JSONError(c, "SESSION_CODE_AND_NAME_REQUIRED")
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
	if session.Status != models.SessionStatusOpen {
		return helpers.JSONError(c, "SESSION_NOT_OPEN")
	}

	var seated int64
	if err := database.DB.Model(&models.Player{}).
		Where("session_id = ? AND is_active = true", session.ID).
		Count(&seated).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_COUNT_PLAYERS")
	}
	if seated >= models.MaxPlayersPerSession {
		return helpers.JSONError(c, "PLAYER_LIMIT_REACHED")
	}

	playerCode := session.TableCode + "_" + slugifyName(req.Name)

	var existing models.Player
	if err := database.DB.Where("player_code = ?", playerCode).First(&existing).Error; err == nil {
		return helpers.JSONError(c, "PLAYER_ALREADY_EXISTS")
	}

	player := models.Player{
		SessionID:  session.ID,
		PlayerCode: playerCode,
		Name:       strings.TrimSpace(req.Name),
		IsActive:   true,
	}

	if err := database.DB.Create(&player).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_ADD_PLAYER")
	}

	return helpers.JSONSuccess(c, "Player joined successfully", fiber.Map{
		"session_code": session.SessionCode,
		"player_code":  player.PlayerCode,
		"name":         player.Name,
	})
}

func slugifyName(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Join(strings.Fields(slug), "_")
	return slug
}
