package session

import (
	"errors"

	"chipsplit/database"
	"chipsplit/helpers"
	"chipsplit/models"
	"chipsplit/services"
	"chipsplit/settle"

	"github.com/gofiber/fiber/v2"
)

type CloseSessionRequest struct {
	SessionCode string `json:"session_code"`
	Weights     *struct {
		Efficiency float64 `json:"efficiency"`
		Fairness   float64 `json:"fairness"`
		Simplicity float64 `json:"simplicity"`
	} `json:"weights"`
}

// CloseSession settles an open session: every chip must be cashed out, then
// the strategy comparison runs, all candidates are stored and the
// recommended plan is returned.
func CloseSession(c *fiber.Ctx) error {
	var req CloseSessionRequest
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

	weights := settle.DefaultWeights
	if req.Weights != nil {
		weights = settle.Weights{
			Efficiency: req.Weights.Efficiency,
			Fairness:   req.Weights.Fairness,
			Simplicity: req.Weights.Simplicity,
		}
	}

	plan, err := services.SettleSession(session.ID, weights)
	if err != nil {
		var imbalanced *settle.ImbalancedError
		if errors.As(err, &imbalanced) {
			// Net balances sum to cash-outs minus buy-ins, so the chips
			// still on the table are the negation.
			return helpers.JSONErrorDetail(c, "CHIPS_NOT_BALANCED", fiber.Map{
				"chips_in_play_cents": -imbalanced.SumCents,
				"chips_in_play":       helpers.FromCents(-imbalanced.SumCents),
			})
		}
		if errors.Is(err, services.ErrSessionNotOpen) {
			return helpers.JSONError(c, "SESSION_NOT_OPEN")
		}
		return helpers.JSONError(c, "FAILED_TO_SETTLE_SESSION")
	}

	return helpers.JSONSuccess(c, "Session settled successfully", helpers.PlanPayload(plan))
}
