package settlement

import (
	"errors"

	"chipsplit/database"
	"chipsplit/helpers"
	"chipsplit/models"
	"chipsplit/services"
	"chipsplit/settle"

	"github.com/gofiber/fiber/v2"
)

type WeightsRequest struct {
	Efficiency float64 `json:"efficiency"`
	Fairness   float64 `json:"fairness"`
	Simplicity float64 `json:"simplicity"`
}

func (w *WeightsRequest) toEngine() settle.Weights {
	if w == nil {
		return settle.DefaultWeights
	}
	return settle.Weights{
		Efficiency: w.Efficiency,
		Fairness:   w.Fairness,
		Simplicity: w.Simplicity,
	}
}

type ComputePlanRequest struct {
	SessionCode string          `json:"session_code"`
	Strategy    string          `json:"strategy"`
	Weights     *WeightsRequest `json:"weights"`
}

// ComputePlan computes an on-demand draft plan against the session's current
// balances without closing the session.
func ComputePlan(c *fiber.Ctx) error {
	var req ComputePlanRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	if req.SessionCode == "" {
		return helpers.JSONError(c, "SESSION_CODE_REQUIRED")
	}
	if req.Strategy == "" {
		req.Strategy = settle.StrategyGreedy
	}
	switch req.Strategy {
	case settle.StrategyGreedy, settle.StrategyHub, settle.StrategyDirect:
	default:
		return helpers.JSONError(c, "UNKNOWN_STRATEGY")
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

	plan, err := services.ComputeDraftPlan(session.ID, req.Strategy, req.Weights.toEngine())
	if err != nil {
		var imbalanced *settle.ImbalancedError
		if errors.As(err, &imbalanced) {
			return helpers.JSONErrorDetail(c, "CHIPS_NOT_BALANCED", fiber.Map{
				"chips_in_play_cents": -imbalanced.SumCents,
				"chips_in_play":       helpers.FromCents(-imbalanced.SumCents),
			})
		}
		if errors.Is(err, services.ErrSessionNotOpen) {
			return helpers.JSONError(c, "SESSION_NOT_OPEN")
		}
		return helpers.JSONError(c, "FAILED_TO_COMPUTE_PLAN")
	}

	return helpers.JSONSuccess(c, "Plan computed successfully", helpers.PlanPayload(plan))
}
