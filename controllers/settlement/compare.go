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

type ComparePlansRequest struct {
	SessionCode string          `json:"session_code"`
	Hub         string          `json:"hub"`
	Weights     *WeightsRequest `json:"weights"`
}

// ComparePlans runs every strategy against the session's current balances
// and returns the ranked candidates. Nothing is persisted.
func ComparePlans(c *fiber.Ctx) error {
	var req ComparePlansRequest
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

	balances, err := services.SessionBalances(database.DB, session.ID)
	if err != nil {
		return helpers.JSONError(c, "FAILED_TO_FETCH_PLAYERS")
	}

	cmp, err := settle.Compare(balances, req.Weights.toEngine(), settle.Options{Hub: req.Hub})
	if err != nil {
		var imbalanced *settle.ImbalancedError
		if errors.As(err, &imbalanced) {
			return helpers.JSONErrorDetail(c, "CHIPS_NOT_BALANCED", fiber.Map{
				"chips_in_play_cents": -imbalanced.SumCents,
				"chips_in_play":       helpers.FromCents(-imbalanced.SumCents),
			})
		}
		if errors.Is(err, settle.ErrUnknownHub) {
			return helpers.JSONError(c, "UNKNOWN_HUB_PLAYER")
		}
		return helpers.JSONError(c, "FAILED_TO_COMPARE_PLANS")
	}

	candidates := make([]fiber.Map, 0, len(cmp.Candidates))
	for _, cand := range cmp.Candidates {
		payments := make([]fiber.Map, 0, len(cand.Plan.Payments))
		for _, p := range cand.Plan.Payments {
			payments = append(payments, fiber.Map{
				"from":     p.FromPlayerID,
				"to":       p.ToPlayerID,
				"amount":   helpers.FromCents(p.AmountCents),
				"currency": session.Currency,
			})
		}
		candidates = append(candidates, fiber.Map{
			"strategy":       cand.Plan.Strategy,
			"score":          cand.Score,
			"recommended":    cand.Recommended,
			"payment_count":  cand.Plan.PaymentCount,
			"baseline_count": cand.Plan.BaselineCount,
			"reduction_pct":  cand.Plan.ReductionPct,
			"metrics":        cand.Metrics,
			"payments":       payments,
		})
	}

	return helpers.JSONSuccess(c, "Plans compared successfully", fiber.Map{
		"session_code": session.SessionCode,
		"weights":      cmp.Weights,
		"candidates":   candidates,
	})
}
