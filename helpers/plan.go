package helpers

import (
	"chipsplit/models"

	"github.com/gofiber/fiber/v2"
)

// PlanPayload shapes a stored settlement plan for the response envelope,
// converting cent amounts to boundary decimals.
func PlanPayload(plan *models.SettlementPlan) fiber.Map {
	payments := make([]fiber.Map, 0, len(plan.Payments))
	for _, p := range plan.Payments {
		payments = append(payments, fiber.Map{
			"from":     p.FromPlayerCode,
			"to":       p.ToPlayerCode,
			"amount":   FromCents(p.AmountCents),
			"currency": p.Currency,
		})
	}

	return fiber.Map{
		"plan_code":      plan.PlanCode,
		"session_code":   plan.SessionCode,
		"strategy":       plan.Strategy,
		"status":         plan.Status,
		"recommended":    plan.Recommended,
		"payment_count":  plan.PaymentCount,
		"baseline_count": plan.BaselineCount,
		"reduction_pct":  plan.ReductionPct,
		"score":          plan.Score,
		"currency":       plan.Currency,
		"payments":       payments,
	}
}
