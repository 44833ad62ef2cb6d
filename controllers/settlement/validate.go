package settlement

import (
	"chipsplit/database"
	"chipsplit/helpers"
	"chipsplit/models"
	"chipsplit/services"

	"github.com/gofiber/fiber/v2"
)

type ValidatePlanRequest struct {
	PlanCode string `json:"plan_code"`
}

// ValidatePlan replays a stored plan through the independent validator
// against the session's live balances. Validation never repairs anything: a
// failing plan is for the host to discard and recompute.
func ValidatePlan(c *fiber.Ctx) error {
	var req ValidatePlanRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	if req.PlanCode == "" {
		return helpers.JSONError(c, "PLAN_CODE_REQUIRED")
	}

	host, ok := c.Locals("host").(models.Host)
	if !ok {
		return helpers.JSONError(c, "INVALID_HOST_SESSION")
	}

	plan, err := findHostPlan(req.PlanCode, host.HostCode)
	if err != nil {
		return helpers.JSONError(c, "PLAN_NOT_FOUND_OR_UNAUTHORIZED")
	}

	result, err := services.ValidateStoredPlan(plan)
	if err != nil {
		return helpers.JSONError(c, "FAILED_TO_VALIDATE_PLAN")
	}

	audit := fiber.Map{
		"plan_code":     plan.PlanCode,
		"session_code":  plan.SessionCode,
		"valid":         result.Valid,
		"total_debits":  helpers.FromCents(result.TotalDebitCents),
		"total_credits": helpers.FromCents(result.TotalCreditCents),
		"discrepancies": result.Discrepancies,
	}

	if !result.Valid {
		return helpers.JSONErrorDetail(c, "PLAN_VALIDATION_FAILED", audit)
	}
	return helpers.JSONSuccess(c, "Plan is balanced", audit)
}

// findHostPlan loads a plan by code and confirms it belongs to one of the
// host's sessions.
func findHostPlan(planCode, hostCode string) (*models.SettlementPlan, error) {
	var plan models.SettlementPlan
	if err := database.DB.Where("plan_code = ?", planCode).First(&plan).Error; err != nil {
		return nil, err
	}

	var session models.Session
	if err := database.DB.
		Where("id = ? AND host_code = ?", plan.SessionID, hostCode).
		First(&session).Error; err != nil {
		return nil, err
	}

	return &plan, nil
}
