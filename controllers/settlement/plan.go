package settlement

import (
	"chipsplit/database"
	"chipsplit/helpers"
	"chipsplit/models"

	"github.com/gofiber/fiber/v2"
)

type PlanInfoRequest struct {
	PlanCode string `json:"plan_code"`
}

func PlanInfo(c *fiber.Ctx) error {
	var req PlanInfoRequest
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

	if err := database.DB.Where("plan_id = ?", plan.ID).
		Order("position").Find(&plan.Payments).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_FETCH_PAYMENTS")
	}

	return helpers.JSONSuccess(c, "Plan retrieved successfully", helpers.PlanPayload(plan))
}
