package tasks

import (
	"log"
	"os"
	"strconv"
	"time"

	"chipsplit/database"
	"chipsplit/models"
)

// VoidAbandonedSessions voids open sessions nobody has touched for longer
// than SESSION_MAX_IDLE_HOURS (default 72).
func VoidAbandonedSessions() {
	maxIdle := 72
	if env := os.Getenv("SESSION_MAX_IDLE_HOURS"); env != "" {
		if parsed, err := strconv.Atoi(env); err == nil && parsed > 0 {
			maxIdle = parsed
		}
	}

	cutoff := time.Now().Add(-time.Duration(maxIdle) * time.Hour)
	result := database.DB.Model(&models.Session{}).
		Where("status = ? AND updated_at < ?", models.SessionStatusOpen, cutoff).
		Update("status", models.SessionStatusVoided)

	if result.Error != nil {
		log.Println("❌ Failed to void abandoned sessions:", result.Error)
	} else if result.RowsAffected > 0 {
		log.Printf("✅ Voided %d abandoned sessions idle for over %dh\n", result.RowsAffected, maxIdle)
	}
}

// PruneDiscardedPlans deletes discarded draft plans (and their payments)
// older than 24 hours.
func PruneDiscardedPlans() {
	cutoff := time.Now().Add(-24 * time.Hour)

	var ids []uint
	if err := database.DB.Model(&models.SettlementPlan{}).
		Where("status = ? AND updated_at < ?", models.PlanStatusDiscarded, cutoff).
		Pluck("id", &ids).Error; err != nil {
		log.Println("❌ Failed to list discarded plans:", err)
		return
	}
	if len(ids) == 0 {
		return
	}

	if err := database.DB.Where("plan_id IN ?", ids).
		Delete(&models.SettlementPayment{}).Error; err != nil {
		log.Println("❌ Failed to delete payments of discarded plans:", err)
		return
	}
	result := database.DB.Delete(&models.SettlementPlan{}, ids)
	if result.Error != nil {
		log.Println("❌ Failed to delete discarded plans:", result.Error)
	} else {
		log.Printf("✅ Deleted %d discarded plans older than 24 hours\n", result.RowsAffected)
	}
}
