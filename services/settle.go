package services

import (
	"encoding/json"
	"errors"
	"time"

	"chipsplit/database"
	"chipsplit/models"
	"chipsplit/settle"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrSessionNotOpen is returned when a settle or draft run targets a session
// that is already settled or voided.
var ErrSessionNotOpen = errors.New("session is not open")

// SessionBalances converts a session's active players into engine balances.
// Callers that need a stable read pass a transaction holding row locks.
func SessionBalances(tx *gorm.DB, sessionID uint) ([]settle.PlayerBalance, error) {
	var players []models.Player
	if err := tx.Where("session_id = ? AND is_active = true", sessionID).
		Order("player_code").Find(&players).Error; err != nil {
		return nil, err
	}

	balances := make([]settle.PlayerBalance, 0, len(players))
	for _, p := range players {
		balances = append(balances, settle.PlayerBalance{
			PlayerID: p.PlayerCode,
			Name:     p.Name,
			NetCents: p.NetCents,
		})
	}
	return balances, nil
}

// SettleSession runs the full strategy comparison for an open session,
// persists every candidate plan, marks the recommended one final and the
// session settled. The whole thing is one transaction: either the session is
// settled with its plans on disk, or nothing changed.
func SettleSession(sessionID uint, weights settle.Weights) (*models.SettlementPlan, error) {
	var final *models.SettlementPlan

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var session models.Session
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&session, sessionID).Error; err != nil {
			return err
		}
		if session.Status != models.SessionStatusOpen {
			return ErrSessionNotOpen
		}

		// Lock player rows so concurrent buy-ins cannot slip between the
		// balance read and the settle write.
		var locked []models.Player
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("session_id = ?", session.ID).Find(&locked).Error; err != nil {
			return err
		}

		balances, err := SessionBalances(tx, session.ID)
		if err != nil {
			return err
		}

		cmp, err := settle.Compare(balances, weights, settle.Options{})
		if err != nil {
			return err
		}

		// Earlier drafts are superseded by the settle run.
		if err := tx.Model(&models.SettlementPlan{}).
			Where("session_id = ? AND status = ?", session.ID, models.PlanStatusDraft).
			Update("status", models.PlanStatusDiscarded).Error; err != nil {
			return err
		}

		for _, candidate := range cmp.Candidates {
			status := models.PlanStatusDraft
			if candidate.Recommended {
				status = models.PlanStatusFinal
			}
			stored, err := storePlan(tx, &session, candidate, status)
			if err != nil {
				return err
			}
			if candidate.Recommended {
				final = stored
			}
		}

		now := time.Now()
		session.Status = models.SessionStatusSettled
		session.SettledAt = &now
		return tx.Save(&session).Error
	})

	if err != nil {
		return nil, err
	}
	return final, nil
}

// ComputeDraftPlan computes one strategy's plan against the session's current
// balances and stores it as a draft, superseding earlier drafts of the same
// strategy.
func ComputeDraftPlan(sessionID uint, strategy string, weights settle.Weights) (*models.SettlementPlan, error) {
	var stored *models.SettlementPlan

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var session models.Session
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&session, sessionID).Error; err != nil {
			return err
		}
		if session.Status != models.SessionStatusOpen {
			return ErrSessionNotOpen
		}

		balances, err := SessionBalances(tx, session.ID)
		if err != nil {
			return err
		}

		cmp, err := settle.Compare(balances, weights, settle.Options{})
		if err != nil {
			return err
		}

		var pick *settle.ScoredPlan
		for i := range cmp.Candidates {
			if cmp.Candidates[i].Plan.Strategy == strategy {
				pick = &cmp.Candidates[i]
				break
			}
		}
		if pick == nil {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Model(&models.SettlementPlan{}).
			Where("session_id = ? AND strategy = ? AND status = ?", session.ID, strategy, models.PlanStatusDraft).
			Update("status", models.PlanStatusDiscarded).Error; err != nil {
			return err
		}

		stored, err = storePlan(tx, &session, *pick, models.PlanStatusDraft)
		return err
	})

	if err != nil {
		return nil, err
	}
	return stored, nil
}

// ValidateStoredPlan replays a persisted plan through the independent
// validator against the session's live balances.
func ValidateStoredPlan(plan *models.SettlementPlan) (settle.ValidationResult, error) {
	balances, err := SessionBalances(database.DB, plan.SessionID)
	if err != nil {
		return settle.ValidationResult{}, err
	}

	var payments []models.SettlementPayment
	if err := database.DB.Where("plan_id = ?", plan.ID).
		Order("position").Find(&payments).Error; err != nil {
		return settle.ValidationResult{}, err
	}

	engine := &settle.Plan{Strategy: plan.Strategy}
	for _, p := range payments {
		engine.Payments = append(engine.Payments, settle.Payment{
			FromPlayerID: p.FromPlayerCode,
			ToPlayerID:   p.ToPlayerCode,
			AmountCents:  p.AmountCents,
		})
	}
	engine.PaymentCount = len(engine.Payments)

	return settle.Validate(engine, balances), nil
}

func storePlan(tx *gorm.DB, session *models.Session, candidate settle.ScoredPlan, status string) (*models.SettlementPlan, error) {
	metrics, err := json.Marshal(candidate.Metrics)
	if err != nil {
		return nil, err
	}

	stored := models.SettlementPlan{
		SessionID:     session.ID,
		SessionCode:   session.SessionCode,
		Strategy:      candidate.Plan.Strategy,
		Status:        status,
		PaymentCount:  candidate.Plan.PaymentCount,
		BaselineCount: candidate.Plan.BaselineCount,
		ReductionPct:  decimal.NewFromFloat(candidate.Plan.ReductionPct).Round(2),
		Score:         decimal.NewFromFloat(candidate.Score).Round(4),
		Recommended:   candidate.Recommended,
		Currency:      session.Currency,
		Metrics:       datatypes.JSON(metrics),
	}
	if err := tx.Create(&stored).Error; err != nil {
		return nil, err
	}

	for i, pay := range candidate.Plan.Payments {
		row := models.SettlementPayment{
			PlanID:         stored.ID,
			Position:       i,
			FromPlayerCode: pay.FromPlayerID,
			ToPlayerCode:   pay.ToPlayerID,
			AmountCents:    pay.AmountCents,
			Currency:       session.Currency,
		}
		if err := tx.Create(&row).Error; err != nil {
			return nil, err
		}
		stored.Payments = append(stored.Payments, row)
	}

	return &stored, nil
}
