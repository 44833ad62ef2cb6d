package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	PlanStatusDraft     = "draft"
	PlanStatusFinal     = "final"
	PlanStatusDiscarded = "discarded"
)

type SettlementPlan struct {
	gorm.Model

	PlanCode    string `gorm:"size:36;uniqueIndex;not null" json:"plan_code"`
	SessionID   uint   `gorm:"index"`
	SessionCode string `gorm:"size:36;index" json:"session_code"`
	Strategy    string `gorm:"size:16;index" json:"strategy"`
	Status      string `gorm:"size:16;index;default:draft" json:"status"`

	PaymentCount  int             `json:"payment_count"`
	BaselineCount int             `json:"baseline_count"`
	ReductionPct  decimal.Decimal `gorm:"type:numeric(6,2);default:0" json:"reduction_pct"`
	Score         decimal.Decimal `gorm:"type:numeric(7,4);default:0" json:"score"`
	Recommended   bool            `json:"recommended"`
	Currency      string          `gorm:"size:8" json:"currency"`

	Metrics datatypes.JSON `gorm:"type:jsonb" json:"metrics"`

	Payments []SettlementPayment `gorm:"foreignKey:PlanID"`
}

func (p *SettlementPlan) BeforeCreate(tx *gorm.DB) (err error) {
	if p.PlanCode == "" {
		p.PlanCode = strings.ToLower(uuid.New().String())
	}
	return nil
}

type SettlementPayment struct {
	gorm.Model

	PlanID   uint `gorm:"index"`
	Position int  `json:"position"`

	FromPlayerCode string `gorm:"size:64;index" json:"from_player_code"`
	ToPlayerCode   string `gorm:"size:64;index" json:"to_player_code"`
	AmountCents    int64  `json:"amount_cents"`
	Currency       string `gorm:"size:8" json:"currency"`
}
