package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SessionStatusOpen    = "open"
	SessionStatusSettled = "settled"
	SessionStatusVoided  = "voided"
)

// MaxPlayersPerSession is the product's table-size bound.
const MaxPlayersPerSession = 8

type Session struct {
	gorm.Model

	SessionCode string     `gorm:"size:36;uniqueIndex;not null" json:"session_code"`
	TableCode   string     `gorm:"size:16;index" json:"table_code"`
	HostCode    string     `gorm:"index;size:32" json:"host_code"`
	Name        string     `gorm:"size:64" json:"name"`
	Currency    string     `gorm:"size:8" json:"currency"`
	Status      string     `gorm:"size:16;index;default:open" json:"status"`
	SettledAt   *time.Time `json:"settled_at"`

	Players []Player         `gorm:"foreignKey:SessionID"`
	Entries []LedgerEntry    `gorm:"foreignKey:SessionID"`
	Plans   []SettlementPlan `gorm:"foreignKey:SessionID"`
}

func (s *Session) BeforeCreate(tx *gorm.DB) (err error) {
	s.SessionCode = strings.ToLower(uuid.New().String())
	return nil
}
