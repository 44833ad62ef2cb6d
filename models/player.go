package models

import "gorm.io/gorm"

const (
	EntryTypeBuyIn   = "buy_in"
	EntryTypeCashOut = "cash_out"
)

type Player struct {
	gorm.Model

	SessionID  uint   `gorm:"index"`
	PlayerCode string `gorm:"uniqueIndex;size:64" json:"player_code"`
	Name       string `gorm:"size:64" json:"name"`
	IsActive   bool   `gorm:"default:true" json:"is_active"`

	// NetCents is cash-outs minus buy-ins: negative means the player owes
	// money at settlement time.
	NetCents     int64 `json:"net_cents"`
	BuyInCents   int64 `json:"buy_in_cents"`
	CashOutCents int64 `json:"cash_out_cents"`

	Entries []LedgerEntry `gorm:"foreignKey:PlayerID"`
}

type LedgerEntry struct {
	gorm.Model

	SessionID  uint   `gorm:"index"`
	PlayerID   uint   `gorm:"index"`
	PlayerCode string `gorm:"size:64;index"`

	EntryType   string `gorm:"size:16"`
	AmountCents int64  `json:"amount_cents"`
	NetBefore   int64  `json:"net_before"`
	NetAfter    int64  `json:"net_after"`
	Currency    string `gorm:"size:8"`
	Note        string `gorm:"size:255"`
	RefID       string `gorm:"size:64;uniqueIndex"`
}
