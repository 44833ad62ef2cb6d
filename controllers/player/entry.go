package player

import (
	"errors"

	"chipsplit/database"
	"chipsplit/helpers"
	"chipsplit/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LedgerEntryRequest struct {
	SessionCode string          `json:"session_code"`
	PlayerCode  string          `json:"player_code"`
	Amount      decimal.Decimal `json:"amount"`
	RefID       string          `json:"ref_id"`
	Note        string          `json:"note"`
}

// recordEntry is the shared buy-in/cash-out path: idempotent on ref_id,
// row-locked read-modify-write, one audit ledger row per call.
func recordEntry(c *fiber.Ctx, entryType string) error {
	var req LedgerEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	if req.SessionCode == "" || req.PlayerCode == "" {
		return helpers.JSONError(c, "SESSION_CODE_AND_PLAYER_CODE_REQUIRED")
	}

	amountCents, err := helpers.ToCents(req.Amount)
	if err != nil {
		return helpers.JSONError(c, "AMOUNT_HAS_SUB_CENT_PRECISION")
	}
	if amountCents <= 0 {
		return helpers.JSONError(c, "POSITIVE_AMOUNT_REQUIRED")
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
	if session.Status != models.SessionStatusOpen {
		return helpers.JSONError(c, "SESSION_NOT_OPEN")
	}

	refID := req.RefID
	if refID == "" {
		refID = uuid.New().String()
	}

	// Idempotent replay: a retry with the same ref_id gets the stored
	// outcome, never a second ledger row.
	var existing models.LedgerEntry
	if err := database.DB.Where("ref_id = ?", refID).First(&existing).Error; err == nil {
		if existing.EntryType != entryType || existing.PlayerCode != req.PlayerCode {
			return helpers.JSONError(c, "REF_ID_ALREADY_USED")
		}
		return helpers.JSONSuccess(c, "Entry already recorded", fiber.Map{
			"player_code": existing.PlayerCode,
			"entry_type":  existing.EntryType,
			"amount":      helpers.FromCents(existing.AmountCents),
			"net":         helpers.FromCents(existing.NetAfter),
			"ref_id":      existing.RefID,
		})
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helpers.JSONError(c, "FAILED_TO_CHECK_REF_ID")
	}

	var entry models.LedgerEntry

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var player models.Player
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("session_id = ? AND player_code = ? AND is_active = true", session.ID, req.PlayerCode).
			First(&player).Error; err != nil {
			return err
		}

		if entryType == models.EntryTypeCashOut {
			// You can only cash out chips that are actually on the table.
			var chipsInPlay int64
			if err := tx.Model(&models.Player{}).
				Where("session_id = ?", session.ID).
				Select("COALESCE(SUM(buy_in_cents - cash_out_cents),0)").
				Scan(&chipsInPlay).Error; err != nil {
				return err
			}
			if amountCents > chipsInPlay {
				return errCashOutExceedsChips
			}
		}

		before := player.NetCents
		switch entryType {
		case models.EntryTypeBuyIn:
			player.BuyInCents += amountCents
			player.NetCents -= amountCents
		case models.EntryTypeCashOut:
			player.CashOutCents += amountCents
			player.NetCents += amountCents
		}

		if err := tx.Save(&player).Error; err != nil {
			return err
		}

		entry = models.LedgerEntry{
			SessionID:   session.ID,
			PlayerID:    player.ID,
			PlayerCode:  player.PlayerCode,
			EntryType:   entryType,
			AmountCents: amountCents,
			NetBefore:   before,
			NetAfter:    player.NetCents,
			Currency:    session.Currency,
			Note:        req.Note,
			RefID:       refID,
		}
		return tx.Create(&entry).Error
	})

	if err != nil {
		if errors.Is(err, errCashOutExceedsChips) {
			return helpers.JSONError(c, "CASH_OUT_EXCEEDS_CHIPS_IN_PLAY")
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JSONError(c, "PLAYER_NOT_FOUND")
		}
		return helpers.JSONError(c, "FAILED_TO_RECORD_ENTRY")
	}

	return helpers.JSONSuccess(c, "Entry recorded successfully", fiber.Map{
		"player_code": entry.PlayerCode,
		"entry_type":  entry.EntryType,
		"amount":      helpers.FromCents(entry.AmountCents),
		"net":         helpers.FromCents(entry.NetAfter),
		"ref_id":      entry.RefID,
	})
}

var errCashOutExceedsChips = errors.New("cash-out exceeds chips in play")
