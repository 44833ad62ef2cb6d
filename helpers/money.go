package helpers

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrSubCentAmount = errors.New("amount has sub-cent precision")

// ToCents converts a boundary decimal amount into integer cents, the only
// representation used inside the service. Amounts carrying more than two
// decimal places are rejected, never rounded.
func ToCents(amount decimal.Decimal) (int64, error) {
	cents := amount.Mul(decimal.NewFromInt(100))
	if !cents.IsInteger() {
		return 0, ErrSubCentAmount
	}
	return cents.IntPart(), nil
}

// FromCents converts integer cents back to a decimal for display at the
// boundary. Exact by construction.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}
