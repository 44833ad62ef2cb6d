package helpers

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCents(t *testing.T) {
	t.Run("converts whole dollar amounts", func(t *testing.T) {
		cents, err := ToCents(decimal.RequireFromString("50"))
		require.NoError(t, err)
		assert.Equal(t, int64(5000), cents)
	})

	t.Run("converts two-decimal amounts", func(t *testing.T) {
		cents, err := ToCents(decimal.RequireFromString("12.34"))
		require.NoError(t, err)
		assert.Equal(t, int64(1234), cents)
	})

	t.Run("keeps the sign", func(t *testing.T) {
		cents, err := ToCents(decimal.RequireFromString("-3.00"))
		require.NoError(t, err)
		assert.Equal(t, int64(-300), cents)
	})

	t.Run("rejects sub-cent precision instead of rounding", func(t *testing.T) {
		_, err := ToCents(decimal.RequireFromString("0.001"))
		assert.ErrorIs(t, err, ErrSubCentAmount)

		_, err = ToCents(decimal.RequireFromString("19.995"))
		assert.ErrorIs(t, err, ErrSubCentAmount)
	})

	t.Run("float-tainted inputs stay exact through decimal", func(t *testing.T) {
		// 0.1 + 0.2 in binary floats is not 0.3; decimal arithmetic is.
		sum := decimal.RequireFromString("0.1").Add(decimal.RequireFromString("0.2"))
		cents, err := ToCents(sum)
		require.NoError(t, err)
		assert.Equal(t, int64(30), cents)
	})
}

func TestFromCents(t *testing.T) {
	t.Run("formats cents as a two-decimal amount", func(t *testing.T) {
		assert.Equal(t, "50.25", FromCents(5025).StringFixed(2))
		assert.Equal(t, "-0.05", FromCents(-5).StringFixed(2))
		assert.Equal(t, "0.00", FromCents(0).StringFixed(2))
	})

	t.Run("round-trips with ToCents", func(t *testing.T) {
		for _, cents := range []int64{0, 1, -1, 99, 100, 123456789} {
			back, err := ToCents(FromCents(cents))
			require.NoError(t, err)
			assert.Equal(t, cents, back)
		}
	})
}
