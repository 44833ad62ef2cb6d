package settle

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute(t *testing.T) {
	t.Run("empty input settles trivially", func(t *testing.T) {
		plan, err := Compute(nil, Options{})
		require.NoError(t, err)
		assert.Empty(t, plan.Payments)
		assert.Equal(t, 0, plan.PaymentCount)
	})

	t.Run("single player at zero settles trivially", func(t *testing.T) {
		plan, err := Compute([]PlayerBalance{{PlayerID: "a", NetCents: 0}}, Options{})
		require.NoError(t, err)
		assert.Empty(t, plan.Payments)
	})

	t.Run("two players produce exactly one payment", func(t *testing.T) {
		plan, err := Compute([]PlayerBalance{
			{PlayerID: "winner", NetCents: 500},
			{PlayerID: "loser", NetCents: -500},
		}, Options{})
		require.NoError(t, err)
		require.Len(t, plan.Payments, 1)
		assert.Equal(t, Payment{FromPlayerID: "loser", ToPlayerID: "winner", AmountCents: 500}, plan.Payments[0])
	})

	t.Run("two debtors one creditor", func(t *testing.T) {
		plan, err := Compute([]PlayerBalance{
			{PlayerID: "A", NetCents: -3000},
			{PlayerID: "B", NetCents: -2000},
			{PlayerID: "C", NetCents: 5000},
		}, Options{})
		require.NoError(t, err)
		require.Len(t, plan.Payments, 2)
		assert.Equal(t, Payment{FromPlayerID: "A", ToPlayerID: "C", AmountCents: 3000}, plan.Payments[0])
		assert.Equal(t, Payment{FromPlayerID: "B", ToPlayerID: "C", AmountCents: 2000}, plan.Payments[1])

		var total int64
		for _, p := range plan.Payments {
			total += p.AmountCents
		}
		assert.Equal(t, int64(5000), total)
	})

	t.Run("imbalanced input fails with typed error", func(t *testing.T) {
		_, err := Compute([]PlayerBalance{
			{PlayerID: "A", NetCents: -100},
			{PlayerID: "B", NetCents: 50},
		}, Options{})
		require.Error(t, err)

		var imbalanced *ImbalancedError
		require.True(t, errors.As(err, &imbalanced))
		assert.Equal(t, int64(-50), imbalanced.SumCents)
		assert.Equal(t, int64(0), imbalanced.ToleranceCents)
	})

	t.Run("residue within tolerance is absorbed", func(t *testing.T) {
		plan, err := Compute([]PlayerBalance{
			{PlayerID: "A", NetCents: -100},
			{PlayerID: "B", NetCents: 50},
		}, Options{ToleranceCents: 50})
		require.NoError(t, err)
		require.Len(t, plan.Payments, 1)
		assert.Equal(t, Payment{FromPlayerID: "A", ToPlayerID: "B", AmountCents: 50}, plan.Payments[0])
	})

	t.Run("residue beyond tolerance still fails", func(t *testing.T) {
		_, err := Compute([]PlayerBalance{
			{PlayerID: "A", NetCents: -100},
			{PlayerID: "B", NetCents: 49},
		}, Options{ToleranceCents: 50})
		require.Error(t, err)
	})

	t.Run("deterministic across calls", func(t *testing.T) {
		balances := []PlayerBalance{
			{PlayerID: "A", NetCents: -1200},
			{PlayerID: "B", NetCents: -800},
			{PlayerID: "C", NetCents: 700},
			{PlayerID: "D", NetCents: 1300},
		}
		first, err := Compute(balances, Options{})
		require.NoError(t, err)
		second, err := Compute(balances, Options{})
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("equal balances break ties by player id", func(t *testing.T) {
		plan, err := Compute([]PlayerBalance{
			{PlayerID: "zed", NetCents: -500},
			{PlayerID: "amy", NetCents: -500},
			{PlayerID: "bob", NetCents: 1000},
		}, Options{})
		require.NoError(t, err)
		require.Len(t, plan.Payments, 2)
		assert.Equal(t, "amy", plan.Payments[0].FromPlayerID)
		assert.Equal(t, "zed", plan.Payments[1].FromPlayerID)
	})

	t.Run("baseline and reduction reflect the naive plan", func(t *testing.T) {
		plan, err := Compute([]PlayerBalance{
			{PlayerID: "A", NetCents: -5000},
			{PlayerID: "B", NetCents: -5000},
			{PlayerID: "C", NetCents: 6000},
			{PlayerID: "D", NetCents: 4000},
		}, Options{})
		require.NoError(t, err)
		assert.Equal(t, 3, plan.PaymentCount)
		assert.Equal(t, 4, plan.BaselineCount)
		assert.InDelta(t, 25.0, plan.ReductionPct, 0.0001)
	})
}

func TestComputeRandomized(t *testing.T) {
	// Fixed seed: the suite must be reproducible.
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 200; trial++ {
		balances := randomZeroSumBalances(rng, 8)

		plan, err := Compute(balances, Options{})
		require.NoError(t, err)

		nonZero := 0
		var positive int64
		for _, b := range balances {
			if b.NetCents != 0 {
				nonZero++
			}
			if b.NetCents > 0 {
				positive += b.NetCents
			}
		}

		if nonZero == 0 {
			assert.Empty(t, plan.Payments)
			continue
		}

		assert.LessOrEqual(t, len(plan.Payments), nonZero-1, "trial %d exceeded the N-1 bound", trial)

		var total int64
		for _, p := range plan.Payments {
			assert.Positive(t, p.AmountCents)
			total += p.AmountCents
		}
		assert.Equal(t, positive, total, "trial %d moved a different total than the credit side", trial)

		res := Validate(plan, balances)
		assert.True(t, res.Valid, "trial %d failed validation: %+v", trial, res.Discrepancies)
	}
}

// randomZeroSumBalances deals n players random cent positions that sum to
// zero, the way a real night's ledger must.
func randomZeroSumBalances(rng *rand.Rand, n int) []PlayerBalance {
	balances := make([]PlayerBalance, n)
	var sum int64
	for i := 0; i < n-1; i++ {
		net := int64(rng.Intn(20001) - 10000)
		balances[i] = PlayerBalance{PlayerID: string(rune('A' + i)), NetCents: net}
		sum += net
	}
	balances[n-1] = PlayerBalance{PlayerID: string(rune('A' + n - 1)), NetCents: -sum}
	return balances
}
