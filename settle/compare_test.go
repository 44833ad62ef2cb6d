package settle

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	balances := []PlayerBalance{
		{PlayerID: "A", NetCents: -5000},
		{PlayerID: "B", NetCents: -5000},
		{PlayerID: "C", NetCents: 6000},
		{PlayerID: "D", NetCents: 4000},
	}

	t.Run("generates one candidate per strategy", func(t *testing.T) {
		cmp, err := Compare(balances, DefaultWeights, Options{})
		require.NoError(t, err)
		require.Len(t, cmp.Candidates, 3)

		strategies := map[string]bool{}
		for _, cand := range cmp.Candidates {
			strategies[cand.Plan.Strategy] = true
		}
		assert.True(t, strategies[StrategyGreedy])
		assert.True(t, strategies[StrategyHub])
		assert.True(t, strategies[StrategyDirect])
	})

	t.Run("ranks best first and flags it recommended", func(t *testing.T) {
		cmp, err := Compare(balances, DefaultWeights, Options{})
		require.NoError(t, err)

		require.NotNil(t, cmp.Recommended)
		assert.True(t, cmp.Candidates[0].Recommended)
		assert.Equal(t, cmp.Candidates[0].Plan, cmp.Recommended)
		for i := 1; i < len(cmp.Candidates); i++ {
			assert.False(t, cmp.Candidates[i].Recommended)
			assert.GreaterOrEqual(t, cmp.Candidates[i-1].Score, cmp.Candidates[i].Score)
		}
	})

	t.Run("every candidate settles the books", func(t *testing.T) {
		cmp, err := Compare(balances, DefaultWeights, Options{})
		require.NoError(t, err)

		for _, cand := range cmp.Candidates {
			res := Validate(cand.Plan, balances)
			assert.True(t, res.Valid, "%s candidate: %+v", cand.Plan.Strategy, res.Discrepancies)
		}
	})

	t.Run("efficiency-only weights pick the fewest payments", func(t *testing.T) {
		cmp, err := Compare(balances, Weights{Efficiency: 1}, Options{})
		require.NoError(t, err)

		// Greedy and hub both need 3 payments, direct needs 4; the score tie
		// breaks by strategy name.
		assert.Equal(t, StrategyGreedy, cmp.Recommended.Strategy)
		assert.Equal(t, 3, cmp.Recommended.PaymentCount)
	})

	t.Run("hub routes everything through the largest creditor", func(t *testing.T) {
		cmp, err := Compare(balances, DefaultWeights, Options{})
		require.NoError(t, err)

		var hub *Plan
		for _, cand := range cmp.Candidates {
			if cand.Plan.Strategy == StrategyHub {
				hub = cand.Plan
			}
		}
		require.NotNil(t, hub)
		for _, p := range hub.Payments {
			assert.True(t, p.FromPlayerID == "C" || p.ToPlayerID == "C")
		}
	})

	t.Run("hub override is honored", func(t *testing.T) {
		cmp, err := Compare(balances, DefaultWeights, Options{Hub: "D"})
		require.NoError(t, err)

		for _, cand := range cmp.Candidates {
			if cand.Plan.Strategy != StrategyHub {
				continue
			}
			for _, p := range cand.Plan.Payments {
				assert.True(t, p.FromPlayerID == "D" || p.ToPlayerID == "D")
			}
		}
	})

	t.Run("unknown hub fails", func(t *testing.T) {
		_, err := Compare(balances, DefaultWeights, Options{Hub: "nobody"})
		assert.True(t, errors.Is(err, ErrUnknownHub))
	})

	t.Run("imbalanced input fails before any candidate is built", func(t *testing.T) {
		_, err := Compare([]PlayerBalance{{PlayerID: "A", NetCents: 1}}, DefaultWeights, Options{})
		var imbalanced *ImbalancedError
		assert.True(t, errors.As(err, &imbalanced))
	})

	t.Run("empty input yields empty candidates", func(t *testing.T) {
		cmp, err := Compare(nil, DefaultWeights, Options{})
		require.NoError(t, err)
		for _, cand := range cmp.Candidates {
			assert.Empty(t, cand.Plan.Payments)
		}
	})

	t.Run("zero weights fall back to defaults", func(t *testing.T) {
		cmp, err := Compare(balances, Weights{}, Options{})
		require.NoError(t, err)
		assert.Equal(t, DefaultWeights, cmp.Weights)
	})

	t.Run("weights are renormalized to sum to one", func(t *testing.T) {
		cmp, err := Compare(balances, Weights{Efficiency: 2, Fairness: 1, Simplicity: 1}, Options{})
		require.NoError(t, err)
		assert.InDelta(t, 0.5, cmp.Weights.Efficiency, 1e-9)
		assert.InDelta(t, 0.25, cmp.Weights.Fairness, 1e-9)
		assert.InDelta(t, 0.25, cmp.Weights.Simplicity, 1e-9)
	})
}

func TestNetDirectExactness(t *testing.T) {
	t.Run("pro-rata rounding never leaks a cent", func(t *testing.T) {
		balances := []PlayerBalance{
			{PlayerID: "A", NetCents: -5},
			{PlayerID: "B", NetCents: -5},
			{PlayerID: "C", NetCents: 3},
			{PlayerID: "D", NetCents: 7},
		}

		cmp, err := Compare(balances, DefaultWeights, Options{})
		require.NoError(t, err)

		for _, cand := range cmp.Candidates {
			if cand.Plan.Strategy != StrategyDirect {
				continue
			}
			res := Validate(cand.Plan, balances)
			assert.True(t, res.Valid, "%+v", res.Discrepancies)
		}
	})

	t.Run("direct is the everyone-pays-everyone baseline", func(t *testing.T) {
		balances := []PlayerBalance{
			{PlayerID: "A", NetCents: -4000},
			{PlayerID: "B", NetCents: -6000},
			{PlayerID: "C", NetCents: 5000},
			{PlayerID: "D", NetCents: 5000},
		}

		cmp, err := Compare(balances, DefaultWeights, Options{})
		require.NoError(t, err)

		for _, cand := range cmp.Candidates {
			assert.Equal(t, 4, cand.Plan.BaselineCount)
		}
	})
}

func TestPlanMetrics(t *testing.T) {
	t.Run("uniform payments have zero variance", func(t *testing.T) {
		m := planMetrics(&Plan{Payments: []Payment{
			{FromPlayerID: "A", ToPlayerID: "C", AmountCents: 100},
			{FromPlayerID: "B", ToPlayerID: "C", AmountCents: 100},
		}})
		assert.Equal(t, 2, m.PaymentCount)
		assert.Zero(t, m.FairnessVariance)
		assert.Equal(t, 2, m.MaxPerPlayer)
	})

	t.Run("empty plan has zero metrics", func(t *testing.T) {
		m := planMetrics(&Plan{})
		assert.Zero(t, m.PaymentCount)
		assert.Zero(t, m.FairnessVariance)
		assert.Zero(t, m.MaxPerPlayer)
	})
}
