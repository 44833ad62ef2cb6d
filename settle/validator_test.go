package settle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	balances := []PlayerBalance{
		{PlayerID: "A", NetCents: -3000},
		{PlayerID: "B", NetCents: -2000},
		{PlayerID: "C", NetCents: 5000},
	}

	t.Run("agrees with the optimizer", func(t *testing.T) {
		plan, err := Compute(balances, Options{})
		require.NoError(t, err)

		res := Validate(plan, balances)
		assert.True(t, res.Valid)
		assert.Empty(t, res.Discrepancies)
		assert.Equal(t, int64(5000), res.TotalDebitCents)
		assert.Equal(t, int64(5000), res.TotalCreditCents)
	})

	t.Run("catches a tampered amount", func(t *testing.T) {
		plan, err := Compute(balances, Options{})
		require.NoError(t, err)
		plan.Payments[0].AmountCents += 100

		res := Validate(plan, balances)
		assert.False(t, res.Valid)
		require.NotEmpty(t, res.Discrepancies)

		byPlayer := map[string]Discrepancy{}
		for _, d := range res.Discrepancies {
			byPlayer[d.PlayerID] = d
		}
		a, ok := byPlayer["A"]
		require.True(t, ok)
		assert.Equal(t, int64(-3000), a.ExpectedNetCents)
		assert.Equal(t, int64(-3100), a.ActualNetCents)
		assert.Equal(t, int64(-100), a.DiffCents)
	})

	t.Run("catches a dropped payment", func(t *testing.T) {
		plan, err := Compute(balances, Options{})
		require.NoError(t, err)
		plan.Payments = plan.Payments[:1]

		res := Validate(plan, balances)
		assert.False(t, res.Valid)
	})

	t.Run("flags players missing from the balance list", func(t *testing.T) {
		plan := &Plan{Payments: []Payment{
			{FromPlayerID: "A", ToPlayerID: "ghost", AmountCents: 3000},
			{FromPlayerID: "A", ToPlayerID: "C", AmountCents: 0},
		}}

		res := Validate(plan, balances)
		assert.False(t, res.Valid)

		reasons := map[string]bool{}
		for _, d := range res.Discrepancies {
			reasons[d.Reason] = true
		}
		assert.True(t, reasons["player not in balance list"])
		assert.True(t, reasons["non-positive payment amount"])
	})

	t.Run("flags self payments", func(t *testing.T) {
		plan := &Plan{Payments: []Payment{
			{FromPlayerID: "A", ToPlayerID: "A", AmountCents: 100},
		}}

		res := Validate(plan, balances)
		assert.False(t, res.Valid)
	})

	t.Run("nil plan is valid only for settled books", func(t *testing.T) {
		res := Validate(nil, []PlayerBalance{{PlayerID: "A", NetCents: 0}})
		assert.True(t, res.Valid)

		res = Validate(nil, balances)
		assert.False(t, res.Valid)
		assert.Len(t, res.Discrepancies, 3)
	})

	t.Run("validation never mutates the plan", func(t *testing.T) {
		plan, err := Compute(balances, Options{})
		require.NoError(t, err)
		plan.Payments[0].AmountCents += 1

		before := append([]Payment(nil), plan.Payments...)
		_ = Validate(plan, balances)
		assert.Equal(t, before, plan.Payments)
	})
}
