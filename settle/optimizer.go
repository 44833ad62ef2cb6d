package settle

import (
	"fmt"
	"sort"
)

// Compute produces a settlement plan for the given balances using the greedy
// largest-debtor-to-largest-creditor matching. The result zeroes every
// balance with at most N-1 payments for N players with non-zero balances.
//
// An empty list, or one where every balance is zero, yields an empty plan
// and no error. Balances that do not sum to zero within
// Options.ToleranceCents fail with *ImbalancedError.
func Compute(balances []PlayerBalance, opts Options) (*Plan, error) {
	debtors, creditors, err := partition(balances, opts.ToleranceCents)
	if err != nil {
		return nil, err
	}

	payments, err := netGreedy(debtors, creditors)
	if err != nil {
		return nil, err
	}

	plan := buildPlan(StrategyGreedy, payments, len(debtors), len(creditors))

	// Independent re-check before handing the plan out. The check runs
	// against the post-tolerance balances the netting saw, so it is exact
	// even when a residue was absorbed.
	if res := Validate(plan, adjustedBalances(debtors, creditors)); !res.Valid {
		return nil, fmt.Errorf("settle: computed plan failed validation: %+v", res.Discrepancies)
	}

	return plan, nil
}

// partition splits balances into debtors and creditors, both sorted by
// outstanding amount descending (player id ascending on ties, so plans are
// deterministic). Zero balances are dropped. A residue within the tolerance
// is folded into the largest-magnitude party so both sides sum to the same
// figure.
func partition(balances []PlayerBalance, toleranceCents int64) (debtors, creditors []party, err error) {
	var sum int64
	for _, b := range balances {
		sum += b.NetCents
	}
	if abs64(sum) > abs64(toleranceCents) {
		return nil, nil, &ImbalancedError{SumCents: sum, ToleranceCents: abs64(toleranceCents)}
	}

	nets := make([]PlayerBalance, 0, len(balances))
	for _, b := range balances {
		if b.NetCents != 0 {
			nets = append(nets, b)
		}
	}

	if sum != 0 && len(nets) > 0 {
		// Absorb the tolerated residue into the largest position.
		largest := 0
		for i := range nets {
			if abs64(nets[i].NetCents) > abs64(nets[largest].NetCents) {
				largest = i
			}
		}
		nets[largest].NetCents -= sum
		if nets[largest].NetCents == 0 {
			nets = append(nets[:largest], nets[largest+1:]...)
		}
	}

	for _, b := range nets {
		if b.NetCents < 0 {
			debtors = append(debtors, party{id: b.PlayerID, amount: -b.NetCents})
		} else {
			creditors = append(creditors, party{id: b.PlayerID, amount: b.NetCents})
		}
	}

	sortParties(debtors)
	sortParties(creditors)
	return debtors, creditors, nil
}

func sortParties(ps []party) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].amount != ps[j].amount {
			return ps[i].amount > ps[j].amount
		}
		return ps[i].id < ps[j].id
	})
}

// netGreedy repeatedly matches the largest remaining debtor against the
// largest remaining creditor. Each step retires at least one side, so the
// payment count is bounded by debtors+creditors-1.
func netGreedy(debtors, creditors []party) ([]Payment, error) {
	if len(debtors) == 0 && len(creditors) == 0 {
		return []Payment{}, nil
	}

	bound := len(debtors) + len(creditors) - 1
	payments := make([]Payment, 0, bound)

	d := append([]party(nil), debtors...)
	c := append([]party(nil), creditors...)

	i, j := 0, 0
	for i < len(d) && j < len(c) {
		if len(payments) >= bound {
			return nil, fmt.Errorf("settle: greedy netting exceeded %d payments", bound)
		}

		pay := d[i].amount
		if c[j].amount < pay {
			pay = c[j].amount
		}

		payments = append(payments, Payment{
			FromPlayerID: d[i].id,
			ToPlayerID:   c[j].id,
			AmountCents:  pay,
		})

		d[i].amount -= pay
		c[j].amount -= pay
		if d[i].amount == 0 {
			i++
		}
		if c[j].amount == 0 {
			j++
		}
	}

	if i < len(d) || j < len(c) {
		return nil, fmt.Errorf("settle: greedy netting left unmatched parties")
	}

	return payments, nil
}

func buildPlan(strategy string, payments []Payment, debtorCount, creditorCount int) *Plan {
	baseline := debtorCount * creditorCount
	reduction := 0.0
	if baseline > 0 {
		reduction = float64(baseline-len(payments)) / float64(baseline) * 100
	}
	return &Plan{
		Strategy:      strategy,
		Payments:      payments,
		PaymentCount:  len(payments),
		BaselineCount: baseline,
		ReductionPct:  reduction,
	}
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
