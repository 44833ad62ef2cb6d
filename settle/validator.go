package settle

import "sort"

// Validate independently re-checks that a plan settles the given balances.
// For every player, payments received minus payments sent must equal the
// player's net balance exactly; there is no tolerance here. The check is
// read-only: a failing result is a signal to discard the plan and recompute,
// never to repair it.
func Validate(plan *Plan, balances []PlayerBalance) ValidationResult {
	res := ValidationResult{Discrepancies: []Discrepancy{}}

	known := make(map[string]int64, len(balances))
	for _, b := range balances {
		known[b.PlayerID] = b.NetCents
	}

	sent := make(map[string]int64)
	received := make(map[string]int64)

	var payments []Payment
	if plan != nil {
		payments = plan.Payments
	}

	for _, p := range payments {
		res.TotalDebitCents += p.AmountCents
		res.TotalCreditCents += p.AmountCents
		sent[p.FromPlayerID] += p.AmountCents
		received[p.ToPlayerID] += p.AmountCents

		if p.AmountCents <= 0 {
			res.Discrepancies = append(res.Discrepancies, Discrepancy{
				PlayerID:         p.FromPlayerID,
				ExpectedNetCents: known[p.FromPlayerID],
				ActualNetCents:   p.AmountCents,
				Reason:           "non-positive payment amount",
			})
		}
		if p.FromPlayerID == p.ToPlayerID {
			res.Discrepancies = append(res.Discrepancies, Discrepancy{
				PlayerID: p.FromPlayerID,
				Reason:   "self payment",
			})
		}
	}

	for _, b := range balances {
		actual := received[b.PlayerID] - sent[b.PlayerID]
		if actual != b.NetCents {
			res.Discrepancies = append(res.Discrepancies, Discrepancy{
				PlayerID:         b.PlayerID,
				ExpectedNetCents: b.NetCents,
				ActualNetCents:   actual,
				DiffCents:        actual - b.NetCents,
				Reason:           "net mismatch",
			})
		}
	}

	// Payments naming players that are not in the balance list at all.
	strangers := make(map[string]bool)
	for id := range sent {
		if _, ok := known[id]; !ok {
			strangers[id] = true
		}
	}
	for id := range received {
		if _, ok := known[id]; !ok {
			strangers[id] = true
		}
	}
	ids := make([]string, 0, len(strangers))
	for id := range strangers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		actual := received[id] - sent[id]
		res.Discrepancies = append(res.Discrepancies, Discrepancy{
			PlayerID:       id,
			ActualNetCents: actual,
			DiffCents:      actual,
			Reason:         "player not in balance list",
		})
	}

	res.Valid = len(res.Discrepancies) == 0
	return res
}
