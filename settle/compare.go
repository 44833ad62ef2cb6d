package settle

import (
	"fmt"
	"sort"
)

// Weights control how candidate plans are scored. They are relative: any
// non-negative values work and are renormalized to sum to one. The defaults
// are a starting point, not a contract; callers with their own taste pass
// their own.
type Weights struct {
	Efficiency float64 `json:"efficiency"` // fewer payments
	Fairness   float64 `json:"fairness"`   // less variance in payment sizes
	Simplicity float64 `json:"simplicity"` // fewer payments touching any one player
}

// DefaultWeights favors fewer transactions first.
var DefaultWeights = Weights{Efficiency: 0.5, Fairness: 0.3, Simplicity: 0.2}

// PlanMetrics are the raw figures a candidate is scored on.
type PlanMetrics struct {
	PaymentCount     int     `json:"payment_count"`
	FairnessVariance float64 `json:"fairness_variance"` // population variance of payment amounts, cents squared
	MaxPerPlayer     int     `json:"max_per_player"`    // most payments any single player takes part in
}

// ScoredPlan is one candidate with its score. Score is in [0,1], higher is
// better.
type ScoredPlan struct {
	Plan        *Plan       `json:"plan"`
	Metrics     PlanMetrics `json:"metrics"`
	Score       float64     `json:"score"`
	Recommended bool        `json:"recommended"`
}

// Comparison ranks every generated candidate, best first.
type Comparison struct {
	Candidates  []ScoredPlan `json:"candidates"`
	Recommended *Plan        `json:"recommended"`
	Weights     Weights      `json:"weights"`
}

// Compare generates a candidate plan per strategy (greedy, hub, direct),
// scores each on efficiency, fairness and simplicity, and flags the top
// scorer as recommended. Every candidate is validated before scoring; a
// candidate that fails validation aborts the comparison.
func Compare(balances []PlayerBalance, weights Weights, opts Options) (*Comparison, error) {
	debtors, creditors, err := partition(balances, opts.ToleranceCents)
	if err != nil {
		return nil, err
	}

	hub, err := resolveHub(balances, creditors, opts.Hub)
	if err != nil {
		return nil, err
	}

	greedyPays, err := netGreedy(debtors, creditors)
	if err != nil {
		return nil, err
	}

	candidates := []*Plan{
		buildPlan(StrategyGreedy, greedyPays, len(debtors), len(creditors)),
		buildPlan(StrategyHub, netHub(debtors, creditors, hub), len(debtors), len(creditors)),
		buildPlan(StrategyDirect, netDirect(debtors, creditors), len(debtors), len(creditors)),
	}

	// Candidates are checked against the post-tolerance balances the netting
	// actually ran on, so the check is always exact.
	adjusted := adjustedBalances(debtors, creditors)
	for _, p := range candidates {
		if res := Validate(p, adjusted); !res.Valid {
			return nil, fmt.Errorf("settle: %s candidate failed validation: %+v", p.Strategy, res.Discrepancies)
		}
	}

	scored := scoreCandidates(candidates, normalizeWeights(weights))

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		if scored[i].Metrics.PaymentCount != scored[j].Metrics.PaymentCount {
			return scored[i].Metrics.PaymentCount < scored[j].Metrics.PaymentCount
		}
		return scored[i].Plan.Strategy < scored[j].Plan.Strategy
	})

	cmp := &Comparison{Candidates: scored, Weights: normalizeWeights(weights)}
	if len(scored) > 0 {
		cmp.Candidates[0].Recommended = true
		cmp.Recommended = cmp.Candidates[0].Plan
	}
	return cmp, nil
}

func resolveHub(balances []PlayerBalance, creditors []party, hub string) (string, error) {
	if hub == "" {
		if len(creditors) > 0 {
			return creditors[0].id, nil
		}
		return "", nil
	}
	for _, b := range balances {
		if b.PlayerID == hub {
			return hub, nil
		}
	}
	return "", ErrUnknownHub
}

// netHub routes everything through one player: every debtor pays the hub,
// the hub pays every creditor. The hub's own position is settled by the
// difference between what flows in and out.
func netHub(debtors, creditors []party, hub string) []Payment {
	if len(debtors) == 0 || len(creditors) == 0 || hub == "" {
		return []Payment{}
	}

	payments := make([]Payment, 0, len(debtors)+len(creditors))
	for _, d := range debtors {
		if d.id == hub {
			continue
		}
		payments = append(payments, Payment{FromPlayerID: d.id, ToPlayerID: hub, AmountCents: d.amount})
	}
	for _, c := range creditors {
		if c.id == hub {
			continue
		}
		payments = append(payments, Payment{FromPlayerID: hub, ToPlayerID: c.id, AmountCents: c.amount})
	}
	return payments
}

// netDirect is the unoptimized baseline: each debtor pays each creditor a
// pro-rata share of what the creditor is still owed. Shares are floored and
// the leftover cents go to the first creditors with room, so every amount
// stays an exact integer and the books still close.
func netDirect(debtors, creditors []party) []Payment {
	remaining := append([]party(nil), creditors...)
	var totalRemaining int64
	for _, c := range remaining {
		totalRemaining += c.amount
	}

	payments := make([]Payment, 0, len(debtors)*len(creditors))
	for _, d := range debtors {
		owe := d.amount
		alloc := make([]int64, len(remaining))
		var allocated int64
		for k := range remaining {
			if remaining[k].amount == 0 {
				continue
			}
			share := owe * remaining[k].amount / totalRemaining
			if share > remaining[k].amount {
				share = remaining[k].amount
			}
			alloc[k] = share
			allocated += share
		}

		leftover := owe - allocated
		for k := 0; k < len(remaining) && leftover > 0; k++ {
			room := remaining[k].amount - alloc[k]
			if room <= 0 {
				continue
			}
			add := leftover
			if add > room {
				add = room
			}
			alloc[k] += add
			leftover -= add
		}

		for k := range alloc {
			if alloc[k] == 0 {
				continue
			}
			payments = append(payments, Payment{FromPlayerID: d.id, ToPlayerID: remaining[k].id, AmountCents: alloc[k]})
			remaining[k].amount -= alloc[k]
			totalRemaining -= alloc[k]
		}
	}
	return payments
}

func adjustedBalances(debtors, creditors []party) []PlayerBalance {
	out := make([]PlayerBalance, 0, len(debtors)+len(creditors))
	for _, d := range debtors {
		out = append(out, PlayerBalance{PlayerID: d.id, NetCents: -d.amount})
	}
	for _, c := range creditors {
		out = append(out, PlayerBalance{PlayerID: c.id, NetCents: c.amount})
	}
	return out
}

func scoreCandidates(plans []*Plan, w Weights) []ScoredPlan {
	scored := make([]ScoredPlan, len(plans))

	counts := make([]float64, len(plans))
	variances := make([]float64, len(plans))
	maxPers := make([]float64, len(plans))
	for i, p := range plans {
		m := planMetrics(p)
		scored[i] = ScoredPlan{Plan: p, Metrics: m}
		counts[i] = float64(m.PaymentCount)
		variances[i] = m.FairnessVariance
		maxPers[i] = float64(m.MaxPerPlayer)
	}

	for i := range scored {
		scored[i].Score = w.Efficiency*invNorm(counts, counts[i]) +
			w.Fairness*invNorm(variances, variances[i]) +
			w.Simplicity*invNorm(maxPers, maxPers[i])
	}
	return scored
}

func planMetrics(p *Plan) PlanMetrics {
	m := PlanMetrics{PaymentCount: len(p.Payments)}
	if len(p.Payments) == 0 {
		return m
	}

	var sum int64
	for _, pay := range p.Payments {
		sum += pay.AmountCents
	}
	mean := float64(sum) / float64(len(p.Payments))
	for _, pay := range p.Payments {
		d := float64(pay.AmountCents) - mean
		m.FairnessVariance += d * d
	}
	m.FairnessVariance /= float64(len(p.Payments))

	per := make(map[string]int)
	for _, pay := range p.Payments {
		per[pay.FromPlayerID]++
		per[pay.ToPlayerID]++
	}
	for _, n := range per {
		if n > m.MaxPerPlayer {
			m.MaxPerPlayer = n
		}
	}
	return m
}

// invNorm min-max normalizes v against all values and inverts it, so lower
// raw figures score closer to 1. A metric with no spread scores 1 for every
// candidate.
func invNorm(all []float64, v float64) float64 {
	lo, hi := all[0], all[0]
	for _, x := range all {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	if hi == lo {
		return 1
	}
	return (hi - v) / (hi - lo)
}

func normalizeWeights(w Weights) Weights {
	if w.Efficiency < 0 {
		w.Efficiency = 0
	}
	if w.Fairness < 0 {
		w.Fairness = 0
	}
	if w.Simplicity < 0 {
		w.Simplicity = 0
	}
	total := w.Efficiency + w.Fairness + w.Simplicity
	if total == 0 {
		return DefaultWeights
	}
	return Weights{
		Efficiency: w.Efficiency / total,
		Fairness:   w.Fairness / total,
		Simplicity: w.Simplicity / total,
	}
}
