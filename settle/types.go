package settle

// PlayerBalance is one player's final position for the night, in integer
// cents. NetCents is cash-outs minus buy-ins: negative means the player owes
// money, positive means the player is owed money.
type PlayerBalance struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	NetCents int64  `json:"net_cents"`
}

// Payment is a single settle-up transfer from a debtor to a creditor.
// AmountCents is always positive.
type Payment struct {
	FromPlayerID string `json:"from_player_id"`
	ToPlayerID   string `json:"to_player_id"`
	AmountCents  int64  `json:"amount_cents"`
}

// Plan is an ordered list of payments that zeroes every balance, plus the
// metrics derived from it. BaselineCount is the payment count of the naive
// everyone-pays-everyone plan (debtors x creditors); ReductionPct is the
// percentage saved against that baseline.
type Plan struct {
	Strategy      string    `json:"strategy"`
	Payments      []Payment `json:"payments"`
	PaymentCount  int       `json:"payment_count"`
	BaselineCount int       `json:"baseline_count"`
	ReductionPct  float64   `json:"reduction_pct"`
}

// Options tunes plan computation.
type Options struct {
	// ToleranceCents is the largest |sum of balances| still accepted as
	// balanced. Default 0: the input must sum to exactly zero. A residue
	// inside the tolerance is folded into the largest-magnitude balance so
	// the emitted plan is still exactly zero-sum.
	ToleranceCents int64

	// Hub designates the player the hub strategy routes payments through.
	// Empty picks the largest creditor.
	Hub string
}

// Strategy names carried on plans.
const (
	StrategyGreedy = "greedy"
	StrategyHub    = "hub"
	StrategyDirect = "direct"
)

// ValidationResult is the outcome of independently re-checking a plan
// against the balances it claims to settle.
type ValidationResult struct {
	Valid            bool          `json:"valid"`
	Discrepancies    []Discrepancy `json:"discrepancies"`
	TotalDebitCents  int64         `json:"total_debit_cents"`
	TotalCreditCents int64         `json:"total_credit_cents"`
}

// Discrepancy pinpoints one player whose payments do not reconcile with
// their balance.
type Discrepancy struct {
	PlayerID         string `json:"player_id"`
	ExpectedNetCents int64  `json:"expected_net_cents"`
	ActualNetCents   int64  `json:"actual_net_cents"`
	DiffCents        int64  `json:"diff_cents"`
	Reason           string `json:"reason"`
}

// party is a debtor or creditor with the magnitude still outstanding.
type party struct {
	id     string
	amount int64
}
