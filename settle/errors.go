package settle

import (
	"errors"
	"fmt"
)

// ImbalancedError reports input balances that do not sum to zero within the
// configured tolerance. It is fatal: the caller must fix the ledger upstream,
// the engine never papers over it.
type ImbalancedError struct {
	SumCents       int64
	ToleranceCents int64
}

func (e *ImbalancedError) Error() string {
	return fmt.Sprintf("balances sum to %d cents, want 0 (tolerance %d)", e.SumCents, e.ToleranceCents)
}

// ErrUnknownHub is returned when Options.Hub names a player that is not in
// the balance list.
var ErrUnknownHub = errors.New("settle: hub player not found in balances")
