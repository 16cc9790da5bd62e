package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// LedgerStep is one named movement in a roll-forward and the running balance
// after it was posted.
type LedgerStep struct {
	Name    string
	Delta   decimal.Decimal
	Running decimal.Decimal
}

// Ledger is an ordered list of steps from an opening balance. Steps are
// append-only so their order is the order in which they were posted.
type Ledger struct {
	steps []LedgerStep
}

// NewLedger opens a ledger at the given balance.
func NewLedger(name string, opening decimal.Decimal) *Ledger {
	return &Ledger{
		steps: []LedgerStep{{Name: name, Delta: decimal.Zero, Running: opening}},
	}
}

// Post appends a movement and returns the new running balance.
func (l *Ledger) Post(name string, delta decimal.Decimal) decimal.Decimal {
	running := l.Balance().Add(delta)
	l.steps = append(l.steps, LedgerStep{Name: name, Delta: delta, Running: running})
	return running
}

// Balance returns the running balance after the last step.
func (l *Ledger) Balance() decimal.Decimal {
	if len(l.steps) == 0 {
		return decimal.Zero
	}
	return l.steps[len(l.steps)-1].Running
}

// Steps returns a copy of the posted steps, opening balance first.
func (l *Ledger) Steps() []LedgerStep {
	out := make([]LedgerStep, len(l.steps))
	copy(out, l.steps)
	return out
}

// String renders the ledger as an aligned two-column table.
func (l *Ledger) String() string {
	var b strings.Builder
	for _, s := range l.steps {
		fmt.Fprintf(&b, "%-18s %14s %14s\n", s.Name, s.Delta.StringFixed(CurrencyPlaces), s.Running.StringFixed(CurrencyPlaces))
	}
	return b.String()
}
