package classifier

import (
	"strings"

	"arac/ar-rollforward/internal/models"
)

// NarrativeStrategy writes a one-sentence description of the account's period
// into Description.
type NarrativeStrategy struct{}

// NewNarrativeStrategy creates a new NarrativeStrategy.
func NewNarrativeStrategy() *NarrativeStrategy {
	return &NarrativeStrategy{}
}

func (s *NarrativeStrategy) Name() string {
	return "narrative"
}

func (s *NarrativeStrategy) Classify(acct *models.Account) {
	acct.Description = Describe(acct)
}

// Describe builds the narrative for acct. NRVBegin and NRVEnd must be set.
func Describe(acct *models.Account) string {
	var b strings.Builder

	switch acct.NRVBegin.Sign() {
	case 1:
		b.WriteString("Positive beginning NRV ")
	case -1:
		b.WriteString("Negative beginning NRV ")
	default:
		b.WriteString("Zero beginning NRV ")
	}

	// Zero charges read the same as positive charges.
	if acct.Charges.IsNegative() {
		b.WriteString("having charge reversals, ")
	} else {
		b.WriteString("having charges, ")
	}

	if acct.BadDebtWO.IsPositive() {
		b.WriteString("bad debt reversal, ")
	}

	switch acct.Payments.Sign() {
	case -1:
		b.WriteString("cash receipts")
		covered := acct.NRVBegin.Add(acct.Charges).Add(acct.ReserveCharges)
		if acct.Payments.Abs().GreaterThan(covered) {
			b.WriteString(" in excess of beginning NRV + net charges")
		}
		b.WriteString(", ")
	case 1:
		b.WriteString("refunds, ")
	default:
		b.WriteString("no cash activity, ")
	}

	switch acct.NRVEnd.Sign() {
	case 1:
		b.WriteString("and ending in a debit NRV.")
	case -1:
		b.WriteString("and ending in a credit NRV.")
	default:
		b.WriteString("and ending in a zero NRV.")
	}

	return b.String()
}
