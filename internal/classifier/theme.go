package classifier

import "arac/ar-rollforward/internal/models"

// ThemeStrategy sorts accounts into a fixed set of themes.
type ThemeStrategy struct{}

// NewThemeStrategy creates a new ThemeStrategy.
func NewThemeStrategy() *ThemeStrategy {
	return &ThemeStrategy{}
}

func (s *ThemeStrategy) Name() string {
	return "theme"
}

func (s *ThemeStrategy) Classify(acct *models.Account) {
	acct.Theme = ThemeOf(acct)
}

// ThemeOf picks the theme for acct. New accounts are themed by their charges;
// everything else by the sign of the beginning NRV, and net debit accounts
// further by their cash activity and ending NRV.
func ThemeOf(acct *models.Account) models.Theme {
	if acct.IsNew() {
		switch acct.Charges.Sign() {
		case 1:
			return models.ThemeNewWithCharges
		case -1:
			return models.ThemeNewWithChargeReversal
		default:
			return models.ThemeNewWithoutCharges
		}
	}

	switch acct.NRVBegin.Sign() {
	case -1:
		return models.ThemeCredit
	case 0:
		if acct.Charges.IsZero() && acct.Payments.IsZero() {
			return models.ThemeZeroNoActivity
		}
		return models.ThemeZeroOther
	}

	switch acct.Payments.Sign() {
	case 1:
		return models.ThemeDebitRefunds
	case 0:
		return models.ThemeDebitNoCash
	}

	excess := acct.Payments.Abs().GreaterThan(acct.NRVBegin.Add(acct.Charges))
	switch acct.NRVEnd.Sign() {
	case 1:
		if excess {
			return models.ThemeDebitExcessReceiptsDebit
		}
		return models.ThemeDebitReceiptsDebit
	case -1:
		if excess {
			return models.ThemeDebitExcessReceiptsCredit
		}
		return models.ThemeDebitReceiptsCredit
	default:
		if excess {
			return models.ThemeDebitExcessReceiptsZero
		}
		return models.ThemeDebitReceiptsZero
	}
}
