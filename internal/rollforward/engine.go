// Package rollforward reconciles each account's balance roll-forward and
// apportions its reserve across the same activity.
package rollforward

import (
	"context"

	"arac/ar-rollforward/internal/arerror"
	"arac/ar-rollforward/internal/logging"
	"arac/ar-rollforward/internal/models"

	"github.com/shopspring/decimal"
)

// Engine enriches accounts with their reserve roll-forward.
type Engine struct {
	logger logging.Logger
}

// NewEngine creates a new Engine.
func NewEngine(logger logging.Logger) *Engine {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Engine{logger: logger}
}

// Apply validates acct's balance roll-forward and fills its reserve activity,
// releases, valuation and NPSR impact. Every derived field is recomputed from
// the source fields, so applying twice gives the same result.
func (e *Engine) Apply(acct *models.Account) error {
	if err := reconcileBalance(acct); err != nil {
		return err
	}

	reserve := models.NewLedger(models.FieldReserveBegin, acct.ReserveBegin)
	cumBal := acct.BeginBalance
	for _, a := range models.Activities() {
		amount := acct.Amount(a)
		share := Apportion(amount, cumBal, reserve.Balance())
		acct.SetReserve(a, share)
		reserve.Post(a.ReserveField(), share)
		cumBal = cumBal.Add(amount)
	}

	cumRsv := reserve.Balance()
	valuation := models.Round2(acct.ReserveEnd.Sub(cumRsv))
	reserve.Post(models.FieldReserveValuation, valuation)
	if !models.EqualCents(cumRsv.Add(valuation), acct.ReserveEnd) {
		return &arerror.ReconciliationError{
			Kind:     arerror.KindReserve,
			Account:  acct.Number,
			Expected: models.Round2(acct.ReserveEnd).StringFixed(models.CurrencyPlaces),
			Actual:   models.Round2(reserve.Balance()).StringFixed(models.CurrencyPlaces),
			Ledger:   reserve.Steps(),
		}
	}

	acct.ReserveValuation = valuation
	acct.ReserveReleases = decimal.Zero
	if IsCashRelease(acct) {
		acct.ReserveReleases = valuation
		acct.ReserveValuation = decimal.Zero
	}

	acct.NPSRImpact = NPSRImpact(acct)

	e.logger.Debug("Account rolled forward",
		logging.F(logging.FieldAccount, acct.Number),
		logging.F("valuation", acct.ReserveValuation.StringFixed(models.CurrencyPlaces)),
		logging.F("releases", acct.ReserveReleases.StringFixed(models.CurrencyPlaces)))
	return nil
}

// reconcileBalance posts the activity and payments onto the beginning balance
// and checks the result against the recorded ending balance.
func reconcileBalance(acct *models.Account) error {
	ledger := models.NewLedger(models.FieldBeginBalance, acct.BeginBalance)
	for _, a := range models.Activities() {
		ledger.Post(a.String(), acct.Amount(a))
	}
	ledger.Post(models.FieldPayments, acct.Payments)

	if !models.EqualCents(ledger.Balance(), acct.EndBalance) {
		return &arerror.ReconciliationError{
			Kind:     arerror.KindBalance,
			Account:  acct.Number,
			Expected: models.Round2(acct.EndBalance).StringFixed(models.CurrencyPlaces),
			Actual:   models.Round2(ledger.Balance()).StringFixed(models.CurrencyPlaces),
			Ledger:   ledger.Steps(),
		}
	}
	return nil
}

// ApplyAll applies the engine to every account in order and stops at the
// first failure.
func (e *Engine) ApplyAll(ctx context.Context, accounts []*models.Account) error {
	for _, acct := range accounts {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.Apply(acct); err != nil {
			e.logger.WithError(err).Error("Account does not reconcile",
				logging.F(logging.FieldAccount, acct.Number),
				logging.F(logging.FieldFile, acct.SourceFile),
				logging.F(logging.FieldLine, acct.SourceLine))
			return err
		}
	}
	e.logger.Info("Roll-forward reconciled", logging.F(logging.FieldCount, len(accounts)))
	return nil
}

// Apportion returns the reserve share of one activity step: the step's
// fraction of the balance outstanding before it, applied to the reserve
// outstanding before it, rounded to cents. A zero outstanding balance
// apportions nothing.
func Apportion(amount, cumBalance, cumReserve decimal.Decimal) decimal.Decimal {
	if cumBalance.IsZero() {
		return decimal.Zero
	}
	return amount.Mul(cumReserve).DivRound(cumBalance, models.CurrencyPlaces)
}

// IsCashRelease reports whether the valuation on acct should be reclassified
// as a release: a reserved account paid down to a zero reserve through net
// cash receipts with a positive valuation.
func IsCashRelease(acct *models.Account) bool {
	return acct.ReserveBegin.IsNegative() &&
		acct.ReserveEnd.IsZero() &&
		acct.Payments.IsNegative() &&
		acct.ReserveValuation.IsPositive()
}

// NPSRImpact is the account's net patient service revenue for the period:
// non-cash balance movement plus the change in reserve.
func NPSRImpact(acct *models.Account) decimal.Decimal {
	nonCash := acct.EndBalance.Sub(acct.Payments).Sub(acct.BeginBalance)
	return nonCash.Add(acct.ReserveEnd.Sub(acct.ReserveBegin))
}
