// Package classifier derives each account's net realizable value and labels
// the account, either with a narrative description or with a theme.
package classifier

import (
	"fmt"

	"arac/ar-rollforward/internal/logging"
	"arac/ar-rollforward/internal/models"
)

// Classifier computes NRV and delegates labelling to a Strategy.
type Classifier struct {
	strategy Strategy
	mode     models.Mode
	logger   logging.Logger
}

// New returns a Classifier for mode. An empty mode means description.
func New(mode models.Mode, logger logging.Logger) (*Classifier, error) {
	if logger == nil {
		logger = logging.Nop()
	}

	var strategy Strategy
	switch mode {
	case models.ModeDescription, "":
		mode = models.ModeDescription
		strategy = NewNarrativeStrategy()
	case models.ModeTheme:
		strategy = NewThemeStrategy()
	default:
		return nil, fmt.Errorf("unknown classification mode %q", mode)
	}
	return NewWithStrategy(mode, strategy, logger), nil
}

// NewWithStrategy builds a Classifier around an arbitrary strategy.
func NewWithStrategy(mode models.Mode, strategy Strategy, logger logging.Logger) *Classifier {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Classifier{strategy: strategy, mode: mode, logger: logger}
}

// Mode returns the mode the classifier was built for.
func (c *Classifier) Mode() models.Mode {
	return c.mode
}

// Classify sets NRVBegin and NRVEnd on acct and applies the strategy.
func (c *Classifier) Classify(acct *models.Account) {
	acct.NRVBegin = acct.BeginBalance.Add(acct.ReserveBegin)
	acct.NRVEnd = acct.EndBalance.Add(acct.ReserveEnd)
	c.strategy.Classify(acct)
}

// ClassifyAll classifies every account.
func (c *Classifier) ClassifyAll(accounts []*models.Account) {
	for _, acct := range accounts {
		c.Classify(acct)
	}
	c.logger.Info("Accounts classified",
		logging.F(logging.FieldCount, len(accounts)),
		logging.F(logging.FieldMode, c.strategy.Name()))
}
