package classifier

import "arac/ar-rollforward/internal/models"

// Strategy annotates an account that has already been rolled forward and had
// its NRV computed. Implementations are total: every account gets a label.
type Strategy interface {
	// Classify writes the strategy's annotation onto acct.
	Classify(acct *models.Account)

	// Name returns the name of this strategy for logging and debugging purposes.
	Name() string
}
