package models

import (
	"fmt"
	"time"
)

// BatchMetadata describes a whole compile run. It is derived once from the
// complete set of loaded accounts rather than from whichever row came first.
type BatchMetadata struct {
	Facility    string
	StartDate   time.Time
	EndDate     time.Time
	Accounts    int
	SourceFiles []string
}

// NewBatchMetadata computes metadata over accounts. Facility is the first
// non-empty facility in load order; the period spans the earliest start date
// to the latest end date.
func NewBatchMetadata(accounts []*Account, sourceFiles []string) BatchMetadata {
	meta := BatchMetadata{
		Accounts:    len(accounts),
		SourceFiles: append([]string(nil), sourceFiles...),
	}
	for _, acct := range accounts {
		if meta.Facility == "" && acct.Facility != "" {
			meta.Facility = acct.Facility
		}
		if !acct.StartDate.IsZero() && (meta.StartDate.IsZero() || acct.StartDate.Before(meta.StartDate)) {
			meta.StartDate = acct.StartDate
		}
		if acct.EndDate.After(meta.EndDate) {
			meta.EndDate = acct.EndDate
		}
	}
	return meta
}

// Period renders the covered period as "MM/DD/YYYY - MM/DD/YYYY", or an empty
// string when no dates were loaded.
func (m BatchMetadata) Period() string {
	if m.StartDate.IsZero() || m.EndDate.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s - %s", m.StartDate.Format("01/02/2006"), m.EndDate.Format("01/02/2006"))
}
