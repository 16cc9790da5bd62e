// Package arerror defines the typed errors raised while loading and reconciling
// an AR roll-forward. Every error here is fatal to a compile run.
package arerror

import (
	"errors"
	"fmt"
	"strings"

	"arac/ar-rollforward/internal/currencyutils"
	"arac/ar-rollforward/internal/models"
)

// ErrReconciliation is matched by every *ReconciliationError via errors.Is.
var ErrReconciliation = errors.New("roll-forward does not reconcile")

// ErrNoAccounts is returned when the inputs contain no account rows.
var ErrNoAccounts = errors.New("no account records found")

// ReconciliationKind says which roll-forward failed to close.
type ReconciliationKind string

const (
	KindBalance ReconciliationKind = "balance"
	KindReserve ReconciliationKind = "reserve"
)

// ReconciliationError reports an account whose roll-forward does not close.
// Ledger carries the intermediate steps for diagnostics.
type ReconciliationError struct {
	Kind     ReconciliationKind
	Account  int64
	Expected string
	Actual   string
	Ledger   []models.LedgerStep
}

func (e *ReconciliationError) Error() string {
	switch e.Kind {
	case KindReserve:
		return fmt.Sprintf("ending reserve balance for account %d does not recalculate: expected %s, got %s",
			e.Account, e.Expected, e.Actual)
	default:
		return fmt.Sprintf("ending balance for account %d does not recalculate: expected %s, got %s",
			e.Account, e.Expected, e.Actual)
	}
}

// Is lets callers test for ErrReconciliation.
func (e *ReconciliationError) Is(target error) bool {
	return target == ErrReconciliation
}

// LedgerString renders the attached ledger one step per line in accounting
// notation, negatives in parentheses.
func (e *ReconciliationError) LedgerString() string {
	var b strings.Builder
	for _, s := range e.Ledger {
		fmt.Fprintf(&b, "%-18s %16s %16s\n", s.Name, currencyutils.FormatAccounting(s.Delta), currencyutils.FormatAccounting(s.Running))
	}
	return b.String()
}

// ParseError represents a source value that could not be converted.
type ParseError struct {
	FilePath string
	Line     int
	Field    string
	Value    string
	Err      error
}

func (e *ParseError) Error() string {
	if e.FilePath == "" {
		return fmt.Sprintf("failed to parse %s='%s': %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("%s:%d: failed to parse %s='%s': %v",
		e.FilePath, e.Line, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// InvalidFormatError represents an input file that lacks required column headers.
type InvalidFormatError struct {
	FilePath string
	Missing  []string
	Msg      string
}

func (e *InvalidFormatError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("invalid format in file '%s': %s. Missing headers: %s",
			e.FilePath, e.Msg, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("invalid format in file '%s': %s", e.FilePath, e.Msg)
}

// DuplicateAccountError reports an account number seen more than once.
type DuplicateAccountError struct {
	Account   int64
	FilePath  string
	Line      int
	FirstFile string
	FirstLine int
}

func (e *DuplicateAccountError) Error() string {
	return fmt.Sprintf("duplicate account number %d at %s:%d (first seen at %s:%d)",
		e.Account, e.FilePath, e.Line, e.FirstFile, e.FirstLine)
}

// CrosswalkError reports a malformed or incomplete column header crosswalk.
type CrosswalkError struct {
	FilePath string
	Line     int
	Missing  []string
	Unknown  []string
	Msg      string
}

func (e *CrosswalkError) Error() string {
	var parts []string
	if e.Msg != "" {
		parts = append(parts, e.Msg)
	}
	if len(e.Missing) > 0 {
		parts = append(parts, "missing: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Unknown) > 0 {
		parts = append(parts, "unknown: "+strings.Join(e.Unknown, ", "))
	}
	location := e.FilePath
	if e.Line > 0 {
		location = fmt.Sprintf("%s:%d", e.FilePath, e.Line)
	}
	return fmt.Sprintf("invalid column header crosswalk %s: %s", location, strings.Join(parts, "; "))
}
