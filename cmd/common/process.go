// Package common contains shared functionality for command handlers
package common

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"arac/ar-rollforward/internal/arerror"
	"arac/ar-rollforward/internal/config"
	"arac/ar-rollforward/internal/report"
	"arac/ar-rollforward/internal/validation"
)

// ResolveInputs combines --input values with positional arguments. With
// neither, the configured input directory is used.
func ResolveInputs(flagInputs, args []string, cfg *config.Config) ([]string, error) {
	inputs := make([]string, 0, len(flagInputs)+len(args))
	inputs = append(inputs, flagInputs...)
	inputs = append(inputs, args...)
	if len(inputs) == 0 && cfg != nil && cfg.Input.Directory != "" {
		inputs = append(inputs, cfg.Input.Directory)
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("no input given: pass --input or set input.directory")
	}

	for _, in := range inputs {
		if err := validation.IsValidPath(in); err != nil {
			return nil, fmt.Errorf("invalid input: %w", err)
		}
	}
	return inputs, nil
}

// ResolveFormat picks the output format. An explicit --format wins, then the
// output file's extension, then the configured default. A --format that
// contradicts the output extension is an error.
func ResolveFormat(output, format string, cfg *config.Config) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format != "" {
		if err := validation.IsValidOutputFormat(format); err != nil {
			return "", err
		}
	}

	if output != "" {
		fromPath, err := report.FormatFromPath(output)
		if err != nil {
			return "", err
		}
		if format != "" && format != fromPath {
			return "", fmt.Errorf("--format %s does not match output file %s", format, output)
		}
		return fromPath, nil
	}

	if format != "" {
		return format, nil
	}
	return cfg.Report.Format, nil
}

// PrintFailure writes the diagnostic detail of err to w. Reconciliation
// failures include the ledger that failed to close.
func PrintFailure(w io.Writer, err error) {
	var recErr *arerror.ReconciliationError
	if errors.As(err, &recErr) && len(recErr.Ledger) > 0 {
		fmt.Fprintf(w, "Ledger for account %d:\n%s", recErr.Account, recErr.LedgerString())
	}
}
