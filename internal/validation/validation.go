// Package validation checks user-supplied options before a compile starts.
package validation

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"arac/ar-rollforward/internal/models"
)

// Output formats understood by the report writers.
const (
	FormatXLSX    = "xlsx"
	FormatCSV     = "csv"
	FormatParquet = "parquet"
)

// OutputFormats lists the supported output formats.
var OutputFormats = []string{FormatXLSX, FormatCSV, FormatParquet}

// IsValidPath checks if a given path exists and is a file or directory.
func IsValidPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("path is empty")
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("path does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}

	if !info.IsDir() && !info.Mode().IsRegular() {
		return fmt.Errorf("path %s is neither a file nor a directory", path)
	}

	return nil
}

// IsValidOutputFormat checks if the given format is supported.
func IsValidOutputFormat(format string) error {
	switch format {
	case FormatXLSX, FormatCSV, FormatParquet:
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s. Supported formats are %s",
			format, strings.Join(OutputFormats, ", "))
	}
}

// IsValidMode checks if mode names a classification mode.
func IsValidMode(mode string) error {
	switch models.Mode(mode) {
	case models.ModeDescription, models.ModeTheme:
		return nil
	default:
		return fmt.Errorf("unsupported mode: %s. Supported modes are %s, %s",
			mode, models.ModeDescription, models.ModeTheme)
	}
}

// IsValidDelimiter checks that a CSV delimiter is a single usable rune.
func IsValidDelimiter(delimiter string) error {
	if utf8.RuneCountInString(delimiter) != 1 {
		return fmt.Errorf("delimiter must be a single character, got %q", delimiter)
	}
	r, _ := utf8.DecodeRuneInString(delimiter)
	if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return fmt.Errorf("invalid delimiter %q", delimiter)
	}
	return nil
}
