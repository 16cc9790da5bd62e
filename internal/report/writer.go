package report

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"arac/ar-rollforward/internal/logging"
	"arac/ar-rollforward/internal/models"
	"arac/ar-rollforward/internal/validation"
)

// Writer persists a report. Implementations write atomically: on error no
// file is left at path.
type Writer interface {
	Write(ctx context.Context, path string, meta models.BatchMetadata, rep *Report) error

	// Format returns the output format, which is also the file extension.
	Format() string
}

// NewWriter returns the writer for format.
func NewWriter(format string, delimiter rune, logger logging.Logger) (Writer, error) {
	if logger == nil {
		logger = logging.Nop()
	}
	switch strings.ToLower(format) {
	case validation.FormatXLSX:
		return NewXLSXWriter(logger), nil
	case validation.FormatCSV:
		return NewCSVWriter(delimiter, logger), nil
	case validation.FormatParquet:
		return NewParquetWriter(logger), nil
	default:
		return nil, validation.IsValidOutputFormat(format)
	}
}

// FormatFromPath infers the output format from a file extension.
func FormatFromPath(path string) (string, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return "", fmt.Errorf("output file %s has no extension", path)
	}
	if err := validation.IsValidOutputFormat(ext); err != nil {
		return "", err
	}
	return ext, nil
}
