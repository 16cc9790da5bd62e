package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"arac/ar-rollforward/internal/fileutils"
	"arac/ar-rollforward/internal/logging"
	"arac/ar-rollforward/internal/models"
	"arac/ar-rollforward/internal/validation"

	"github.com/gocarina/gocsv"
)

// CSVWriter writes the detail table as delimited text.
type CSVWriter struct {
	delimiter rune
	logger    logging.Logger
}

// NewCSVWriter creates a new CSVWriter. A zero delimiter means comma.
func NewCSVWriter(delimiter rune, logger logging.Logger) *CSVWriter {
	if delimiter == 0 {
		delimiter = ','
	}
	return &CSVWriter{delimiter: delimiter, logger: logger}
}

func (w *CSVWriter) Format() string {
	return validation.FormatCSV
}

// descriptionRow and themeRow add the mode's label column after the shared
// detail columns.
type descriptionRow struct {
	DetailRow
	Label string `csv:"Description"`
}

type themeRow struct {
	DetailRow
	Label string `csv:"Theme"`
}

func (w *CSVWriter) Write(ctx context.Context, path string, meta models.BatchMetadata, rep *Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var rows interface{}
	if rep.Mode == models.ModeTheme {
		out := make([]themeRow, len(rep.Detail))
		for i, r := range rep.Detail {
			out[i] = themeRow{DetailRow: r, Label: r.Theme}
		}
		rows = out
	} else {
		out := make([]descriptionRow, len(rep.Detail))
		for i, r := range rep.Detail {
			out[i] = descriptionRow{DetailRow: r, Label: r.Description}
		}
		rows = out
	}

	err := fileutils.WriteAtomic(path, func(tmpPath string) error {
		file, err := os.Create(tmpPath) // #nosec G304 -- temporary file next to the report
		if err != nil {
			return fmt.Errorf("error creating CSV file: %w", err)
		}

		csvWriter := csv.NewWriter(file)
		csvWriter.Comma = w.delimiter
		if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
			_ = file.Close()
			return fmt.Errorf("error writing CSV data: %w", err)
		}
		return file.Close()
	})
	if err != nil {
		return err
	}

	w.logger.Info("Wrote CSV report",
		logging.F(logging.FieldOutputFile, path),
		logging.F(logging.FieldFacility, meta.Facility),
		logging.F(logging.FieldCount, len(rep.Detail)))
	return nil
}
