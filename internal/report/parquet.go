package report

import (
	"context"
	"fmt"
	"os"

	"arac/ar-rollforward/internal/dateutils"
	"arac/ar-rollforward/internal/fileutils"
	"arac/ar-rollforward/internal/logging"
	"arac/ar-rollforward/internal/models"
	"arac/ar-rollforward/internal/validation"

	"github.com/parquet-go/parquet-go"
)

// ParquetWriter writes the detail table as a Parquet file. Both the
// description and theme columns are present; the one not used by the mode is
// empty.
type ParquetWriter struct {
	logger logging.Logger
}

// NewParquetWriter creates a new ParquetWriter.
func NewParquetWriter(logger logging.Logger) *ParquetWriter {
	return &ParquetWriter{logger: logger}
}

func (w *ParquetWriter) Format() string {
	return validation.FormatParquet
}

func (w *ParquetWriter) Write(ctx context.Context, path string, meta models.BatchMetadata, rep *Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := fileutils.WriteAtomic(path, func(tmpPath string) error {
		file, err := os.Create(tmpPath) // #nosec G304 -- temporary file next to the report
		if err != nil {
			return fmt.Errorf("error creating parquet file: %w", err)
		}

		writer := parquet.NewGenericWriter[DetailRow](file,
			parquet.KeyValueMetadata("facility", meta.Facility),
			parquet.KeyValueMetadata("period", meta.Period()),
			parquet.KeyValueMetadata("period_start", dateutils.FormatISO(meta.StartDate)),
			parquet.KeyValueMetadata("period_end", dateutils.FormatISO(meta.EndDate)),
			parquet.KeyValueMetadata("mode", string(rep.Mode)),
		)
		if _, err := writer.Write(rep.Detail); err != nil {
			_ = file.Close()
			return fmt.Errorf("error writing parquet rows: %w", err)
		}
		if err := writer.Close(); err != nil {
			_ = file.Close()
			return fmt.Errorf("error closing parquet writer: %w", err)
		}
		return file.Close()
	})
	if err != nil {
		return err
	}

	w.logger.Info("Wrote parquet report",
		logging.F(logging.FieldOutputFile, path),
		logging.F(logging.FieldCount, len(rep.Detail)))
	return nil
}
