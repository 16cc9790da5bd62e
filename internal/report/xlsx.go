package report

import (
	"context"
	"fmt"
	"strings"

	"arac/ar-rollforward/internal/fileutils"
	"arac/ar-rollforward/internal/logging"
	"arac/ar-rollforward/internal/models"
	"arac/ar-rollforward/internal/validation"

	"github.com/xuri/excelize/v2"
)

const (
	tableStyle = "TableStyleMedium9"
	// accountingFormat is the built-in "#,##0.00" number format.
	accountingFormat = 4
)

// XLSXWriter writes each report table as a styled Excel table on its own sheet.
type XLSXWriter struct {
	logger logging.Logger
}

// NewXLSXWriter creates a new XLSXWriter.
func NewXLSXWriter(logger logging.Logger) *XLSXWriter {
	return &XLSXWriter{logger: logger}
}

func (w *XLSXWriter) Format() string {
	return validation.FormatXLSX
}

// sheetTable is one table to lay out on a sheet.
type sheetTable struct {
	sheet      string
	table      string
	columns    []string
	rows       [][]interface{}
	moneyFrom  int
	moneyUntil int
}

func (w *XLSXWriter) Write(ctx context.Context, path string, meta models.BatchMetadata, rep *Report) error {
	tables := []sheetTable{w.detailTable(rep)}
	if len(rep.Summary) > 0 {
		tables = append(tables, w.summaryTable(rep))
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			w.logger.WithError(err).Warn("Failed to close workbook")
		}
	}()

	defaultSheet := f.GetSheetName(0)
	for i, t := range tables {
		if err := ctx.Err(); err != nil {
			return err
		}
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, t.sheet); err != nil {
				return fmt.Errorf("error naming sheet %q: %w", t.sheet, err)
			}
		} else if _, err := f.NewSheet(t.sheet); err != nil {
			return fmt.Errorf("error creating sheet %q: %w", t.sheet, err)
		}
		if err := w.writeTable(f, t); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)

	if err := f.SetDocProps(docProps(meta, rep)); err != nil {
		return fmt.Errorf("error setting workbook properties: %w", err)
	}

	err := fileutils.WriteAtomic(path, func(tmpPath string) error {
		if err := f.SaveAs(tmpPath); err != nil {
			return fmt.Errorf("error saving workbook: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	w.logger.Info("Wrote workbook",
		logging.F(logging.FieldOutputFile, path),
		logging.F(logging.FieldCount, len(rep.Detail)))
	return nil
}

func (w *XLSXWriter) detailTable(rep *Report) sheetTable {
	columns := DetailColumns(rep.Mode)
	rows := make([][]interface{}, len(rep.Detail))
	for i, r := range rep.Detail {
		rows[i] = r.Cells(rep.Mode)
	}
	return sheetTable{
		sheet:      rep.Options.DetailSheet,
		table:      rep.Options.DetailTable,
		columns:    columns,
		rows:       rows,
		moneyFrom:  firstMoneyColumn,
		moneyUntil: len(columns) - 1,
	}
}

func (w *XLSXWriter) summaryTable(rep *Report) sheetTable {
	rows := make([][]interface{}, len(rep.Summary))
	for i, r := range rep.Summary {
		rows[i] = r.Cells()
	}
	return sheetTable{
		sheet:      rep.Options.SummarySheet,
		table:      rep.Options.SummaryTable,
		columns:    SummaryColumns,
		rows:       rows,
		moneyFrom:  2,
		moneyUntil: len(SummaryColumns),
	}
}

// writeTable writes the header and rows starting at A1, formats the money
// columns and registers the range as an Excel table.
func (w *XLSXWriter) writeTable(f *excelize.File, t sheetTable) error {
	header := make([]interface{}, len(t.columns))
	for i, c := range t.columns {
		header[i] = c
	}
	if err := f.SetSheetRow(t.sheet, "A1", &header); err != nil {
		return fmt.Errorf("error writing header on %q: %w", t.sheet, err)
	}

	for i, row := range t.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(t.sheet, cell, &row); err != nil {
			return fmt.Errorf("error writing row %d on %q: %w", i+2, t.sheet, err)
		}
	}

	style, err := f.NewStyle(&excelize.Style{NumFmt: accountingFormat})
	if err != nil {
		return fmt.Errorf("error creating number style: %w", err)
	}
	first, err := excelize.ColumnNumberToName(t.moneyFrom + 1)
	if err != nil {
		return err
	}
	last, err := excelize.ColumnNumberToName(t.moneyUntil)
	if err != nil {
		return err
	}
	if err := f.SetColStyle(t.sheet, first+":"+last, style); err != nil {
		return fmt.Errorf("error formatting money columns on %q: %w", t.sheet, err)
	}

	lastColumn, err := excelize.ColumnNumberToName(len(t.columns))
	if err != nil {
		return err
	}
	// An Excel table needs at least one data row.
	lastRow := len(t.rows) + 1
	if lastRow < 2 {
		lastRow = 2
	}
	stripes := true
	err = f.AddTable(t.sheet, &excelize.Table{
		Range:          fmt.Sprintf("A1:%s%d", lastColumn, lastRow),
		Name:           tableName(t.table),
		StyleName:      tableStyle,
		ShowRowStripes: &stripes,
	})
	if err != nil {
		return fmt.Errorf("error adding table %q: %w", t.table, err)
	}
	return nil
}

// tableName makes name acceptable as an Excel table name.
func tableName(name string) string {
	return strings.NewReplacer(" ", "_", "-", "_", ":", "_").Replace(name)
}

func docProps(meta models.BatchMetadata, rep *Report) *excelize.DocProperties {
	title := "AR roll-forward"
	if meta.Facility != "" {
		title += " - " + meta.Facility
	}
	return &excelize.DocProperties{
		Title:       title,
		Subject:     meta.Period(),
		Description: fmt.Sprintf("%d accounts from %s", meta.Accounts, strings.Join(meta.SourceFiles, ", ")),
		Keywords:    string(rep.Mode),
		Creator:     "arac",
	}
}
