package loader

import (
	"fmt"
	"strconv"
	"strings"

	"arac/ar-rollforward/internal/arerror"
	"arac/ar-rollforward/internal/dateutils"
	"arac/ar-rollforward/internal/logging"
	"arac/ar-rollforward/internal/models"

	"github.com/xuri/excelize/v2"
)

// loadWorkbook reads the first sheet of an xlsx extract. The first row holds
// the column headers. Cells are read raw so amounts keep full precision and
// date cells arrive as serial numbers rather than display text.
func (l *Loader) loadWorkbook(path string) ([]*models.Account, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("error opening workbook: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			l.logger.WithError(cerr).Warn("Failed to close workbook", logging.F(logging.FieldFile, path))
		}
	}()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, &arerror.InvalidFormatError{FilePath: path, Msg: "workbook has no sheets"}
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("error reading sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, &arerror.InvalidFormatError{FilePath: path, Msg: "file is empty"}
	}

	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}
	dateHeaders := map[string]bool{
		l.crosswalk.Header(models.FieldStartDate): true,
		l.crosswalk.Header(models.FieldEndDate):   true,
	}

	header := normalizeHeader(rows[0])
	records := make([]record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		values := make(map[string]string, len(header))
		for j, h := range header {
			if j >= len(row) {
				break
			}
			if _, dup := values[h]; dup {
				continue
			}
			cell := row[j]
			if dateHeaders[h] {
				cell = excelDate(cell, date1904)
			}
			values[h] = cell
		}
		records = append(records, record{line: i + 2, values: values})
	}

	l.logger.Debug("Reading worksheet",
		logging.F(logging.FieldFile, path),
		logging.F("sheet", sheet),
		logging.F(logging.FieldCount, len(records)))
	return l.parseTable(path, header, records)
}

// excelDate renders a numeric date serial as MM/DD/YYYY. Text dates pass
// through unchanged for the date parser.
func excelDate(cell string, date1904 bool) string {
	serial, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return cell
	}
	t, err := excelize.ExcelDateToTime(serial, date1904)
	if err != nil {
		return cell
	}
	return dateutils.FormatUS(t)
}
