// Package loader reads facility AR extracts into account records.
//
// Extracts are CSV or xlsx files whose columns are located through a
// crosswalk. Currency and date strings are parsed here so the roll-forward
// engine only ever sees decimals and times. Any malformed value, missing header
// or duplicate account number aborts the load.
package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"arac/ar-rollforward/internal/arerror"
	"arac/ar-rollforward/internal/crosswalk"
	"arac/ar-rollforward/internal/currencyutils"
	"arac/ar-rollforward/internal/dateutils"
	"arac/ar-rollforward/internal/logging"
	"arac/ar-rollforward/internal/models"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

const utf8BOM = "\ufeff"

// Loader converts extract files into accounts.
type Loader struct {
	crosswalk *crosswalk.Crosswalk
	delimiter rune
	logger    logging.Logger
}

// New returns a Loader. A nil crosswalk means the identity crosswalk and a
// zero delimiter means comma.
func New(cw *crosswalk.Crosswalk, delimiter rune, logger logging.Logger) *Loader {
	if cw == nil {
		cw = crosswalk.Default()
	}
	if delimiter == 0 {
		delimiter = ','
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Loader{crosswalk: cw, delimiter: delimiter, logger: logger}
}

// Crosswalk returns the crosswalk the loader resolves headers with.
func (l *Loader) Crosswalk() *crosswalk.Crosswalk {
	return l.crosswalk
}

// LoadFiles loads every path in lexical order and enforces account number
// uniqueness across all of them.
func (l *Loader) LoadFiles(ctx context.Context, paths []string) ([]*models.Account, error) {
	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)

	seen := make(map[int64]*models.Account)
	var accounts []*models.Account
	for _, path := range sorted {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		loaded, err := l.LoadFile(path)
		if err != nil {
			return nil, err
		}
		for _, acct := range loaded {
			if first, dup := seen[acct.Number]; dup {
				return nil, &arerror.DuplicateAccountError{
					Account:   acct.Number,
					FilePath:  acct.SourceFile,
					Line:      acct.SourceLine,
					FirstFile: first.SourceFile,
					FirstLine: first.SourceLine,
				}
			}
			seen[acct.Number] = acct
			accounts = append(accounts, acct)
		}
	}

	if len(accounts) == 0 {
		return nil, arerror.ErrNoAccounts
	}
	return accounts, nil
}

// LoadFile loads one extract, choosing the reader by file extension.
func (l *Loader) LoadFile(path string) ([]*models.Account, error) {
	l.logger.Info("Reading extract", logging.F(logging.FieldInputFile, path))

	var (
		accounts []*models.Account
		err      error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		accounts, err = l.loadWorkbook(path)
	default:
		accounts, err = l.loadCSV(path)
	}
	if err != nil {
		return nil, err
	}

	if len(accounts) == 0 {
		l.logger.Warn("Extract contains no account rows", logging.F(logging.FieldInputFile, path))
	} else {
		l.logger.Info("Loaded accounts",
			logging.F(logging.FieldInputFile, path),
			logging.F(logging.FieldCount, len(accounts)))
	}
	return accounts, nil
}

func (l *Loader) loadCSV(path string) ([]*models.Account, error) {
	file, err := os.Open(path) // #nosec G304 -- path supplied by the operator
	if err != nil {
		return nil, fmt.Errorf("error opening extract: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			l.logger.WithError(cerr).Warn("Failed to close file", logging.F(logging.FieldFile, path))
		}
	}()
	return l.Read(file, path)
}

// Read parses a CSV extract. name is used in diagnostics.
func (l *Loader) Read(r io.Reader, name string) ([]*models.Account, error) {
	lines := &lineReader{}

	// gocsv takes its reader from package state, so loads are serialized.
	csvReaderMu.Lock()
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		lines.reader = l.csvReader(in)
		return lines
	})
	rows, err := gocsv.CSVToMaps(r)
	gocsv.SetCSVReader(gocsv.DefaultCSVReader)
	csvReaderMu.Unlock()

	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", name, err)
	}
	if lines.header == nil {
		return nil, &arerror.InvalidFormatError{FilePath: name, Msg: "file is empty"}
	}

	records := make([]record, len(rows))
	for i, values := range rows {
		records[i] = record{line: lines.lines[i], values: values}
	}
	return l.parseTable(name, lines.header, records)
}

// csvReader mirrors gocsv.LazyCSVReader with the configured delimiter.
func (l *Loader) csvReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.Comma = l.delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	return reader
}

var csvReaderMu sync.Mutex

// lineReader feeds gocsv and remembers the physical line each data record
// started on, so blank lines and multi-line quoted cells do not shift the
// line numbers reported in errors. Short records are padded to the header
// width; missing trailing cells read as blank.
type lineReader struct {
	reader *csv.Reader
	header []string
	lines  []int
}

func (r *lineReader) Read() ([]string, error) {
	rec, err := r.reader.Read()
	if err != nil {
		return nil, err
	}
	if r.header == nil {
		r.header = normalizeHeader(rec)
		return r.header, nil
	}
	line, _ := r.reader.FieldPos(0)
	r.lines = append(r.lines, line)
	if len(rec) < len(r.header) {
		rec = append(rec, make([]string, len(r.header)-len(rec))...)
	}
	return rec, nil
}

func (r *lineReader) ReadAll() ([][]string, error) {
	var out [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
}

// record is one data row keyed by source header.
type record struct {
	line   int
	values map[string]string
}

// normalizeHeader trims each header and drops a UTF-8 byte order mark.
func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimSpace(strings.TrimPrefix(h, utf8BOM))
		}
		out[i] = h
	}
	return out
}

// parseTable converts data records into accounts once the header carries
// every column the crosswalk names.
func (l *Loader) parseTable(name string, header []string, records []record) ([]*models.Account, error) {
	if err := l.checkHeader(name, header); err != nil {
		return nil, err
	}

	accounts := make([]*models.Account, 0, len(records))
	for _, rec := range records {
		if isBlank(rec.values) {
			l.logger.Debug("Skipping blank row",
				logging.F(logging.FieldFile, name),
				logging.F(logging.FieldLine, rec.line))
			continue
		}
		acct, err := l.parseRow(name, rec.line, func(field string) string {
			source := l.crosswalk.Header(field)
			if source == "" {
				return ""
			}
			return strings.TrimSpace(rec.values[source])
		})
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// checkHeader reports every crosswalk header absent from header.
func (l *Loader) checkHeader(name string, header []string) error {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}

	var missing []string
	for _, field := range models.RequiredFields {
		source := l.crosswalk.Header(field)
		if source != "" && !present[source] {
			missing = append(missing, source)
		}
	}
	if len(missing) > 0 {
		return &arerror.InvalidFormatError{
			FilePath: name,
			Missing:  missing,
			Msg:      "required column headers not found",
		}
	}
	return nil
}

func (l *Loader) parseRow(name string, line int, value func(field string) string) (*models.Account, error) {
	parseErr := func(field string, err error) error {
		return &arerror.ParseError{FilePath: name, Line: line, Field: field, Value: value(field), Err: err}
	}

	number, err := parseAccountNumber(value(models.FieldNumber))
	if err != nil {
		return nil, parseErr(models.FieldNumber, err)
	}

	acct := &models.Account{
		Number:     number,
		Facility:   value(models.FieldFacility),
		Aging:      value(models.FieldAging),
		FCBegin:    value(models.FieldFCBegin),
		FCEnd:      value(models.FieldFCEnd),
		SourceFile: name,
		SourceLine: line,
	}

	if acct.StartDate, _, err = dateutils.ParseDate(value(models.FieldStartDate)); err != nil {
		return nil, parseErr(models.FieldStartDate, err)
	}
	if acct.EndDate, _, err = dateutils.ParseDate(value(models.FieldEndDate)); err != nil {
		return nil, parseErr(models.FieldEndDate, err)
	}

	amounts := []struct {
		field string
		dst   *decimal.Decimal
	}{
		{models.FieldBeginBalance, &acct.BeginBalance},
		{models.FieldCharges, &acct.Charges},
		{models.FieldAdmin, &acct.AdminAdj},
		{models.FieldBadDebt, &acct.BadDebtWO},
		{models.FieldCharity, &acct.CharityAdj},
		{models.FieldContractuals, &acct.ContractualAdj},
		{models.FieldDenials, &acct.DenialWO},
		{models.FieldPayments, &acct.Payments},
		{models.FieldEndBalance, &acct.EndBalance},
		{models.FieldReserveBegin, &acct.ReserveBegin},
		{models.FieldReserveEnd, &acct.ReserveEnd},
	}
	for _, a := range amounts {
		v, err := currencyutils.ParseCurrency(value(a.field))
		if err != nil {
			return nil, parseErr(a.field, err)
		}
		*a.dst = v
	}

	// Extracts carry the reserve as a positive contra-asset magnitude.
	acct.ReserveBegin = acct.ReserveBegin.Neg()
	acct.ReserveEnd = acct.ReserveEnd.Neg()

	return acct, nil
}

// parseAccountNumber accepts integers, including the "12345.0" form some
// spreadsheet exports produce.
func parseAccountNumber(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("account number is empty")
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsInteger() {
		return 0, fmt.Errorf("account number must be an integer")
	}
	return d.IntPart(), nil
}

func isBlank(values map[string]string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
