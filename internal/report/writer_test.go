package report

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"arac/ar-rollforward/internal/logging"
	"arac/ar-rollforward/internal/models"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func testMeta() models.BatchMetadata {
	return models.BatchMetadata{
		Facility:    "General Hospital",
		StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		Accounts:    2,
		SourceFiles: []string{"extract.csv"},
	}
}

func testReport(mode models.Mode) *Report {
	return Build([]*models.Account{paidOff(1001), creditAccount(1002)}, mode, DefaultOptions())
}

func TestNewWriter(t *testing.T) {
	tests := []struct {
		format  string
		want    string
		wantErr bool
	}{
		{"xlsx", "xlsx", false},
		{"XLSX", "xlsx", false},
		{"csv", "csv", false},
		{"parquet", "parquet", false},
		{"json", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			w, err := NewWriter(tt.format, ',', nil)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, w.Format())
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"out/report.xlsx", "xlsx", false},
		{"report.CSV", "csv", false},
		{"report.parquet", "parquet", false},
		{"report", "", true},
		{"report.txt", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestXLSXWriter_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	logger := logging.NewMockLogger()

	err := NewXLSXWriter(logger).Write(context.Background(), path, testMeta(), testReport(models.ModeTheme))
	require.NoError(t, err)
	assert.True(t, logger.HasEntry("INFO", "Wrote workbook"))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{models.DefaultDetailSheet, models.DefaultSummarySheet}, f.GetSheetList())

	rows, err := f.GetRows(models.DefaultDetailSheet, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, DetailColumns(models.ModeTheme), rows[0])
	assert.Equal(t, "1001", rows[1][0])
	assert.Equal(t, models.ThemeDebitExcessReceiptsZero.String(), rows[1][len(rows[1])-1])

	releases, err := strconv.ParseFloat(rows[1][23], 64)
	require.NoError(t, err)
	assert.InDelta(t, 1035.0, releases, 0.001)

	tables, err := f.GetTables(models.DefaultDetailSheet)
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, models.DefaultDetailTable, tables[0].Name)
	assert.Equal(t, "A1:AD3", tables[0].Range)

	summary, err := f.GetRows(models.DefaultSummarySheet)
	require.NoError(t, err)
	require.Len(t, summary, 4)
	assert.Equal(t, SummaryColumns, summary[0])
	assert.Equal(t, TotalGroup, summary[3][0])

	props, err := f.GetDocProps()
	require.NoError(t, err)
	assert.Equal(t, "AR roll-forward - General Hospital", props.Title)
	assert.Equal(t, "01/01/2024 - 12/31/2024", props.Subject)
	assert.Equal(t, "theme", props.Keywords)
}

func TestXLSXWriter_WriteEmptyReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	rep := Build(nil, models.ModeDescription, Options{})

	err := NewXLSXWriter(logging.Nop()).Write(context.Background(), path, models.BatchMetadata{}, rep)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	assert.Equal(t, []string{models.DefaultDetailSheet}, f.GetSheetList())
}

func TestXLSXWriter_CancelledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewXLSXWriter(logging.Nop()).Write(ctx, path, testMeta(), testReport(models.ModeTheme))
	require.ErrorIs(t, err, context.Canceled)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no partial output on error")
}

func TestCSVWriter_Write(t *testing.T) {
	tests := []struct {
		name      string
		mode      models.Mode
		delimiter rune
		label     string
		value     string
	}{
		{"description", models.ModeDescription, ',', "Description", "Paid off"},
		{"theme semicolon", models.ModeTheme, ';', "Theme", models.ThemeDebitExcessReceiptsZero.String()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "report.csv")

			err := NewCSVWriter(tt.delimiter, logging.Nop()).Write(context.Background(), path, testMeta(), testReport(tt.mode))
			require.NoError(t, err)

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			lines := strings.Split(strings.TrimSpace(string(data)), "\n")
			require.Len(t, lines, 3)

			sep := string(tt.delimiter)
			header := strings.Split(lines[0], sep)
			assert.Equal(t, DetailColumns(tt.mode), header)
			assert.Equal(t, tt.label, header[len(header)-1])

			first := strings.Split(lines[1], sep)
			assert.Equal(t, "1001", first[0])
			assert.Equal(t, "1000.00", first[7])
			assert.Equal(t, "-180.00", first[17])
			assert.Equal(t, "1035.00", first[23])
			assert.Equal(t, tt.value, first[len(first)-1])

			second := strings.Split(lines[2], sep)
			assert.Equal(t, "-25.50", second[7])
			assert.Equal(t, "0.00", second[8])
		})
	}
}

func TestParquetWriter_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.parquet")

	err := NewParquetWriter(logging.Nop()).Write(context.Background(), path, testMeta(), testReport(models.ModeDescription))
	require.NoError(t, err)

	rows, err := parquet.ReadFile[DetailRow](path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(1001), rows[0].Number)
	assert.Equal(t, Money(1035), rows[0].ReserveReleases)
	assert.Equal(t, "Paid off", rows[0].Description)
	assert.Equal(t, models.ThemeDebitExcessReceiptsZero.String(), rows[0].Theme)
	assert.Equal(t, Money(-25.5), rows[1].BeginBalance)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	info, err := f.Stat()
	require.NoError(t, err)
	pf, err := parquet.OpenFile(f, info.Size())
	require.NoError(t, err)

	for key, want := range map[string]string{
		"facility":     "General Hospital",
		"period_start": "2024-01-01",
		"period_end":   "2024-12-31",
		"mode":         "description",
	} {
		got, ok := pf.Lookup(key)
		assert.True(t, ok, key)
		assert.Equal(t, want, got, key)
	}
}

func TestWriters_FailWhenParentIsAFile(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))
	dir := filepath.Join(blocker, "nested")
	for _, format := range []string{"xlsx", "csv", "parquet"} {
		t.Run(format, func(t *testing.T) {
			w, err := NewWriter(format, ',', logging.Nop())
			require.NoError(t, err)
			err = w.Write(context.Background(), filepath.Join(dir, "report."+format), testMeta(), testReport(models.ModeTheme))
			assert.Error(t, err)
		})
	}
}
