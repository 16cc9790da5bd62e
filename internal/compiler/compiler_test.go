package compiler

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"arac/ar-rollforward/internal/arerror"
	"arac/ar-rollforward/internal/classifier"
	"arac/ar-rollforward/internal/loader"
	"arac/ar-rollforward/internal/logging"
	"arac/ar-rollforward/internal/models"
	"arac/ar-rollforward/internal/report"
	"arac/ar-rollforward/internal/rollforward"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockWriter implements report.Writer for testing
type MockWriter struct {
	mock.Mock
}

func (m *MockWriter) Write(ctx context.Context, path string, meta models.BatchMetadata, rep *report.Report) error {
	args := m.Called(ctx, path, meta, rep)
	return args.Error(0)
}

func (m *MockWriter) Format() string {
	return m.Called().String(0)
}

const header = "Number,Facility,Aging,FC Begin,FC End,Start Date,End Date,Begin Bal,Charges,Admin,Bad Debt,Charity,Contractuals,Denials,Payments,End Bal,Rsv: Begin Bal,Rsv: End Bal\n"

const (
	paidOffRow = "1001,North,0-30,SP,SP,01/01/2024,12/31/2024,1000,200,0,0,0,-50,0,-1150,0,900,0\n"
	creditRow  = "1002,North,31-60,MC,MC,01/15/2024,12/31/2024,-25.50,0,0,0,0,0,0,0,-25.50,0,0\n"
	brokenRow  = "1003,North,0-30,SP,SP,01/01/2024,12/31/2024,100,0,0,0,0,0,0,0,99,0,0\n"
)

func writeExtract(t *testing.T, dir, name string, rows ...string) string {
	t.Helper()
	content := header
	for _, r := range rows {
		content += r
	}
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func newCompiler(t *testing.T, mode models.Mode, format string, outDir string, logger logging.Logger) *Compiler {
	t.Helper()
	c, err := classifier.New(mode, logger)
	require.NoError(t, err)
	w, err := report.NewWriter(format, ',', logger)
	require.NoError(t, err)
	return New(
		loader.New(nil, ',', logger),
		rollforward.NewEngine(logger),
		c,
		w,
		Options{Report: report.DefaultOptions(), OutputDirectory: outDir},
		logger,
	)
}

func TestCompile(t *testing.T) {
	dir := t.TempDir()
	in := writeExtract(t, dir, "north.csv", paidOffRow, creditRow)
	out := filepath.Join(dir, "out", "report.xlsx")
	logger := logging.NewMockLogger()

	res, err := newCompiler(t, models.ModeTheme, "xlsx", dir, logger).Compile(context.Background(), []string{in}, out)
	require.NoError(t, err)

	assert.Equal(t, out, res.Output)
	assert.FileExists(t, out)
	assert.Equal(t, "North", res.Meta.Facility)
	assert.Equal(t, "01/01/2024 - 12/31/2024", res.Meta.Period())
	require.Len(t, res.Accounts, 2)

	paid := res.Accounts[0]
	assert.True(t, paid.ReserveCharges.Equal(decimal.RequireFromString("-180")))
	assert.True(t, paid.ReserveReleases.Equal(decimal.RequireFromString("1035")))
	assert.True(t, paid.NPSRImpact.Equal(decimal.RequireFromString("1050")))
	assert.Equal(t, models.ThemeDebitExcessReceiptsZero, paid.Theme)
	assert.Equal(t, models.ThemeCredit, res.Accounts[1].Theme)

	require.Len(t, res.Summary, 3)
	assert.Equal(t, report.TotalGroup, res.Summary[2].Group)
	assert.True(t, logger.HasEntry("INFO", "Compile completed"))
}

func TestCompile_DefaultOutputName(t *testing.T) {
	dir := t.TempDir()
	in := writeExtract(t, dir, "north.csv", paidOffRow)
	outDir := filepath.Join(dir, "reports")

	c := newCompiler(t, models.ModeDescription, "csv", outDir, nil)
	c.now = func() time.Time { return time.Date(2024, 3, 5, 14, 7, 0, 0, time.UTC) }

	res, err := c.Compile(context.Background(), []string{in}, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "output_file 2024-03-05 1407.csv"), res.Output)
	assert.FileExists(t, res.Output)
	assert.NotEmpty(t, res.Accounts[0].Description)
}

func TestCompile_DirectoryInput(t *testing.T) {
	dir := t.TempDir()
	writeExtract(t, dir, "b.csv", creditRow)
	writeExtract(t, dir, "a.csv", paidOffRow)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0600))
	out := filepath.Join(t.TempDir(), "report.parquet")

	res, err := newCompiler(t, models.ModeTheme, "parquet", dir, nil).Compile(context.Background(), []string{dir}, out)
	require.NoError(t, err)
	require.Len(t, res.Accounts, 2)
	assert.Equal(t, int64(1001), res.Accounts[0].Number, "files load in lexical order")
	assert.Len(t, res.Meta.SourceFiles, 2)
}

func TestCompile_RerunSkipsEarlierReports(t *testing.T) {
	tests := []struct {
		name   string
		output string
	}{
		{name: "default name", output: ""},
		{name: "named output", output: "roll.xlsx"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeExtract(t, dir, "north.csv", paidOffRow, creditRow)
			output := tt.output
			if output != "" {
				output = filepath.Join(dir, output)
			}

			c := newCompiler(t, models.ModeTheme, "xlsx", dir, nil)
			for run := 1; run <= 2; run++ {
				res, err := c.Compile(context.Background(), []string{dir}, output)
				require.NoError(t, err, "run %d", run)
				assert.Len(t, res.Accounts, 2)
				assert.Len(t, res.Meta.SourceFiles, 1)
			}
		})
	}
}

func TestCompile_ReconciliationFailureWritesNothing(t *testing.T) {
	dir := t.TempDir()
	in := writeExtract(t, dir, "north.csv", paidOffRow, brokenRow)
	out := filepath.Join(dir, "report.xlsx")
	logger := logging.NewMockLogger()

	res, err := newCompiler(t, models.ModeDescription, "xlsx", dir, logger).Compile(context.Background(), []string{in}, out)
	require.Error(t, err)
	assert.Nil(t, res)

	var recErr *arerror.ReconciliationError
	require.True(t, errors.As(err, &recErr))
	assert.Equal(t, int64(1003), recErr.Account)
	assert.NoFileExists(t, out)
	assert.False(t, logger.HasEntry("INFO", "Compile completed"))
}

func TestCompile_Errors(t *testing.T) {
	dir := t.TempDir()
	dup := writeExtract(t, dir, "dup.csv", paidOffRow, paidOffRow)
	empty := t.TempDir()

	tests := []struct {
		name   string
		inputs []string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "missing input",
			inputs: []string{filepath.Join(dir, "nope.csv")},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, os.ErrNotExist)
			},
		},
		{
			name:   "empty directory",
			inputs: []string{empty},
			check: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "no input files")
			},
		},
		{
			name:   "duplicate account",
			inputs: []string{dup},
			check: func(t *testing.T, err error) {
				var dupErr *arerror.DuplicateAccountError
				assert.True(t, errors.As(err, &dupErr))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "report.xlsx")
			_, err := newCompiler(t, models.ModeTheme, "xlsx", dir, nil).Compile(context.Background(), tt.inputs, out)
			require.Error(t, err)
			tt.check(t, err)
			assert.NoFileExists(t, out)
		})
	}
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	in := writeExtract(t, dir, "north.csv", paidOffRow, creditRow)

	c := newCompiler(t, models.ModeDescription, "xlsx", dir, nil)
	meta, err := c.Check(context.Background(), []string{in})
	require.NoError(t, err)
	assert.Equal(t, 2, meta.Accounts)
	assert.Equal(t, []string{in}, meta.SourceFiles)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "check writes no report")

	bad := writeExtract(t, dir, "bad.csv", brokenRow)
	_, err = c.Check(context.Background(), []string{bad})
	assert.ErrorIs(t, err, arerror.ErrReconciliation)
}

func TestCompile_WriterReceivesReport(t *testing.T) {
	dir := t.TempDir()
	in := writeExtract(t, dir, "north.csv", paidOffRow, creditRow)

	w := &MockWriter{}
	w.On("Format").Return("xlsx")
	w.On("Write", mock.Anything, "report.xlsx", mock.MatchedBy(func(meta models.BatchMetadata) bool {
		return meta.Accounts == 2 && meta.Facility == "North"
	}), mock.MatchedBy(func(rep *report.Report) bool {
		return rep.Mode == models.ModeDescription && len(rep.Detail) == 2 && len(rep.Summary) == 3
	})).Return(nil)

	cls, err := classifier.New(models.ModeDescription, nil)
	require.NoError(t, err)
	c := New(loader.New(nil, ',', nil), rollforward.NewEngine(nil), cls, w, Options{Report: report.DefaultOptions()}, nil)

	_, err = c.Compile(context.Background(), []string{in}, "report.xlsx")
	require.NoError(t, err)
	w.AssertExpectations(t)
}

func TestCompile_WriterError(t *testing.T) {
	dir := t.TempDir()
	in := writeExtract(t, dir, "north.csv", paidOffRow)

	w := &MockWriter{}
	w.On("Format").Return("csv").Maybe()
	w.On("Write", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("disk full"))

	cls, err := classifier.New(models.ModeTheme, nil)
	require.NoError(t, err)
	c := New(loader.New(nil, ',', nil), rollforward.NewEngine(nil), cls, w, Options{}, nil)

	res, err := c.Compile(context.Background(), []string{in}, "report.csv")
	require.Error(t, err)
	assert.Nil(t, res)
	assert.Contains(t, err.Error(), "disk full")
}
