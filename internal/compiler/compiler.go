// Package compiler runs the whole roll-forward pipeline: load the extracts,
// reconcile and apportion the reserve, classify each account and write the
// report.
package compiler

import (
	"context"
	"fmt"
	"time"

	"arac/ar-rollforward/internal/classifier"
	"arac/ar-rollforward/internal/fileutils"
	"arac/ar-rollforward/internal/loader"
	"arac/ar-rollforward/internal/logging"
	"arac/ar-rollforward/internal/models"
	"arac/ar-rollforward/internal/report"
	"arac/ar-rollforward/internal/rollforward"
)

// Options controls report layout and default output placement.
type Options struct {
	Report report.Options
	// OutputDirectory receives the report when Compile is given no output path.
	OutputDirectory string
}

// Compiler wires the pipeline stages together.
type Compiler struct {
	loader     *loader.Loader
	engine     *rollforward.Engine
	classifier *classifier.Classifier
	writer     report.Writer
	opts       Options
	logger     logging.Logger
	now        func() time.Time
}

// Result summarizes a successful compile.
type Result struct {
	Output   string
	Meta     models.BatchMetadata
	Accounts []*models.Account
	Summary  []report.SummaryRow
}

// New creates a Compiler. A nil logger discards output.
func New(l *loader.Loader, e *rollforward.Engine, c *classifier.Classifier, w report.Writer, opts Options, logger logging.Logger) *Compiler {
	if logger == nil {
		logger = logging.Nop()
	}
	if opts.OutputDirectory == "" {
		opts.OutputDirectory = "."
	}
	return &Compiler{
		loader:     l,
		engine:     e,
		classifier: c,
		writer:     w,
		opts:       opts,
		logger:     logger,
		now:        time.Now,
	}
}

// Compile builds the report from inputs and writes it to output. When output
// is empty a timestamped name in the output directory is used. Nothing is
// written unless every account reconciles.
func (c *Compiler) Compile(ctx context.Context, inputs []string, output string) (*Result, error) {
	start := c.now()

	accounts, meta, err := c.prepare(ctx, inputs, output)
	if err != nil {
		return nil, err
	}

	c.classifier.ClassifyAll(accounts)
	rep := report.Build(accounts, c.classifier.Mode(), c.opts.Report)

	if output == "" {
		output = fileutils.DefaultOutputName(c.opts.OutputDirectory, c.writer.Format(), start)
	}
	if err := c.writer.Write(ctx, output, meta, rep); err != nil {
		return nil, fmt.Errorf("error writing report %s: %w", output, err)
	}

	c.logger.Info("Compile completed",
		logging.F(logging.FieldOutputFile, output),
		logging.F(logging.FieldCount, len(accounts)),
		logging.F(logging.FieldMode, string(c.classifier.Mode())),
		logging.F(logging.FieldFormat, c.writer.Format()),
		logging.F(logging.FieldDuration, c.now().Sub(start).Milliseconds()))

	return &Result{
		Output:   output,
		Meta:     meta,
		Accounts: accounts,
		Summary:  rep.Summary,
	}, nil
}

// Check loads and reconciles inputs without classifying or writing anything.
func (c *Compiler) Check(ctx context.Context, inputs []string) (models.BatchMetadata, error) {
	_, meta, err := c.prepare(ctx, inputs)
	if err != nil {
		return models.BatchMetadata{}, err
	}
	c.logger.Info("Check passed",
		logging.F(logging.FieldCount, meta.Accounts),
		logging.F(logging.FieldFacility, meta.Facility),
		logging.F(logging.FieldPeriod, meta.Period()))
	return meta, nil
}

// prepare resolves inputs, loads every account and runs the engine. Paths in
// exclude are left out of directory inputs.
func (c *Compiler) prepare(ctx context.Context, inputs []string, exclude ...string) ([]*models.Account, models.BatchMetadata, error) {
	files, err := fileutils.ListInputFiles(inputs, exclude...)
	if err != nil {
		return nil, models.BatchMetadata{}, err
	}
	if len(files) == 0 {
		return nil, models.BatchMetadata{}, fmt.Errorf("no input files found in %v", inputs)
	}

	accounts, err := c.loader.LoadFiles(ctx, files)
	if err != nil {
		return nil, models.BatchMetadata{}, err
	}
	meta := models.NewBatchMetadata(accounts, files)
	c.logger.Info("Loaded extracts",
		logging.F(logging.FieldCount, meta.Accounts),
		logging.F(logging.FieldFacility, meta.Facility),
		logging.F(logging.FieldPeriod, meta.Period()))

	if err := c.engine.ApplyAll(ctx, accounts); err != nil {
		return nil, models.BatchMetadata{}, err
	}
	return accounts, meta, nil
}
