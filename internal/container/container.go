// Package container provides dependency injection for the arac application.
// It centralizes the creation and wiring of the pipeline components, making
// them explicit and testable.
package container

import (
	"fmt"

	"arac/ar-rollforward/internal/classifier"
	"arac/ar-rollforward/internal/compiler"
	"arac/ar-rollforward/internal/config"
	"arac/ar-rollforward/internal/crosswalk"
	"arac/ar-rollforward/internal/loader"
	"arac/ar-rollforward/internal/logging"
	"arac/ar-rollforward/internal/report"
	"arac/ar-rollforward/internal/rollforward"
)

// Container holds all application dependencies.
//
// Container is immutable after creation; components are reached through
// getter methods only.
type Container struct {
	logger     logging.Logger
	config     *config.Config
	crosswalk  *crosswalk.Crosswalk
	loader     *loader.Loader
	engine     *rollforward.Engine
	classifier *classifier.Classifier
	writer     report.Writer
	compiler   *compiler.Compiler
}

// NewContainer creates and wires all application dependencies with a logrus
// logger configured from cfg.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format))
}

// NewContainerWithLogger is NewContainer with an injected logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		logger = logging.Nop()
	}

	cw, err := resolveCrosswalk(cfg)
	if err != nil {
		return nil, err
	}

	cls, err := classifier.New(cfg.Mode(), logger)
	if err != nil {
		return nil, err
	}

	writer, err := report.NewWriter(cfg.Report.Format, cfg.Delimiter(), logger)
	if err != nil {
		return nil, err
	}

	ldr := loader.New(cw, cfg.Delimiter(), logger)
	engine := rollforward.NewEngine(logger)
	comp := compiler.New(ldr, engine, cls, writer, compiler.Options{
		Report: report.Options{
			DetailTable:  cfg.Report.TableName,
			DetailSheet:  cfg.Report.SheetName,
			SummaryTable: cfg.Report.SummaryTableName,
			SummarySheet: cfg.Report.SummarySheetName,
			Summary:      cfg.Report.Summary,
		},
		OutputDirectory: cfg.Report.OutputDirectory,
	}, logger)

	logger.Debug("Container initialized",
		logging.F("crosswalk", cw.Source()),
		logging.F(logging.FieldMode, string(cls.Mode())),
		logging.F(logging.FieldFormat, writer.Format()))

	return &Container{
		logger:     logger,
		config:     cfg,
		crosswalk:  cw,
		loader:     ldr,
		engine:     engine,
		classifier: cls,
		writer:     writer,
		compiler:   comp,
	}, nil
}

// resolveCrosswalk prefers an explicit crosswalk file over a built-in name.
func resolveCrosswalk(cfg *config.Config) (*crosswalk.Crosswalk, error) {
	if cfg.Input.CrosswalkFile != "" {
		cw, err := crosswalk.Load(cfg.Input.CrosswalkFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load crosswalk: %w", err)
		}
		return cw, nil
	}
	cw, ok := crosswalk.Builtin(cfg.Input.Crosswalk)
	if !ok {
		return nil, fmt.Errorf("unknown built-in crosswalk %q", cfg.Input.Crosswalk)
	}
	return cw, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetCrosswalk returns the active header crosswalk.
func (c *Container) GetCrosswalk() *crosswalk.Crosswalk {
	return c.crosswalk
}

func (c *Container) GetLoader() *loader.Loader {
	return c.loader
}

func (c *Container) GetEngine() *rollforward.Engine {
	return c.engine
}

func (c *Container) GetClassifier() *classifier.Classifier {
	return c.classifier
}

func (c *Container) GetWriter() report.Writer {
	return c.writer
}

// GetCompiler returns the fully wired pipeline.
func (c *Container) GetCompiler() *compiler.Compiler {
	return c.compiler
}
