// Package root contains the root command for the application
package root

import (
	"fmt"
	"sync"

	"arac/ar-rollforward/internal/config"
	"arac/ar-rollforward/internal/container"
	"arac/ar-rollforward/internal/logging"
	"arac/ar-rollforward/internal/validation"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Inputs     []string
	ConfigFile string
	LogLevel   string
	LogFormat  string
	Delimiter  string
	Crosswalk  string
	Preset     string
	Mode       string
}

var (
	// Version is stamped at build time with
	// -ldflags "-X arac/ar-rollforward/cmd/root.Version=<version>".
	Version = "dev"

	// Log is the shared logger instance for commands. It is replaced once the
	// configuration has been loaded.
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// AppConfig is the configuration resolved for the running command.
	AppConfig *config.Config

	// AppContainer is built lazily by GetContainer.
	AppContainer *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "arac",
		Short: "Compile an accounts-receivable reserve roll-forward report.",
		Long: `arac compiles a patient accounts-receivable roll-forward from facility
extracts. Every account's balance roll-forward is reconciled, the reserve is
apportioned across the period's activity, and each account is described in
words or labelled with a theme before the report is written.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(cmd)
		},
	}

	// SharedFlags holds the persistent flag values.
	SharedFlags = CommonFlags{}

	initOnce sync.Once
)

// Init initializes the root command and all persistent flags. It is safe to
// call more than once.
func Init() {
	initOnce.Do(func() {
		flags := Cmd.PersistentFlags()
		flags.StringSliceVarP(&SharedFlags.Inputs, "input", "i", nil, "Input extract file or directory (repeatable)")
		flags.StringVar(&SharedFlags.ConfigFile, "config", "", "Config file (default: config.yaml in $HOME/.arac, .arac or .)")
		flags.StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
		flags.StringVar(&SharedFlags.LogFormat, "log-format", "", "Log format (text or json)")
		flags.StringVar(&SharedFlags.Delimiter, "csv-delimiter", "", "Delimiter for CSV input and output")
		flags.StringVar(&SharedFlags.Crosswalk, "crosswalk", "", "Header crosswalk file (text or YAML)")
		flags.StringVar(&SharedFlags.Preset, "preset", "", "Built-in header crosswalk (default or crowe)")
		flags.StringVarP(&SharedFlags.Mode, "mode", "m", "", "Classification mode (description or theme)")
	})
}

// loadConfig resolves configuration from file and environment, then applies
// any flags given on the command line.
func loadConfig(cmd *cobra.Command) error {
	config.LoadEnv(Log)

	cfg, err := config.Load(SharedFlags.ConfigFile)
	if err != nil {
		return err
	}
	if err := ApplyFlagOverrides(cmd, cfg); err != nil {
		return err
	}

	AppConfig = cfg
	AppContainer = nil
	Log = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	Log.Debug("Configuration loaded",
		logging.F(logging.FieldMode, cfg.Report.Mode),
		logging.F(logging.FieldFormat, cfg.Report.Format))
	return nil
}

// ApplyFlagOverrides copies explicitly set persistent flags onto cfg.
func ApplyFlagOverrides(cmd *cobra.Command, cfg *config.Config) error {
	changed := func(name string) bool {
		f := cmd.Flag(name)
		return f != nil && f.Changed
	}

	if changed("log-level") {
		cfg.Log.Level = SharedFlags.LogLevel
	}
	if changed("log-format") {
		cfg.Log.Format = SharedFlags.LogFormat
	}
	if changed("csv-delimiter") {
		if err := validation.IsValidDelimiter(SharedFlags.Delimiter); err != nil {
			return fmt.Errorf("--csv-delimiter: %w", err)
		}
		cfg.CSV.Delimiter = SharedFlags.Delimiter
	}
	if changed("crosswalk") {
		cfg.Input.CrosswalkFile = SharedFlags.Crosswalk
	}
	if changed("preset") {
		cfg.Input.Crosswalk = SharedFlags.Preset
		if !changed("crosswalk") {
			cfg.Input.CrosswalkFile = ""
		}
	}
	if changed("mode") {
		if err := validation.IsValidMode(SharedFlags.Mode); err != nil {
			return fmt.Errorf("--mode: %w", err)
		}
		cfg.Report.Mode = SharedFlags.Mode
	}
	return nil
}

// GetConfig returns the loaded configuration, loading defaults when a
// command runs without the root pre-run hook.
func GetConfig() (*config.Config, error) {
	if AppConfig != nil {
		return AppConfig, nil
	}
	cfg, err := config.InitializeConfig()
	if err != nil {
		return nil, err
	}
	AppConfig = cfg
	return cfg, nil
}

// GetContainer returns the application container, building it on first use.
func GetContainer() (*container.Container, error) {
	if AppContainer != nil {
		return AppContainer, nil
	}
	cfg, err := GetConfig()
	if err != nil {
		return nil, err
	}
	c, err := container.NewContainerWithLogger(cfg, Log)
	if err != nil {
		return nil, err
	}
	AppContainer = c
	return c, nil
}
