// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"arac/ar-rollforward/internal/crosswalk"
	"arac/ar-rollforward/internal/models"
	"arac/ar-rollforward/internal/validation"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable override, e.g. ARAC_REPORT_MODE.
const EnvPrefix = "ARAC"

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Input struct {
		// Crosswalk names a built-in header mapping ("default" or "crowe").
		Crosswalk     string `mapstructure:"crosswalk" yaml:"crosswalk"`
		CrosswalkFile string `mapstructure:"crosswalk_file" yaml:"crosswalk_file"`
		Directory     string `mapstructure:"directory" yaml:"directory"`
	} `mapstructure:"input" yaml:"input"`

	Report struct {
		Mode             string `mapstructure:"mode" yaml:"mode"`
		Format           string `mapstructure:"format" yaml:"format"`
		OutputDirectory  string `mapstructure:"output_directory" yaml:"output_directory"`
		TableName        string `mapstructure:"table_name" yaml:"table_name"`
		SheetName        string `mapstructure:"sheet_name" yaml:"sheet_name"`
		Summary          bool   `mapstructure:"summary" yaml:"summary"`
		SummaryTableName string `mapstructure:"summary_table_name" yaml:"summary_table_name"`
		SummarySheetName string `mapstructure:"summary_sheet_name" yaml:"summary_sheet_name"`
	} `mapstructure:"report" yaml:"report"`
}

// InitializeConfig loads configuration from the standard locations.
func InitializeConfig() (*Config, error) {
	return Load("")
}

// Load initializes configuration with hierarchical loading: defaults, then a
// config file, then ARAC_* environment variables. An explicit configFile must
// exist; the standard search locations are optional.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.arac")
		v.AddConfigPath(".arac")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Unprefixed LOG_LEVEL and LOG_FORMAT are honoured for compatibility with
	// existing .env files.
	if err := v.BindEnv("log.level", EnvPrefix+"_LOG_LEVEL", "LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind log level environment: %w", err)
	}
	if err := v.BindEnv("log.format", EnvPrefix+"_LOG_FORMAT", "LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind log format environment: %w", err)
	}

	// 4. Read config file
	if err := v.ReadInConfig(); err != nil {
		if configFile != "" {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.Report.Mode = strings.ToLower(strings.TrimSpace(config.Report.Mode))
	config.Report.Format = strings.ToLower(strings.TrimSpace(config.Report.Format))

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("input.crosswalk", "default")
	v.SetDefault("input.crosswalk_file", "")
	v.SetDefault("input.directory", "")

	v.SetDefault("report.mode", string(models.ModeDescription))
	v.SetDefault("report.format", validation.FormatXLSX)
	v.SetDefault("report.output_directory", ".")
	v.SetDefault("report.table_name", models.DefaultDetailTable)
	v.SetDefault("report.sheet_name", models.DefaultDetailSheet)
	v.SetDefault("report.summary", true)
	v.SetDefault("report.summary_table_name", models.DefaultSummaryTable)
	v.SetDefault("report.summary_sheet_name", models.DefaultSummarySheet)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if err := validation.IsValidDelimiter(config.CSV.Delimiter); err != nil {
		return fmt.Errorf("csv.delimiter: %w", err)
	}

	if _, ok := crosswalk.Builtin(config.Input.Crosswalk); !ok {
		return fmt.Errorf("input.crosswalk: unknown built-in crosswalk %q (must be 'default' or 'crowe')", config.Input.Crosswalk)
	}

	if err := validation.IsValidMode(config.Report.Mode); err != nil {
		return fmt.Errorf("report.mode: %w", err)
	}

	if err := validation.IsValidOutputFormat(config.Report.Format); err != nil {
		return fmt.Errorf("report.format: %w", err)
	}

	if strings.TrimSpace(config.Report.TableName) == "" || strings.TrimSpace(config.Report.SummaryTableName) == "" {
		return fmt.Errorf("report table names must not be empty")
	}

	return nil
}

// Delimiter returns the configured CSV delimiter as a rune.
func (c *Config) Delimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.CSV.Delimiter)
	return r
}

// Mode returns the configured classification mode.
func (c *Config) Mode() models.Mode {
	return models.Mode(c.Report.Mode)
}
