// Package config layers the command line configuration: defaults, an
// optional config file, WORDEXTRACT_ environment variables and flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/boyonger/word-extractor/format"
	"github.com/boyonger/word-extractor/internal/logging"
	"github.com/boyonger/word-extractor/tables"
)

const (
	// EnvPrefix is prepended to every environment variable name.
	EnvPrefix = "WORDEXTRACT"

	DefaultLogLevel = "warn"
	DefaultWorkers  = 0 // one per CPU
)

// Keys shared by flags, environment variables and config files.
const (
	KeyConfig        = "config"
	KeyFormat        = "format"
	KeyOutput        = "output"
	KeyPretty        = "pretty"
	KeyDefaultWidth  = "default-width"
	KeyDefaultHeight = "default-height"
	KeyFontSize      = "font-size"
	KeyTolerance     = "tolerance"
	KeyUnitDivisor   = "unit-divisor"
	KeyWorkers       = "workers"
	KeyLogLevel      = "log-level"
)

// Config holds the resolved command line configuration.
type Config struct {
	// Input format forced for every file; empty means per-file detection
	Format string

	// Output file, empty for stdout
	Output string
	Pretty bool

	Tables tables.Config

	Workers  int
	LogLevel string
}

// DefaultConfig returns a configuration with the library defaults.
func DefaultConfig() *Config {
	return &Config{
		Tables:   tables.DefaultConfig(),
		Workers:  DefaultWorkers,
		LogLevel: DefaultLogLevel,
	}
}

// AddFlags defines the configuration flags on fs.
func AddFlags(fs *pflag.FlagSet) {
	cfg := DefaultConfig()

	fs.String(KeyConfig, "", "Config file (yaml, json or toml)")
	fs.StringP(KeyFormat, "f", "", "Input format for all files: doc or docx (default: detect)")
	fs.StringP(KeyOutput, "o", "", "Output file path (default: stdout)")
	fs.Bool(KeyPretty, false, "Pretty-print JSON output")
	fs.Float64(KeyDefaultWidth, cfg.Tables.DefaultWidth, "Width of cells without a usable width")
	fs.Float64(KeyDefaultHeight, cfg.Tables.DefaultHeight, "Height of rows without an explicit height")
	fs.Float64(KeyFontSize, cfg.Tables.FontSize, "Font size stamped on every cell")
	fs.Float64(KeyTolerance, cfg.Tables.Tolerance, "Distance within which cell edges share a grid line")
	fs.Float64(KeyUnitDivisor, cfg.Tables.UnitDivisor, "Divisor applied to source measurements (20 converts twips to points)")
	fs.Int(KeyWorkers, cfg.Workers, "Documents extracted in parallel (0 means one per CPU)")
	fs.String(KeyLogLevel, cfg.LogLevel, "Log level (debug, info, warn, error)")
}

// Load resolves the configuration from defaults, the config file named by
// the config flag, the environment and the flags set on fs.
func Load(fs *pflag.FlagSet) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	setDefaults(v, cfg)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("binding flags: %w", err)
	}

	if file := v.GetString(KeyConfig); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", file, err)
		}
	}

	populate(v, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault(KeyFormat, cfg.Format)
	v.SetDefault(KeyOutput, cfg.Output)
	v.SetDefault(KeyPretty, cfg.Pretty)
	v.SetDefault(KeyDefaultWidth, cfg.Tables.DefaultWidth)
	v.SetDefault(KeyDefaultHeight, cfg.Tables.DefaultHeight)
	v.SetDefault(KeyFontSize, cfg.Tables.FontSize)
	v.SetDefault(KeyTolerance, cfg.Tables.Tolerance)
	v.SetDefault(KeyUnitDivisor, cfg.Tables.UnitDivisor)
	v.SetDefault(KeyWorkers, cfg.Workers)
	v.SetDefault(KeyLogLevel, cfg.LogLevel)
}

func populate(v *viper.Viper, cfg *Config) {
	cfg.Format = v.GetString(KeyFormat)
	cfg.Output = v.GetString(KeyOutput)
	cfg.Pretty = v.GetBool(KeyPretty)
	cfg.Tables.DefaultWidth = v.GetFloat64(KeyDefaultWidth)
	cfg.Tables.DefaultHeight = v.GetFloat64(KeyDefaultHeight)
	cfg.Tables.FontSize = v.GetFloat64(KeyFontSize)
	cfg.Tables.Tolerance = v.GetFloat64(KeyTolerance)
	cfg.Tables.UnitDivisor = v.GetFloat64(KeyUnitDivisor)
	cfg.Workers = v.GetInt(KeyWorkers)
	cfg.LogLevel = v.GetString(KeyLogLevel)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Format != "" {
		if _, err := format.Parse(c.Format); err != nil {
			return err
		}
	}
	if err := c.Tables.Validate(); err != nil {
		return err
	}
	if c.Workers < 0 {
		return errors.New("workers must not be negative")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// InputFormat returns the forced input format, or format.Unknown when
// each file's format is detected.
func (c *Config) InputFormat() format.Format {
	f, _ := format.Parse(c.Format)
	return f
}
