// Package config resolves the runtime configuration of the screenruler
// command from flags, SCREENRULER_* environment variables and an optional
// config file, in that order of precedence.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"screenruler/factor"
)

// EnvPrefix prefixes the environment variables read by Load.
const EnvPrefix = "SCREENRULER"

const (
	KeyConfig    = "config"
	KeyFactors   = "factors"
	KeyPrecision = "precision"
	KeyDigits    = "digits"
)

// Config holds the settings shared by all commands.
type Config struct {
	// Factors is the path of a YAML factor file. Empty means the built-in table.
	Factors string
	// Precision is the number of fractional digits kept for decimal factors.
	Precision int
	// Digits is the number of decimals used when printing floats.
	Digits int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Precision: factor.DefaultPrecision,
		Digits:    2,
	}
}

// AddFlags registers the configuration flags on fs.
func AddFlags(fs *pflag.FlagSet) {
	def := DefaultConfig()

	fs.String(KeyConfig, "", "Path to a config file (yaml, json or toml)")
	fs.String(KeyFactors, def.Factors, "Path to a YAML factor file; the built-in table is used when empty")
	fs.Int(KeyPrecision, def.Precision, "Fractional digits kept when turning decimal factors into exact rationals")
	fs.Int(KeyDigits, def.Digits, "Decimals printed for floating point output")
}

// Load resolves the configuration. Flags in fs that were set explicitly
// win over the environment, which wins over the config file.
func Load(v *viper.Viper, fs *pflag.FlagSet) (Config, error) {
	def := DefaultConfig()

	v.SetDefault(KeyFactors, def.Factors)
	v.SetDefault(KeyPrecision, def.Precision)
	v.SetDefault(KeyDigits, def.Digits)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return Config{}, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	if file := v.GetString(KeyConfig); file != "" {
		v.SetConfigFile(file)

		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	cfg := Config{
		Factors:   v.GetString(KeyFactors),
		Precision: v.GetInt(KeyPrecision),
		Digits:    v.GetInt(KeyDigits),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	var errs []error

	if c.Precision < 0 || c.Precision > factor.MaxPrecision {
		errs = append(errs, fmt.Errorf("precision must be within 0..%d, got %d", factor.MaxPrecision, c.Precision))
	}

	if c.Digits < 0 {
		errs = append(errs, fmt.Errorf("digits must not be negative, got %d", c.Digits))
	}

	return errors.Join(errs...)
}

// FactorTable loads the configured factor table.
func (c Config) FactorTable() (*factor.Table, error) {
	if c.Factors == "" {
		return factor.Default(), nil
	}

	return factor.LoadFile(c.Factors, c.Precision)
}
