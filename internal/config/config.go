// Package config provides Viper-based configuration loading for the combat tracker.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment variable overrides, e.g. COMBAT_ROSTER_PATH.
const EnvPrefix = "COMBAT"

// RosterConfig locates the persisted roster snapshot.
type RosterConfig struct {
	// Path is the roster file, rewritten in full at the end of every command.
	Path string `mapstructure:"path"`
	// Format is "json", "yaml", or "auto" to pick by file extension.
	Format string `mapstructure:"format"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// DiceConfig holds dice defaults.
type DiceConfig struct {
	// DefaultInit is the initiative formula used when join is given none.
	DefaultInit string `mapstructure:"default_init"`
	// LairInitiative is where the lair actions entry is placed in the order.
	LairInitiative int `mapstructure:"lair_initiative"`
	// Seed makes rolls reproducible when non-zero.
	Seed uint64 `mapstructure:"seed"`
}

// Config is the top-level application configuration.
type Config struct {
	Roster  RosterConfig  `mapstructure:"roster"`
	Logging LoggingConfig `mapstructure:"logging"`
	Dice    DiceConfig    `mapstructure:"dice"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string
	for _, err := range []error{
		validateRoster(c.Roster),
		validateLogging(c.Logging),
		validateDice(c.Dice),
	} {
		if err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateRoster(r RosterConfig) error {
	var errs []string
	if strings.TrimSpace(r.Path) == "" {
		errs = append(errs, "roster.path must not be empty")
	}
	validFormats := map[string]bool{"auto": true, "json": true, "yaml": true}
	if !validFormats[r.Format] {
		errs = append(errs, fmt.Sprintf("roster.format must be one of [auto, json, yaml], got %q", r.Format))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateDice(d DiceConfig) error {
	if strings.TrimSpace(d.DefaultInit) == "" {
		return fmt.Errorf("dice.default_init must not be empty")
	}
	return nil
}

// NewViper returns a Viper instance with defaults and COMBAT_ environment
// overrides applied, reading path when it is non-empty. Callers may bind
// command-line flags to it before calling LoadFromViper.
//
// Postcondition: Returns a configured Viper or an error if path could not be read.
func NewViper(path string) (*viper.Viper, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}
	return v, nil
}

// Load reads configuration from the optional file at path, applies environment
// variable overrides, and validates the result.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v, err := NewViper(path)
	if err != nil {
		return Config{}, err
	}
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("roster.path", "roster.json")
	v.SetDefault("roster.format", "auto")

	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")

	v.SetDefault("dice.default_init", "d20")
	v.SetDefault("dice.lair_initiative", 20)
	v.SetDefault("dice.seed", 0)
}
