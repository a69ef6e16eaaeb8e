// Package config loads dentplan settings from a TOML file with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all dentplan configuration.
type Config struct {
	General GeneralConfig `toml:"general"`
	Catalog CatalogConfig `toml:"catalog"`
	Stepper StepperConfig `toml:"stepper"`
	Log     LogConfig     `toml:"log"`
}

// GeneralConfig holds storage and display preferences.
type GeneralConfig struct {
	DBPath         string `toml:"db_path"`
	CurrencySymbol string `toml:"currency_symbol"`
}

// CatalogConfig controls how many categories the picker shows at once.
type CatalogConfig struct {
	DisplayLimit int `toml:"display_limit"`
}

// StepperConfig holds the press-and-hold timings for quantity steppers.
type StepperConfig struct {
	ArmDelayMs       int `toml:"arm_delay_ms"`
	RepeatIntervalMs int `toml:"repeat_interval_ms"`
}

// LogConfig selects the log level and destination. An empty File discards
// logs so they never draw over the TUI.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DBPath:         filepath.Join(homeDir(), ".dentplan", "dentplan.db"),
			CurrencySymbol: "₹",
		},
		Catalog: CatalogConfig{DisplayLimit: 6},
		Stepper: StepperConfig{ArmDelayMs: 500, RepeatIntervalMs: 150},
		Log:     LogConfig{Level: "info"},
	}
}

// DefaultPath returns DENTPLAN_CONFIG, or ~/.dentplan/config.toml.
func DefaultPath() string {
	if p := os.Getenv("DENTPLAN_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(homeDir(), ".dentplan", "config.toml")
}

// Load reads the config file at path, returning defaults if it doesn't
// exist, then applies environment overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	ApplyEnv(&cfg)
	cfg.General.DBPath = expandHome(cfg.General.DBPath)
	cfg.Log.File = expandHome(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// ApplyEnv overlays DENTPLAN_* environment variables. Malformed numeric
// values are ignored.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv("DENTPLAN_DB"); v != "" {
		cfg.General.DBPath = v
	}
	if v := os.Getenv("DENTPLAN_CURRENCY"); v != "" {
		cfg.General.CurrencySymbol = v
	}
	if v := os.Getenv("DENTPLAN_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("DENTPLAN_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	applyIntEnv(&cfg.Catalog.DisplayLimit, "DENTPLAN_DISPLAY_LIMIT")
}

// Validate rejects settings the editor cannot run with.
func (c Config) Validate() error {
	if c.General.DBPath == "" {
		return fmt.Errorf("general.db_path must not be empty")
	}
	if c.Catalog.DisplayLimit < 1 {
		return fmt.Errorf("catalog.display_limit must be at least 1, got %d", c.Catalog.DisplayLimit)
	}
	if c.Stepper.ArmDelayMs <= 0 {
		return fmt.Errorf("stepper.arm_delay_ms must be positive, got %d", c.Stepper.ArmDelayMs)
	}
	if c.Stepper.RepeatIntervalMs <= 0 {
		return fmt.Errorf("stepper.repeat_interval_ms must be positive, got %d", c.Stepper.RepeatIntervalMs)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

func (c StepperConfig) ArmDelay() time.Duration {
	return time.Duration(c.ArmDelayMs) * time.Millisecond
}

func (c StepperConfig) RepeatInterval() time.Duration {
	return time.Duration(c.RepeatIntervalMs) * time.Millisecond
}

// SlogLevel returns the configured level, defaulting to info.
func (c LogConfig) SlogLevel() slog.Level {
	lvl, err := parseLevel(c.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func parseLevel(s string) (slog.Level, error) {
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level %q: %w", s, err)
	}
	return lvl, nil
}

func applyIntEnv(dst *int, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*dst = n
}

func expandHome(p string) string {
	if p == "~" {
		return homeDir()
	}
	if strings.HasPrefix(p, "~/") {
		return filepath.Join(homeDir(), p[2:])
	}
	return p
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
