// Package config provides persistent configuration for the praytimes CLI.
//
// Configuration is stored as JSON at ~/.config/prayer-times/config.json
// (XDG-compliant). Environment variables named PRAYER_TIMES_<KEY> override
// the file. The merge priority is: CLI flags > environment > config file >
// defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/smokyabdulrahman/praytimes/internal/prayer"
	"github.com/spf13/viper"
)

const (
	configDirName  = "prayer-times"
	configFileName = "config.json"

	// EnvPrefix prefixes the environment variable of every key.
	EnvPrefix = "PRAYER_TIMES"
)

// ValidKeys lists all config keys that can be set via `config set`.
var ValidKeys = []string{
	"latitude", "longitude", "timezone",
	"method", "juristic", "high_lats",
	"dhuhr_minutes",
	"time_format",
	"prayers",
}

// Config holds all user-configurable settings.
// Nil pointers and empty strings mean "not set".
type Config struct {
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	Timezone     *float64 `json:"timezone,omitempty"` // hours east of UTC
	Method       string   `json:"method,omitempty"`
	Juristic     string   `json:"juristic,omitempty"`
	HighLats     string   `json:"high_lats,omitempty"`
	DhuhrMinutes *float64 `json:"dhuhr_minutes,omitempty"`
	TimeFormat   string   `json:"time_format,omitempty"` // "12h" or "24h"
	Prayers      string   `json:"prayers,omitempty"`     // comma-separated list
}

// Defaults returns a Config with all default values applied. Location and
// timezone have no default.
func Defaults() Config {
	dhuhr := 0.0
	return Config{
		Method:       prayer.MWL.String(),
		Juristic:     prayer.Shafii.String(),
		HighLats:     prayer.MidNight.String(),
		DhuhrMinutes: &dhuhr,
		TimeFormat:   prayer.Format24h,
	}
}

// Dir returns the config directory path.
// It respects $XDG_CONFIG_HOME if set, otherwise uses ~/.config/.
func Dir() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, configDirName), nil
}

// Path returns the full path to the config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load reads the config file from disk.
// If the file does not exist, it returns an empty Config (not an error).
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config from a specific file path. Every value goes
// through Set, so a hand-edited file is held to the same rules as
// `config set`.
func LoadFrom(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		var parseErr viper.ConfigParseError
		if errors.As(err, &parseErr) {
			return nil, fmt.Errorf("invalid config file %s: %w", path, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	for _, key := range ValidKeys {
		raw := v.Get(key)
		if raw == nil {
			continue
		}
		val := fmt.Sprint(raw)
		if val == "" {
			continue
		}
		if err := cfg.Set(key, val); err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", path, err)
		}
	}

	return &cfg, nil
}

// Save writes the config to disk, creating the directory if needed.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to a specific file path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create config directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Reset deletes the config file.
func Reset() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return ResetAt(path)
}

// ResetAt deletes the config file at a specific path.
func ResetAt(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete config file: %w", err)
	}
	return nil
}

// Set sets a config key to the given value.
// It validates the key name and parses the value into the correct type.
// Names are stored in their canonical spelling.
func (c *Config) Set(key, value string) error {
	switch key {
	case "latitude":
		v, err := parseRange(key, value, -90, 90)
		if err != nil {
			return err
		}
		c.Latitude = &v
	case "longitude":
		v, err := parseRange(key, value, -180, 180)
		if err != nil {
			return err
		}
		c.Longitude = &v
	case "timezone":
		v, err := parseRange(key, value, -12, 14)
		if err != nil {
			return err
		}
		c.Timezone = &v
	case "method":
		m, err := prayer.ParseCalculationMethod(value)
		if err != nil {
			return err
		}
		c.Method = m.String()
	case "juristic":
		j, err := prayer.ParseJuristicMethod(value)
		if err != nil {
			return err
		}
		c.Juristic = j.String()
	case "high_lats":
		a, err := prayer.ParseAdjustingMethod(value)
		if err != nil {
			return err
		}
		c.HighLats = a.String()
	case "dhuhr_minutes":
		v, err := parseRange(key, value, -60, 60)
		if err != nil {
			return err
		}
		c.DhuhrMinutes = &v
	case "time_format":
		if !prayer.ValidTimeFormat(value) {
			return fmt.Errorf("invalid time_format %q: must be \"12h\" or \"24h\"", value)
		}
		c.TimeFormat = value
	case "prayers":
		names, err := normalizePrayers(value)
		if err != nil {
			return err
		}
		c.Prayers = names
	default:
		return fmt.Errorf("unknown config key %q; valid keys: %s", key, strings.Join(ValidKeys, ", "))
	}

	return nil
}

// Get returns the string value of a config key, or "" when it is not set.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "latitude":
		return formatOptional(c.Latitude), nil
	case "longitude":
		return formatOptional(c.Longitude), nil
	case "timezone":
		return formatOptional(c.Timezone), nil
	case "method":
		return c.Method, nil
	case "juristic":
		return c.Juristic, nil
	case "high_lats":
		return c.HighLats, nil
	case "dhuhr_minutes":
		return formatOptional(c.DhuhrMinutes), nil
	case "time_format":
		return c.TimeFormat, nil
	case "prayers":
		return c.Prayers, nil
	default:
		return "", fmt.Errorf("unknown config key %q", key)
	}
}

// ApplyEnv overlays PRAYER_TIMES_<KEY> environment variables onto c.
func (c *Config) ApplyEnv() error {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	for _, key := range ValidKeys {
		val := strings.TrimSpace(v.GetString(key))
		if val == "" {
			continue
		}
		if err := c.Set(key, val); err != nil {
			return fmt.Errorf("%s_%s: %w", EnvPrefix, strings.ToUpper(key), err)
		}
	}
	return nil
}

// FillDefaults sets every unset key that has a default.
func (c *Config) FillDefaults() {
	d := Defaults()
	if c.Method == "" {
		c.Method = d.Method
	}
	if c.Juristic == "" {
		c.Juristic = d.Juristic
	}
	if c.HighLats == "" {
		c.HighLats = d.HighLats
	}
	if c.DhuhrMinutes == nil {
		c.DhuhrMinutes = d.DhuhrMinutes
	}
	if c.TimeFormat == "" {
		c.TimeFormat = d.TimeFormat
	}
}

// HasLocation reports whether both coordinates are set.
func (c *Config) HasLocation() bool {
	return c.Latitude != nil && c.Longitude != nil
}

// PrayerList returns the configured prayer names, or nil when unset.
func (c *Config) PrayerList() []string {
	if c.Prayers == "" {
		return nil
	}
	return strings.Split(c.Prayers, ",")
}

// Engine builds a calculation engine from the method settings. Unset keys
// take their defaults.
func (c *Config) Engine() (prayer.Engine, error) {
	cfg := *c
	cfg.FillDefaults()

	method, err := prayer.ParseCalculationMethod(cfg.Method)
	if err != nil {
		return prayer.Engine{}, err
	}
	juristic, err := prayer.ParseJuristicMethod(cfg.Juristic)
	if err != nil {
		return prayer.Engine{}, err
	}
	adjust, err := prayer.ParseAdjustingMethod(cfg.HighLats)
	if err != nil {
		return prayer.Engine{}, err
	}
	return prayer.New(method, juristic, adjust, *cfg.DhuhrMinutes), nil
}

func parseRange(key, value string, lo, hi float64) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be a number", key, value)
	}
	if math.IsNaN(v) || v < lo || v > hi {
		return 0, fmt.Errorf("invalid %s %q: must be between %g and %g", key, value, lo, hi)
	}
	return v, nil
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func normalizePrayers(value string) (string, error) {
	parts := strings.Split(value, ",")
	names := make([]string, 0, len(parts))
	for _, n := range parts {
		n = strings.TrimSpace(n)
		id, err := prayer.ParseTimeID(n)
		if err != nil {
			return "", fmt.Errorf("invalid prayer name %q in prayers list", n)
		}
		names = append(names, id.String())
	}
	return strings.Join(names, ","), nil
}
