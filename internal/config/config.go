// Package config provides persistent configuration for the prayer-calc CLI.
//
// Configuration is stored as JSON at ~/.config/prayer-calc/config.json
// (XDG-compliant), or as YAML when the path ends in .yaml or .yml.
// The merge priority is: CLI flags > environment > config file > defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/smokyabdulrahman/prayer-calc/internal/logging"
	"github.com/smokyabdulrahman/prayer-calc/internal/method"
	"github.com/smokyabdulrahman/prayer-calc/internal/prayer"
)

const (
	configDirName  = "prayer-calc"
	configFileName = "config.json"
)

// ValidKeys lists all config keys that can be set via `config set`.
var ValidKeys = []string{
	"latitude", "longitude",
	"utc_offset", "timezone",
	"label",
	"method", "asr", "high_lats",
	"time_format",
	"prayers",
	"cache_dir",
	"log_level",
	"mqtt_broker", "mqtt_topic",
}

// Config holds all user-configurable settings.
// Empty values mean "not set"; coordinates and offset are pointers so that
// 0 stays distinguishable from unset.
type Config struct {
	Latitude   *float64 `json:"latitude,omitempty" yaml:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty" yaml:"longitude,omitempty"`
	UTCOffset  *float64 `json:"utc_offset,omitempty" yaml:"utc_offset,omitempty"`
	Timezone   string   `json:"timezone,omitempty" yaml:"timezone,omitempty"` // IANA name, e.g. "Asia/Riyadh"
	Label      string   `json:"label,omitempty" yaml:"label,omitempty"`       // display name for the location
	Method     string   `json:"method,omitempty" yaml:"method,omitempty"`
	Asr        string   `json:"asr,omitempty" yaml:"asr,omitempty"`
	HighLats   string   `json:"high_lats,omitempty" yaml:"high_lats,omitempty"`
	TimeFormat string   `json:"time_format,omitempty" yaml:"time_format,omitempty"` // "12h" or "24h"
	Prayers    string   `json:"prayers,omitempty" yaml:"prayers,omitempty"`         // comma-separated list
	CacheDir   string   `json:"cache_dir,omitempty" yaml:"cache_dir,omitempty"`
	LogLevel   string   `json:"log_level,omitempty" yaml:"log_level,omitempty"`
	MQTTBroker string   `json:"mqtt_broker,omitempty" yaml:"mqtt_broker,omitempty"`
	MQTTTopic  string   `json:"mqtt_topic,omitempty" yaml:"mqtt_topic,omitempty"`
}

// Defaults returns a Config with all default values applied.
// Location fields are left unset: there is no implicit location.
func Defaults() Config {
	return Config{
		Method:     method.Default,
		Asr:        prayer.Standard.String(),
		HighLats:   prayer.HighLatNone.String(),
		TimeFormat: "24h",
		LogLevel:   "warn",
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

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// LoadFrom reads the config from a specific file path.
// A missing file yields an empty Config. A malformed file is an error.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if isYAML(path) {
		err = yaml.Unmarshal(data, &cfg)
	} else {
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
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

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if !isYAML(path) {
		data = append(data, '\n')
	}

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
// It validates the key name and the value. An empty value unsets the key.
func (c *Config) Set(key, value string) error {
	if value == "" {
		return c.unset(key)
	}

	switch key {
	case "latitude", "longitude", "utc_offset":
		return c.setFloat(key, value)
	case "timezone":
		if _, err := loadZone(value); err != nil {
			return fmt.Errorf("invalid timezone %q: %w", value, err)
		}
		c.Timezone = value
	case "label":
		c.Label = value
	case "method":
		if _, err := method.Lookup(value); err != nil {
			return err
		}
		c.Method = value
	case "asr":
		j, err := prayer.ParseJuristic(value)
		if err != nil {
			return err
		}
		c.Asr = j.String()
	case "high_lats":
		r, err := prayer.ParseHighLatRule(value)
		if err != nil {
			return err
		}
		c.HighLats = r.String()
	case "time_format":
		if value != "12h" && value != "24h" {
			return fmt.Errorf("invalid time_format %q: must be \"12h\" or \"24h\"", value)
		}
		c.TimeFormat = value
	case "prayers":
		for _, n := range strings.Split(value, ",") {
			if _, err := prayer.ParseEvent(n); err != nil {
				return fmt.Errorf("invalid prayers list: %w", err)
			}
		}
		c.Prayers = value
	case "cache_dir":
		c.CacheDir = value
	case "log_level":
		if _, err := logging.ParseLevel(value); err != nil {
			return err
		}
		c.LogLevel = strings.ToLower(value)
	case "mqtt_broker":
		u, err := url.Parse(value)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid mqtt_broker %q: expected scheme://host:port", value)
		}
		c.MQTTBroker = value
	case "mqtt_topic":
		if strings.ContainsAny(value, "+#") {
			return fmt.Errorf("invalid mqtt_topic %q: wildcards are not allowed", value)
		}
		c.MQTTTopic = value
	default:
		return fmt.Errorf("unknown config key %q; valid keys: %s", key, strings.Join(ValidKeys, ", "))
	}

	return nil
}

func (c *Config) setFloat(key, value string) error {
	var (
		dst    **float64
		lo, hi float64
	)
	switch key {
	case "latitude":
		dst, lo, hi = &c.Latitude, -90, 90
	case "longitude":
		dst, lo, hi = &c.Longitude, -180, 180
	default:
		dst, lo, hi = &c.UTCOffset, -12, 14
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fmt.Errorf("invalid %s %q: must be a number", key, value)
	}
	if math.IsNaN(v) || v < lo || v > hi {
		return fmt.Errorf("invalid %s %q: must be between %g and %g", key, value, lo, hi)
	}
	*dst = &v
	return nil
}

func (c *Config) unset(key string) error {
	switch key {
	case "latitude":
		c.Latitude = nil
	case "longitude":
		c.Longitude = nil
	case "utc_offset":
		c.UTCOffset = nil
	case "timezone":
		c.Timezone = ""
	case "label":
		c.Label = ""
	case "method":
		c.Method = ""
	case "asr":
		c.Asr = ""
	case "high_lats":
		c.HighLats = ""
	case "time_format":
		c.TimeFormat = ""
	case "prayers":
		c.Prayers = ""
	case "cache_dir":
		c.CacheDir = ""
	case "log_level":
		c.LogLevel = ""
	case "mqtt_broker":
		c.MQTTBroker = ""
	case "mqtt_topic":
		c.MQTTTopic = ""
	default:
		return fmt.Errorf("unknown config key %q; valid keys: %s", key, strings.Join(ValidKeys, ", "))
	}
	return nil
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// Get returns the string value of a config key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "latitude":
		return formatFloat(c.Latitude), nil
	case "longitude":
		return formatFloat(c.Longitude), nil
	case "utc_offset":
		return formatFloat(c.UTCOffset), nil
	case "timezone":
		return c.Timezone, nil
	case "label":
		return c.Label, nil
	case "method":
		return c.Method, nil
	case "asr":
		return c.Asr, nil
	case "high_lats":
		return c.HighLats, nil
	case "time_format":
		return c.TimeFormat, nil
	case "prayers":
		return c.Prayers, nil
	case "cache_dir":
		return c.CacheDir, nil
	case "log_level":
		return c.LogLevel, nil
	case "mqtt_broker":
		return c.MQTTBroker, nil
	case "mqtt_topic":
		return c.MQTTTopic, nil
	default:
		return "", fmt.Errorf("unknown config key %q", key)
	}
}

// Merge overlays every field that is set in o onto c.
func (c *Config) Merge(o Config) {
	if o.Latitude != nil {
		c.Latitude = o.Latitude
	}
	if o.Longitude != nil {
		c.Longitude = o.Longitude
	}
	if o.UTCOffset != nil {
		c.UTCOffset = o.UTCOffset
	}
	overlay := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	overlay(&c.Timezone, o.Timezone)
	overlay(&c.Label, o.Label)
	overlay(&c.Method, o.Method)
	overlay(&c.Asr, o.Asr)
	overlay(&c.HighLats, o.HighLats)
	overlay(&c.TimeFormat, o.TimeFormat)
	overlay(&c.Prayers, o.Prayers)
	overlay(&c.CacheDir, o.CacheDir)
	overlay(&c.LogLevel, o.LogLevel)
	overlay(&c.MQTTBroker, o.MQTTBroker)
	overlay(&c.MQTTTopic, o.MQTTTopic)
}
