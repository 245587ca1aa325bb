package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes the environment variable of every config key,
// e.g. PRAYER_CALC_LATITUDE.
const EnvPrefix = "PRAYER_CALC_"

// EnvName returns the environment variable that overrides key.
func EnvName(key string) string {
	return EnvPrefix + strings.ToUpper(key)
}

// LoadDotEnv loads variables from a .env file into the process environment.
// Variables already set are not overridden and a missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides keys from the environment. lookup is usually
// os.LookupEnv. Empty variables are ignored.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	for _, key := range ValidKeys {
		v, ok := lookup(EnvName(key))
		if !ok || v == "" {
			continue
		}
		if err := c.Set(key, v); err != nil {
			return fmt.Errorf("%s: %w", EnvName(key), err)
		}
	}
	return nil
}
