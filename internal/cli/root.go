package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/smokyabdulrahman/prayer-calc/internal/config"
	"github.com/smokyabdulrahman/prayer-calc/internal/logging"
	"github.com/smokyabdulrahman/prayer-calc/internal/method"
	"github.com/smokyabdulrahman/prayer-calc/internal/prayer"
)

// Global flags shared across all subcommands.
var (
	FlagConfig     string
	FlagLatitude   float64
	FlagLongitude  float64
	FlagUTCOffset  float64
	FlagTimezone   string
	FlagMethod     string
	FlagAsr        string
	FlagHighLats   string
	FlagTimeFormat string
	FlagJSON       bool
	FlagYAML       bool
	FlagCacheDir   string
	FlagLogLevel   string
	FlagDate       string
)

// flagKeys maps flag names to the config keys they override. Only flags that
// were explicitly set take part in the merge.
var flagKeys = map[string]string{
	"latitude":    "latitude",
	"longitude":   "longitude",
	"utc-offset":  "utc_offset",
	"timezone":    "timezone",
	"method":      "method",
	"asr":         "asr",
	"high-lats":   "high_lats",
	"time-format": "time_format",
	"cache-dir":   "cache_dir",
	"log-level":   "log_level",
	"prayers":     "prayers",
	"mqtt-broker": "mqtt_broker",
	"mqtt-topic":  "mqtt_topic",
}

// settings holds the merged configuration built in PersistentPreRunE.
// Available to all subcommand handlers.
var settings *config.Config

// clock returns the current time. Replaced in tests.
var clock = time.Now

// NewRootCmd creates the root command for the prayer-calc CLI.
// The version parameter is set by the calling binary via ldflags.
func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "prayer-calc",
		Short: "Islamic prayer times, computed locally",
		Long: "Compute Islamic prayer times from the position of the sun.\n" +
			"No network access is needed except for `locate` and `compare`.",
		Version:           version,
		PersistentPreRunE: loadSettings,
		// Default action: show today's prayer schedule.
		RunE:          runToday,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetVersionTemplate(PrintVersion(version))

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&FlagConfig, "config", "", "Config file (default: ~/.config/prayer-calc/config.json; .yaml/.yml for YAML)")
	pf.Float64Var(&FlagLatitude, "latitude", 0, "Override latitude in degrees, north positive")
	pf.Float64Var(&FlagLongitude, "longitude", 0, "Override longitude in degrees, east positive")
	pf.Float64Var(&FlagUTCOffset, "utc-offset", 0, "Override UTC offset in hours (wins over --timezone)")
	pf.StringVar(&FlagTimezone, "timezone", "", "Override IANA timezone, e.g. Europe/London")
	pf.StringVar(&FlagMethod, "method", "", "Calculation method (see `methods`)")
	pf.StringVar(&FlagAsr, "asr", "", "Asr juristic method: Standard or Hanafi")
	pf.StringVar(&FlagHighLats, "high-lats", "", "High latitude rule: None, NightMiddle, OneSeventh or AngleBased")
	pf.StringVar(&FlagTimeFormat, "time-format", "", "Time format: 12h or 24h (overrides config)")
	pf.BoolVar(&FlagJSON, "json", false, "Output as JSON (where supported)")
	pf.BoolVar(&FlagYAML, "yaml", false, "Output as YAML (where supported)")
	pf.StringVar(&FlagCacheDir, "cache-dir", "", "Cache directory (default: ~/.cache/prayer-calc/)")
	pf.StringVar(&FlagLogLevel, "log-level", "", "Log level: debug, info, warn or error")
	pf.StringVar(&FlagDate, "date", "", "Date as YYYY-MM-DD (default: today)")

	rootCmd.AddCommand(newTodayCmd())
	rootCmd.AddCommand(newNextCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newWeekCmd())
	rootCmd.AddCommand(newMonthCmd())
	rootCmd.AddCommand(newQueryCmd())
	rootCmd.AddCommand(newRawCmd())
	rootCmd.AddCommand(newMethodsCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newLocateCmd())
	rootCmd.AddCommand(newCompareCmd())
	rootCmd.AddCommand(newWatchCmd())

	return rootCmd
}

// PrintVersion returns the version string in the expected format.
func PrintVersion(version string) string {
	return fmt.Sprintf("prayer-calc %s\n", version)
}

// ErrorHint returns advice for errors the user can fix from the command
// line, or "".
func ErrorHint(err error) string {
	switch {
	case errors.Is(err, prayer.ErrLocationNotConfigured):
		return "set a location first, e.g.\n" +
			"  prayer-calc config set latitude 21.4225\n" +
			"  prayer-calc config set longitude 39.8262\n" +
			"  prayer-calc config set utc_offset 3\n" +
			"or run `prayer-calc locate --save`"
	case errors.Is(err, method.ErrUnknownMethod):
		return "run `prayer-calc methods` to list the available methods"
	case errors.Is(err, prayer.ErrSunAngleUnreachable):
		return "try a high latitude rule, e.g. --high-lats AngleBased"
	}
	return ""
}

// configPath returns the config file in use.
func configPath() (string, error) {
	if FlagConfig != "" {
		return FlagConfig, nil
	}
	return config.Path()
}

// loadFileConfig reads the config file only, without defaults or overrides.
func loadFileConfig() (*config.Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	return config.LoadFrom(path)
}

func loadSettings(cmd *cobra.Command, args []string) error {
	return LoadSettings(cmd.Flags(), cmd.ErrOrStderr())
}

// LoadSettings builds the effective configuration with the priority
// CLI flags > environment > config file > defaults, and installs the logger
// on stderr. Flags are matched by name; unknown flags are ignored.
func LoadSettings(flags *pflag.FlagSet, stderr io.Writer) error {
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(stderr, "warning: %v\n", err)
	}

	file, err := loadFileConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cfg := config.Defaults()
	cfg.Merge(*file)
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return err
	}

	overrides, err := flagOverrides(flags)
	if err != nil {
		return err
	}
	cfg.Merge(overrides)

	if err := logging.Setup(cfg.LogLevel, stderr); err != nil {
		return err
	}
	log.Debug().Str("method", cfg.Method).Str("asr", cfg.Asr).Str("high_lats", cfg.HighLats).
		Str("location", formatCoords(&cfg)).Msg("settings loaded")

	settings = &cfg
	return nil
}

// flagOverrides collects explicitly set flags into a Config, validating each
// value the same way `config set` does.
func flagOverrides(flags *pflag.FlagSet) (config.Config, error) {
	var (
		out config.Config
		err error
	)
	flags.Visit(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok || err != nil {
			return
		}
		if serr := out.Set(key, f.Value.String()); serr != nil {
			err = fmt.Errorf("--%s: %w", f.Name, serr)
		}
	})
	return out, err
}

func formatCoords(cfg *config.Config) string {
	lat, _ := cfg.Get("latitude")
	lon, _ := cfg.Get("longitude")
	if lat == "" || lon == "" {
		return "(not set)"
	}
	return lat + ", " + lon
}
