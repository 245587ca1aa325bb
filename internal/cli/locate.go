package cli

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayer-calc/internal/geo"
)

var (
	flagLocateSave    bool
	flagLocateRefresh bool
)

// newDetector is replaced in tests.
var newDetector = geo.NewDetector

func newLocateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locate",
		Short: "Detect your location from your IP address",
		Long: "Look up the approximate location of this machine with ip-api.com.\n" +
			"The result is cached for 24 hours. Nothing is changed unless --save is given;\n" +
			"prayer times are never computed from a detected location implicitly.",
		Args: cobra.NoArgs,
		RunE: runLocate,
	}

	cmd.Flags().BoolVar(&flagLocateSave, "save", false, "Write latitude, longitude, timezone and label to the config file")
	cmd.Flags().BoolVar(&flagLocateRefresh, "refresh", false, "Ignore the cached result")

	return cmd
}

func runLocate(cmd *cobra.Command, args []string) error {
	cfg := currentSettings()
	c := openCache(cfg.CacheDir)

	var loc *geo.Location
	if c != nil && !flagLocateRefresh {
		loc = c.LoadGeo()
	}
	if loc == nil {
		detected, err := newDetector().Detect(cmd.Context())
		if err != nil {
			return fmt.Errorf("location detection failed: %w", err)
		}
		loc = detected
		if c != nil {
			if err := c.SaveGeo(loc); err != nil {
				log.Warn().Err(err).Msg("could not cache location")
			}
		}
	} else {
		log.Debug().Str("cache", c.Dir()).Msg("using cached location")
	}

	out := cmd.OutOrStdout()
	if structured() {
		if err := writeStructured(out, loc); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(out, "  %-12s %s\n", "Location", loc.Label())
		fmt.Fprintf(out, "  %-12s %s, %s\n", "Coordinates",
			strconv.FormatFloat(loc.Latitude, 'f', -1, 64), strconv.FormatFloat(loc.Longitude, 'f', -1, 64))
		fmt.Fprintf(out, "  %-12s %s\n", "Timezone", loc.Timezone)
	}

	if !flagLocateSave {
		return nil
	}
	return saveLocation(cmd, loc)
}

// saveLocation writes a detected location into the config file.
func saveLocation(cmd *cobra.Command, loc *geo.Location) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	file, err := loadFileConfig()
	if err != nil {
		return err
	}

	values := [][2]string{
		{"latitude", strconv.FormatFloat(loc.Latitude, 'f', -1, 64)},
		{"longitude", strconv.FormatFloat(loc.Longitude, 'f', -1, 64)},
		{"timezone", loc.Timezone},
		{"label", loc.Label()},
	}
	for _, kv := range values {
		if kv[1] == "" {
			continue
		}
		if err := file.Set(kv[0], kv[1]); err != nil {
			return fmt.Errorf("detected %s is not usable: %w", kv[0], err)
		}
	}
	if err := file.SaveTo(path); err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Saved location to %s\n", path)
	if file.UTCOffset != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "note: utc_offset is set and takes precedence over timezone; run `prayer-calc config set utc_offset \"\"` to use %s\n", loc.Timezone)
	}
	return nil
}
