// Command tmux-prayer-calc prints the next prayer on one line for status
// bars. It reads the same config file and environment as prayer-calc.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/smokyabdulrahman/prayer-calc/internal/cli"
	"github.com/smokyabdulrahman/prayer-calc/internal/method"
	"github.com/smokyabdulrahman/prayer-calc/internal/prayer"
)

// version is set at build time via ldflags:
//
//	go build -ldflags "-X main.version=v1.0.0"
var version = "dev"

// options are the parsed command line flags.
type options struct {
	format      string
	showVersion bool
	listMethods bool
}

// newFlagSet declares the flags. Location and calculation flags carry the
// same names as prayer-calc's, so LoadSettings picks them up.
func newFlagSet(o *options) *pflag.FlagSet {
	fs := pflag.NewFlagSet("tmux-prayer-calc", pflag.ContinueOnError)

	fs.StringVar(&cli.FlagConfig, "config", "", "Config file (default: ~/.config/prayer-calc/config.json)")
	fs.Float64("latitude", 0, "Latitude for prayer time calculation")
	fs.Float64("longitude", 0, "Longitude for prayer time calculation")
	fs.Float64("utc-offset", 0, "UTC offset in hours")
	fs.String("timezone", "", "IANA timezone, used when --utc-offset is not set")
	fs.String("method", "", "Calculation method name (see --list-methods)")
	fs.String("asr", "", "Asr juristic method: Standard or Hanafi")
	fs.String("high-lats", "", "High latitude rule: None, NightMiddle, OneSeventh or AngleBased")

	fs.StringVar(&o.format, "format", prayer.FormatNameAndTime, cli.FormatHelp)
	fs.String("time-format", "", "Time format: 12h or 24h")
	fs.String("prayers", "", "Comma-separated list of prayers to track (default: Fajr,Sunrise,Dhuhr,Asr,Maghrib,Isha)")
	fs.String("log-level", "", "Log level: debug, info, warn or error")

	fs.BoolVar(&o.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&o.listMethods, "list-methods", false, "Print supported calculation methods and exit")

	return fs
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if hint := cli.ErrorHint(err); hint != "" {
			fmt.Fprintf(os.Stderr, "hint: %s\n", hint)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	var o options
	fs := newFlagSet(&o)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if o.showVersion {
		fmt.Fprintf(stdout, "tmux-prayer-calc %s\n", version)
		return nil
	}
	if o.listMethods {
		printMethods(stdout)
		return nil
	}

	if err := cli.LoadSettings(fs, stderr); err != nil {
		return err
	}
	out, err := cli.NextStatus(o.format)
	if err != nil {
		return err
	}
	fmt.Fprint(stdout, out)
	return nil
}

// printMethods prints the table of supported calculation methods.
func printMethods(w io.Writer) {
	fmt.Fprintln(w, "Supported calculation methods:")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-8s %s\n", "Name", "Description")
	fmt.Fprintf(w, "  %-8s %s\n", "────", "───────────")
	for _, m := range method.All() {
		fmt.Fprintf(w, "  %-8s %s\n", m.Name, m.Description)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Use --method <Name> to select a calculation method (default: %s).\n", method.Default)
}
