package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayer-calc/internal/config"
	"github.com/smokyabdulrahman/prayer-calc/internal/display"
	"github.com/smokyabdulrahman/prayer-calc/internal/logging"
	"github.com/smokyabdulrahman/prayer-calc/internal/method"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or modify configuration",
		Long:  "Display current configuration, or use subcommands to modify it.\nWhen run without subcommands, shows the contents of the config file.",
		// Config commands work on the file alone, so a bad environment
		// override must not lock the user out of fixing things.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logging.Setup(FlagLogLevel, cmd.ErrOrStderr())
		},
		Args: cobra.NoArgs,
		RunE: runConfigShow,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config value",
		Long: fmt.Sprintf("Set a configuration value. An empty value unsets the key.\nValid keys: %s\n\n"+
			"Every key can also be set with an environment variable, e.g. %s.\n\n"+
			"Examples:\n"+
			"  prayer-calc config set latitude 21.4225\n"+
			"  prayer-calc config set longitude 39.8262\n"+
			"  prayer-calc config set timezone Asia/Riyadh\n"+
			"  prayer-calc config set method Makkah\n"+
			"  prayer-calc config set asr Hanafi\n"+
			"  prayer-calc config set time_format 12h\n"+
			"  prayer-calc config set prayers Fajr,Dhuhr,Asr,Maghrib,Isha\n"+
			"  prayer-calc config set utc_offset \"\"",
			strings.Join(config.ValidKeys, ", "), config.EnvName("latitude")),
		Args: cobra.ExactArgs(2),
		RunE: runConfigSet,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Print a config value",
		Args:  cobra.ExactArgs(1),
		RunE:  runConfigGet,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Reset config to defaults",
		Long:  "Delete the config file and restore all settings to defaults.",
		Args:  cobra.NoArgs,
		RunE:  runConfigReset,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print config file path",
		Args:  cobra.NoArgs,
		RunE:  runConfigPath,
	})

	return cmd
}

// runConfigShow displays the config file.
func runConfigShow(cmd *cobra.Command, args []string) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if structured() {
		return writeStructured(out, cfg)
	}

	defaults := config.Defaults()
	fmt.Fprintf(out, "  Configuration (%s)\n\n", path)
	for _, key := range config.ValidKeys {
		val, _ := cfg.Get(key)
		shown := val
		switch {
		case val == "":
			shown = display.Dim("(not set)")
			if def, _ := defaults.Get(key); def != "" {
				shown = display.Dim(fmt.Sprintf("(default: %s)", def))
			}
		case key == "method":
			shown = formatMethodValue(val)
		}
		fmt.Fprintf(out, "  %-14s %s\n", key, shown)
	}
	return nil
}

// runConfigSet sets a config key to the given value.
func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	path, err := configPath()
	if err != nil {
		return err
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return err
	}

	if err := cfg.Set(key, value); err != nil {
		return err
	}
	if err := cfg.SaveTo(path); err != nil {
		return err
	}

	if value == "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Unset %s\n", key)
		return nil
	}
	stored, _ := cfg.Get(key)
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, stored)
	return nil
}

// runConfigGet prints one key of the config file.
func runConfigGet(cmd *cobra.Command, args []string) error {
	cfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	val, err := cfg.Get(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), val)
	return nil
}

// runConfigReset deletes the config file.
func runConfigReset(cmd *cobra.Command, args []string) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	if err := config.ResetAt(path); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Configuration reset to defaults.")
	return nil
}

// runConfigPath prints the config file path.
func runConfigPath(cmd *cobra.Command, args []string) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

// formatMethodValue adds the method description to its name.
func formatMethodValue(val string) string {
	if m, err := method.Lookup(val); err == nil {
		return fmt.Sprintf("%s (%s)", val, m.Description)
	}
	return val
}

type methodJSON struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Fajr        string `json:"fajr" yaml:"fajr"`
	Maghrib     string `json:"maghrib" yaml:"maghrib"`
	Isha        string `json:"isha" yaml:"isha"`
	Default     bool   `json:"default,omitempty" yaml:"default,omitempty"`
}

func newMethodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List all calculation methods",
		Long:  "Print the table of supported calculation methods and their twilight parameters.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all := method.All()
			rows := make([]methodJSON, 0, len(all))
			for _, m := range all {
				rows = append(rows, methodJSON{
					Name:        m.Name,
					Description: m.Description,
					Fajr:        fmt.Sprintf("%g°", m.Fajr),
					Maghrib:     m.Maghrib.String(),
					Isha:        m.Isha.String(),
					Default:     m.Name == method.Default,
				})
			}

			out := cmd.OutOrStdout()
			if structured() {
				return writeStructured(out, rows)
			}

			fmt.Fprintln(out, "Supported calculation methods:")
			fmt.Fprintln(out)
			tbl := display.NewTable("Name", "Description", "Fajr", "Maghrib", "Isha")
			for i, r := range rows {
				tbl.AddRow(r.Name, r.Description, r.Fajr, r.Maghrib, r.Isha)
				if r.Default {
					tbl.Highlight(i)
				}
			}
			if _, err := tbl.WriteTo(out); err != nil {
				return err
			}
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Use --method <Name> to select a calculation method (default: %s).\n", method.Default)
			fmt.Fprintln(out, "Maghrib minutes count from sunset; Isha minutes count from Maghrib.")
			return nil
		},
	}
}
