package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/smokyabdulrahman/praytimes/internal/config"
	"github.com/smokyabdulrahman/praytimes/internal/display"
	"github.com/smokyabdulrahman/praytimes/internal/prayer"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or modify configuration",
		Long:  "Display current configuration, or use subcommands to modify it.\nWhen run without subcommands, shows the current configuration.",
		RunE:  runConfigShow,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config value",
		Long: fmt.Sprintf("Set a configuration value. Valid keys: %s\n\nExamples:\n"+
			"  praytimes config set latitude 21.4225\n"+
			"  praytimes config set longitude 39.8262\n"+
			"  praytimes config set timezone 3\n"+
			"  praytimes config set method Makkah\n"+
			"  praytimes config set high_lats anglebased\n"+
			"  praytimes config set time_format 12h\n"+
			"  praytimes config set prayers Fajr,Dhuhr,Asr,Maghrib,Isha",
			strings.Join(config.ValidKeys, ", ")),
		Args: cobra.ExactArgs(2),
		RunE: runConfigSet,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Reset config to defaults",
		Long:  "Delete the config file and restore all settings to defaults.",
		RunE:  runConfigReset,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print config file path",
		RunE:  runConfigPath,
	})

	return cmd
}

// runConfigShow displays the current configuration.
func runConfigShow(cmd *cobra.Command, args []string) error {
	path, err := config.Path()
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "  Configuration (%s)\n\n", path)

	defaults := config.Defaults()
	for _, key := range config.ValidKeys {
		val, _ := cfg.Get(key)
		shown := val
		if shown == "" {
			shown = display.Dim("(not set)")
			if def, _ := defaults.Get(key); def != "" {
				shown = display.Dim(fmt.Sprintf("(default: %s)", def))
			}
		}
		// Add a descriptive label for the method.
		if key == "method" && val != "" {
			shown = formatMethodValue(val)
		}
		fmt.Fprintf(w, "  %-14s %s\n", key, shown)
	}
	return nil
}

// runConfigSet sets a config key to the given value.
func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := cfg.Set(key, value); err != nil {
		return err
	}

	if err := cfg.Save(); err != nil {
		return err
	}

	stored, _ := cfg.Get(key)
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, stored)
	return nil
}

// runConfigReset deletes the config file.
func runConfigReset(cmd *cobra.Command, args []string) error {
	if err := config.Reset(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Configuration reset to defaults.")
	return nil
}

// runConfigPath prints the config file path.
func runConfigPath(cmd *cobra.Command, args []string) error {
	path, err := config.Path()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

// formatMethodValue adds the long method name to its short name.
func formatMethodValue(val string) string {
	m, err := prayer.ParseCalculationMethod(val)
	if err != nil {
		return val
	}
	return fmt.Sprintf("%s  %s", val, display.Dim(m.Description()))
}

func newMethodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List all calculation methods",
		Long:  "Print the table of supported calculation methods with their twilight angles.",
		RunE: func(cmd *cobra.Command, args []string) error {
			PrintMethods(cmd.OutOrStdout())
			return nil
		},
	}
}

// PrintMethods writes the supported calculation methods and how to pick one.
func PrintMethods(w io.Writer) {
	fmt.Fprintln(w, "Supported calculation methods:")
	fmt.Fprintln(w)
	fmt.Fprint(w, methodsTable().Render())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Use --method <name> to select a calculation method.")
	fmt.Fprintf(w, "If omitted, %s is used.\n", prayer.MWL)
}

// methodsTable lays out every method's Fajr, Maghrib and Isha definitions.
func methodsTable() *display.Table {
	tbl := display.NewTable([]string{"Name", "Fajr", "Maghrib", "Isha", "Description"})
	for _, m := range prayer.AllMethods {
		cfg, _ := prayer.Config(m)
		tbl.AddRow([]string{
			m.String(),
			fmt.Sprintf("%g°", cfg.FajrAngle),
			cfg.MaghribString(),
			cfg.IshaString(),
			m.Description(),
		})
	}
	return tbl
}
