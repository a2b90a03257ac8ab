package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/smokyabdulrahman/praytimes/internal/config"
	"github.com/smokyabdulrahman/praytimes/internal/display"
	"github.com/smokyabdulrahman/praytimes/internal/prayer"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Global flags shared across all subcommands.
var (
	FlagLatitude     float64
	FlagLongitude    float64
	FlagTimezone     float64
	FlagMethod       string
	FlagJuristic     string
	FlagHighLats     string
	FlagDhuhrMinutes float64
	FlagJSON         bool
	FlagTimeFormat   string
	FlagVerbose      bool
)

// loadedConfig holds the config loaded during PersistentPreRunE.
// Available to all subcommand handlers.
var loadedConfig *config.Config

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// clock returns the current time. Tests replace it.
var clock = time.Now

var errNoLocation = errors.New("no location configured: pass --latitude and --longitude, " +
	"set PRAYER_TIMES_LATITUDE and PRAYER_TIMES_LONGITUDE, or run 'praytimes config set latitude <value>'")

// flagKeys maps persistent flags onto the config keys they override.
var flagKeys = []struct{ flag, key string }{
	{"latitude", "latitude"},
	{"longitude", "longitude"},
	{"timezone", "timezone"},
	{"method", "method"},
	{"juristic", "juristic"},
	{"high-lats", "high_lats"},
	{"dhuhr-minutes", "dhuhr_minutes"},
	{"time-format", "time_format"},
}

// NewRootCmd creates the root command for the praytimes CLI.
// The version parameter is set by the calling binary via ldflags.
func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "praytimes",
		Short:   "Islamic prayer times CLI",
		Long:    "Compute Islamic prayer times offline from coordinates, a UTC offset and a calculation method.",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cmd.ErrOrStderr(), FlagVerbose)
			if FlagJSON {
				display.SetEnabled(false)
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			loadedConfig = cfg
			return nil
		},
		// Default action: show today's prayer schedule.
		RunE:          runToday,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Register global persistent flags.
	pf := rootCmd.PersistentFlags()
	pf.Float64Var(&FlagLatitude, "latitude", 0, "Latitude in degrees, north positive")
	pf.Float64Var(&FlagLongitude, "longitude", 0, "Longitude in degrees, east positive")
	pf.Float64Var(&FlagTimezone, "timezone", 0, "UTC offset in hours (default: the system offset for each date)")
	pf.StringVar(&FlagMethod, "method", "", "Calculation method: "+strings.Join(prayer.MethodNames(), ", "))
	pf.StringVar(&FlagJuristic, "juristic", "", "Asr juristic method: shafii or hanafi")
	pf.StringVar(&FlagHighLats, "high-lats", "", "High latitude adjustment: none, midnight, oneseventh or anglebased")
	pf.Float64Var(&FlagDhuhrMinutes, "dhuhr-minutes", 0, "Minutes added to Dhuhr after the zenith")
	pf.BoolVar(&FlagJSON, "json", false, "Output as JSON (where supported)")
	pf.StringVar(&FlagTimeFormat, "time-format", "", "Time format: 12h or 24h (overrides config)")
	pf.BoolVarP(&FlagVerbose, "verbose", "v", false, "Log resolved settings and raw times to stderr")

	// Register subcommands.
	rootCmd.AddCommand(newNextCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newWeekCmd())
	rootCmd.AddCommand(newMonthCmd())
	rootCmd.AddCommand(newQueryCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newMethodsCmd())

	return rootCmd
}

// setupLogging installs the package logger. Verbose runs log at debug level;
// otherwise only warnings reach w.
func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// effectiveConfig returns the merged configuration values,
// applying the priority: CLI flags > environment > config file > defaults.
// It uses cobra's Changed() to detect whether a flag was explicitly set.
func effectiveConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg config.Config
	if loadedConfig != nil {
		cfg = *loadedConfig
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	root := cmd.Root().PersistentFlags()

	for _, fk := range flagKeys {
		f := changedFlag(flags, root, fk.flag)
		if f == nil {
			continue
		}
		if err := cfg.Set(fk.key, f.Value.String()); err != nil {
			return nil, fmt.Errorf("--%s: %w", fk.flag, err)
		}
	}

	cfg.FillDefaults()
	return &cfg, nil
}

// flagWasSet checks if a flag was explicitly set on either the local or persistent flag set.
func flagWasSet(local, persistent *pflag.FlagSet, name string) bool {
	return changedFlag(local, persistent, name) != nil
}

func changedFlag(local, persistent *pflag.FlagSet, name string) *pflag.Flag {
	if f := local.Lookup(name); f != nil && f.Changed {
		return f
	}
	if f := persistent.Lookup(name); f != nil && f.Changed {
		return f
	}
	return nil
}

// calculator bundles what every command needs to produce a schedule.
type calculator struct {
	cfg        *config.Config
	engine     prayer.Engine
	place      prayer.Place
	selected   []prayer.TimeID
	timeFormat string
}

// newCalculator resolves the effective config into an engine and a place.
// selected overrides the configured prayer list when non-empty.
func newCalculator(cmd *cobra.Command, selected []string) (*calculator, error) {
	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return nil, err
	}
	if !cfg.HasLocation() {
		return nil, errNoLocation
	}

	engine, err := cfg.Engine()
	if err != nil {
		return nil, err
	}

	if len(selected) == 0 {
		selected = cfg.PrayerList()
	}
	ids, err := prayer.ParsePrayerNames(selected)
	if err != nil {
		return nil, err
	}

	c := &calculator{
		cfg:        cfg,
		engine:     engine,
		place:      prayer.Place{Latitude: *cfg.Latitude, Longitude: *cfg.Longitude, Timezone: cfg.Timezone},
		selected:   ids,
		timeFormat: cfg.TimeFormat,
	}

	logger.Debug("resolved settings",
		"place", c.place.String(),
		"timezone", timezoneSource(cfg.Timezone),
		"engine", engine.String(),
		"time_format", c.timeFormat,
		"prayers", len(ids))
	return c, nil
}

// day computes the schedule of date's calendar day for ids.
func (c *calculator) day(date time.Time, ids []prayer.TimeID) []prayer.Prayer {
	prayers, ts := c.engine.Day(c.place, date, ids)
	logger.Debug("computed times",
		"date", date.Format("2006-01-02"),
		"offset", c.place.Offset(date),
		"raw", fmt.Sprintf("%.6f", ts[:]),
		"times", ts.Format24().Strings())
	return prayers
}

// today returns the current time in the place's zone.
func (c *calculator) today() time.Time {
	return c.place.Today(clock())
}

// format renders a prayer's clock time, or the undefined placeholder.
func (c *calculator) format(p prayer.Prayer) string {
	return prayer.FormatHours(p.Hours, c.timeFormat)
}

// warnUndefined reports selected prayers that do not occur on date.
func warnUndefined(w io.Writer, prayers []prayer.Prayer, date time.Time) {
	for _, p := range prayers {
		if !p.Defined() {
			fmt.Fprintf(w, "warning: %s does not occur on %s at this latitude\n", p.Name, date.Format("02 Jan 2006"))
		}
	}
}

func timezoneSource(tz *float64) string {
	if tz == nil {
		return "system"
	}
	return prayer.ZoneName(*tz)
}
