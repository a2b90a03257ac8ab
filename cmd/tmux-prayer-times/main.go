// Command tmux-prayer-times prints the next prayer for a tmux status line.
//
// Settings come from the praytimes config file and PRAYER_TIMES_*
// environment variables; flags override both.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/smokyabdulrahman/praytimes/internal/cli"
	"github.com/smokyabdulrahman/praytimes/internal/config"
	"github.com/smokyabdulrahman/praytimes/internal/prayer"
	"github.com/spf13/pflag"
)

// version is set at build time via ldflags:
//
//	go build -ldflags "-X main.version=v1.0.0"
var version = "dev"

var errNoLocation = errors.New("no location: pass --latitude and --longitude or run 'praytimes config set latitude <value>'")

// options holds the flags that are not config keys.
type options struct {
	format      string
	prayers     string
	showVersion bool
	listMethods bool
}

// flagKeys maps flags onto the config keys they override.
var flagKeys = []struct{ flag, key string }{
	{"latitude", "latitude"},
	{"longitude", "longitude"},
	{"timezone", "timezone"},
	{"method", "method"},
	{"juristic", "juristic"},
	{"high-lats", "high_lats"},
	{"dhuhr-minutes", "dhuhr_minutes"},
	{"time-format", "time_format"},
	{"prayers", "prayers"},
}

func newFlagSet(opts *options) *pflag.FlagSet {
	fs := pflag.NewFlagSet("tmux-prayer-times", pflag.ContinueOnError)

	// Location flags
	fs.Float64("latitude", 0, "Latitude for prayer time calculation")
	fs.Float64("longitude", 0, "Longitude for prayer time calculation")
	fs.Float64("timezone", 0, "UTC offset in hours (default: the system offset)")

	// Calculation flags
	fs.String("method", "", "Calculation method: "+strings.Join(prayer.MethodNames(), ", "))
	fs.String("juristic", "", "Asr juristic method: shafii or hanafi")
	fs.String("high-lats", "", "High latitude adjustment: none, midnight, oneseventh or anglebased")
	fs.Float64("dhuhr-minutes", 0, "Minutes added to Dhuhr after the zenith")

	// Display flags
	fs.StringVar(&opts.format, "format", prayer.FormatNameAndTime, "Display format: "+strings.Join(prayer.OutputModes, ", ")+
		", or a custom Go template (e.g. '{{.Name}} in {{.Remaining}}'). Template fields: .Name, .ShortName, .Time, .Remaining, .Hours, .Minutes")
	fs.String("time-format", "", "Time format: 12h or 24h")
	fs.StringVar(&opts.prayers, "prayers", "", "Comma-separated list of prayers to track (default: Fajr,Sunrise,Dhuhr,Asr,Maghrib,Isha)")

	// Info flags
	fs.BoolVar(&opts.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&opts.listMethods, "list-methods", false, "Print supported calculation methods and exit")

	return fs
}

func main() {
	var opts options
	fs := newFlagSet(&opts)
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	if opts.showVersion {
		fmt.Printf("tmux-prayer-times %s\n", version)
		return
	}

	if opts.listMethods {
		cli.PrintMethods(os.Stdout)
		return
	}

	cfg, err := resolveConfig(fs)
	if err == nil {
		err = run(os.Stdout, cfg, opts.format, time.Now())
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// resolveConfig merges flags > environment > config file > defaults.
func resolveConfig(fs *pflag.FlagSet) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	for _, fk := range flagKeys {
		if !fs.Changed(fk.flag) {
			continue
		}
		if err := cfg.Set(fk.key, fs.Lookup(fk.flag).Value.String()); err != nil {
			return nil, fmt.Errorf("--%s: %w", fk.flag, err)
		}
	}

	cfg.FillDefaults()
	return cfg, nil
}

// run prints the next prayer after now. When none of the selected prayers
// occurs in the coming days it prints the undefined placeholder so the
// status line stays intact.
func run(w io.Writer, cfg *config.Config, format string, now time.Time) error {
	if !cfg.HasLocation() {
		return errNoLocation
	}

	engine, err := cfg.Engine()
	if err != nil {
		return err
	}
	selected, err := prayer.ParsePrayerNames(cfg.PrayerList())
	if err != nil {
		return err
	}

	place := prayer.Place{Latitude: *cfg.Latitude, Longitude: *cfg.Longitude, Timezone: cfg.Timezone}
	next := engine.Upcoming(place, now, selected)
	if next == nil {
		fmt.Fprint(w, prayer.Undefined)
		return nil
	}

	fmt.Fprint(w, prayer.FormatOutput(*next, now, format, cfg.TimeFormat))
	return nil
}
