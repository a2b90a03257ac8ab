package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/smokyabdulrahman/praytimes/internal/display"
	"github.com/smokyabdulrahman/praytimes/internal/prayer"
	"github.com/spf13/cobra"
)

func runToday(cmd *cobra.Command, args []string) error {
	// Get merged config (CLI flags > env > config file > defaults).
	calc, err := newCalculator(cmd, nil)
	if err != nil {
		return err
	}

	now := calc.today()
	prayers := calc.day(now, calc.selected)

	// Find current and next prayers.
	current := prayer.CurrentPrayer(prayers, now)
	next := prayer.NextPrayer(prayers, now)

	// JSON output.
	if FlagJSON {
		return printTodayJSON(cmd.OutOrStdout(), calc, prayers, current, next, now)
	}

	warnUndefined(cmd.ErrOrStderr(), prayers, now)

	// Rich terminal output.
	printTodayRich(cmd.OutOrStdout(), calc, prayers, current, next, now)
	return nil
}

// printTodayRich renders the colored terminal output for today's prayer schedule.
func printTodayRich(w io.Writer, calc *calculator, prayers []prayer.Prayer, current, next *prayer.Prayer, now time.Time) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", display.Bold("Prayer Times"))
	fmt.Fprintln(w)

	// Location and date info.
	fmt.Fprintf(w, "  %s\n", display.Cyan(calc.place.String()))
	fmt.Fprintf(w, "  %s\n", now.Location().String())
	fmt.Fprintf(w, "  %s\n", now.Format("Monday, 02 January 2006"))
	fmt.Fprintf(w, "  %s\n", display.Dim(methodLine(calc.engine)))

	fmt.Fprintln(w)

	// Find the max prayer name length for alignment.
	maxNameLen := 0
	for _, p := range prayers {
		if len(p.Name) > maxNameLen {
			maxNameLen = len(p.Name)
		}
	}

	// Print each prayer.
	for _, p := range prayers {
		line := fmt.Sprintf("  %s  %s", padRight(p.Name, maxNameLen), calc.format(p))

		switch {
		case !p.Defined():
			fmt.Fprintln(w, display.Gray(line))
		case current != nil && p.ID == current.ID:
			fmt.Fprintln(w, display.Green(line))
		case next != nil && p.ID == next.ID:
			// Next prayer: accent color + countdown.
			remaining := prayer.FormatRemaining(prayer.TimeRemaining(p, now))
			suffix := fmt.Sprintf("  <- next in %s", remaining)
			fmt.Fprintln(w, display.Accent(line)+display.Yellow(suffix))
		default:
			fmt.Fprintln(w, line)
		}
	}

	fmt.Fprintln(w)
}

// methodLine summarizes the calculation settings, e.g.
// "Muslim World League (MWL) · Shafii · MidNight".
func methodLine(e prayer.Engine) string {
	parts := []string{e.Method().Description(), e.Juristic().String(), e.Adjusting().String()}
	if e.DhuhrMinutes() != 0 {
		parts = append(parts, fmt.Sprintf("dhuhr %+g min", e.DhuhrMinutes()))
	}
	return strings.Join(parts, " · ")
}

// padRight pads a string to the given width with spaces.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// todayJSON is the JSON output structure for the root command.
type todayJSON struct {
	Location jsonLocation      `json:"location"`
	Date     string            `json:"date"`
	Method   jsonMethod        `json:"method"`
	Timings  map[string]string `json:"timings"`
	Current  string            `json:"current"`
	Next     *todayJSONNext    `json:"next"`
}

type jsonLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
	UTCOffset float64 `json:"utc_offset"`
}

type jsonMethod struct {
	Name         string  `json:"name"`
	Juristic     string  `json:"juristic"`
	HighLats     string  `json:"high_lats"`
	DhuhrMinutes float64 `json:"dhuhr_minutes"`
}

type todayJSONNext struct {
	Prayer    string `json:"prayer"`
	Time      string `json:"time"`
	Remaining string `json:"remaining"`
}

func newJSONLocation(calc *calculator, date time.Time) jsonLocation {
	tz := calc.place.Offset(date)
	return jsonLocation{
		Latitude:  calc.place.Latitude,
		Longitude: calc.place.Longitude,
		Timezone:  prayer.ZoneName(tz),
		UTCOffset: tz,
	}
}

func newJSONMethod(e prayer.Engine) jsonMethod {
	return jsonMethod{
		Name:         e.Method().String(),
		Juristic:     e.Juristic().String(),
		HighLats:     e.Adjusting().String(),
		DhuhrMinutes: e.DhuhrMinutes(),
	}
}

// timingsMap keys formatted times by lower-case prayer name.
func timingsMap(calc *calculator, prayers []prayer.Prayer) map[string]string {
	timings := make(map[string]string, len(prayers))
	for _, p := range prayers {
		timings[strings.ToLower(p.Name)] = calc.format(p)
	}
	return timings
}

// printTodayJSON renders structured JSON output.
func printTodayJSON(w io.Writer, calc *calculator, prayers []prayer.Prayer, current, next *prayer.Prayer, now time.Time) error {
	out := todayJSON{
		Location: newJSONLocation(calc, now),
		Date:     now.Format("2006-01-02"),
		Method:   newJSONMethod(calc.engine),
		Timings:  timingsMap(calc, prayers),
	}

	if current != nil {
		out.Current = strings.ToLower(current.Name)
	}

	if next != nil {
		out.Next = &todayJSONNext{
			Prayer:    strings.ToLower(next.Name),
			Time:      calc.format(*next),
			Remaining: prayer.FormatRemaining(prayer.TimeRemaining(*next, now)),
		}
	}

	return writeJSON(w, out)
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
