package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/smokyabdulrahman/praytimes/internal/display"
	"github.com/smokyabdulrahman/praytimes/internal/prayer"
	"github.com/spf13/cobra"
)

var flagQueryDays string

func newQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <prayer>",
		Short: "Query a specific prayer time",
		Long: "Query a specific prayer time for today, or across multiple days with --days.\n\n" +
			"Valid prayer names: Fajr, Sunrise, Dhuhr, Asr, Sunset, Maghrib, Isha",
		Args: cobra.ExactArgs(1),
		RunE: runQuery,
	}

	cmd.Flags().StringVar(&flagQueryDays, "days", "", "Number of days to show (or 'week'/'month')")

	return cmd
}

func runQuery(cmd *cobra.Command, args []string) error {
	id, err := prayer.ParseTimeID(args[0])
	if err != nil {
		return err
	}

	days, err := parseDays(flagQueryDays)
	if err != nil {
		return err
	}

	calc, err := newCalculator(cmd, nil)
	if err != nil {
		return err
	}

	daysList := calc.days(days, []prayer.TimeID{id})
	w := cmd.OutOrStdout()

	// Single day: one line.
	if days == 1 {
		return printQuerySingle(w, calc, daysList[0])
	}

	if FlagJSON {
		return printQueryJSON(w, calc, id, daysList)
	}

	// Rich terminal output.
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", display.Boldf("%s Times - %d Days", id, days))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", calc.place.String())
	fmt.Fprintln(w)

	tbl := display.NewTable([]string{"Date", id.String()})
	tbl.SetMuted(prayer.Undefined)
	for _, dd := range daysList {
		tbl.AddRow([]string{dd.Date.Format("Mon 02 Jan"), calc.format(dd.Prayers[0])})
	}
	tbl.SetHighlightRow(0)

	fmt.Fprint(w, tbl.Render())
	fmt.Fprintln(w)
	return nil
}

// parseDays accepts a positive integer, "week" or "month". Empty means one day.
func parseDays(s string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return 1, nil
	case "week":
		return 7, nil
	case "month":
		return 30, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid --days value %q: must be a positive integer, 'week', or 'month'", s)
	}
	return n, nil
}

func printQuerySingle(w io.Writer, calc *calculator, dd dayData) error {
	p := dd.Prayers[0]
	timeStr := calc.format(p)

	if FlagJSON {
		return writeJSON(w, queryJSONSingle{
			Prayer: strings.ToLower(p.Name),
			Time:   timeStr,
			Date:   dd.Date.Format("2006-01-02"),
		})
	}

	fmt.Fprintf(w, "%s %s\n", p.Name, timeStr)
	return nil
}

type queryJSONSingle struct {
	Prayer string `json:"prayer"`
	Time   string `json:"time"`
	Date   string `json:"date"`
}

type queryJSONMulti struct {
	Location jsonLocation   `json:"location"`
	Prayer   string         `json:"prayer"`
	Days     []queryJSONDay `json:"days"`
}

type queryJSONDay struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

func printQueryJSON(w io.Writer, calc *calculator, id prayer.TimeID, daysList []dayData) error {
	out := queryJSONMulti{
		Location: newJSONLocation(calc, daysList[0].Date),
		Prayer:   strings.ToLower(id.String()),
	}

	for _, dd := range daysList {
		out.Days = append(out.Days, queryJSONDay{
			Date: dd.Date.Format("2006-01-02"),
			Time: calc.format(dd.Prayers[0]),
		})
	}

	return writeJSON(w, out)
}
