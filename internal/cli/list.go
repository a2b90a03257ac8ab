package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/smokyabdulrahman/praytimes/internal/display"
	"github.com/smokyabdulrahman/praytimes/internal/prayer"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [days]",
		Short: "Show prayer times for multiple days",
		Long:  "Display a grid of prayer times for N days starting today (default: 7).",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, args, 7)
		},
	}
}

func newWeekCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "week",
		Short: "Show prayer times for the next 7 days",
		Long:  "Alias for 'list 7'. Display a grid of prayer times for 7 days.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, nil, 7)
		},
	}
}

func newMonthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "month",
		Short: "Show prayer times for the next 30 days",
		Long:  "Alias for 'list 30'. Display a grid of prayer times for 30 days.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, nil, 30)
		},
	}
}

// dayData holds a single day's schedule for list/query output.
type dayData struct {
	Date    time.Time
	Prayers []prayer.Prayer
}

// runList is the handler for the list subcommand.
func runList(cmd *cobra.Command, args []string, defaultDays int) error {
	days := defaultDays
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid number of days: %q (must be a positive integer)", args[0])
		}
		days = n
	}

	calc, err := newCalculator(cmd, nil)
	if err != nil {
		return err
	}

	daysList := calc.days(days, calc.selected)
	w := cmd.OutOrStdout()

	if FlagJSON {
		return printListJSON(w, calc, daysList)
	}

	// Rich terminal output.
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", display.Boldf("Prayer Times - %d Days", days))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", calc.place.String())
	fmt.Fprintf(w, "  %s\n", display.Dim(methodLine(calc.engine)))
	fmt.Fprintln(w)

	// Build table.
	headers := []string{"Date"}
	for _, id := range calc.selected {
		headers = append(headers, id.String())
	}
	tbl := display.NewTable(headers)
	tbl.SetMuted(prayer.Undefined)

	for _, dd := range daysList {
		row := []string{dd.Date.Format("Mon 02 Jan")}
		for _, p := range dd.Prayers {
			row = append(row, calc.format(p))
		}
		tbl.AddRow(row)
	}

	// Today is always the first row.
	tbl.SetHighlightRow(0)

	fmt.Fprint(w, tbl.Render())
	fmt.Fprintln(w)
	return nil
}

// days computes n consecutive days starting today.
func (c *calculator) days(n int, ids []prayer.TimeID) []dayData {
	start := c.today()
	result := make([]dayData, 0, n)
	for i := 0; i < n; i++ {
		d := start.AddDate(0, 0, i)
		result = append(result, dayData{Date: d, Prayers: c.day(d, ids)})
	}
	return result
}

// listJSONOutput is the JSON structure for the list command.
type listJSONOutput struct {
	Location jsonLocation  `json:"location"`
	Method   jsonMethod    `json:"method"`
	Days     []listJSONDay `json:"days"`
}

type listJSONDay struct {
	Date    string            `json:"date"`
	Timings map[string]string `json:"timings"`
}

func printListJSON(w io.Writer, calc *calculator, daysList []dayData) error {
	out := listJSONOutput{
		Location: newJSONLocation(calc, daysList[0].Date),
		Method:   newJSONMethod(calc.engine),
	}

	for _, dd := range daysList {
		out.Days = append(out.Days, listJSONDay{
			Date:    dd.Date.Format("2006-01-02"),
			Timings: timingsMap(calc, dd.Prayers),
		})
	}

	return writeJSON(w, out)
}
