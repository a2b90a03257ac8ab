package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/smokyabdulrahman/praytimes/internal/prayer"
	"github.com/spf13/cobra"
)

var (
	flagFormat  string
	flagPrayers string
)

func newNextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the next prayer with countdown",
		Long:  "Display the next upcoming prayer time with a countdown.\nAfter the last prayer of the day it shows the first prayer of tomorrow.",
		RunE:  runNext,
	}

	cmd.Flags().StringVar(&flagFormat, "format", prayer.FormatFull, "Display format: "+strings.Join(prayer.OutputModes, ", ")+", or a custom Go template")
	cmd.Flags().StringVar(&flagPrayers, "prayers", "", "Comma-separated list of prayers to track (overrides config)")

	return cmd
}

func runNext(cmd *cobra.Command, args []string) error {
	// Priority: --prayers flag > config > defaults.
	var selected []string
	if flagWasSet(cmd.Flags(), cmd.Root().PersistentFlags(), "prayers") && flagPrayers != "" {
		selected = splitList(flagPrayers)
	}

	calc, err := newCalculator(cmd, selected)
	if err != nil {
		return err
	}

	now := calc.today()
	next := calc.engine.Upcoming(calc.place, now, calc.selected)
	if next == nil {
		return errors.New("could not determine next prayer: none of the selected prayers occur in the next days")
	}
	logger.Debug("next prayer", "prayer", next.Name, "at", next.Time, "raw", next.Hours)

	if FlagJSON {
		return writeJSON(cmd.OutOrStdout(), todayJSONNext{
			Prayer:    strings.ToLower(next.Name),
			Time:      calc.format(*next),
			Remaining: prayer.FormatRemaining(prayer.TimeRemaining(*next, now)),
		})
	}

	// Format and print.
	fmt.Fprint(cmd.OutOrStdout(), prayer.FormatOutput(*next, now, flagFormat, calc.timeFormat))
	return nil
}

// splitList splits a comma-separated flag value, trimming spaces.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
