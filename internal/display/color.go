// Package display provides terminal styling for the praytimes CLI.
//
// It respects the NO_COLOR environment variable (https://no-color.org/) and
// detects whether stdout is a terminal. Colors are automatically disabled when
// output is piped or redirected, or when NO_COLOR is set.
package display

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// ANSI palette indexes, so output degrades well on 16 color terminals.
var (
	colorGreen  = lipgloss.Color("2")
	colorYellow = lipgloss.Color("3")
	colorCyan   = lipgloss.Color("6")
	colorGray   = lipgloss.Color("8")
)

var renderer = lipgloss.NewRenderer(os.Stdout)

var (
	styleBold   = renderer.NewStyle().Bold(true)
	styleDim    = renderer.NewStyle().Faint(true)
	styleGreen  = renderer.NewStyle().Foreground(colorGreen)
	styleYellow = renderer.NewStyle().Foreground(colorYellow)
	styleCyan   = renderer.NewStyle().Foreground(colorCyan)
	styleGray   = renderer.NewStyle().Foreground(colorGray)
	styleAccent = renderer.NewStyle().Foreground(colorCyan).Bold(true)
)

// enabled reports whether color output is active.
var enabled bool

func init() {
	SetEnabled(shouldEnable())
}

func shouldEnable() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if _, ok := os.LookupEnv("FORCE_COLOR"); ok {
		return true
	}
	return isTerminal(os.Stdout)
}

// isTerminal reports whether f is connected to a terminal.
func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// SetEnabled overrides the auto-detected color state.
// Useful for testing or when --json forces plain output.
func SetEnabled(b bool) {
	enabled = b
	if b {
		renderer.SetColorProfile(termenv.ANSI)
	} else {
		renderer.SetColorProfile(termenv.Ascii)
	}
}

// Enabled reports whether color output is currently active.
func Enabled() bool {
	return enabled
}

func render(s lipgloss.Style, text string) string {
	if !enabled || text == "" {
		return text
	}
	return s.Render(text)
}

// Bold returns text rendered in bold.
func Bold(text string) string { return render(styleBold, text) }

// Dim returns text rendered faint.
func Dim(text string) string { return render(styleDim, text) }

// Green returns text rendered in green.
func Green(text string) string { return render(styleGreen, text) }

// Yellow returns text rendered in yellow.
func Yellow(text string) string { return render(styleYellow, text) }

// Cyan returns text rendered in cyan.
func Cyan(text string) string { return render(styleCyan, text) }

// Gray returns text rendered in gray.
func Gray(text string) string { return render(styleGray, text) }

// Accent returns text in the highlight style used for the next prayer and
// for today's row.
func Accent(text string) string { return render(styleAccent, text) }

// Boldf formats and bolds a string.
func Boldf(format string, a ...interface{}) string {
	return Bold(fmt.Sprintf(format, a...))
}

// Width returns the printed width of s, ignoring escape sequences.
func Width(s string) int {
	return lipgloss.Width(s)
}
