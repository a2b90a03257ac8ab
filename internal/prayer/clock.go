package prayer

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/smokyabdulrahman/praytimes/internal/astro"
)

// Undefined is the rendering of a time that does not exist on a given day.
const Undefined = "-----"

// Time formats accepted by FormatHours.
const (
	Format24h = "24h"
	Format12h = "12h"
)

// clockParts rounds h to the nearest minute and splits it into hours in
// [0, 24) and minutes.
func clockParts(h float64) (int, int) {
	h = astro.FixHour(h + 0.5/60)
	hours := math.Floor(h)
	minutes := math.Floor((h - hours) * 60)
	return int(hours), int(minutes)
}

// FormatTime24 renders fractional hours as zero padded "HH:MM", rounding to
// the nearest minute and wrapping into a single day. NaN renders as
// Undefined.
func FormatTime24(h float64) string {
	if math.IsNaN(h) {
		return Undefined
	}
	hh, mm := clockParts(h)
	return fmt.Sprintf("%02d:%02d", hh, mm)
}

// FormatTime12 renders fractional hours as "3:04 PM".
func FormatTime12(h float64) string {
	if math.IsNaN(h) {
		return Undefined
	}
	hh, mm := clockParts(h)
	suffix := "AM"
	if hh >= 12 {
		suffix = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", (hh+11)%12+1, mm, suffix)
}

// FormatHours renders h with the named format. Anything other than "12h"
// uses the 24 hour clock.
func FormatHours(h float64, format string) string {
	if format == Format12h {
		return FormatTime12(h)
	}
	return FormatTime24(h)
}

// ValidTimeFormat reports whether format is accepted by FormatHours.
func ValidTimeFormat(format string) bool {
	return format == Format24h || format == Format12h
}

// ParseTime24 parses "HH:MM" back into fractional hours. Undefined parses
// to NaN.
func ParseTime24(s string) (float64, error) {
	if s == Undefined {
		return math.NaN(), nil
	}
	hs, ms, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	hh, err := strconv.Atoi(hs)
	if err != nil || hh < 0 || hh > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	mm, err := strconv.Atoi(ms)
	if err != nil || mm < 0 || mm > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return float64(hh) + float64(mm)/60, nil
}
