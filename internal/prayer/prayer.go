package prayer

import (
	"fmt"
	"math"
	"time"
)

// Prayer is one entry of a day's schedule.
type Prayer struct {
	ID    TimeID
	Name  string
	Hours float64   // raw engine output, NaN when undefined
	Time  time.Time // zero when undefined
}

// Defined reports whether the prayer occurs on this day.
func (p Prayer) Defined() bool { return !math.IsNaN(p.Hours) }

// DefaultPrayers are the entries shown when no selection is configured.
// Sunset is left out since it equals Maghrib for most methods.
var DefaultPrayers = []TimeID{Fajr, Sunrise, Dhuhr, Asr, Maghrib, Isha}

// DefaultPrayerNames are the names of DefaultPrayers.
var DefaultPrayerNames = []string{"Fajr", "Sunrise", "Dhuhr", "Asr", "Maghrib", "Isha"}

// ShortNames maps full prayer names to one or two letter abbreviations.
var ShortNames = map[string]string{
	"Fajr":    "F",
	"Sunrise": "S",
	"Dhuhr":   "D",
	"Asr":     "A",
	"Sunset":  "St",
	"Maghrib": "M",
	"Isha":    "I",
}

// ParsePrayerNames resolves a configured list of names. An empty list
// yields DefaultPrayers.
func ParsePrayerNames(names []string) ([]TimeID, error) {
	if len(names) == 0 {
		return DefaultPrayers, nil
	}
	ids := make([]TimeID, 0, len(names))
	for _, name := range names {
		id, err := ParseTimeID(name)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// HoursToTime places fractional hours on date's calendar day in loc,
// rounded to the nearest minute. Values outside [0, 24) spill into the
// neighbouring day. It returns the zero Time for NaN.
func HoursToTime(date time.Time, h float64, loc *time.Location) time.Time {
	if math.IsNaN(h) {
		return time.Time{}
	}
	minutes := int(math.Floor(h*60 + 0.5))
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	return midnight.Add(time.Duration(minutes) * time.Minute)
}

// Schedule converts a TimeSet into Prayers for date, keeping only the
// selected entries in the order given.
func Schedule(ts TimeSet, date time.Time, loc *time.Location, selected []TimeID) []Prayer {
	prayers := make([]Prayer, 0, len(selected))
	for _, id := range selected {
		h := ts.Get(id)
		prayers = append(prayers, Prayer{
			ID:    id,
			Name:  id.String(),
			Hours: h,
			Time:  HoursToTime(date, h, loc),
		})
	}
	return prayers
}

// NextPrayer returns the earliest defined prayer strictly after now, or nil
// when every prayer of the day has passed (the caller should look at
// tomorrow's schedule).
func NextPrayer(prayers []Prayer, now time.Time) *Prayer {
	var next *Prayer
	for i := range prayers {
		p := &prayers[i]
		if !p.Defined() || !p.Time.After(now) {
			continue
		}
		if next == nil || p.Time.Before(next.Time) {
			next = p
		}
	}
	return next
}

// CurrentPrayer returns the latest defined prayer at or before now, or nil
// when none has started yet.
func CurrentPrayer(prayers []Prayer, now time.Time) *Prayer {
	var cur *Prayer
	for i := range prayers {
		p := &prayers[i]
		if !p.Defined() || p.Time.After(now) {
			continue
		}
		if cur == nil || p.Time.After(cur.Time) {
			cur = p
		}
	}
	return cur
}

// TimeRemaining returns the duration until the given prayer time.
func TimeRemaining(p Prayer, now time.Time) time.Duration {
	return p.Time.Sub(now)
}

// FormatRemaining formats a duration as "Xh Ym" or "Ym" if less than an hour.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		return "0m"
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60

	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
