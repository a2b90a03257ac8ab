package prayer

import (
	"fmt"
	"math"
	"strings"

	"github.com/smokyabdulrahman/praytimes/internal/astro"
)

// TimeID indexes the entries of a TimeSet.
type TimeID int

const (
	Fajr TimeID = iota
	Sunrise
	Dhuhr
	Asr
	Sunset
	Maghrib
	Isha

	timesCount
)

// AllTimeIDs lists every entry of a TimeSet in order.
var AllTimeIDs = []TimeID{Fajr, Sunrise, Dhuhr, Asr, Sunset, Maghrib, Isha}

var timeNames = [timesCount]string{"Fajr", "Sunrise", "Dhuhr", "Asr", "Sunset", "Maghrib", "Isha"}

func (id TimeID) String() string {
	if id < 0 || id >= timesCount {
		return fmt.Sprintf("TimeID(%d)", int(id))
	}
	return timeNames[id]
}

// ParseTimeID finds a TimeID by name, ignoring case.
func ParseTimeID(name string) (TimeID, error) {
	for _, id := range AllTimeIDs {
		if strings.EqualFold(name, timeNames[id]) {
			return id, nil
		}
	}
	return 0, fmt.Errorf("unknown prayer name: %s", name)
}

// TimeSet holds one day's times as fractional hours in the caller's zone.
//
// An entry is NaN when the sun never reaches the required angle on that day.
// Entries are not range-reduced: an Isha that falls after midnight may be
// 24.4 and a high latitude Fajr may be negative.
type TimeSet [timesCount]float64

// Get returns the entry for id.
func (ts TimeSet) Get(id TimeID) float64 { return ts[id] }

// Defined reports whether the entry for id is a real time.
func (ts TimeSet) Defined(id TimeID) bool { return !math.IsNaN(ts[id]) }

// Reduced returns a copy with every defined entry range-reduced to [0, 24).
func (ts TimeSet) Reduced() TimeSet {
	out := ts
	for i := range out {
		out[i] = astro.FixHour(out[i])
	}
	return out
}

// Times24 is a TimeSet rendered as "HH:MM" strings, with "-----" for entries
// that are undefined.
type Times24 struct {
	Fajr    string `json:"fajr"`
	Sunrise string `json:"sunrise"`
	Dhuhr   string `json:"dhuhr"`
	Asr     string `json:"asr"`
	Sunset  string `json:"sunset"`
	Maghrib string `json:"maghrib"`
	Isha    string `json:"isha"`
}

// Format24 renders every entry with FormatTime24.
func (ts TimeSet) Format24() Times24 {
	return Times24{
		Fajr:    FormatTime24(ts[Fajr]),
		Sunrise: FormatTime24(ts[Sunrise]),
		Dhuhr:   FormatTime24(ts[Dhuhr]),
		Asr:     FormatTime24(ts[Asr]),
		Sunset:  FormatTime24(ts[Sunset]),
		Maghrib: FormatTime24(ts[Maghrib]),
		Isha:    FormatTime24(ts[Isha]),
	}
}

// Strings returns the Times24 values in TimeSet order.
func (t Times24) Strings() []string {
	return []string{t.Fajr, t.Sunrise, t.Dhuhr, t.Asr, t.Sunset, t.Maghrib, t.Isha}
}
