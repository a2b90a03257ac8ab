package prayer

import (
	"fmt"
	"math"
	"time"
)

// lookahead bounds how many following days Upcoming searches when every
// selected prayer of today has passed or is undefined.
const lookahead = 2

// Place is a location on Earth and the UTC offset its times are shown in.
type Place struct {
	Latitude  float64
	Longitude float64
	// Timezone is the offset in hours east of UTC. Nil means the offset
	// time.Local has at noon of each date, so daylight saving is followed.
	Timezone *float64
}

// Offset returns the UTC offset in hours used for date.
func (p Place) Offset(date time.Time) float64 {
	if p.Timezone != nil {
		return *p.Timezone
	}
	noon := time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, time.Local)
	_, secs := noon.Zone()
	return float64(secs) / 3600
}

// Zone returns a fixed zone for the offset of date.
func (p Place) Zone(date time.Time) *time.Location {
	tz := p.Offset(date)
	return time.FixedZone(ZoneName(tz), int(math.Round(tz*3600)))
}

// Today returns now as seen in the place's zone.
func (p Place) Today(now time.Time) time.Time {
	return now.In(p.Zone(now))
}

// String renders the coordinates as "21.4225°N, 39.8262°E".
func (p Place) String() string {
	ns, ew := "N", "E"
	lat, lon := p.Latitude, p.Longitude
	if lat < 0 {
		ns, lat = "S", -lat
	}
	if lon < 0 {
		ew, lon = "W", -lon
	}
	return fmt.Sprintf("%.4f°%s, %.4f°%s", lat, ns, lon, ew)
}

// Moment is the computation input for date's calendar day at p.
func (p Place) Moment(date time.Time) Moment {
	return Moment{
		Year:      date.Year(),
		Month:     int(date.Month()),
		Day:       date.Day(),
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		Timezone:  p.Offset(date),
	}
}

// ZoneName renders an offset in hours as "UTC+05:30".
func ZoneName(tz float64) string {
	sign := '+'
	if tz < 0 {
		sign, tz = '-', -tz
	}
	m := int(math.Round(tz * 60))
	return fmt.Sprintf("UTC%c%02d:%02d", sign, m/60, m%60)
}

// Day computes date's times at place and returns the selected entries.
// Only the calendar day of date is used.
func (e Engine) Day(place Place, date time.Time, selected []TimeID) ([]Prayer, TimeSet) {
	ts := e.ComputeMoment(place.Moment(date))
	return Schedule(ts, date, place.Zone(date), selected), ts
}

// Upcoming returns the first selected prayer after now, moving on to the
// following days when today has nothing left. It returns nil when no
// selected prayer is defined in that window.
func (e Engine) Upcoming(place Place, now time.Time, selected []TimeID) *Prayer {
	today := place.Today(now)
	for i := 0; i <= lookahead; i++ {
		prayers, _ := e.Day(place, today.AddDate(0, 0, i), selected)
		if next := NextPrayer(prayers, now); next != nil {
			return next
		}
	}
	return nil
}
