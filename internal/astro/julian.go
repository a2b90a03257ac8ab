package astro

import "math"

// J2000 is the Julian date of the 2000-01-01 12:00 TT epoch.
const J2000 = 2451545.0

// JulianDate converts a proleptic Gregorian calendar date to a Julian date
// at 0h UT.
//
// The input is not validated. An out-of-range month or day (day 45, month 0)
// still produces a finite number that simply does not correspond to a real
// calendar date.
func JulianDate(year, month, day int) float64 {
	if month <= 2 {
		year--
		month += 12
	}

	a := math.Floor(float64(year) / 100)
	b := 2 - a + math.Floor(a/4)

	return math.Floor(365.25*float64(year+4716)) +
		math.Floor(30.6001*float64(month+1)) +
		float64(day) + b - 1524.5
}

// LocalJulianDate is JulianDate shifted west by longitude, so that angle
// computations are evaluated at local apparent noon rather than at Greenwich.
func LocalJulianDate(year, month, day int, longitude float64) float64 {
	return JulianDate(year, month, day) - longitude/(15*24)
}
