package astro

import "math"

// Solver converts target sun elevations into local apparent times for a
// single day at a single latitude.
//
// The t argument of every method is a day portion (hours/24) used to refine
// the Julian date the ephemeris is evaluated at. Results are hours of local
// apparent solar time; the caller shifts them to a clock zone.
type Solver struct {
	jd       float64
	latitude float64
}

// NewSolver returns a Solver anchored at Julian date jd (already adjusted for
// longitude, see LocalJulianDate) and the given latitude in degrees.
func NewSolver(jd, latitude float64) Solver {
	return Solver{jd: jd, latitude: latitude}
}

// JulianDate returns the anchor date of the solver.
func (s Solver) JulianDate() float64 { return s.jd }

// Latitude returns the latitude of the solver.
func (s Solver) Latitude() float64 { return s.latitude }

// MidDay returns the time of local solar noon.
func (s Solver) MidDay(t float64) float64 {
	return FixHour(12 - EquationOfTime(s.jd+t))
}

// TimeForAngle returns the time at which the sun is at the given angle.
//
// Angles below 90 are measured on the afternoon side of noon (sunset is
// 0.833, an Isha depression of 17 is 17). Angles above 90 mirror onto the
// morning side (sunrise is 180-0.833). When the sun never reaches the angle
// on this day the result is NaN.
func (s Solver) TimeForAngle(angle, t float64) float64 {
	decl := Declination(s.jd + t)
	noon := s.MidDay(t)

	v := Acos((-Sin(angle)-Sin(decl)*Sin(s.latitude))/(Cos(decl)*Cos(s.latitude))) / 15
	if angle > 90 {
		return noon - v
	}
	return noon + v
}

// AsrTime returns the time at which an object's shadow is shadowFactor times
// its height plus its noon shadow. Shafii uses 1, Hanafi 2.
func (s Solver) AsrTime(shadowFactor, t float64) float64 {
	decl := Declination(s.jd + t)
	angle := -Acot(shadowFactor + Tan(math.Abs(s.latitude-decl)))
	return s.TimeForAngle(angle, t)
}
