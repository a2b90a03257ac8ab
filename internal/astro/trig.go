// Package astro holds the low-order solar ephemeris and the hour-angle solver
// used to turn target sun elevations into clock times.
//
// All angles are in degrees and all times in hours unless a name says
// otherwise. Functions never panic on out-of-domain input: an inverse
// trigonometric function outside [-1, 1] yields NaN, and NaN flows through
// every later computation untouched.
package astro

import "math"

// Sin returns the sine of d degrees.
func Sin(d float64) float64 { return math.Sin(deg2rad(d)) }

// Cos returns the cosine of d degrees.
func Cos(d float64) float64 { return math.Cos(deg2rad(d)) }

// Tan returns the tangent of d degrees.
func Tan(d float64) float64 { return math.Tan(deg2rad(d)) }

// Asin returns the arcsine of x in degrees.
func Asin(x float64) float64 { return rad2deg(math.Asin(x)) }

// Acos returns the arccosine of x in degrees. NaN when |x| > 1.
func Acos(x float64) float64 { return rad2deg(math.Acos(x)) }

// Atan2 returns the arctangent of y/x in degrees, using the signs of both
// arguments to pick the quadrant.
func Atan2(y, x float64) float64 { return rad2deg(math.Atan2(y, x)) }

// Acot returns the arccotangent of x in degrees.
func Acot(x float64) float64 { return rad2deg(math.Atan(1 / x)) }

func deg2rad(d float64) float64 { return d * math.Pi / 180.0 }

func rad2deg(r float64) float64 { return r * 180.0 / math.Pi }

// FixAngle range-reduces a to [0, 360).
func FixAngle(a float64) float64 {
	return reduce(a, 360)
}

// FixHour range-reduces h to [0, 24).
func FixHour(h float64) float64 {
	return reduce(h, 24)
}

func reduce(v, span float64) float64 {
	v -= span * math.Floor(v/span)
	if v < 0 {
		v += span
	}
	return v
}

// TimeDiff returns the forward distance in hours from t1 to t2, wrapping
// around midnight, so the result is always in [0, 24).
func TimeDiff(t1, t2 float64) float64 {
	return FixHour(t2 - t1)
}
