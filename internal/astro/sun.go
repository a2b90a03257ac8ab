package astro

// SunPosition returns the sun's declination (degrees) and the equation of
// time (hours) for the Julian date jd.
//
// The model is the single-term approximation published by the U.S. Naval
// Observatory: accurate to about a minute of time between 1800 and 2200 and
// still well-behaved outside that range. Golden outputs in this repository
// were produced with exactly these coefficients; do not refine them without
// regenerating the fixtures.
func SunPosition(jd float64) (declination, equation float64) {
	d := jd - J2000

	g := FixAngle(357.529 + 0.98560028*d) // mean anomaly
	q := FixAngle(280.459 + 0.98564736*d) // mean longitude
	l := FixAngle(q + 1.915*Sin(g) + 0.020*Sin(2*g))

	e := 23.439 - 0.00000036*d // obliquity of the ecliptic

	declination = Asin(Sin(e) * Sin(l))
	ra := FixHour(Atan2(Cos(e)*Sin(l), Cos(l)) / 15)
	equation = q/15 - ra

	return declination, equation
}

// Declination returns only the declination part of SunPosition.
func Declination(jd float64) float64 {
	d, _ := SunPosition(jd)
	return d
}

// EquationOfTime returns only the equation-of-time part of SunPosition.
func EquationOfTime(jd float64) float64 {
	_, eq := SunPosition(jd)
	return eq
}
