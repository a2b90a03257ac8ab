// Package prayer computes daily prayer times from solar geometry and turns
// them into schedules the CLI can display.
//
// The Engine is the calculation entry point. It is an immutable value: build
// it once with New and call Compute from as many goroutines as needed.
package prayer

import (
	"fmt"

	"github.com/smokyabdulrahman/praytimes/internal/astro"
)

// sunriseAngle is the depression of the sun's centre at apparent sunrise and
// sunset: 34' of refraction plus 16' of solar semi-diameter.
const sunriseAngle = 0.833

// iterations is the number of refinement passes over the seed times. One pass
// is what the reference implementation does and what the golden fixtures
// were generated with.
const iterations = 1

// seedTimes are the rough times, in hours, the single pass starts from.
var seedTimes = TimeSet{5, 6, 12, 13, 18, 18, 18}

// Engine computes prayer times for one fixed set of conventions.
type Engine struct {
	method       CalculationMethod
	params       MethodConfig
	juristic     JuristicMethod
	adjust       AdjustingMethod
	dhuhrMinutes float64
}

// Option customizes an Engine at construction.
type Option func(*Engine)

// WithCustomMethod replaces the angles of the Custom method. It has no effect
// on any other method.
func WithCustomMethod(cfg MethodConfig) Option {
	return func(e *Engine) {
		if e.method == Custom {
			e.params = cfg
		}
	}
}

// New returns an Engine for the given conventions. dhuhrMinutes is added to
// solar noon to obtain Dhuhr.
//
// An unknown method falls back to MWL rather than producing zero angles.
func New(method CalculationMethod, juristic JuristicMethod, adjust AdjustingMethod, dhuhrMinutes float64, opts ...Option) Engine {
	params, ok := Config(method)
	if !ok {
		method = MWL
		params, _ = Config(MWL)
	}

	e := Engine{
		method:       method,
		params:       params,
		juristic:     juristic,
		adjust:       adjust,
		dhuhrMinutes: dhuhrMinutes,
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// Default returns an Engine using MWL, Shafii, MidNight and no Dhuhr offset.
func Default() Engine {
	return New(MWL, Shafii, MidNight, 0)
}

// Method returns the calculation method.
func (e Engine) Method() CalculationMethod { return e.method }

// MethodConfig returns the resolved angles of the calculation method.
func (e Engine) MethodConfig() MethodConfig { return e.params }

// Juristic returns the Asr convention.
func (e Engine) Juristic() JuristicMethod { return e.juristic }

// Adjusting returns the high latitude policy.
func (e Engine) Adjusting() AdjustingMethod { return e.adjust }

// DhuhrMinutes returns the offset added to solar noon.
func (e Engine) DhuhrMinutes() float64 { return e.dhuhrMinutes }

func (e Engine) String() string {
	return fmt.Sprintf("%s/%s/%s dhuhr%+gm", e.method, e.juristic, e.adjust, e.dhuhrMinutes)
}

// Moment is the per-call input of a computation.
type Moment struct {
	Year      int
	Month     int
	Day       int
	Latitude  float64
	Longitude float64
	Timezone  float64 // hours east of UTC
}

// ComputeMoment is Compute with its arguments packed in a Moment.
func (e Engine) ComputeMoment(m Moment) TimeSet {
	return e.Compute(m.Year, m.Month, m.Day, m.Latitude, m.Longitude, m.Timezone)
}

// Compute returns the prayer times for a date and place. timezone is the UTC
// offset in hours the results are expressed in.
//
// The steps run in a fixed order: Maghrib and Isha minute offsets need the
// final Sunset, and the high latitude fallback needs the final Sunrise and
// Sunset.
func (e Engine) Compute(year, month, day int, latitude, longitude, timezone float64) TimeSet {
	solver := astro.NewSolver(astro.LocalJulianDate(year, month, day, longitude), latitude)

	times := seedTimes
	for i := 0; i < iterations; i++ {
		times = e.computeTimes(solver, times)
	}

	return e.adjustTimes(times, longitude, timezone)
}

// computeTimes runs one solver pass, using times as the starting estimate.
func (e Engine) computeTimes(s astro.Solver, times TimeSet) TimeSet {
	var t TimeSet
	for i := range times {
		t[i] = times[i] / 24
	}

	var out TimeSet
	out[Fajr] = s.TimeForAngle(180-e.params.FajrAngle, t[Fajr])
	out[Sunrise] = s.TimeForAngle(180-sunriseAngle, t[Sunrise])
	out[Dhuhr] = s.MidDay(t[Dhuhr])
	out[Asr] = s.AsrTime(e.juristic.ShadowFactor(), t[Asr])
	out[Sunset] = s.TimeForAngle(sunriseAngle, t[Sunset])
	out[Maghrib] = s.TimeForAngle(e.params.MaghribValue, t[Maghrib])
	out[Isha] = s.TimeForAngle(e.params.IshaValue, t[Isha])
	return out
}

// adjustTimes moves solar times to the clock zone and applies the offsets
// and fallbacks that depend on other entries.
func (e Engine) adjustTimes(times TimeSet, longitude, timezone float64) TimeSet {
	shift := timezone - longitude/15
	for i := range times {
		times[i] += shift
	}

	times[Dhuhr] += e.dhuhrMinutes / 60

	if e.params.MaghribIsMinutes {
		times[Maghrib] = times[Sunset] + e.params.MaghribValue/60
	}
	if e.params.IshaIsMinutes {
		times[Isha] = times[Maghrib] + e.params.IshaValue/60
	}

	if e.adjust != None {
		times = AdjustHighLatitudes(times, e.params, e.adjust)
	}
	return times
}
