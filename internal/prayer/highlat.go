package prayer

import (
	"math"

	"github.com/smokyabdulrahman/praytimes/internal/astro"
)

// Reference angles for the night portion when Maghrib or Isha is defined in
// minutes rather than as an angle.
const (
	fallbackIshaAngle    = 18.0
	fallbackMaghribAngle = 4.0
)

// NightPortion returns the fraction of the night used as the fallback
// distance for a twilight of the given angle.
func NightPortion(adjust AdjustingMethod, angle float64) float64 {
	switch adjust {
	case AngleBased:
		return angle / 60
	case MidNight:
		return 1.0 / 2
	case OneSeventh:
		return 1.0 / 7
	default:
		return 0
	}
}

// AdjustHighLatitudes bounds Fajr, Isha and Maghrib by a portion of the
// night (Sunset to Sunrise). An entry that is undefined, or further from
// Sunrise/Sunset than its portion allows, is replaced by the bound.
//
// Sunrise and Sunset must already be final. When either is undefined the
// night length is undefined too, and so are the replacements. This no-night
// case (polar day or polar night) is the one situation where an adjustment
// does not turn an undefined Fajr, Isha or Maghrib into a defined time.
func AdjustHighLatitudes(times TimeSet, cfg MethodConfig, adjust AdjustingMethod) TimeSet {
	if adjust == None {
		return times
	}

	night := astro.TimeDiff(times[Sunset], times[Sunrise])

	fajrDiff := NightPortion(adjust, cfg.FajrAngle) * night
	if math.IsNaN(times[Fajr]) || astro.TimeDiff(times[Fajr], times[Sunrise]) > fajrDiff {
		times[Fajr] = times[Sunrise] - fajrDiff
	}

	ishaAngle := cfg.IshaValue
	if cfg.IshaIsMinutes {
		ishaAngle = fallbackIshaAngle
	}
	ishaDiff := NightPortion(adjust, ishaAngle) * night
	if math.IsNaN(times[Isha]) || astro.TimeDiff(times[Sunset], times[Isha]) > ishaDiff {
		times[Isha] = times[Sunset] + ishaDiff
	}

	maghribAngle := cfg.MaghribValue
	if cfg.MaghribIsMinutes {
		maghribAngle = fallbackMaghribAngle
	}
	maghribDiff := NightPortion(adjust, maghribAngle) * night
	if math.IsNaN(times[Maghrib]) || astro.TimeDiff(times[Sunset], times[Maghrib]) > maghribDiff {
		times[Maghrib] = times[Sunset] + maghribDiff
	}

	return times
}
