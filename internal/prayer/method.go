package prayer

import (
	"fmt"
	"strings"
)

// CalculationMethod selects a regional convention for the Fajr, Maghrib and
// Isha twilight definitions.
type CalculationMethod int

const (
	Jafari  CalculationMethod = iota // Ithna Ashari
	Karachi                          // University of Islamic Sciences, Karachi
	ISNA                             // Islamic Society of North America
	MWL                              // Muslim World League
	Makkah                           // Umm al-Qura, Makkah
	Egypt                            // Egyptian General Authority of Survey
	Custom                           // user-supplied angles, MWL by default
)

// AllMethods lists every calculation method in display order.
var AllMethods = []CalculationMethod{Jafari, Karachi, ISNA, MWL, Makkah, Egypt, Custom}

var methodNames = map[CalculationMethod]string{
	Jafari:  "Jafari",
	Karachi: "Karachi",
	ISNA:    "ISNA",
	MWL:     "MWL",
	Makkah:  "Makkah",
	Egypt:   "Egypt",
	Custom:  "Custom",
}

var methodDescriptions = map[CalculationMethod]string{
	Jafari:  "Shia Ithna-Ashari (Jafari)",
	Karachi: "University of Islamic Sciences, Karachi",
	ISNA:    "Islamic Society of North America (ISNA)",
	MWL:     "Muslim World League (MWL)",
	Makkah:  "Umm Al-Qura University, Makkah",
	Egypt:   "Egyptian General Authority of Survey",
	Custom:  "Custom settings",
}

func (m CalculationMethod) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}
	return fmt.Sprintf("CalculationMethod(%d)", int(m))
}

// Description returns the long name of the convention.
func (m CalculationMethod) Description() string {
	return methodDescriptions[m]
}

// ParseCalculationMethod parses a method name, ignoring case.
func ParseCalculationMethod(s string) (CalculationMethod, error) {
	for _, m := range AllMethods {
		if strings.EqualFold(s, methodNames[m]) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown calculation method %q; valid methods: %s", s, strings.Join(MethodNames(), ", "))
}

// MethodNames returns the short names of all methods.
func MethodNames() []string {
	names := make([]string, len(AllMethods))
	for i, m := range AllMethods {
		names[i] = m.String()
	}
	return names
}

// MethodConfig describes how a convention defines the twilight prayers.
//
// Maghrib and Isha are either solar depression angles or a number of minutes
// after another time: Maghrib minutes count from Sunset, Isha minutes count
// from Maghrib.
type MethodConfig struct {
	FajrAngle        float64 `json:"fajr_angle"`
	MaghribIsMinutes bool    `json:"maghrib_is_minutes"`
	MaghribValue     float64 `json:"maghrib_value"`
	IshaIsMinutes    bool    `json:"isha_is_minutes"`
	IshaValue        float64 `json:"isha_value"`
}

// Config returns the registry entry for m. The second result is false for a
// value outside the known methods.
func Config(m CalculationMethod) (MethodConfig, bool) {
	switch m {
	case Jafari:
		return MethodConfig{FajrAngle: 16, MaghribValue: 4, IshaValue: 14}, true
	case Karachi:
		return MethodConfig{FajrAngle: 18, MaghribIsMinutes: true, IshaValue: 18}, true
	case ISNA:
		return MethodConfig{FajrAngle: 15, MaghribIsMinutes: true, IshaValue: 15}, true
	case MWL:
		return MethodConfig{FajrAngle: 18, MaghribIsMinutes: true, IshaValue: 17}, true
	case Makkah:
		return MethodConfig{FajrAngle: 19, MaghribIsMinutes: true, IshaIsMinutes: true, IshaValue: 90}, true
	case Egypt:
		return MethodConfig{FajrAngle: 19.5, MaghribIsMinutes: true, IshaValue: 17.5}, true
	case Custom:
		return MethodConfig{FajrAngle: 18, MaghribIsMinutes: true, IshaValue: 17}, true
	default:
		return MethodConfig{}, false
	}
}

// describeValue renders one half of a Maghrib or Isha rule, for
// example "17°" or "90 min".
func describeValue(isMinutes bool, v float64) string {
	if isMinutes {
		return fmt.Sprintf("%g min", v)
	}
	return fmt.Sprintf("%g°", v)
}

// MaghribString describes the Maghrib rule, e.g. "sunset + 0 min" or "4°".
func (c MethodConfig) MaghribString() string {
	if c.MaghribIsMinutes {
		return "sunset + " + describeValue(true, c.MaghribValue)
	}
	return describeValue(false, c.MaghribValue)
}

// IshaString describes the Isha rule, e.g. "maghrib + 90 min" or "17°".
func (c MethodConfig) IshaString() string {
	if c.IshaIsMinutes {
		return "maghrib + " + describeValue(true, c.IshaValue)
	}
	return describeValue(false, c.IshaValue)
}

// JuristicMethod selects the Asr shadow convention.
type JuristicMethod int

const (
	Shafii JuristicMethod = iota // shadow factor 1 (Shafii, Maliki, Hanbali)
	Hanafi                       // shadow factor 2
)

func (j JuristicMethod) String() string {
	switch j {
	case Shafii:
		return "Shafii"
	case Hanafi:
		return "Hanafi"
	default:
		return fmt.Sprintf("JuristicMethod(%d)", int(j))
	}
}

// ShadowFactor returns the shadow length multiplier used for Asr.
func (j JuristicMethod) ShadowFactor() float64 {
	if j == Hanafi {
		return 2
	}
	return 1
}

// ParseJuristicMethod parses "shafii" or "hanafi" (also "shafi"), ignoring case.
func ParseJuristicMethod(s string) (JuristicMethod, error) {
	switch strings.ToLower(s) {
	case "shafii", "shafi", "standard":
		return Shafii, nil
	case "hanafi":
		return Hanafi, nil
	default:
		return 0, fmt.Errorf("unknown juristic method %q; valid: shafii, hanafi", s)
	}
}

// AdjustingMethod selects the fallback used for Fajr, Maghrib and Isha when
// twilight angles are extreme or never reached at higher latitudes.
type AdjustingMethod int

const (
	None       AdjustingMethod = iota // no adjustment
	MidNight                          // middle of the night
	OneSeventh                        // 1/7th of the night
	AngleBased                        // angle/60th of the night
)

var adjustingNames = map[AdjustingMethod]string{
	None:       "None",
	MidNight:   "MidNight",
	OneSeventh: "OneSeventh",
	AngleBased: "AngleBased",
}

func (a AdjustingMethod) String() string {
	if name, ok := adjustingNames[a]; ok {
		return name
	}
	return fmt.Sprintf("AdjustingMethod(%d)", int(a))
}

// ParseAdjustingMethod parses an adjusting method name, ignoring case.
func ParseAdjustingMethod(s string) (AdjustingMethod, error) {
	for _, a := range []AdjustingMethod{None, MidNight, OneSeventh, AngleBased} {
		if strings.EqualFold(s, adjustingNames[a]) {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown high latitude method %q; valid: none, midnight, oneseventh, anglebased", s)
}
