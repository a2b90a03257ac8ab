package prayer

import (
	"math"
	"math/rand"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/nathan-osman/go-sunrise"
)

const rawEps = 1e-6

type engineCase struct {
	name     string
	method   CalculationMethod
	juristic JuristicMethod
	adjust   AdjustingMethod
	dhuhr    float64
	y, m, d  int
	lat, lon float64
	tz       float64
	want     []string
}

var engineCases = []engineCase{
	{
		name: "mwl 1911", method: MWL, juristic: Shafii, adjust: MidNight,
		y: 1911, m: 3, d: 11, lat: 36, lon: 10, tz: 1,
		want: []string{"05:13", "06:38", "12:30", "15:50", "18:23", "18:23", "19:43"},
	},
	{
		name: "mwl default november", method: MWL, juristic: Shafii, adjust: MidNight,
		y: 2022, m: 11, d: 27, lat: 36, lon: 10, tz: 1,
		want: []string{"05:38", "07:08", "12:08", "14:48", "17:07", "17:07", "18:32"},
	},
	{
		name: "mwl previous day", method: MWL, juristic: Shafii, adjust: MidNight,
		y: 2022, m: 11, d: 26, lat: 36, lon: 10, tz: 1,
		want: []string{"05:37", "07:07", "12:07", "14:48", "17:07", "17:07", "18:32"},
	},
	{
		name: "makkah", method: Makkah, juristic: Shafii, adjust: MidNight,
		y: 2023, m: 4, d: 15, lat: 21.4225, lon: 39.8262, tz: 3,
		want: []string{"04:41", "06:02", "12:21", "15:45", "18:40", "18:40", "20:10"},
	},
	{
		name: "isna hanafi new york", method: ISNA, juristic: Hanafi, adjust: None,
		y: 2024, m: 7, d: 4, lat: 40.7128, lon: -74.006, tz: -4,
		want: []string{"03:52", "05:31", "13:01", "18:13", "20:30", "20:30", "22:09"},
	},
	{
		name: "jafari tehran", method: Jafari, juristic: Shafii, adjust: OneSeventh, dhuhr: 2,
		y: 2020, m: 1, d: 15, lat: 35.6892, lon: 51.389, tz: 3.5,
		want: []string{"05:54", "07:14", "12:16", "14:55", "17:14", "17:31", "18:23"},
	},
	{
		name: "egypt cairo", method: Egypt, juristic: Shafii, adjust: AngleBased,
		y: 2021, m: 9, d: 1, lat: 30.0444, lon: 31.2357, tz: 2,
		want: []string{"04:02", "05:32", "11:55", "15:29", "18:18", "18:18", "19:37"},
	},
	{
		name: "karachi hanafi", method: Karachi, juristic: Hanafi, adjust: None,
		y: 2021, m: 3, d: 20, lat: 24.8607, lon: 67.0011, tz: 5,
		want: []string{"05:20", "06:36", "12:39", "17:01", "18:43", "18:43", "19:59"},
	},
	{
		name: "70N august none", method: MWL, juristic: Shafii, adjust: None,
		y: 2024, m: 8, d: 1, lat: 70, lon: 25, tz: 2,
		want: []string{Undefined, "01:52", "12:26", "17:05", "22:57", "22:57", Undefined},
	},
	{
		name: "70N august angle based", method: MWL, juristic: Shafii, adjust: AngleBased,
		y: 2024, m: 8, d: 1, lat: 70, lon: 25, tz: 2,
		want: []string{"00:59", "01:52", "12:26", "17:05", "22:57", "22:57", "23:46"},
	},
	{
		name: "70N august midnight", method: MWL, juristic: Shafii, adjust: MidNight,
		y: 2024, m: 8, d: 1, lat: 70, lon: 25, tz: 2,
		want: []string{"00:24", "01:52", "12:26", "17:05", "22:57", "22:57", "00:24"},
	},
	{
		name: "70N august one seventh", method: MWL, juristic: Shafii, adjust: OneSeventh,
		y: 2024, m: 8, d: 1, lat: 70, lon: 25, tz: 2,
		want: []string{"01:27", "01:52", "12:26", "17:05", "22:57", "22:57", "23:22"},
	},
	{
		name: "70N may none", method: MWL, juristic: Shafii, adjust: None,
		y: 2024, m: 5, d: 10, lat: 70, lon: 25, tz: 2,
		want: []string{Undefined, "01:47", "12:16", "16:55", "22:50", "22:50", Undefined},
	},
	{
		name: "70N may angle based", method: MWL, juristic: Shafii, adjust: AngleBased,
		y: 2024, m: 5, d: 10, lat: 70, lon: 25, tz: 2,
		want: []string{"00:54", "01:47", "12:16", "16:55", "22:50", "22:50", "23:40"},
	},
	{
		name: "70N midnight sun", method: MWL, juristic: Shafii, adjust: AngleBased,
		y: 2024, m: 6, d: 21, lat: 70, lon: 25, tz: 2,
		want: []string{Undefined, Undefined, "12:22", "17:35", Undefined, Undefined, Undefined},
	},
	{
		name: "70N polar night", method: MWL, juristic: Shafii, adjust: None,
		y: 2024, m: 12, d: 21, lat: 70, lon: 25, tz: 1,
		want: []string{"06:06", Undefined, "11:18", "11:54", Undefined, Undefined, "16:18"},
	},
}

func TestEngine_Compute(t *testing.T) {
	for _, tc := range engineCases {
		t.Run(tc.name, func(t *testing.T) {
			e := New(tc.method, tc.juristic, tc.adjust, tc.dhuhr)
			got := e.Compute(tc.y, tc.m, tc.d, tc.lat, tc.lon, tc.tz).Format24().Strings()
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Compute() =\n  %v\nwant\n  %v", got, tc.want)
			}
		})
	}
}

func TestEngine_RawValues(t *testing.T) {
	ts := Default().Compute(1911, 3, 11, 36, 10, 1)
	want := TimeSet{
		5.223145400030807,
		6.640335581456464,
		12.506729402975326,
		15.83922164256135,
		18.3826456466822,
		18.3826456466822,
		19.717811598246588,
	}
	for _, id := range AllTimeIDs {
		if math.Abs(ts[id]-want[id]) > rawEps {
			t.Errorf("%s = %.9f, want %.9f", id, ts[id], want[id])
		}
	}
}

func TestEngine_RawValuesAreNotReduced(t *testing.T) {
	e := New(MWL, Shafii, MidNight, 0)
	ts := e.Compute(2024, 8, 1, 70, 25, 2)

	if math.Abs(ts[Isha]-24.403961) > rawEps {
		t.Errorf("Isha = %f, want 24.403961 (past midnight, not wrapped)", ts[Isha])
	}
	if math.Abs(ts[Fajr]-0.403961) > rawEps {
		t.Errorf("Fajr = %f, want 0.403961", ts[Fajr])
	}

	r := ts.Reduced()
	if r[Isha] < 0 || r[Isha] >= 24 {
		t.Errorf("Reduced Isha = %f, want a value in [0, 24)", r[Isha])
	}
}

func TestEngine_Idempotent(t *testing.T) {
	e := New(Egypt, Hanafi, AngleBased, 3)
	a := e.Compute(2021, 9, 1, 30.0444, 31.2357, 2)
	b := e.Compute(2021, 9, 1, 30.0444, 31.2357, 2)
	if a != b {
		t.Errorf("two calls differ: %v vs %v", a, b)
	}
}

// Default times at 36N 10E, UTC+1 across the supported year range.
var defaultYearSweep = []struct {
	y, m, d int
	want    [7]string
}{
	{1911, 3, 11, [7]string{"05:13", "06:38", "12:30", "15:50", "18:23", "18:23", "19:43"}},
	{1008, 5, 22, [7]string{"03:24", "05:08", "12:15", "16:03", "19:22", "19:22", "20:59"}},
	{1028, 10, 17, [7]string{"05:04", "06:29", "12:06", "15:16", "17:42", "17:42", "19:03"}},
	{1185, 3, 10, [7]string{"05:14", "06:39", "12:31", "15:51", "18:23", "18:23", "19:43"}},
	{1263, 1, 1, [7]string{"06:01", "07:33", "12:25", "15:00", "17:18", "17:18", "18:45"}},
	{1384, 10, 13, [7]string{"05:01", "06:26", "12:06", "15:18", "17:46", "17:46", "19:07"}},
	{1558, 12, 27, [7]string{"05:58", "07:30", "12:22", "14:56", "17:14", "17:14", "18:40"}},
	{1717, 11, 17, [7]string{"05:30", "06:59", "12:05", "14:52", "17:12", "17:12", "18:35"}},
	{1744, 11, 6, [7]string{"05:21", "06:48", "12:04", "14:58", "17:19", "17:19", "18:42"}},
	{2252, 8, 19, [7]string{"04:09", "05:42", "12:24", "16:07", "19:05", "19:05", "20:32"}},
	{2382, 2, 8, [7]string{"05:47", "07:14", "12:33", "15:30", "17:53", "17:53", "19:15"}},
	{2513, 2, 7, [7]string{"05:48", "07:15", "12:33", "15:29", "17:52", "17:52", "19:14"}},
	{2699, 4, 9, [7]string{"04:27", "05:55", "12:22", "15:59", "18:48", "18:48", "20:12"}},
	{2783, 5, 16, [7]string{"03:34", "05:15", "12:17", "16:06", "19:20", "19:20", "20:55"}},
	{2794, 8, 25, [7]string{"04:17", "05:48", "12:23", "16:04", "18:58", "18:58", "20:23"}},
}

func TestEngine_DefaultAcrossYears(t *testing.T) {
	e := Default()
	for _, tc := range defaultYearSweep {
		got := e.Compute(tc.y, tc.m, tc.d, 36, 10, 1).Format24().Strings()
		if !reflect.DeepEqual(got, tc.want[:]) {
			t.Errorf("%04d-%02d-%02d = %v, want %v", tc.y, tc.m, tc.d, got, tc.want)
		}
	}
}

func TestEngine_RandomSweepIsIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(1911))
	adjusts := []AdjustingMethod{None, MidNight, OneSeventh, AngleBased}

	for i := 0; i < 2000; i++ {
		method := AllMethods[rng.Intn(len(AllMethods))]
		juristic := JuristicMethod(rng.Intn(2))
		adjust := adjusts[rng.Intn(len(adjusts))]
		y, m, d := 1000+rng.Intn(2000), 1+rng.Intn(12), 1+rng.Intn(28)
		lat := rng.Float64()*180 - 90
		lon := rng.Float64()*360 - 180
		tz := math.Round(lon / 15)

		e := New(method, juristic, adjust, 0)
		a := e.Compute(y, m, d, lat, lon, tz)
		b := e.Compute(y, m, d, lat, lon, tz)
		for _, id := range AllTimeIDs {
			if math.Float64bits(a[id]) != math.Float64bits(b[id]) {
				t.Fatalf("%s %04d-%02d-%02d at %.3f,%.3f: %s differs between calls: %v vs %v",
					e, y, m, d, lat, lon, id, a[id], b[id])
			}
			if s := FormatTime24(a[id]); s != Undefined && (len(s) != 5 || s[2] != ':') {
				t.Fatalf("%s %04d-%02d-%02d: %s formatted as %q", e, y, m, d, id, s)
			}
		}
	}
}

func TestEngine_ConcurrentUse(t *testing.T) {
	e := Default()
	want := e.Compute(2022, 11, 27, 36, 10, 1)

	var wg sync.WaitGroup
	results := make([]TimeSet, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = e.Compute(2022, 11, 27, 36, 10, 1)
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		if got != want {
			t.Errorf("goroutine %d got %v, want %v", i, got, want)
		}
	}
}

func TestEngine_ComputeMoment(t *testing.T) {
	e := Default()
	m := Moment{Year: 2023, Month: 4, Day: 15, Latitude: 21.4225, Longitude: 39.8262, Timezone: 3}
	if e.ComputeMoment(m) != e.Compute(2023, 4, 15, 21.4225, 39.8262, 3) {
		t.Error("ComputeMoment differs from Compute")
	}
}

func TestEngine_OrderingAtModerateLatitudes(t *testing.T) {
	e := New(MWL, Shafii, None, 0)
	for lat := -45.0; lat <= 45; lat += 15 {
		for month := 1; month <= 12; month++ {
			ts := e.Compute(2024, month, 15, lat, 0, 0)
			for i := 1; i < len(ts); i++ {
				if !ts.Defined(TimeID(i)) || !ts.Defined(TimeID(i-1)) {
					t.Fatalf("lat %g month %d: undefined entry in %v", lat, month, ts)
				}
				if ts[i] < ts[i-1] {
					t.Errorf("lat %g month %d: %s (%f) before %s (%f)",
						lat, month, TimeID(i), ts[i], TimeID(i-1), ts[i-1])
				}
			}
		}
	}
}

func TestEngine_NaNContainment(t *testing.T) {
	// An undefined Fajr must not leak into any other entry.
	ts := New(MWL, Shafii, None, 0).Compute(2024, 8, 1, 70, 25, 2)
	if ts.Defined(Fajr) || ts.Defined(Isha) {
		t.Fatalf("expected undefined Fajr and Isha, got %v", ts)
	}
	for _, id := range []TimeID{Sunrise, Dhuhr, Asr, Sunset, Maghrib} {
		if !ts.Defined(id) {
			t.Errorf("%s is undefined", id)
		}
	}
}

func TestEngine_AdjustmentStaysWithinNightPortion(t *testing.T) {
	for _, adj := range []AdjustingMethod{MidNight, OneSeventh, AngleBased} {
		t.Run(adj.String(), func(t *testing.T) {
			e := New(MWL, Shafii, adj, 0)
			cfg := e.MethodConfig()
			ts := e.Compute(2024, 8, 1, 70, 25, 2)

			night := math.Mod(ts[Sunrise]-ts[Sunset]+48, 24)
			fajrLimit := NightPortion(adj, cfg.FajrAngle)*night + rawEps
			ishaLimit := NightPortion(adj, cfg.IshaValue)*night + rawEps

			if d := ts[Sunrise] - ts[Fajr]; d < 0 || d > fajrLimit {
				t.Errorf("Fajr is %f h before Sunrise, limit %f", d, fajrLimit)
			}
			if d := ts[Isha] - ts[Sunset]; d < 0 || d > ishaLimit {
				t.Errorf("Isha is %f h after Sunset, limit %f", d, ishaLimit)
			}
		})
	}
}

func TestEngine_AngleBasedAtSolsticeLatitudes(t *testing.T) {
	tests := []struct {
		lat        float64
		fajr, isha string
	}{
		{60, "01:24", "23:15"},
		{62, "01:13", "23:27"},
		{64, "00:58", "23:43"},
	}
	for _, tt := range tests {
		adjusted := New(MWL, Shafii, AngleBased, 0).Compute(2024, 6, 21, tt.lat, 25, 2)
		if got := FormatTime24(adjusted[Fajr]); got != tt.fajr {
			t.Errorf("lat %g: Fajr = %s, want %s", tt.lat, got, tt.fajr)
		}
		if got := FormatTime24(adjusted[Isha]); got != tt.isha {
			t.Errorf("lat %g: Isha = %s, want %s", tt.lat, got, tt.isha)
		}

		plain := New(MWL, Shafii, None, 0).Compute(2024, 6, 21, tt.lat, 25, 2)
		if plain.Defined(Fajr) || plain.Defined(Isha) {
			t.Errorf("lat %g: without adjustment Fajr/Isha should be undefined, got %v", tt.lat, plain)
		}
	}
}

func TestEngine_DhuhrMinutes(t *testing.T) {
	base := New(MWL, Shafii, None, 0).Compute(2022, 11, 27, 36, 10, 1)
	shifted := New(MWL, Shafii, None, 5).Compute(2022, 11, 27, 36, 10, 1)

	if d := shifted[Dhuhr] - base[Dhuhr]; math.Abs(d-5.0/60) > 1e-12 {
		t.Errorf("Dhuhr shift = %f h, want 5 minutes", d)
	}
	for _, id := range []TimeID{Fajr, Sunrise, Asr, Sunset, Maghrib, Isha} {
		if shifted[id] != base[id] {
			t.Errorf("%s changed with the Dhuhr offset", id)
		}
	}
}

func TestEngine_MinuteBasedIsha(t *testing.T) {
	ts := New(Makkah, Shafii, MidNight, 0).Compute(2023, 4, 15, 21.4225, 39.8262, 3)
	if d := ts[Isha] - ts[Maghrib]; math.Abs(d-1.5) > 1e-12 {
		t.Errorf("Isha - Maghrib = %f h, want 1.5", d)
	}
	if ts[Maghrib] != ts[Sunset] {
		t.Errorf("Maghrib %f != Sunset %f", ts[Maghrib], ts[Sunset])
	}
}

func TestEngine_CustomMethod(t *testing.T) {
	isna, _ := Config(ISNA)
	custom := New(Custom, Shafii, None, 0, WithCustomMethod(isna))
	if custom.MethodConfig() != isna {
		t.Fatalf("MethodConfig() = %+v, want %+v", custom.MethodConfig(), isna)
	}

	got := custom.Compute(2024, 7, 4, 40.7128, -74.006, -4)
	want := New(ISNA, Shafii, None, 0).Compute(2024, 7, 4, 40.7128, -74.006, -4)
	if got != want {
		t.Errorf("custom with ISNA angles = %v, want %v", got, want)
	}

	// The option only applies to Custom.
	mwl := New(MWL, Shafii, None, 0, WithCustomMethod(isna))
	if mwl.MethodConfig() == isna {
		t.Error("WithCustomMethod changed a non-custom method")
	}
}

func TestEngine_UnknownMethodFallsBackToMWL(t *testing.T) {
	e := New(CalculationMethod(42), Shafii, None, 0)
	if e.Method() != MWL {
		t.Errorf("Method() = %s, want MWL", e.Method())
	}
}

func TestEngine_Accessors(t *testing.T) {
	e := New(Jafari, Hanafi, OneSeventh, 2.5)
	if e.Method() != Jafari || e.Juristic() != Hanafi || e.Adjusting() != OneSeventh || e.DhuhrMinutes() != 2.5 {
		t.Errorf("accessors returned %s %s %s %g", e.Method(), e.Juristic(), e.Adjusting(), e.DhuhrMinutes())
	}
	if got := e.String(); got != "Jafari/Hanafi/OneSeventh dhuhr+2.5m" {
		t.Errorf("String() = %q", got)
	}

	d := Default()
	if d.Method() != MWL || d.Juristic() != Shafii || d.Adjusting() != MidNight || d.DhuhrMinutes() != 0 {
		t.Errorf("Default() = %s", d)
	}
}

// The engine and go-sunrise use different solar models. They should still
// agree on sunrise and sunset to within a few minutes.
func TestEngine_AgreesWithGoSunrise(t *testing.T) {
	places := []struct {
		name     string
		y, m, d  int
		lat, lon float64
	}{
		{"tunis", 2022, 11, 27, 36, 10},
		{"new york", 2024, 7, 4, 40.7128, -74.006},
		{"karachi", 2021, 3, 20, 24.8607, 67.0011},
		{"london", 2024, 3, 20, 51.5, 0},
	}

	const tolerance = 4.0 / 60
	e := New(MWL, Shafii, None, 0)

	for _, p := range places {
		t.Run(p.name, func(t *testing.T) {
			ts := e.Compute(p.y, p.m, p.d, p.lat, p.lon, 0)
			rise, set := sunrise.SunriseSunset(p.lat, p.lon, p.y, time.Month(p.m), p.d)

			midnight := time.Date(p.y, time.Month(p.m), p.d, 0, 0, 0, 0, time.UTC)
			riseH := rise.Sub(midnight).Hours()
			setH := set.Sub(midnight).Hours()

			if math.Abs(ts[Sunrise]-riseH) > tolerance {
				t.Errorf("sunrise %f vs go-sunrise %f", ts[Sunrise], riseH)
			}
			if math.Abs(ts[Sunset]-setH) > tolerance {
				t.Errorf("sunset %f vs go-sunrise %f", ts[Sunset], setH)
			}
		})
	}
}

func TestEngine_PolarNightAgreesWithGoSunrise(t *testing.T) {
	ts := New(MWL, Shafii, None, 0).Compute(2024, 12, 21, 80, 15, 0)
	rise, set := sunrise.SunriseSunset(80, 15, 2024, time.December, 21)

	if ts.Defined(Sunrise) || ts.Defined(Sunset) {
		t.Errorf("expected undefined sunrise and sunset, got %v", ts)
	}
	if !rise.IsZero() || !set.IsZero() {
		t.Errorf("go-sunrise reports rise %v set %v", rise, set)
	}
}
