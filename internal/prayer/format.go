package prayer

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"
)

// Output modes for a single prayer, as used by the next command and the
// tmux status line.
const (
	FormatTimeRemaining      = "time-remaining"
	FormatNextPrayerTime     = "next-prayer-time"
	FormatNameAndTime        = "name-and-time"
	FormatNameAndRemaining   = "name-and-remaining"
	FormatShortNameAndTime   = "short-name-and-time"
	FormatShortNameAndRemain = "short-name-and-remaining"
	FormatFull               = "full"
)

// OutputModes lists the named modes accepted by FormatOutput.
var OutputModes = []string{
	FormatTimeRemaining,
	FormatNextPrayerTime,
	FormatNameAndTime,
	FormatNameAndRemaining,
	FormatShortNameAndTime,
	FormatShortNameAndRemain,
	FormatFull,
}

// FormatData is the data passed to custom templates.
type FormatData struct {
	Name      string // "Asr"
	ShortName string // "A"
	Time      string // "15:02" or "3:02 PM"
	Remaining string // "2h 15m"
	Hours     int    // whole hours remaining
	Minutes   int    // minutes after Hours
}

// NewFormatData collects the template fields for p as seen at now.
// timeFormat is "24h" or "12h".
func NewFormatData(p Prayer, now time.Time, timeFormat string) FormatData {
	if !p.Defined() {
		return FormatData{
			Name:      p.Name,
			ShortName: ShortNames[p.Name],
			Time:      Undefined,
			Remaining: Undefined,
		}
	}

	d := TimeRemaining(p, now)
	if d < 0 {
		d = 0
	}
	return FormatData{
		Name:      p.Name,
		ShortName: ShortNames[p.Name],
		Time:      FormatHours(p.Hours, timeFormat),
		Remaining: FormatRemaining(d),
		Hours:     int(d.Hours()),
		Minutes:   int(d.Minutes()) % 60,
	}
}

// FormatOutput renders a prayer according to mode. A mode containing "{{"
// is a text/template over FormatData, e.g. "{{.Name}} in {{.Remaining}}".
// Unknown modes fall back to name-and-time.
func FormatOutput(p Prayer, now time.Time, mode string, timeFormat string) string {
	data := NewFormatData(p, now, timeFormat)

	if strings.Contains(mode, "{{") {
		return formatCustom(mode, data)
	}

	switch mode {
	case FormatTimeRemaining:
		return data.Remaining
	case FormatNextPrayerTime:
		return data.Time
	case FormatNameAndRemaining:
		return data.Name + " " + data.Remaining
	case FormatShortNameAndTime:
		return data.ShortName + " " + data.Time
	case FormatShortNameAndRemain:
		return data.ShortName + " " + data.Remaining
	case FormatFull:
		return fmt.Sprintf("%s %s (%s)", data.Name, data.Time, data.Remaining)
	default:
		return data.Name + " " + data.Time
	}
}

func formatCustom(tmpl string, data FormatData) string {
	t, err := template.New("custom").Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return fmt.Sprintf("template-err: %v", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return fmt.Sprintf("template-err: %v", err)
	}
	return buf.String()
}
