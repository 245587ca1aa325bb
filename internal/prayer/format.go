package prayer

import (
	"fmt"
	"strings"
	"text/template"
	"time"
)

// Status line modes accepted by FormatOutput.
const (
	FormatTimeRemaining      = "time-remaining"
	FormatNextPrayerTime     = "next-prayer-time"
	FormatNameAndTime        = "name-and-time"
	FormatNameAndRemaining   = "name-and-remaining"
	FormatShortNameAndTime   = "short-name-and-time"
	FormatShortNameAndRemain = "short-name-and-remaining"
	FormatCountdownMode      = "countdown"
	FormatFull               = "full"
)

// FormatData is what a status line is built from. Custom templates see
// these fields, e.g. "{{.Name}} in {{.Remaining}}".
type FormatData struct {
	Name      string // "Asr"
	Key       string // "asr"
	ShortName string // "A"
	Time      string // "15:02" or "03:02 PM"
	Remaining string // "2h 15m"
	Countdown string // "02:15:00"
	Hours     int
	Minutes   int // after Hours
}

// NewFormatData describes p as seen at now.
func NewFormatData(p Prayer, now time.Time, style TimeStyle) FormatData {
	d := TimeRemaining(p, now)
	if d < 0 {
		d = 0
	}
	return FormatData{
		Name:      p.Name,
		Key:       p.Event.Key(),
		ShortName: ShortNames[p.Name],
		Time:      FormatClock(p.Time, style),
		Remaining: FormatRemaining(d),
		Countdown: FormatCountdown(d),
		Hours:     int(d.Hours()),
		Minutes:   int(d.Minutes()) % 60,
	}
}

var statusModes = map[string]func(FormatData) string{
	FormatTimeRemaining:      func(f FormatData) string { return f.Remaining },
	FormatNextPrayerTime:     func(f FormatData) string { return f.Time },
	FormatNameAndTime:        func(f FormatData) string { return f.Name + " " + f.Time },
	FormatNameAndRemaining:   func(f FormatData) string { return f.Name + " " + f.Remaining },
	FormatShortNameAndTime:   func(f FormatData) string { return f.ShortName + " " + f.Time },
	FormatShortNameAndRemain: func(f FormatData) string { return f.ShortName + " " + f.Remaining },
	FormatCountdownMode:      func(f FormatData) string { return f.Name + " " + f.Countdown },
	FormatFull:               func(f FormatData) string { return fmt.Sprintf("%s %s (%s)", f.Name, f.Time, f.Remaining) },
}

// IsFormatMode reports whether mode is a built-in mode or a template.
func IsFormatMode(mode string) bool {
	_, ok := statusModes[mode]
	return ok || strings.Contains(mode, "{{")
}

// FormatOutput renders the status line for p. A mode containing "{{" is a
// Go template over FormatData; an unknown mode falls back to name-and-time.
// Template errors are returned in the output as "template-err: ..." so a
// status bar shows them instead of going blank.
func FormatOutput(p Prayer, now time.Time, mode string, style TimeStyle) string {
	data := NewFormatData(p, now, style)

	if strings.Contains(mode, "{{") {
		out, err := executeTemplate(mode, data)
		if err != nil {
			return "template-err: " + err.Error()
		}
		return out
	}

	render, ok := statusModes[mode]
	if !ok {
		render = statusModes[FormatNameAndTime]
	}
	return render(data)
}

func executeTemplate(text string, data FormatData) (string, error) {
	t, err := template.New("status").Option("missingkey=error").Parse(text)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}
