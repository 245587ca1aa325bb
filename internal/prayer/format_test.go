package prayer

import (
	"strings"
	"testing"
	"time"
)

// helper: a fixed prayer and "now" time for format tests.
func formatTestPrayer() (Prayer, time.Time) {
	pTime := time.Date(2026, 2, 28, 15, 2, 0, 0, time.UTC)
	now := time.Date(2026, 2, 28, 12, 47, 0, 0, time.UTC)
	return Prayer{Event: Asr, Name: "Asr", Time: pTime}, now
}

func TestFormatOutput_AllBuiltinModes(t *testing.T) {
	p, now := formatTestPrayer()

	tests := []struct {
		mode string
		want string
	}{
		{FormatTimeRemaining, "2h 15m"},
		{FormatNextPrayerTime, "15:02"},
		{FormatNameAndTime, "Asr 15:02"},
		{FormatNameAndRemaining, "Asr 2h 15m"},
		{FormatShortNameAndTime, "A 15:02"},
		{FormatShortNameAndRemain, "A 2h 15m"},
		{FormatCountdownMode, "Asr 02:15:00"},
		{FormatFull, "Asr 15:02 (2h 15m)"},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			got := FormatOutput(p, now, tt.mode, Style24h)
			if got != tt.want {
				t.Errorf("FormatOutput(%q) = %q, want %q", tt.mode, got, tt.want)
			}
		})
	}
}

func TestFormatOutput_12HourFormat(t *testing.T) {
	p, now := formatTestPrayer()

	got := FormatOutput(p, now, FormatNameAndTime, Style12h)
	if got != "Asr 03:02 PM" {
		t.Errorf("12h format = %q, want %q", got, "Asr 03:02 PM")
	}
}

func TestFormatOutput_UnknownModeDefaultsToNameAndTime(t *testing.T) {
	p, now := formatTestPrayer()

	got := FormatOutput(p, now, "nonexistent-format", Style24h)
	if got != "Asr 15:02" {
		t.Errorf("unknown mode = %q, want %q", got, "Asr 15:02")
	}
}

func TestFormatOutput_CustomTemplate(t *testing.T) {
	p, now := formatTestPrayer()

	tests := []struct {
		name string
		tmpl string
		want string
	}{
		{"name and remaining", "{{.Name}} in {{.Remaining}}", "Asr in 2h 15m"},
		{"short name and time", "{{.ShortName}} @ {{.Time}}", "A @ 15:02"},
		{"hours and minutes fields", "{{.Hours}}h {{.Minutes}}m until {{.Name}}", "2h 15m until Asr"},
		{"key and countdown", "{{.Key}}={{.Countdown}}", "asr=02:15:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatOutput(p, now, tt.tmpl, Style24h)
			if got != tt.want {
				t.Errorf("custom template %q = %q, want %q", tt.tmpl, got, tt.want)
			}
		})
	}
}

func TestFormatOutput_InvalidTemplate(t *testing.T) {
	p, now := formatTestPrayer()

	for _, tmpl := range []string{"{{.Invalid", "{{.NonExistent}}"} {
		got := FormatOutput(p, now, tmpl, Style24h)
		if !strings.HasPrefix(got, "template-err:") {
			t.Errorf("template %q should return 'template-err:...', got %q", tmpl, got)
		}
	}
}

func TestIsFormatMode(t *testing.T) {
	for _, mode := range []string{FormatFull, FormatCountdownMode, FormatShortNameAndRemain, "{{.Name}}"} {
		if !IsFormatMode(mode) {
			t.Errorf("IsFormatMode(%q) = false", mode)
		}
	}
	for _, mode := range []string{"", "fancy", "{.Name}"} {
		if IsFormatMode(mode) {
			t.Errorf("IsFormatMode(%q) = true", mode)
		}
	}
}

func TestFormatOutput_PassedPrayerClampsToZero(t *testing.T) {
	p, _ := formatTestPrayer()
	later := p.Time.Add(90 * time.Second)

	if got := FormatOutput(p, later, "{{.Hours}}:{{.Minutes}} {{.Countdown}}", Style24h); got != "0:0 00:00:00" {
		t.Errorf("passed prayer = %q", got)
	}
}

func TestFormatOutput_ZeroRemaining(t *testing.T) {
	now := time.Date(2026, 2, 28, 15, 2, 0, 0, time.UTC)
	p := Prayer{Event: Asr, Name: "Asr", Time: now}

	got := FormatOutput(p, now, FormatTimeRemaining, Style24h)
	if got != "0m" {
		t.Errorf("zero remaining = %q, want %q", got, "0m")
	}
}
