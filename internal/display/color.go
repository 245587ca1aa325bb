// Package display renders schedules for a terminal: ANSI styling and
// aligned tables.
//
// Styling honours NO_COLOR (https://no-color.org/) and FORCE_COLOR, and is
// otherwise on only when stdout is a terminal.
package display

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// Style is an ANSI SGR sequence.
type Style string

const (
	reset = "\033[0m"

	StyleBold   Style = "\033[1m"
	StyleDim    Style = "\033[2m"
	StyleRed    Style = "\033[31m"
	StyleGreen  Style = "\033[32m"
	StyleYellow Style = "\033[33m"
	StyleCyan   Style = "\033[36m"
	StyleGray   Style = "\033[90m"
)

var enabled = detect(os.Getenv, os.Stdout.Fd())

// detect decides whether styling is on for the given environment and file
// descriptor.
func detect(getenv func(string) string, fd uintptr) bool {
	if getenv("NO_COLOR") != "" {
		return false
	}
	if getenv("FORCE_COLOR") != "" {
		return true
	}
	if getenv("TERM") == "dumb" {
		return false
	}
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// SetEnabled overrides the detected state, e.g. for --json output or tests.
func SetEnabled(b bool) {
	enabled = b
}

// Enabled reports whether styling is currently active.
func Enabled() bool {
	return enabled
}

// Paint applies styles to text when styling is enabled.
func Paint(text string, styles ...Style) string {
	if !enabled || len(styles) == 0 {
		return text
	}
	var sb strings.Builder
	for _, s := range styles {
		sb.WriteString(string(s))
	}
	sb.WriteString(text)
	sb.WriteString(reset)
	return sb.String()
}

func Bold(text string) string   { return Paint(text, StyleBold) }
func Dim(text string) string    { return Paint(text, StyleDim) }
func Red(text string) string    { return Paint(text, StyleRed) }
func Green(text string) string  { return Paint(text, StyleGreen) }
func Yellow(text string) string { return Paint(text, StyleYellow) }
func Cyan(text string) string   { return Paint(text, StyleCyan) }
func Gray(text string) string   { return Paint(text, StyleGray) }

// Accent marks the next prayer.
func Accent(text string) string {
	return Paint(text, StyleBold, StyleCyan)
}
