package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayer-calc/internal/display"
	"github.com/smokyabdulrahman/prayer-calc/internal/prayer"
)

func newTodayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show the schedule for today (the default command)",
		Args:  cobra.NoArgs,
		RunE:  runToday,
	}
}

func runToday(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	date, err := s.date()
	if err != nil {
		return err
	}

	day, err := s.plan(date)
	if err != nil {
		return err
	}

	// Current and next only make sense for the day we are in.
	var current, next *prayer.Prayer
	if date == s.today() {
		current = prayer.CurrentPrayer(day.Prayers, s.now)
		next = prayer.NextPrayer(day.Prayers, s.now)
	}

	out := cmd.OutOrStdout()
	if structured() {
		return writeStructured(out, buildTodayJSON(s, date, day.Schedule, current, next))
	}

	printTodayRich(out, s, date, day.Prayers, current, next)
	return nil
}

// printTodayRich renders the colored terminal output for one day's schedule.
func printTodayRich(w io.Writer, s *session, date prayer.Date, prayers []prayer.Prayer, current, next *prayer.Prayer) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", display.Bold("Prayer Times"))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %s\n", s.label())
	fmt.Fprintf(w, "  %s\n", s.zone)
	fmt.Fprintf(w, "  %s\n", formatLongDate(date))
	fmt.Fprintf(w, "  %s\n", display.Dim(fmt.Sprintf("%s, Asr %s", s.opts.Method.Description, s.opts.Asr)))
	fmt.Fprintln(w)

	maxNameLen := 0
	for _, p := range prayers {
		if len(p.Name) > maxNameLen {
			maxNameLen = len(p.Name)
		}
	}

	for _, p := range prayers {
		line := fmt.Sprintf("  %s  %s", padRight(p.Name, maxNameLen), prayer.FormatClock(p.Time, s.style))

		switch {
		case current != nil && p.Event == current.Event:
			fmt.Fprintln(w, display.Dim(line))
		case next != nil && p.Event == next.Event:
			remaining := prayer.FormatRemaining(prayer.TimeRemaining(p, s.now))
			fmt.Fprintln(w, display.Accent(line)+display.Accent(fmt.Sprintf("  <- next in %s", remaining)))
		default:
			fmt.Fprintln(w, line)
		}
	}

	fmt.Fprintln(w)
}

// formatLongDate returns e.g. "Monday, 01 January 2024".
func formatLongDate(d prayer.Date) string {
	return time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, time.UTC).Format("Monday, 02 January 2006")
}

// formatShortDate returns e.g. "Mon 01 Jan" for table rows.
func formatShortDate(d prayer.Date) string {
	return time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, time.UTC).Format("Mon 02 Jan")
}

// padRight pads a string to the given width with spaces.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// todayJSON is the structured output of the root command.
type todayJSON struct {
	Location locationJSON    `json:"location" yaml:"location"`
	Date     string          `json:"date" yaml:"date"`
	Method   string          `json:"method" yaml:"method"`
	Asr      string          `json:"asr" yaml:"asr"`
	Timings  prayer.Schedule `json:"timings" yaml:"timings"`
	Current  string          `json:"current,omitempty" yaml:"current,omitempty"`
	Next     *todayJSONNext  `json:"next,omitempty" yaml:"next,omitempty"`
}

type todayJSONNext struct {
	Prayer    string `json:"prayer" yaml:"prayer"`
	Time      string `json:"time" yaml:"time"`
	Remaining string `json:"remaining" yaml:"remaining"`
}

func buildTodayJSON(s *session, date prayer.Date, schedule prayer.Schedule, current, next *prayer.Prayer) todayJSON {
	out := todayJSON{
		Location: s.locationInfo(date),
		Date:     date.String(),
		Method:   s.opts.Method.Name,
		Asr:      s.opts.Asr.String(),
		Timings:  schedule,
	}
	if current != nil {
		out.Current = current.Event.Key()
	}
	if next != nil {
		out.Next = &todayJSONNext{
			Prayer:    next.Event.Key(),
			Time:      prayer.FormatClock(next.Time, s.style),
			Remaining: prayer.FormatRemaining(prayer.TimeRemaining(*next, s.now)),
		}
	}
	return out
}
