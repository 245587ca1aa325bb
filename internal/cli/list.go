package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayer-calc/internal/display"
	"github.com/smokyabdulrahman/prayer-calc/internal/prayer"
)

const unreachableCell = "--:--"

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [days]",
		Short: "Show prayer times for multiple days",
		Long:  "Display a grid of prayer times for N days (default: 7), starting today or at --date.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, args, 7)
		},
	}
}

func newWeekCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "week",
		Short: "Show prayer times for the next 7 days",
		Long:  "Alias for 'list 7'. Display a grid of prayer times for 7 days.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, nil, 7)
		},
	}
}

func newMonthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "month",
		Short: "Show prayer times for the next 30 days",
		Long:  "Alias for 'list 30'. Display a grid of prayer times for 30 days.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, nil, 30)
		},
	}
}

// dayResult is one computed day of a multi-day listing. Err is set when the
// day could not be computed; the listing still shows the other days.
type dayResult struct {
	Date     prayer.Date
	Schedule prayer.Schedule
	Err      error
}

// computeDays computes n consecutive days from start. A per-day failure is
// logged and kept in the result. An incomplete location fails the whole run.
func computeDays(s *session, start prayer.Date, n int) ([]dayResult, error) {
	days := make([]dayResult, 0, n)
	for i := 0; i < n; i++ {
		date := start.AddDays(i)
		day, err := s.plan(date)
		if errors.Is(err, prayer.ErrLocationNotConfigured) {
			return nil, err
		}
		if err != nil {
			log.Error().Err(err).Str("date", date.String()).Msg("cannot compute schedule")
		}
		days = append(days, dayResult{Date: date, Schedule: day.Schedule, Err: err})
	}
	return days, nil
}

func parseDays(s string) (int, error) {
	switch s {
	case "week":
		return 7, nil
	case "month":
		return 30, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid number of days: %q (must be a positive integer, 'week', or 'month')", s)
	}
	return n, nil
}

// runList is the handler for the list subcommand.
func runList(cmd *cobra.Command, args []string, defaultDays int) error {
	days := defaultDays
	if len(args) > 0 {
		n, err := parseDays(args[0])
		if err != nil {
			return err
		}
		days = n
	}

	s, err := newSession()
	if err != nil {
		return err
	}
	start, err := s.date()
	if err != nil {
		return err
	}

	results, err := computeDays(s, start, days)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if structured() {
		return writeStructured(out, buildListJSON(s, start, results))
	}

	events := make([]prayer.Event, 0, len(s.names))
	headers := []string{"Date"}
	for _, name := range s.names {
		ev, err := prayer.ParseEvent(name)
		if err != nil {
			return err
		}
		events = append(events, ev)
		headers = append(headers, ev.String())
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s\n", display.Bold(fmt.Sprintf("Prayer Times: %d Days", days)))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s\n", s.label())
	fmt.Fprintln(out)

	tbl := display.NewTable(headers...)
	for i, r := range results {
		row := []string{formatShortDate(r.Date)}
		for _, ev := range events {
			if r.Err != nil {
				row = append(row, unreachableCell)
				continue
			}
			row = append(row, r.Schedule.Get(ev))
		}
		tbl.AddRow(row...)

		switch {
		case r.Err != nil:
			tbl.StyleRow(i, display.StyleRed)
		case r.Date == s.today():
			tbl.Highlight(i)
		}
	}

	if _, err := tbl.WriteTo(out); err != nil {
		return err
	}
	fmt.Fprintln(out)
	return nil
}

// listJSON is the structured output of the list command.
type listJSON struct {
	Location locationJSON  `json:"location" yaml:"location"`
	Method   string        `json:"method" yaml:"method"`
	Asr      string        `json:"asr" yaml:"asr"`
	Days     []listJSONDay `json:"days" yaml:"days"`
}

type listJSONDay struct {
	Date    string           `json:"date" yaml:"date"`
	Timings *prayer.Schedule `json:"timings,omitempty" yaml:"timings,omitempty"`
	Error   string           `json:"error,omitempty" yaml:"error,omitempty"`
}

func buildListJSON(s *session, start prayer.Date, results []dayResult) listJSON {
	out := listJSON{
		Location: s.locationInfo(start),
		Method:   s.opts.Method.Name,
		Asr:      s.opts.Asr.String(),
		Days:     make([]listJSONDay, 0, len(results)),
	}
	for _, r := range results {
		day := listJSONDay{Date: r.Date.String()}
		if r.Err != nil {
			day.Error = r.Err.Error()
		} else {
			schedule := r.Schedule
			day.Timings = &schedule
		}
		out.Days = append(out.Days, day)
	}
	return out
}
