package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayer-calc/internal/display"
	"github.com/smokyabdulrahman/prayer-calc/internal/prayer"
)

var flagQueryDays string

func newQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <prayer>",
		Short: "Query a specific prayer time",
		Long: "Query a specific prayer time for today, or across multiple days with --days.\n\n" +
			"Valid prayer names: " + strings.Join(prayer.AllPrayerNames, ", "),
		Args: cobra.ExactArgs(1),
		RunE: runQuery,
	}

	cmd.Flags().StringVar(&flagQueryDays, "days", "", "Number of days to show (or 'week'/'month')")

	return cmd
}

func runQuery(cmd *cobra.Command, args []string) error {
	ev, err := prayer.ParseEvent(args[0])
	if err != nil {
		return err
	}

	days := 1
	if flagQueryDays != "" {
		if days, err = parseDays(flagQueryDays); err != nil {
			return fmt.Errorf("invalid --days value: %w", err)
		}
	}

	s, err := newSession()
	if err != nil {
		return err
	}
	start, err := s.date()
	if err != nil {
		return err
	}

	if days == 1 {
		return runQuerySingleDay(cmd, s, ev, start)
	}
	return runQueryMultiDay(cmd, s, ev, start, days)
}

func runQuerySingleDay(cmd *cobra.Command, s *session, ev prayer.Event, date prayer.Date) error {
	day, err := s.plan(date)
	if err != nil {
		return err
	}
	timeStr := day.Schedule.Get(ev)

	out := cmd.OutOrStdout()
	if structured() {
		return writeStructured(out, queryJSONSingle{
			Prayer: ev.Key(),
			Time:   timeStr,
			Date:   date.String(),
		})
	}

	fmt.Fprintf(out, "%s %s\n", ev, timeStr)
	return nil
}

func runQueryMultiDay(cmd *cobra.Command, s *session, ev prayer.Event, start prayer.Date, days int) error {
	results, err := computeDays(s, start, days)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if structured() {
		return writeStructured(out, buildQueryJSON(s, ev, start, results))
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s\n", display.Bold(fmt.Sprintf("%s Times: %d Days", ev, days)))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s\n", s.label())
	fmt.Fprintln(out)

	tbl := display.NewTable("Date", ev.String())
	for i, r := range results {
		timeStr := unreachableCell
		if r.Err == nil {
			timeStr = r.Schedule.Get(ev)
		}
		tbl.AddRow(formatShortDate(r.Date), timeStr)

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

type queryJSONSingle struct {
	Prayer string `json:"prayer" yaml:"prayer"`
	Time   string `json:"time" yaml:"time"`
	Date   string `json:"date" yaml:"date"`
}

type queryJSONMulti struct {
	Location locationJSON   `json:"location" yaml:"location"`
	Prayer   string         `json:"prayer" yaml:"prayer"`
	Days     []queryJSONDay `json:"days" yaml:"days"`
}

type queryJSONDay struct {
	Date  string `json:"date" yaml:"date"`
	Time  string `json:"time,omitempty" yaml:"time,omitempty"`
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

func buildQueryJSON(s *session, ev prayer.Event, start prayer.Date, results []dayResult) queryJSONMulti {
	out := queryJSONMulti{
		Location: s.locationInfo(start),
		Prayer:   ev.Key(),
		Days:     make([]queryJSONDay, 0, len(results)),
	}
	for _, r := range results {
		day := queryJSONDay{Date: r.Date.String()}
		if r.Err != nil {
			day.Error = r.Err.Error()
		} else {
			day.Time = r.Schedule.Get(ev)
		}
		out.Days = append(out.Days, day)
	}
	return out
}
