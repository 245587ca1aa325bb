package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayer-calc/internal/astro"
	"github.com/smokyabdulrahman/prayer-calc/internal/display"
	"github.com/smokyabdulrahman/prayer-calc/internal/prayer"
)

func newRawCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "raw",
		Short: "Show the intermediate values of the calculation",
		Long: "Print the Julian day, solar declination and equation of time for the date,\n" +
			"followed by every event's raw solar-time hour, its timezone-adjusted hour\n" +
			"and the formatted clock time.",
		Args: cobra.NoArgs,
		RunE: runRaw,
	}
}

type rawJSON struct {
	Date           string         `json:"date" yaml:"date"`
	JulianDay      float64        `json:"julian_day" yaml:"julian_day"`
	Declination    float64        `json:"declination" yaml:"declination"`
	EquationOfTime float64        `json:"equation_of_time" yaml:"equation_of_time"`
	UTCOffset      float64        `json:"utc_offset" yaml:"utc_offset"`
	Events         []rawJSONEvent `json:"events" yaml:"events"`
}

type rawJSONEvent struct {
	Event    string  `json:"event" yaml:"event"`
	Raw      float64 `json:"raw" yaml:"raw"`
	Adjusted float64 `json:"adjusted" yaml:"adjusted"`
	Time     string  `json:"time" yaml:"time"`
}

func runRaw(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	date, err := s.date()
	if err != nil {
		return err
	}

	raw, adjusted, loc, err := s.adjusted(date)
	if err != nil {
		return err
	}

	jd := astro.JulianDay(date.Year, int(date.Month), date.Day)
	pos := astro.SolarPosition(jd)

	out := rawJSON{
		Date:           date.String(),
		JulianDay:      jd,
		Declination:    pos.Declination,
		EquationOfTime: pos.EquationOfTime,
		UTCOffset:      loc.UTCOffset,
		Events:         make([]rawJSONEvent, 0, prayer.NumEvents),
	}
	for _, ev := range prayer.Events {
		out.Events = append(out.Events, rawJSONEvent{
			Event:    ev.Key(),
			Raw:      raw[ev],
			Adjusted: adjusted[ev],
			Time:     prayer.FormatHour(adjusted[ev], s.style),
		})
	}

	w := cmd.OutOrStdout()
	if structured() {
		return writeStructured(w, out)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", display.Bold("Raw Calculation"))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-16s %s\n", "Date", out.Date)
	fmt.Fprintf(w, "  %-16s %.1f\n", "Julian day", out.JulianDay)
	fmt.Fprintf(w, "  %-16s %.4f°\n", "Declination", out.Declination)
	fmt.Fprintf(w, "  %-16s %.4f h\n", "Equation of time", out.EquationOfTime)
	fmt.Fprintf(w, "  %-16s %s\n", "UTC offset", strconv.FormatFloat(out.UTCOffset, 'f', -1, 64))
	fmt.Fprintln(w)

	tbl := display.NewTable("Event", "Raw", "Adjusted", "Time").
		SetAlign(1, display.AlignRight).
		SetAlign(2, display.AlignRight)
	for i, e := range out.Events {
		tbl.AddRow(
			prayer.Events[i].String(),
			strconv.FormatFloat(e.Raw, 'f', 4, 64),
			strconv.FormatFloat(e.Adjusted, 'f', 4, 64),
			e.Time,
		)
	}
	if _, err := tbl.WriteTo(w); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return nil
}
