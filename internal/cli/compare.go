package cli

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayer-calc/internal/api"
	"github.com/smokyabdulrahman/prayer-calc/internal/display"
	"github.com/smokyabdulrahman/prayer-calc/internal/prayer"
)

// newAPIClient is replaced in tests.
var newAPIClient = api.NewClient

func newCompareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare",
		Short: "Compare local times with the Al Adhan API",
		Long: "Compute the schedule locally and fetch the same day from api.aladhan.com with\n" +
			"the same method and Asr school, then print the difference per event in minutes.\n" +
			"Reference responses are cached per date and parameters.\n\n" +
			"The service is given the configured timezone, or Etc/GMT±N for a whole-hour\n" +
			"utc_offset. A fractional utc_offset without a timezone cannot be compared.",
		Args: cobra.NoArgs,
		RunE: runCompare,
	}
}

type compareJSON struct {
	Date      string           `json:"date" yaml:"date"`
	Method    string           `json:"method" yaml:"method"`
	Asr       string           `json:"asr" yaml:"asr"`
	Reference string           `json:"reference_timezone" yaml:"reference_timezone"`
	Events    []compareJSONRow `json:"events" yaml:"events"`
}

type compareJSONRow struct {
	Event     string `json:"event" yaml:"event"`
	Local     string `json:"local" yaml:"local"`
	Reference string `json:"reference" yaml:"reference"`
	Diff      *int   `json:"diff_minutes,omitempty" yaml:"diff_minutes,omitempty"`
}

func runCompare(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	date, err := s.date()
	if err != nil {
		return err
	}

	_, adjusted, loc, err := s.adjusted(date)
	if err != nil {
		return err
	}
	// The service always answers in 24h time.
	local := prayer.FormatSchedule(adjusted, prayer.Style24h)

	tz, err := referenceTimezone(s.cfg.UTCOffset, s.cfg.Timezone)
	if err != nil {
		return err
	}
	q := api.Query{
		Date:      date,
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		Method:    s.opts.Method.Name,
		Asr:       s.opts.Asr,
		Timezone:  tz,
	}
	resp, err := fetchReference(cmd, s, q)
	if err != nil {
		return err
	}

	out := compareJSON{
		Date:      date.String(),
		Method:    q.Method,
		Asr:       q.Asr.String(),
		Reference: resp.Data.Meta.Timezone,
		Events:    make([]compareJSONRow, 0, prayer.NumEvents),
	}
	for _, ev := range prayer.Events {
		row := compareJSONRow{
			Event:     ev.Key(),
			Local:     local.Get(ev),
			Reference: resp.Data.Timings.Get(ev),
		}
		if d, ok := diffMinutes(row.Local, row.Reference); ok {
			row.Diff = &d
		}
		out.Events = append(out.Events, row)
	}

	w := cmd.OutOrStdout()
	if structured() {
		return writeStructured(w, out)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", display.Bold("Local vs Al Adhan"))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", s.label())
	fmt.Fprintf(w, "  %s, %s, Asr %s\n", formatLongDate(date), out.Method, out.Asr)
	if out.Reference != "" {
		fmt.Fprintf(w, "  %s\n", display.Dim("reference timezone: "+out.Reference))
	}
	fmt.Fprintln(w)

	tbl := display.NewTable("Event", "Local", "Al Adhan", "Δ min").SetAlign(3, display.AlignRight)
	for i, row := range out.Events {
		diff := "?"
		if row.Diff != nil {
			diff = strconv.Itoa(*row.Diff)
		}
		tbl.AddRow(prayer.Events[i].String(), row.Local, row.Reference, diff)
		switch {
		case row.Diff == nil:
			tbl.StyleRow(i, display.StyleRed)
		case *row.Diff > 2 || *row.Diff < -2:
			tbl.StyleRow(i, display.StyleYellow)
		}
	}
	if _, err := tbl.WriteTo(w); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return nil
}

// errFractionalOffset is returned by compare when the local clock cannot be
// named as a timezone for the service.
var errFractionalOffset = errors.New("compare needs a timezone for a fractional utc_offset")

// referenceTimezone names the zone the local schedule is computed in, so the
// service answers on the same clock. utc_offset wins over timezone, as it
// does locally. Etc/GMT names invert the sign: UTC+3 is Etc/GMT-3.
func referenceTimezone(offset *float64, timezone string) (string, error) {
	if offset == nil {
		return timezone, nil
	}
	h := *offset
	if h != math.Trunc(h) {
		return "", fmt.Errorf("%w: set timezone and unset utc_offset", errFractionalOffset)
	}
	switch {
	case h == 0:
		return "Etc/GMT", nil
	case h > 0:
		return fmt.Sprintf("Etc/GMT-%d", int(h)), nil
	default:
		return fmt.Sprintf("Etc/GMT+%d", int(-h)), nil
	}
}

// fetchReference returns the reference timings for q, from the cache when
// possible.
func fetchReference(cmd *cobra.Command, s *session, q api.Query) (*api.Response, error) {
	c := openCache(s.cfg.CacheDir)
	if c != nil {
		if resp := c.LoadReference(q); resp != nil {
			log.Debug().Str("date", q.Date.String()).Msg("using cached reference timings")
			return resp, nil
		}
	}

	resp, err := newAPIClient().FetchTimings(cmd.Context(), q)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reference timings: %w", err)
	}
	if c != nil {
		if err := c.SaveReference(q, resp); err != nil {
			log.Warn().Err(err).Msg("could not cache reference timings")
		}
	}
	return resp, nil
}

// diffMinutes returns reference minus local in minutes, taking the shorter
// way around midnight. ok is false when either side is not "HH:MM".
func diffMinutes(local, reference string) (int, bool) {
	a, ok := clockMinutes(local)
	if !ok {
		return 0, false
	}
	b, ok := clockMinutes(reference)
	if !ok {
		return 0, false
	}
	d := (b - a) % 1440
	switch {
	case d > 720:
		d -= 1440
	case d <= -720:
		d += 1440
	}
	return d, true
}

func clockMinutes(s string) (int, bool) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}
