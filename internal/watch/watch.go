// Package watch keeps a schedule current for a long-running session: it
// recomputes at local midnight and emits the next-prayer status on a fixed
// interval, optionally publishing both to a Sink.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/smokyabdulrahman/prayer-calc/internal/prayer"
	"github.com/smokyabdulrahman/prayer-calc/internal/publish"
)

// DefaultInterval is the status tick period.
const DefaultInterval = time.Minute

// Day is one computed day.
type Day struct {
	Date     prayer.Date
	Schedule prayer.Schedule
	Prayers  []prayer.Prayer
}

// PlanFunc computes the day for date.
type PlanFunc func(date prayer.Date) (Day, error)

// Sink receives schedule and next-prayer updates. *publish.Publisher
// satisfies it.
type Sink interface {
	PublishSchedule(publish.ScheduleMessage) error
	PublishNext(publish.NextMessage) error
}

// Options configure a Runner.
type Options struct {
	Zone     *time.Location // required
	Interval time.Duration  // DefaultInterval when zero
	Format   string         // prayer.FormatOutput mode
	Style    prayer.TimeStyle
	Out      io.Writer // status lines; nil discards
	Sink     Sink      // optional

	// Label, Method and Asr are copied into published schedules.
	Label  string
	Method string
	Asr    string

	Now func() time.Time // time.Now when nil
}

// Runner owns the cron scheduler and the days around the current one.
// The previous day is kept because its last events can fall after midnight.
type Runner struct {
	plan PlanFunc
	opts Options

	mu        sync.Mutex
	date      prayer.Date // last date Recompute ran for
	yesterday *Day
	today     *Day
	tomorrow  *Day
	lastErr   error
}

// New returns a Runner. It does nothing until Run, Recompute or Tick.
func New(plan PlanFunc, o Options) (*Runner, error) {
	if plan == nil {
		return nil, errors.New("watch: nil plan function")
	}
	if o.Zone == nil {
		return nil, errors.New("watch: zone is required")
	}
	if o.Interval <= 0 {
		o.Interval = DefaultInterval
	}
	if o.Out == nil {
		o.Out = io.Discard
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Format == "" {
		o.Format = prayer.FormatNameAndRemaining
	}
	return &Runner{plan: plan, opts: o}, nil
}

func (r *Runner) now() time.Time {
	return r.opts.Now().In(r.opts.Zone)
}

// Run recomputes, emits one tick, then schedules both until ctx is done.
func (r *Runner) Run(ctx context.Context) error {
	r.Recompute()
	r.Tick()

	c := cron.New(cron.WithLocation(r.opts.Zone))
	if _, err := c.AddFunc("@midnight", r.Recompute); err != nil {
		return fmt.Errorf("scheduling midnight recompute: %w", err)
	}
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", r.opts.Interval), r.Tick); err != nil {
		return fmt.Errorf("scheduling status tick: %w", err)
	}
	c.Start()
	log.Info().Str("zone", r.opts.Zone.String()).Dur("interval", r.opts.Interval).Msg("watch started")

	<-ctx.Done()
	<-c.Stop().Done()
	log.Info().Msg("watch stopped")
	return nil
}

// Recompute computes the previous, current and next day for the current
// local date and publishes today's schedule. A day that cannot be computed is logged and
// published with its error; the runner keeps going.
func (r *Runner) Recompute() {
	date := prayer.DateOf(r.now())

	today, err := r.plan(date)
	msg := publish.ScheduleMessage{
		Date:     date.String(),
		Label:    r.opts.Label,
		Method:   r.opts.Method,
		Asr:      r.opts.Asr,
		Timezone: r.opts.Zone.String(),
	}

	r.mu.Lock()
	yesterday := date.AddDays(-1)
	if r.today != nil && r.today.Date == yesterday {
		r.yesterday = r.today
	} else {
		r.yesterday = nil
		if y, yerr := r.plan(yesterday); yerr == nil {
			r.yesterday = &y
		}
	}
	r.date = date
	r.lastErr = err
	if err != nil {
		r.today = nil
		msg.Error = err.Error()
		log.Error().Err(err).Str("date", date.String()).Msg("cannot compute schedule")
	} else {
		r.today = &today
		msg.Times = &today.Schedule
		log.Debug().Str("date", date.String()).Msg("schedule recomputed")
	}
	if tomorrow, terr := r.plan(date.AddDays(1)); terr == nil {
		r.tomorrow = &tomorrow
	} else {
		r.tomorrow = nil
		log.Warn().Err(terr).Str("date", date.AddDays(1).String()).Msg("cannot compute next day")
	}
	r.mu.Unlock()

	if r.opts.Sink != nil {
		if err := r.opts.Sink.PublishSchedule(msg); err != nil {
			log.Warn().Err(err).Msg("schedule publish failed")
		}
	}
}

// Next returns the upcoming prayer. Yesterday's events past midnight come
// first, then today's, then tomorrow's. It returns nil when no day has one.
func (r *Runner) Next() *prayer.Prayer {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, day := range []*Day{r.yesterday, r.today, r.tomorrow} {
		if day == nil {
			continue
		}
		if p := prayer.NextPrayer(day.Prayers, now); p != nil {
			cp := *p
			return &cp
		}
	}
	return nil
}

// Today returns the current day, or nil with the error that prevented it.
func (r *Runner) Today() (*Day, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.today, r.lastErr
}

// Tick writes one status line and publishes the next prayer. It
// recomputes first when the local date moved on without a midnight run,
// e.g. after a suspend.
func (r *Runner) Tick() {
	now := r.now()

	r.mu.Lock()
	stale := r.date != prayer.DateOf(now)
	r.mu.Unlock()
	if stale {
		r.Recompute()
	}

	next := r.Next()
	if next == nil {
		fmt.Fprintln(r.opts.Out, "--:--")
		return
	}

	status := prayer.FormatOutput(*next, now, r.opts.Format, r.opts.Style)
	fmt.Fprintln(r.opts.Out, status)

	if r.opts.Sink != nil {
		err := r.opts.Sink.PublishNext(publish.NextMessage{
			Prayer:    next.Name,
			Time:      next.Time,
			Remaining: prayer.FormatRemaining(prayer.TimeRemaining(*next, now)),
			Status:    status,
		})
		if err != nil {
			log.Warn().Err(err).Msg("next prayer publish failed")
		}
	}
}
