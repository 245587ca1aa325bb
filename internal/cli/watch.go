package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayer-calc/internal/prayer"
	"github.com/smokyabdulrahman/prayer-calc/internal/publish"
	"github.com/smokyabdulrahman/prayer-calc/internal/watch"
)

var (
	flagWatchInterval time.Duration
	flagWatchFormat   string
	flagMQTTBroker    string
	flagMQTTTopic     string
)

// mqttSink is a connected publisher.
type mqttSink interface {
	watch.Sink
	Close() error
}

// connectMQTT is replaced in tests.
var connectMQTT = func(o publish.Options) (mqttSink, error) {
	p, err := publish.Connect(o)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep printing the next prayer, recomputing at midnight",
		Long: "Print the next prayer on every interval and recompute the schedule at local\n" +
			"midnight. With an MQTT broker configured, the schedule, the next prayer and\n" +
			"an online/offline status are published as retained messages under the topic:\n\n" +
			"  <topic>/schedule  <topic>/next  <topic>/status",
		Args: cobra.NoArgs,
		RunE: runWatch,
	}

	cmd.Flags().DurationVar(&flagWatchInterval, "interval", watch.DefaultInterval, "Status update interval")
	cmd.Flags().StringVar(&flagWatchFormat, "format", prayer.FormatNameAndRemaining, FormatHelp)
	cmd.Flags().StringVar(&flagMQTTBroker, "mqtt-broker", "", "MQTT broker URL, e.g. tcp://localhost:1883 (overrides config)")
	cmd.Flags().StringVar(&flagMQTTTopic, "mqtt-topic", "", "MQTT base topic (default: "+publish.DefaultTopic+")")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	if flagWatchInterval < time.Second {
		return fmt.Errorf("invalid --interval %s: must be at least 1s", flagWatchInterval)
	}

	s, err := newSession()
	if err != nil {
		return err
	}

	opts := watch.Options{
		Zone:     s.zone,
		Interval: flagWatchInterval,
		Format:   flagWatchFormat,
		Style:    s.style,
		Out:      cmd.OutOrStdout(),
		Label:    s.label(),
		Method:   s.opts.Method.Name,
		Asr:      s.opts.Asr.String(),
		Now:      clock,
	}

	if s.cfg.MQTTBroker != "" {
		sink, err := connectMQTT(publish.Options{
			Broker: s.cfg.MQTTBroker,
			Topic:  s.cfg.MQTTTopic,
		})
		if err != nil {
			return err
		}
		defer func() {
			if err := sink.Close(); err != nil {
				log.Warn().Err(err).Msg("mqtt close failed")
			}
		}()
		opts.Sink = sink
		log.Info().Str("topic", publish.Topics{Base: s.cfg.MQTTTopic}.Schedule()).Msg("publishing to mqtt")
	}

	runner, err := watch.New(s.plan, opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return runner.Run(ctx)
}
