package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayer-calc/internal/prayer"
)

var (
	flagFormat  string
	flagPrayers string
)

// FormatHelp documents the status line formats shared by `next`, `watch`
// and the tmux binary.
const FormatHelp = "Display format: time-remaining, next-prayer-time, name-and-time, name-and-remaining, " +
	"short-name-and-time, short-name-and-remaining, countdown, full, or a custom Go template " +
	"(e.g. '{{.Name}} in {{.Remaining}}'). Template fields: .Name, .Key, .ShortName, .Time, " +
	".Remaining, .Countdown, .Hours, .Minutes"

func newNextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the next prayer with countdown",
		Long:  "Display the next upcoming prayer time on one line, suitable for status bars.",
		Args:  cobra.NoArgs,
		RunE:  runNext,
	}

	cmd.Flags().StringVar(&flagFormat, "format", prayer.FormatFull, FormatHelp)
	cmd.Flags().StringVar(&flagPrayers, "prayers", "", "Comma-separated list of prayers to track (overrides config)")

	return cmd
}

func runNext(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	out, err := nextStatus(s, flagFormat)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

// NextStatus formats the next prayer with the merged settings of the
// current process. It is the whole of the tmux binary's work.
func NextStatus(format string) (string, error) {
	s, err := newSession()
	if err != nil {
		return "", err
	}
	return nextStatus(s, format)
}

func nextStatus(s *session, format string) (string, error) {
	if !prayer.IsFormatMode(format) {
		log.Warn().Str("format", format).Msg("unknown format, using " + prayer.FormatNameAndTime)
	}
	next, today, err := s.next()
	if err != nil {
		// Tomorrow could not be computed: show the last prayer as done
		// rather than breaking the status bar.
		if len(today) > 0 {
			log.Warn().Err(err).Msg("cannot compute next day")
			return fmt.Sprintf("%s --:--", today[len(today)-1].Name), nil
		}
		return "", err
	}
	return prayer.FormatOutput(*next, s.now, format, s.style), nil
}
