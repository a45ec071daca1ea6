package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/Pallavi2687/cpu-scheduler-frontend/session"
	"github.com/Pallavi2687/cpu-scheduler-frontend/timeline"
)

var (
	playMonitor bool
	playOpen    bool
)

var playCmd = &cobra.Command{
	Use:   "play <schedule-file>",
	Short: "Animate a schedule file in the terminal.",
	Long: "`play <schedule-file>` animates a YAML or JSON schedule in the " +
		"terminal and prints the completion times at the end.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		schedule, err := timeline.LoadSchedule(args[0])
		if err != nil {
			return err
		}

		b := sessionBuilder()
		if playMonitor || playOpen {
			b = b.WithMonitor()
		}

		return playSchedule(cmd.Context(), b, schedule)
	},
}

func init() {
	playCmd.Flags().BoolVar(&playMonitor, "monitor", false,
		"also serve the playback in a browser")
	playCmd.Flags().BoolVar(&playOpen, "open", false,
		"open the monitor page in the default browser")
	rootCmd.AddCommand(playCmd)
}

// playSchedule animates schedule in the terminal until it completes or the
// process is interrupted.
func playSchedule(
	parent context.Context,
	b session.Builder,
	schedule timeline.Schedule,
) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt)
	defer stop()

	s := b.Build()
	defer terminate(s)

	newTerminalView(os.Stdout, cfg.Width, s.Player())

	if s.Monitor() != nil {
		url, err := s.Listen()
		if err != nil {
			return err
		}

		if playOpen {
			_ = browser.OpenURL(url)
		}
	}

	return s.Play(ctx, schedule)
}
