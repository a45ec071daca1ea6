package cmd

import (
	"os"
	"os/signal"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/Pallavi2687/cpu-scheduler-frontend/timeline"
)

var serveOpen bool

var serveCmd = &cobra.Command{
	Use:   "serve [schedule-file]",
	Short: "Serve the playback monitor.",
	Long: "`serve [schedule-file]` starts the monitoring server. The schedule, " +
		"if given, starts playing right away. More schedules can be posted " +
		"to /api/schedule.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var schedule timeline.Schedule
		if len(args) == 1 {
			var err error
			schedule, err = timeline.LoadSchedule(args[0])
			if err != nil {
				return err
			}
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		s := sessionBuilder().WithMonitor().Build()
		defer terminate(s)

		url, err := s.Listen()
		if err != nil {
			return err
		}

		if serveOpen {
			_ = browser.OpenURL(url)
		}

		if schedule != nil {
			if err := s.Player().Start(schedule); err != nil {
				return err
			}
		}

		return s.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveOpen, "open", false,
		"open the monitor page in the default browser")
	rootCmd.AddCommand(serveCmd)
}
