package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Pallavi2687/cpu-scheduler-frontend/layout"
	"github.com/Pallavi2687/cpu-scheduler-frontend/playback"
	"github.com/Pallavi2687/cpu-scheduler-frontend/render"
	"github.com/Pallavi2687/cpu-scheduler-frontend/timeline"
)

var (
	renderOutput string
	renderTitle  string
)

var renderCmd = &cobra.Command{
	Use:   "render <schedule-file>",
	Short: "Draw the finished timeline of a schedule.",
	Long: "`render <schedule-file>` draws the timeline as it looks once the " +
		"playback is complete. With -o the chart is saved as an image " +
		"(png, svg, pdf, ...); otherwise the track is printed.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		schedule, err := timeline.LoadSchedule(args[0])
		if err != nil {
			return err
		}

		frame := finalFrame(schedule)

		if renderOutput == "" {
			return render.NewText(cfg.Width).Render(cmd.OutOrStdout(), frame)
		}

		title := renderTitle
		if title == "" {
			base := filepath.Base(args[0])
			title = strings.TrimSuffix(base, filepath.Ext(base))
		}

		err = render.SavePlot(render.Chart(frame, title),
			render.DefaultImageWidth, render.DefaultImageHeight, renderOutput)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "Chart written to %s\n", renderOutput)

		return nil
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "",
		"image file to write")
	renderCmd.Flags().StringVar(&renderTitle, "title", "",
		"chart title, the file name by default")
	rootCmd.AddCommand(renderCmd)
}

// finalFrame lays a schedule out as it is once played to the end.
func finalFrame(s timeline.Schedule) layout.Frame {
	state := playback.PlaybackState{
		ActiveIndex: len(s),
		Progress:    1,
		Phase:       playback.PhaseComplete,
	}

	return layout.Project(s, timeline.Makespan(s), state)
}
