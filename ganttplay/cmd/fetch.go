package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Pallavi2687/cpu-scheduler-frontend/render"
	"github.com/Pallavi2687/cpu-scheduler-frontend/schedclient"
)

const fetchTimeout = 90 * time.Second

var (
	fetchAlgorithm string
	fetchQuantum   float64
	fetchProcesses []string
	fetchChart     string
	fetchNoPlay    bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Schedule processes with the scheduling service and play the result.",
	Long: "`fetch --algorithm RR --quantum 2 --process 1,0,5 --process 2,1,3` " +
		"sends the processes to the scheduling service, prints the result " +
		"table, and animates the returned timeline.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		req, err := buildRequest()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), fetchTimeout)
		defer cancel()

		client := schedclient.NewClient(cfg.APIBaseURL)
		result, err := client.Schedule(ctx, req)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if err := render.ResultTable(out, result.Table, result.Averages); err != nil {
			return err
		}

		if fetchChart != "" {
			if err := saveMetricsChart(result.Table, fetchChart); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Chart written to %s\n", fetchChart)
		}

		if fetchNoPlay {
			return render.NewText(cfg.Width).Render(out, finalFrame(result.Gantt))
		}

		return playSchedule(cmd.Context(), sessionBuilder(), result.Gantt)
	},
}

func init() {
	fetchCmd.Flags().StringVarP(&fetchAlgorithm, "algorithm", "a", "FCFS",
		"scheduling algorithm: FCFS, SJF, PRIORITY, RR, SRTF, LJF, HRRN, LRTF")
	fetchCmd.Flags().Float64VarP(&fetchQuantum, "quantum", "q", 0,
		"time quantum, required by RR")
	fetchCmd.Flags().StringArrayVarP(&fetchProcesses, "process", "p", nil,
		"process as pid,arrival,burst[,priority], repeatable")
	fetchCmd.Flags().StringVar(&fetchChart, "chart", "",
		"also save a metrics chart to this image file")
	fetchCmd.Flags().BoolVar(&fetchNoPlay, "no-play", false,
		"print the finished timeline instead of animating it")
	rootCmd.AddCommand(fetchCmd)
}

func buildRequest() (schedclient.Request, error) {
	algorithm, err := schedclient.ParseAlgorithm(fetchAlgorithm)
	if err != nil {
		return schedclient.Request{}, err
	}

	req := schedclient.Request{
		Algorithm: algorithm,
		Quantum:   fetchQuantum,
	}

	for _, s := range fetchProcesses {
		p, err := schedclient.ParseProcess(s)
		if err != nil {
			return schedclient.Request{}, err
		}

		req.Processes = append(req.Processes, p)
	}

	return req, req.Validate()
}

func saveMetricsChart(rows []schedclient.Row, path string) error {
	p, err := render.MetricsChart(rows)
	if err != nil {
		return err
	}

	return render.SavePlot(p, render.DefaultImageWidth, render.DefaultImageHeight, path)
}
