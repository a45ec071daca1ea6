package cmd

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Pallavi2687/cpu-scheduler-frontend/tracing"
)

var (
	traceGeneration uint64
	traceLimit      int
	traceEvents     bool
)

var traceCmd = &cobra.Command{
	Use:   "trace <trace-db>",
	Short: "List what a recorded playback did.",
	Long: "`trace <trace-db>` reads a database written with --trace-db and " +
		"lists the blocks that were played to the end, with the time each " +
		"one took. With --events every playback notification is listed.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reader, err := tracing.OpenTraceReader(args[0])
		if err != nil {
			return err
		}
		defer reader.Close()

		q := tracing.TraceQuery{
			Generation: traceGeneration,
			Limit:      traceLimit,
		}

		if traceEvents {
			events, total, err := reader.ListEvents(cmd.Context(), q)
			if err != nil {
				return err
			}

			return writeEvents(cmd.OutOrStdout(), events, total)
		}

		blocks, total, err := reader.ListBlocks(cmd.Context(), q)
		if err != nil {
			return err
		}

		return writeBlocks(cmd.OutOrStdout(), blocks, total)
	},
}

func init() {
	traceCmd.Flags().Uint64Var(&traceGeneration, "generation", 0,
		"only list one playback, 0 lists all")
	traceCmd.Flags().IntVar(&traceLimit, "limit", 0,
		"maximum number of rows, 0 lists all")
	traceCmd.Flags().BoolVar(&traceEvents, "events", false,
		"list notifications instead of blocks")
	rootCmd.AddCommand(traceCmd)
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func writeBlocks(w io.Writer, blocks []tracing.BlockEntry, total int) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Run\tIndex\tPID\tStart\tEnd\tPlayed (s)")

	for _, b := range blocks {
		fmt.Fprintf(tw, "%d\t%d\tP%d\t%s\t%s\t%.3f\n",
			b.Generation, b.Index, b.PID,
			formatNum(b.Start), formatNum(b.End), b.EndTime-b.StartTime)
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%d of %d blocks\n", len(blocks), total)

	return err
}

func writeEvents(w io.Writer, events []tracing.TraceEntry, total int) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Run\tTime (s)\tEvent\tIndex\tProgress\tPID")

	for _, e := range events {
		pid := "-"
		if e.PID >= 0 {
			pid = "P" + strconv.Itoa(e.PID)
		}

		fmt.Fprintf(tw, "%d\t%.3f\t%s\t%d\t%s\t%s\n",
			e.Generation, e.Time, e.Event, e.ActiveIndex,
			formatNum(e.Progress), pid)
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%d of %d notifications\n", len(events), total)

	return err
}
