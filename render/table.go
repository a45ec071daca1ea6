package render

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/Pallavi2687/cpu-scheduler-frontend/schedclient"
)

// NoResultText is printed instead of an empty table.
const NoResultText = "No Result table to display."

// ResultTable writes the per-process table and the averages.
func ResultTable(
	w io.Writer,
	rows []schedclient.Row,
	averages schedclient.Averages,
) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, NoResultText)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PID\tArrival\tBurst\tCompletion\tTurnaround\tWaiting")

	for _, r := range rows {
		fmt.Fprintf(tw, "P%d\t%s\t%s\t%s\t%s\t%s\n",
			r.PID,
			num(r.Arrival),
			num(r.Burst),
			num(r.Completion),
			num(r.Turnaround),
			num(r.Waiting),
		)
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w,
		"\nAverage Completion Time: %s\n"+
			"Average Turnaround Time: %s\n"+
			"Average Waiting Time: %s\n",
		averages.Completion, averages.Turnaround, averages.Waiting)

	return err
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
