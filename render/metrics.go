package render

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/Pallavi2687/cpu-scheduler-frontend/schedclient"
)

// MetricsChart creates a grouped bar chart of the completion, turnaround,
// and waiting time of every process.
func MetricsChart(rows []schedclient.Row) (*plot.Plot, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("render: no rows to chart")
	}

	completion := make(plotter.Values, len(rows))
	turnaround := make(plotter.Values, len(rows))
	waiting := make(plotter.Values, len(rows))
	names := make([]string, len(rows))

	for i, r := range rows {
		completion[i] = r.Completion
		turnaround[i] = r.Turnaround
		waiting[i] = r.Waiting
		names[i] = fmt.Sprintf("P%d", r.PID)
	}

	p := plot.New()
	p.Title.Text = "Time Metrics"
	p.Y.Label.Text = "Time"

	width := vg.Points(12)
	series := []struct {
		name   string
		values plotter.Values
		color  string
		offset vg.Length
	}{
		{"CT", completion, "#3498db", -width},
		{"TAT", turnaround, "#e67e22", 0},
		{"WT", waiting, "#2ecc71", width},
	}

	for _, s := range series {
		bars, err := plotter.NewBarChart(s.values, width)
		if err != nil {
			return nil, err
		}

		bars.LineStyle.Width = vg.Length(0)
		bars.Color = mustHexColor(s.color)
		bars.Offset = s.offset

		p.Add(bars)
		p.Legend.Add(s.name, bars)
	}

	p.Legend.Top = true
	p.NominalX(names...)

	return p, nil
}
