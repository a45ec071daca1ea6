package render

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/Pallavi2687/cpu-scheduler-frontend/layout"
)

// GanttPlot draws the bars of a frame on one horizontal track. Bars are cut
// at their visible width and outlined in the highlight color while active.
type GanttPlot struct {
	Frame       layout.Frame
	Location    float64
	Height      vg.Length
	BoxStyle    draw.LineStyle
	ActiveStyle draw.LineStyle
	TextStyle   text.Style
}

var _ plot.Plotter = &GanttPlot{}
var _ plot.DataRanger = &GanttPlot{}

// NewGanttPlot creates a GanttPlot of f.
func NewGanttPlot(f layout.Frame, height vg.Length) *GanttPlot {
	active := plotter.DefaultLineStyle
	active.Color = color.RGBA{R: 0xff, G: 0xaa, A: 0xff}
	active.Width = vg.Points(2)

	return &GanttPlot{
		Frame:       f,
		Height:      height,
		BoxStyle:    plotter.DefaultLineStyle,
		ActiveStyle: active,
		TextStyle: text.Style{
			Color:   color.White,
			Font:    font.From(plotter.DefaultFont, plotter.DefaultFontSize),
			XAlign:  draw.XCenter,
			YAlign:  draw.YCenter,
			Handler: plot.DefaultTextHandler,
		},
	}
}

// Plot implements plot.Plotter.
func (g *GanttPlot) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	y := trY(g.Location)
	if !c.ContainsY(y) {
		return
	}

	for _, b := range g.Frame.Bars {
		if b.VisibleWidth <= 0 {
			continue
		}

		start := b.Start
		end := b.Start + b.VisibleWidth*g.Frame.Makespan
		xStart, xEnd := trX(start), trX(end)
		pts := []vg.Point{
			{X: xStart, Y: y - g.Height/2},
			{X: xEnd, Y: y - g.Height/2},
			{X: xEnd, Y: y + g.Height/2},
			{X: xStart, Y: y + g.Height/2},
			{X: xStart, Y: y - g.Height/2},
		}

		c.FillPolygon(mustHexColor(b.Color), c.ClipPolygonX(pts[0:4]))

		style := g.BoxStyle
		if b.Active {
			style = g.ActiveStyle
		}
		c.StrokeLines(style, c.ClipLinesX(pts)...)

		if g.TextStyle.Width(b.Label) < xEnd-xStart {
			c.FillText(g.TextStyle, vg.Point{X: (xStart + xEnd) / 2, Y: y}, b.Label)
		}
	}
}

// DataRange implements plot.DataRanger. The x range always spans from 0 to
// the makespan so that frames of one schedule share their axes.
func (g *GanttPlot) DataRange() (xmin, xmax, ymin, ymax float64) {
	return 0, g.Frame.Makespan, g.Location, g.Location
}

// Chart creates a Gantt chart of a frame.
func Chart(f layout.Frame, title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Time"

	ticks := make([]plot.Tick, 0, 2*len(f.Bars))
	for _, b := range f.Bars {
		ticks = append(ticks, plot.Tick{Value: b.Start, Label: layout.FormatTime(b.Start)})
		if b.ShowEndLabel {
			ticks = append(ticks, plot.Tick{Value: b.End, Label: layout.FormatTime(b.End)})
		}
	}
	if len(ticks) > 0 {
		p.X.Tick.Marker = plot.ConstantTicks(ticks)
	}

	p.Add(NewGanttPlot(f, vg.Points(30)))
	p.NominalY("CPU")

	return p
}
