// Package render draws playback frames and scheduling results for people:
// as text for terminals and as images through gonum/plot.
package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/Pallavi2687/cpu-scheduler-frontend/layout"
)

// DefaultWidth is the number of columns of the text track.
const DefaultWidth = 60

const (
	doneCell   = '█'
	activeCell = '▓'
	emptyCell  = ' '
)

// Text draws frames as a fixed-width track.
type Text struct {
	Width int
}

// NewText creates a Text renderer with the given track width. A non-positive
// width selects DefaultWidth.
func NewText(width int) *Text {
	if width <= 0 {
		width = DefaultWidth
	}

	return &Text{Width: width}
}

// Render writes f to w. The output has a track line, a time-label line, and,
// once the playback is complete, the completion summary.
func (t *Text) Render(w io.Writer, f layout.Frame) error {
	var sb strings.Builder

	sb.WriteString("|")
	sb.WriteString(string(t.track(f)))
	sb.WriteString("|\n ")
	sb.WriteString(strings.TrimRight(string(t.timeLabels(f)), " "))
	sb.WriteString("\n")

	if f.IsComplete && len(f.Summary) > 0 {
		sb.WriteString("\nCompletion Times\n")
		for _, line := range f.Summary {
			fmt.Fprintf(&sb, "  %s\n", line.Text)
		}
	}

	_, err := io.WriteString(w, sb.String())

	return err
}

func (t *Text) column(fraction float64) int {
	c := int(math.Round(fraction * float64(t.Width)))

	switch {
	case c < 0:
		return 0
	case c > t.Width:
		return t.Width
	}

	return c
}

func (t *Text) track(f layout.Frame) []rune {
	cells := []rune(strings.Repeat(string(emptyCell), t.Width))

	for _, b := range f.Bars {
		if b.VisibleWidth <= 0 {
			continue
		}

		from := t.column(b.Left)
		to := t.column(b.Left + b.VisibleWidth)
		if to == from && to < t.Width {
			to++
		}

		cell := doneCell
		if b.Active {
			cell = activeCell
		}

		for c := from; c < to; c++ {
			cells[c] = cell
		}

		label := []rune(b.Label)
		if len(label) < to-from {
			at := from + (to-from-len(label))/2
			copy(cells[at:], label)
		}
	}

	return cells
}

// timeLabels places start times and, for finished blocks, end times under
// the track. A label that would overlap an earlier one is dropped.
func (t *Text) timeLabels(f layout.Frame) []rune {
	line := []rune(strings.Repeat(" ", t.Width+8))
	next := 0

	put := func(fraction, value float64) {
		label := []rune(layout.FormatTime(value))
		at := t.column(fraction)
		if at < next || at+len(label) > len(line) {
			return
		}

		copy(line[at:], label)
		next = at + len(label) + 1
	}

	for _, b := range f.Bars {
		put(b.Left, b.Start)
		if b.ShowEndLabel {
			put(b.EndLabelPos, b.End)
		}
	}

	return line
}
