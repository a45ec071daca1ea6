// Package layout turns a playback state into the fractions a presentation
// surface needs to draw the timeline.
//
// All horizontal positions are fractions of the makespan, in [0, 1] for a
// well-formed schedule.
package layout

import (
	"fmt"
	"math"
	"strconv"

	"github.com/Pallavi2687/cpu-scheduler-frontend/playback"
	"github.com/Pallavi2687/cpu-scheduler-frontend/timeline"
)

// A Bar is the layout of one block.
type Bar struct {
	Index int     `json:"index"`
	PID   int     `json:"pid"`
	Label string  `json:"label"`
	Color string  `json:"color"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`

	Left         float64 `json:"left"`
	FullWidth    float64 `json:"full_width"`
	VisibleWidth float64 `json:"visible_width"`
	MarginBefore float64 `json:"margin_before"`

	Active       bool    `json:"active"`
	ShowEndLabel bool    `json:"show_end_label"`
	EndLabelPos  float64 `json:"end_label_pos"`
}

// CompletionLine reports when a block finished.
type CompletionLine struct {
	PID  int     `json:"pid"`
	End  float64 `json:"end"`
	Text string  `json:"text"`
}

// A Frame is everything drawn for one playback state.
//
// IsComplete only says that the active index has passed the last block. A
// player that never accepted a schedule, or rejected one, has no blocks and
// is Idle, so its frame is complete with an empty Summary. Surfaces that
// announce the end of a playback check Phase as well.
type Frame struct {
	Bars        []Bar            `json:"bars"`
	Makespan    float64          `json:"makespan"`
	ActiveIndex int              `json:"active_index"`
	Progress    float64          `json:"progress"`
	Phase       playback.Phase   `json:"phase"`
	Generation  uint64           `json:"generation"`
	IsComplete  bool             `json:"is_complete"`
	Summary     []CompletionLine `json:"summary"`
}

// Project computes the frame of a schedule at a playback state. None of the
// inputs are modified. A makespan that cannot divide, such as 0, is taken
// as 1.
func Project(
	s timeline.Schedule,
	makespan float64,
	state playback.PlaybackState,
) Frame {
	if !(makespan > 0) || math.IsInf(makespan, 1) {
		makespan = 1
	}

	f := Frame{
		Bars:        make([]Bar, len(s)),
		Makespan:    makespan,
		ActiveIndex: state.ActiveIndex,
		Progress:    state.Progress,
		Phase:       state.Phase,
		Generation:  state.Generation,
		IsComplete:  state.ActiveIndex >= len(s),
		Summary:     []CompletionLine{},
	}

	for i, iv := range s {
		f.Bars[i] = projectBar(s, makespan, state, i)

		if f.IsComplete {
			f.Summary = append(f.Summary, CompletionLine{
				PID:  iv.PID,
				End:  iv.End,
				Text: CompletionText(iv),
			})
		}
	}

	return f
}

func projectBar(
	s timeline.Schedule,
	makespan float64,
	state playback.PlaybackState,
	i int,
) Bar {
	iv := s[i]

	b := Bar{
		Index:     i,
		PID:       iv.PID,
		Label:     "P" + strconv.Itoa(iv.PID),
		Color:     Color(iv.PID),
		Start:     iv.Start,
		End:       iv.End,
		Left:      iv.Start / makespan,
		FullWidth: iv.Duration() / makespan,
	}

	switch {
	case i < state.ActiveIndex:
		b.VisibleWidth = b.FullWidth
	case i == state.ActiveIndex:
		b.VisibleWidth = b.FullWidth * state.Progress
	}

	b.MarginBefore = b.Left
	if i > 0 {
		b.MarginBefore -= s[i-1].End / makespan
	}

	b.Active = i == state.ActiveIndex
	b.ShowEndLabel = i < state.ActiveIndex
	b.EndLabelPos = b.Left + b.FullWidth

	return b
}

// CompletionText is the summary line of a finished block.
func CompletionText(iv timeline.Interval) string {
	return fmt.Sprintf("Process %d: Completion at t=%s",
		iv.PID, FormatTime(iv.End))
}

// FormatTime prints a time with as few digits as needed.
func FormatTime(t float64) string {
	return strconv.FormatFloat(t, 'f', -1, 64)
}
