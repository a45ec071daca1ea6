package render

import (
	"bytes"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Pallavi2687/cpu-scheduler-frontend/layout"
	"github.com/Pallavi2687/cpu-scheduler-frontend/playback"
	"github.com/Pallavi2687/cpu-scheduler-frontend/timeline"
)

func frameAt(s timeline.Schedule, index int, progress float64) layout.Frame {
	phase := playback.PhaseAnimating
	if index >= len(s) {
		phase = playback.PhaseComplete
	}

	return layout.Project(s, timeline.Makespan(s), playback.PlaybackState{
		ActiveIndex: index,
		Progress:    progress,
		Phase:       phase,
	})
}

var _ = Describe("Text", func() {
	schedule := timeline.Schedule{
		{PID: 1, Start: 0, End: 5},
		{PID: 2, Start: 5, End: 10},
	}

	render := func(f layout.Frame) []string {
		var buf bytes.Buffer
		Expect(NewText(20).Render(&buf, f)).To(Succeed())
		return strings.Split(buf.String(), "\n")
	}

	It("should draw an empty track before the first tick", func() {
		lines := render(frameAt(schedule, 0, 0))

		Expect(lines[0]).To(Equal("|" + strings.Repeat(" ", 20) + "|"))
		Expect(lines[1]).To(Equal(" 0         5"))
	})

	It("should fill played and active cells", func() {
		lines := render(frameAt(schedule, 1, 0.4))
		track := []rune(lines[0])

		Expect(track).To(HaveLen(22))
		Expect(string(track[1:11])).To(Equal("████P1████"))
		Expect(string(track[11:15])).To(Equal("▓P2▓"))
		Expect(string(track[15:21])).To(Equal("      "))
		Expect(lines[1]).To(Equal(" 0         5"))
	})

	It("should print the summary when complete", func() {
		out := strings.Join(render(frameAt(schedule, 2, 1)), "\n")

		Expect(out).To(ContainSubstring("Completion Times"))
		Expect(out).To(ContainSubstring("Process 1: Completion at t=5"))
		Expect(out).To(ContainSubstring("Process 2: Completion at t=10"))
	})

	It("should not print a summary for an empty schedule", func() {
		out := strings.Join(render(frameAt(timeline.Schedule{}, 0, 1)), "\n")

		Expect(out).NotTo(ContainSubstring("Completion Times"))
	})

	It("should default the width", func() {
		Expect(NewText(0).Width).To(Equal(DefaultWidth))
	})
})
