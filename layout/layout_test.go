package layout

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Pallavi2687/cpu-scheduler-frontend/playback"
	"github.com/Pallavi2687/cpu-scheduler-frontend/timeline"
)

var _ = Describe("Project", func() {
	schedule := timeline.Schedule{
		{PID: 1, Start: 0, End: 4},
		{PID: 2, Start: 4, End: 4},
		{PID: 3, Start: 6, End: 8},
	}
	makespan := timeline.Makespan(schedule)

	at := func(index int, progress float64) playback.PlaybackState {
		phase := playback.PhaseAnimating
		if index >= len(schedule) {
			phase = playback.PhaseComplete
		}

		return playback.PlaybackState{
			ActiveIndex: index,
			Progress:    progress,
			Phase:       phase,
		}
	}

	It("should place bars in makespan fractions", func() {
		f := Project(schedule, makespan, at(0, 0))

		Expect(f.Bars).To(HaveLen(3))
		Expect(f.Bars[0].Left).To(Equal(0.0))
		Expect(f.Bars[0].FullWidth).To(Equal(0.5))
		Expect(f.Bars[2].Left).To(Equal(0.75))
		Expect(f.Bars[2].FullWidth).To(Equal(0.25))
		Expect(f.Bars[1].FullWidth).To(Equal(0.0))
	})

	It("should encode idle gaps as margins", func() {
		f := Project(schedule, makespan, at(0, 0))

		Expect(f.Bars[0].MarginBefore).To(Equal(0.0))
		Expect(f.Bars[1].MarginBefore).To(Equal(0.0))
		Expect(f.Bars[2].MarginBefore).To(Equal(0.25))
	})

	DescribeTable("visible width",
		func(index int, progress float64, widths []float64) {
			f := Project(schedule, makespan, at(index, progress))

			for i, w := range widths {
				Expect(f.Bars[i].VisibleWidth).To(BeNumerically("~", w, 1e-12))
			}
		},
		Entry("before the first tick", 0, 0.0, []float64{0, 0, 0}),
		Entry("half way through the first block", 0, 0.5, []float64{0.25, 0, 0}),
		Entry("during the last block", 2, 0.5, []float64{0.5, 0, 0.125}),
		Entry("complete", 3, 1.0, []float64{0.5, 0, 0.25}),
	)

	DescribeTable("labels and activity",
		func(index int) {
			f := Project(schedule, makespan, at(index, 0.5))

			for i, b := range f.Bars {
				Expect(b.ShowEndLabel).To(Equal(i < index))
				Expect(b.Active).To(Equal(i == index))
			}
		},
		Entry("at block 0", 0),
		Entry("at block 2", 2),
		Entry("complete", 3),
	)

	It("should keep left plus width at the end fraction", func() {
		for index := 0; index <= len(schedule); index++ {
			f := Project(schedule, makespan, at(index, 0.3))
			for i, b := range f.Bars {
				Expect(b.Left + b.FullWidth).
					To(BeNumerically("~", schedule[i].End/makespan, 1e-12))
				Expect(b.EndLabelPos).To(Equal(b.Left + b.FullWidth))
			}
		}
	})

	It("should label and color bars by pid", func() {
		f := Project(schedule, makespan, at(0, 0))

		Expect(f.Bars[0].Label).To(Equal("P1"))
		Expect(f.Bars[0].Color).To(Equal("#3498db"))
		Expect(f.Bars[2].Color).To(Equal("#e67e22"))
	})

	It("should only summarize once complete", func() {
		Expect(Project(schedule, makespan, at(2, 0.9)).Summary).To(BeEmpty())

		f := Project(schedule, makespan, at(3, 1))

		Expect(f.IsComplete).To(BeTrue())
		Expect(f.Summary).To(Equal([]CompletionLine{
			{PID: 1, End: 4, Text: "Process 1: Completion at t=4"},
			{PID: 2, End: 4, Text: "Process 2: Completion at t=4"},
			{PID: 3, End: 8, Text: "Process 3: Completion at t=8"},
		}))
	})

	It("should handle the empty schedule", func() {
		f := Project(timeline.Schedule{}, 1, playback.PlaybackState{
			Phase:    playback.PhaseComplete,
			Progress: 1,
		})

		Expect(f.Bars).To(BeEmpty())
		Expect(f.IsComplete).To(BeTrue())
		Expect(f.Summary).To(BeEmpty())
		Expect(f.Makespan).To(Equal(1.0))
	})

	It("should lay out a schedule of instants at time 0", func() {
		s := timeline.Schedule{{PID: 1, Start: 0, End: 0}}
		f := Project(s, timeline.Makespan(s), playback.PlaybackState{
			ActiveIndex: 1,
			Progress:    1,
			Phase:       playback.PhaseComplete,
		})

		Expect(f.Makespan).To(Equal(1.0))
		Expect(f.Bars[0].Left).To(Equal(0.0))
		Expect(f.Bars[0].FullWidth).To(Equal(0.0))
		Expect(f.Bars[0].EndLabelPos).To(Equal(0.0))
		Expect(f.Summary[0].Text).To(Equal("Process 1: Completion at t=0"))

		_, err := json.Marshal(f)
		Expect(err).NotTo(HaveOccurred())
	})

	It("should not divide by a zero makespan", func() {
		s := timeline.Schedule{{PID: 2, Start: 0, End: 0}}
		f := Project(s, 0, playback.PlaybackState{Phase: playback.PhaseAnimating})

		Expect(f.Makespan).To(Equal(1.0))
		Expect(f.Bars[0].MarginBefore).To(Equal(0.0))
	})

	It("should report an idle player without blocks as complete with no summary", func() {
		f := Project(nil, 1, playback.PlaybackState{Phase: playback.PhaseIdle})

		Expect(f.IsComplete).To(BeTrue())
		Expect(f.Phase).To(Equal(playback.PhaseIdle))
		Expect(f.Summary).To(BeEmpty())
	})

	It("should not modify the schedule", func() {
		s := schedule.Clone()
		Project(s, makespan, at(1, 0))

		Expect(s).To(Equal(schedule))
	})

	It("should show a single block completion line", func() {
		s := timeline.Schedule{{PID: 1, Start: 0, End: 5}}
		f := Project(s, 5, playback.PlaybackState{
			ActiveIndex: 1,
			Progress:    1,
			Phase:       playback.PhaseComplete,
		})

		Expect(f.Summary).To(HaveLen(1))
		Expect(f.Summary[0].Text).To(Equal("Process 1: Completion at t=5"))
	})
})

var _ = Describe("Color", func() {
	It("should cycle through the palette", func() {
		for pid := 0; pid < 24; pid++ {
			Expect(Color(pid)).To(Equal(Palette[pid%8]))
		}
		Expect(Color(9)).To(Equal(Color(1)))
	})

	It("should format fractional times", func() {
		Expect(CompletionText(timeline.Interval{PID: 2, Start: 1, End: 2.5})).
			To(Equal("Process 2: Completion at t=2.5"))
	})
})
