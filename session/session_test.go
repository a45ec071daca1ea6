package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/Pallavi2687/cpu-scheduler-frontend/config"
	"github.com/Pallavi2687/cpu-scheduler-frontend/datarecording"
	"github.com/Pallavi2687/cpu-scheduler-frontend/playback"
	"github.com/Pallavi2687/cpu-scheduler-frontend/timeline"
	"github.com/Pallavi2687/cpu-scheduler-frontend/timing"
	"github.com/Pallavi2687/cpu-scheduler-frontend/tracing"
)

var threeBlocks = timeline.Schedule{
	{PID: 1, Start: 0, End: 5},
	{PID: 2, Start: 5, End: 5},
	{PID: 3, Start: 5, End: 8},
}

var _ = Describe("Builder", func() {
	It("should take the settings of a config", func() {
		cfg := config.Default()
		cfg.TickInterval = 50 * time.Millisecond
		cfg.Speed = 3

		b := MakeBuilder().WithConfig(cfg)

		Expect(b.tickInterval).To(Equal(50 * time.Millisecond))
		Expect(b.speed).To(Equal(3.0))
		Expect(b.monitorOn).To(BeFalse())
	})

	It("should panic on a non-positive speed", func() {
		Expect(func() {
			MakeBuilder().WithSpeed(0).Build()
		}).To(Panic())
	})

	It("should not copy hooks between builders", func() {
		base := MakeBuilder()
		a := base.WithHook(timing.HookFunc(func(timing.HookCtx) {}))

		Expect(base.hooks).To(BeEmpty())
		Expect(a.hooks).To(HaveLen(1))
	})

	It("should leave optional parts out", func() {
		s := MakeBuilder().WithVirtualTime().Build()

		Expect(s.ID()).NotTo(BeEmpty())
		Expect(s.Recorder()).To(BeNil())
		Expect(s.Monitor()).To(BeNil())
		Expect(s.Player().TickInterval()).To(
			BeNumerically("~", playback.DefaultTickInterval.Seconds()))
	})
})

var _ = Describe("Session", func() {
	It("should play a schedule in virtual time", func() {
		var positions []string
		s := MakeBuilder().
			WithVirtualTime().
			WithHook(timing.HookFunc(func(ctx timing.HookCtx) {
				positions = append(positions, ctx.Pos.Name)
			})).
			Build()

		Expect(s.Play(context.Background(), threeBlocks)).To(Succeed())

		Expect(s.Player().Phase()).To(Equal(playback.PhaseComplete))
		Expect(s.Engine().CurrentTime()).To(BeNumerically("~", 1.2))
		Expect(positions[0]).To(Equal("PlaybackReset"))
		Expect(positions[len(positions)-1]).To(Equal("PlaybackComplete"))
	})

	It("should return the rejection of a malformed schedule", func() {
		s := MakeBuilder().WithVirtualTime().Build()

		err := s.Play(context.Background(), timeline.Schedule{
			{PID: 1, Start: 3, End: 1},
		})

		Expect(err).To(MatchError(timeline.ErrMalformedInterval))
		Expect(s.Player().Phase()).To(Equal(playback.PhaseIdle))
	})

	It("should write the trace of a playback", func() {
		path := filepath.Join(GinkgoT().TempDir(), "trace")
		s := MakeBuilder().
			WithVirtualTime().
			WithTraceDB(path).
			Build()

		Expect(s.Play(context.Background(), threeBlocks)).To(Succeed())
		Expect(s.Terminate()).To(Succeed())

		reader, err := datarecording.NewReader(datarecording.FileName(path))
		Expect(err).NotTo(HaveOccurred())
		defer reader.Close()

		reader.MapTable(tracing.BlockTable, tracing.BlockEntry{})
		blocks, total, err := reader.Query(context.Background(),
			tracing.BlockTable, datarecording.QueryParams{OrderBy: "StartTime"})
		Expect(err).NotTo(HaveOccurred())
		Expect(total).To(Equal(2))
		Expect(blocks[0].(*tracing.BlockEntry).PID).To(Equal(1))
		Expect(blocks[1].(*tracing.BlockEntry).PID).To(Equal(3))
	})

	It("should play a schedule in real time", func() {
		s := MakeBuilder().
			WithTickInterval(20 * time.Millisecond).
			Build()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		Expect(s.Play(ctx, threeBlocks)).To(Succeed())
		Expect(s.Player().Observe().ActiveIndex).To(Equal(3))
		Expect(s.Terminate()).To(Succeed())
	})

	It("should complete an empty schedule in real time", func() {
		s := MakeBuilder().Build()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		Expect(s.Play(ctx, timeline.Schedule{})).To(Succeed())
		Expect(s.Player().Phase()).To(Equal(playback.PhaseComplete))
	})

	It("should serve the monitor while running", func() {
		s := MakeBuilder().
			WithTickInterval(20 * time.Millisecond).
			WithMonitor().
			Build()

		url, err := s.Listen()
		Expect(err).NotTo(HaveOccurred())

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- s.Run(ctx) }()

		body := bytes.NewBufferString(`[{"pid": 4, "start": 0, "end": 2}]`)
		rsp, err := http.Post(url+"/api/schedule", "application/json", body)
		Expect(err).NotTo(HaveOccurred())
		rsp.Body.Close()
		Expect(rsp.StatusCode).To(Equal(http.StatusOK))

		Eventually(func() playback.Phase {
			rsp, err := http.Get(url + "/api/state")
			if err != nil {
				return playback.PhaseIdle
			}
			defer rsp.Body.Close()

			var state playback.PlaybackState
			if json.NewDecoder(rsp.Body).Decode(&state) != nil {
				return playback.PhaseIdle
			}

			return state.Phase
		}, 2*time.Second, 20*time.Millisecond).Should(Equal(playback.PhaseComplete))

		cancel()
		Eventually(done).Should(Receive(BeNil()))
		Expect(s.Terminate()).To(Succeed())
	})

	It("should report a trace that fails to close", func() {
		mockCtrl := gomock.NewController(GinkgoT())
		recorder := NewMockDataRecorder(mockCtrl)
		recorder.EXPECT().CreateTable(gomock.Any(), gomock.Any()).Times(2)
		recorder.EXPECT().InsertData(gomock.Any(), gomock.Any()).AnyTimes()
		recorder.EXPECT().Close().Return(errors.New("disk full"))

		s := MakeBuilder().
			WithVirtualTime().
			WithRecorder(recorder).
			Build()

		Expect(s.Play(context.Background(), threeBlocks)).To(Succeed())

		err := s.Terminate()
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("closing trace: disk full"))
	})

	It("should refuse to listen without a monitor", func() {
		s := MakeBuilder().WithVirtualTime().Build()

		_, err := s.Listen()
		Expect(err).To(HaveOccurred())
	})
})
