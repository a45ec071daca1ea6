package timing

import (
	"context"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("RealTimeEngine", func() {
	var (
		engine *RealTimeEngine
		ctx    context.Context
		cancel context.CancelFunc
		done   chan error
	)

	BeforeEach(func() {
		engine = NewRealTimeEngine(1)
		ctx, cancel = context.WithCancel(context.Background())
		done = make(chan error, 1)
		go func() { done <- engine.Run(ctx) }()
	})

	AfterEach(func() {
		cancel()
		Eventually(done).Should(Receive(MatchError(context.Canceled)))
	})

	It("should handle events once their time has come", func() {
		var (
			mu    sync.Mutex
			order []int
		)
		record := func(i int) func(VTimeInSec) {
			return func(VTimeInSec) {
				mu.Lock()
				defer mu.Unlock()
				order = append(order, i)
			}
		}

		now := engine.CurrentTime()
		engine.Schedule(NewFuncEvent(now+0.04, record(2)))
		engine.Schedule(NewFuncEvent(now+0.02, record(1)))

		Eventually(func() []int {
			mu.Lock()
			defer mu.Unlock()
			return append([]int(nil), order...)
		}).Should(Equal([]int{1, 2}))
	})

	It("should report the event time inside handlers", func() {
		seen := make(chan VTimeInSec, 1)
		at := engine.CurrentTime() + 0.01

		engine.Schedule(NewFuncEvent(at, func(VTimeInSec) {
			seen <- engine.CurrentTime()
		}))

		Eventually(seen).Should(Receive(Equal(at)))
	})

	It("should never handle an event cancelled inside Do", func() {
		fired := make(chan struct{}, 1)
		evt := NewFuncEvent(engine.CurrentTime()+0.03, func(VTimeInSec) {
			fired <- struct{}{}
		})
		engine.Schedule(evt)

		engine.Do(func() {
			time.Sleep(60 * time.Millisecond)
			engine.Cancel(evt.ID())
		})

		Consistently(fired, 100*time.Millisecond).ShouldNot(Receive())
		Expect(engine.Pending()).To(Equal(0))
	})

	It("should not move time backwards", func() {
		t1 := engine.CurrentTime()
		t2 := engine.CurrentTime()
		Expect(t2).To(BeNumerically(">=", t1))
	})
})

var _ = Describe("RealTimeEngine speed", func() {
	It("should reject non-positive speed", func() {
		Expect(func() { NewRealTimeEngine(0) }).To(Panic())
	})
})
