package playback

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Pallavi2687/cpu-scheduler-frontend/timing"
)

var _ = Describe("Builder", func() {
	It("should default to a 600ms tick interval", func() {
		p := MakeBuilder().WithEngine(timing.NewSerialEngine()).Build("P")

		Expect(p.Name()).To(Equal("P"))
		Expect(p.TickInterval()).To(BeNumerically("~", 0.6, 1e-12))
	})

	It("should require an engine", func() {
		Expect(func() { MakeBuilder().Build("P") }).To(Panic())
	})

	It("should require a positive tick interval", func() {
		b := MakeBuilder().
			WithEngine(timing.NewSerialEngine()).
			WithTickInterval(-time.Second)

		Expect(func() { b.Build("P") }).To(Panic())
	})

	It("should not share hooks between derived builders", func() {
		base := MakeBuilder().WithEngine(timing.NewSerialEngine())
		a := base.WithHook(&notificationLog{}).Build("A")
		b := base.Build("B")

		Expect(a.NumHooks()).To(Equal(1))
		Expect(b.NumHooks()).To(Equal(0))
	})
})
