package engine_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/xdevs/engine"
)

var _ = Describe("Simulator.Delta dispatch", func() {
	It("calls DeltaInt when only the time condition holds", func() {
		clock := engine.NewClock(0)
		d := newDispatchRecorder("D", 5)
		s := engine.NewSimulator(d, clock, nil)
		Expect(s.Initialize()).To(Succeed())

		clock.Time = 5
		Expect(s.Delta()).To(Succeed())
		Expect(d.calls).To(Equal([]string{"int"}))
	})

	It("calls DeltaExt with the elapsed time when only input is present", func() {
		clock := engine.NewClock(0)
		d := newDispatchRecorder("D", 5)
		s := engine.NewSimulator(d, clock, nil)
		Expect(s.Initialize()).To(Succeed())

		clock.Time = 3
		Expect(d.in.Add("x")).To(Succeed())
		Expect(s.Delta()).To(Succeed())
		Expect(d.calls).To(Equal([]string{"ext"}))
		Expect(d.lastE).To(Equal(3.0))
	})

	It("calls DeltaCon when both the time condition and input hold", func() {
		clock := engine.NewClock(0)
		d := newDispatchRecorder("D", 5)
		s := engine.NewSimulator(d, clock, nil)
		Expect(s.Initialize()).To(Succeed())

		clock.Time = 5
		Expect(d.in.Add("x")).To(Succeed())
		Expect(s.Delta()).To(Succeed())
		Expect(d.calls).To(Equal([]string{"con"}))
	})

	It("calls nothing and leaves times unchanged otherwise", func() {
		clock := engine.NewClock(0)
		d := newDispatchRecorder("D", 5)
		s := engine.NewSimulator(d, clock, nil)
		Expect(s.Initialize()).To(Succeed())

		clock.Time = 3
		Expect(s.Delta()).To(Succeed())
		Expect(d.calls).To(BeEmpty())
		Expect(s.TimeLast()).To(Equal(0.0))
		Expect(s.TimeNext()).To(Equal(5.0))
	})
})
