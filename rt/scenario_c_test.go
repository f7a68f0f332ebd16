package rt_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/xdevs/engine"
	"github.com/sarchlab/xdevs/model"
	"github.com/sarchlab/xdevs/rt"
)

// passiveEcho never fires on its own; it only exists so the model has a
// live external input/output path for Scenario C's injected event to
// travel through (spec.md §8 Scenario C).
type passiveEcho struct {
	*model.Atomic
	in, out *model.Port
	pending []any
}

func newPassiveEcho(name string) *passiveEcho {
	e := &passiveEcho{Atomic: model.NewAtomic(name), in: model.NewPort("in"), out: model.NewPort("out")}
	e.AttachOwner(e)
	_ = e.AddInPort(e.in)
	_ = e.AddOutPort(e.out)
	return e
}

func (e *passiveEcho) Initialize() {}
func (e *passiveEcho) Exit()       {}
func (e *passiveEcho) Lambda()     { _ = e.out.Extend(e.pending) }
func (e *passiveEcho) DeltaInt()   { e.pending = nil; e.PassivateDefault() }
func (e *passiveEcho) DeltaCon()   { e.DeltaInt(); e.DeltaExt(0) }
func (e *passiveEcho) DeltaExt(el float64) {
	e.Continue(el)
	e.pending = e.in.IterateValues()
	e.HoldIn(model.PhaseActive, 0)
}

// blockingInputHandler is a live input handler that never produces an
// event itself; it exists only so Coordinator.step's "nothing can ever
// happen again" short circuit doesn't fire before the test's externally
// pushed event is picked up by Manager.Sleep.
type blockingInputHandler struct {
	stop chan struct{}
}

func newBlockingInputHandler() *blockingInputHandler {
	return &blockingInputHandler{stop: make(chan struct{})}
}

func (h *blockingInputHandler) Initialize() error { return nil }
func (h *blockingInputHandler) Run() error         { <-h.stop; return nil }
func (h *blockingInputHandler) Exit() error        { return nil }

var _ = Describe("Coordinator.Run (Scenario C: real-time injection)", func() {
	It("delivers an externally injected event within the event window and honors the real-time budget", func() {
		echo := newPassiveEcho("Echo")

		top := model.NewCoupled("Top")
		topIn := model.NewPort("ext")
		topOut := model.NewPort("out")
		Expect(top.AddInPort(topIn)).To(Succeed())
		Expect(top.AddOutPort(topOut)).To(Succeed())
		Expect(top.AddComponent(echo)).To(Succeed())
		_, err := top.AddCoupling(topIn, echo.in, nil)
		Expect(err).NotTo(HaveOccurred())
		_, err = top.AddCoupling(echo.out, topOut, nil)
		Expect(err).NotTo(HaveOccurred())

		maxJitter := 0.05
		manager, err := rt.NewManager(&maxJitter, 1, 0.02)
		Expect(err).NotTo(HaveOccurred())

		handler := &recordingOutputHandler{}
		manager.AddOutputHandler(handler)
		handler.base = rt.NewOutputHandlerBase(manager.OutputQueue(0))
		manager.AddInputHandler(newBlockingInputHandler())

		root := engine.NewRootCoordinator(top, false)
		coordinator := rt.NewCoordinator(root, manager)

		const tInterv = 0.3
		const injectAt = 0.1

		go func() {
			time.Sleep(time.Duration(injectAt * float64(time.Second)))
			manager.Push(rt.Event{Port: "ext", Value: "ping"})
		}()

		start := time.Now()
		Expect(coordinator.Run(tInterv)).To(Succeed())
		elapsed := time.Since(start).Seconds()

		Expect(handler.count()).To(Equal(1))
		Expect(elapsed).To(BeNumerically(">=", tInterv-0.02))
		Expect(elapsed).To(BeNumerically("<", tInterv+maxJitter+0.15))
	})
})
