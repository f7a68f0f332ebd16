package rt_test

import (
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/xdevs/engine"
	"github.com/sarchlab/xdevs/model"
	"github.com/sarchlab/xdevs/rt"
)

// rtPulser emits a value on its out port every period virtual seconds.
type rtPulser struct {
	*model.Atomic
	out    *model.Port
	period float64
}

func newRTPulser(name string, period float64) *rtPulser {
	p := &rtPulser{Atomic: model.NewAtomic(name), period: period, out: model.NewPort("out")}
	p.AttachOwner(p)
	_ = p.AddOutPort(p.out)
	p.HoldIn(model.PhaseActive, period)
	return p
}

func (p *rtPulser) Initialize()        {}
func (p *rtPulser) Exit()              {}
func (p *rtPulser) DeltaExt(e float64) {}
func (p *rtPulser) DeltaCon()          { p.DeltaInt() }
func (p *rtPulser) Lambda()            { _ = p.out.Add("tick") }
func (p *rtPulser) DeltaInt()          { p.HoldIn(model.PhaseActive, p.period) }

type recordingOutputHandler struct {
	base *rt.OutputHandlerBase

	mu       sync.Mutex
	received []rt.Event
}

func (h *recordingOutputHandler) Initialize() error { return nil }
func (h *recordingOutputHandler) Exit() error       { return nil }
func (h *recordingOutputHandler) Run() error {
	for ev := range h.base.Queue {
		h.mu.Lock()
		h.received = append(h.received, ev)
		h.mu.Unlock()
	}
	return nil
}

func (h *recordingOutputHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.received)
}

var _ = Describe("Coordinator.Run", func() {
	It("paces a purely internal model against the wall clock and delivers its output to a handler", func() {
		top := model.NewCoupled("Top")
		p := newRTPulser("Pulser", 0.02)
		Expect(top.AddComponent(p)).To(Succeed())

		topOut := model.NewPort("out")
		Expect(top.AddOutPort(topOut)).To(Succeed())
		_, err := top.AddCoupling(p.out, topOut, nil)
		Expect(err).NotTo(HaveOccurred())

		manager, err := rt.NewManager(nil, 1, 0)
		Expect(err).NotTo(HaveOccurred())

		handler := &recordingOutputHandler{}
		manager.AddOutputHandler(handler)
		handler.base = rt.NewOutputHandlerBase(manager.OutputQueue(0))

		root := engine.NewRootCoordinator(top, false)
		coordinator := rt.NewCoordinator(root, manager)

		Expect(coordinator.Run(0.07)).To(Succeed())
		Expect(handler.count()).To(BeNumerically(">=", 2))
	})
})
