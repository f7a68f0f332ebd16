package engine

import (
	"github.com/sarchlab/xdevs/model"
	"github.com/sarchlab/xdevs/serialize"
	"github.com/sarchlab/xdevs/transducer"
)

// Coordinator is the inner processor: it wraps one Coupled and owns an
// ordered list of child processors, which may themselves be Coordinators
// (nested Coupled) or Simulators (leaf Atomic). Only a root Coordinator
// (built with NewRootCoordinator) owns a SimulationClock, a transducer
// list, and the outer run-loop/injection operations (spec.md §4.4).
//
// Grounded on xdevs/sim.py's Coordinator class.
type Coordinator struct {
	coupled *model.Coupled

	clock *Clock
	idx   *transducerIndex

	children []Processor

	timeLast float64
	timeNext float64

	isRoot      bool
	flattenRoot bool
	transducers []transducer.Transducer
}

// NewRootCoordinator builds the root of a simulation around top. When
// flatten is true, Initialize collapses top's nested hierarchy (if any)
// into a single level before building child processors (spec.md §3
// "Flattening invariant").
func NewRootCoordinator(top *model.Coupled, flatten bool) *Coordinator {
	return &Coordinator{
		coupled:     top,
		clock:       NewClock(0),
		idx:         newTransducerIndex(),
		isRoot:      true,
		flattenRoot: flatten,
	}
}

func newInnerCoordinator(coupled *model.Coupled, clock *Clock, idx *transducerIndex) *Coordinator {
	return &Coordinator{coupled: coupled, clock: clock, idx: idx}
}

func newChildProcessor(comp model.Component, clock *Clock, idx *transducerIndex) Processor {
	if coupled, ok := comp.(*model.Coupled); ok {
		return newInnerCoordinator(coupled, clock, idx)
	}
	return NewSimulator(comp.(model.AtomicBehavior), clock, idx)
}

// Model returns the Coupled this Coordinator wraps.
func (c *Coordinator) Model() model.Component { return c.coupled }

// Coupled returns the concrete Coupled this Coordinator wraps, for
// callers (the real-time driver, the model-document loader) that need
// direct access to its named input/output ports.
func (c *Coordinator) Coupled() *model.Coupled { return c.coupled }

// TriggerTransducers calls Trigger(simTime) on every transducer
// registered against the root coordinator (spec.md §4.6 step 6).
func (c *Coordinator) TriggerTransducers(simTime float64) error {
	if !c.isRoot {
		return errNotRoot
	}
	for _, t := range c.transducers {
		if err := t.Trigger(simTime); err != nil {
			return err
		}
	}
	return nil
}

// AddTransducer registers t against the root coordinator; Initialize
// indexes its declared targets (spec.md §4.4 "Root-only operations").
func (c *Coordinator) AddTransducer(t transducer.Transducer) error {
	if !c.isRoot {
		return errNotRoot
	}
	c.transducers = append(c.transducers, t)
	return nil
}

// Initialize flattens top (root only, if requested), indexes the
// registered transducers' targets (root only), builds the child
// processor list from the coupled's current components, initializes
// every child, and sets time_next = min(child.time_next).
func (c *Coordinator) Initialize() error {
	if c.isRoot && c.flattenRoot {
		c.coupled.Flatten()
	}
	if c.isRoot {
		c.idx = newTransducerIndex()
		for _, t := range c.transducers {
			c.idx.register(t)
		}
	}

	comps := c.coupled.Components()
	c.children = make([]Processor, 0, len(comps))
	for _, comp := range comps {
		child := newChildProcessor(comp, c.clock, c.idx)
		if err := child.Initialize(); err != nil {
			return err
		}
		c.children = append(c.children, child)
	}

	c.timeLast = c.clock.Time
	c.timeNext = minTimeNext(c.children)

	if c.isRoot {
		for _, t := range c.transducers {
			if err := t.Initialize(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Exit calls Exit on every child, then (root only) every transducer.
func (c *Coordinator) Exit() error {
	for _, child := range c.children {
		if err := child.Exit(); err != nil {
			return err
		}
	}
	if c.isRoot {
		for _, t := range c.transducers {
			if err := t.Exit(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *Coordinator) TimeLast() float64 { return c.timeLast }
func (c *Coordinator) TimeNext() float64 { return c.timeNext }

// Imminent is clock.Time == time_next OR the coupled has non-empty input
// (input arriving through this coordinator's own EIC-facing ports).
func (c *Coordinator) Imminent() bool {
	return c.clock.Time == c.timeNext || !c.coupled.InEmpty()
}

// Lambda runs λ on every child scheduled for clock.Time and immediately
// propagates that child's used outputs across IC and EOC.
func (c *Coordinator) Lambda() error {
	for _, child := range c.children {
		if child.TimeNext() != c.clock.Time {
			continue
		}
		if err := child.Lambda(); err != nil {
			return err
		}
		for _, port := range child.Model().UsedOutPorts() {
			if err := c.propagateAll(c.coupled.IC()[port]); err != nil {
				return err
			}
			if err := c.propagateAll(c.coupled.EOC()[port]); err != nil {
				return err
			}
		}
	}
	return nil
}

// Delta propagates this coordinator's own used input ports across EIC,
// runs δ on every imminent child, and recomputes time_next.
func (c *Coordinator) Delta() error {
	for _, port := range c.coupled.UsedInPorts() {
		if err := c.propagateAll(c.coupled.EIC()[port]); err != nil {
			return err
		}
	}

	for _, child := range c.children {
		if child.Imminent() {
			if err := child.Delta(); err != nil {
				return err
			}
		}
	}

	c.timeNext = minTimeNext(c.children)
	return nil
}

// propagateAll runs Propagate on every coupling in a source-port bucket
// and, when a transducer index is present, marks the sink port imminent
// for event sampling.
func (c *Coordinator) propagateAll(couplings map[*model.Port]*model.Coupling) error {
	for _, coup := range couplings {
		if err := coup.Propagate(); err != nil {
			return err
		}
		if c.idx != nil {
			c.idx.notifyPort(coup.To)
		}
	}
	return nil
}

// Clear empties every child's ports, then the coupled's own ports.
func (c *Coordinator) Clear() {
	for _, child := range c.children {
		child.Clear()
	}
	c.coupled.Clear()
}

func minTimeNext(children []Processor) float64 {
	min := model.Infinity
	for _, child := range children {
		if child.TimeNext() < min {
			min = child.TimeNext()
		}
	}
	return min
}

// cycle runs one scheduler iteration: jump the clock to the next event,
// λ, δ, trigger every transducer, clear (spec.md §4.4 "Root-only
// operations").
func (c *Coordinator) cycle() error {
	c.clock.Time = c.timeNext
	if err := c.Lambda(); err != nil {
		return err
	}
	if err := c.Delta(); err != nil {
		return err
	}
	for _, t := range c.transducers {
		if err := t.Trigger(c.clock.Time); err != nil {
			return err
		}
	}
	c.Clear()
	return nil
}

// RunBoundedIterations advances at most n cycles, stopping early if
// time_next reaches +∞.
func (c *Coordinator) RunBoundedIterations(n int) error {
	if !c.isRoot {
		return errNotRoot
	}
	for i := 0; i < n; i++ {
		if c.timeNext == model.Infinity {
			break
		}
		if err := c.cycle(); err != nil {
			return err
		}
	}
	return nil
}

// RunBoundedTime advances while time_next < tFinal.
func (c *Coordinator) RunBoundedTime(tFinal float64) error {
	if !c.isRoot {
		return errNotRoot
	}
	for c.timeNext < tFinal {
		if err := c.cycle(); err != nil {
			return err
		}
	}
	return nil
}

// RunUnbounded advances until time_next reaches +∞.
func (c *Coordinator) RunUnbounded() error {
	if !c.isRoot {
		return errNotRoot
	}
	for c.timeNext != model.Infinity {
		if err := c.cycle(); err != nil {
			return err
		}
	}
	return nil
}

// Clock exposes the shared simulation clock. The real-time driver writes
// clock.Time through it after its own pacing decisions.
func (c *Coordinator) Clock() *Clock { return c.clock }

// Inject extends port with values at clock.Time = time_last + e, runs one
// δ cycle, clears, and restores clock.Time = time_next. It rejects with
// ErrInjectionOutOfRange when e would place clock.Time outside
// [time_last, time_next] (spec.md §4.4 "Injection API").
func (c *Coordinator) Inject(port *model.Port, values []any, e float64) error {
	if !c.isRoot {
		return errNotRoot
	}
	if e < 0 || c.timeLast+e > c.timeNext {
		return ErrInjectionOutOfRange
	}

	c.clock.Time = c.timeLast + e
	if err := port.Extend(values); err != nil {
		return err
	}
	if err := c.Delta(); err != nil {
		return err
	}
	c.Clear()
	c.clock.Time = c.timeNext
	return nil
}

// PortIndex returns every input port reachable from the root, keyed by
// "owner.portname", for "owner.portname"-addressed injection (spec.md
// §4.4, §6 "Injection RPC surface").
func (c *Coordinator) PortIndex() map[string]*model.Port {
	idx := make(map[string]*model.Port)
	var walk func(Processor)
	walk = func(p Processor) {
		m := p.Model()
		for _, port := range m.InPorts() {
			idx[m.Name()+"."+port.Name()] = port
		}
		if coord, ok := p.(*Coordinator); ok {
			for _, ch := range coord.children {
				walk(ch)
			}
		}
	}
	for _, ch := range c.children {
		walk(ch)
	}
	return idx
}

// InjectByAddress resolves address against PortIndex, decodes encoded via
// the serialize package, and injects the resulting values.
func (c *Coordinator) InjectByAddress(address string, encoded []byte, e float64) error {
	if !c.isRoot {
		return errNotRoot
	}
	port, ok := c.PortIndex()[address]
	if !ok {
		return ErrUnknownPort
	}
	env, err := serialize.Decode(encoded)
	if err != nil {
		return err
	}
	return c.Inject(port, env.Values, e)
}
