package engine

import "github.com/sarchlab/xdevs/model"

// scheduled is implemented by every concrete Atomic through its embedded
// *model.Atomic: it exposes the time-advance function the Simulator needs
// but that model.AtomicBehavior itself does not declare (model.Atomic's
// phase/sigma machinery is deliberately kept out of the behavior
// interface so implementers cannot be asked to re-derive it).
type scheduled interface {
	TA() float64
}

// Simulator is the leaf processor: it wraps exactly one Atomic (spec.md
// §4.3). Grounded on xdevs/sim.py's Simulator class.
type Simulator struct {
	atomic model.AtomicBehavior
	ta     scheduled

	clock *Clock
	idx   *transducerIndex

	timeLast float64
	timeNext float64
}

// NewSimulator wraps atomic for the lifetime of one simulation. clock is
// the shared SimulationClock; idx may be nil (no transducers attached).
func NewSimulator(atomic model.AtomicBehavior, clock *Clock, idx *transducerIndex) *Simulator {
	return &Simulator{
		atomic: atomic,
		ta:     atomic.(scheduled),
		clock:  clock,
		idx:    idx,
	}
}

func (s *Simulator) Model() model.Component { return s.atomic }

// Initialize calls the atomic's Initialize, then sets
// time_last = clock.Time, time_next = time_last + ta().
func (s *Simulator) Initialize() error {
	s.atomic.Initialize()
	s.timeLast = s.clock.Time
	s.timeNext = s.timeLast + s.ta.TA()
	return nil
}

func (s *Simulator) Exit() error {
	s.atomic.Exit()
	return nil
}

func (s *Simulator) TimeLast() float64 { return s.timeLast }
func (s *Simulator) TimeNext() float64 { return s.timeNext }

// Imminent is clock.Time == time_next OR the atomic has non-empty input.
func (s *Simulator) Imminent() bool {
	return s.clock.Time == s.timeNext || !s.atomic.InEmpty()
}

// Lambda invokes the atomic's Lambda only when clock.Time == time_next.
func (s *Simulator) Lambda() error {
	if s.clock.Time == s.timeNext {
		s.atomic.Lambda()
	}
	return nil
}

// Delta selects and fires the transition per spec.md §4.3:
//
//	input present AND clock.Time == time_next -> DeltaCon
//	input present (time_next not reached)      -> DeltaExt(e)
//	no input AND clock.Time == time_next       -> DeltaInt
//	otherwise                                   -> no-op, times unchanged
//
// After a transition, time_last/time_next are recomputed and, if idx is
// set, the atomic is marked imminent for any attached transducer.
func (s *Simulator) Delta() error {
	hasInput := !s.atomic.InEmpty()
	atTime := s.clock.Time == s.timeNext

	switch {
	case hasInput && atTime:
		s.atomic.DeltaCon()
	case hasInput:
		s.atomic.DeltaExt(s.clock.Time - s.timeLast)
	case atTime:
		s.atomic.DeltaInt()
	default:
		return nil
	}

	s.timeLast = s.clock.Time
	s.timeNext = s.timeLast + s.ta.TA()
	if s.idx != nil {
		s.idx.notifyComponent(s.atomic)
	}
	return nil
}

// Clear empties every input and output port of the atomic.
func (s *Simulator) Clear() {
	s.atomic.Clear()
}
