// Package engine implements the processor layer and scheduler described in
// spec.md §2 layers 2-3: the hierarchical Simulator/Coordinator processors
// that wrap model components for the duration of one simulation, and the
// virtual-time cycle (lambda phase, delta phase, transducer trigger,
// clear, advance) that drives them.
//
// Grounded on xdevs/sim.py (SimulationClock, AbstractSimulator, Simulator,
// Coordinator).
package engine

// Clock is the single mutable simulation-time field shared by a root
// Coordinator and every processor beneath it (spec.md §4.5). No object
// other than the root coordinator's cycle driver writes Time; every
// processor only reads it.
type Clock struct {
	Time float64
}

// NewClock creates a clock starting at the given initial time (0 unless
// the caller has a reason otherwise).
func NewClock(initial float64) *Clock {
	return &Clock{Time: initial}
}
