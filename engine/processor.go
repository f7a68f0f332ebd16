package engine

import "github.com/sarchlab/xdevs/model"

// Processor is the AbstractSimulator contract shared by Simulator and
// Coordinator (spec.md §2 layer 2, §4.3, §4.4): both carry
// (time_last, time_next) in simulation time and obey the same external
// protocol, so a Coordinator's child list can hold either.
type Processor interface {
	// Model returns the component this processor wraps (an Atomic for a
	// Simulator, a Coupled for a Coordinator).
	Model() model.Component

	Initialize() error
	Exit() error

	TimeLast() float64
	TimeNext() float64

	// Imminent reports whether this processor is due to run this cycle:
	// clock.Time == TimeNext() or the wrapped model has non-empty input.
	Imminent() bool

	// Lambda runs the output function if the processor is scheduled for
	// clock.Time, then (for a Coordinator) propagates the outputs of any
	// child it just ran.
	Lambda() error

	// Delta propagates pending input, then dispatches the appropriate
	// transition (internal/external/confluent) and recomputes TimeNext.
	Delta() error

	// Clear empties every port touched this cycle.
	Clear()
}
