// Package transducer implements the observation surface described in
// spec.md §4.9: plugins that attach to atomic components and/or ports
// and emit flat records, either exhaustively (every trigger, every
// target) or incrementally (only targets marked imminent since the last
// trigger).
package transducer

import "github.com/sarchlab/xdevs/model"

// Transducer is the kernel-facing contract. The root Coordinator calls
// Initialize once before the simulation starts, Trigger once per cycle,
// and Exit once after the simulation stops. A Simulator calls
// AddImminentComponent during the delta phase for a target atomic that
// just transitioned; a Coordinator calls AddImminentPort, during the
// lambda or delta phase, for a target port that a coupling just
// propagated values into.
type Transducer interface {
	Initialize() error
	Exit() error
	Trigger(simTime float64) error

	TargetComponents() map[model.Component]struct{}
	TargetPorts() map[*model.Port]struct{}

	AddImminentComponent(c model.Component)
	AddImminentPort(p *model.Port)
}

// Record is one flat, emitted observation: a mapping of field name to
// value, always including the simulation-time field.
type Record map[string]any
