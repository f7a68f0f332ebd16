package engine

import (
	"github.com/sarchlab/xdevs/model"
	"github.com/sarchlab/xdevs/transducer"
)

// transducerIndex is the port->transducer and atomic->transducer lookup
// table the root Coordinator builds during Initialize from the
// transducers registered with AddTransducer (spec.md §4.4,
// "Root-only operations"). It is handed down, by pointer, to every
// processor built beneath the root, so any Simulator or nested
// Coordinator can notify the transducers interested in a component or
// port it just made imminent without climbing back up to the root.
type transducerIndex struct {
	byComponent map[model.Component][]transducer.Transducer
	byPort      map[*model.Port][]transducer.Transducer
}

func newTransducerIndex() *transducerIndex {
	return &transducerIndex{
		byComponent: make(map[model.Component][]transducer.Transducer),
		byPort:      make(map[*model.Port][]transducer.Transducer),
	}
}

// register indexes t's declared targets so notifyComponent/notifyPort can
// find it.
func (idx *transducerIndex) register(t transducer.Transducer) {
	for comp := range t.TargetComponents() {
		idx.byComponent[comp] = append(idx.byComponent[comp], t)
	}
	for port := range t.TargetPorts() {
		idx.byPort[port] = append(idx.byPort[port], t)
	}
}

func (idx *transducerIndex) notifyComponent(comp model.Component) {
	for _, t := range idx.byComponent[comp] {
		t.AddImminentComponent(comp)
	}
}

func (idx *transducerIndex) notifyPort(port *model.Port) {
	for _, t := range idx.byPort[port] {
		t.AddImminentPort(port)
	}
}
