package registry

import (
	"github.com/sarchlab/xdevs/model"
	"github.com/sarchlab/xdevs/transducer"
)

// AtomicConstructor builds one atomic component instance from a name plus
// positional and keyword configuration, as found in a model document leaf
// node (spec.md §6 "Model declaration via structured document").
type AtomicConstructor func(name string, args []any, kwargs map[string]any) (model.AtomicBehavior, error)

// TransducerConstructor builds one transducer instance from an id plus
// keyword configuration.
type TransducerConstructor func(id string, kwargs map[string]any) (transducer.Transducer, error)

// Atomics is the process-wide registry of named atomic component
// factories.
var Atomics = New[AtomicConstructor]()

// Transducers is the process-wide registry of named transducer
// factories.
var Transducers = New[TransducerConstructor]()
