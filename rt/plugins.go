package rt

import "github.com/sarchlab/xdevs/registry"

// InputHandlerConstructor builds one input handler from an id plus
// keyword configuration and the queue it will push Events onto
// (spec.md §6 "Handler construction": "input handlers receive the
// shared queue").
type InputHandlerConstructor func(id string, kwargs map[string]any, queue chan<- Event) (InputHandler, error)

// OutputHandlerConstructor builds one output handler from an id plus
// keyword configuration and its freshly created private queue.
type OutputHandlerConstructor func(id string, kwargs map[string]any, queue <-chan Event) (OutputHandler, error)

// InputHandlers and OutputHandlers are the process-wide plugin tables
// for the two handler kinds, completing the four-registry plugin
// surface of spec.md §6 alongside registry.Atomics and
// registry.Transducers.
var (
	InputHandlers  = registry.New[InputHandlerConstructor]()
	OutputHandlers = registry.New[OutputHandlerConstructor]()
)
