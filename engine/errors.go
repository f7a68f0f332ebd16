package engine

import "errors"

// ErrInjectionOutOfRange is returned by Coordinator.Inject when the
// requested elapsed time e does not fall in [time_last, time_next]
// (spec.md §4.4 "Injection API", §7 "Scheduling errors": not fatal, a
// rejection result).
var ErrInjectionOutOfRange = errors.New("engine: injection elapsed time outside [time_last, time_next]")

// ErrUnknownPort is returned when a "owner.portname" address does not
// resolve to any input port reachable from the root model.
var ErrUnknownPort = errors.New("engine: unknown port address")

// errNotRoot guards the root-only operations (§4.4 "Root-only
// operations"): transducer registration, the run loop variants and
// injection are meaningless on an inner Coordinator.
var errNotRoot = errors.New("engine: operation valid only on the root coordinator")
