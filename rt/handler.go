// Package rt implements the real-time driver described in spec.md §2
// layer 4, §4.6-§4.8: a RealTimeCoordinator pacing a (non-real-time) root
// Coordinator against a wall clock, a RealTimeManager owning the shared
// input queue and the input/output handler worker pool, and the
// handler plugin contract those workers implement.
//
// Grounded on xdevs/rt_sim/manager_rt.py and xdevs/rt_sim/input_handler.py
// (the manager/handler split) with the sleep() algorithm taken verbatim
// from spec.md §4.7, the Open Question's chosen variant.
package rt

import "log/slog"

// Event is one (port, value) pair moving through the manager's input
// queue or an output handler's private queue.
type Event struct {
	Port  string
	Value any
}

// EventParser turns one raw input handler message into its destination
// port name and a raw (not yet type-specific) message value (spec.md
// §4.8 "applies a configured event parser").
type EventParser func(raw []byte) (port string, rawMsg any, err error)

// MessageParser turns a raw message destined for one specific port into
// its typed form (spec.md §4.8 "applies an optional message parser for
// that port").
type MessageParser func(rawMsg any) (typedMsg any, err error)

// InputHandler is a long-lived worker translating an external medium
// into Events on the manager's shared input queue.
type InputHandler interface {
	Initialize() error
	// Run loops until process end or error; implementations call
	// PushEvent (via an embedded InputHandlerBase) for every raw message
	// they read off the medium.
	Run() error
	Exit() error
}

// OutputHandler is a long-lived worker translating Events pulled from
// its private queue into writes against an external medium.
type OutputHandler interface {
	Initialize() error
	Run() error
	Exit() error
}

// InputHandlerBase implements the push_event machinery shared by every
// concrete InputHandler: parse, look up a per-port message parser, and
// enqueue. A parser error drops only the offending message (spec.md §4.8
// "Parsers that throw on a given message cause that message only to be
// dropped with a logged warning").
type InputHandlerBase struct {
	Queue       chan<- Event
	EventParser EventParser
	MsgParsers  map[string]MessageParser
	Logger      *slog.Logger
}

// NewInputHandlerBase builds a base bound to queue and parser. msgParsers
// may be nil (no per-port message parsing, rawMsg is used as-is).
func NewInputHandlerBase(queue chan<- Event, parser EventParser, msgParsers map[string]MessageParser) *InputHandlerBase {
	logger := slog.Default()
	if msgParsers == nil {
		msgParsers = make(map[string]MessageParser)
	}
	return &InputHandlerBase{Queue: queue, EventParser: parser, MsgParsers: msgParsers, Logger: logger}
}

// PushEvent parses raw and enqueues the resulting Event, or logs and
// drops it on a parse failure.
func (b *InputHandlerBase) PushEvent(raw []byte) {
	port, rawMsg, err := b.EventParser(raw)
	if err != nil {
		b.Logger.Warn("rt: dropping message that failed event parsing", "error", err)
		return
	}

	msg := rawMsg
	if parser, ok := b.MsgParsers[port]; ok {
		msg, err = parser(rawMsg)
		if err != nil {
			b.Logger.Warn("rt: dropping message that failed message parsing", "port", port, "error", err)
			return
		}
	}

	b.Queue <- Event{Port: port, Value: msg}
}

// OutputHandlerBase holds the private queue an output handler's Run loop
// reads from.
type OutputHandlerBase struct {
	Queue  <-chan Event
	Logger *slog.Logger
}

// NewOutputHandlerBase builds a base bound to queue.
func NewOutputHandlerBase(queue <-chan Event) *OutputHandlerBase {
	return &OutputHandlerBase{Queue: queue, Logger: slog.Default()}
}
