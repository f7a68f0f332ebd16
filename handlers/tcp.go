// Package handlers provides a TCP-based input/output handler pair for
// rt.Manager, grounded on xdevs/plugins/input_handlers/tcp_input_handler.py
// and xdevs/plugins/output_handlers/tcp_output_handler.py. Both speak the
// original's default wire format, one event per line as "port,msg".
package handlers

import (
	"bufio"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/sarchlab/xdevs/rt"
)

// DefaultTCPFormat implements the "port,msg" line format used by both
// the Python tcp_format default event parser and the output handler's
// default event formatter.
func DefaultTCPFormat(raw []byte) (port string, rawMsg any, err error) {
	parts := strings.SplitN(strings.TrimSpace(string(raw)), ",", 2)
	if len(parts) != 2 {
		return "", nil, fmt.Errorf("handlers: malformed tcp message %q, want \"port,msg\"", raw)
	}
	return parts[0], parts[1], nil
}

// TCPInputHandler is a socket server: every line a connected client
// sends is parsed as one inbound event and pushed onto the manager's
// shared queue.
type TCPInputHandler struct {
	*rt.InputHandlerBase
	Host string
	Port int

	listener net.Listener
}

// NewTCPInputHandler builds a handler bound to queue. parser defaults to
// DefaultTCPFormat when nil; msgParsers may be nil.
func NewTCPInputHandler(host string, port int, queue chan<- rt.Event, parser rt.EventParser, msgParsers map[string]rt.MessageParser) *TCPInputHandler {
	if parser == nil {
		parser = DefaultTCPFormat
	}
	if host == "" {
		host = "0.0.0.0"
	}
	return &TCPInputHandler{
		InputHandlerBase: rt.NewInputHandlerBase(queue, parser, msgParsers),
		Host:             host,
		Port:             port,
	}
}

func (h *TCPInputHandler) Initialize() error {
	listener, err := net.Listen("tcp", fmt.Sprintf("%s:%d", h.Host, h.Port))
	if err != nil {
		return fmt.Errorf("handlers: tcp input handler: %w", err)
	}
	h.listener = listener
	h.Logger.Info("handlers: tcp input handler listening", "addr", listener.Addr())
	return nil
}

// Run accepts connections until the listener is closed by Exit,
// spawning one goroutine per client. Unlike the original's client_handler
// / queue_handler split through an intermediate SimpleQueue, PushEvent
// parses and enqueues directly, so no intermediate queue is needed here.
func (h *TCPInputHandler) Run() error {
	for {
		conn, err := h.listener.Accept()
		if err != nil {
			return nil
		}
		go h.serveClient(conn)
	}
}

func (h *TCPInputHandler) serveClient(conn net.Conn) {
	defer conn.Close()
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		h.PushEvent(scanner.Bytes())
	}
}

// Addr returns the listener's bound address. Only valid after
// Initialize; useful when Port was 0 (let the OS choose a port).
func (h *TCPInputHandler) Addr() net.Addr {
	if h.listener == nil {
		return nil
	}
	return h.listener.Addr()
}

func (h *TCPInputHandler) Exit() error {
	if h.listener == nil {
		return nil
	}
	return h.listener.Close()
}

// EventFormatter renders one outbound event as the bytes written to the
// wire. Defaults to "port,msg\n".
type EventFormatter func(port string, value any) []byte

func defaultEventFormatter(port string, value any) []byte {
	return []byte(fmt.Sprintf("%s,%v\n", port, value))
}

// TCPOutputHandler is a socket client: it dials (host, port) once
// connected and writes every event popped from its private queue,
// retrying the connection with a fixed backoff if the dial is refused.
type TCPOutputHandler struct {
	*rt.OutputHandlerBase
	Host      string
	Port      int
	Wait      time.Duration
	Formatter EventFormatter

	conn net.Conn
}

// NewTCPOutputHandler builds a handler bound to queue. wait is the
// reconnect backoff (xdevs' t_wait, default 10s there); formatter
// defaults to "port,msg\n" when nil.
func NewTCPOutputHandler(host string, port int, wait time.Duration, formatter EventFormatter, queue <-chan rt.Event) *TCPOutputHandler {
	if host == "" {
		host = "localhost"
	}
	if wait <= 0 {
		wait = 10 * time.Second
	}
	if formatter == nil {
		formatter = defaultEventFormatter
	}
	return &TCPOutputHandler{
		OutputHandlerBase: rt.NewOutputHandlerBase(queue),
		Host:              host,
		Port:              port,
		Wait:              wait,
		Formatter:         formatter,
	}
}

func (h *TCPOutputHandler) Initialize() error { return nil }

// Run pops events off the queue and writes them to the connection,
// dialing (or redialing, after the backoff) lazily on first need.
func (h *TCPOutputHandler) Run() error {
	var nextDial time.Time
	for ev := range h.Queue {
		if h.conn == nil {
			if time.Now().Before(nextDial) {
				h.Logger.Warn("handlers: tcp output handler dropping event while disconnected", "port", ev.Port)
				continue
			}
			conn, err := net.Dial("tcp", fmt.Sprintf("%s:%d", h.Host, h.Port))
			if err != nil {
				h.Logger.Warn("handlers: tcp output handler connection refused, backing off", "error", err, "wait", h.Wait)
				nextDial = time.Now().Add(h.Wait)
				continue
			}
			h.conn = conn
		}

		if _, err := h.conn.Write(h.Formatter(ev.Port, ev.Value)); err != nil {
			h.Logger.Warn("handlers: tcp output handler write failed, will reconnect", "error", err)
			_ = h.conn.Close()
			h.conn = nil
		}
	}
	return nil
}

func (h *TCPOutputHandler) Exit() error {
	if h.conn == nil {
		return nil
	}
	return h.conn.Close()
}
