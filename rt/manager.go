package rt

import (
	"log/slog"
	"math"
	"time"

	"github.com/tebeka/atexit"
	"golang.org/x/sync/errgroup"
)

// Manager is the RealTimeManager of spec.md §4.7: it owns the shared
// input event queue, the ordered input/output handler lists, and the
// sleep() pacing primitive the RealTimeCoordinator drives its loop with.
type Manager struct {
	maxJitter   *float64
	timeScale   float64
	eventWindow float64

	initialRTime float64
	lastRTime    float64
	lastVTime    float64

	queue chan Event

	inputHandlers  []InputHandler
	outputHandlers []OutputHandler
	outputQueues   []chan Event

	now     func() float64
	logger  *slog.Logger
	sampler *resourceSampler

	workers *errgroup.Group
}

// NewManager validates the configuration (spec.md §7 "Real-time errors")
// and builds a Manager. maxJitter may be nil (no jitter bound enforced).
func NewManager(maxJitter *float64, timeScale, eventWindow float64) (*Manager, error) {
	if maxJitter != nil && *maxJitter < 0 {
		return nil, ErrNegativeMaxJitter
	}
	if timeScale <= 0 {
		return nil, ErrNonPositiveTimeScale
	}
	if eventWindow < 0 {
		return nil, ErrNegativeEventWindow
	}

	return &Manager{
		maxJitter:   maxJitter,
		timeScale:   timeScale,
		eventWindow: eventWindow,
		queue:       make(chan Event, 256),
		now:         wallClockSeconds,
		logger:      slog.Default(),
		sampler:     newResourceSampler(),
	}, nil
}

func wallClockSeconds() float64 { return float64(time.Now().UnixNano()) / 1e9 }

// AddInputHandler registers h to be started by Initialize.
func (m *Manager) AddInputHandler(h InputHandler) {
	m.inputHandlers = append(m.inputHandlers, h)
}

// AddOutputHandler registers h and creates the private queue it will be
// run with. The queue is reachable by registration position through
// OutputQueue.
func (m *Manager) AddOutputHandler(h OutputHandler) {
	m.outputHandlers = append(m.outputHandlers, h)
	m.outputQueues = append(m.outputQueues, make(chan Event, 256))
}

// HasLiveInputHandlers reports whether any input handler is registered
// (spec.md §4.6 step 1: "the manager has no live input handlers").
func (m *Manager) HasLiveInputHandlers() bool {
	return len(m.inputHandlers) > 0
}

// Initialize spawns one worker per input handler and one per output
// handler, then records the real/virtual time origin.
func (m *Manager) Initialize(initialVTime float64) error {
	now := m.now()
	m.initialRTime = now
	m.lastRTime = now
	m.lastVTime = initialVTime

	m.workers = &errgroup.Group{}
	for _, h := range m.inputHandlers {
		h := h
		m.workers.Go(func() error { return m.runInputWorker(h) })
	}
	for i, h := range m.outputHandlers {
		h, queue := h, m.outputQueues[i]
		m.workers.Go(func() error { return m.runOutputWorker(h, queue) })
	}

	atexit.Register(func() {
		m.logger.Info("rt: real-time manager shutting down", "last_v_time", m.lastVTime)
	})
	return nil
}

// runInputWorker is the lifecycle of one input handler worker: a failure
// in Initialize or Run terminates only this worker, after Exit runs. The
// error is reported to the errgroup for observability, not used to
// cancel sibling workers (each handler is independent daemon work).
func (m *Manager) runInputWorker(h InputHandler) error {
	if err := h.Initialize(); err != nil {
		m.logger.Error("rt: input handler failed to initialize", "error", err)
		_ = h.Exit()
		return err
	}
	if err := h.Run(); err != nil {
		m.logger.Error("rt: input handler worker failed", "error", err)
		_ = h.Exit()
		return err
	}
	return h.Exit()
}

func (m *Manager) runOutputWorker(h OutputHandler, queue chan Event) error {
	_ = queue
	if err := h.Initialize(); err != nil {
		m.logger.Error("rt: output handler failed to initialize", "error", err)
		_ = h.Exit()
		return err
	}
	if err := h.Run(); err != nil {
		m.logger.Error("rt: output handler worker failed", "error", err)
		_ = h.Exit()
		return err
	}
	return h.Exit()
}

// Sleep implements spec.md §4.7's sleep(next_v_time) -> (v_time, events).
func (m *Manager) Sleep(nextVTime float64) (float64, []Event, error) {
	nextRTime := m.lastRTime + (nextVTime-m.lastVTime)*m.timeScale

	timer := time.NewTimer(durationUntil(nextRTime, m.now()))
	select {
	case first := <-m.queue:
		timer.Stop()
		collected := []Event{first}
		collected = m.drainWithinWindow(collected, nextRTime)

		rTime := math.Min(nextRTime, m.now())
		vTime := (rTime - m.initialRTime) / m.timeScale
		m.lastRTime = rTime
		m.lastVTime = vTime
		if err := m.checkJitter(); err != nil {
			return vTime, collected, err
		}
		return vTime, collected, nil

	case <-timer.C:
		m.lastRTime = nextRTime
		m.lastVTime = nextVTime
		if err := m.checkJitter(); err != nil {
			return nextVTime, nil, err
		}
		return nextVTime, nil, nil
	}
}

// drainWithinWindow keeps collecting events with a rolling deadline of
// min(now+event_window, next_r_time), batching near-simultaneous
// arrivals into the same returned batch (spec.md §4.7).
func (m *Manager) drainWithinWindow(collected []Event, nextRTime float64) []Event {
	for {
		deadline := math.Min(m.now()+m.eventWindow, nextRTime)
		remaining := deadline - m.now()
		if remaining <= 0 {
			return collected
		}

		t := time.NewTimer(durationUntil(deadline, m.now()))
		select {
		case ev := <-m.queue:
			t.Stop()
			collected = append(collected, ev)
		case <-t.C:
			return collected
		}
	}
}

func (m *Manager) checkJitter() error {
	if m.maxJitter == nil {
		return nil
	}
	drift := math.Abs(m.now() - m.lastRTime)
	if drift > *m.maxJitter {
		load, err := m.sampler.percent()
		if err != nil {
			m.logger.Warn("rt: failed to sample host cpu load", "error", err)
		}
		return &JitterExceededError{Drift: drift, MaxJitter: *m.maxJitter, CPULoadPercent: load}
	}
	return nil
}

func durationUntil(deadline, now float64) time.Duration {
	d := deadline - now
	if d < 0 {
		d = 0
	}
	return time.Duration(d * float64(time.Second))
}

// OutputMessages enqueues every value in values, as (portName, value),
// to every registered output handler's private
// queue. Delivery is best-effort: a full queue drops the message with a
// logged warning rather than blocking the caller (spec.md §5 "the kernel
// does not wait on an output handler").
func (m *Manager) OutputMessages(portName string, values []any) {
	for i, queue := range m.outputQueues {
		for _, v := range values {
			select {
			case queue <- Event{Port: portName, Value: v}:
			default:
				m.logger.Warn("rt: output handler queue full, dropping message",
					"handler_index", i, "port", portName)
			}
		}
	}
}

// Push enqueues ev onto the shared input queue; it is the receiving end
// of InputHandlerBase.PushEvent and is exposed so handlers constructed
// without an InputHandlerBase (or tests) can feed the manager directly.
func (m *Manager) Push(ev Event) {
	m.queue <- ev
}

// InputQueue returns the shared MPSC input queue, for wiring into
// InputHandlerBase-backed concrete handlers.
func (m *Manager) InputQueue() chan<- Event { return m.queue }

// OutputQueue returns the i-th registered output handler's private
// queue, for wiring into OutputHandlerBase.
func (m *Manager) OutputQueue(i int) <-chan Event { return m.outputQueues[i] }

// Exit records the final virtual time reached. Workers are daemon-like
// and are not joined; they terminate with the process.
func (m *Manager) Exit(finalVTime float64) error {
	m.lastVTime = finalVTime
	return nil
}

// LastVTime returns the most recently recorded virtual time.
func (m *Manager) LastVTime() float64 { return m.lastVTime }
