package rt

import (
	"log/slog"
	"math"

	"github.com/sarchlab/xdevs/engine"
	"github.com/sarchlab/xdevs/model"
)

// Coordinator is the RealTimeCoordinator of spec.md §4.6: it wraps a
// (non-real-time) root engine.Coordinator and a Manager, pacing the
// kernel's virtual time against the wall clock.
type Coordinator struct {
	root    *engine.Coordinator
	manager *Manager
	logger  *slog.Logger
}

// NewCoordinator pairs root with manager.
func NewCoordinator(root *engine.Coordinator, manager *Manager) *Coordinator {
	return &Coordinator{root: root, manager: manager, logger: slog.Default()}
}

// Run drives the simulation for a target virtual-time budget tInterv,
// following the six-step loop of spec.md §4.6. It stops once
// clock.Time >= tInterv.
func (rc *Coordinator) Run(tInterv float64) error {
	if err := rc.root.Initialize(); err != nil {
		return err
	}
	if err := rc.manager.Initialize(rc.root.Clock().Time); err != nil {
		return err
	}

	for rc.root.Clock().Time < tInterv {
		if err := rc.step(tInterv); err != nil {
			_ = rc.root.Exit()
			_ = rc.manager.Exit(rc.root.Clock().Time)
			return err
		}
	}

	if err := rc.root.Exit(); err != nil {
		return err
	}
	return rc.manager.Exit(rc.root.Clock().Time)
}

func (rc *Coordinator) step(tInterv float64) error {
	// Step 1: nothing can ever happen again.
	if rc.root.TimeNext() == model.Infinity && !rc.manager.HasLiveInputHandlers() {
		rc.forceStop(tInterv)
		return nil
	}

	// Step 2.
	target := math.Min(tInterv, rc.root.TimeNext())
	reached, events, err := rc.manager.Sleep(target)
	if err != nil {
		return err
	}

	// Step 3.
	for _, ev := range events {
		port := rc.root.Coupled().GetInPort(ev.Port)
		if port == nil {
			rc.logger.Warn("rt: dropping event for unknown input port", "port", ev.Port)
			continue
		}
		if err := port.Add(ev.Value); err != nil {
			rc.logger.Warn("rt: dropping event with wrong port type", "port", ev.Port, "error", err)
		}
	}

	// Step 4.
	rc.root.Clock().Time = reached
	if rc.root.Clock().Time == rc.root.TimeNext() {
		if err := rc.root.Lambda(); err != nil {
			return err
		}
	}
	if err := rc.root.Delta(); err != nil {
		return err
	}

	// Step 5.
	for _, port := range rc.root.Coupled().OutPorts() {
		if values := port.IterateValues(); len(values) > 0 {
			rc.manager.OutputMessages(port.Name(), values)
		}
	}

	// Step 6.
	if err := rc.root.TriggerTransducers(rc.root.Clock().Time); err != nil {
		return err
	}
	rc.root.Clear()
	return nil
}

// forceStop jumps the clock straight to tInterv when nothing can ever
// happen again, so the outer Run loop's condition terminates cleanly.
func (rc *Coordinator) forceStop(tInterv float64) {
	rc.root.Clock().Time = tInterv
}
