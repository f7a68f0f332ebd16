package model

import "math"

// Infinity is the value sigma takes when an atomic has no scheduled
// internal transition.
const Infinity = math.MaxFloat64

// Canonical phase labels. Implementers are free to use any other string
// phase label; these two are only meaningful as the Atomic's starting
// point and the passivate() target.
const (
	PhasePassive = "passive"
	PhaseActive  = "active"
)

// AtomicBehavior is the contract every Atomic implementer provides
// (spec.md §4.1, §6 "Model state interface exposed to the kernel"):
// DeltaInt, DeltaExt and Lambda are mandatory; DeltaCon may be
// overridden, but its default body (called by the implementer's own
// DeltaCon when no special confluent behavior is required) is
// "DeltaInt then DeltaExt(0)" (spec.md §9, Open Question resolution).
type AtomicBehavior interface {
	Component

	// DeltaInt fires when simulation time equals the scheduled next-time
	// and no external input is present.
	DeltaInt()
	// DeltaExt fires when external input arrives before the scheduled
	// time. e is the elapsed time since the last transition.
	DeltaExt(e float64)
	// DeltaCon fires when input arrives exactly at the scheduled time.
	DeltaCon()
	// Lambda computes this cycle's output. It must not mutate state.
	Lambda()
}

// Atomic is the base struct embedded by every leaf behavior component. It
// carries the two DEVS scheduling variables (phase, sigma) and the
// convenience primitives derived from them.
type Atomic struct {
	*Base

	phase string
	sigma float64
}

// NewAtomic creates an Atomic base in the canonical passive phase with
// sigma = +∞.
func NewAtomic(name string) *Atomic {
	return &Atomic{
		Base:  NewBase(name),
		phase: PhasePassive,
		sigma: Infinity,
	}
}

// Phase returns the atomic's current phase label.
func (a *Atomic) Phase() string { return a.phase }

// Sigma returns the atomic's remaining time-to-next-internal-transition.
func (a *Atomic) Sigma() float64 { return a.sigma }

// TA is the time-advance function: it returns sigma.
func (a *Atomic) TA() float64 { return a.sigma }

// HoldIn sets phase and sigma directly.
func (a *Atomic) HoldIn(phase string, sigma float64) {
	a.phase = phase
	a.sigma = sigma
}

// Activate sets phase and sigma = 0, i.e. "fire on the next cycle".
func (a *Atomic) Activate(phase string) {
	a.phase = phase
	a.sigma = 0
}

// ActivateDefault is Activate(PhaseActive).
func (a *Atomic) ActivateDefault() { a.Activate(PhaseActive) }

// Passivate sets phase and sigma = +∞, i.e. "never fire again until
// woken by external input".
func (a *Atomic) Passivate(phase string) {
	a.phase = phase
	a.sigma = Infinity
}

// PassivateDefault is Passivate(PhasePassive).
func (a *Atomic) PassivateDefault() { a.Passivate(PhasePassive) }

// Continue reduces sigma by the elapsed time e.
func (a *Atomic) Continue(e float64) {
	a.sigma -= e
}
