package rt

import (
	"errors"
	"fmt"
)

// ErrNegativeMaxJitter, ErrNonPositiveTimeScale and ErrNegativeEventWindow
// are rejected at manager construction (spec.md §7 "Real-time errors").
var (
	ErrNegativeMaxJitter    = errors.New("rt: max_jitter must be non-negative")
	ErrNonPositiveTimeScale = errors.New("rt: time_scale must be > 0")
	ErrNegativeEventWindow  = errors.New("rt: event_window must be >= 0")
)

// JitterExceededError is returned by Manager.Sleep when the observed
// drift between the intended and actual wake time exceeds max_jitter
// (spec.md §7 "max_jitter exceeded - fatal, unwinds the whole
// simulation"). CPULoadPercent is best-effort host CPU utilization at
// the moment the bound was exceeded (0 if the sample failed), offered
// as a diagnostic for whether the drift was caused by host contention.
type JitterExceededError struct {
	Drift          float64
	MaxJitter      float64
	CPULoadPercent float64
}

func (e *JitterExceededError) Error() string {
	return fmt.Sprintf("rt: jitter %.6fs exceeds max_jitter %.6fs (host cpu %.1f%%)",
		e.Drift, e.MaxJitter, e.CPULoadPercent)
}
