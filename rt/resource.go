package rt

import (
	"github.com/shirou/gopsutil/cpu"
)

// resourceSampler reports the host's CPU load, sampled via gopsutil. It
// is consulted only when a Sleep call's drift exceeds max_jitter, to
// give the diagnostic a plausible root cause (host contention) rather
// than just the bare drift number.
type resourceSampler struct {
	percent func() (float64, error)
}

func newResourceSampler() *resourceSampler {
	return &resourceSampler{percent: sampleCPUPercent}
}

func sampleCPUPercent() (float64, error) {
	percents, err := cpu.Percent(0, false)
	if err != nil {
		return 0, err
	}
	if len(percents) == 0 {
		return 0, nil
	}
	return percents[0], nil
}
