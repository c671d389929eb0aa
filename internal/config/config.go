package config

import (
	"time"

	"github.com/rawwerks/syshealth/internal/model"
)

// Thresholds is the immutable warning/critical policy handed to the
// renderer. Load has no fixed pair here: its thresholds scale with
// the core count observed at sample time.
type Thresholds struct {
	CPU    model.ThresholdPair
	Memory model.ThresholdPair
	Disk   model.ThresholdPair

	// Load thresholds per core; multiplied by the sampled core count.
	LoadWarnPerCore float64
	LoadCritPerCore float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		CPU:             model.ThresholdPair{Warn: 70, Crit: 85},
		Memory:          model.ThresholdPair{Warn: 75, Crit: 90},
		Disk:            model.ThresholdPair{Warn: 80, Crit: 90},
		LoadWarnPerCore: 0.7,
		LoadCritPerCore: 1.5,
	}
}

// LoadPair derives the load-average thresholds for a host with the
// given number of logical cores.
func (t Thresholds) LoadPair(cores int) model.ThresholdPair {
	if cores < 1 {
		cores = 1
	}
	return model.ThresholdPair{
		Warn: float64(cores) * t.LoadWarnPerCore,
		Crit: float64(cores) * t.LoadCritPerCore,
	}
}

// Options carries runtime presentation and watch-mode settings.
type Options struct {
	Color    bool          // decorate severity labels; never changes text
	Verbose  bool          // debug logging to stderr
	Interval time.Duration // watch-mode refresh interval
}

func DefaultOptions() Options {
	return Options{
		Color:    false,
		Verbose:  false,
		Interval: 2 * time.Second,
	}
}
