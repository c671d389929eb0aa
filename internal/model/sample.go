package model

import "time"

// CPU is an instantaneous utilization reading derived from two
// time-spaced snapshots of the cumulative CPU counters.
type CPU struct {
	UtilizationPercent float64 // percent 0-100, one decimal
}

// Memory captures RAM usage in bytes; UsedPercent is derived from
// total minus available, not raw free.
type Memory struct {
	UsedPercent float64
	UsedBytes   uint64
	TotalBytes  uint64
}

// Disk describes capacity of the filesystem backing "/". Sizes are
// human-readable strings ("100G") since the df fallback reports them
// that way and the summary never does arithmetic on them.
type Disk struct {
	UsedPercent   float64
	TotalSize     string
	UsedSize      string
	AvailableSize string
}

// Uptime carries only the rendered duration; no consumer needs more.
type Uptime struct {
	Rendered string
}

// Load holds the three load averages plus the core count the load
// thresholds are derived from.
type Load struct {
	Load1  float64
	Load5  float64
	Load15 float64
	Cores  int
}

// Report is the full snapshot produced once per invocation. A nil
// field means that metric was unavailable from every source; the
// renderer shows it as N/A and nothing else is affected.
type Report struct {
	Timestamp time.Time
	CPU       *CPU
	Memory    *Memory
	Disk      *Disk
	Uptime    *Uptime
	Load      *Load
}

// Severity classifies a reading against its thresholds.
type Severity int

const (
	SeverityOK Severity = iota
	SeverityWarning
	SeverityCritical
	SeverityUnknown
)

func (s Severity) String() string {
	switch s {
	case SeverityOK:
		return "OK"
	case SeverityWarning:
		return "WARNING"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return "N/A"
	}
}

// ThresholdPair is the (warning, critical) boundary for one metric.
type ThresholdPair struct {
	Warn float64
	Crit float64
}

// Classify maps a reading to a severity. Boundaries are inclusive: a
// value exactly at a threshold lands in that tier. An unavailable
// reading is a nil sample at the call site and maps to
// SeverityUnknown there; Classify only ever sees real numbers.
func Classify(value float64, t ThresholdPair) Severity {
	switch {
	case value >= t.Crit:
		return SeverityCritical
	case value >= t.Warn:
		return SeverityWarning
	default:
		return SeverityOK
	}
}

// ClassifyOptional is Classify for readings that may be absent: a nil
// value is SeverityUnknown regardless of thresholds.
func ClassifyOptional(value *float64, t ThresholdPair) Severity {
	if value == nil {
		return SeverityUnknown
	}
	return Classify(*value, t)
}
