package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultThresholds(t *testing.T) {
	th := DefaultThresholds()

	assert.Equal(t, 70.0, th.CPU.Warn)
	assert.Equal(t, 85.0, th.CPU.Crit)
	assert.Equal(t, 75.0, th.Memory.Warn)
	assert.Equal(t, 90.0, th.Memory.Crit)
	assert.Equal(t, 80.0, th.Disk.Warn)
	assert.Equal(t, 90.0, th.Disk.Crit)
}

func TestLoadPairScalesWithCores(t *testing.T) {
	th := DefaultThresholds()

	pair := th.LoadPair(4)
	assert.InDelta(t, 2.80, pair.Warn, 1e-9)
	assert.InDelta(t, 6.00, pair.Crit, 1e-9)

	pair = th.LoadPair(1)
	assert.InDelta(t, 0.7, pair.Warn, 1e-9)
	assert.InDelta(t, 1.5, pair.Crit, 1e-9)
}

func TestLoadPairClampsZeroCores(t *testing.T) {
	th := DefaultThresholds()

	// An unreadable core count is treated as a single core, never as
	// zero-width thresholds.
	assert.Equal(t, th.LoadPair(1), th.LoadPair(0))
	assert.Equal(t, th.LoadPair(1), th.LoadPair(-3))
}
