package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	pair := ThresholdPair{Warn: 70, Crit: 85}

	tests := []struct {
		name  string
		value float64
		want  Severity
	}{
		{"well below warning", 10, SeverityOK},
		{"just below warning", 69.999, SeverityOK},
		{"exactly at warning", 70, SeverityWarning},
		{"between thresholds", 80, SeverityWarning},
		{"just below critical", 84.999, SeverityWarning},
		{"exactly at critical", 85, SeverityCritical},
		{"above critical", 99.9, SeverityCritical},
		{"zero", 0, SeverityOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.value, pair))
		})
	}
}

func TestClassifyMonotonic(t *testing.T) {
	pair := ThresholdPair{Warn: 50, Crit: 90}
	prev := SeverityOK
	for v := 0.0; v <= 100; v += 0.5 {
		got := Classify(v, pair)
		assert.GreaterOrEqual(t, int(got), int(prev), "severity regressed at %v", v)
		prev = got
	}
}

func TestClassifyOptional(t *testing.T) {
	pair := ThresholdPair{Warn: 70, Crit: 85}

	assert.Equal(t, SeverityUnknown, ClassifyOptional(nil, pair))
	assert.Equal(t, SeverityUnknown, ClassifyOptional(nil, ThresholdPair{}))

	v := 90.0
	assert.Equal(t, SeverityCritical, ClassifyOptional(&v, pair))
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "OK", SeverityOK.String())
	assert.Equal(t, "WARNING", SeverityWarning.String())
	assert.Equal(t, "CRITICAL", SeverityCritical.String())
	assert.Equal(t, "N/A", SeverityUnknown.String())
}
