package ui

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rawwerks/syshealth/internal/config"
	"github.com/rawwerks/syshealth/internal/model"
)

var ansiSeq = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func fullReport() model.Report {
	return model.Report{
		Timestamp: time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC),
		CPU:       &model.CPU{UtilizationPercent: 43.2},
		Memory:    &model.Memory{UsedPercent: 62.1, UsedBytes: 5 << 30, TotalBytes: 8 << 30},
		Disk:      &model.Disk{UsedPercent: 82.0, TotalSize: "100G", UsedSize: "80G", AvailableSize: "18G"},
		Uptime:    &model.Uptime{Rendered: "3 days, 4 hours"},
		Load:      &model.Load{Load1: 1.20, Load5: 1.05, Load15: 0.98, Cores: 4},
	}
}

func TestRenderReportFull(t *testing.T) {
	out := RenderReport(fullReport(), config.DefaultThresholds(), false)

	assert.Contains(t, out, "System Health Report  2024-05-01 12:30:00 UTC")
	assert.Contains(t, out, "43.2%")
	assert.Contains(t, out, "62.1% (5.0G of 8.0G)")
	assert.Contains(t, out, "82.0% used (80G of 100G, 18G free)")
	assert.Contains(t, out, "1.20 1.05 0.98 (4 cores)")
	assert.Contains(t, out, "3 days, 4 hours")
	assert.Contains(t, out, "N/A: source unavailable")
}

func TestRenderReportSeverities(t *testing.T) {
	rep := fullReport()
	out := RenderReport(rep, config.DefaultThresholds(), false)

	// 43.2% CPU and 62.1% memory are OK; 82% disk is past its 80%
	// warning; load 1.20 on 4 cores is under 2.8.
	lines := strings.Split(out, "\n")
	require.Greater(t, len(lines), 6)
	assert.Regexp(t, `CPU usage.*OK$`, lines[2])
	assert.Regexp(t, `Memory.*OK$`, lines[3])
	assert.Regexp(t, `Disk \(/\).*WARNING$`, lines[4])
	assert.Regexp(t, `Load average.*OK$`, lines[5])
	assert.NotRegexp(t, `Uptime.*(OK|WARNING|CRITICAL)`, lines[6])
}

func TestRenderReportAllUnavailable(t *testing.T) {
	rep := model.Report{Timestamp: time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)}
	out := RenderReport(rep, config.DefaultThresholds(), false)

	for _, label := range []string{"CPU usage", "Memory", "Disk (/)", "Load average", "Uptime"} {
		assert.Contains(t, out, label)
	}
	// Two per classified line, one on the uptime line, one in the legend.
	assert.Equal(t, 10, strings.Count(out, "N/A"))
	assert.Contains(t, out, "System Health Report")
	assert.Contains(t, out, "N/A: source unavailable")
}

func TestRenderReportColorOnlyDecorates(t *testing.T) {
	th := config.DefaultThresholds()
	rep := fullReport()

	plain := RenderReport(rep, th, false)
	colored := RenderReport(rep, th, true)

	assert.NotContains(t, plain, "\x1b[", "plain output must carry no escape sequences")
	assert.Equal(t, plain, ansiSeq.ReplaceAllString(colored, ""),
		"color must never change textual content")
}

func TestRenderReportLoadThresholdsScale(t *testing.T) {
	th := config.DefaultThresholds()
	rep := fullReport()

	// 3.0 is critical on a single core (crit 1.5) but OK on 8 (warn 5.6).
	rep.Load = &model.Load{Load1: 3.0, Cores: 1}
	assert.Regexp(t, `Load average.*CRITICAL`, RenderReport(rep, th, false))

	rep.Load = &model.Load{Load1: 3.0, Cores: 8}
	assert.Regexp(t, `Load average.*OK`, RenderReport(rep, th, false))
}

func TestExplainTextStatic(t *testing.T) {
	first := ExplainText()
	second := ExplainText()
	assert.Equal(t, first, second)

	for _, want := range []string{"CPU usage", "Memory", "Disk (/)", "Load average", "Uptime", "70%", "1.5 per core"} {
		assert.Contains(t, first, want)
	}
}
