package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rawwerks/syshealth/internal/config"
	"github.com/rawwerks/syshealth/internal/model"
)

// Styles
var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("178")).Bold(true)
	critStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Bold(true)
	unknownStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	legendStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

const unavailable = "N/A"

// RenderReport formats one snapshot plus its classifications as an
// aligned text block. The color flag only decorates the severity
// labels; the textual content is identical either way.
func RenderReport(rep model.Report, th config.Thresholds, color bool) string {
	var b strings.Builder

	header := fmt.Sprintf("System Health Report  %s", rep.Timestamp.UTC().Format("2006-01-02 15:04:05 UTC"))
	b.WriteString(decorate(header, headerStyle, color))
	b.WriteString("\n\n")

	writeLine(&b, "CPU usage", cpuValue(rep.CPU), cpuSeverity(rep.CPU, th), color)
	writeLine(&b, "Memory", memValue(rep.Memory), memSeverity(rep.Memory, th), color)
	writeLine(&b, "Disk (/)", diskValue(rep.Disk), diskSeverity(rep.Disk, th), color)
	writeLine(&b, "Load average", loadValue(rep.Load), loadSeverity(rep.Load, th), color)

	// Uptime has no threshold policy, so no severity column.
	fmt.Fprintf(&b, "  %-14s %s\n", "Uptime", uptimeValue(rep.Uptime))

	b.WriteString("\n")
	legend := "OK: below warning | WARNING: at or above warning | CRITICAL: at or above critical | N/A: source unavailable"
	b.WriteString(decorate(legend, legendStyle, color))
	b.WriteString("\n")
	return b.String()
}

func writeLine(b *strings.Builder, label, value string, sev model.Severity, color bool) {
	fmt.Fprintf(b, "  %-14s %-44s %s\n", label, value, severityLabel(sev, color))
}

// Severity mapping

func cpuSeverity(c *model.CPU, th config.Thresholds) model.Severity {
	var v *float64
	if c != nil {
		v = &c.UtilizationPercent
	}
	return model.ClassifyOptional(v, th.CPU)
}

func memSeverity(m *model.Memory, th config.Thresholds) model.Severity {
	var v *float64
	if m != nil {
		v = &m.UsedPercent
	}
	return model.ClassifyOptional(v, th.Memory)
}

func diskSeverity(d *model.Disk, th config.Thresholds) model.Severity {
	var v *float64
	if d != nil {
		v = &d.UsedPercent
	}
	return model.ClassifyOptional(v, th.Disk)
}

// loadSeverity classifies the 1-minute average against thresholds
// scaled by the sampled core count.
func loadSeverity(l *model.Load, th config.Thresholds) model.Severity {
	if l == nil {
		return model.SeverityUnknown
	}
	return model.Classify(l.Load1, th.LoadPair(l.Cores))
}

// Value columns

func cpuValue(c *model.CPU) string {
	if c == nil {
		return unavailable
	}
	return fmt.Sprintf("%.1f%%", c.UtilizationPercent)
}

func memValue(m *model.Memory) string {
	if m == nil {
		return unavailable
	}
	return fmt.Sprintf("%.1f%% (%s of %s)", m.UsedPercent, humanBytes(m.UsedBytes), humanBytes(m.TotalBytes))
}

func diskValue(d *model.Disk) string {
	if d == nil {
		return unavailable
	}
	return fmt.Sprintf("%.1f%% used (%s of %s, %s free)", d.UsedPercent, d.UsedSize, d.TotalSize, d.AvailableSize)
}

func loadValue(l *model.Load) string {
	if l == nil {
		return unavailable
	}
	return fmt.Sprintf("%.2f %.2f %.2f (%s)", l.Load1, l.Load5, l.Load15, plural(l.Cores, "core"))
}

func uptimeValue(u *model.Uptime) string {
	if u == nil || u.Rendered == "" {
		return unavailable
	}
	return u.Rendered
}

func severityLabel(sev model.Severity, color bool) string {
	label := sev.String()
	if !color {
		return label
	}
	switch sev {
	case model.SeverityOK:
		return okStyle.Render(label)
	case model.SeverityWarning:
		return warnStyle.Render(label)
	case model.SeverityCritical:
		return critStyle.Render(label)
	default:
		return unknownStyle.Render(label)
	}
}

// Helpers

func decorate(s string, style lipgloss.Style, color bool) string {
	if !color {
		return s
	}
	return style.Render(s)
}

func humanBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%dB", b)
	}
	v := float64(b)
	suffixes := "KMGTPE"
	i := -1
	for v >= unit && i < len(suffixes)-1 {
		v /= unit
		i++
	}
	return fmt.Sprintf("%.1f%c", v, suffixes[i])
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
