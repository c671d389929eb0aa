package sampler

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/rawwerks/syshealth/internal/model"
)

// cmdTimeout bounds every fallback command so a hung utility cannot
// stall the report.
const cmdTimeout = 2 * time.Second

func runCmd(ctx context.Context, name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, cmdTimeout)
	defer cancel()
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if ctx.Err() == context.DeadlineExceeded {
		return "", ctx.Err()
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return string(out), nil
}

// parseTopIdle extracts the idle percentage from top's aggregate CPU
// line. Both spellings are handled:
//
//	%Cpu(s):  5.9 us,  2.0 sy, ..., 87.9 id, ...
//	Cpu(s):  5.9%us,  2.0%sy, ..., 87.9%id, ...
func parseTopIdle(out string) (float64, error) {
	for _, line := range strings.Split(out, "\n") {
		if !strings.Contains(line, "Cpu(s)") {
			continue
		}
		if _, rest, ok := strings.Cut(line, ":"); ok {
			line = rest
		}
		for _, seg := range strings.Split(line, ",") {
			seg = strings.TrimSpace(seg)
			if !strings.HasSuffix(seg, "id") {
				continue
			}
			seg = strings.TrimSuffix(seg, "id")
			idle, err := parseFloat(seg)
			if err != nil {
				return 0, err
			}
			return idle, nil
		}
	}
	return 0, fmt.Errorf("no Cpu(s) idle field in top output")
}

// parseFreeMem reads the Mem: row of free(1): total and used in KiB.
func parseFreeMem(out string) (totalKB, usedKB uint64, err error) {
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 3 || fields[0] != "Mem:" {
			continue
		}
		totalKB, err = strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return 0, 0, err
		}
		usedKB, err = strconv.ParseUint(fields[2], 10, 64)
		if err != nil {
			return 0, 0, err
		}
		if usedKB > totalKB {
			return 0, 0, fmt.Errorf("free reports used > total")
		}
		return totalKB, usedKB, nil
	}
	return 0, 0, fmt.Errorf("no Mem: row in free output")
}

// parseDfFields reads `df --output=pcent,size,used,avail` data lines:
// the percent leads and the three sizes follow.
func parseDfFields(out string) (*model.Disk, error) {
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}
		pcent, err := parseFloat(fields[0])
		if err != nil {
			continue // header row
		}
		return &model.Disk{
			UsedPercent:   pcent,
			TotalSize:     fields[1],
			UsedSize:      fields[2],
			AvailableSize: fields[3],
		}, nil
	}
	return nil, fmt.Errorf("no usable data line in df output")
}

// parseDfDefault reads the default `df -h` format positionally:
// Filesystem Size Used Avail Use% Mounted.
func parseDfDefault(out string) (*model.Disk, error) {
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 6 || !strings.HasSuffix(fields[4], "%") {
			continue
		}
		pcent, err := parseFloat(fields[4])
		if err != nil {
			continue
		}
		return &model.Disk{
			UsedPercent:   pcent,
			TotalSize:     fields[1],
			UsedSize:      fields[2],
			AvailableSize: fields[3],
		}, nil
	}
	return nil, fmt.Errorf("no usable data line in df output")
}

// parsePrettyUptime normalizes `uptime -p` output ("up 3 weeks, 2
// days") by stripping the leading "up".
func parsePrettyUptime(out string) string {
	out = strings.TrimSpace(out)
	out = strings.TrimPrefix(out, "up")
	return strings.TrimSpace(out)
}

// formatUptime renders raw seconds since boot as days/hours/minutes,
// truncating rather than rounding up.
func formatUptime(secs uint64) string {
	days := secs / 86400
	hours := secs % 86400 / 3600
	minutes := secs % 3600 / 60

	var parts []string
	if days > 0 {
		parts = append(parts, plural(days, "day"))
	}
	if hours > 0 {
		parts = append(parts, plural(hours, "hour"))
	}
	if minutes > 0 {
		parts = append(parts, plural(minutes, "minute"))
	}
	if len(parts) == 0 {
		return "0 minutes"
	}
	return strings.Join(parts, ", ")
}

// parseLoadAverages pulls the three figures out of the "load
// average:" tail of uptime(1). Comma and space separation both occur
// in the wild.
func parseLoadAverages(out string) (l1, l5, l15 float64, err error) {
	idx := strings.LastIndex(out, "load average")
	if idx < 0 {
		return 0, 0, 0, fmt.Errorf("no load average segment in uptime output")
	}
	tail := out[idx:]
	if _, rest, ok := strings.Cut(tail, ":"); ok {
		tail = rest
	}
	fields := strings.Fields(strings.ReplaceAll(tail, ",", " "))
	if len(fields) < 3 {
		return 0, 0, 0, fmt.Errorf("malformed load average segment: %q", tail)
	}
	vals := make([]float64, 3)
	for i := 0; i < 3; i++ {
		vals[i], err = parseFloat(fields[i])
		if err != nil {
			return 0, 0, 0, err
		}
	}
	return vals[0], vals[1], vals[2], nil
}

// Helpers

func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "%")
	return strconv.ParseFloat(s, 64)
}

func plural(n uint64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// humanSize formats bytes the way df -h does, with one binary-unit
// suffix and at most one decimal.
func humanSize(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d", b)
	}
	v := float64(b)
	suffixes := "KMGTPE"
	i := -1
	for v >= unit && i < len(suffixes)-1 {
		v /= unit
		i++
	}
	if v >= 10 {
		return fmt.Sprintf("%.0f%c", v, suffixes[i])
	}
	return fmt.Sprintf("%.1f%c", v, suffixes[i])
}
