package sampler

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
	"go.uber.org/zap"

	"github.com/rawwerks/syshealth/internal/model"
)

// strategy produces one sample or reports that its source is
// unavailable. Each metric owns an ordered chain of these; the first
// success wins and a fully exhausted chain marks the metric N/A.
type strategy[T any] func(ctx context.Context) (*T, error)

// Sampler reads the five host metrics, primary source first and
// command-output fallback second. Unavailability never escapes a
// chain as an error: the report field just stays nil.
type Sampler struct {
	// CPUInterval is the gap between the two cumulative counter
	// reads; the one deliberate delay in a run.
	CPUInterval time.Duration

	logger *zap.Logger

	cpuChain    []strategy[model.CPU]
	memChain    []strategy[model.Memory]
	diskChain   []strategy[model.Disk]
	uptimeChain []strategy[model.Uptime]
	loadChain   []strategy[model.Load]
	coreCount   func(ctx context.Context) (int, error)
}

func New(logger *zap.Logger) *Sampler {
	s := &Sampler{
		CPUInterval: 200 * time.Millisecond,
		logger:      logger,
	}
	s.cpuChain = []strategy[model.CPU]{s.cpuFromCounters, s.cpuFromTop}
	s.memChain = []strategy[model.Memory]{s.memFromVirtualMemory, s.memFromFree}
	s.diskChain = []strategy[model.Disk]{s.diskFromUsage, s.diskFromDfOutput, s.diskFromDfPlain}
	s.uptimeChain = []strategy[model.Uptime]{s.uptimeFromPretty, s.uptimeFromSeconds}
	s.loadChain = []strategy[model.Load]{s.loadFromAvg, s.loadFromUptime}
	s.coreCount = func(ctx context.Context) (int, error) {
		return cpu.CountsWithContext(ctx, true)
	}
	return s
}

// Sample runs all five chains in sequence and returns whatever could
// be read. It never fails as a whole; each metric degrades alone.
func (s *Sampler) Sample(ctx context.Context) model.Report {
	rep := model.Report{Timestamp: time.Now()}
	rep.CPU = runChain(ctx, s.logger, "cpu", s.cpuChain)
	rep.Memory = runChain(ctx, s.logger, "memory", s.memChain)
	rep.Disk = runChain(ctx, s.logger, "disk", s.diskChain)
	rep.Uptime = runChain(ctx, s.logger, "uptime", s.uptimeChain)
	rep.Load = runChain(ctx, s.logger, "load", s.loadChain)
	if rep.Load != nil {
		rep.Load.Cores = s.cores(ctx)
	}
	return rep
}

func runChain[T any](ctx context.Context, logger *zap.Logger, metric string, chain []strategy[T]) *T {
	for i, try := range chain {
		sample, err := try(ctx)
		if err == nil && sample != nil {
			if i > 0 {
				logger.Debug("metric read via fallback",
					zap.String("metric", metric),
					zap.Int("strategy", i))
			}
			return sample
		}
		logger.Debug("metric source failed",
			zap.String("metric", metric),
			zap.Int("strategy", i),
			zap.Error(err))
	}
	logger.Warn("metric unavailable", zap.String("metric", metric))
	return nil
}

// cores never fails the report; a host with an unreadable CPU count
// is treated as single-core for threshold purposes.
func (s *Sampler) cores(ctx context.Context) int {
	n, err := s.coreCount(ctx)
	if err != nil || n < 1 {
		s.logger.Debug("core count unavailable, assuming 1", zap.Error(err))
		return 1
	}
	return n
}

// CPU

func (s *Sampler) cpuFromCounters(ctx context.Context) (*model.CPU, error) {
	first, err := cpu.TimesWithContext(ctx, false)
	if err != nil {
		return nil, err
	}
	if len(first) == 0 {
		return nil, fmt.Errorf("no aggregate cpu times")
	}
	select {
	case <-time.After(s.CPUInterval):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	second, err := cpu.TimesWithContext(ctx, false)
	if err != nil {
		return nil, err
	}
	if len(second) == 0 {
		return nil, fmt.Errorf("no aggregate cpu times")
	}
	util := utilizationFromDeltas(
		counterTotal(second[0])-counterTotal(first[0]),
		second[0].Idle-first[0].Idle)
	return &model.CPU{UtilizationPercent: util}, nil
}

func (s *Sampler) cpuFromTop(ctx context.Context) (*model.CPU, error) {
	out, err := runCmd(ctx, "top", "-bn1")
	if err != nil {
		return nil, err
	}
	idle, err := parseTopIdle(out)
	if err != nil {
		return nil, err
	}
	return &model.CPU{UtilizationPercent: round1(100 - idle)}, nil
}

// counterTotal sums the eight jiffy counters that make up elapsed CPU
// time: user, nice, system, idle, iowait, irq, softirq, steal.
func counterTotal(t cpu.TimesStat) float64 {
	return t.User + t.Nice + t.System + t.Idle + t.Iowait + t.Irq + t.Softirq + t.Steal
}

// utilizationFromDeltas turns two counter deltas into a busy
// percentage. A non-positive total delta means no ticks elapsed and
// reads as 0 rather than dividing by it.
func utilizationFromDeltas(deltaTotal, deltaIdle float64) float64 {
	if deltaTotal <= 0 {
		return 0.0
	}
	return round1((1 - deltaIdle/deltaTotal) * 100)
}

// Memory

func (s *Sampler) memFromVirtualMemory(ctx context.Context) (*model.Memory, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, err
	}
	available := vm.Available
	if available == 0 {
		// Kernels without MemAvailable: approximate what is
		// reclaimable instead of counting cache as used.
		available = vm.Free + vm.Buffers + vm.Cached
	}
	return memorySample(vm.Total, available)
}

func (s *Sampler) memFromFree(ctx context.Context) (*model.Memory, error) {
	out, err := runCmd(ctx, "free")
	if err != nil {
		return nil, err
	}
	totalKB, usedKB, err := parseFreeMem(out)
	if err != nil {
		return nil, err
	}
	return memorySample(totalKB*1024, (totalKB-usedKB)*1024)
}

// memorySample derives used bytes and percent from total and
// available. Zero or inconsistent totals read as unavailable.
func memorySample(totalBytes, availableBytes uint64) (*model.Memory, error) {
	if totalBytes == 0 || availableBytes > totalBytes {
		return nil, fmt.Errorf("implausible memory figures: total=%d available=%d", totalBytes, availableBytes)
	}
	used := totalBytes - availableBytes
	return &model.Memory{
		UsedPercent: round1(float64(used) / float64(totalBytes) * 100),
		UsedBytes:   used,
		TotalBytes:  totalBytes,
	}, nil
}

// Disk

func (s *Sampler) diskFromUsage(ctx context.Context) (*model.Disk, error) {
	du, err := disk.UsageWithContext(ctx, "/")
	if err != nil {
		return nil, err
	}
	if du.Total == 0 {
		return nil, fmt.Errorf("zero-sized root filesystem")
	}
	return &model.Disk{
		UsedPercent:   round1(du.UsedPercent),
		TotalSize:     humanSize(du.Total),
		UsedSize:      humanSize(du.Used),
		AvailableSize: humanSize(du.Free),
	}, nil
}

func (s *Sampler) diskFromDfOutput(ctx context.Context) (*model.Disk, error) {
	out, err := runCmd(ctx, "df", "-h", "--output=pcent,size,used,avail", "/")
	if err != nil {
		return nil, err
	}
	return parseDfFields(out)
}

// diskFromDfPlain covers df builds without --output by reading the
// default format positionally.
func (s *Sampler) diskFromDfPlain(ctx context.Context) (*model.Disk, error) {
	out, err := runCmd(ctx, "df", "-h", "/")
	if err != nil {
		return nil, err
	}
	return parseDfDefault(out)
}

// Uptime

func (s *Sampler) uptimeFromPretty(ctx context.Context) (*model.Uptime, error) {
	out, err := runCmd(ctx, "uptime", "-p")
	if err != nil {
		return nil, err
	}
	rendered := parsePrettyUptime(out)
	if rendered == "" {
		return nil, fmt.Errorf("empty pretty uptime")
	}
	return &model.Uptime{Rendered: rendered}, nil
}

func (s *Sampler) uptimeFromSeconds(ctx context.Context) (*model.Uptime, error) {
	secs, err := host.UptimeWithContext(ctx)
	if err != nil {
		return nil, err
	}
	return &model.Uptime{Rendered: formatUptime(secs)}, nil
}

// Load

func (s *Sampler) loadFromAvg(ctx context.Context) (*model.Load, error) {
	avg, err := load.AvgWithContext(ctx)
	if err != nil {
		return nil, err
	}
	return &model.Load{Load1: avg.Load1, Load5: avg.Load5, Load15: avg.Load15}, nil
}

func (s *Sampler) loadFromUptime(ctx context.Context) (*model.Load, error) {
	out, err := runCmd(ctx, "uptime")
	if err != nil {
		return nil, err
	}
	l1, l5, l15, err := parseLoadAverages(out)
	if err != nil {
		return nil, err
	}
	return &model.Load{Load1: l1, Load5: l5, Load15: l15}, nil
}

// Helpers

func round1(v float64) float64 { return math.Round(v*10) / 10 }
