package ui

// ExplainText returns the static description of each metric. It is a
// fixed block of prose: nothing here samples the host, so the output
// is identical whatever state the machine is in.
func ExplainText() string {
	return `What the health report measures

CPU usage
  The share of CPU time spent on anything other than idling, measured
  across a short interval between two reads of the kernel's cumulative
  CPU counters. Sustained high utilization means processes are
  competing for processor time and latency will suffer.
  Thresholds: warning at 70%, critical at 85%. Below 70% a host still
  has headroom for bursts; above 85% scheduling delay becomes likely.

Memory
  Used memory as a share of total, where "used" is total minus
  available memory. Available counts reclaimable cache and buffers,
  so a box full of page cache is not reported as starved. When truly
  available memory runs out the kernel starts swapping or killing
  processes.
  Thresholds: warning at 75%, critical at 90%.

Disk (/)
  Capacity consumed on the filesystem backing the root path. A full
  root filesystem breaks logging, package upgrades and often the
  services themselves; many daemons misbehave long before 100%.
  Thresholds: warning at 80%, critical at 90%.

Load average
  The smoothed number of runnable (and uninterruptibly waiting)
  processes over the last 1, 5 and 15 minutes. Load is only
  meaningful relative to the number of logical cores: a load of 4 is
  idle-ish on 16 cores and saturation on 2.
  Thresholds scale with the core count: warning at 0.7 per core,
  critical at 1.5 per core.

Uptime
  Time elapsed since the last boot. Informational only: it has no
  thresholds, but an unexpectedly short uptime is often the first
  hint of a crash or an unplanned reboot.
`
}
