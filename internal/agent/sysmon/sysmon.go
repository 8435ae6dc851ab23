// Package sysmon samples host resource utilization and identity for the
// agent's usage reports.
package sysmon

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/user"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Sampler reads CPU and RAM utilization. The CPU measurement blocks for the
// configured window, which bounds the minimum achievable polling cadence.
type Sampler struct {
	cpuWindow time.Duration
}

// NewSampler creates a Sampler with the given CPU measurement window.
func NewSampler(cpuWindow time.Duration) *Sampler {
	return &Sampler{cpuWindow: cpuWindow}
}

// Sample returns overall CPU percent (measured over the sample window) and
// RAM used percent.
func (s *Sampler) Sample(ctx context.Context) (cpuPct, ramPct float64, err error) {
	percents, err := cpu.PercentWithContext(ctx, s.cpuWindow, false)
	if err != nil {
		return 0, 0, fmt.Errorf("cpu sample: %w", err)
	}
	if len(percents) > 0 {
		cpuPct = percents[0]
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return cpuPct, 0, fmt.Errorf("memory sample: %w", err)
	}
	return cpuPct, vm.UsedPercent, nil
}

// Identity returns the workstation's IP address and login user name.
// Failures degrade to loopback / "unknown" so a tick is never lost to a
// naming problem.
func Identity() (ip, userName string) {
	ip = "127.0.0.1"
	if host, err := os.Hostname(); err == nil {
		if addrs, err := net.LookupHost(host); err == nil && len(addrs) > 0 {
			ip = addrs[0]
		}
	}

	userName = "unknown"
	if u, err := user.Current(); err == nil && u.Username != "" {
		userName = u.Username
	}
	return ip, userName
}
