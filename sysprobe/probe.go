// Package sysprobe reads system-wide CPU and memory usage through gopsutil.
package sysprobe

import (
	"log/slog"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// For testing purpose
var (
	cpuPercent    = cpu.Percent
	virtualMemory = mem.VirtualMemory
)

// System is a telemetry.ResourceProbe for the host machine.
// A failed refresh keeps the previous reading.
type System struct {
	logger *slog.Logger

	cpuUsage    float64
	usedMemory  uint64
	totalMemory uint64
}

// New creates a probe with zero readings. Pass nil to log to slog.Default().
func New(logger *slog.Logger) *System {
	if logger == nil {
		logger = slog.Default()
	}
	return &System{logger: logger}
}

// RefreshCPU samples global CPU usage since the previous call.
// The first call after process start reports 0.
func (s *System) RefreshCPU() {
	pcts, err := cpuPercent(0, false)
	if err != nil {
		s.logger.Debug("cpu usage refresh failed", "error", err)
		return
	}
	if len(pcts) == 0 {
		return
	}
	s.cpuUsage = pcts[0]
}

// RefreshMemory samples used and total physical memory.
func (s *System) RefreshMemory() {
	vm, err := virtualMemory()
	if err != nil || vm == nil {
		s.logger.Debug("memory refresh failed", "error", err)
		return
	}
	s.usedMemory = vm.Used
	s.totalMemory = vm.Total
}

// CPUUsage returns global CPU usage in percent.
func (s *System) CPUUsage() float64 {
	return s.cpuUsage
}

// UsedMemory returns used physical memory in bytes.
func (s *System) UsedMemory() uint64 {
	return s.usedMemory
}

// TotalMemory returns total physical memory in bytes.
func (s *System) TotalMemory() uint64 {
	return s.totalMemory
}
