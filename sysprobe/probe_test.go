package sysprobe

import (
	"errors"
	"testing"
	"time"

	"github.com/shirou/gopsutil/v4/mem"
	"github.com/stretchr/testify/assert"

	"github.com/pthm-cable/minifps/telemetry"
)

var _ telemetry.ResourceProbe = (*System)(nil)

func stubProbes(t *testing.T, pct func(time.Duration, bool) ([]float64, error), vm func() (*mem.VirtualMemoryStat, error)) {
	t.Helper()
	savedCPU, savedMem := cpuPercent, virtualMemory
	t.Cleanup(func() {
		cpuPercent, virtualMemory = savedCPU, savedMem
	})
	cpuPercent, virtualMemory = pct, vm
}

func TestSystem_Refresh(t *testing.T) {
	var gotInterval time.Duration = -1
	var gotPerCPU bool
	stubProbes(t,
		func(interval time.Duration, perCPU bool) ([]float64, error) {
			gotInterval, gotPerCPU = interval, perCPU
			return []float64{42.7}, nil
		},
		func() (*mem.VirtualMemoryStat, error) {
			return &mem.VirtualMemoryStat{Used: 50, Total: 200}, nil
		},
	)

	s := New(nil)
	assert.Zero(t, s.CPUUsage(), "no reading before refresh")

	s.RefreshCPU()
	s.RefreshMemory()

	assert.Equal(t, time.Duration(0), gotInterval, "must not block for an interval")
	assert.False(t, gotPerCPU)
	assert.Equal(t, 42.7, s.CPUUsage())
	assert.Equal(t, uint64(50), s.UsedMemory())
	assert.Equal(t, uint64(200), s.TotalMemory())
	assert.Equal(t, uint64(25), telemetry.MemoryPercent(s.UsedMemory(), s.TotalMemory()))
}

func TestSystem_FailedRefreshKeepsPreviousReading(t *testing.T) {
	fail := false
	stubProbes(t,
		func(time.Duration, bool) ([]float64, error) {
			if fail {
				return nil, errors.New("boom")
			}
			return []float64{10}, nil
		},
		func() (*mem.VirtualMemoryStat, error) {
			if fail {
				return nil, errors.New("boom")
			}
			return &mem.VirtualMemoryStat{Used: 1, Total: 4}, nil
		},
	)

	s := New(nil)
	s.RefreshCPU()
	s.RefreshMemory()

	fail = true
	s.RefreshCPU()
	s.RefreshMemory()

	assert.Equal(t, 10.0, s.CPUUsage())
	assert.Equal(t, uint64(1), s.UsedMemory())
	assert.Equal(t, uint64(4), s.TotalMemory())
}

func TestSystem_EmptyCPUResult(t *testing.T) {
	stubProbes(t,
		func(time.Duration, bool) ([]float64, error) { return nil, nil },
		func() (*mem.VirtualMemoryStat, error) { return nil, nil },
	)

	s := New(nil)
	assert.NotPanics(t, func() {
		s.RefreshCPU()
		s.RefreshMemory()
	})
	assert.Zero(t, s.CPUUsage())
	assert.Zero(t, s.TotalMemory())
}
