package telemetry

// ResourceProbe reports host CPU and memory utilization.
// Readings only change when the matching Refresh method is called.
type ResourceProbe interface {
	RefreshCPU()
	RefreshMemory()

	// CPUUsage returns global CPU utilization in percent (0-100).
	CPUUsage() float64
	UsedMemory() uint64
	TotalMemory() uint64
}

// MemoryPercent returns used*100/total using integer arithmetic.
// Returns 0 if total is 0.
func MemoryPercent(used, total uint64) uint64 {
	if total == 0 {
		return 0
	}
	return used * 100 / total
}
