package config

import (
	"fmt"
	"math"

	"github.com/shirou/gopsutil/mem"
)

// MemoryBoundFromAvailable returns a MemoryBound (in bits) equal to the given fraction of the
// memory currently available on this machine.
func MemoryBoundFromAvailable(fraction float64) (int64, error) {
	if math.IsNaN(fraction) || fraction <= 0 || fraction > 1 {
		return 0, ValidationError{
			Param:    "fraction",
			Expected: "in (0, 1]",
			Given:    fmt.Sprintf("%v", fraction),
		}
	}

	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, fmt.Errorf("failed to query available memory: %w", err)
	}

	bits := float64(vm.Available) * 8 * fraction
	if bits >= math.MaxInt64 {
		return math.MaxInt64, nil
	}
	return int64(bits), nil
}
