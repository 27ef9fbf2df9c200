package shared

import (
	"math"
	"math/bits"
)

// CeilLog2 returns ceil(log2(x)) computed on integers. CeilLog2(0) and CeilLog2(1) are 0.
func CeilLog2(x uint64) uint64 {
	if x <= 1 {
		return 0
	}
	return uint64(bits.Len64(x - 1))
}

// CeilDiv returns ceil(x / y). y must not be 0.
func CeilDiv(x, y uint64) uint64 {
	q, r := x/y, x%y
	if r != 0 {
		q++
	}
	return q
}

// Pow2 returns 2^n as a float64.
func Pow2(n uint64) float64 {
	return math.Ldexp(1, int(n))
}

// CeilUint64 rounds a non-negative finite float up to the nearest integer.
func CeilUint64(f float64) uint64 {
	return uint64(math.Ceil(f))
}
