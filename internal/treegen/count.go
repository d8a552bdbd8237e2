package treegen

import (
	"errors"
	"math"
	"math/bits"
)

const (
	// FanOut is the number of children generated per directory.
	FanOut = 9
	// WarningDepth is the deepest tree generated without asking for confirmation.
	WarningDepth = 5
)

// ErrInvalidDepth is returned for depths below 1.
var ErrInvalidDepth = errors.New("depth must be an integer >= 1")

// levelSum returns 9^0 + 9^1 + ... + 9^(depth-1), the number of directories
// in a tree of the given depth including the root. It saturates at math.MaxUint64.
func levelSum(depth int) uint64 {
	var sum, power uint64 = 0, 1

	for i := 0; i < depth; i++ {
		next, carry := bits.Add64(sum, power, 0)
		if carry != 0 {
			return math.MaxUint64
		}

		sum = next

		hi, lo := bits.Mul64(power, FanOut)
		if hi != 0 {
			power = math.MaxUint64
		} else {
			power = lo
		}
	}

	return sum
}

// FileCount returns the number of files in a tree of the given depth,
// 10 * (9^depth - 1) / 8. Depths below 1 yield 0.
func FileCount(depth int) uint64 {
	dirs := levelSum(depth)

	hi, lo := bits.Mul64(dirs, FanOut+1)
	if hi != 0 {
		return math.MaxUint64
	}

	return lo
}

// DirCount returns the number of directories below the root in a tree of the
// given depth, (9^depth - 1) / 8 - 1. Depths below 1 yield 0.
func DirCount(depth int) uint64 {
	dirs := levelSum(depth)
	if dirs == 0 || dirs == math.MaxUint64 {
		return dirs
	}

	return dirs - 1
}
