// Package checked provides overflow-checked size arithmetic for the factor
// library.
//
// Level and combination counts are derived from caller-supplied data, so any
// product or cast computed from them can exceed the chosen code type or the
// platform's int. Every function in this package reports failure through an
// error instead of wrapping around silently.
package checked

import (
	"math"
	"math/bits"
	"unsafe"

	"golang.org/x/exp/constraints"

	"github.com/arloliu/factor/errs"
)

// maxValue returns the largest value representable by T, widened to uint64.
func maxValue[T constraints.Integer]() uint64 {
	var zero T
	bitSize := uint(unsafe.Sizeof(zero)) * 8
	if ^zero < zero { // ^0 is -1 for signed types
		return uint64(1)<<(bitSize-1) - 1
	}
	if bitSize == 64 {
		return math.MaxUint64
	}

	return uint64(1)<<bitSize - 1
}

// Cast converts v to the integer type To.
//
// Negative values and values above To's upper bound both fail with
// errs.ErrSizeOverflow; counts are never negative in this library, so a
// negative input is treated as unrepresentable rather than sign-extended.
func Cast[To, From constraints.Integer](v From) (To, error) {
	if v < 0 || uint64(v) > maxValue[To]() {
		return 0, errs.ErrSizeOverflow
	}

	return To(v), nil
}

// Mul computes a*b, failing with errs.ErrSizeOverflow when the product does
// not fit in T. Both operands must be non-negative.
func Mul[T constraints.Integer](a, b T) (T, error) {
	if a < 0 || b < 0 {
		return 0, errs.ErrSizeOverflow
	}

	hi, lo := bits.Mul64(uint64(a), uint64(b))
	if hi != 0 || lo > maxValue[T]() {
		return 0, errs.ErrSizeOverflow
	}

	return T(lo), nil
}

// Slice allocates a slice of exactly n elements of type T, failing cleanly
// when n cannot be represented as a Go slice length.
func Slice[T any, N constraints.Integer](n N) ([]T, error) {
	size, err := Cast[int](n)
	if err != nil {
		return nil, err
	}

	return make([]T, size), nil
}
