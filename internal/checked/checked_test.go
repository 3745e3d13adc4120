package checked

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/factor/errs"
)

func TestCast_WithinRange(t *testing.T) {
	v, err := Cast[int8](127)
	require.NoError(t, err)
	require.Equal(t, int8(127), v)

	u, err := Cast[uint16](65535)
	require.NoError(t, err)
	require.Equal(t, uint16(65535), u)
}

func TestCast_Overflow(t *testing.T) {
	_, err := Cast[int8](128)
	require.ErrorIs(t, err, errs.ErrSizeOverflow)

	_, err = Cast[uint8](256)
	require.ErrorIs(t, err, errs.ErrSizeOverflow)

	_, err = Cast[int32](int64(math.MaxInt32) + 1)
	require.ErrorIs(t, err, errs.ErrSizeOverflow)
}

func TestCast_Negative(t *testing.T) {
	_, err := Cast[uint32](-1)
	require.ErrorIs(t, err, errs.ErrSizeOverflow)

	_, err = Cast[int32](-1)
	require.ErrorIs(t, err, errs.ErrSizeOverflow)
}

func TestCast_WideTargets(t *testing.T) {
	v, err := Cast[uint64](int64(math.MaxInt64))
	require.NoError(t, err)
	require.Equal(t, uint64(math.MaxInt64), v)

	w, err := Cast[int64](uint64(math.MaxUint64))
	require.ErrorIs(t, err, errs.ErrSizeOverflow)
	require.Zero(t, w)
}

func TestMul_WithinRange(t *testing.T) {
	v, err := Mul[uint32](1000, 1000)
	require.NoError(t, err)
	require.Equal(t, uint32(1000000), v)

	zero, err := Mul[int16](0, 32767)
	require.NoError(t, err)
	require.Equal(t, int16(0), zero)
}

func TestMul_Overflow(t *testing.T) {
	_, err := Mul[int8](16, 16)
	require.ErrorIs(t, err, errs.ErrSizeOverflow)

	_, err = Mul[uint64](math.MaxUint64, 2)
	require.ErrorIs(t, err, errs.ErrSizeOverflow)

	_, err = Mul[int64](math.MaxInt64, 2)
	require.ErrorIs(t, err, errs.ErrSizeOverflow)
}

func TestMul_Negative(t *testing.T) {
	_, err := Mul[int32](-1, 4)
	require.ErrorIs(t, err, errs.ErrSizeOverflow)
}

func TestSlice_Exact(t *testing.T) {
	s, err := Slice[int](uint8(9))
	require.NoError(t, err)
	require.Len(t, s, 9)
}

func TestSlice_Unrepresentable(t *testing.T) {
	_, err := Slice[byte](uint64(math.MaxUint64))
	require.ErrorIs(t, err, errs.ErrSizeOverflow)

	_, err = Slice[byte](-3)
	require.ErrorIs(t, err, errs.ErrSizeOverflow)
}
