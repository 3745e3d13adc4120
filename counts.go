package factor

import (
	"fmt"

	"golang.org/x/exp/constraints"

	"github.com/arloliu/factor/errs"
	"github.com/arloliu/factor/internal/checked"
)

// Counts tabulates how many observations carry each code.
//
// numLevels is the length of the level or combination table the codes index
// into; the result has exactly that length, with counts[c] holding the number
// of occurrences of code c. Codes produced by Factorize or CombineObserved
// yield strictly positive counts everywhere, while CombineFull codes may
// leave unobserved combinations at zero.
//
// Parameters:
//   - codes: Factor codes to tabulate, read-only
//   - numLevels: Length of the table the codes index into
//
// Returns:
//   - []int: Occurrence count per code, length numLevels
//   - error: errs.ErrSizeOverflow for a negative numLevels, or
//     errs.ErrValueOutOfRange when a code falls outside [0, numLevels)
func Counts[C constraints.Integer](codes []C, numLevels int) ([]int, error) {
	counts, err := checked.Slice[int](numLevels)
	if err != nil {
		return nil, fmt.Errorf("%w: %d levels", errs.ErrSizeOverflow, numLevels)
	}

	for i, code := range codes {
		if code < 0 || uint64(code) >= uint64(numLevels) {
			return nil, fmt.Errorf("%w: code %d at observation %d, %d levels", errs.ErrValueOutOfRange, code, i, numLevels)
		}
		counts[code]++
	}

	return counts, nil
}
