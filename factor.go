// Package factor converts categorical observations into compact integer-coded
// factors, in the same sense as the R programming language: each observation
// is replaced by an integer code that indexes into a deduplicated,
// lexicographically sorted table of distinct values (or distinct combinations
// of values, when several variables are combined). Downstream grouping, joins
// and tabulation can then work on integer comparisons instead of value
// comparisons.
//
// # Core Operations
//
//   - Factorize: one categorical variable to sorted unique levels plus codes
//   - CombineObserved: several variables to the sorted table of combinations
//     actually present in the data, plus codes
//   - CombineFull: several variables to the full Cartesian product of their
//     declared level spaces, including combinations never observed, with
//     codes computed by a mixed-radix positional formula
//   - Counts: per-level occupancy of a code slice
//
// # Basic Usage
//
// Factorizing a single variable:
//
//	values := []int{10, 30, 20, 10}
//	codes := make([]uint32, len(values))
//	levels, _ := factor.Factorize(values, codes)
//	// levels = [10, 20, 30], codes = [0, 2, 1, 0]
//
// Combining two variables into one factor over observed combinations:
//
//	v1 := []string{"b", "a", "b", "c"}
//	v2 := []string{"x", "x", "y", "x"}
//	codes := make([]uint32, 4)
//	table, _ := factor.CombineObserved([][]string{v1, v2}, codes)
//	// table[0] = [a, b, b, c], table[1] = [x, x, y, x], codes = [1, 0, 2, 3]
//
// Combining integer variables over their full declared level spaces:
//
//	vars := []factor.Variable[int]{
//	    {Values: []int{0, 1, 0}, Cardinality: 2},
//	    {Values: []int{2, 0, 1}, Cardinality: 3},
//	}
//	codes := make([]uint32, 3)
//	table, _ := factor.CombineFull(vars, codes)
//	// len(table[0]) = 6, codes = [2, 3, 1]
//
// # Guarantees
//
// For every operation, indexing the returned table at codes[i] reconstructs
// observation i's original values exactly. Tables contain no duplicate rows
// and are sorted ascending, lexicographically by the first variable, then the
// second, and so on. In the observed variants every code in [0, M) is used by
// at least one observation; in the full variant codes index into the complete
// Cartesian table whether or not the combination was seen.
//
// All operations are deterministic, allocate their results fresh per call,
// never mutate the input value slices, and are safe to call concurrently
// with other independent calls. When a level or combination count cannot be
// represented by the caller-chosen code type, the call fails with
// errs.ErrCodeRangeExceeded before any result is returned.
package factor

import (
	"cmp"
	"fmt"
	"slices"

	"golang.org/x/exp/constraints"

	"github.com/arloliu/factor/errs"
	"github.com/arloliu/factor/internal/checked"
	"github.com/arloliu/factor/internal/options"
)

// levelEntry pairs a distinct value with the label it received when first
// seen during the discovery scan.
type levelEntry[V any, C any] struct {
	value V
	label C
}

// factorizeConfig holds the tunables of Factorize.
type factorizeConfig struct {
	levelHint int
}

// FactorizeOption configures a Factorize call.
type FactorizeOption = options.Option[*factorizeConfig]

// WithLevelHint pre-sizes the discovery map for callers that know the
// approximate number of distinct values, avoiding rehashing during the scan.
//
// Parameters:
//   - hint: Expected number of distinct values, must be non-negative
//
// Returns:
//   - FactorizeOption: Option to apply to Factorize
func WithLevelHint(hint int) FactorizeOption {
	return options.New(func(c *factorizeConfig) error {
		if hint < 0 {
			return fmt.Errorf("level hint must be non-negative, got %d", hint)
		}
		c.levelHint = hint

		return nil
	})
}

// Factorize converts one categorical variable into a factor.
//
// The value at values[i] is encoded as codes[i], an index into the returned
// level slice, such that levels[codes[i]] == values[i] for every observation.
// Levels are the distinct input values, sorted ascending, so codes form a
// dense range [0, len(levels)) in which every code is used at least once.
//
// The codes slice is caller-owned and must have the same length as values;
// it is overwritten in place. An empty input yields empty levels and leaves
// codes untouched.
//
// Parameters:
//   - values: The categorical variable, one value per observation, read-only
//   - codes: Destination for the factor codes, len(codes) == len(values)
//   - opts: Optional settings such as WithLevelHint
//
// Returns:
//   - []V: The sorted unique levels of values
//   - error: errs.ErrLengthMismatch on slice length disagreement, or
//     errs.ErrCodeRangeExceeded when the level count does not fit in C
func Factorize[V constraints.Ordered, C constraints.Integer](values []V, codes []C, opts ...FactorizeOption) ([]V, error) {
	if len(values) != len(codes) {
		return nil, fmt.Errorf("%w: %d values for %d codes", errs.ErrLengthMismatch, len(values), len(codes))
	}

	var cfg factorizeConfig
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	// Discovery pass: hash values to first-seen labels and write provisional
	// codes as we go. The map lives in a closure so its memory is reclaimable
	// before the output table is populated.
	unique, err := func() ([]levelEntry[V, C], error) {
		mapping := make(map[V]C, cfg.levelHint)
		for i, v := range values {
			if label, ok := mapping[v]; ok {
				codes[i] = label
				continue
			}
			label, err := checked.Cast[C](len(mapping))
			if err != nil {
				return nil, fmt.Errorf("%w: level %d", errs.ErrCodeRangeExceeded, len(mapping))
			}
			mapping[v] = label
			codes[i] = label
		}

		entries := make([]levelEntry[V, C], 0, len(mapping))
		for v, label := range mapping {
			entries = append(entries, levelEntry[V, C]{value: v, label: label})
		}

		return entries, nil
	}()
	if err != nil {
		return nil, err
	}

	// Hashing discovers uniques in O(n) but cannot order them; the sorted
	// output order is established here, together with the remapping from
	// first-seen labels to sorted positions.
	slices.SortFunc(unique, func(a, b levelEntry[V, C]) int {
		return cmp.Compare(a.value, b.value)
	})

	levels := make([]V, len(unique))
	remapping := make([]C, len(unique))
	for u, e := range unique {
		levels[u] = e.value
		remapping[e.label] = C(u)
	}

	for i := range codes {
		codes[i] = remapping[codes[i]]
	}

	return levels, nil
}
