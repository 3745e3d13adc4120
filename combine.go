package factor

import (
	"fmt"

	"github.com/google/btree"
	"golang.org/x/exp/constraints"

	"github.com/arloliu/factor/errs"
	"github.com/arloliu/factor/internal/checked"
	"github.com/arloliu/factor/internal/options"
)

// defaultTreeDegree is the branching factor of the ordered map used to
// discover unique combinations. 16 keeps the tree shallow for the level
// counts typical of categorical data without bloating its nodes.
const defaultTreeDegree = 16

// combination keys the ordered discovery map by observation index; the
// variables' raw slices stay the single source of the tuple values.
type combination[C any] struct {
	index int
	label C
}

// combineConfig holds the tunables of CombineObserved.
type combineConfig struct {
	levelHint int
	degree    int
}

// CombineOption configures a CombineObserved call.
type CombineOption = options.Option[*combineConfig]

// WithCombinationHint pre-sizes the single-variable fast path for callers
// that know the approximate number of distinct combinations.
func WithCombinationHint(hint int) CombineOption {
	return options.New(func(c *combineConfig) error {
		if hint < 0 {
			return fmt.Errorf("combination hint must be non-negative, got %d", hint)
		}
		c.levelHint = hint

		return nil
	})
}

// WithTreeDegree overrides the branching factor of the ordered discovery map.
func WithTreeDegree(degree int) CombineOption {
	return options.New(func(c *combineConfig) error {
		if degree < 2 {
			return fmt.Errorf("tree degree must be at least 2, got %d", degree)
		}
		c.degree = degree

		return nil
	})
}

// CombineObserved combines several categorical variables into a single factor
// over the combinations actually present in the data.
//
// Each variables[f] holds variable f's value for every observation, so
// element i across all variables forms observation i's tuple. The returned
// table has one column slice per variable, all of equal length M; row j of
// the table, (table[0][j], table[1][j], ...), is the j-th unique combination.
// Rows are unique and sorted lexicographically by variable 0, then variable
// 1, and so on. codes[i] is the row reconstructing observation i, and every
// row is referenced by at least one code.
//
// With no variables every code is 0 and the table has no columns. With a
// single variable the call is equivalent to Factorize.
//
// Uniqueness is discovered through an ordered map keyed by observation index:
// the comparator dereferences into the raw value slices, so no tuple copies
// are materialized and no combined hash can collide. Insertion costs O(log U)
// per observation for U unique combinations, and walking the map afterward
// yields the table already sorted, with no separate sort pass.
//
// Parameters:
//   - variables: One value slice per variable, each of length len(codes)
//   - codes: Destination for the combined factor codes, overwritten in place
//   - opts: Optional settings such as WithCombinationHint or WithTreeDegree
//
// Returns:
//   - [][]V: The combination table, one sorted column per variable
//   - error: errs.ErrLengthMismatch on slice length disagreement, or
//     errs.ErrCodeRangeExceeded when the combination count does not fit in C
func CombineObserved[V constraints.Ordered, C constraints.Integer](variables [][]V, codes []C, opts ...CombineOption) ([][]V, error) {
	for f, values := range variables {
		if len(values) != len(codes) {
			return nil, fmt.Errorf("%w: variable %d has %d values for %d codes", errs.ErrLengthMismatch, f, len(values), len(codes))
		}
	}

	cfg := combineConfig{degree: defaultTreeDegree}
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	ninputs := len(variables)
	output := make([][]V, ninputs)

	if ninputs == 0 {
		for i := range codes {
			codes[i] = 0
		}

		return output, nil
	}

	if ninputs == 1 {
		levels, err := Factorize(variables[0], codes, WithLevelHint(cfg.levelHint))
		if err != nil {
			return nil, err
		}
		output[0] = levels

		return output, nil
	}

	// The comparator walks the variables until the first one that differs,
	// so map order is tuple order.
	less := func(left, right combination[C]) bool {
		for _, values := range variables {
			if values[left.index] != values[right.index] {
				return values[left.index] < values[right.index]
			}
		}

		return false
	}

	tree := btree.NewG(cfg.degree, less)
	for i := range codes {
		current := combination[C]{index: i}
		if found, ok := tree.Get(current); ok {
			codes[i] = found.label
			continue
		}
		label, err := checked.Cast[C](tree.Len())
		if err != nil {
			return nil, fmt.Errorf("%w: combination %d", errs.ErrCodeRangeExceeded, tree.Len())
		}
		current.label = label
		tree.ReplaceOrInsert(current)
		codes[i] = label
	}

	// The in-order walk is the sort: combinations come out in their final
	// lexicographic order, so the columns fill front to back while the
	// remapping records where each first-seen label ended up.
	nuniq := tree.Len()
	for f := range output {
		output[f] = make([]V, 0, nuniq)
	}
	remapping := make([]C, nuniq)
	next := C(0)
	tree.Ascend(func(item combination[C]) bool {
		for f, values := range variables {
			output[f] = append(output[f], values[item.index])
		}
		remapping[item.label] = next
		next++

		return true
	})

	for i := range codes {
		codes[i] = remapping[codes[i]]
	}

	return output, nil
}
