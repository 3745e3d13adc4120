package factor

import (
	"fmt"

	"golang.org/x/exp/constraints"

	"github.com/arloliu/factor/errs"
	"github.com/arloliu/factor/internal/checked"
	"github.com/arloliu/factor/internal/options"
)

// Variable pairs one categorical variable's raw values with the total number
// of levels the variable can take. Values are expected to be dense level
// indexes in [0, Cardinality); Cardinality may exceed the largest value that
// was actually observed.
type Variable[V constraints.Integer] struct {
	Values      []V
	Cardinality V
}

// combineFullConfig holds the tunables of CombineFull.
type combineFullConfig struct {
	validate bool
}

// CombineFullOption configures a CombineFull call.
type CombineFullOption = options.Option[*combineFullConfig]

// WithoutValueValidation skips the eager range check of raw values against
// their declared cardinalities. An out-of-range value then yields an
// incorrect but silently in-range code rather than an error, so this is only
// for hot paths whose inputs are already validated.
func WithoutValueValidation() CombineFullOption {
	return options.NoError(func(c *combineFullConfig) {
		c.validate = false
	})
}

// CombineFull combines several categorical variables into a single factor
// over the full Cartesian product of their declared level spaces, including
// combinations that never occur in the data.
//
// The returned table has one column slice per variable, each of length equal
// to the product of all cardinalities; row j is the j-th combination in
// lexicographic order with variable 0 varying slowest. codes[i] is the row
// reconstructing observation i, computed by the mixed-radix positional
// formula over the declared cardinalities, so unobserved rows simply receive
// no code. No deduplication or sorting takes place: the table is enumerated
// directly by block replication and codes are accumulated back to front.
//
// With no variables every code is 0 and the table has no columns. With a
// single variable the levels are the identity sequence 0..Cardinality-1 and
// the codes are the values themselves. If any cardinality is zero the table
// is empty and no valid encoding exists; observations, if present, fail the
// range check.
//
// Raw values are validated against their cardinalities before any work is
// done; WithoutValueValidation disables that check. The combination count is
// also verified against the code type up front, so on failure codes is never
// written.
//
// Parameters:
//   - variables: One Variable per input, Values slices of length len(codes)
//   - codes: Destination for the combined factor codes, overwritten in place
//   - opts: Optional settings such as WithoutValueValidation
//
// Returns:
//   - [][]V: The Cartesian combination table, one column per variable
//   - error: errs.ErrLengthMismatch, errs.ErrInvalidCardinality,
//     errs.ErrValueOutOfRange, errs.ErrCodeRangeExceeded when the combination
//     count does not fit in C, or errs.ErrSizeOverflow when the table itself
//     cannot be allocated
func CombineFull[V constraints.Integer, C constraints.Integer](variables []Variable[V], codes []C, opts ...CombineFullOption) ([][]V, error) {
	for f, variable := range variables {
		if len(variable.Values) != len(codes) {
			return nil, fmt.Errorf("%w: variable %d has %d values for %d codes", errs.ErrLengthMismatch, f, len(variable.Values), len(codes))
		}
		if variable.Cardinality < 0 {
			return nil, fmt.Errorf("%w: variable %d declares %d levels", errs.ErrInvalidCardinality, f, variable.Cardinality)
		}
	}

	cfg := combineFullConfig{validate: true}
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	if cfg.validate {
		for f, variable := range variables {
			for i, v := range variable.Values {
				if v < 0 || v >= variable.Cardinality {
					return nil, fmt.Errorf("%w: variable %d has value %d at observation %d, cardinality %d",
						errs.ErrValueOutOfRange, f, v, i, variable.Cardinality)
				}
			}
		}
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
		only := variables[0]
		if _, err := checked.Cast[C](only.Cardinality); err != nil {
			return nil, fmt.Errorf("%w: %d combinations", errs.ErrCodeRangeExceeded, only.Cardinality)
		}
		levels, err := checked.Slice[V](only.Cardinality)
		if err != nil {
			return nil, fmt.Errorf("%w: table of %d levels", errs.ErrSizeOverflow, only.Cardinality)
		}
		for l := range levels {
			levels[l] = V(l)
		}
		// The caller promises a dense level space, so values are already
		// codes and no deduplication is needed.
		for i, v := range only.Values {
			codes[i] = C(v)
		}
		output[0] = levels

		return output, nil
	}

	// Establish the total combination count first, checking every
	// intermediate product, so an unrepresentable request fails before any
	// code is written.
	ncombos, err := checked.Cast[C](variables[ninputs-1].Cardinality)
	if err != nil {
		return nil, fmt.Errorf("%w: cardinality %d", errs.ErrCodeRangeExceeded, variables[ninputs-1].Cardinality)
	}
	for f := ninputs - 1; f > 0; f-- {
		cardinality, err := checked.Cast[C](variables[f-1].Cardinality)
		if err != nil {
			return nil, fmt.Errorf("%w: cardinality %d", errs.ErrCodeRangeExceeded, variables[f-1].Cardinality)
		}
		ncombos, err = checked.Mul(ncombos, cardinality)
		if err != nil {
			return nil, fmt.Errorf("%w: combination count", errs.ErrCodeRangeExceeded)
		}
	}
	total, err := checked.Cast[int](ncombos)
	if err != nil {
		return nil, fmt.Errorf("%w: table of %d combinations", errs.ErrSizeOverflow, ncombos)
	}

	// Mixed-radix accumulation from the last variable to the first: each
	// variable's values are scaled by the stride of everything that varies
	// faster. Products and sums stay below ncombos while values are within
	// their cardinalities, which the up-front check established.
	for i, v := range variables[ninputs-1].Values {
		codes[i] = C(v)
	}
	stride := C(variables[ninputs-1].Cardinality)
	for f := ninputs - 1; f > 0; f-- {
		variable := variables[f-1]
		for i, v := range variable.Values {
			codes[i] += stride * C(v)
		}
		stride *= C(variable.Cardinality)
	}

	if total == 0 {
		for f := range output {
			output[f] = []V{}
		}

		return output, nil
	}

	// Table construction from the last variable to the first by block
	// replication: each level repeats innerRepeats times to form one cycle,
	// and the cycle repeats outerRepeats times to fill the column. The two
	// running products trace the Cartesian order exactly, so no sort is
	// needed.
	outerRepeats := total
	innerRepeats := 1
	for f := ninputs; f > 0; f-- {
		cardinality := int(variables[f-1].Cardinality)
		cycle := innerRepeats * cardinality
		out := make([]V, cycle, total)

		if innerRepeats == 1 {
			for l := range out {
				out[l] = V(l)
			}
		} else {
			pos := 0
			for l := 0; l < cardinality; l++ {
				for r := 0; r < innerRepeats; r++ {
					out[pos] = V(l)
					pos++
				}
			}
		}
		innerRepeats = cycle

		outerRepeats /= cardinality
		for r := 1; r < outerRepeats; r++ {
			// Capacity was reserved up front, so appending the slice to
			// itself cannot reallocate out from under the source window.
			out = append(out, out[:cycle]...)
		}
		output[f-1] = out
	}

	return output, nil
}
