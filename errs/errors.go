// Package errs defines the sentinel errors returned by the factor library.
//
// All errors are exported as package-level variables so callers can match
// them with errors.Is, even when they are wrapped with additional context
// at the failure site.
package errs

import "errors"

var (
	// ErrLengthMismatch indicates that a variable's value slice does not have
	// the same length as the caller-supplied code slice.
	ErrLengthMismatch = errors.New("variable length does not match code slice length")

	// ErrCodeRangeExceeded indicates that the number of levels or combinations
	// cannot be represented by the caller-chosen code type.
	ErrCodeRangeExceeded = errors.New("level count exceeds the range of the code type")

	// ErrSizeOverflow indicates that a size computation overflowed the
	// platform's representable range, so the requested container cannot exist.
	ErrSizeOverflow = errors.New("size computation overflows the representable range")

	// ErrValueOutOfRange indicates that an observed value lies outside its
	// variable's declared cardinality, or that a code indexes past the table.
	ErrValueOutOfRange = errors.New("value lies outside the declared range")

	// ErrInvalidCardinality indicates a negative declared cardinality.
	ErrInvalidCardinality = errors.New("cardinality must be non-negative")
)
