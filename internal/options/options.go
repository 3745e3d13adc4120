// Package options implements the generic functional-option plumbing shared
// by the public configuration surfaces of this module.
package options

// Option mutates a configuration target of type T, reporting invalid
// settings through an error.
type Option[T any] interface {
	apply(T) error
}

// optionFunc adapts a plain function to the Option interface.
type optionFunc[T any] struct {
	fn func(T) error
}

func (o optionFunc[T]) apply(target T) error {
	return o.fn(target)
}

// New creates an option from a function that may reject its argument.
func New[T any](fn func(T) error) Option[T] {
	return optionFunc[T]{fn: fn}
}

// NoError creates an option from a function that cannot fail.
func NoError[T any](fn func(T)) Option[T] {
	return optionFunc[T]{fn: func(target T) error {
		fn(target)
		return nil
	}}
}

// Apply runs each option against target in order, stopping at the first
// failure.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}
