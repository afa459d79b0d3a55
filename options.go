package xj

import "fmt"

const defaultMaxDepth = 1000

type options struct {
	lenient  bool
	maxDepth int
}

// Option configures parsing and conversion.
type Option func(*options) error

// Lenient returns an Option that makes the readers skip input regions that
// do not match the restricted grammar instead of returning a SyntaxError.
// This mirrors the historical best-effort behavior; partially built trees
// may result from malformed input.
func Lenient() Option {
	return func(o *options) error {
		o.lenient = true
		return nil
	}
}

// MaxDepth returns an Option that sets the maximum recursion depth for the
// readers. This bounds stack growth on deeply nested documents.
//
// The depth n must be a positive integer.
func MaxDepth(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return fmt.Errorf("xj: max depth must be a positive integer")
		}
		o.maxDepth = n
		return nil
	}
}

func buildOptions(opts []Option) (options, error) {
	o := options{maxDepth: defaultMaxDepth}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return o, err
		}
	}
	return o, nil
}
