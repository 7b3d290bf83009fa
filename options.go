package quill

import (
	"fmt"
	"io"

	"github.com/quill-lang/quill/evaluator"
)

// Option configures an Interpreter.
type Option func(*Interpreter) error

type outputConfig struct {
	w io.Writer
}

// MaxCallDepth returns an Option that bounds function call nesting. This
// keeps deeply recursive programs from exhausting the host stack; they fail
// with a typed error instead.
//
// The depth n must be a positive integer.
func MaxCallDepth(n int) Option {
	return func(i *Interpreter) error {
		if n <= 0 {
			return fmt.Errorf("quill: max call depth must be a positive integer")
		}
		i.maxCallDepth = n
		return nil
	}
}

// WithOutput returns an Option that directs the default print builtin's
// output to w. It has no effect when WithBuiltins replaces the registry.
func WithOutput(w io.Writer) Option {
	return func(i *Interpreter) error {
		if w == nil {
			return fmt.Errorf("quill: output writer must not be nil")
		}
		i.out.w = w
		return nil
	}
}

// WithBuiltins returns an Option that replaces the default builtin registry.
// The registry's entries are seeded into the global scope as constants.
func WithBuiltins(reg evaluator.Registry) Option {
	return func(i *Interpreter) error {
		if reg == nil {
			return fmt.Errorf("quill: builtin registry must not be nil")
		}
		i.registry = reg
		return nil
	}
}
