package evaluator

import (
	"fmt"
	"io"

	"github.com/quill-lang/quill/object"
)

// Registry maps names to native functions seeded into the global scope as
// constants. Tests substitute minimal registries to keep evaluation output
// under their control.
type Registry map[string]object.BuiltinFunction

// DefaultRegistry returns the standard builtins. print renders each
// argument on its own line to out and produces null.
func DefaultRegistry(out io.Writer) Registry {
	return Registry{
		"print": func(args []object.Value, _ *object.Environment) object.Value {
			for _, arg := range args {
				fmt.Fprintln(out, arg.Inspect())
			}
			return null
		},
		// Placeholder clock, fixed by design until the host provides a real
		// one.
		"time": func(_ []object.Value, _ *object.Environment) object.Value {
			return &object.Number{Value: placeholderClock}
		},
	}
}

// placeholderClock is the fixed value the stub time builtin returns.
const placeholderClock = 13

// NewGlobalEnvironment creates the process-wide global scope, seeded with
// the boolean and null constants and every registry entry as a constant
// binding.
func NewGlobalEnvironment(reg Registry) (*object.Environment, error) {
	env := object.NewEnvironment()

	seed := []struct {
		name  string
		value object.Value
	}{
		{"true", &object.Boolean{Value: true}},
		{"false", &object.Boolean{Value: false}},
		{"null", null},
	}
	for _, s := range seed {
		if _, err := env.Declare(s.name, s.value, true); err != nil {
			return nil, err
		}
	}

	for name, fn := range reg {
		if _, err := env.Declare(name, &object.Builtin{Name: name, Fn: fn}, true); err != nil {
			return nil, err
		}
	}

	return env, nil
}
