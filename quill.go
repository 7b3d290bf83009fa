package quill

import (
	"fmt"
	"os"

	"github.com/quill-lang/quill/ast"
	"github.com/quill-lang/quill/evaluator"
	"github.com/quill-lang/quill/object"
	"github.com/quill-lang/quill/parser"
)

// Parse tokenizes and parses src, returning the program's AST.
//
// Errors keep their layer's typed form and can be branched on with errors.As:
// *lexer.Error for lexing failures, *parser.Error for parse failures.
func Parse(src []byte) (*ast.Program, error) {
	program, err := parser.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("quill: %w", err)
	}
	return program, nil
}

// Interpreter evaluates Quill programs against a persistent global
// environment, the way an interactive session does: declarations made by one
// Run call are visible to the next.
//
// An Interpreter is not safe for concurrent use.
type Interpreter struct {
	env  *object.Environment
	eval *evaluator.Evaluator

	out          *outputConfig
	registry     evaluator.Registry
	maxCallDepth int
}

// New creates an Interpreter.
//
// Functional options configure it: WithOutput directs the default print
// builtin, WithBuiltins replaces the builtin registry entirely, and
// MaxCallDepth bounds recursion.
func New(opts ...Option) (*Interpreter, error) {
	i := &Interpreter{out: &outputConfig{w: os.Stdout}}

	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, err
		}
	}

	if i.registry == nil {
		i.registry = evaluator.DefaultRegistry(i.out.w)
	}

	env, err := evaluator.NewGlobalEnvironment(i.registry)
	if err != nil {
		return nil, fmt.Errorf("quill: %w", err)
	}

	i.env = env
	i.eval = evaluator.New(i.maxCallDepth)
	return i, nil
}

// Run parses src and evaluates it against the interpreter's environment,
// returning the value of the program's last statement.
//
// Evaluation errors keep their layer's typed form: *evaluator.Error for
// evaluation failures, *object.Error for environment failures.
func (i *Interpreter) Run(src []byte) (object.Value, error) {
	program, err := Parse(src)
	if err != nil {
		return nil, err
	}

	value, err := i.eval.Eval(program, i.env)
	if err != nil {
		return nil, fmt.Errorf("quill: %w", err)
	}
	return value, nil
}

// Environment returns the interpreter's persistent global environment, for
// hosts that seed or inspect bindings directly.
func (i *Interpreter) Environment() *object.Environment {
	return i.env
}
