// Package evaluator walks a parsed program and produces runtime values.
// Evaluation is structural recursion over the AST against a mutable
// environment; it is fully synchronous and single-threaded.
package evaluator

import (
	"fmt"

	"github.com/quill-lang/quill/ast"
	"github.com/quill-lang/quill/object"
)

// DefaultMaxCallDepth bounds function call nesting. Deeply recursive
// programs fail with ErrCallDepthExceeded instead of exhausting the host
// stack.
const DefaultMaxCallDepth = 1000

// ErrorKind discriminates evaluation failures.
type ErrorKind int

const (
	// ErrInvalidAssignment marks an assignment whose target is not a bare
	// identifier.
	ErrInvalidAssignment ErrorKind = iota
	// ErrInvalidOperator marks a binary expression with an unsupported
	// operator.
	ErrInvalidOperator
	// ErrNotAFunction marks a call whose caller is not callable.
	ErrNotAFunction
	// ErrArityMismatch marks a call with the wrong number of arguments.
	ErrArityMismatch
	// ErrDivisionByZero marks division or modulo by zero.
	ErrDivisionByZero
	// ErrUnexpectedStatement marks an AST node with no evaluation rule.
	ErrUnexpectedStatement
	// ErrCallDepthExceeded marks a call nested deeper than the configured
	// limit.
	ErrCallDepthExceeded
)

// Error is the single tagged error type of the evaluator layer. Environment
// failures are surfaced as *object.Error, not wrapped.
type Error struct {
	Kind     ErrorKind
	Operator string // set for ErrInvalidOperator
	Detail   string // offending expression or node, rendered
	Want     int    // expected arity for ErrArityMismatch
	Got      int    // actual arity for ErrArityMismatch
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrInvalidAssignment:
		return fmt.Sprintf("invalid assignment target %s", e.Detail)
	case ErrInvalidOperator:
		return fmt.Sprintf("unsupported binary operator %q", e.Operator)
	case ErrNotAFunction:
		return fmt.Sprintf("%s is not a function", e.Detail)
	case ErrArityMismatch:
		return fmt.Sprintf("%s expects %d arguments, got %d", e.Detail, e.Want, e.Got)
	case ErrDivisionByZero:
		return "division by zero"
	case ErrUnexpectedStatement:
		return fmt.Sprintf("unexpected statement %s", e.Detail)
	case ErrCallDepthExceeded:
		return "maximum call depth exceeded"
	default:
		return "evaluation error"
	}
}

var null = &object.Null{}

// Evaluator evaluates AST nodes against an environment.
type Evaluator struct {
	maxCallDepth int
	depth        int
}

// New creates an Evaluator. A maxCallDepth of zero or less selects
// DefaultMaxCallDepth.
func New(maxCallDepth int) *Evaluator {
	if maxCallDepth <= 0 {
		maxCallDepth = DefaultMaxCallDepth
	}
	return &Evaluator{maxCallDepth: maxCallDepth}
}

// Eval evaluates node against env and returns the resulting value. The
// first failure aborts evaluation.
func (e *Evaluator) Eval(node ast.Node, env *object.Environment) (object.Value, error) {
	switch node := node.(type) {
	case *ast.Program:
		return e.evalProgram(node, env)
	case *ast.ExpressionStatement:
		return e.Eval(node.Expression, env)
	case *ast.Comment:
		return null, nil
	case *ast.NumericLiteral:
		return &object.Number{Value: node.Value}, nil
	case *ast.Identifier:
		return env.Lookup(node.Value)
	case *ast.ObjectLiteral:
		return e.evalObjectLiteral(node, env)
	case *ast.VarDeclaration:
		return e.evalVarDeclaration(node, env)
	case *ast.FnDeclaration:
		return e.evalFnDeclaration(node, env)
	case *ast.AssignmentExpression:
		return e.evalAssignment(node, env)
	case *ast.CallExpression:
		return e.evalCall(node, env)
	case *ast.BinaryExpression:
		return e.evalBinary(node, env)
	default:
		return nil, &Error{Kind: ErrUnexpectedStatement, Detail: node.String()}
	}
}

// evalProgram evaluates top-level statements in order. The program's value
// is the value of its last statement; the first failing statement aborts
// the rest.
func (e *Evaluator) evalProgram(program *ast.Program, env *object.Environment) (object.Value, error) {
	var last object.Value = null

	for _, stmt := range program.Body {
		value, err := e.Eval(stmt, env)
		if err != nil {
			return nil, err
		}
		last = value
	}

	return last, nil
}

// evalObjectLiteral builds a mapping in source order; later duplicate keys
// overwrite earlier ones. Shorthand properties resolve their key as an
// identifier in the current environment.
func (e *Evaluator) evalObjectLiteral(node *ast.ObjectLiteral, env *object.Environment) (object.Value, error) {
	properties := make(map[string]object.Value, len(node.Properties))

	for _, prop := range node.Properties {
		var (
			value object.Value
			err   error
		)
		if prop.Value != nil {
			value, err = e.Eval(prop.Value, env)
		} else {
			value, err = env.Lookup(prop.Key)
		}
		if err != nil {
			return nil, err
		}
		properties[prop.Key] = value
	}

	return &object.Object{Properties: properties}, nil
}

func (e *Evaluator) evalVarDeclaration(node *ast.VarDeclaration, env *object.Environment) (object.Value, error) {
	var value object.Value = null

	if node.Value != nil {
		var err error
		value, err = e.Eval(node.Value, env)
		if err != nil {
			return nil, err
		}
	}

	return env.Declare(node.Identifier, value, node.Constant)
}

// evalFnDeclaration builds a function value closing over the current
// environment and declares it as a constant binding.
func (e *Evaluator) evalFnDeclaration(node *ast.FnDeclaration, env *object.Environment) (object.Value, error) {
	fn := &object.Function{
		Name:       node.Name,
		Parameters: node.Parameters,
		Body:       node.Body,
		Env:        env,
	}
	return env.Declare(node.Name, fn, true)
}

func (e *Evaluator) evalAssignment(node *ast.AssignmentExpression, env *object.Environment) (object.Value, error) {
	ident, ok := node.Assignee.(*ast.Identifier)
	if !ok {
		return nil, &Error{Kind: ErrInvalidAssignment, Detail: node.Assignee.String()}
	}

	value, err := e.Eval(node.Value, env)
	if err != nil {
		return nil, err
	}

	return env.Assign(ident.Value, value)
}

// evalCall evaluates the arguments left to right, then the caller. Builtins
// get the evaluated arguments and a handle to the current environment; user
// functions run in a fresh child of their captured environment.
func (e *Evaluator) evalCall(node *ast.CallExpression, env *object.Environment) (object.Value, error) {
	args := make([]object.Value, 0, len(node.Args))
	for _, arg := range node.Args {
		value, err := e.Eval(arg, env)
		if err != nil {
			return nil, err
		}
		args = append(args, value)
	}

	caller, err := e.Eval(node.Caller, env)
	if err != nil {
		return nil, err
	}

	switch fn := caller.(type) {
	case *object.Builtin:
		return fn.Fn(args, env), nil
	case *object.Function:
		return e.applyFunction(fn, args)
	default:
		return nil, &Error{Kind: ErrNotAFunction, Detail: node.Caller.String()}
	}
}

func (e *Evaluator) applyFunction(fn *object.Function, args []object.Value) (object.Value, error) {
	if len(args) != len(fn.Parameters) {
		return nil, &Error{
			Kind:   ErrArityMismatch,
			Detail: fn.Name,
			Want:   len(fn.Parameters),
			Got:    len(args),
		}
	}

	if e.depth >= e.maxCallDepth {
		return nil, &Error{Kind: ErrCallDepthExceeded}
	}
	e.depth++
	defer func() { e.depth-- }()

	scope := object.NewEnclosedEnvironment(fn.Env)
	for i, parameter := range fn.Parameters {
		if _, err := scope.Declare(parameter, args[i], false); err != nil {
			return nil, err
		}
	}

	// The function's result is the value of its last statement, or null for
	// an empty body. There is no explicit return construct.
	var result object.Value = null
	for _, stmt := range fn.Body {
		var err error
		result, err = e.Eval(stmt, scope)
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

// evalBinary applies an arithmetic operator when both operands are numbers.
// If either operand is not a number the expression evaluates to null; this
// permissive fallback is deliberate, not an error.
func (e *Evaluator) evalBinary(node *ast.BinaryExpression, env *object.Environment) (object.Value, error) {
	left, err := e.Eval(node.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := e.Eval(node.Right, env)
	if err != nil {
		return nil, err
	}

	lhs, ok := left.(*object.Number)
	if !ok {
		return null, nil
	}
	rhs, ok := right.(*object.Number)
	if !ok {
		return null, nil
	}

	switch node.Operator {
	case "+":
		return &object.Number{Value: lhs.Value + rhs.Value}, nil
	case "-":
		return &object.Number{Value: lhs.Value - rhs.Value}, nil
	case "*":
		return &object.Number{Value: lhs.Value * rhs.Value}, nil
	case "/":
		if rhs.Value == 0 {
			return nil, &Error{Kind: ErrDivisionByZero}
		}
		return &object.Number{Value: lhs.Value / rhs.Value}, nil
	case "%":
		if rhs.Value == 0 {
			return nil, &Error{Kind: ErrDivisionByZero}
		}
		return &object.Number{Value: lhs.Value % rhs.Value}, nil
	default:
		return nil, &Error{Kind: ErrInvalidOperator, Operator: node.Operator}
	}
}
