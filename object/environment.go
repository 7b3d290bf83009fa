package object

import "fmt"

// ErrorKind discriminates environment failures.
type ErrorKind int

const (
	// ErrRedeclared marks a second declaration of a name in the same scope.
	ErrRedeclared ErrorKind = iota
	// ErrReassignedConstant marks an assignment to a constant binding.
	ErrReassignedConstant
	// ErrNotFound marks a name no scope in the chain defines.
	ErrNotFound
)

// Error is the single tagged error type of the environment layer.
type Error struct {
	Kind ErrorKind
	Name string
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrRedeclared:
		return fmt.Sprintf("cannot redeclare variable %s", e.Name)
	case ErrReassignedConstant:
		return fmt.Sprintf("cannot reassign to constant %s", e.Name)
	case ErrNotFound:
		return fmt.Sprintf("cannot resolve %s since it does not exist", e.Name)
	default:
		return fmt.Sprintf("environment error for %s", e.Name)
	}
}

// Environment is a chained lexical scope: variable storage, constant
// tracking, and name resolution through a shared parent link. A name may be
// declared at most once per scope; shadowing an outer name in a child scope
// is always permitted.
type Environment struct {
	store  map[string]Value
	consts map[string]bool
	outer  *Environment
}

// NewEnvironment creates a new top-level environment.
func NewEnvironment() *Environment {
	return &Environment{
		store:  make(map[string]Value),
		consts: make(map[string]bool),
	}
}

// NewEnclosedEnvironment creates a child scope whose resolution falls back
// to outer. The parent link is shared, not copied.
func NewEnclosedEnvironment(outer *Environment) *Environment {
	env := NewEnvironment()
	env.outer = outer
	return env
}

// Declare binds name to value in this scope. It fails if name already
// exists in this scope, regardless of what outer scopes define.
func (e *Environment) Declare(name string, value Value, constant bool) (Value, error) {
	if _, ok := e.store[name]; ok {
		return nil, &Error{Kind: ErrRedeclared, Name: name}
	}

	e.store[name] = value
	if constant {
		e.consts[name] = true
	}
	return value, nil
}

// Assign overwrites the binding of name in the nearest scope that defines
// it. It fails if no scope defines name or if the resolving scope marked it
// constant.
func (e *Environment) Assign(name string, value Value) (Value, error) {
	scope := e.resolve(name)
	if scope == nil {
		return nil, &Error{Kind: ErrNotFound, Name: name}
	}
	if scope.consts[name] {
		return nil, &Error{Kind: ErrReassignedConstant, Name: name}
	}

	scope.store[name] = value
	return value, nil
}

// Lookup resolves name through the scope chain and returns its value.
func (e *Environment) Lookup(name string) (Value, error) {
	scope := e.resolve(name)
	if scope == nil {
		return nil, &Error{Kind: ErrNotFound, Name: name}
	}
	return scope.store[name], nil
}

// resolve walks from this scope outward and returns the nearest scope that
// defines name, or nil.
func (e *Environment) resolve(name string) *Environment {
	if _, ok := e.store[name]; ok {
		return e
	}
	if e.outer != nil {
		return e.outer.resolve(name)
	}
	return nil
}
