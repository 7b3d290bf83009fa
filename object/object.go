// Package object defines the runtime values the evaluator produces and the
// lexically-scoped environments that store them.
package object

import (
	"bytes"
	"sort"
	"strconv"
	"strings"

	"github.com/quill-lang/quill/ast"
)

// Type is the type tag of a runtime value.
type Type string

const (
	NULL_TYPE     Type = "NULL"
	BOOLEAN_TYPE  Type = "BOOLEAN"
	NUMBER_TYPE   Type = "NUMBER"
	OBJECT_TYPE   Type = "OBJECT"
	FUNCTION_TYPE Type = "FUNCTION"
	BUILTIN_TYPE  Type = "BUILTIN"
)

// Value is the interface all runtime values implement.
type Value interface {
	// Type returns the value's type tag.
	Type() Type
	// Inspect returns a printable representation of the value.
	Inspect() string
}

// Null is the absence of a value.
type Null struct{}

func (n *Null) Type() Type      { return NULL_TYPE }
func (n *Null) Inspect() string { return "null" }

// Boolean wraps a bool.
type Boolean struct {
	Value bool
}

func (b *Boolean) Type() Type      { return BOOLEAN_TYPE }
func (b *Boolean) Inspect() string { return strconv.FormatBool(b.Value) }

// Number wraps a 64-bit signed integer.
type Number struct {
	Value int64
}

func (n *Number) Type() Type      { return NUMBER_TYPE }
func (n *Number) Inspect() string { return strconv.FormatInt(n.Value, 10) }

// Object is a mapping of property names to values.
type Object struct {
	Properties map[string]Value
}

func (o *Object) Type() Type { return OBJECT_TYPE }

// Inspect renders the properties in sorted key order so output is stable.
func (o *Object) Inspect() string {
	keys := make([]string, 0, len(o.Properties))
	for k := range o.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out bytes.Buffer
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+": "+o.Properties[k].Inspect())
	}
	out.WriteString("{ ")
	out.WriteString(strings.Join(pairs, ", "))
	out.WriteString(" }")
	return out.String()
}

// Function is a user-declared function. It captures a shared reference to
// the environment active at declaration time, so later mutations of that
// scope are visible to the function body.
type Function struct {
	Name       string
	Parameters []string
	Body       []ast.Statement
	Env        *Environment
}

func (f *Function) Type() Type { return FUNCTION_TYPE }
func (f *Function) Inspect() string {
	return "fn " + f.Name + "(" + strings.Join(f.Parameters, ", ") + ") { ... }"
}

// BuiltinFunction is the signature of a host-provided native function.
type BuiltinFunction func(args []Value, env *Environment) Value

// Builtin wraps a host-provided native function.
type Builtin struct {
	Name string
	Fn   BuiltinFunction
}

func (b *Builtin) Type() Type      { return BUILTIN_TYPE }
func (b *Builtin) Inspect() string { return "builtin " + b.Name }
