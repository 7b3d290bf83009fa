package evaluator_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/quill-lang/quill/evaluator"
	"github.com/quill-lang/quill/object"
	"github.com/quill-lang/quill/parser"
	"github.com/stretchr/testify/require"
)

func testEnv(t *testing.T) *object.Environment {
	t.Helper()
	env, err := evaluator.NewGlobalEnvironment(evaluator.DefaultRegistry(io.Discard))
	require.NoError(t, err)
	return env
}

func evalInput(t *testing.T, input string, env *object.Environment) (object.Value, error) {
	t.Helper()
	program, err := parser.Parse([]byte(input))
	require.NoError(t, err, "input: %s", input)
	return evaluator.New(0).Eval(program, env)
}

func evalOK(t *testing.T, input string, env *object.Environment) object.Value {
	t.Helper()
	value, err := evalInput(t, input, env)
	require.NoError(t, err, "input: %s", input)
	return value
}

func evalErr(t *testing.T, input string, env *object.Environment) error {
	t.Helper()
	_, err := evalInput(t, input, env)
	require.Error(t, err, "input: %s", input)
	return err
}

func requireNumber(t *testing.T, value object.Value, expected int64) {
	t.Helper()
	num, ok := value.(*object.Number)
	require.True(t, ok, "value not *object.Number, got=%T (%s)", value, value.Inspect())
	require.Equal(t, expected, num.Value)
}

func requireEvalError(t *testing.T, err error, kind evaluator.ErrorKind) *evaluator.Error {
	t.Helper()
	var evalError *evaluator.Error
	require.ErrorAs(t, err, &evalError)
	require.Equal(t, kind, evalError.Kind)
	return evalError
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
	}{
		{"5;", 5},
		{"1 + 2 * 3;", 7},
		{"45 + 45 % 7;", 48},
		{"(1 + 2) * 3;", 9},
		{"50 / 2;", 25},
		{"10 - 4 - 3;", 3},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			requireNumber(t, evalOK(t, tt.input, testEnv(t)), tt.expected)
		})
	}
}

func TestGlobalConstants(t *testing.T) {
	env := testEnv(t)

	value := evalOK(t, "true;", env)
	require.Equal(t, &object.Boolean{Value: true}, value)

	value = evalOK(t, "false;", env)
	require.Equal(t, &object.Boolean{Value: false}, value)

	value = evalOK(t, "null;", env)
	require.Equal(t, &object.Null{}, value)
}

func TestVarDeclarationAndAssignment(t *testing.T) {
	env := testEnv(t)

	requireNumber(t, evalOK(t, "let x = 5; x", env), 5)
	requireNumber(t, evalOK(t, "x = 9; x", env), 9)

	// Declaring without an initializer yields null.
	value := evalOK(t, "let y; y", env)
	require.Equal(t, object.NULL_TYPE, value.Type())
}

func TestEnvironmentErrorsPassThrough(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected object.ErrorKind
	}{
		{"redeclare", "let x = 1; let x = 2;", object.ErrRedeclared},
		{"reassign constant", "const c = 1; c = 2;", object.ErrReassignedConstant},
		{"unknown identifier", "ghost;", object.ErrNotFound},
		{"assign unknown", "ghost = 1;", object.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := evalErr(t, tt.input, testEnv(t))
			var envErr *object.Error
			require.ErrorAs(t, err, &envErr)
			require.Equal(t, tt.expected, envErr.Kind)
		})
	}
}

func TestFunctionCall(t *testing.T) {
	env := testEnv(t)

	evalOK(t, "fn add(x,y) { let result = x + y; result }", env)

	requireNumber(t, evalOK(t, "add(3, 4);", env), 7)
}

func TestFunctionDeclaredAsConstant(t *testing.T) {
	env := testEnv(t)

	evalOK(t, "fn id(x) { x }", env)

	err := evalErr(t, "id = 5;", env)
	var envErr *object.Error
	require.ErrorAs(t, err, &envErr)
	require.Equal(t, object.ErrReassignedConstant, envErr.Kind)
}

func TestEmptyFunctionBodyYieldsNull(t *testing.T) {
	env := testEnv(t)

	evalOK(t, "fn noop() {}", env)
	value := evalOK(t, "noop();", env)
	require.Equal(t, object.NULL_TYPE, value.Type())
}

func TestClosuresShareDeclarationScope(t *testing.T) {
	env := testEnv(t)

	// Functions capture a live reference to their declaration scope, so a
	// later mutation of that scope is visible inside the body.
	evalOK(t, "let n = 1; fn get() { n }", env)
	requireNumber(t, evalOK(t, "get();", env), 1)

	evalOK(t, "n = 42;", env)
	requireNumber(t, evalOK(t, "get();", env), 42)
}

func TestFunctionScopeDiscardedPerCall(t *testing.T) {
	env := testEnv(t)

	evalOK(t, "fn shadow(x) { let local = x * 2; local }", env)
	requireNumber(t, evalOK(t, "shadow(4);", env), 8)

	// Call-local declarations must not leak into the global scope.
	err := evalErr(t, "local;", env)
	var envErr *object.Error
	require.ErrorAs(t, err, &envErr)
	require.Equal(t, object.ErrNotFound, envErr.Kind)

	// A second call starts from a fresh scope, so redeclaring is fine.
	requireNumber(t, evalOK(t, "shadow(5);", env), 10)
}

func TestParameterShadowsOuterBinding(t *testing.T) {
	env := testEnv(t)

	evalOK(t, "let x = 100; fn twice(x) { x * 2 }", env)
	requireNumber(t, evalOK(t, "twice(3);", env), 6)
	requireNumber(t, evalOK(t, "x;", env), 100)
}

func TestArityMismatch(t *testing.T) {
	env := testEnv(t)
	evalOK(t, "fn add(x,y) { x + y }", env)

	tests := []struct {
		input string
		want  int
		got   int
	}{
		{"add(1);", 2, 1},
		{"add(1, 2, 3);", 2, 3},
		{"add();", 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := evalErr(t, tt.input, env)
			evalError := requireEvalError(t, err, evaluator.ErrArityMismatch)
			require.Equal(t, tt.want, evalError.Want)
			require.Equal(t, tt.got, evalError.Got)
		})
	}
}

func TestDivisionByZero(t *testing.T) {
	tests := []string{"1 / 0;", "1 % 0;", "let x = 0; 10 / x;"}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			err := evalErr(t, input, testEnv(t))
			requireEvalError(t, err, evaluator.ErrDivisionByZero)
		})
	}
}

func TestCallDepthLimit(t *testing.T) {
	env := testEnv(t)

	// No terminating condition exists in the language, so recursion always
	// hits the depth limit.
	evalOK(t, "fn loop() { loop() }", env)
	err := evalErr(t, "loop();", env)
	requireEvalError(t, err, evaluator.ErrCallDepthExceeded)
}

func TestNonNumberOperandsYieldNull(t *testing.T) {
	tests := []string{
		"true + 1;",
		"1 + true;",
		"null * null;",
		"let o = { a: 1 }; o + 1;",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			value := evalOK(t, input, testEnv(t))
			require.Equal(t, object.NULL_TYPE, value.Type())
		})
	}
}

func TestObjectLiteral(t *testing.T) {
	env := testEnv(t)

	evalOK(t, "let y = 32;", env)
	value := evalOK(t, "{ x: 100, y, baz: { z: true } };", env)

	obj, ok := value.(*object.Object)
	require.True(t, ok, "value not *object.Object")
	require.Len(t, obj.Properties, 3)

	requireNumber(t, obj.Properties["x"], 100)
	requireNumber(t, obj.Properties["y"], 32)

	nested, ok := obj.Properties["baz"].(*object.Object)
	require.True(t, ok, "baz not *object.Object")
	require.Equal(t, &object.Boolean{Value: true}, nested.Properties["z"])
}

func TestObjectLiteralDuplicateKeys(t *testing.T) {
	value := evalOK(t, "{ a: 1, a: 2 };", testEnv(t))

	obj, ok := value.(*object.Object)
	require.True(t, ok)
	require.Len(t, obj.Properties, 1)
	requireNumber(t, obj.Properties["a"], 2)
}

func TestObjectShorthandUnknownKey(t *testing.T) {
	err := evalErr(t, "{ ghost };", testEnv(t))
	var envErr *object.Error
	require.ErrorAs(t, err, &envErr)
	require.Equal(t, object.ErrNotFound, envErr.Kind)
}

func TestIdentifierEvaluationIsIdempotent(t *testing.T) {
	env := testEnv(t)
	evalOK(t, "let x = 7;", env)

	first := evalOK(t, "x;", env)
	second := evalOK(t, "x;", env)
	require.Equal(t, first, second)
}

func TestInvalidAssignment(t *testing.T) {
	tests := []string{"1 = 2;", "{ a: 1 } = 2;", "1 + 2 = 3;"}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			err := evalErr(t, input, testEnv(t))
			requireEvalError(t, err, evaluator.ErrInvalidAssignment)
		})
	}
}

func TestNotAFunction(t *testing.T) {
	tests := []string{"let x = 5; x();", "true();"}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			err := evalErr(t, input, testEnv(t))
			requireEvalError(t, err, evaluator.ErrNotAFunction)
		})
	}
}

func TestMemberExpressionHasNoEvaluationRule(t *testing.T) {
	env := testEnv(t)
	evalOK(t, "let o = { a: 1 };", env)

	err := evalErr(t, "o.a;", env)
	requireEvalError(t, err, evaluator.ErrUnexpectedStatement)
}

func TestCommentIsNoOp(t *testing.T) {
	env := testEnv(t)
	requireNumber(t, evalOK(t, "// note\nlet x = 3; x", env), 3)
}

func TestFirstFailureAbortsProgram(t *testing.T) {
	env := testEnv(t)

	err := evalErr(t, "let a = 1; ghost; let b = 2;", env)
	var envErr *object.Error
	require.ErrorAs(t, err, &envErr)
	require.Equal(t, object.ErrNotFound, envErr.Kind)

	// The failing statement aborted the rest of the program.
	err = evalErr(t, "b;", env)
	require.ErrorAs(t, err, &envErr)
	require.Equal(t, object.ErrNotFound, envErr.Kind)

	// Statements before the failure still took effect.
	requireNumber(t, evalOK(t, "a;", env), 1)
}

func TestPrintBuiltin(t *testing.T) {
	var out bytes.Buffer
	env, err := evaluator.NewGlobalEnvironment(evaluator.DefaultRegistry(&out))
	require.NoError(t, err)

	value := evalOK(t, "print(1 + 2, true);", env)
	require.Equal(t, object.NULL_TYPE, value.Type())
	require.Equal(t, "3\ntrue\n", out.String())
}

func TestTimeBuiltinIsFixed(t *testing.T) {
	env := testEnv(t)

	first := evalOK(t, "time();", env)
	second := evalOK(t, "time();", env)
	require.Equal(t, first, second)
	require.Equal(t, object.NUMBER_TYPE, first.Type())
}

func TestCustomRegistry(t *testing.T) {
	var calls []string
	reg := evaluator.Registry{
		"record": func(args []object.Value, _ *object.Environment) object.Value {
			for _, arg := range args {
				calls = append(calls, arg.Inspect())
			}
			return &object.Null{}
		},
	}

	env, err := evaluator.NewGlobalEnvironment(reg)
	require.NoError(t, err)

	evalOK(t, "record(4 * 2);", env)
	require.Equal(t, []string{"8"}, calls)

	// The default builtins are absent from a custom registry.
	evalError := evalErr(t, "print(1);", env)
	var envErr *object.Error
	require.ErrorAs(t, evalError, &envErr)
	require.Equal(t, object.ErrNotFound, envErr.Kind)
}

func TestRegistryNameCollision(t *testing.T) {
	reg := evaluator.Registry{
		"true": func(_ []object.Value, _ *object.Environment) object.Value {
			return &object.Null{}
		},
	}

	_, err := evaluator.NewGlobalEnvironment(reg)
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "redeclare"))
}
