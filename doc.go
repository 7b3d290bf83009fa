/*
Package quill implements the Quill scripting language: a lexer, a
recursive-descent parser, and a tree-walking evaluator with lexically scoped
environments.

The package offers two entry points depending on the use case:

1. Parsing only

Parse turns source text into an AST for tools that inspect or transform
programs without running them:

	program, err := quill.Parse([]byte("let x = 5 + (4 / 3);"))
	if err != nil {
		// handle error
	}
	// program is the *ast.Program root node.

2. Evaluation

An Interpreter holds a persistent global environment, so consecutive Run
calls behave like lines typed into a session:

	interp, err := quill.New()
	if err != nil {
		// handle error
	}

	_, err = interp.Run([]byte("let x = 40;"))
	if err != nil {
		// handle error
	}

	value, err := interp.Run([]byte("x + 2;"))
	// value.Inspect() == "42"

The language has four value kinds beyond functions: null, booleans, 64-bit
integers, and objects. Variables are declared with let or const, functions
with fn; a function's result is the value of its last body statement. The
print and time builtins are seeded into the global scope and can be replaced
wholesale with the WithBuiltins option.

Each layer reports failures through one tagged error type (*lexer.Error,
*parser.Error, *object.Error, *evaluator.Error) so callers can branch on the
error kind with errors.As instead of matching message strings.
*/
package quill
