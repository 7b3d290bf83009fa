//go:build go1.18

package parser_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/quill-lang/quill/parser"
)

func FuzzParse(f *testing.F) {
	// Seed the corpus with valid scripts from the testdata directory. This
	// gives the fuzzer good starting points for valid syntax.
	seedFiles, err := filepath.Glob("testdata/*.quill")
	if err != nil {
		f.Fatalf("failed to find seed files: %v", err)
	}

	for _, file := range seedFiles {
		data, err := os.ReadFile(file)
		if err != nil {
			f.Fatalf("failed to read seed file %s: %v", file, err)
		}
		f.Add(data)
	}

	// Add some simple but important edge cases manually.
	f.Add([]byte("let x = 5;"))
	f.Add([]byte("const y = { a: 1, b };"))
	f.Add([]byte("fn id(v) { v }"))
	f.Add([]byte("f(1)(2);"))
	f.Add([]byte("a.b.c;"))
	f.Add([]byte("a[b + 1];"))
	f.Add([]byte("/* block */ x = x + 1;"))
	f.Add([]byte("45 + (foo + 4) % bar"))

	f.Fuzz(func(t *testing.T, data []byte) {
		// The parser must reject bad input with an error, never a panic.
		// The fuzz engine detects panics automatically.
		program, err := parser.Parse(data)
		if err != nil {
			return
		}

		// Re-parsing the rendered form must not panic either. It is allowed
		// to fail: the source-like rendering is lossy for block comments.
		_, _ = parser.Parse([]byte(program.String()))
	})
}
