// Command quill is the interactive Quill session: it reads one line at a
// time, evaluates it against a persistent environment, and prints the
// result. An empty line or "exit" ends the session.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/peterh/liner"

	"github.com/quill-lang/quill"
	"github.com/quill-lang/quill/object"
)

const (
	historyFile = ".quill_history"
	prompt      = "> "
)

func main() {
	dumpAST := flag.Bool("ast", false, "dump the parsed AST of each line before evaluating it")
	maxDepth := flag.Int("max-call-depth", 0, "maximum function call depth (0 selects the default)")
	flag.Parse()

	os.Exit(run(*dumpAST, *maxDepth))
}

func run(dumpAST bool, maxDepth int) int {
	var opts []quill.Option
	if maxDepth > 0 {
		opts = append(opts, quill.MaxCallDepth(maxDepth))
	}

	interp, err := quill.New(opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	fmt.Println("Quill session. An empty line or \"exit\" ends it.")

	for {
		line, err := ln.Prompt(prompt)
		if err != nil {
			// Ctrl-D or Ctrl-C both end the session.
			if !errors.Is(err, liner.ErrPromptAborted) {
				fmt.Println()
			}
			return 0
		}

		input := strings.TrimSpace(line)
		if input == "" || input == "exit" {
			return 0
		}
		ln.AppendHistory(input)

		if dumpAST {
			program, err := quill.Parse([]byte(input))
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				continue
			}
			spew.Dump(program)
		}

		value, err := interp.Run([]byte(input))
		if err != nil {
			// A bad line never ends the session.
			fmt.Fprintln(os.Stderr, err)
			continue
		}

		if value.Type() != object.NULL_TYPE {
			fmt.Println(value.Inspect())
		}
	}
}
