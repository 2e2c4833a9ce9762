// Package repl is a line-at-a-time driver: each line is lexed,
// parsed, and interpreted against one persistent state.State, so
// variables and function definitions survive across lines.
package repl

import (
	"bufio"
	"fmt"
	"io"

	"jerboa/interp"
	"jerboa/parser"
	"jerboa/state"
)

const prompt = ">>> "

// Start runs the REPL loop until in is exhausted.
func Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	st := state.New()

	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()

		ok, done, program := parser.Parse(line)
		if !ok || !done {
			fmt.Fprintln(out, "parse error")
			continue
		}

		interp.Run(program, st, func() string {
			scanner.Scan()
			return scanner.Text()
		}, func(s string) {
			io.WriteString(out, s)
		})
	}
}
