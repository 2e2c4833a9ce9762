// Command jerboa is the thin CLI driver: it reads a source file,
// wires the interpreter's two callbacks to stdin/stdout, and prints
// the final state dump. It carries no language semantics of its own.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"jerboa/ast"
	"jerboa/internals"
	"jerboa/interp"
	"jerboa/parser"
	"jerboa/repl"
	"jerboa/state"
)

type commandFunc func(args []string)

var commands = map[string]commandFunc{
	"run":  runCommand,
	"repl": replCommand,
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: jerboa <run|repl> [file]")
		os.Exit(1)
	}

	name := os.Args[1]
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n", name)
		os.Exit(1)
	}
	cmd(os.Args[2:])
}

func replCommand(args []string) {
	repl.Start(os.Stdin, os.Stdout)
}

func runCommand(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: jerboa run <file>")
		os.Exit(1)
	}

	content, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	errs := internals.NewErrorCollector()
	ok, done, program := parser.Parse(string(content))
	if !ok {
		errs.Add(fmt.Errorf("%s: parse failed", args[0]))
	} else if !done {
		errs.Add(fmt.Errorf("%s: trailing input after a complete program", args[0]))
	}
	if errs.HasErrors() {
		for _, e := range errs.Errors {
			fmt.Fprintln(os.Stderr, e)
		}
		os.Exit(1)
	}

	in := bufio.NewScanner(os.Stdin)
	st := state.New()
	interp.Run(program, st, func() string {
		in.Scan()
		return in.Text()
	}, func(s string) {
		fmt.Print(s)
	})

	dumpState(st)
}

// stateDump is the canonical display form for a finished program's
// state: { v: {name:int,...}, a: {name:{idx:int,...},...}, f: {name:ast,...} }.
type stateDump struct {
	V map[string]int64           `json:"v"`
	A map[string]map[int64]int64 `json:"a"`
	F map[string]*ast.StmtList   `json:"f"`
}

func dumpState(st *state.State) {
	dump := stateDump{V: st.V, A: st.A, F: st.F}
	out, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	fmt.Println(string(out))
}
