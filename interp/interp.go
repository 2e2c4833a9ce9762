// Package interp is the tree-walking evaluator: it executes an AST
// against a state.State, invoking I/O callbacks as it goes. It never
// fails: every would-be runtime error (undefined function, division
// by zero, unparseable input) has a defined zero-fallback instead of
// an error path.
package interp

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"jerboa/ast"
	"jerboa/state"
)

// InputFunc returns one line of user input, terminator removed.
// Called once per readnum evaluation.
type InputFunc func() string

// OutputFunc consumes a chunk of output text; no newline is added on
// its behalf — newlines only ever come from an explicit "cr" write.
type OutputFunc func(string)

// Interp holds the two callbacks and the State being mutated. It
// carries no other resources across a single Run.
type Interp struct {
	State  *state.State
	Input  InputFunc
	Output OutputFunc
}

// Run executes program against state, mutating it in place and
// returning the same pointer.
func Run(program *ast.StmtList, st *state.State, input InputFunc, output OutputFunc) *state.State {
	it := &Interp{State: st, Input: input, Output: output}
	it.execList(program)
	return st
}

// flow is a typed non-local exit: a RETURN_STMT sets returned and
// carries its value up through enclosing while/if frames of the
// *same* function body; callFunc is the only place that catches it.
type flow struct {
	returned bool
	value    int64
}

var noFlow = flow{}

func (it *Interp) execList(list *ast.StmtList) flow {
	for _, s := range list.Stmts {
		f := it.execStmt(s)
		if f.returned {
			return f
		}
	}
	return noFlow
}

func (it *Interp) execStmt(s ast.Statement) flow {
	switch n := s.(type) {
	case *ast.WriteStmt:
		it.execWrite(n)
		return noFlow
	case *ast.FuncDef:
		it.State.DefineFunc(n.Name, n.Body)
		return noFlow
	case *ast.FuncCall:
		it.callFunc(n.Name)
		return noFlow
	case *ast.IfStmt:
		return it.execIf(n)
	case *ast.WhileStmt:
		return it.execWhile(n)
	case *ast.ReturnStmt:
		return flow{returned: true, value: it.eval(n.Expr)}
	case *ast.AssnStmt:
		it.execAssn(n)
		return noFlow
	default:
		panic(fmt.Sprintf("interp: unhandled statement node %T", s))
	}
}

func (it *Interp) execWrite(n *ast.WriteStmt) {
	for _, arg := range n.Args {
		switch a := arg.(type) {
		case *ast.CROut:
			it.Output("\n")
		case *ast.StrLitOut:
			it.Output(stripQuotes(a.Text))
		case ast.Expression:
			it.Output(strconv.FormatInt(it.eval(a), 10))
		default:
			panic(fmt.Sprintf("interp: unhandled write_arg node %T", arg))
		}
	}
}

func stripQuotes(text string) string {
	if len(text) < 2 {
		return text
	}
	return text[1 : len(text)-1]
}

func (it *Interp) execIf(n *ast.IfStmt) flow {
	for i, cond := range n.Conds {
		if it.eval(cond) != 0 {
			return it.execList(n.Bodies[i])
		}
	}
	if n.Else != nil {
		return it.execList(n.Else)
	}
	return noFlow
}

func (it *Interp) execWhile(n *ast.WhileStmt) flow {
	for it.eval(n.Cond) != 0 {
		f := it.execList(n.Body)
		if f.returned {
			return f
		}
	}
	return noFlow
}

func (it *Interp) execAssn(n *ast.AssnStmt) {
	switch lv := n.LValue.(type) {
	case *ast.SimpleVar:
		it.State.SetVar(lv.Name, it.eval(n.RValue))
	case *ast.ArrayVar:
		index := it.eval(lv.Index)
		it.State.SetArray(lv.Name, index, it.eval(n.RValue))
	default:
		panic(fmt.Sprintf("interp: unhandled lvalue node %T", lv))
	}
}

// callFunc executes the body bound to name and returns whatever its
// RETURN_STMT evaluated, defaulting to 0 — both for an absent function
// (a no-op) and for one that falls off the end of its body without
// returning.
func (it *Interp) callFunc(name string) int64 {
	body, ok := it.State.LookupFunc(name)
	if !ok {
		return 0
	}
	f := it.execList(body)
	if f.returned {
		return f.value
	}
	return 0
}

func (it *Interp) eval(expr ast.Expression) int64 {
	switch n := expr.(type) {
	case *ast.NumLitVal:
		return coerceToInt(n.Text)
	case *ast.BoolLitVal:
		return boolToInt(n.Value)
	case *ast.ReadNumCall:
		return coerceToInt(it.Input())
	case *ast.SimpleVar:
		return it.State.GetVar(n.Name)
	case *ast.ArrayVar:
		return it.State.GetArray(n.Name, it.eval(n.Index))
	case *ast.FuncCall:
		return it.callFunc(n.Name)
	case *ast.UnOp:
		return it.evalUnOp(n)
	case *ast.BinOp:
		return it.evalBinOp(n)
	default:
		panic(fmt.Sprintf("interp: unhandled expression node %T", expr))
	}
}

func (it *Interp) evalUnOp(n *ast.UnOp) int64 {
	v := it.eval(n.Operand)
	switch n.Op {
	case "+":
		return v
	case "-":
		return -v
	case "!":
		return boolToInt(v == 0)
	default:
		panic("interp: unknown unary operator " + n.Op)
	}
}

// evalBinOp evaluates && and || with short-circuit semantics, the
// conventional reading of those operators; the remaining operators
// always evaluate both operands.
func (it *Interp) evalBinOp(n *ast.BinOp) int64 {
	switch n.Op {
	case "&&":
		if it.eval(n.LHS) == 0 {
			return 0
		}
		return boolToInt(it.eval(n.RHS) != 0)
	case "||":
		if it.eval(n.LHS) != 0 {
			return 1
		}
		return boolToInt(it.eval(n.RHS) != 0)
	}

	l, r := it.eval(n.LHS), it.eval(n.RHS)
	switch n.Op {
	case "+":
		return l + r
	case "-":
		return l - r
	case "*":
		return l * r
	case "/":
		if r == 0 {
			return 0
		}
		return l / r
	case "%":
		if r == 0 {
			return 0
		}
		return l % r
	case "==":
		return boolToInt(l == r)
	case "!=":
		return boolToInt(l != r)
	case "<":
		return boolToInt(l < r)
	case "<=":
		return boolToInt(l <= r)
	case ">":
		return boolToInt(l > r)
	case ">=":
		return boolToInt(l >= r)
	default:
		panic("interp: unknown binary operator " + n.Op)
	}
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// coerceToInt is the shared string->integer coercion used for both
// NUMLIT_VAL text and readnum input: a decimal parse (digits, optional
// sign, optional exponent), truncated toward zero; any parse failure
// yields 0.
func coerceToInt(text string) int64 {
	text = strings.TrimSpace(text)
	for _, r := range text {
		if !strings.ContainsRune("0123456789+-.eE", r) {
			return 0
		}
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0
	}
	return int64(math.Trunc(f))
}
