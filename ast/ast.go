// Package ast defines the tagged-tree node types produced by package
// parser and walked by package interp. The tree is immutable once
// built: nothing outside parser ever constructs or mutates a node.
package ast

import (
	"bytes"
	"strings"
)

// Node is the closed sum every AST node belongs to. Rather than a
// class hierarchy, each tag from the language grammar gets its own
// struct; interp's eval and execStmt switch on the concrete type.
type Node interface {
	String() string
}

// Statement is a Node that can appear inside a StmtList.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that produces a value when evaluated.
type Expression interface {
	Node
	expressionNode()
}

// LValue is the subset of expressions legal on the left of "=".
type LValue interface {
	Expression
	lvalueNode()
}

// StmtList is a STMT_LIST node: an ordered sequence of statements. It
// is the shape of a whole program and of every block body (def, if,
// elseif, else, while).
type StmtList struct {
	Stmts []Statement
}

func (*StmtList) statementNode() {}
func (l *StmtList) String() string {
	var out bytes.Buffer
	for _, s := range l.Stmts {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}

// WriteStmt is WRITE_STMT. Each element of Args is a *CROut, a
// *StrLitOut, or an Expression — write_arg's three alternatives.
type WriteStmt struct {
	Args []Node
}

func (*WriteStmt) statementNode() {}
func (w *WriteStmt) String() string {
	parts := make([]string, len(w.Args))
	for i, a := range w.Args {
		parts[i] = a.String()
	}
	return "write(" + strings.Join(parts, ", ") + ")"
}

// FuncDef is FUNC_DEF: def NAME() stmt_list end.
type FuncDef struct {
	Name string
	Body *StmtList
}

func (*FuncDef) statementNode() {}
func (f *FuncDef) String() string {
	return "def " + f.Name + "() " + f.Body.String() + "end"
}

// FuncCall is FUNC_CALL: NAME(). It appears both as a bare statement
// and as a factor in expression position, so it satisfies both
// Statement and Expression.
type FuncCall struct {
	Name string
}

func (*FuncCall) statementNode()  {}
func (*FuncCall) expressionNode() {}
func (f *FuncCall) String() string {
	return f.Name + "()"
}

// IfStmt is IF_STMT. Conds[i]/Bodies[i] are the if/elseif pairs in
// source order; Else is nil when there is no trailing else branch.
// Named fields instead of a single flattened slice: a statically
// typed AST gains nothing from parity-sniffing an untyped sequence of
// conditions and bodies.
type IfStmt struct {
	Conds  []Expression
	Bodies []*StmtList
	Else   *StmtList
}

func (*IfStmt) statementNode() {}
func (n *IfStmt) String() string {
	var out bytes.Buffer
	for i, c := range n.Conds {
		if i == 0 {
			out.WriteString("if ")
		} else {
			out.WriteString("elseif ")
		}
		out.WriteString(c.String())
		out.WriteString(" ")
		out.WriteString(n.Bodies[i].String())
	}
	if n.Else != nil {
		out.WriteString("else ")
		out.WriteString(n.Else.String())
	}
	out.WriteString("end")
	return out.String()
}

// WhileStmt is WHILE_STMT.
type WhileStmt struct {
	Cond Expression
	Body *StmtList
}

func (*WhileStmt) statementNode() {}
func (n *WhileStmt) String() string {
	return "while " + n.Cond.String() + " " + n.Body.String() + "end"
}

// ReturnStmt is RETURN_STMT.
type ReturnStmt struct {
	Expr Expression
}

func (*ReturnStmt) statementNode() {}
func (n *ReturnStmt) String() string {
	return "return " + n.Expr.String()
}

// AssnStmt is ASSN_STMT: an lvalue assignment.
type AssnStmt struct {
	LValue LValue
	RValue Expression
}

func (*AssnStmt) statementNode() {}
func (n *AssnStmt) String() string {
	return n.LValue.String() + " = " + n.RValue.String()
}

// CROut is CR_OUT, a write_arg that emits a newline.
type CROut struct{}

func (*CROut) String() string { return "cr" }

// StrLitOut is STRLIT_OUT: a write_arg carrying a string literal.
// Text keeps the surrounding quote characters verbatim.
type StrLitOut struct {
	Text string
}

func (n *StrLitOut) String() string { return n.Text }

// BinOp is BIN_OP: a left-associative binary operator application.
type BinOp struct {
	Op  string
	LHS Expression
	RHS Expression
}

func (*BinOp) expressionNode() {}
func (n *BinOp) String() string {
	return "(" + n.LHS.String() + " " + n.Op + " " + n.RHS.String() + ")"
}

// UnOp is UN_OP: unary +, -, or !.
type UnOp struct {
	Op      string
	Operand Expression
}

func (*UnOp) expressionNode() {}
func (n *UnOp) String() string {
	return "(" + n.Op + n.Operand.String() + ")"
}

// NumLitVal is NUMLIT_VAL. Text is the verbatim lexeme; interp
// coerces it to an integer at evaluation time.
type NumLitVal struct {
	Text string
}

func (*NumLitVal) expressionNode() {}
func (n *NumLitVal) String() string { return n.Text }

// BoolLitVal is BOOLLIT_VAL.
type BoolLitVal struct {
	Value bool
}

func (*BoolLitVal) expressionNode() {}
func (n *BoolLitVal) String() string {
	if n.Value {
		return "true"
	}
	return "false"
}

// ReadNumCall is READNUM_CALL: readnum().
type ReadNumCall struct{}

func (*ReadNumCall) expressionNode() {}
func (*ReadNumCall) String() string  { return "readnum()" }

// SimpleVar is SIMPLE_VAR: a bare name used as an lvalue or rvalue.
type SimpleVar struct {
	Name string
}

func (*SimpleVar) expressionNode() {}
func (*SimpleVar) lvalueNode()     {}
func (n *SimpleVar) String() string { return n.Name }

// ArrayVar is ARRAY_VAR: name[index], used as an lvalue or rvalue.
type ArrayVar struct {
	Name  string
	Index Expression
}

func (*ArrayVar) expressionNode() {}
func (*ArrayVar) lvalueNode()     {}
func (n *ArrayVar) String() string {
	return n.Name + "[" + n.Index.String() + "]"
}
