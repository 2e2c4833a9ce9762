package parser

import (
	"testing"

	"github.com/go-test/deep"

	"jerboa/ast"
)

func TestParseHelloWorld(t *testing.T) {
	ok, done, program := Parse(`write("Hello, world!", cr)`)
	if !ok || !done {
		t.Fatalf("expected ok && done, got ok=%v done=%v", ok, done)
	}

	want := &ast.StmtList{Stmts: []ast.Statement{
		&ast.WriteStmt{Args: []ast.Node{
			&ast.StrLitOut{Text: `"Hello, world!"`},
			&ast.CROut{},
		}},
	}}

	if diff := deep.Equal(program, want); diff != nil {
		t.Errorf("unexpected AST:\n%v", diff)
	}
}

func TestParseArithmeticPrecedence(t *testing.T) {
	ok, done, program := Parse("a = 3 + 4 * 2")
	if !ok || !done {
		t.Fatalf("expected ok && done, got ok=%v done=%v", ok, done)
	}

	want := &ast.StmtList{Stmts: []ast.Statement{
		&ast.AssnStmt{
			LValue: &ast.SimpleVar{Name: "a"},
			RValue: &ast.BinOp{
				Op:  "+",
				LHS: &ast.NumLitVal{Text: "3"},
				RHS: &ast.BinOp{
					Op:  "*",
					LHS: &ast.NumLitVal{Text: "4"},
					RHS: &ast.NumLitVal{Text: "2"},
				},
			},
		},
	}}

	if diff := deep.Equal(program, want); diff != nil {
		t.Errorf("unexpected AST:\n%v", diff)
	}
}

func TestParseThreeOperandChainIsLeftNested(t *testing.T) {
	ok, done, program := Parse("r = a - b - c")
	if !ok || !done {
		t.Fatalf("expected ok && done, got ok=%v done=%v", ok, done)
	}

	want := &ast.StmtList{Stmts: []ast.Statement{
		&ast.AssnStmt{
			LValue: &ast.SimpleVar{Name: "r"},
			RValue: &ast.BinOp{
				Op: "-",
				LHS: &ast.BinOp{
					Op:  "-",
					LHS: &ast.SimpleVar{Name: "a"},
					RHS: &ast.SimpleVar{Name: "b"},
				},
				RHS: &ast.SimpleVar{Name: "c"},
			},
		},
	}}

	if diff := deep.Equal(program, want); diff != nil {
		t.Errorf("unexpected AST:\n%v", diff)
	}
}

func TestParseSignedLiteralOverrideInAssignment(t *testing.T) {
	// "a -1" after an identifier is binary minus, not a signed literal.
	ok, done, program := Parse("b = a -1")
	if !ok || !done {
		t.Fatalf("expected ok && done, got ok=%v done=%v", ok, done)
	}

	want := &ast.StmtList{Stmts: []ast.Statement{
		&ast.AssnStmt{
			LValue: &ast.SimpleVar{Name: "b"},
			RValue: &ast.BinOp{
				Op:  "-",
				LHS: &ast.SimpleVar{Name: "a"},
				RHS: &ast.NumLitVal{Text: "1"},
			},
		},
	}}

	if diff := deep.Equal(program, want); diff != nil {
		t.Errorf("unexpected AST:\n%v", diff)
	}
}

func TestParseArrayAssignmentAndIndex(t *testing.T) {
	ok, done, program := Parse(`x[1] = 5`)
	if !ok || !done {
		t.Fatalf("expected ok && done, got ok=%v done=%v", ok, done)
	}

	want := &ast.StmtList{Stmts: []ast.Statement{
		&ast.AssnStmt{
			LValue: &ast.ArrayVar{Name: "x", Index: &ast.NumLitVal{Text: "1"}},
			RValue: &ast.NumLitVal{Text: "5"},
		},
	}}

	if diff := deep.Equal(program, want); diff != nil {
		t.Errorf("unexpected AST:\n%v", diff)
	}
}

func TestParseIfElseifElse(t *testing.T) {
	src := `
if a
  write(1)
elseif b
  write(2)
else
  write(3)
end
`
	ok, done, program := Parse(src)
	if !ok || !done {
		t.Fatalf("expected ok && done, got ok=%v done=%v", ok, done)
	}

	ifStmt, isIf := program.Stmts[0].(*ast.IfStmt)
	if !isIf {
		t.Fatalf("expected *ast.IfStmt, got %T", program.Stmts[0])
	}
	if len(ifStmt.Conds) != 2 || len(ifStmt.Bodies) != 2 {
		t.Fatalf("expected 2 cond/body pairs, got %d/%d", len(ifStmt.Conds), len(ifStmt.Bodies))
	}
	if ifStmt.Else == nil {
		t.Fatal("expected an else body")
	}
}

func TestParseWhileLoop(t *testing.T) {
	src := `
while i < 3
  write(i)
  i = i + 1
end
`
	ok, done, program := Parse(src)
	if !ok || !done {
		t.Fatalf("expected ok && done, got ok=%v done=%v", ok, done)
	}
	if _, isWhile := program.Stmts[0].(*ast.WhileStmt); !isWhile {
		t.Fatalf("expected *ast.WhileStmt, got %T", program.Stmts[0])
	}
}

func TestParseFuncDefAndCall(t *testing.T) {
	ok, done, program := Parse(`def f() n = n + 1 end  n = 0  f()`)
	if !ok || !done {
		t.Fatalf("expected ok && done, got ok=%v done=%v", ok, done)
	}
	if len(program.Stmts) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(program.Stmts))
	}
	if _, isDef := program.Stmts[0].(*ast.FuncDef); !isDef {
		t.Fatalf("expected *ast.FuncDef, got %T", program.Stmts[0])
	}
	if _, isCall := program.Stmts[2].(*ast.FuncCall); !isCall {
		t.Fatalf("expected *ast.FuncCall, got %T", program.Stmts[2])
	}
}

func TestParseFuncCallAsExpression(t *testing.T) {
	ok, done, program := Parse(`a = f() + 1`)
	if !ok || !done {
		t.Fatalf("expected ok && done, got ok=%v done=%v", ok, done)
	}
	assn := program.Stmts[0].(*ast.AssnStmt)
	bin := assn.RValue.(*ast.BinOp)
	if _, isCall := bin.LHS.(*ast.FuncCall); !isCall {
		t.Fatalf("expected *ast.FuncCall on the left, got %T", bin.LHS)
	}
}

func TestParseUnaryBang(t *testing.T) {
	ok, done, program := Parse(`a = !b == c`)
	if !ok || !done {
		t.Fatalf("expected ok && done, got ok=%v done=%v", ok, done)
	}
	assn := program.Stmts[0].(*ast.AssnStmt)
	un, isUn := assn.RValue.(*ast.UnOp)
	if !isUn || un.Op != "!" {
		t.Fatalf("expected a leading unary !, got %T", assn.RValue)
	}
	if _, isBin := un.Operand.(*ast.BinOp); !isBin {
		t.Fatalf("expected ! to wrap the whole comparison, got %T", un.Operand)
	}
}

func TestParseRejectsIncompleteInput(t *testing.T) {
	ok, _, _ := Parse("if a write(1)")
	if ok {
		t.Fatal("expected parse failure on a missing 'end'")
	}
}

func TestParseStopsAtUnexpectedTrailingToken(t *testing.T) {
	ok, done, _ := Parse("a = 1 )")
	if !ok {
		t.Fatal("expected the stmt_list prefix to parse")
	}
	if done {
		t.Fatal("expected done=false: a stray ')' is not consumed")
	}
}

func TestParseIsPureFunctionOfInput(t *testing.T) {
	src := `a = 1 + 2`
	ok1, done1, p1 := Parse(src)
	ok2, done2, p2 := Parse(src)
	if ok1 != ok2 || done1 != done2 {
		t.Fatal("Parse is not deterministic")
	}
	if diff := deep.Equal(p1, p2); diff != nil {
		t.Errorf("Parse is not deterministic:\n%v", diff)
	}
}
