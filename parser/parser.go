// Package parser implements a predictive recursive-descent parser:
// one token of lookahead, one function per grammar production, no
// error recovery.
package parser

import (
	"fmt"

	"jerboa/ast"
	"jerboa/lexer"
)

// Parser walks a token stream one lexeme of lookahead at a time.
// Errors accumulates a human-readable trail of failures for callers
// that hold the Parser; Parse does not return it. The grammar
// functions themselves communicate failure through their bool return
// rather than panicking or sentinel errors.
type Parser struct {
	lex    *lexer.Lexer
	cur    lexer.Token
	curOK  bool
	Errors []error
}

// NewParser builds a Parser positioned at the first token of source.
func NewParser(source string) *Parser {
	p := &Parser{lex: lexer.New(source)}
	p.advance()
	return p
}

// Parse is the package's single entry point. ok reports whether a
// valid stmt_list prefix was parsed at all; done additionally reports
// whether that prefix consumed the entire token stream.
func Parse(source string) (ok bool, done bool, program *ast.StmtList) {
	p := NewParser(source)
	list, ok := p.parseStmtList()
	if !ok {
		return false, false, nil
	}
	return true, p.atEOF(), list
}

func (p *Parser) advance() {
	p.cur, p.curOK = p.lex.Next()
}

func (p *Parser) atEOF() bool { return !p.curOK }

func (p *Parser) isKeyword(word string) bool {
	return p.curOK && p.cur.Category == lexer.Keyword && p.cur.Text == word
}

func (p *Parser) isPunct(text string) bool {
	return p.curOK && p.cur.Category == lexer.Punctuation && p.cur.Text == text
}

func (p *Parser) isOperator(text string) bool {
	return p.curOK && p.cur.Category == lexer.Operator && p.cur.Text == text
}

func (p *Parser) fail(format string, a ...any) bool {
	p.Errors = append(p.Errors, fmt.Errorf(format, a...))
	return false
}

// startsStatement implements the stmt_list termination rule: a
// statement begins with write/def/if/while/return or an Identifier;
// anything else — including "end", "else", "elseif", or end-of-stream
// — ends the list.
func (p *Parser) startsStatement() bool {
	if p.atEOF() {
		return false
	}
	if p.cur.Category == lexer.Identifier {
		return true
	}
	if p.cur.Category == lexer.Keyword {
		switch p.cur.Text {
		case "write", "def", "if", "while", "return":
			return true
		}
	}
	return false
}

func (p *Parser) parseStmtList() (*ast.StmtList, bool) {
	list := &ast.StmtList{}
	for p.startsStatement() {
		stmt, ok := p.parseStatement()
		if !ok {
			return nil, false
		}
		list.Stmts = append(list.Stmts, stmt)
	}
	return list, true
}

func (p *Parser) parseStatement() (ast.Statement, bool) {
	switch {
	case p.isKeyword("write"):
		return p.parseWriteStmt()
	case p.isKeyword("def"):
		return p.parseFuncDef()
	case p.isKeyword("if"):
		return p.parseIfStmt()
	case p.isKeyword("while"):
		return p.parseWhileStmt()
	case p.isKeyword("return"):
		p.advance()
		expr, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		return &ast.ReturnStmt{Expr: expr}, true
	case p.curOK && p.cur.Category == lexer.Identifier:
		return p.parseIdentStmt()
	default:
		p.fail("unexpected token starting a statement: %q", p.cur.Text)
		return nil, false
	}
}

func (p *Parser) parseWriteStmt() (ast.Statement, bool) {
	p.advance() // "write"
	if !p.isPunct("(") {
		p.fail("expected '(' after write")
		return nil, false
	}
	p.advance()

	var args []ast.Node
	arg, ok := p.parseWriteArg()
	if !ok {
		return nil, false
	}
	args = append(args, arg)

	for p.isPunct(",") {
		p.advance()
		arg, ok := p.parseWriteArg()
		if !ok {
			return nil, false
		}
		args = append(args, arg)
	}

	if !p.isPunct(")") {
		p.fail("expected ')' to close write")
		return nil, false
	}
	p.advance()
	return &ast.WriteStmt{Args: args}, true
}

func (p *Parser) parseWriteArg() (ast.Node, bool) {
	if p.isKeyword("cr") {
		p.advance()
		return &ast.CROut{}, true
	}
	if p.curOK && p.cur.Category == lexer.StringLiteral {
		text := p.cur.Text
		p.advance()
		return &ast.StrLitOut{Text: text}, true
	}
	return p.parseExpr()
}

func (p *Parser) parseFuncDef() (ast.Statement, bool) {
	p.advance() // "def"
	if !p.curOK || p.cur.Category != lexer.Identifier {
		p.fail("expected function name after def")
		return nil, false
	}
	name := p.cur.Text
	p.advance()

	if !p.isPunct("(") {
		p.fail("expected '(' after function name")
		return nil, false
	}
	p.advance()
	if !p.isPunct(")") {
		p.fail("expected ')' after '(' in function definition")
		return nil, false
	}
	p.advance()

	body, ok := p.parseStmtList()
	if !ok {
		return nil, false
	}

	if !p.isKeyword("end") {
		p.fail("expected 'end' to close def %s", name)
		return nil, false
	}
	p.advance()
	return &ast.FuncDef{Name: name, Body: body}, true
}

func (p *Parser) parseIfStmt() (ast.Statement, bool) {
	p.advance() // "if"
	cond, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	body, ok := p.parseStmtList()
	if !ok {
		return nil, false
	}

	node := &ast.IfStmt{Conds: []ast.Expression{cond}, Bodies: []*ast.StmtList{body}}

	for p.isKeyword("elseif") {
		p.advance()
		c, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		b, ok := p.parseStmtList()
		if !ok {
			return nil, false
		}
		node.Conds = append(node.Conds, c)
		node.Bodies = append(node.Bodies, b)
	}

	if p.isKeyword("else") {
		p.advance()
		b, ok := p.parseStmtList()
		if !ok {
			return nil, false
		}
		node.Else = b
	}

	if !p.isKeyword("end") {
		p.fail("expected 'end' to close if")
		return nil, false
	}
	p.advance()
	return node, true
}

func (p *Parser) parseWhileStmt() (ast.Statement, bool) {
	p.advance() // "while"
	cond, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	body, ok := p.parseStmtList()
	if !ok {
		return nil, false
	}
	if !p.isKeyword("end") {
		p.fail("expected 'end' to close while")
		return nil, false
	}
	p.advance()
	return &ast.WhileStmt{Cond: cond, Body: body}, true
}

// parseIdentStmt handles the fifth statement alternative: ID ( "("
// ")" | [ "[" expr "]" ] "=" expr ).
func (p *Parser) parseIdentStmt() (ast.Statement, bool) {
	name := p.cur.Text
	p.advance()

	if p.isPunct("(") {
		p.advance()
		if !p.isPunct(")") {
			p.fail("expected ')' after '(' in call to %s", name)
			return nil, false
		}
		p.advance()
		return &ast.FuncCall{Name: name}, true
	}

	var lvalue ast.LValue = &ast.SimpleVar{Name: name}
	if p.isOperator("[") {
		p.advance()
		index, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		if !p.isOperator("]") {
			p.fail("expected ']' after array index for %s", name)
			return nil, false
		}
		p.advance()
		lvalue = &ast.ArrayVar{Name: name, Index: index}
	}

	if !p.isPunct("=") {
		p.fail("expected '=' in assignment to %s", name)
		return nil, false
	}
	p.advance()

	rvalue, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	return &ast.AssnStmt{LValue: lvalue, RValue: rvalue}, true
}

// parseExpr implements expr ::= comp_expr { ("&&"|"||") comp_expr },
// folding left for left-associativity.
func (p *Parser) parseExpr() (ast.Expression, bool) {
	left, ok := p.parseCompExpr()
	if !ok {
		return nil, false
	}
	for p.isOperator("&&") || p.isOperator("||") {
		op := p.cur.Text
		p.advance()
		right, ok := p.parseCompExpr()
		if !ok {
			return nil, false
		}
		left = &ast.BinOp{Op: op, LHS: left, RHS: right}
	}
	return left, true
}

// parseCompExpr implements comp_expr ::= "!" comp_expr | arith_expr
// { (comparison op) arith_expr }.
func (p *Parser) parseCompExpr() (ast.Expression, bool) {
	if p.isOperator("!") {
		p.advance()
		operand, ok := p.parseCompExpr()
		if !ok {
			return nil, false
		}
		return &ast.UnOp{Op: "!", Operand: operand}, true
	}

	left, ok := p.parseArithExpr()
	if !ok {
		return nil, false
	}
	for p.isOperator("==") || p.isOperator("!=") || p.isOperator("<") ||
		p.isOperator("<=") || p.isOperator(">") || p.isOperator(">=") {
		op := p.cur.Text
		p.advance()
		right, ok := p.parseArithExpr()
		if !ok {
			return nil, false
		}
		left = &ast.BinOp{Op: op, LHS: left, RHS: right}
	}
	return left, true
}

// parseArithExpr implements arith_expr ::= term { ("+"|"-") term }.
func (p *Parser) parseArithExpr() (ast.Expression, bool) {
	left, ok := p.parseTerm()
	if !ok {
		return nil, false
	}
	for p.isOperator("+") || p.isOperator("-") {
		op := p.cur.Text
		p.advance()
		right, ok := p.parseTerm()
		if !ok {
			return nil, false
		}
		left = &ast.BinOp{Op: op, LHS: left, RHS: right}
	}
	return left, true
}

// parseTerm implements term ::= factor { ("*"|"/"|"%") factor }.
func (p *Parser) parseTerm() (ast.Expression, bool) {
	left, ok := p.parseFactor()
	if !ok {
		return nil, false
	}
	for p.isOperator("*") || p.isOperator("/") || p.isOperator("%") {
		op := p.cur.Text
		p.advance()
		right, ok := p.parseFactor()
		if !ok {
			return nil, false
		}
		left = &ast.BinOp{Op: op, LHS: left, RHS: right}
	}
	return left, true
}

// parseFactor implements the factor production. Parenthesized
// expressions collapse straight to their inner AST: grouping is a
// parse-time artifact only, never a node of its own.
func (p *Parser) parseFactor() (ast.Expression, bool) {
	if !p.curOK {
		p.fail("unexpected end of input in expression")
		return nil, false
	}

	switch {
	case p.isPunct("("):
		p.advance()
		inner, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		if !p.isPunct(")") {
			p.fail("expected ')' to close parenthesized expression")
			return nil, false
		}
		p.advance()
		return inner, true

	case p.isOperator("+") || p.isOperator("-"):
		op := p.cur.Text
		p.advance()
		operand, ok := p.parseFactor()
		if !ok {
			return nil, false
		}
		return &ast.UnOp{Op: op, Operand: operand}, true

	case p.cur.Category == lexer.NumericLiteral:
		text := p.cur.Text
		p.advance()
		return &ast.NumLitVal{Text: text}, true

	case p.isKeyword("true"):
		p.advance()
		return &ast.BoolLitVal{Value: true}, true

	case p.isKeyword("false"):
		p.advance()
		return &ast.BoolLitVal{Value: false}, true

	case p.isKeyword("readnum"):
		p.advance()
		if !p.isPunct("(") {
			p.fail("expected '(' after readnum")
			return nil, false
		}
		p.advance()
		if !p.isPunct(")") {
			p.fail("expected ')' after '(' in readnum call")
			return nil, false
		}
		p.advance()
		return &ast.ReadNumCall{}, true

	case p.cur.Category == lexer.Identifier:
		name := p.cur.Text
		p.advance()
		if p.isPunct("(") {
			p.advance()
			if !p.isPunct(")") {
				p.fail("expected ')' after '(' in call to %s", name)
				return nil, false
			}
			p.advance()
			return &ast.FuncCall{Name: name}, true
		}
		if p.isOperator("[") {
			p.advance()
			index, ok := p.parseExpr()
			if !ok {
				return nil, false
			}
			if !p.isOperator("]") {
				p.fail("expected ']' after array index for %s", name)
				return nil, false
			}
			p.advance()
			return &ast.ArrayVar{Name: name, Index: index}, true
		}
		return &ast.SimpleVar{Name: name}, true

	default:
		p.fail("unexpected token in expression: %q", p.cur.Text)
		return nil, false
	}
}
