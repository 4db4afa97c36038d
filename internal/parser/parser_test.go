package parser

import (
	"fmt"
	"testing"

	"github.com/enzan-lang/enzan-lang/internal/ast"
	"github.com/enzan-lang/enzan-lang/internal/lexer"
)

func parse(t *testing.T, input string) *ast.Program {
	t.Helper()

	tokens, lerr := lexer.New(input).Lex()
	if lerr != nil {
		t.Fatalf("lex error: %v", lerr)
	}

	program, perr := New(tokens).Parse()
	if perr != nil {
		t.Fatalf("parse error: %v", perr)
	}
	return program
}

func parseErr(t *testing.T, input string) *SyntaxError {
	t.Helper()

	tokens, lerr := lexer.New(input).Lex()
	if lerr != nil {
		t.Fatalf("lex error: %v", lerr)
	}

	_, perr := New(tokens).Parse()
	if perr == nil {
		t.Fatalf("expected a parse error for %q", input)
	}
	return perr
}

// exprString renders an expression fully parenthesized so tree shape is
// visible in failure messages.
func exprString(e ast.Expr) string {
	switch n := e.(type) {
	case *ast.IntLit:
		return fmt.Sprintf("%d", n.Value)
	case *ast.VarRef:
		return n.Name
	case *ast.UnaryExpr:
		return fmt.Sprintf("(%s%s)", n.Op, exprString(n.Expr))
	case *ast.BinaryExpr:
		return fmt.Sprintf("(%s %s %s)", exprString(n.Lhs), n.Op, exprString(n.Rhs))
	default:
		return fmt.Sprintf("%T", e)
	}
}

func firstExpr(t *testing.T, program *ast.Program) ast.Expr {
	t.Helper()

	if len(program.Stmts) == 0 {
		t.Fatal("program has no statements")
	}
	stmt, ok := program.Stmts[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("stmt is not *ast.ExprStmt. got=%T", program.Stmts[0])
	}
	return stmt.Expr
}

func TestParse_PrecedenceAndAssociativity(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 + 2 * 3;", "(1 + (2 * 3))"},
		{"1 * 2 + 3;", "((1 * 2) + 3)"},
		{"(1 + 2) * 3;", "((1 + 2) * 3)"},
		{"1 - 2 - 3;", "((1 - 2) - 3)"},
		{"1 / 2 / 3;", "((1 / 2) / 3)"},
		{"2 ^ 3 ^ 2;", "(2 ^ (3 ^ 2))"},
		{"-2 ^ 2;", "(-(2 ^ 2))"},
		{"--1;", "(-(-1))"},
		{"-x + 1;", "((-x) + 1)"},
		{"1 < 2 + 3;", "(1 < (2 + 3))"},
		{"1 + 2 == 3;", "((1 + 2) == 3)"},
		{"1 < 2 == 3 < 4;", "((1 < 2) == (3 < 4))"},
		{"x = y = 1;", "(x = (y = 1))"},
		{"x = 1 + 2;", "(x = (1 + 2))"},
		{"2 * 3 ^ 2;", "(2 * (3 ^ 2))"},
	}

	for _, tt := range tests {
		program := parse(t, tt.input)
		got := exprString(firstExpr(t, program))
		if got != tt.expected {
			t.Errorf("input %q - expected %s, got %s", tt.input, tt.expected, got)
		}
	}
}

func TestParse_IntLitValue(t *testing.T) {
	program := parse(t, "42;")
	lit, ok := firstExpr(t, program).(*ast.IntLit)
	if !ok {
		t.Fatalf("expr is not *ast.IntLit. got=%T", firstExpr(t, program))
	}
	if lit.Value != 42 {
		t.Errorf("value wrong. expected=42, got=%d", lit.Value)
	}
}

func TestParse_MultipleStatements(t *testing.T) {
	program := parse(t, "x = 1; y = 2; x + y;")
	if len(program.Stmts) != 3 {
		t.Fatalf("statement count wrong. expected=3, got=%d", len(program.Stmts))
	}
}

func TestParse_IfStmt(t *testing.T) {
	program := parse(t, "if (x > 0) { 1; 2; }")
	if len(program.Stmts) != 1 {
		t.Fatalf("statement count wrong. expected=1, got=%d", len(program.Stmts))
	}

	stmt, ok := program.Stmts[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("stmt is not *ast.IfStmt. got=%T", program.Stmts[0])
	}
	if got := exprString(stmt.Cond); got != "(x > 0)" {
		t.Errorf("cond wrong. got=%s", got)
	}
	if len(stmt.Then) != 2 {
		t.Errorf("then body length wrong. expected=2, got=%d", len(stmt.Then))
	}
}

func TestParse_WhileStmt(t *testing.T) {
	program := parse(t, "while (x < 10) { x = x + 1; }")
	stmt, ok := program.Stmts[0].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("stmt is not *ast.WhileStmt. got=%T", program.Stmts[0])
	}
	if got := exprString(stmt.Cond); got != "(x < 10)" {
		t.Errorf("cond wrong. got=%s", got)
	}
	if len(stmt.Body) != 1 {
		t.Errorf("body length wrong. expected=1, got=%d", len(stmt.Body))
	}
}

func TestParse_ForStmt(t *testing.T) {
	program := parse(t, "for (i = 0; i < 10; i = i + 1) { i; }")
	stmt, ok := program.Stmts[0].(*ast.ForStmt)
	if !ok {
		t.Fatalf("stmt is not *ast.ForStmt. got=%T", program.Stmts[0])
	}
	if stmt.Init == nil || stmt.Cond == nil || stmt.Update == nil {
		t.Fatal("all three header expressions should be present")
	}
	if got := exprString(stmt.Init); got != "(i = 0)" {
		t.Errorf("init wrong. got=%s", got)
	}
	if got := exprString(stmt.Cond); got != "(i < 10)" {
		t.Errorf("cond wrong. got=%s", got)
	}
	if got := exprString(stmt.Update); got != "(i = (i + 1))" {
		t.Errorf("update wrong. got=%s", got)
	}
}

func TestParse_ForStmt_OptionalParts(t *testing.T) {
	tests := []struct {
		input      string
		wantInit   bool
		wantCond   bool
		wantUpdate bool
	}{
		{"for (;;) { 1; }", false, false, false},
		{"for (i = 0;;) { 1; }", true, false, false},
		{"for (; i < 3;) { 1; }", false, true, false},
		{"for (;; i = i + 1) { 1; }", false, false, true},
		{"for (i = 0; i < 3;) { 1; }", true, true, false},
	}

	for _, tt := range tests {
		program := parse(t, tt.input)
		stmt, ok := program.Stmts[0].(*ast.ForStmt)
		if !ok {
			t.Fatalf("input %q - stmt is not *ast.ForStmt. got=%T", tt.input, program.Stmts[0])
		}
		if (stmt.Init != nil) != tt.wantInit {
			t.Errorf("input %q - init presence wrong. expected=%v", tt.input, tt.wantInit)
		}
		if (stmt.Cond != nil) != tt.wantCond {
			t.Errorf("input %q - cond presence wrong. expected=%v", tt.input, tt.wantCond)
		}
		if (stmt.Update != nil) != tt.wantUpdate {
			t.Errorf("input %q - update presence wrong. expected=%v", tt.input, tt.wantUpdate)
		}
	}
}

func TestParse_BlockStmt(t *testing.T) {
	program := parse(t, "{ 1; 2; }")
	stmt, ok := program.Stmts[0].(*ast.BlockStmt)
	if !ok {
		t.Fatalf("stmt is not *ast.BlockStmt. got=%T", program.Stmts[0])
	}
	if len(stmt.Stmts) != 2 {
		t.Errorf("block length wrong. expected=2, got=%d", len(stmt.Stmts))
	}
}

func TestParse_EmptyProgram(t *testing.T) {
	program := parse(t, "")
	if len(program.Stmts) != 0 {
		t.Errorf("expected no statements, got %d", len(program.Stmts))
	}
}

func TestParse_InvalidAssignmentTarget(t *testing.T) {
	tests := []string{
		"1 = 2;",
		"1 + 2 = 3;",
		"-x = 1;",
	}

	for _, input := range tests {
		err := parseErr(t, input)
		if err.Kind != ErrInvalidAssignmentTarget {
			t.Errorf("input %q - kind wrong. expected=ErrInvalidAssignmentTarget, got=%v",
				input, err.Kind)
		}
		if err.Token.Type != lexer.ASSIGN {
			t.Errorf("input %q - error token should be '=', got %q", input, err.Token.Type)
		}
	}
}

func TestParse_UnmatchedLeftParen(t *testing.T) {
	err := parseErr(t, "(1 + 2;")
	if err.Kind != ErrUnmatchedLeftParen {
		t.Fatalf("kind wrong. expected=ErrUnmatchedLeftParen, got=%v", err.Kind)
	}
	if err.Token.Type != lexer.LPAREN {
		t.Errorf("error token should be '(', got %q", err.Token.Type)
	}
	if err.Token.Span.Start != 0 {
		t.Errorf("error should point at the opening paren, got offset %d", err.Token.Span.Start)
	}
}

func TestParse_UnexpectedToken(t *testing.T) {
	tests := []string{
		"1 + 2);",
		"1 2;",
		"if x > 0 { 1; }",
	}

	for _, input := range tests {
		err := parseErr(t, input)
		if err.Kind != ErrUnexpectedToken {
			t.Errorf("input %q - kind wrong. expected=ErrUnexpectedToken, got=%v", input, err.Kind)
		}
	}
}

func TestParse_UnexpectedEof(t *testing.T) {
	tests := []string{
		"1 + 2",
		"1 +",
		"while (x < 10) { x;",
		"if (",
	}

	for _, input := range tests {
		err := parseErr(t, input)
		if err.Kind != ErrUnexpectedEof {
			t.Errorf("input %q - kind wrong. expected=ErrUnexpectedEof, got=%v", input, err.Kind)
		}
		if err.HasSpan() {
			t.Errorf("input %q - eof errors carry no span", input)
		}
	}
}

func TestParse_ProgramSpan(t *testing.T) {
	input := "1 + 2;"
	program := parse(t, input)
	span := program.Span()
	if span.Start != 0 || span.End != len(input) {
		t.Errorf("program span wrong. expected=[0,%d), got=[%d,%d)",
			len(input), span.Start, span.End)
	}
}

func TestParse_ParenWidensSpan(t *testing.T) {
	// The parenthesized expression's span covers the parens, not just the
	// inner expression.
	program := parse(t, "(1 + 2);")
	expr := firstExpr(t, program)
	span := expr.Span()
	if span.Start != 0 || span.End != 7 {
		t.Errorf("span wrong. expected=[0,7), got=[%d,%d)", span.Start, span.End)
	}
}

func TestSyntaxError_ToDiagnostic(t *testing.T) {
	err := parseErr(t, "1 = 2;")
	d := err.ToDiagnostic()
	if d.Stage != "parser" {
		t.Errorf("stage wrong. expected=parser, got=%s", d.Stage)
	}
	if d.Code != "PARSER_INVALID_ASSIGNMENT_TARGET" {
		t.Errorf("code wrong. got=%s", d.Code)
	}
	if !d.Span.IsValid() {
		t.Error("diagnostic should carry the '=' token span")
	}
}
