package ast

import "github.com/enzan-lang/enzan-lang/internal/lexer"

// Node represents any AST node with an associated source span.
type Node interface {
	Span() lexer.Span
}

// Expr represents an expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt represents a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Program represents a parsed source unit: an ordered sequence of top-level
// statements. Nodes are created once by the parser and are read-only for both
// backends.
type Program struct {
	Stmts []Stmt
	span  lexer.Span
}

// Span returns the span covering the entire program.
func (p *Program) Span() lexer.Span { return p.span }

// NewProgram constructs a program node with the provided span.
func NewProgram(span lexer.Span) *Program {
	return &Program{span: span}
}

// SetSpan updates the program span.
func (p *Program) SetSpan(span lexer.Span) {
	p.span = span
}

// IntLit represents a 32-bit signed integer literal.
type IntLit struct {
	Value int32
	span  lexer.Span
}

// Span returns the literal span.
func (l *IntLit) Span() lexer.Span { return l.span }

// NewIntLit constructs an integer literal node.
func NewIntLit(value int32, span lexer.Span) *IntLit {
	return &IntLit{
		Value: value,
		span:  span,
	}
}

// SetSpan updates the literal span.
func (l *IntLit) SetSpan(span lexer.Span) {
	l.span = span
}

// exprNode marks IntLit as an expression.
func (*IntLit) exprNode() {}

// VarRef represents a reference to a variable by name.
type VarRef struct {
	Name string
	span lexer.Span
}

// Span returns the reference span.
func (v *VarRef) Span() lexer.Span { return v.span }

// NewVarRef constructs a variable reference node.
func NewVarRef(name string, span lexer.Span) *VarRef {
	return &VarRef{
		Name: name,
		span: span,
	}
}

// SetSpan updates the reference span.
func (v *VarRef) SetSpan(span lexer.Span) {
	v.span = span
}

// exprNode marks VarRef as an expression.
func (*VarRef) exprNode() {}

// UnaryExpr represents a prefix unary expression.
type UnaryExpr struct {
	Op   UnaryOp
	Expr Expr
	span lexer.Span
}

// Span returns the expression span.
func (e *UnaryExpr) Span() lexer.Span { return e.span }

// NewUnaryExpr constructs a unary expression node.
func NewUnaryExpr(op UnaryOp, expr Expr, span lexer.Span) *UnaryExpr {
	return &UnaryExpr{
		Op:   op,
		Expr: expr,
		span: span,
	}
}

// SetSpan updates the expression span.
func (e *UnaryExpr) SetSpan(span lexer.Span) {
	e.span = span
}

// exprNode marks UnaryExpr as an expression.
func (*UnaryExpr) exprNode() {}

// BinaryExpr represents an infix binary expression. Sub-trees are exclusively
// owned; nothing is shared between nodes.
type BinaryExpr struct {
	Op   BinaryOp
	Lhs  Expr
	Rhs  Expr
	span lexer.Span
}

// Span returns the expression span.
func (e *BinaryExpr) Span() lexer.Span { return e.span }

// NewBinaryExpr constructs a binary expression node.
func NewBinaryExpr(op BinaryOp, lhs, rhs Expr, span lexer.Span) *BinaryExpr {
	return &BinaryExpr{
		Op:   op,
		Lhs:  lhs,
		Rhs:  rhs,
		span: span,
	}
}

// SetSpan updates the expression span.
func (e *BinaryExpr) SetSpan(span lexer.Span) {
	e.span = span
}

// exprNode marks BinaryExpr as an expression.
func (*BinaryExpr) exprNode() {}

// ExprStmt represents an expression statement terminated by ';'.
type ExprStmt struct {
	Expr Expr
	span lexer.Span
}

// Span returns the statement span.
func (s *ExprStmt) Span() lexer.Span { return s.span }

// NewExprStmt constructs an expression statement node.
func NewExprStmt(expr Expr, span lexer.Span) *ExprStmt {
	return &ExprStmt{
		Expr: expr,
		span: span,
	}
}

// stmtNode marks ExprStmt as a statement.
func (*ExprStmt) stmtNode() {}

// BlockStmt represents a braced sequence of statements.
type BlockStmt struct {
	Stmts []Stmt
	span  lexer.Span
}

// Span returns the statement span.
func (s *BlockStmt) Span() lexer.Span { return s.span }

// NewBlockStmt constructs a block statement node.
func NewBlockStmt(stmts []Stmt, span lexer.Span) *BlockStmt {
	return &BlockStmt{
		Stmts: stmts,
		span:  span,
	}
}

// stmtNode marks BlockStmt as a statement.
func (*BlockStmt) stmtNode() {}

// IfStmt represents a conditional statement. There is no else branch in the
// language; a false condition yields 0.
type IfStmt struct {
	Cond Expr
	Then []Stmt
	span lexer.Span
}

// Span returns the statement span.
func (s *IfStmt) Span() lexer.Span { return s.span }

// NewIfStmt constructs an if statement node.
func NewIfStmt(cond Expr, then []Stmt, span lexer.Span) *IfStmt {
	return &IfStmt{
		Cond: cond,
		Then: then,
		span: span,
	}
}

// stmtNode marks IfStmt as a statement.
func (*IfStmt) stmtNode() {}

// WhileStmt represents a while loop.
type WhileStmt struct {
	Cond Expr
	Body []Stmt
	span lexer.Span
}

// Span returns the statement span.
func (s *WhileStmt) Span() lexer.Span { return s.span }

// NewWhileStmt constructs a while statement node.
func NewWhileStmt(cond Expr, body []Stmt, span lexer.Span) *WhileStmt {
	return &WhileStmt{
		Cond: cond,
		Body: body,
		span: span,
	}
}

// stmtNode marks WhileStmt as a statement.
func (*WhileStmt) stmtNode() {}

// ForStmt represents a C-style for loop. Init, Cond, and Update are each
// optional (nil when omitted). A nil Cond means the body never runs and the
// statement yields 0.
type ForStmt struct {
	Init   Expr
	Cond   Expr
	Update Expr
	Body   []Stmt
	span   lexer.Span
}

// Span returns the statement span.
func (s *ForStmt) Span() lexer.Span { return s.span }

// NewForStmt constructs a for statement node.
func NewForStmt(init, cond, update Expr, body []Stmt, span lexer.Span) *ForStmt {
	return &ForStmt{
		Init:   init,
		Cond:   cond,
		Update: update,
		Body:   body,
		span:   span,
	}
}

// stmtNode marks ForStmt as a statement.
func (*ForStmt) stmtNode() {}
