package eval

import (
	"fmt"

	"github.com/enzan-lang/enzan-lang/internal/ast"
	"github.com/enzan-lang/enzan-lang/internal/diag"
	"github.com/enzan-lang/enzan-lang/internal/lexer"
)

// RuntimeErrorKind enumerates the ways evaluation can fail.
type RuntimeErrorKind int

const (
	ErrDivisionByZero RuntimeErrorKind = iota
	ErrUnboundVariable
	ErrNegativeExponent
)

// RuntimeError is a typed evaluation failure. Division by zero, reading an
// unbound variable, and a negative power count surface as errors instead of
// aborting the process.
type RuntimeError struct {
	Kind    RuntimeErrorKind
	Message string
	Span    lexer.Span
}

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	return e.Message
}

func (k RuntimeErrorKind) diagnosticCode() diag.Code {
	switch k {
	case ErrDivisionByZero:
		return diag.CodeRuntimeDivisionByZero
	case ErrUnboundVariable:
		return diag.CodeRuntimeUnboundVariable
	case ErrNegativeExponent:
		return diag.CodeRuntimeNegativeExponent
	default:
		return diag.Code("RUNTIME_UNKNOWN_ERROR")
	}
}

// ToDiagnostic converts a runtime error into a shared diagnostic structure.
func (e *RuntimeError) ToDiagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Stage:    diag.StageRuntime,
		Severity: diag.SeverityError,
		Code:     e.Kind.diagnosticCode(),
		Message:  e.Message,
		Span: diag.Span{
			Filename: e.Span.Filename,
			Line:     e.Span.Line,
			Column:   e.Span.Column,
			Start:    e.Span.Start,
			End:      e.Span.End,
		},
	}
}

// Env is the single flat variable namespace for a program run. Keys are
// unique; the last write wins.
type Env struct {
	vars map[string]int32
}

// NewEnv creates an empty environment.
func NewEnv() *Env {
	return &Env{vars: make(map[string]int32)}
}

// Get looks up a binding.
func (e *Env) Get(name string) (int32, bool) {
	v, ok := e.vars[name]
	return v, ok
}

// Set creates or overwrites a binding.
func (e *Env) Set(name string, v int32) {
	e.vars[name] = v
}

// Evaluator walks the AST and computes 32-bit signed integer results. The
// environment is passed explicitly rather than held in package state, so each
// Evaluator is independent and re-entrant across programs: bindings persist
// between Eval calls on the same instance, which is what the REPL relies on.
type Evaluator struct {
	env *Env
}

// New creates an evaluator with a fresh, empty environment.
func New() *Evaluator {
	return &Evaluator{env: NewEnv()}
}

// Env exposes the evaluator's environment.
func (ev *Evaluator) Env() *Env {
	return ev.env
}

// Eval executes the program and returns the value of its last top-level
// statement, or 0 for an empty program.
func (ev *Evaluator) Eval(program *ast.Program) (int32, *RuntimeError) {
	var result int32
	for _, stmt := range program.Stmts {
		v, err := ev.evalStmt(stmt)
		if err != nil {
			return 0, err
		}
		result = v
	}
	return result, nil
}

// evalStmt executes one statement and returns its value for sequencing.
func (ev *Evaluator) evalStmt(stmt ast.Stmt) (int32, *RuntimeError) {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		return ev.evalExpr(s.Expr)

	case *ast.BlockStmt:
		return ev.evalStmts(s.Stmts)

	case *ast.IfStmt:
		cond, err := ev.evalExpr(s.Cond)
		if err != nil {
			return 0, err
		}
		if cond > 0 {
			return ev.evalStmts(s.Then)
		}
		return 0, nil

	case *ast.WhileStmt:
		var result int32
		for {
			cond, err := ev.evalExpr(s.Cond)
			if err != nil {
				return 0, err
			}
			if cond <= 0 {
				return result, nil
			}
			result, err = ev.evalStmts(s.Body)
			if err != nil {
				return 0, err
			}
		}

	case *ast.ForStmt:
		return ev.evalFor(s)

	default:
		return 0, &RuntimeError{
			Message: fmt.Sprintf("unsupported statement %T", stmt),
			Span:    stmt.Span(),
		}
	}
}

// evalStmts executes statements in order. The result is the last statement's
// value, or 0 for an empty sequence.
func (ev *Evaluator) evalStmts(stmts []ast.Stmt) (int32, *RuntimeError) {
	var result int32
	for _, stmt := range stmts {
		v, err := ev.evalStmt(stmt)
		if err != nil {
			return 0, err
		}
		result = v
	}
	return result, nil
}

// evalFor runs a for loop. The init expression runs once and seeds the
// running result. A missing condition means the body never runs and the
// statement yields 0 — a deliberate simplification, not an error.
func (ev *Evaluator) evalFor(s *ast.ForStmt) (int32, *RuntimeError) {
	var result int32

	if s.Init != nil {
		v, err := ev.evalExpr(s.Init)
		if err != nil {
			return 0, err
		}
		result = v
	}

	if s.Cond == nil {
		return 0, nil
	}

	for {
		cond, err := ev.evalExpr(s.Cond)
		if err != nil {
			return 0, err
		}
		if cond <= 0 {
			return result, nil
		}

		result, err = ev.evalStmts(s.Body)
		if err != nil {
			return 0, err
		}

		if s.Update != nil {
			if _, err := ev.evalExpr(s.Update); err != nil {
				return 0, err
			}
		}
	}
}

func (ev *Evaluator) evalExpr(expr ast.Expr) (int32, *RuntimeError) {
	switch e := expr.(type) {
	case *ast.IntLit:
		return e.Value, nil

	case *ast.VarRef:
		v, ok := ev.env.Get(e.Name)
		if !ok {
			return 0, &RuntimeError{
				Kind:    ErrUnboundVariable,
				Message: fmt.Sprintf("unbound variable '%s'", e.Name),
				Span:    e.Span(),
			}
		}
		return v, nil

	case *ast.UnaryExpr:
		v, err := ev.evalExpr(e.Expr)
		if err != nil {
			return 0, err
		}
		return -v, nil

	case *ast.BinaryExpr:
		return ev.evalBinary(e)

	default:
		return 0, &RuntimeError{
			Message: fmt.Sprintf("unsupported expression %T", expr),
			Span:    expr.Span(),
		}
	}
}

func (ev *Evaluator) evalBinary(e *ast.BinaryExpr) (int32, *RuntimeError) {
	// Assignment evaluates only its right-hand side; the left-hand side is a
	// storage target, guaranteed to be a VarRef by the parser.
	if e.Op == ast.Assign {
		v, err := ev.evalExpr(e.Rhs)
		if err != nil {
			return 0, err
		}
		target := e.Lhs.(*ast.VarRef)
		ev.env.Set(target.Name, v)
		return v, nil
	}

	lhs, err := ev.evalExpr(e.Lhs)
	if err != nil {
		return 0, err
	}
	rhs, err := ev.evalExpr(e.Rhs)
	if err != nil {
		return 0, err
	}

	switch e.Op {
	case ast.Plus:
		return lhs + rhs, nil
	case ast.Minus:
		return lhs - rhs, nil
	case ast.Mul:
		return lhs * rhs, nil
	case ast.Div:
		if rhs == 0 {
			return 0, &RuntimeError{
				Kind:    ErrDivisionByZero,
				Message: "division by zero",
				Span:    e.Span(),
			}
		}
		return lhs / rhs, nil
	case ast.Pow:
		return ev.pow(e, lhs, rhs)
	case ast.Eq:
		return boolToInt(lhs == rhs), nil
	case ast.Neq:
		return boolToInt(lhs != rhs), nil
	case ast.Gt:
		return boolToInt(lhs > rhs), nil
	case ast.GtEq:
		return boolToInt(lhs >= rhs), nil
	case ast.Lt:
		return boolToInt(lhs < rhs), nil
	case ast.LtEq:
		return boolToInt(lhs <= rhs), nil
	default:
		return 0, &RuntimeError{
			Message: fmt.Sprintf("unsupported operator '%s'", e.Op),
			Span:    e.Span(),
		}
	}
}

// pow raises base to a non-negative power by repeated multiplication, with
// native wrapping int32 semantics.
func (ev *Evaluator) pow(e *ast.BinaryExpr, base, count int32) (int32, *RuntimeError) {
	if count < 0 {
		return 0, &RuntimeError{
			Kind:    ErrNegativeExponent,
			Message: fmt.Sprintf("negative exponent %d", count),
			Span:    e.Span(),
		}
	}

	result := int32(1)
	for i := int32(0); i < count; i++ {
		result *= base
	}
	return result, nil
}

func boolToInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
