// Package codegen lowers the AST to AArch64 assembly text for an external
// assembler. Every expression pushes exactly one 16-byte stack slot; binary
// operators pop two values and push one, so the operand stack mirrors the
// evaluator's expression model instruction by instruction.
package codegen

import (
	"fmt"
	"strings"

	"github.com/enzan-lang/enzan-lang/internal/ast"
	"github.com/enzan-lang/enzan-lang/internal/diag"
	"github.com/enzan-lang/enzan-lang/internal/lexer"
)

// GenError reports a code generation failure, currently only references to
// variables that no statement in the program ever assigns.
type GenError struct {
	Message string
	Span    lexer.Span
}

// Error implements the error interface.
func (e *GenError) Error() string {
	return e.Message
}

// ToDiagnostic converts a codegen error into a shared diagnostic structure.
func (e *GenError) ToDiagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Stage:    diag.StageCodegen,
		Severity: diag.SeverityError,
		Code:     diag.CodeGenUndefinedVariable,
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

// Generator walks an AST and emits AArch64 assembly source text.
type Generator struct {
	out       strings.Builder
	nextLabel int
	slots     map[string]int // variable name -> frame slot index
	order     []string       // slot assignment in first-appearance order
	usedTrap  bool
}

// New creates a new generator.
func New() *Generator {
	return &Generator{slots: make(map[string]int)}
}

// Generate lowers the program to assembly text. The result carries a
// `_main` entry point; the final statement's value is left in x0 as the
// process exit status. Assembling and linking belong to the caller.
func (g *Generator) Generate(program *ast.Program) (string, error) {
	g.collectVars(program)

	g.line("    .globl _main")
	g.line("_main:")
	g.line("    stp x29, x30, [sp, #-16]!")
	g.line("    mov x29, sp")

	if n := len(g.order); n > 0 {
		g.line("    sub sp, sp, #%d", 16*n)
		// Slots are zeroed so a read that executes before its first store
		// still has a defined value.
		for i := range g.order {
			g.line("    str xzr, [x29, #-%d]", 16*(i+1))
		}
	}

	// An empty program exits 0.
	g.line("    mov x0, #0")

	for _, stmt := range program.Stmts {
		if err := g.stmt(stmt); err != nil {
			return "", err
		}
	}

	g.line("    mov sp, x29")
	g.line("    ldp x29, x30, [sp], #16")
	g.line("    ret")

	if g.usedTrap {
		// Shared landing pad for division by zero and negative exponents.
		// brk never returns, so falling after ret is fine.
		g.line(".Ltrap:")
		g.line("    brk #0x1")
	}

	return g.out.String(), nil
}

func (g *Generator) line(format string, args ...any) {
	fmt.Fprintf(&g.out, format+"\n", args...)
}

// newLabel returns a fresh label index. Every control-flow site gets its own
// index so multiple ifs or loops never collide.
func (g *Generator) newLabel() int {
	n := g.nextLabel
	g.nextLabel++
	return n
}

// push spills x0 onto the operand stack as a 16-byte-aligned slot.
func (g *Generator) push() {
	g.line("    str x0, [sp, #-16]!")
}

// pop loads the top operand-stack slot into the given register.
func (g *Generator) pop(reg string) {
	g.line("    ldr %s, [sp], #16", reg)
}

// trapIf emits a conditional branch to the shared trap block.
func (g *Generator) trapIf(cond string) {
	g.usedTrap = true
	g.line("    %s, .Ltrap", cond)
}

// slotOffset returns the x29-relative byte offset of a variable's frame slot.
func (g *Generator) slotOffset(name string) int {
	return 16 * (g.slots[name] + 1)
}

// collectVars assigns a frame slot to every variable the program assigns,
// in first-appearance order.
func (g *Generator) collectVars(program *ast.Program) {
	for _, stmt := range program.Stmts {
		g.collectStmt(stmt)
	}
}

func (g *Generator) collectStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		g.collectExpr(s.Expr)
	case *ast.BlockStmt:
		for _, child := range s.Stmts {
			g.collectStmt(child)
		}
	case *ast.IfStmt:
		g.collectExpr(s.Cond)
		for _, child := range s.Then {
			g.collectStmt(child)
		}
	case *ast.WhileStmt:
		g.collectExpr(s.Cond)
		for _, child := range s.Body {
			g.collectStmt(child)
		}
	case *ast.ForStmt:
		g.collectExpr(s.Init)
		g.collectExpr(s.Cond)
		g.collectExpr(s.Update)
		for _, child := range s.Body {
			g.collectStmt(child)
		}
	}
}

func (g *Generator) collectExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case nil:
	case *ast.UnaryExpr:
		g.collectExpr(e.Expr)
	case *ast.BinaryExpr:
		if e.Op == ast.Assign {
			target := e.Lhs.(*ast.VarRef)
			if _, ok := g.slots[target.Name]; !ok {
				g.slots[target.Name] = len(g.order)
				g.order = append(g.order, target.Name)
			}
		} else {
			g.collectExpr(e.Lhs)
		}
		g.collectExpr(e.Rhs)
	}
}

// stmt lowers one statement, leaving the statement's value in x0 with the
// operand stack balanced.
func (g *Generator) stmt(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		if err := g.expr(s.Expr); err != nil {
			return err
		}
		g.pop("x0")
		return nil

	case *ast.BlockStmt:
		return g.stmts(s.Stmts)

	case *ast.IfStmt:
		return g.ifStmt(s)

	case *ast.WhileStmt:
		return g.whileStmt(s)

	case *ast.ForStmt:
		return g.forStmt(s)

	default:
		return &GenError{
			Message: fmt.Sprintf("unsupported statement %T", stmt),
			Span:    stmt.Span(),
		}
	}
}

// stmts lowers a statement sequence. An empty sequence yields 0, matching the
// evaluator's empty-block rule.
func (g *Generator) stmts(stmts []ast.Stmt) error {
	if len(stmts) == 0 {
		g.line("    mov x0, #0")
		return nil
	}
	for _, stmt := range stmts {
		if err := g.stmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

// ifStmt lowers to: condition, branch to else unless positive, then-branch,
// jump over the else block. The else block only materializes the 0 an untaken if
// yields.
func (g *Generator) ifStmt(s *ast.IfStmt) error {
	n := g.newLabel()

	if err := g.expr(s.Cond); err != nil {
		return err
	}
	g.pop("x0")
	g.line("    cmp x0, #0")
	g.line("    b.le .Lelse%d", n)

	if err := g.stmts(s.Then); err != nil {
		return err
	}
	g.line("    b .Lend%d", n)

	g.line(".Lelse%d:", n)
	g.line("    mov x0, #0")
	g.line(".Lend%d:", n)

	return nil
}

// whileStmt keeps the running result in a dedicated stack slot because the
// condition re-evaluation each iteration clobbers x0.
func (g *Generator) whileStmt(s *ast.WhileStmt) error {
	n := g.newLabel()

	g.line("    mov x0, #0")
	g.push() // running result; 0 if the loop never runs

	g.line(".Lbegin%d:", n)
	if err := g.expr(s.Cond); err != nil {
		return err
	}
	g.pop("x1")
	g.line("    cmp x1, #0")
	g.line("    b.le .Lend%d", n)

	if err := g.stmts(s.Body); err != nil {
		return err
	}
	g.line("    str x0, [sp]") // update running result
	g.line("    b .Lbegin%d", n)

	g.line(".Lend%d:", n)
	g.pop("x0")

	return nil
}

// forStmt lowers the full header: init once, then the condition/body/update
// cycle. A missing condition skips the loop entirely and yields 0, matching
// the evaluator's documented simplification.
func (g *Generator) forStmt(s *ast.ForStmt) error {
	if s.Init != nil {
		if err := g.expr(s.Init); err != nil {
			return err
		}
		g.pop("x0") // init value seeds the running result
	} else {
		g.line("    mov x0, #0")
	}

	if s.Cond == nil {
		g.line("    mov x0, #0")
		return nil
	}

	n := g.newLabel()

	g.push() // running result

	g.line(".Lbegin%d:", n)
	if err := g.expr(s.Cond); err != nil {
		return err
	}
	g.pop("x1")
	g.line("    cmp x1, #0")
	g.line("    b.le .Lend%d", n)

	if err := g.stmts(s.Body); err != nil {
		return err
	}
	g.line("    str x0, [sp]")

	if s.Update != nil {
		if err := g.expr(s.Update); err != nil {
			return err
		}
		g.pop("x1") // update value is discarded
	}
	g.line("    b .Lbegin%d", n)

	g.line(".Lend%d:", n)
	g.pop("x0")

	return nil
}

// expr lowers one expression, leaving exactly one pushed value on the operand
// stack.
func (g *Generator) expr(expr ast.Expr) error {
	switch e := expr.(type) {
	case *ast.IntLit:
		g.loadImmediate(int64(e.Value))
		g.push()
		return nil

	case *ast.VarRef:
		if _, ok := g.slots[e.Name]; !ok {
			return &GenError{
				Message: fmt.Sprintf("undefined variable '%s'", e.Name),
				Span:    e.Span(),
			}
		}
		g.line("    ldr x0, [x29, #-%d]", g.slotOffset(e.Name))
		g.push()
		return nil

	case *ast.UnaryExpr:
		if err := g.expr(e.Expr); err != nil {
			return err
		}
		g.pop("x0")
		g.line("    neg x0, x0")
		g.push()
		return nil

	case *ast.BinaryExpr:
		return g.binary(e)

	default:
		return &GenError{
			Message: fmt.Sprintf("unsupported expression %T", expr),
			Span:    expr.Span(),
		}
	}
}

// loadImmediate materializes a constant in x0. mov only encodes 16-bit
// immediates, so larger literals go through the assembler's literal pool.
func (g *Generator) loadImmediate(v int64) {
	if v >= 0 && v <= 0xffff {
		g.line("    mov x0, #%d", v)
		return
	}
	g.line("    ldr x0, =%d", v)
}

func (g *Generator) binary(e *ast.BinaryExpr) error {
	// Assignment stores the right-hand side into the target's frame slot and
	// pushes the value back so the expression still yields it.
	if e.Op == ast.Assign {
		if err := g.expr(e.Rhs); err != nil {
			return err
		}
		target := e.Lhs.(*ast.VarRef)
		g.pop("x0")
		g.line("    str x0, [x29, #-%d]", g.slotOffset(target.Name))
		g.push()
		return nil
	}

	if err := g.expr(e.Lhs); err != nil {
		return err
	}
	if err := g.expr(e.Rhs); err != nil {
		return err
	}
	g.pop("x1") // rhs
	g.pop("x0") // lhs

	switch e.Op {
	case ast.Plus:
		g.line("    add x0, x0, x1")
	case ast.Minus:
		g.line("    sub x0, x0, x1")
	case ast.Mul:
		g.line("    mul x0, x0, x1")
	case ast.Div:
		// sdiv yields 0 on a zero divisor instead of faulting; trap first so
		// compiled programs fail the same way interpreted ones do.
		g.trapIf("cbz x1")
		g.line("    sdiv x0, x0, x1")
	case ast.Pow:
		g.pow()
	case ast.Eq:
		g.compare("eq")
	case ast.Neq:
		g.compare("ne")
	case ast.Gt:
		g.compare("gt")
	case ast.GtEq:
		g.compare("ge")
	case ast.Lt:
		g.compare("lt")
	case ast.LtEq:
		g.compare("le")
	default:
		return &GenError{
			Message: fmt.Sprintf("unsupported operator '%s'", e.Op),
			Span:    e.Span(),
		}
	}

	g.push()
	return nil
}

// compare emits cmp followed by a condition-flag set so the boolean result is
// 0/1, the same encoding the evaluator uses.
func (g *Generator) compare(cond string) {
	g.line("    cmp x0, x1")
	g.line("    cset x0, %s", cond)
}

// pow lowers x0^x1 to a counted multiply loop. The count is checked for sign
// (negative counts trap, like the evaluator's error) and for zero up front so
// x^0 is 1.
func (g *Generator) pow() {
	n := g.newLabel()

	g.trapIf("tbnz x1, #63") // negative exponent
	g.line("    mov x2, #1")
	g.line("    cbz x1, .Lpowend%d", n)
	g.line(".Lpow%d:", n)
	g.line("    mul x2, x2, x0")
	g.line("    subs x1, x1, #1")
	g.line("    b.ne .Lpow%d", n)
	g.line(".Lpowend%d:", n)
	g.line("    mov x0, x2")
}
