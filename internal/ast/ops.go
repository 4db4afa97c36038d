package ast

import "github.com/enzan-lang/enzan-lang/internal/lexer"

// Precedence levels, low to high. Assignment binds loosest, exponentiation
// tightest; unary minus sits between product and power so -2^2 is -(2^2).
const (
	PrecLowest = iota
	PrecAssign
	PrecCompare
	PrecSum
	PrecProduct
	PrecUnary
	PrecPow
)

// Assoc describes the associativity of a binary operator.
type Assoc int

const (
	AssocLeft Assoc = iota
	AssocRight
)

// BinaryOp identifies a binary operator.
type BinaryOp int

const (
	Plus BinaryOp = iota
	Minus
	Mul
	Div
	Pow
	Eq
	Neq
	Gt
	GtEq
	Lt
	LtEq
	Assign
)

// String returns the operator's source text.
func (op BinaryOp) String() string {
	switch op {
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Pow:
		return "^"
	case Eq:
		return "=="
	case Neq:
		return "!="
	case Gt:
		return ">"
	case GtEq:
		return ">="
	case Lt:
		return "<"
	case LtEq:
		return "<="
	case Assign:
		return "="
	default:
		return "?"
	}
}

// UnaryOp identifies a unary operator.
type UnaryOp int

const (
	// Neg is unary minus, the only prefix operator.
	Neg UnaryOp = iota
)

// String returns the operator's source text.
func (op UnaryOp) String() string {
	return "-"
}

// OpInfo carries the precedence and associativity of a binary operator.
type OpInfo struct {
	Prec  int
	Assoc Assoc
}

// BindsAt reports whether an operator with this info binds at the given
// minimum precedence threshold.
func (i OpInfo) BindsAt(minPrec int) bool {
	return i.Prec >= minPrec
}

// Info returns the precedence and associativity of the operator. Assign and
// Pow are right-associative; everything else is left-associative.
func (op BinaryOp) Info() OpInfo {
	switch op {
	case Assign:
		return OpInfo{Prec: PrecAssign, Assoc: AssocRight}
	case Eq, Neq, Gt, GtEq, Lt, LtEq:
		return OpInfo{Prec: PrecCompare, Assoc: AssocLeft}
	case Plus, Minus:
		return OpInfo{Prec: PrecSum, Assoc: AssocLeft}
	case Mul, Div:
		return OpInfo{Prec: PrecProduct, Assoc: AssocLeft}
	case Pow:
		return OpInfo{Prec: PrecPow, Assoc: AssocRight}
	default:
		return OpInfo{Prec: PrecLowest, Assoc: AssocLeft}
	}
}

// BinaryOpFromToken maps a token type onto a binary operator. The second
// return value is false for tokens that are not binary operators.
func BinaryOpFromToken(tt lexer.TokenType) (BinaryOp, bool) {
	switch tt {
	case lexer.PLUS:
		return Plus, true
	case lexer.MINUS:
		return Minus, true
	case lexer.ASTERISK:
		return Mul, true
	case lexer.SLASH:
		return Div, true
	case lexer.CARET:
		return Pow, true
	case lexer.EQ:
		return Eq, true
	case lexer.NOT_EQ:
		return Neq, true
	case lexer.GT:
		return Gt, true
	case lexer.GE:
		return GtEq, true
	case lexer.LT:
		return Lt, true
	case lexer.LE:
		return LtEq, true
	case lexer.ASSIGN:
		return Assign, true
	default:
		return 0, false
	}
}
