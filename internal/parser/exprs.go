package parser

import (
	"github.com/enzan-lang/enzan-lang/internal/ast"
	"github.com/enzan-lang/enzan-lang/internal/lexer"
)

// parseExpr implements precedence climbing: parse one primary as the left-hand
// side, then keep folding binary operators whose precedence is at least
// minPrec. Left-associative operators recurse with prec+1 so equal-precedence
// neighbors stay on the left; right-associative operators (assignment, power)
// recurse with the same precedence so they nest to the right.
func (p *Parser) parseExpr(minPrec int) (ast.Expr, *SyntaxError) {
	lhs, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		tok, ok := p.peek()
		if !ok {
			break
		}

		op, isOp := ast.BinaryOpFromToken(tok.Type)
		if !isOp {
			break
		}

		info := op.Info()
		if !info.BindsAt(minPrec) {
			break
		}

		p.next() // consume the operator

		// Assignment is structurally an expression, but its left-hand side
		// must be a variable. This is enforced here, at parse time, so
		// neither backend ever sees a malformed assignment.
		if op == ast.Assign {
			if _, isVar := lhs.(*ast.VarRef); !isVar {
				return nil, &SyntaxError{Kind: ErrInvalidAssignmentTarget, Token: tok}
			}
		}

		nextPrec := info.Prec
		if info.Assoc == ast.AssocLeft {
			nextPrec++
		}

		rhs, err := p.parseExpr(nextPrec)
		if err != nil {
			return nil, err
		}

		span := mergeSpan(lhs.Span(), rhs.Span())
		lhs = ast.NewBinaryExpr(op, lhs, rhs, span)
	}

	return lhs, nil
}

// spanSetter is satisfied by nodes that expose SetSpan. parsePrimary uses it
// to widen spans of parenthesized expressions without wrapping the underlying
// node in a synthetic AST type.
type spanSetter interface {
	SetSpan(lexer.Span)
}

func (p *Parser) parsePrimary() (ast.Expr, *SyntaxError) {
	tok, ok := p.next()
	if !ok {
		return nil, p.errEof()
	}

	switch tok.Type {
	case lexer.NUM:
		return ast.NewIntLit(tok.Num, tok.Span), nil

	case lexer.IDENT:
		return ast.NewVarRef(tok.Literal, tok.Span), nil

	case lexer.MINUS:
		// Unary minus binds tighter than every binary operator except power,
		// so -2^2 parses as -(2^2).
		operand, err := p.parseExpr(ast.PrecUnary)
		if err != nil {
			return nil, err
		}
		span := mergeSpan(tok.Span, operand.Span())
		return ast.NewUnaryExpr(ast.Neg, operand, span), nil

	case lexer.LPAREN:
		expr, err := p.parseExpr(ast.PrecLowest)
		if err != nil {
			return nil, err
		}
		closing, cerr := p.expect(lexer.RPAREN)
		if cerr != nil {
			return nil, &SyntaxError{Kind: ErrUnmatchedLeftParen, Token: tok}
		}
		span := mergeSpan(tok.Span, closing.Span)
		if setter, ok := expr.(spanSetter); ok {
			setter.SetSpan(span)
		}
		return expr, nil

	default:
		return nil, p.errUnexpected(tok)
	}
}
