package parser

import (
	"fmt"

	"github.com/enzan-lang/enzan-lang/internal/diag"
	"github.com/enzan-lang/enzan-lang/internal/lexer"
)

// SyntaxErrorKind enumerates the ways a parse can fail.
type SyntaxErrorKind int

const (
	// ErrUnmatchedLeftParen reports a '(' whose matching ')' never arrived.
	// The attached token is the offending '('.
	ErrUnmatchedLeftParen SyntaxErrorKind = iota
	// ErrUnexpectedToken reports a token that cannot start or continue the
	// construct being parsed.
	ErrUnexpectedToken
	// ErrInvalidAssignmentTarget reports an '=' whose left-hand side is not a
	// variable. The attached token is the '='.
	ErrInvalidAssignmentTarget
	// ErrUnexpectedEof reports that input ran out mid-construct. It carries no
	// token and therefore no span.
	ErrUnexpectedEof
)

// SyntaxError is the first (and only) error produced by a parse. Parsing has
// no recovery mode: one bad statement aborts the whole program.
type SyntaxError struct {
	Kind  SyntaxErrorKind
	Token lexer.Token // valid unless Kind == ErrUnexpectedEof
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	switch e.Kind {
	case ErrUnmatchedLeftParen:
		return "unmatched left parenthesis"
	case ErrUnexpectedToken:
		return fmt.Sprintf("unexpected token '%s'", e.Token.Literal)
	case ErrInvalidAssignmentTarget:
		return "invalid assignment target"
	case ErrUnexpectedEof:
		return "unexpected end of file"
	default:
		return "syntax error"
	}
}

// HasSpan reports whether the error is attributable to a specific token.
func (e *SyntaxError) HasSpan() bool {
	return e.Kind != ErrUnexpectedEof
}

func (k SyntaxErrorKind) diagnosticCode() diag.Code {
	switch k {
	case ErrUnmatchedLeftParen:
		return diag.CodeParserUnmatchedLeftParen
	case ErrUnexpectedToken:
		return diag.CodeParserUnexpectedToken
	case ErrInvalidAssignmentTarget:
		return diag.CodeParserInvalidAssignmentTarget
	case ErrUnexpectedEof:
		return diag.CodeParserUnexpectedEof
	default:
		return diag.Code("PARSER_UNKNOWN_ERROR")
	}
}

// ToDiagnostic converts a syntax error into a shared diagnostic structure.
func (e *SyntaxError) ToDiagnostic() diag.Diagnostic {
	d := diag.Diagnostic{
		Stage:    diag.StageParser,
		Severity: diag.SeverityError,
		Code:     e.Kind.diagnosticCode(),
		Message:  e.Error(),
	}
	if e.HasSpan() {
		d.Span = diag.Span{
			Filename: e.Token.Span.Filename,
			Line:     e.Token.Span.Line,
			Column:   e.Token.Span.Column,
			Start:    e.Token.Span.Start,
			End:      e.Token.Span.End,
		}
	}
	return d
}

func (p *Parser) errUnexpected(tok lexer.Token) *SyntaxError {
	return &SyntaxError{Kind: ErrUnexpectedToken, Token: tok}
}

func (p *Parser) errEof() *SyntaxError {
	return &SyntaxError{Kind: ErrUnexpectedEof}
}
