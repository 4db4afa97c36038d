package parser

import (
	"github.com/enzan-lang/enzan-lang/internal/ast"
	"github.com/enzan-lang/enzan-lang/internal/lexer"
)

// Parser consumes an immutable token buffer in a single forward pass and
// produces a Program.
//
// Invariants:
//   - Lookahead: the cursor pos indexes the next unconsumed token; peek
//     inspects it and next promotes it. Nothing ever rewinds, so each token is
//     consumed exactly once.
//   - Errors: the first error aborts the entire parse. There is no recovery
//     and no partial AST; callers receive either a Program or a SyntaxError.
//   - Spans: AST node spans are composed via mergeSpan so that a parent span
//     always covers its children. Spans are diagnostics-only.
type Parser struct {
	tokens []lexer.Token
	pos    int
}

// New returns a parser over the provided token buffer.
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse consumes the whole token buffer and returns the program. Any token
// left over after a complete construct is itself parsed as the start of the
// next statement, so trailing garbage surfaces as a syntax error rather than
// being ignored.
func (p *Parser) Parse() (*ast.Program, *SyntaxError) {
	program := ast.NewProgram(lexer.Span{})

	for p.pos < len(p.tokens) {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		if len(program.Stmts) == 0 {
			program.SetSpan(stmt.Span())
		} else {
			program.SetSpan(mergeSpan(program.Span(), stmt.Span()))
		}
		program.Stmts = append(program.Stmts, stmt)
	}

	return program, nil
}

// peek returns the next unconsumed token without advancing.
func (p *Parser) peek() (lexer.Token, bool) {
	if p.pos >= len(p.tokens) {
		return lexer.Token{}, false
	}
	return p.tokens[p.pos], true
}

// next consumes and returns the next token.
func (p *Parser) next() (lexer.Token, bool) {
	tok, ok := p.peek()
	if ok {
		p.pos++
	}
	return tok, ok
}

// expect consumes the next token and asserts its type. Running out of input
// yields ErrUnexpectedEof; a mismatched token yields ErrUnexpectedToken.
func (p *Parser) expect(tt lexer.TokenType) (lexer.Token, *SyntaxError) {
	tok, ok := p.next()
	if !ok {
		return lexer.Token{}, p.errEof()
	}
	if tok.Type != tt {
		return lexer.Token{}, p.errUnexpected(tok)
	}
	return tok, nil
}

// mergeSpan returns a span covering both arguments. Callers pass the earliest
// span first; only the end grows.
func mergeSpan(start, end lexer.Span) lexer.Span {
	span := start

	if span.Filename == "" {
		span.Filename = end.Filename
	}

	if span.Line == 0 && end.Line != 0 {
		span.Line = end.Line
		span.Column = end.Column
		span.Start = end.Start
	}

	if end.End > span.End {
		span.End = end.End
	}

	return span
}
