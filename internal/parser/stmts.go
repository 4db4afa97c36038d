package parser

import (
	"github.com/enzan-lang/enzan-lang/internal/ast"
	"github.com/enzan-lang/enzan-lang/internal/lexer"
)

// parseStmt dispatches on the current token: the control-flow keywords and '{'
// go to dedicated rules, anything else is an expression statement.
func (p *Parser) parseStmt() (ast.Stmt, *SyntaxError) {
	tok, ok := p.peek()
	if !ok {
		return nil, p.errEof()
	}

	switch tok.Type {
	case lexer.IF:
		return p.parseIfStmt()
	case lexer.WHILE:
		return p.parseWhileStmt()
	case lexer.FOR:
		return p.parseForStmt()
	case lexer.LBRACE:
		return p.parseBlockStmt()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseExprStmt() (ast.Stmt, *SyntaxError) {
	expr, err := p.parseExpr(ast.PrecLowest)
	if err != nil {
		return nil, err
	}

	semi, serr := p.expect(lexer.SEMICOLON)
	if serr != nil {
		return nil, serr
	}

	span := mergeSpan(expr.Span(), semi.Span)
	return ast.NewExprStmt(expr, span), nil
}

// parseBlockStmt parses "{ stmt* }".
func (p *Parser) parseBlockStmt() (ast.Stmt, *SyntaxError) {
	open, err := p.expect(lexer.LBRACE)
	if err != nil {
		return nil, err
	}

	stmts, closing, berr := p.parseBlockBody()
	if berr != nil {
		return nil, berr
	}

	span := mergeSpan(open.Span, closing.Span)
	return ast.NewBlockStmt(stmts, span), nil
}

// parseBlockBody parses statements after an already-consumed '{' through the
// matching '}', returning the closing brace for span bookkeeping.
func (p *Parser) parseBlockBody() ([]ast.Stmt, lexer.Token, *SyntaxError) {
	var stmts []ast.Stmt

	for {
		tok, ok := p.peek()
		if !ok {
			return nil, lexer.Token{}, p.errEof()
		}
		if tok.Type == lexer.RBRACE {
			p.next()
			return stmts, tok, nil
		}

		stmt, err := p.parseStmt()
		if err != nil {
			return nil, lexer.Token{}, err
		}
		stmts = append(stmts, stmt)
	}
}

// parseCondBody parses "( cond ) { body }", the shared tail of if and while.
func (p *Parser) parseCondBody() (ast.Expr, []ast.Stmt, lexer.Token, *SyntaxError) {
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, nil, lexer.Token{}, err
	}

	cond, err := p.parseExpr(ast.PrecLowest)
	if err != nil {
		return nil, nil, lexer.Token{}, err
	}

	if _, cerr := p.expect(lexer.RPAREN); cerr != nil {
		return nil, nil, lexer.Token{}, cerr
	}

	if _, berr := p.expect(lexer.LBRACE); berr != nil {
		return nil, nil, lexer.Token{}, berr
	}

	body, closing, berr := p.parseBlockBody()
	if berr != nil {
		return nil, nil, lexer.Token{}, berr
	}

	return cond, body, closing, nil
}

func (p *Parser) parseIfStmt() (ast.Stmt, *SyntaxError) {
	kw, _ := p.next() // 'if'

	cond, then, closing, err := p.parseCondBody()
	if err != nil {
		return nil, err
	}

	span := mergeSpan(kw.Span, closing.Span)
	return ast.NewIfStmt(cond, then, span), nil
}

func (p *Parser) parseWhileStmt() (ast.Stmt, *SyntaxError) {
	kw, _ := p.next() // 'while'

	cond, body, closing, err := p.parseCondBody()
	if err != nil {
		return nil, err
	}

	span := mergeSpan(kw.Span, closing.Span)
	return ast.NewWhileStmt(cond, body, span), nil
}

// parseForStmt parses "for ( [init] ; [cond] ; [update] ) { body }". All
// three header expressions are optional.
func (p *Parser) parseForStmt() (ast.Stmt, *SyntaxError) {
	kw, _ := p.next() // 'for'

	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}

	init, err := p.parseOptionalExpr(lexer.SEMICOLON)
	if err != nil {
		return nil, err
	}
	if _, serr := p.expect(lexer.SEMICOLON); serr != nil {
		return nil, serr
	}

	cond, err := p.parseOptionalExpr(lexer.SEMICOLON)
	if err != nil {
		return nil, err
	}
	if _, serr := p.expect(lexer.SEMICOLON); serr != nil {
		return nil, serr
	}

	update, err := p.parseOptionalExpr(lexer.RPAREN)
	if err != nil {
		return nil, err
	}
	if _, perr := p.expect(lexer.RPAREN); perr != nil {
		return nil, perr
	}

	if _, berr := p.expect(lexer.LBRACE); berr != nil {
		return nil, berr
	}

	body, closing, berr := p.parseBlockBody()
	if berr != nil {
		return nil, berr
	}

	span := mergeSpan(kw.Span, closing.Span)
	return ast.NewForStmt(init, cond, update, body, span), nil
}

// parseOptionalExpr parses an expression unless the terminator is already the
// next token, in which case it returns nil for an omitted slot.
func (p *Parser) parseOptionalExpr(terminator lexer.TokenType) (ast.Expr, *SyntaxError) {
	tok, ok := p.peek()
	if !ok {
		return nil, p.errEof()
	}
	if tok.Type == terminator {
		return nil, nil
	}
	return p.parseExpr(ast.PrecLowest)
}
