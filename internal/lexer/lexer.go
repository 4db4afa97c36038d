package lexer

import (
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/enzan-lang/enzan-lang/internal/diag"
)

type LexerErrorKind int

const (
	ErrInvalidToken LexerErrorKind = iota
	ErrIntegerOverflow
)

type LexerError struct {
	Kind    LexerErrorKind
	Message string
	Span    Span
}

// Error implements the error interface.
func (e *LexerError) Error() string {
	return e.Message
}

func (k LexerErrorKind) diagnosticCode() diag.Code {
	switch k {
	case ErrInvalidToken:
		return diag.CodeLexerInvalidToken
	case ErrIntegerOverflow:
		return diag.CodeLexerIntegerOverflow
	default:
		return diag.Code("LEXER_UNKNOWN_ERROR")
	}
}

// ToDiagnostic converts a lexer error into a shared diagnostic structure.
func (e *LexerError) ToDiagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Stage:    diag.StageLexer,
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

// Lexer is a single-pass forward scanner over the source string. Positions are
// byte offsets; read advances by the encoded UTF-8 length of the current rune
// so spans stay accurate for multi-byte input.
type Lexer struct {
	input    string
	pos      int  // byte offset of the current rune
	next     int  // byte offset immediately after the current rune
	ch       rune // current rune (0 = end of input)
	line     int  // current line number (1-based)
	column   int  // current column number (1-based)
	filename string

	err *LexerError // first error encountered, nil while the scan is clean
}

// New creates a new lexer for the given input
func New(input string) *Lexer {
	l := &Lexer{
		input:  input,
		line:   1,
		column: 0, // becomes 1 after the first read()
	}
	l.read() // move to first character
	return l
}

// SetFilename attributes all subsequently produced spans to the given file.
func (l *Lexer) SetFilename(name string) {
	l.filename = name
}

// Err returns the first lexical error encountered, or nil.
func (l *Lexer) Err() *LexerError {
	return l.err
}

func (l *Lexer) addError(kind LexerErrorKind, msg string, span Span) {
	if l.err != nil {
		return
	}
	l.err = &LexerError{
		Kind:    kind,
		Message: msg,
		Span:    span,
	}
}

// Lex drains the token stream and returns the full token sequence. EOF is
// swallowed: it terminates the loop and never appears in the result. The first
// lexical error aborts the scan; no partial token sequence is returned.
func (l *Lexer) Lex() ([]Token, *LexerError) {
	var tokens []Token
	for {
		tok := l.NextToken()
		if l.err != nil {
			return nil, l.err
		}
		if tok.Type == EOF {
			break
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

// read advances the lexer to the next rune, tracking line/column for
// diagnostics and byte offsets for spans.
func (l *Lexer) read() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	l.pos = l.next

	if l.next >= len(l.input) {
		l.ch = 0 // end of input
		l.column++
		return
	}

	r, width := utf8.DecodeRuneInString(l.input[l.next:])
	l.ch = r
	l.next += width
	l.column++
}

// peek returns the next rune without advancing
func (l *Lexer) peek() rune {
	if l.next >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.next:])
	return r
}

// spanFrom builds a span from a captured start position to the current offset.
func (l *Lexer) spanFrom(startLine, startColumn, startPos int) Span {
	return Span{
		Filename: l.filename,
		Line:     startLine,
		Column:   startColumn,
		Start:    startPos,
		End:      l.pos,
	}
}

// makeToken creates a token spanning from the captured start to the current
// position.
func (l *Lexer) makeToken(tokType TokenType, startLine, startColumn, startPos int, literal string) Token {
	return Token{
		Type:    tokType,
		Literal: literal,
		Span:    l.spanFrom(startLine, startColumn, startPos),
	}
}

func (l *Lexer) skipWhitespace() {
	for l.ch != 0 && unicode.IsSpace(l.ch) {
		l.read()
	}
}

// single emits a one-character token and advances past it.
func (l *Lexer) single(tokType TokenType) Token {
	startLine, startColumn, startPos := l.line, l.column, l.pos
	literal := string(l.ch)
	l.read()
	return l.makeToken(tokType, startLine, startColumn, startPos, literal)
}

// withEq emits a two-character token when the next rune is '=', otherwise the
// one-character fallback. The fallback for '!' is ILLEGAL because '!' only
// exists as part of '!='.
func (l *Lexer) withEq(pair, fallback TokenType) Token {
	startLine, startColumn, startPos := l.line, l.column, l.pos
	first := l.ch
	if l.peek() == '=' {
		l.read()
		literal := string(first) + string(l.ch)
		l.read()
		return l.makeToken(pair, startLine, startColumn, startPos, literal)
	}

	literal := string(first)
	l.read()
	tok := l.makeToken(fallback, startLine, startColumn, startPos, literal)
	if fallback == ILLEGAL {
		l.addError(ErrInvalidToken, "invalid token "+strconv.Quote(literal), tok.Span)
	}
	return tok
}

// readIdentifier reads an identifier or keyword
func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) {
		l.read()
	}
	return l.input[start:l.pos]
}

// readNumber reads a maximal run of ASCII digits and decodes it as a 32-bit
// signed integer. Literals outside the int32 range are a lexical error rather
// than a silent truncation.
func (l *Lexer) readNumber() Token {
	startLine, startColumn, startPos := l.line, l.column, l.pos
	for isDigit(l.ch) {
		l.read()
	}
	literal := l.input[startPos:l.pos]

	tok := l.makeToken(NUM, startLine, startColumn, startPos, literal)

	n, err := strconv.ParseInt(literal, 10, 32)
	if err != nil {
		l.addError(ErrIntegerOverflow, "integer literal out of range: "+literal, tok.Span)
		tok.Type = ILLEGAL
		return tok
	}

	tok.Num = int32(n)
	return tok
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	switch l.ch {
	case 0:
		startLine, startColumn := l.line, l.column
		if startColumn == 0 {
			startColumn = 1
		}
		return l.makeToken(EOF, startLine, startColumn, l.pos, "")

	case '+':
		return l.single(PLUS)
	case '-':
		return l.single(MINUS)
	case '*':
		return l.single(ASTERISK)
	case '/':
		return l.single(SLASH)
	case '^':
		return l.single(CARET)

	case '=':
		return l.withEq(EQ, ASSIGN)
	case '!':
		return l.withEq(NOT_EQ, ILLEGAL)
	case '<':
		return l.withEq(LE, LT)
	case '>':
		return l.withEq(GE, GT)

	case ';':
		return l.single(SEMICOLON)
	case '(':
		return l.single(LPAREN)
	case ')':
		return l.single(RPAREN)
	case '{':
		return l.single(LBRACE)
	case '}':
		return l.single(RBRACE)

	default:
		if isLetter(l.ch) {
			startLine, startColumn, startPos := l.line, l.column, l.pos
			literal := l.readIdentifier()
			return l.makeToken(LookupIdent(literal), startLine, startColumn, startPos, literal)
		}
		if isDigit(l.ch) {
			return l.readNumber()
		}

		startLine, startColumn, startPos := l.line, l.column, l.pos
		literal := string(l.ch)
		l.read()
		tok := l.makeToken(ILLEGAL, startLine, startColumn, startPos, literal)
		l.addError(ErrInvalidToken, "invalid token "+strconv.Quote(literal), tok.Span)
		return tok
	}
}

func isLetter(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

func isDigit(ch rune) bool {
	// Numeric literals are restricted to ASCII digits.
	return ch >= '0' && ch <= '9'
}
