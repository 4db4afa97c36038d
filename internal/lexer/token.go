package lexer

// TokenType represents the type of a token
type TokenType string

// Span represents the source location of a token. Start and End are half-open
// byte offsets into the original source; Line and Column are 1-based and exist
// for diagnostics only. Spans never influence semantics.
type Span struct {
	Filename string // optional source filename for diagnostics
	Line     int    // 1-based line number
	Column   int    // 1-based column number
	Start    int    // byte offset of the first byte of the token
	End      int    // exclusive end byte offset
}

// Token represents a lexical token
type Token struct {
	Type    TokenType
	Literal string // exact text from source
	Num     int32  // decoded value when Type == NUM, zero otherwise
	Span    Span   // source location information
}

// Token type constants
const (
	// Internal sentinels. EOF terminates the scan loop and is never part of
	// the token sequence returned by Lex.
	EOF     TokenType = "EOF"
	ILLEGAL TokenType = "ILLEGAL"

	// Identifiers and literals
	IDENT TokenType = "IDENT" // x, ans, counter, ...
	NUM   TokenType = "NUM"   // 1343456

	// Operators
	ASSIGN   TokenType = "="
	PLUS     TokenType = "+"
	MINUS    TokenType = "-"
	ASTERISK TokenType = "*"
	SLASH    TokenType = "/"
	CARET    TokenType = "^"

	EQ     TokenType = "=="
	NOT_EQ TokenType = "!="
	LT     TokenType = "<"
	GT     TokenType = ">"
	LE     TokenType = "<="
	GE     TokenType = ">="

	// Delimiters
	SEMICOLON TokenType = ";"

	LPAREN TokenType = "("
	RPAREN TokenType = ")"
	LBRACE TokenType = "{"
	RBRACE TokenType = "}"

	// Keywords
	IF    TokenType = "IF"
	WHILE TokenType = "WHILE"
	FOR   TokenType = "FOR"
)

var keywords = map[string]TokenType{
	"if":    IF,
	"while": WHILE,
	"for":   FOR,
}

// LookupIdent checks if the identifier is a keyword
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
