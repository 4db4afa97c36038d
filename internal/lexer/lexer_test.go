package lexer

import (
	"reflect"
	"testing"
)

func TestNextToken_Basic(t *testing.T) {
	input := `x = 10;`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{IDENT, "x"},
		{ASSIGN, "="},
		{NUM, "10"},
		{SEMICOLON, ";"},
		{EOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestNextToken_Operators(t *testing.T) {
	input := `= + - * / ^ == != < > <= >=`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{ASSIGN, "="},
		{PLUS, "+"},
		{MINUS, "-"},
		{ASTERISK, "*"},
		{SLASH, "/"},
		{CARET, "^"},
		{EQ, "=="},
		{NOT_EQ, "!="},
		{LT, "<"},
		{GT, ">"},
		{LE, "<="},
		{GE, ">="},
		{EOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestNextToken_Keywords(t *testing.T) {
	input := `if while for iffy whiles`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{IF, "if"},
		{WHILE, "while"},
		{FOR, "for"},
		{IDENT, "iffy"},
		{IDENT, "whiles"},
		{EOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestLex_Statement(t *testing.T) {
	input := `while (x < 10) { x = x + 1; }`

	expected := []TokenType{
		WHILE, LPAREN, IDENT, LT, NUM, RPAREN,
		LBRACE, IDENT, ASSIGN, IDENT, PLUS, NUM, SEMICOLON, RBRACE,
	}

	tokens, err := New(input).Lex()
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}

	if len(tokens) != len(expected) {
		t.Fatalf("token count wrong. expected=%d, got=%d", len(expected), len(tokens))
	}

	for i, typ := range expected {
		if tokens[i].Type != typ {
			t.Fatalf("tokens[%d] - expected %q, got %q", i, typ, tokens[i].Type)
		}
	}
}

func TestLex_NumValue(t *testing.T) {
	tokens, err := New("12345").Lex()
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}
	if len(tokens) != 1 {
		t.Fatalf("expected a single token, got %d", len(tokens))
	}
	if tokens[0].Num != 12345 {
		t.Errorf("num wrong. expected=12345, got=%d", tokens[0].Num)
	}
}

func TestLex_Spans(t *testing.T) {
	input := `12 + ab`

	tests := []struct {
		start int
		end   int
	}{
		{0, 2},
		{3, 4},
		{5, 7},
	}

	tokens, err := New(input).Lex()
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}

	for i, tt := range tests {
		if tokens[i].Span.Start != tt.start || tokens[i].Span.End != tt.end {
			t.Errorf("tokens[%d] - span wrong. expected=[%d,%d), got=[%d,%d)",
				i, tt.start, tt.end, tokens[i].Span.Start, tokens[i].Span.End)
		}
	}
}

func TestLex_MultibyteSpans(t *testing.T) {
	// § is two bytes; its error span must cover both.
	input := "§"

	_, err := New(input).Lex()
	if err == nil {
		t.Fatal("expected an invalid token error")
	}
	if err.Kind != ErrInvalidToken {
		t.Fatalf("error kind wrong. expected=ErrInvalidToken, got=%v", err.Kind)
	}
	if err.Span.Start != 0 || err.Span.End != 2 {
		t.Errorf("span wrong. expected=[0,2), got=[%d,%d)", err.Span.Start, err.Span.End)
	}
}

func TestLex_MultibyteOffsets(t *testing.T) {
	// A multi-byte rune before a valid token shifts byte offsets by its
	// encoded length, not by one.
	input := "あ"
	l := New(input)
	tok := l.NextToken()

	// あ is a letter, so it lexes as an identifier spanning its 3 bytes.
	if tok.Type != IDENT {
		t.Fatalf("expected IDENT, got %q", tok.Type)
	}
	if tok.Span.Start != 0 || tok.Span.End != 3 {
		t.Errorf("span wrong. expected=[0,3), got=[%d,%d)", tok.Span.Start, tok.Span.End)
	}
}

func TestLex_InvalidToken(t *testing.T) {
	_, err := New("1 + @").Lex()
	if err == nil {
		t.Fatal("expected an invalid token error")
	}
	if err.Kind != ErrInvalidToken {
		t.Fatalf("error kind wrong. expected=ErrInvalidToken, got=%v", err.Kind)
	}
	if err.Span.Start != 4 || err.Span.End != 5 {
		t.Errorf("span wrong. expected=[4,5), got=[%d,%d)", err.Span.Start, err.Span.End)
	}
}

func TestLex_BangAloneIsInvalid(t *testing.T) {
	_, err := New("1 ! 2").Lex()
	if err == nil {
		t.Fatal("expected an invalid token error for bare '!'")
	}
	if err.Kind != ErrInvalidToken {
		t.Fatalf("error kind wrong. expected=ErrInvalidToken, got=%v", err.Kind)
	}
}

func TestLex_IntegerOverflow(t *testing.T) {
	_, err := New("2147483648;").Lex()
	if err == nil {
		t.Fatal("expected an integer overflow error")
	}
	if err.Kind != ErrIntegerOverflow {
		t.Fatalf("error kind wrong. expected=ErrIntegerOverflow, got=%v", err.Kind)
	}
}

func TestLex_MaxInt32(t *testing.T) {
	tokens, err := New("2147483647").Lex()
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}
	if tokens[0].Num != 2147483647 {
		t.Errorf("num wrong. expected=2147483647, got=%d", tokens[0].Num)
	}
}

func TestLex_Idempotent(t *testing.T) {
	input := `x = 0; while (x < 3) { x = x + 1; } x;`

	first, err := New(input).Lex()
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}
	second, err := New(input).Lex()
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("lexing the same input twice produced different token sequences")
	}
}

func TestLex_EofNeverEmitted(t *testing.T) {
	tokens, err := New("1;").Lex()
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}
	for i, tok := range tokens {
		if tok.Type == EOF {
			t.Errorf("tokens[%d] is EOF; the sentinel must be swallowed", i)
		}
	}
}

func TestLex_EmptyInput(t *testing.T) {
	tokens, err := New("").Lex()
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}
	if len(tokens) != 0 {
		t.Errorf("expected no tokens, got %d", len(tokens))
	}
}

func TestLexerError_ToDiagnostic(t *testing.T) {
	l := New("@")
	l.SetFilename("main.zn")
	_, err := l.Lex()
	if err == nil {
		t.Fatal("expected an error")
	}

	d := err.ToDiagnostic()
	if d.Stage != "lexer" {
		t.Errorf("stage wrong. expected=lexer, got=%s", d.Stage)
	}
	if d.Code != "LEXER_INVALID_TOKEN" {
		t.Errorf("code wrong. got=%s", d.Code)
	}
	if d.Span.Filename != "main.zn" {
		t.Errorf("filename not propagated, got=%q", d.Span.Filename)
	}
}
