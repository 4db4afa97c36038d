package diag

import "fmt"

// Stage identifies which phase produced the diagnostic.
type Stage string

const (
	StageLexer   Stage = "lexer"
	StageParser  Stage = "parser"
	StageRuntime Stage = "runtime"
	StageCodegen Stage = "codegen"
)

// Severity captures how impactful the diagnostic is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityNote    Severity = "note"
)

// Code is a stable identifier for a diagnostic.
type Code string

const (
	// Lexer errors
	CodeLexerInvalidToken    Code = "LEXER_INVALID_TOKEN"
	CodeLexerIntegerOverflow Code = "LEXER_INTEGER_OVERFLOW"

	// Parser errors
	CodeParserUnmatchedLeftParen      Code = "PARSER_UNMATCHED_LEFT_PAREN"
	CodeParserUnexpectedToken         Code = "PARSER_UNEXPECTED_TOKEN"
	CodeParserInvalidAssignmentTarget Code = "PARSER_INVALID_ASSIGNMENT_TARGET"
	CodeParserUnexpectedEof           Code = "PARSER_UNEXPECTED_EOF"

	// Runtime errors
	CodeRuntimeDivisionByZero   Code = "RUNTIME_DIVISION_BY_ZERO"
	CodeRuntimeUnboundVariable  Code = "RUNTIME_UNBOUND_VARIABLE"
	CodeRuntimeNegativeExponent Code = "RUNTIME_NEGATIVE_EXPONENT"

	// Codegen errors
	CodeGenUndefinedVariable Code = "CODEGEN_UNDEFINED_VARIABLE"
)

// Span represents a location in source code. Start and End are half-open byte
// offsets; Line and Column are 1-based.
type Span struct {
	Filename string
	Line     int
	Column   int
	Start    int
	End      int
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsValid returns true if the span has valid location information.
func (s Span) IsValid() bool {
	return s.Line > 0 && s.Column > 0
}

// Diagnostic is an error surfaced to end-users.
type Diagnostic struct {
	Stage    Stage
	Severity Severity
	Code     Code
	Message  string
	Span     Span
}
