package diag

import (
	"fmt"
	"strings"
)

// Formatter renders diagnostics with a source snippet and a caret underline:
//
//	error[PARSER_UNEXPECTED_TOKEN]: unexpected token ')'
//	 1 | 1+2)
//	   |    ^
type Formatter struct{}

// NewFormatter creates a new diagnostic formatter.
func NewFormatter() *Formatter {
	return &Formatter{}
}

// Format renders the diagnostic against the source text it was produced from.
// Diagnostics without a valid span (for example an unexpected end of file)
// fall back to a header plus the raw source.
func (f *Formatter) Format(d Diagnostic, source string) string {
	var sb strings.Builder

	sb.WriteString(f.header(d))
	sb.WriteByte('\n')

	if !d.Span.IsValid() {
		if source != "" {
			sb.WriteString(source)
			sb.WriteByte('\n')
		}
		return sb.String()
	}

	lineText, lineStart := sourceLine(source, d.Span.Line)
	gutter := fmt.Sprintf("%d", d.Span.Line)

	fmt.Fprintf(&sb, " %s | %s\n", gutter, lineText)

	// The caret underlines the span's bytes within its line. Offsets are
	// byte-based, matching how the span was produced.
	caretStart := d.Span.Start - lineStart
	if caretStart < 0 {
		caretStart = 0
	}
	if caretStart > len(lineText) {
		caretStart = len(lineText)
	}
	width := d.Span.End - d.Span.Start
	if width < 1 {
		width = 1
	}
	if caretStart+width > len(lineText)+1 {
		width = len(lineText) + 1 - caretStart
		if width < 1 {
			width = 1
		}
	}

	fmt.Fprintf(&sb, " %s | %s%s\n",
		strings.Repeat(" ", len(gutter)),
		strings.Repeat(" ", caretStart),
		strings.Repeat("^", width))

	return sb.String()
}

func (f *Formatter) header(d Diagnostic) string {
	severity := string(d.Severity)
	if severity == "" {
		severity = "error"
	}

	if d.Code != "" {
		return fmt.Sprintf("%s[%s]: %s", severity, d.Code, d.Message)
	}
	return fmt.Sprintf("%s: %s", severity, d.Message)
}

// sourceLine returns the 1-based line from source along with the byte offset
// of its first character.
func sourceLine(source string, line int) (string, int) {
	start := 0
	current := 1
	for current < line {
		idx := strings.IndexByte(source[start:], '\n')
		if idx < 0 {
			break
		}
		start += idx + 1
		current++
	}

	end := len(source)
	if idx := strings.IndexByte(source[start:], '\n'); idx >= 0 {
		end = start + idx
	}

	return source[start:end], start
}
