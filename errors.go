// errors.go: user-facing error wrapping and caret-snippet rendering.
//
// WrapWithSource turns a *lexer.Error or *parser.Error into a readable,
// caret-annotated snippet pointing at the offending line:
//
//	PARSE ERROR at 3:1: expected ) to close a reference
//
//	   2 | color :: red | blue
//	   3 | (color (nested
//	     | ^
//	   4 | {color}
//
// Any other error is returned unchanged.
package invocat

import (
	"fmt"
	"strings"

	"github.com/ninguid-owl/Invocat/internal/lexer"
	"github.com/ninguid-owl/Invocat/internal/parser"
)

// WrapWithSource augments a lexer/parser error with a snippet of src. Other
// error kinds pass through untouched.
func WrapWithSource(err error, src string) error {
	switch e := err.(type) {
	case *lexer.Error:
		return fmt.Errorf("%s", prettySnippet(src, "LEXICAL ERROR", e.Line+1, e.Col+1, e.Msg))
	case *parser.Error:
		return fmt.Errorf("%s", prettySnippet(src, "PARSE ERROR", e.Line+1, e.Col, e.Msg))
	default:
		return err
	}
}

// prettySnippet builds a one-line-of-context, caret-annotated snippet.
// line and col are 1-based; line is clamped to the lines of src, and col is
// only raised to at least 1 (it is not limited to the line's length).
func prettySnippet(src, header string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	if col < 1 {
		col = 1
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
