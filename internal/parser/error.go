package parser

import "fmt"

// Error reports a fatal parse failure. No partial expression list is
// returned when one occurs (spec.md §7).
type Error struct {
	Line int
	Col  int
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("parse error at line %d: %s", e.Line, e.Msg)
}
