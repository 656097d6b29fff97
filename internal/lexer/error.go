package lexer

import "fmt"

// Error reports a lexical failure: no pattern matched at Line/Col.
type Error struct {
	Line int
	Col  int
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("lex error at %d:%d: %s", e.Line, e.Col, e.Msg)
}
