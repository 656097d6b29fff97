// Package lexer scans Invocat source text into a flat token stream.
package lexer

// Kind identifies the lexical category of a Token.
type Kind uint8

const (
	KindDN Kind = iota
	KindWeight
	KindNumber
	KindName
	KindLParen
	KindRParen
	KindLBrace
	KindRBrace
	KindPipe
	KindDefine   // ::
	KindDefEval  // :!
	KindSelect   // <-
	KindSelEval  // <!
	KindComment  // dropped, never emitted
	KindRule1    // --- rule
	KindRule2    // === rule
	KindSplit    // \<newline>, dropped
	KindNewline
	KindWhite
	KindEscape
	KindPunct
	KindEOF
)

var kindNames = [...]string{
	KindDN:      "dN",
	KindWeight:  "weight",
	KindNumber:  "number",
	KindName:    "name",
	KindLParen:  "lparen",
	KindRParen:  "rparen",
	KindLBrace:  "lbrace",
	KindRBrace:  "rbrace",
	KindPipe:    "pipe",
	KindDefine:  "define",
	KindDefEval: "defEval",
	KindSelect:  "select",
	KindSelEval: "selEval",
	KindComment: "comment",
	KindRule1:   "rule1",
	KindRule2:   "rule2",
	KindSplit:   "split",
	KindNewline: "newline",
	KindWhite:   "white",
	KindEscape:  "escape",
	KindPunct:   "punct",
	KindEOF:     "eof",
}

// String renders the Kind's spec name, e.g. "define" for KindDefine.
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// Token is a single lexical unit: its Kind, the (possibly normalized)
// matched text, and the 0-based source line it starts on.
type Token struct {
	Kind   Kind
	Lexeme string
	Line   int
}
