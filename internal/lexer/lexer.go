package lexer

import (
	"regexp"

	"golang.org/x/text/unicode/norm"
)

// pattern pairs a token Kind with the anchored regexp that recognizes it.
// Order matters: patterns overlap (a number is a prefix of a weight, a
// name can consume digits, rule1 can look like two hyphens of a comment)
// and the scanner always takes the first pattern in this table that
// matches at the cursor.
type pattern struct {
	kind Kind
	re   *regexp.Regexp
}

const nameChar = `[\p{L}\p{N}_!'?.,;]`

var patterns = []pattern{
	{KindDN, regexp.MustCompile(`^d\d+[ \t](?:[ \t]|[\p{P}\p{S}])[ \t]*`)},
	{KindWeight, regexp.MustCompile(`^\d+(?:-\d+)?[ \t](?:[ \t]|[\p{P}\p{S}])[ \t]*`)},
	{KindNumber, regexp.MustCompile(`^\d+`)},
	{KindName, regexp.MustCompile(`^` + nameChar + `+(?:[ \t]+` + nameChar + `+)*`)},
	{KindLParen, regexp.MustCompile(`^\(`)},
	{KindRParen, regexp.MustCompile(`^\)`)},
	{KindLBrace, regexp.MustCompile(`^\{`)},
	{KindRBrace, regexp.MustCompile(`^\}`)},
	{KindPipe, regexp.MustCompile(`^[ \t]*\|[ \t]*`)},
	{KindDefine, regexp.MustCompile(`^[ \t]*::[ \t]*`)},
	{KindDefEval, regexp.MustCompile(`^[ \t]*:![ \t]*`)},
	{KindSelect, regexp.MustCompile(`^[ \t]*<-[ \t]*`)},
	{KindSelEval, regexp.MustCompile(`^[ \t]*<![ \t]*`)},
	{KindComment, regexp.MustCompile(`^[ \t]*--[ \t]+[^\n]*`)},
	{KindRule1, regexp.MustCompile(`^-{3,}[^\n]*`)},
	{KindRule2, regexp.MustCompile(`^={3,}[^\n]*`)},
	{KindSplit, regexp.MustCompile(`^\\\r?\n`)},
	{KindNewline, regexp.MustCompile(`^[ \t]*\n`)},
	{KindWhite, regexp.MustCompile(`^[ \t\r]+`)},
	{KindEscape, regexp.MustCompile(`^\\[nrt(){}|\\]`)},
	{KindPunct, regexp.MustCompile(`^[\p{P}\p{S}]`)},
}

var escapeSubstitutes = map[byte]string{
	'n': "\n",
	'r': "\r",
	't': "\t",
	'(': "(",
	')': ")",
	'{': "{",
	'}': "}",
	'|': "|",
	'\\': "\\",
}

// Lex scans source into an ordered token list terminated by KindEOF.
// Source is NFC-normalized first so that visually identical names compare
// structurally equal regardless of the input's Unicode normalization form.
func Lex(source string) ([]Token, error) {
	src := norm.NFC.String(source)
	l := &lexer{src: src}
	return l.scan()
}

type lexer struct {
	src  string
	pos  int
	line int
}

func (l *lexer) scan() ([]Token, error) {
	var tokens []Token
	for l.pos < len(l.src) {
		rest := l.src[l.pos:]
		matched := false
		for _, p := range patterns {
			loc := p.re.FindStringIndex(rest)
			if loc == nil || loc[0] != 0 {
				continue
			}
			lexeme := rest[:loc[1]]
			tok, ok := l.postProcess(p.kind, lexeme)
			l.advance(lexeme)
			if ok {
				tokens = append(tokens, tok)
			}
			matched = true
			break
		}
		if !matched {
			return nil, &Error{Line: l.line, Col: l.column(), Msg: "no token matches here"}
		}
	}
	tokens = append(tokens, Token{Kind: KindEOF, Lexeme: "", Line: l.line})
	return tokens, nil
}

// postProcess applies the per-kind normalization rules of spec.md §4.1 and
// reports whether the token should be emitted (comment/split are dropped).
func (l *lexer) postProcess(kind Kind, lexeme string) (Token, bool) {
	line := l.line
	switch kind {
	case KindComment, KindSplit:
		return Token{}, false
	case KindNewline:
		return Token{Kind: kind, Lexeme: "\n", Line: line}, true
	case KindEscape:
		sub := escapeSubstitutes[lexeme[1]]
		return Token{Kind: kind, Lexeme: sub, Line: line}, true
	case KindPipe, KindDefine, KindDefEval, KindSelect, KindSelEval:
		trimmed := trimBlanks(lexeme)
		return Token{Kind: kind, Lexeme: trimmed, Line: line}, true
	case KindDN, KindWeight:
		// The dN/weight patterns themselves consume the disambiguating
		// trailing blank(s); trim them off so the parser only ever sees
		// the meaningful digits, matching how the binary operators absorb
		// their own surrounding whitespace.
		trimmed := trimTrailingBlankOrPunct(lexeme)
		return Token{Kind: kind, Lexeme: trimmed, Line: line}, true
	default:
		return Token{Kind: kind, Lexeme: lexeme, Line: line}, true
	}
}

func trimBlanks(s string) string {
	start, end := 0, len(s)
	for start < end && (s[start] == ' ' || s[start] == '\t') {
		start++
	}
	for end > start && (s[end-1] == ' ' || s[end-1] == '\t') {
		end--
	}
	return s[start:end]
}

// trimTrailingBlankOrPunct strips the trailing "<blank><blank-or-punct><blank>*"
// that disambiguates a dN/weight token from a bare number/name, leaving just
// the leading "d<digits>" or "<digits>(-<digits>)?" payload.
func trimTrailingBlankOrPunct(s string) string {
	i := 0
	for i < len(s) && s[i] != ' ' && s[i] != '\t' {
		i++
	}
	return s[:i]
}

func (l *lexer) advance(lexeme string) {
	for i := 0; i < len(lexeme); i++ {
		if lexeme[i] == '\n' {
			l.line++
		}
	}
	l.pos += len(lexeme)
}

// column returns the 0-based column of the cursor within its current line,
// counted in runes from the start of the line.
func (l *lexer) column() int {
	lineStart := l.pos
	for lineStart > 0 && l.src[lineStart-1] != '\n' {
		lineStart--
	}
	return len([]rune(l.src[lineStart:l.pos]))
}
