// Package parser turns a lexer.Token stream into an ast.Expr forest by
// recursive descent, one top-level expression per call to expression.
package parser

import (
	"strconv"
	"strings"

	"github.com/ninguid-owl/Invocat/internal/ast"
	"github.com/ninguid-owl/Invocat/internal/lexer"
)

var literalKinds = []lexer.Kind{
	lexer.KindName, lexer.KindNumber, lexer.KindPunct,
	lexer.KindEscape, lexer.KindWhite, lexer.KindDN, lexer.KindWeight,
}

type parser struct {
	tokens []lexer.Token
	pos    int
}

// Parse consumes the whole token stream and returns one Expr per top-level
// expression. It stops at the first fatal error rather than collecting
// partial results.
func Parse(tokens []lexer.Token) ([]ast.Expr, error) {
	p := &parser{tokens: tokens}
	var exprs []ast.Expr
	p.skipNewlines()
	for !p.peek(lexer.KindEOF) {
		e, err := p.expression()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
		p.skipNewlines()
	}
	return exprs, nil
}

// --- cursor helpers (spec.md §4.2) ---

func (p *parser) peek(kinds ...lexer.Kind) bool {
	if p.pos >= len(p.tokens) {
		return false
	}
	cur := p.tokens[p.pos].Kind
	for _, k := range kinds {
		if cur == k {
			return true
		}
	}
	return false
}

func (p *parser) take(kinds ...lexer.Kind) (lexer.Token, bool) {
	if !p.peek(kinds...) {
		return lexer.Token{}, false
	}
	tok := p.tokens[p.pos]
	p.pos++
	return tok, true
}

// seq advances by len(kinds) iff the next tokens match kinds in order,
// atomically: on mismatch the cursor is left untouched.
func (p *parser) seq(kinds ...lexer.Kind) ([]lexer.Token, bool) {
	if p.pos+len(kinds) > len(p.tokens) {
		return nil, false
	}
	for i, k := range kinds {
		if p.tokens[p.pos+i].Kind != k {
			return nil, false
		}
	}
	out := make([]lexer.Token, len(kinds))
	copy(out, p.tokens[p.pos:p.pos+len(kinds)])
	p.pos += len(kinds)
	return out, true
}

func (p *parser) skipNewlines() {
	for p.peek(lexer.KindNewline) {
		p.take(lexer.KindNewline)
	}
}

func (p *parser) errf(msg string) error {
	line := 0
	if p.pos < len(p.tokens) {
		line = p.tokens[p.pos].Line
	}
	return &Error{Line: line, Col: 1, Msg: msg}
}

// --- top-level expression ---

// expression tries each binding form and the table form in turn, falling
// back to a bare mix. A token sequence none of the productions consumes is
// a fatal error.
func (p *parser) expression() (ast.Expr, error) {
	if e, matched, err := p.tryTable(); matched {
		return e, err
	}
	if e, matched, err := p.tryBinding(lexer.KindDefine, ast.Definition); matched {
		return e, err
	}
	if e, matched, err := p.tryBinding(lexer.KindSelect, ast.Selection); matched {
		return e, err
	}
	if e, matched, err := p.tryBinding(lexer.KindDefEval, ast.EvaluatingDefinition); matched {
		return e, err
	}
	if e, matched, err := p.tryBinding(lexer.KindSelEval, ast.EvaluatingSelection); matched {
		return e, err
	}

	start := p.pos
	m, err := p.mix()
	if err != nil {
		return ast.Expr{}, err
	}
	if p.pos == start && !p.peek(lexer.KindEOF) {
		return ast.Expr{}, p.errf("unexpected token")
	}
	p.take(lexer.KindNewline)
	return m, nil
}

// tryBinding matches "name OP items" for one of the four binding operators.
// matched is false (err always nil) when the name/operator prefix itself
// doesn't appear here, so the caller can try the next production; once the
// prefix is seen, any later failure is fatal.
func (p *parser) tryBinding(op lexer.Kind, kind ast.Kind) (ast.Expr, bool, error) {
	toks, ok := p.seq(lexer.KindName, op)
	if !ok {
		return ast.Expr{}, false, nil
	}
	items, err := p.inlineItems()
	if err != nil {
		return ast.Expr{}, true, err
	}
	return ast.Def(kind, toks[0].Lexeme, items), true, nil
}

// tryTable matches "(dN? name) newline (rule1|rule2) newline items" (spec.md
// §5's table forms). Seeing name+newline without a following rule is not a
// table at all, so the cursor rewinds and the caller tries other forms.
func (p *parser) tryTable() (ast.Expr, bool, error) {
	save := p.pos
	isDie := false
	if _, ok := p.take(lexer.KindDN); ok {
		isDie = true
	}
	nameTok, ok := p.take(lexer.KindName)
	if !ok {
		p.pos = save
		return ast.Expr{}, false, nil
	}
	if _, ok := p.take(lexer.KindNewline); !ok {
		p.pos = save
		return ast.Expr{}, false, nil
	}
	switch {
	case p.peek(lexer.KindRule1):
		p.take(lexer.KindRule1)
		if _, ok := p.take(lexer.KindNewline); !ok {
			return ast.Expr{}, true, p.errf("expected a newline after the table rule")
		}
		items, err := p.table1Items(isDie)
		if err != nil {
			return ast.Expr{}, true, err
		}
		return ast.Def(ast.Definition, nameTok.Lexeme, items), true, nil
	case p.peek(lexer.KindRule2):
		p.take(lexer.KindRule2)
		if _, ok := p.take(lexer.KindNewline); !ok {
			return ast.Expr{}, true, p.errf("expected a newline after the table rule")
		}
		items, err := p.table2Items(isDie)
		if err != nil {
			return ast.Expr{}, true, err
		}
		return ast.Def(ast.Definition, nameTok.Lexeme, items), true, nil
	default:
		p.pos = save
		return ast.Expr{}, false, nil
	}
}

// --- item lists ---

// inlineItems parses the single-line "weight? mix | weight? mix | ..." body
// that follows ::, <-, :! and <!.
func (p *parser) inlineItems() ([]ast.Expr, error) {
	var items []ast.Expr
	for {
		p.take(lexer.KindWhite)
		count := 1
		if wtok, ok := p.take(lexer.KindWeight); ok {
			count = weightCount(false, wtok.Lexeme)
		}
		item, err := p.mix(lexer.KindPipe)
		if err != nil {
			return nil, err
		}
		for i := 0; i < count; i++ {
			items = append(items, item)
		}
		if _, ok := p.take(lexer.KindPipe); ok {
			continue
		}
		break
	}
	p.take(lexer.KindNewline)
	return items, nil
}

// table1Items parses one item per line, terminating on a blank line or eof
// (spec.md §5, "Table 1").
func (p *parser) table1Items(isDie bool) ([]ast.Expr, error) {
	var items []ast.Expr
	for {
		p.take(lexer.KindWhite)
		count := 1
		if wtok, ok := p.take(lexer.KindWeight); ok {
			count = weightCount(isDie, wtok.Lexeme)
		}
		item, err := p.mix()
		if err != nil {
			return nil, err
		}
		for i := 0; i < count; i++ {
			items = append(items, item)
		}
		if p.peek(lexer.KindEOF) {
			break
		}
		if _, ok := p.take(lexer.KindNewline); !ok {
			return nil, p.errf("expected a newline between table items")
		}
		if p.peek(lexer.KindNewline) || p.peek(lexer.KindEOF) {
			p.take(lexer.KindNewline)
			break
		}
	}
	return items, nil
}

// table2Items parses items separated by rule1 lines, each item's mix
// possibly spanning several physical lines (spec.md §5, "Table 2").
func (p *parser) table2Items(isDie bool) ([]ast.Expr, error) {
	var items []ast.Expr
	for {
		p.take(lexer.KindWhite)
		count := 1
		if wtok, ok := p.take(lexer.KindWeight); ok {
			count = weightCount(isDie, wtok.Lexeme)
		}
		item, err := p.mixMultiline(lexer.KindRule1)
		if err != nil {
			return nil, err
		}
		for i := 0; i < count; i++ {
			items = append(items, item)
		}
		if p.peek(lexer.KindEOF) {
			break
		}
		if _, ok := p.take(lexer.KindRule1); ok {
			p.take(lexer.KindNewline)
			if p.peek(lexer.KindEOF) || p.peek(lexer.KindNewline) {
				break
			}
			continue
		}
		break
	}
	return items, nil
}

// weightCount interprets a weight token's trimmed lexeme ("n" or "s-t")
// under frequency semantics (isDie false) or die-notation semantics (isDie
// true): a die-mode single number always counts as 1 occurrence, since it
// names a die face rather than a repeat count.
func weightCount(isDie bool, lexeme string) int {
	if dash := strings.IndexByte(lexeme, '-'); dash >= 0 {
		lo, _ := strconv.Atoi(lexeme[:dash])
		hi, _ := strconv.Atoi(lexeme[dash+1:])
		if hi < lo {
			return 1
		}
		return hi - lo + 1
	}
	if isDie {
		return 1
	}
	n, err := strconv.Atoi(lexeme)
	if err != nil || n <= 0 {
		return 1
	}
	return n
}

// --- mixes and atoms ---

// mix greedily accumulates atoms into a right-leaning Mix tree, always
// stopping at eof or newline in addition to any explicit stop kinds.
func (p *parser) mix(stop ...lexer.Kind) (ast.Expr, error) {
	var atoms []ast.Expr
	for {
		if p.peek(lexer.KindEOF) || p.peek(lexer.KindNewline) || p.peek(stop...) {
			break
		}
		a, ok, err := p.atom()
		if err != nil {
			return ast.Expr{}, err
		}
		if !ok {
			break
		}
		atoms = append(atoms, a)
	}
	return foldMix(atoms), nil
}

// mixMultiline is table2's item mix: a newline mid-item is consumed and, so
// long as what follows isn't the terminator/another newline/eof, replaced
// with a single splice space before parsing continues on the next line.
func (p *parser) mixMultiline(terminator lexer.Kind) (ast.Expr, error) {
	var atoms []ast.Expr
	for {
		if p.peek(lexer.KindEOF) || p.peek(terminator) {
			break
		}
		if p.peek(lexer.KindNewline) {
			p.take(lexer.KindNewline)
			if p.peek(terminator) || p.peek(lexer.KindNewline) || p.peek(lexer.KindEOF) {
				break
			}
			atoms = append(atoms, ast.Lit(" "))
			p.take(lexer.KindWhite)
			continue
		}
		a, ok, err := p.atom()
		if err != nil {
			return ast.Expr{}, err
		}
		if !ok {
			break
		}
		atoms = append(atoms, a)
	}
	return foldMix(atoms), nil
}

// foldMix assembles atoms, in order, into a right-leaning Mix tree:
// Mix(a, Mix(b, Mix(c, d))) rather than Mix(Mix(Mix(a,b),c),d).
func foldMix(atoms []ast.Expr) ast.Expr {
	if len(atoms) == 0 {
		return ast.Lit("")
	}
	result := atoms[len(atoms)-1]
	for i := len(atoms) - 2; i >= 0; i-- {
		result = ast.MixOf(atoms[i], result)
	}
	return result
}

// atom parses a reference, a draw, or a run of literal-shaped tokens.
func (p *parser) atom() (ast.Expr, bool, error) {
	if _, ok := p.take(lexer.KindLParen); ok {
		inner, err := p.mix(lexer.KindRParen)
		if err != nil {
			return ast.Expr{}, false, err
		}
		if _, ok := p.take(lexer.KindRParen); !ok {
			return ast.Expr{}, false, p.errf("expected ) to close a reference")
		}
		return ast.Ref(inner), true, nil
	}
	if _, ok := p.take(lexer.KindLBrace); ok {
		inner, err := p.mix(lexer.KindRBrace)
		if err != nil {
			return ast.Expr{}, false, err
		}
		if _, ok := p.take(lexer.KindRBrace); !ok {
			return ast.Expr{}, false, p.errf("expected } to close a draw")
		}
		return ast.DrawOf(inner), true, nil
	}
	if lit, ok := p.literalRun(); ok {
		return lit, true, nil
	}
	return ast.Expr{}, false, nil
}

func (p *parser) literalRun() (ast.Expr, bool) {
	var b strings.Builder
	matched := false
	for p.peek(literalKinds...) {
		b.WriteString(p.tokens[p.pos].Lexeme)
		p.pos++
		matched = true
	}
	if !matched {
		return ast.Expr{}, false
	}
	return ast.Lit(b.String()), true
}
