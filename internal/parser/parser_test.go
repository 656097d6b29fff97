package parser

import (
	"testing"

	"github.com/ninguid-owl/Invocat/internal/ast"
	"github.com/ninguid-owl/Invocat/internal/lexer"
)

func parseSrc(t *testing.T, src string) []ast.Expr {
	t.Helper()
	toks, err := lexer.Lex(src)
	if err != nil {
		t.Fatalf("Lex(%q): %v", src, err)
	}
	exprs, err := Parse(toks)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return exprs
}

func TestParse_BareMixExpression(t *testing.T) {
	exprs := parseSrc(t, "hello world")
	if len(exprs) != 1 {
		t.Fatalf("got %d exprs, want 1: %v", len(exprs), exprs)
	}
	if exprs[0].String() != "hello world" {
		t.Fatalf("got %q, want %q", exprs[0].String(), "hello world")
	}
}

func TestParse_Definition(t *testing.T) {
	exprs := parseSrc(t, "color :: red | blue")
	if len(exprs) != 1 || exprs[0].Kind != ast.Definition {
		t.Fatalf("exprs = %v", exprs)
	}
	if exprs[0].Name != "color" {
		t.Fatalf("Name = %q, want %q", exprs[0].Name, "color")
	}
	if len(exprs[0].Items) != 2 {
		t.Fatalf("Items = %v", exprs[0].Items)
	}
}

func TestParse_Selection(t *testing.T) {
	exprs := parseSrc(t, "color <- red | blue")
	if exprs[0].Kind != ast.Selection {
		t.Fatalf("Kind = %v, want Selection", exprs[0].Kind)
	}
}

func TestParse_EvaluatingForms(t *testing.T) {
	exprs := parseSrc(t, "x :! (color)")
	if exprs[0].Kind != ast.EvaluatingDefinition {
		t.Fatalf("Kind = %v, want EvaluatingDefinition", exprs[0].Kind)
	}
	exprs = parseSrc(t, "x <! (color)")
	if exprs[0].Kind != ast.EvaluatingSelection {
		t.Fatalf("Kind = %v, want EvaluatingSelection", exprs[0].Kind)
	}
}

func TestParse_ReferenceAndDraw(t *testing.T) {
	exprs := parseSrc(t, "a (color) b {shape} c")
	if exprs[0].String() != "a (color) b {shape} c" {
		t.Fatalf("got %q", exprs[0].String())
	}
}

func TestParse_NestedReference(t *testing.T) {
	exprs := parseSrc(t, "((inner))")
	if exprs[0].Kind != ast.Reference || exprs[0].Payload.Kind != ast.Reference {
		t.Fatalf("exprs = %+v", exprs[0])
	}
}

func TestParse_MultipleTopLevelExpressions(t *testing.T) {
	exprs := parseSrc(t, "x :: a\ny :: b\n")
	if len(exprs) != 2 {
		t.Fatalf("got %d exprs, want 2: %v", len(exprs), exprs)
	}
}

func TestParse_BlankLinesBetweenExpressionsAreSkipped(t *testing.T) {
	exprs := parseSrc(t, "x :: a\n\n\ny :: b\n")
	if len(exprs) != 2 {
		t.Fatalf("got %d exprs, want 2: %v", len(exprs), exprs)
	}
}

func TestParse_WeightExpandsFrequency(t *testing.T) {
	exprs := parseSrc(t, "x :: 3  a | b")
	if len(exprs[0].Items) != 4 {
		t.Fatalf("Items = %v, want 4 (3 copies of a, 1 of b)", exprs[0].Items)
	}
	for i := 0; i < 3; i++ {
		if exprs[0].Items[i].String() != "a" {
			t.Fatalf("Items[%d] = %q, want %q", i, exprs[0].Items[i].String(), "a")
		}
	}
	if exprs[0].Items[3].String() != "b" {
		t.Fatalf("Items[3] = %q, want %q", exprs[0].Items[3].String(), "b")
	}
}

func TestParse_Table1OneItemPerLine(t *testing.T) {
	exprs := parseSrc(t, "flavor\n---\nsalt\npepper\ncumin\n")
	if len(exprs) != 1 || exprs[0].Kind != ast.Definition {
		t.Fatalf("exprs = %v", exprs)
	}
	if len(exprs[0].Items) != 3 {
		t.Fatalf("Items = %v, want 3", exprs[0].Items)
	}
	want := []string{"salt", "pepper", "cumin"}
	for i, w := range want {
		if exprs[0].Items[i].String() != w {
			t.Fatalf("Items[%d] = %q, want %q", i, exprs[0].Items[i].String(), w)
		}
	}
}

func TestParse_Table1TerminatesOnBlankLineNotEOF(t *testing.T) {
	exprs := parseSrc(t, "flavor\n---\nsalt\npepper\n\nx :: after\n")
	if len(exprs) != 2 {
		t.Fatalf("got %d exprs, want 2: %v", len(exprs), exprs)
	}
	if len(exprs[0].Items) != 2 {
		t.Fatalf("Items = %v, want 2", exprs[0].Items)
	}
}

func TestParse_Table1DieHeaderSingleNumberCountsOnce(t *testing.T) {
	exprs := parseSrc(t, "d6  outcome\n---\n1  miss\n2-6  hit\n")
	if len(exprs[0].Items) != 6 {
		t.Fatalf("Items = %v, want 6 (1 miss + 5 hit)", exprs[0].Items)
	}
	if exprs[0].Items[0].String() != "miss" {
		t.Fatalf("Items[0] = %q, want %q", exprs[0].Items[0].String(), "miss")
	}
	for i := 1; i < 6; i++ {
		if exprs[0].Items[i].String() != "hit" {
			t.Fatalf("Items[%d] = %q, want %q", i, exprs[0].Items[i].String(), "hit")
		}
	}
}

func TestParse_Table2SplicesContinuationLines(t *testing.T) {
	exprs := parseSrc(t, "story\n===\nonce upon\na time\n---\nthe end\n")
	if len(exprs[0].Items) != 2 {
		t.Fatalf("Items = %v, want 2", exprs[0].Items)
	}
	if exprs[0].Items[0].String() != "once upon a time" {
		t.Fatalf("Items[0] = %q, want spliced continuation", exprs[0].Items[0].String())
	}
	if exprs[0].Items[1].String() != "the end" {
		t.Fatalf("Items[1] = %q", exprs[0].Items[1].String())
	}
}

func TestParse_Table2TerminatesOnBlankLine(t *testing.T) {
	exprs := parseSrc(t, "story\n===\nonly entry\n\nx :: after\n")
	if len(exprs) != 2 {
		t.Fatalf("got %d exprs, want 2: %v", len(exprs), exprs)
	}
	if len(exprs[0].Items) != 1 {
		t.Fatalf("Items = %v, want 1", exprs[0].Items)
	}
}

func TestParse_Table2TrailingRuleProducesNoSpuriousEmptyItem(t *testing.T) {
	exprs := parseSrc(t, "story\n===\nonce upon\na time\n-----------------\n")
	if len(exprs[0].Items) != 1 {
		t.Fatalf("Items = %v, want 1 (no spurious empty item after the trailing rule)", exprs[0].Items)
	}
	if exprs[0].Items[0].String() != "once upon a time" {
		t.Fatalf("Items[0] = %q, want %q", exprs[0].Items[0].String(), "once upon a time")
	}
}

func TestParse_Table2ContinuationLineLeadingWhitespaceIsNotLeaked(t *testing.T) {
	exprs := parseSrc(t, "story\n===\nthat fall,\n   it disappeared.\n---\n")
	got := exprs[0].Items[0].String()
	want := "that fall, it disappeared."
	if got != want {
		t.Fatalf("Items[0] = %q, want %q", got, want)
	}
}

func TestParse_UnclosedReferenceIsFatal(t *testing.T) {
	toks, err := lexer.Lex("(unclosed")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Parse(toks); err == nil {
		t.Fatal("expected a fatal parse error for an unclosed reference")
	}
}

func TestParse_StrayTokenIsFatal(t *testing.T) {
	toks, err := lexer.Lex(")")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Parse(toks); err == nil {
		t.Fatal("expected a fatal parse error for a stray token")
	}
}

func TestParse_EscapesSurviveAsLiteralText(t *testing.T) {
	exprs := parseSrc(t, `a\(b\)c`)
	if exprs[0].String() != "a(b)c" {
		t.Fatalf("got %q, want %q", exprs[0].String(), "a(b)c")
	}
}
