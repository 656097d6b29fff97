package ast

import "testing"

func TestMixAssociativityInString(t *testing.T) {
	a, b, c := Lit("a"), Lit("b"), Lit("c")

	left := MixOf(MixOf(a, b), c)
	right := MixOf(a, MixOf(b, c))

	if left.String() != right.String() {
		t.Fatalf("Mix associativity broke rendering: %q vs %q", left.String(), right.String())
	}
	if left.String() != "abc" {
		t.Fatalf("Mix(Mix(a,b),c) rendered %q, want %q", left.String(), "abc")
	}
}

func TestLiteralEquality(t *testing.T) {
	if !Lit("moon").Equal(Lit("moon")) {
		t.Fatal("identical literals should be structurally equal")
	}
	if Lit("moon").Equal(Lit("sun")) {
		t.Fatal("distinct literals should not be structurally equal")
	}
}

func TestReferenceAndDrawRoundTripSurfaceForm(t *testing.T) {
	ref := Ref(Lit("x"))
	if ref.String() != "(x)" {
		t.Fatalf("Reference rendered %q, want %q", ref.String(), "(x)")
	}
	draw := DrawOf(Lit("x"))
	if draw.String() != "{x}" {
		t.Fatalf("Draw rendered %q, want %q", draw.String(), "{x}")
	}
}

func TestDefinitionRendersItemsPipeSeparated(t *testing.T) {
	def := Def(Definition, "color", []Expr{Lit("red"), Lit("blue")})
	want := "color :: red | blue"
	if def.String() != want {
		t.Fatalf("Definition rendered %q, want %q", def.String(), want)
	}
}
