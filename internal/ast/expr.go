// Package ast defines the Invocat abstract syntax tree: a tagged union
// with eight variants (spec.md §3), represented as a Kind enum plus a
// struct carrying only the payload fields each variant needs.
package ast

import "strings"

// Kind tags the variant an Expr represents.
type Kind uint8

const (
	Definition Kind = iota
	Selection
	EvaluatingDefinition
	EvaluatingSelection
	Reference
	Draw
	Literal
	Mix
)

// Expr is a single AST node. Which fields are meaningful depends on Kind:
//
//	Definition/Selection/EvaluatingDefinition/EvaluatingSelection: Name, Items
//	Reference/Draw:                                                 Payload
//	Literal:                                                        Text
//	Mix:                                                            Left, Right
type Expr struct {
	Kind    Kind
	Name    string
	Items   []Expr
	Payload *Expr
	Text    string
	Left    *Expr
	Right   *Expr
}

// Lit builds a Literal node.
func Lit(text string) Expr { return Expr{Kind: Literal, Text: text} }

// MixOf builds a right-leaning Mix(a, b) node.
func MixOf(a, b Expr) Expr {
	return Expr{Kind: Mix, Left: &a, Right: &b}
}

// Ref builds a Reference node from a payload expression that evaluates to
// the name to look up.
func Ref(payload Expr) Expr { return Expr{Kind: Reference, Payload: &payload} }

// DrawOf builds a Draw node from a payload expression.
func DrawOf(payload Expr) Expr { return Expr{Kind: Draw, Payload: &payload} }

// Def builds a Definition/Selection/EvaluatingDefinition/EvaluatingSelection
// node depending on kind.
func Def(kind Kind, name string, items []Expr) Expr {
	return Expr{Kind: kind, Name: name, Items: items}
}

// String renders the canonical surface-text form of e. Two expressions are
// structurally equal (spec.md §3, §8) exactly when their String forms are
// equal.
func (e Expr) String() string {
	var b strings.Builder
	e.write(&b)
	return b.String()
}

// Equal reports whether e and other are structurally identical.
func (e Expr) Equal(other Expr) bool {
	return e.String() == other.String()
}

func (e Expr) write(b *strings.Builder) {
	switch e.Kind {
	case Definition:
		writeTable(b, e.Name, "::", e.Items)
	case Selection:
		writeTable(b, e.Name, "<-", e.Items)
	case EvaluatingDefinition:
		writeTable(b, e.Name, ":!", e.Items)
	case EvaluatingSelection:
		writeTable(b, e.Name, "<!", e.Items)
	case Reference:
		b.WriteByte('(')
		if e.Payload != nil {
			e.Payload.write(b)
		}
		b.WriteByte(')')
	case Draw:
		b.WriteByte('{')
		if e.Payload != nil {
			e.Payload.write(b)
		}
		b.WriteByte('}')
	case Literal:
		b.WriteString(e.Text)
	case Mix:
		if e.Left != nil {
			e.Left.write(b)
		}
		if e.Right != nil {
			e.Right.write(b)
		}
	}
}

func writeTable(b *strings.Builder, name, op string, items []Expr) {
	b.WriteString(name)
	b.WriteByte(' ')
	b.WriteString(op)
	b.WriteByte(' ')
	for i, item := range items {
		if i > 0 {
			b.WriteString(" | ")
		}
		item.write(b)
	}
}
