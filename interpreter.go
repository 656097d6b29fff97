// Package invocat is the façade over the lexer, parser and evaluator: it
// owns the persistent environment and random source and exposes the small
// surface a CLI or embedding program needs (spec.md §4.4).
package invocat

import (
	"os"

	"github.com/ninguid-owl/Invocat/internal/eval"
	"github.com/ninguid-owl/Invocat/internal/lexer"
	"github.com/ninguid-owl/Invocat/internal/parser"
)

// Interpreter runs Invocat source against a persistent environment. It is
// not safe for concurrent use; give each goroutine its own Interpreter.
type Interpreter struct {
	env       eval.Env
	evaluator *eval.Evaluator
}

// New constructs an Interpreter seeded for deterministic sampling.
func New(seed string) *Interpreter {
	return &Interpreter{
		env:       eval.NewEnv(),
		evaluator: eval.New(seed),
	}
}

// Eval lexes, parses, then evaluates text as a sequence of top-level
// expressions, threading and mutating the persistent environment. It
// returns the values produced by expressions that evaluated to a value
// (spec.md §9's empty-vs-absent distinction: a top-level expression that
// produces nothing contributes no entry). A lex or parse failure aborts the
// whole call and leaves the environment untouched.
func (in *Interpreter) Eval(text string) ([]string, error) {
	tokens, err := lexer.Lex(text)
	if err != nil {
		return nil, WrapWithSource(err, text)
	}
	exprs, err := parser.Parse(tokens)
	if err != nil {
		return nil, WrapWithSource(err, text)
	}

	env := in.env
	var results []string
	for _, e := range exprs {
		var val *string
		env, val = in.evaluator.Eval(e, env)
		if val != nil {
			results = append(results, *val)
		}
	}
	in.env = env
	return results, nil
}

// EvalFile reads path as UTF-8 and delegates to Eval. A read failure
// returns a nil result and no error, per spec.md §7's "does not throw"
// contract for file I/O.
func (in *Interpreter) EvalFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil
	}
	return in.Eval(string(data))
}

// Names returns a snapshot of the bound environment keys.
func (in *Interpreter) Names() []string {
	return in.env.Names()
}
