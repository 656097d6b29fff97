package eval

import (
	"golang.org/x/exp/slices"

	"github.com/ninguid-owl/Invocat/internal/ast"
)

// Evaluator owns the random source used by Selection, EvaluatingSelection,
// Reference and Draw. It holds no other state: the environment is threaded
// through Eval by the caller (spec.md §4.3).
type Evaluator struct {
	rng *Source
}

// New builds an Evaluator whose sampling is deterministic for a given seed.
func New(seed string) *Evaluator {
	return &Evaluator{rng: NewSource(seed)}
}

// Eval evaluates e against env, returning the (possibly mutated) resulting
// environment and the value produced, or nil if e produced no value.
func (v *Evaluator) Eval(e ast.Expr, env Env) (Env, *string) {
	switch e.Kind {
	case ast.Literal:
		text := e.Text
		return env, &text

	case ast.Mix:
		var left, right string
		if e.Left != nil {
			var lv *string
			env, lv = v.Eval(*e.Left, env)
			left = deref(lv)
		}
		if e.Right != nil {
			var rv *string
			env, rv = v.Eval(*e.Right, env)
			right = deref(rv)
		}
		result := left + right
		return env, &result

	case ast.Definition:
		env[e.Name] = e.Items
		return env, nil

	case ast.Selection:
		if len(e.Items) == 0 {
			return env, nil
		}
		chosen := e.Items[v.rng.Intn(len(e.Items))]
		env[e.Name] = []ast.Expr{chosen}
		return env, nil

	case ast.EvaluatingDefinition:
		results := make([]ast.Expr, 0, len(e.Items))
		for _, item := range e.Items {
			var val *string
			env, val = v.Eval(item, env)
			if val != nil {
				results = append(results, ast.Lit(*val))
			}
		}
		env[e.Name] = results
		return env, nil

	case ast.EvaluatingSelection:
		if len(e.Items) == 0 {
			return env, nil
		}
		chosen := e.Items[v.rng.Intn(len(e.Items))]
		var val *string
		env, val = v.Eval(chosen, env)
		env[e.Name] = []ast.Expr{ast.Lit(deref(val))}
		return env, nil

	case ast.Reference:
		name, env := v.resolveName(e, env)
		items, ok := env[name]
		if !ok || len(items) == 0 {
			empty := ""
			return env, &empty
		}
		chosen := items[v.rng.Intn(len(items))]
		return v.Eval(chosen, env)

	case ast.Draw:
		name, env := v.resolveName(e, env)
		items, ok := env[name]
		if !ok || len(items) == 0 {
			empty := ""
			return env, &empty
		}
		idx := v.rng.Intn(len(items))
		drawn := items[idx]
		remaining := slices.DeleteFunc(slices.Clone(items), func(it ast.Expr) bool {
			return it.Equal(drawn)
		})
		if len(remaining) == 0 {
			delete(env, name)
		} else {
			env[name] = remaining
		}
		return v.Eval(drawn, env)

	default:
		empty := ""
		return env, &empty
	}
}

// resolveName evaluates a Reference/Draw's payload expression to the name
// it names (spec.md §9: the payload is an arbitrary expression, not
// necessarily a bare literal, enabling nested references like `(nested (a))`).
func (v *Evaluator) resolveName(e ast.Expr, env Env) (string, Env) {
	if e.Payload == nil {
		return "", env
	}
	env, val := v.Eval(*e.Payload, env)
	return deref(val), env
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
