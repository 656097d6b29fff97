package eval

import (
	"sort"

	"github.com/ninguid-owl/Invocat/internal/ast"
)

// Env maps a bound name to its list of alternative expressions. An absent
// key is distinct from a key bound to an empty list: the invariant that a
// list never sits empty in the map is maintained by Draw removing keys
// once drained (spec.md §3).
type Env map[string][]ast.Expr

// NewEnv returns an empty environment.
func NewEnv() Env { return make(Env) }

// Names returns a sorted snapshot of the bound keys.
func (e Env) Names() []string {
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
