// Package query finds nodes in a decoded tree by evaluating a
// user-supplied expression at every node of an exhaustive walk.
package query

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/mpk-tools/mpk/debug"
	"github.com/mpk-tools/mpk/ir"
)

// Match is one node selected by an expression, with the path that
// reached it.  Path is owned by the match.
type Match struct {
	Path  ir.Path
	Value *ir.Value
}

// Env is the set of variables visible to a query expression at each
// visited node.
type Env struct {
	// Path is the rendered path of the node ("/users/0/name").
	Path string `expr:"path"`
	// Kind is the node's type name ("int", "map", ...).
	Kind string `expr:"kind"`
	// Key is the scalar literal of the nearest enclosing map key, or ""
	// outside map values.
	Key string `expr:"key"`
	// Depth is the number of steps from the root.
	Depth int `expr:"depth"`
	// Value is the node's scalar literal, "" for containers.
	Value string `expr:"value"`
	// Size is the child or byte count, 0 for other scalars.
	Size int `expr:"size"`
}

// Compile checks src against the query environment and requires a
// boolean result.  The returned program is reusable across trees.
func Compile(src string) (*vm.Program, error) {
	prog, err := expr.Compile(src, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", src, err)
	}
	return prog, nil
}

// Select walks root and returns every node at which prog evaluates to
// true, in walk order.
func Select(root *ir.Value, prog *vm.Program) ([]Match, error) {
	var matches []Match
	err := ir.Walk(root, func(p ir.Path, v *ir.Value) error {
		env := Env{
			Path:  p.String(),
			Kind:  v.Type.String(),
			Depth: len(p),
			Size:  v.Len(),
		}
		if lit, ok := ir.ScalarLiteral(v); ok {
			env.Value = lit
		}
		if n := len(p); n > 0 && p[n-1].Key != nil && !p[n-1].InKey {
			if lit, ok := ir.ScalarLiteral(p[n-1].Key); ok {
				env.Key = lit
			}
		}
		out, err := vm.Run(prog, env)
		if err != nil {
			return fmt.Errorf("query at %s: %w", env.Path, err)
		}
		if out.(bool) {
			matches = append(matches, Match{Path: p.Clone(), Value: v})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if debug.Query() {
		debug.Logf("query: %d matches\n", len(matches))
	}
	return matches, nil
}

// Find compiles src and selects against root in one call.
func Find(root *ir.Value, src string) ([]Match, error) {
	prog, err := Compile(src)
	if err != nil {
		return nil, err
	}
	return Select(root, prog)
}
