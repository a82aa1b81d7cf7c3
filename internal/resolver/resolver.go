package resolver

import (
	"sort"

	"github.com/agentpack-dev/agentpack/internal/item"
	"github.com/agentpack-dev/agentpack/internal/logging"
	"github.com/agentpack-dev/agentpack/internal/registry"
)

// Traversal colors for cycle detection.
type color int

const (
	white color = iota // not visited
	gray               // on the current path
	black              // fully processed
)

// Resolve expands the requested names into a Selection containing every
// request plus the full transitive closure of dependencies, in an order
// where each item appears after all of its dependencies. The order is
// deterministic: requests are walked in first-requested order and each
// item's dependencies in lexical name order, so resolving the same
// request against the same registry always yields the same Selection.
//
// Resolution fails without a partial result: *MissingDependencyError
// when a name (requested or declared) is absent from the registry,
// *CycleError when the dependency graph reachable from the request
// contains a cycle.
func Resolve(reg *registry.Registry, requested []string) (*Selection, error) {
	r := &resolution{
		reg:    reg,
		colors: make(map[string]color),
	}

	sel := &Selection{}
	for _, name := range requested {
		if sel.IsExplicit(name) {
			continue // duplicate request, keep first occurrence
		}
		if _, ok := reg.Get(name); !ok {
			return nil, &MissingDependencyError{Dependency: name}
		}
		sel.Explicit = append(sel.Explicit, name)
	}

	for _, name := range sel.Explicit {
		if err := r.visit(name); err != nil {
			return nil, err
		}
	}

	explicit := make(map[string]bool, len(sel.Explicit))
	for _, name := range sel.Explicit {
		explicit[name] = true
	}
	for _, it := range r.ordered {
		if !explicit[it.Name] {
			sel.Transitive = append(sel.Transitive, it.Name)
		}
	}
	sel.items = r.ordered

	logger := logging.GetLogger("resolver")
	logger.Debug().
		Strs("explicit", sel.Explicit).
		Strs("transitive", sel.Transitive).
		Msg("selection resolved")

	return sel, nil
}

type resolution struct {
	reg     *registry.Registry
	colors  map[string]color
	path    []string // current gray chain, for cycle reporting
	ordered []*item.Item
}

// visit performs a depth-first walk, appending each item to the ordered
// result after all of its dependencies (post-order).
func (r *resolution) visit(name string) error {
	switch r.colors[name] {
	case black:
		return nil
	case gray:
		return &CycleError{Cycle: r.cycleFrom(name)}
	}

	it, ok := r.reg.Get(name)
	if !ok {
		// Callers report the dependent; reaching here means the walk was
		// entered with a name already checked against the registry.
		return &MissingDependencyError{Dependency: name}
	}

	r.colors[name] = gray
	r.path = append(r.path, name)

	deps := append([]string{}, it.Dependencies...)
	sort.Strings(deps)
	for _, dep := range deps {
		if _, ok := r.reg.Get(dep); !ok {
			return &MissingDependencyError{Item: name, Dependency: dep}
		}
		if err := r.visit(dep); err != nil {
			return err
		}
	}

	r.path = r.path[:len(r.path)-1]
	r.colors[name] = black
	r.ordered = append(r.ordered, it)
	return nil
}

// cycleFrom slices the current path from the first occurrence of name
// and closes the loop by repeating it.
func (r *resolution) cycleFrom(name string) []string {
	start := 0
	for i, n := range r.path {
		if n == name {
			start = i
			break
		}
	}
	cycle := append([]string{}, r.path[start:]...)
	return append(cycle, name)
}
