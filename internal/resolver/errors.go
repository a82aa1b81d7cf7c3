package resolver

import (
	"fmt"
	"strings"
)

// MissingDependencyError reports a requested or declared name absent
// from the registry. Item is empty when the missing name was requested
// directly rather than pulled in as a dependency.
type MissingDependencyError struct {
	Item       string
	Dependency string
}

func (e *MissingDependencyError) Error() string {
	if e.Item == "" {
		return fmt.Sprintf("requested item %q not found in registry", e.Dependency)
	}
	return fmt.Sprintf("item %q depends on %q, which is not in the registry", e.Item, e.Dependency)
}

// CycleError reports a dependency cycle. Cycle lists the item names in
// traversal order, ending with the repeated node, e.g. [a b c a].
type CycleError struct {
	Cycle []string
}

func (e *CycleError) Error() string {
	return "dependency cycle: " + strings.Join(e.Cycle, " -> ")
}
