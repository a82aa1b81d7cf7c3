package resolver

import (
	"github.com/agentpack-dev/agentpack/internal/fragment"
	"github.com/agentpack-dev/agentpack/internal/item"
)

// Selection is the resolved, ordered, deduplicated set of items to
// install. Explicitly requested names and transitively pulled-in names
// are kept disjoint so callers can tell "asked for" from "pulled in".
type Selection struct {
	// Explicit holds the user's requests, first-occurrence order, deduplicated.
	Explicit []string

	// Transitive holds the names the resolver added, in resolution order.
	Transitive []string

	items []*item.Item

	// Conflicts is attached after fragment merging; the Selection owns
	// the list. A nil slice means merging has not run or found nothing.
	Conflicts []fragment.Conflict
}

// Items returns every selected item in install order: each item appears
// exactly once, after all of its dependencies.
func (s *Selection) Items() []*item.Item {
	return s.items
}

// Names returns the install-ordered item names.
func (s *Selection) Names() []string {
	names := make([]string, len(s.items))
	for i, it := range s.items {
		names[i] = it.Name
	}
	return names
}

// Len returns the number of selected items.
func (s *Selection) Len() int { return len(s.items) }

// IsExplicit reports whether name was requested directly.
func (s *Selection) IsExplicit(name string) bool {
	for _, n := range s.Explicit {
		if n == name {
			return true
		}
	}
	return false
}
