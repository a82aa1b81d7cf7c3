package registry

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/agentpack-dev/agentpack/internal/item"
)

// Registry is an immutable-after-load mapping from item name to item,
// plus the registry root the items' source files live under.
type Registry struct {
	root  string
	items map[string]*item.Item
}

// New returns an empty registry rooted at root. The root may be empty
// for purely in-memory registries (tests, programmatic callers).
func New(root string) *Registry {
	return &Registry{
		root:  root,
		items: make(map[string]*item.Item),
	}
}

// Add validates it and inserts it into the registry. Item names are
// unique across the loaded set; a duplicate name is an error.
func (r *Registry) Add(it *item.Item) error {
	if err := it.Validate(); err != nil {
		return err
	}
	if _, exists := r.items[it.Name]; exists {
		return fmt.Errorf("duplicate item name %q", it.Name)
	}
	r.items[it.Name] = it
	return nil
}

// Get returns the item with the given name, if present.
func (r *Registry) Get(name string) (*item.Item, bool) {
	it, ok := r.items[name]
	return it, ok
}

// Names returns all item names in lexical order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of loaded items.
func (r *Registry) Len() int { return len(r.items) }

// Root returns the registry root directory.
func (r *Registry) Root() string { return r.root }

// ItemDir returns the directory holding an item's source files.
func (r *Registry) ItemDir(name string) string {
	return filepath.Join(r.root, name)
}
