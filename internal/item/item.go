package item

import (
	"fmt"
	"os"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Type is the discriminator for the three installable item kinds.
type Type string

// Item type constants for the type discriminator field.
const (
	TypeAgent   Type = "agent"
	TypeCommand Type = "command"
	TypeServer  Type = "server"
)

// ValidTypes contains all valid item type values.
var ValidTypes = []Type{TypeAgent, TypeCommand, TypeServer}

// Valid reports whether t is one of the known item types.
func (t Type) Valid() bool {
	switch t {
	case TypeAgent, TypeCommand, TypeServer:
		return true
	}
	return false
}

func (t Type) String() string { return string(t) }

// namePattern constrains item names to lowercase tokens.
var namePattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// Item describes one installable unit from the registry. Values are
// treated as immutable once constructed; the resolver and installer
// never modify them.
type Item struct {
	Name         string            `yaml:"name" json:"name"`
	Version      string            `yaml:"version" json:"version"`
	Type         Type              `yaml:"type" json:"type"`
	Description  string            `yaml:"description,omitempty" json:"description,omitempty"`
	Dependencies []string          `yaml:"dependencies,omitempty" json:"dependencies,omitempty"`
	RequiredEnv  []string          `yaml:"required_env,omitempty" json:"required_env,omitempty"`
	OptionalEnv  []string          `yaml:"optional_env,omitempty" json:"optional_env,omitempty"`

	// Files maps destination-relative paths to source paths relative to
	// the item's directory in the registry.
	Files map[string]string `yaml:"files,omitempty" json:"files,omitempty"`

	// ConfigFragment is the partial configuration document this item
	// contributes to the merged config. Mandatory iff Type == server.
	ConfigFragment map[string]interface{} `yaml:"config_fragment,omitempty" json:"config_fragment,omitempty"`
}

// Validate checks the construction-time invariants of a single item.
// Cross-item invariants (unique names, resolvable dependencies) belong
// to the registry and resolver.
func (it *Item) Validate() error {
	if !namePattern.MatchString(it.Name) {
		return fmt.Errorf("item name %q does not match [a-z0-9-]+", it.Name)
	}

	if _, err := semver.NewVersion(it.Version); err != nil {
		return fmt.Errorf("item %s: version %q is not a semantic version: %w", it.Name, it.Version, err)
	}

	if !it.Type.Valid() {
		return fmt.Errorf("item %s: unknown type %q", it.Name, it.Type)
	}

	if it.Type == TypeServer && it.ConfigFragment == nil {
		return fmt.Errorf("item %s: server items must declare a config fragment", it.Name)
	}
	if it.Type != TypeServer && it.ConfigFragment != nil {
		return fmt.Errorf("item %s: %s items must not declare a config fragment", it.Name, it.Type)
	}

	for dst, src := range it.Files {
		if err := CheckRelPath(dst); err != nil {
			return fmt.Errorf("item %s: destination %q: %w", it.Name, dst, err)
		}
		if err := CheckRelPath(src); err != nil {
			return fmt.Errorf("item %s: source %q: %w", it.Name, src, err)
		}
	}

	return nil
}

// SortedFiles returns the item's file mappings as (dest, src) pairs in
// stable destination order, so install and preview output is reproducible.
func (it *Item) SortedFiles() []FileMapping {
	mappings := make([]FileMapping, 0, len(it.Files))
	for dst, src := range it.Files {
		mappings = append(mappings, FileMapping{Dest: dst, Source: src})
	}
	sort.Slice(mappings, func(i, j int) bool { return mappings[i].Dest < mappings[j].Dest })
	return mappings
}

// FileMapping is one declared file copy, destination first to match the
// on-disk manifest shape.
type FileMapping struct {
	Dest   string
	Source string
}

// CheckRelPath rejects paths that are empty, absolute, or contain a
// parent-directory traversal segment. Paths are slash-separated as
// written in manifests.
func CheckRelPath(p string) error {
	if p == "" {
		return fmt.Errorf("path is empty")
	}
	if path.IsAbs(p) || strings.HasPrefix(p, string(os.PathSeparator)) {
		return fmt.Errorf("path is absolute")
	}
	for _, seg := range strings.Split(path.Clean(p), "/") {
		if seg == ".." {
			return fmt.Errorf("path contains a parent-directory segment")
		}
	}
	return nil
}

// MissingRequiredEnv returns the required environment variables of the
// item that are not set in the current process environment. Advisory
// only; the installer does not block on it.
func (it *Item) MissingRequiredEnv() []string {
	var missing []string
	for _, name := range it.RequiredEnv {
		if _, ok := os.LookupEnv(name); !ok {
			missing = append(missing, name)
		}
	}
	return missing
}
