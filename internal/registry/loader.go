package registry

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/agentpack-dev/agentpack/internal/item"
	"github.com/agentpack-dev/agentpack/internal/logging"
)

// manifestNames is the fallback order for finding item manifest files.
var manifestNames = []string{"item.yaml", "item.json"}

// Load reads every item manifest under root and returns a populated
// registry. The expected layout is one directory per item, named after
// the item, containing its manifest and source files:
//
//	<root>/<name>/item.yaml
//	<root>/<name>/...
//
// Directories without a manifest are skipped. Each manifest is checked
// against the embedded JSON schema before it is decoded, so malformed
// documents fail with field-level messages rather than decode noise.
func Load(root string) (*Registry, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving registry root %s: %w", root, err)
	}

	entries, err := os.ReadDir(absRoot)
	if err != nil {
		return nil, fmt.Errorf("reading registry root %s: %w", absRoot, err)
	}

	log := logging.GetLogger("registry")
	reg := New(absRoot)

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		manifestPath, err := findManifest(filepath.Join(absRoot, entry.Name()))
		if err != nil {
			log.Debug().Str("dir", entry.Name()).Msg("no manifest, skipping")
			continue
		}

		it, err := loadManifest(manifestPath)
		if err != nil {
			return nil, err
		}

		if it.Name != entry.Name() {
			return nil, fmt.Errorf("manifest %s: item name %q does not match directory %q",
				manifestPath, it.Name, entry.Name())
		}

		if err := reg.Add(it); err != nil {
			return nil, fmt.Errorf("manifest %s: %w", manifestPath, err)
		}
	}

	log.Debug().Int("items", reg.Len()).Str("root", absRoot).Msg("registry loaded")
	return reg, nil
}

// findManifest searches dir for a manifest file in fallback order.
func findManifest(dir string) (string, error) {
	for _, name := range manifestNames {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("no manifest found in %s", dir)
}

// loadManifest reads, schema-validates, and decodes one item manifest.
func loadManifest(path string) (*item.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	result, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("validating manifest %s: %w", path, err)
	}
	if !result.Valid {
		return nil, fmt.Errorf("manifest %s is invalid: %s", path, result.Issues[0])
	}

	var it item.Item
	if err := yaml.Unmarshal(data, &it); err != nil {
		return nil, fmt.Errorf("decoding manifest %s: %w", path, err)
	}

	return &it, nil
}
