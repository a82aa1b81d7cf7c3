//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	RegistryDir string // registry root with item directories
	DestDir     string // destination root items get installed into
}

// setupTestEnv creates isolated temp directories and a populated
// registry with the canonical chain: agent "base", agent "review"
// (depends on base), and server "gh" (depends on review).
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		RegistryDir: t.TempDir(),
		DestDir:     filepath.Join(t.TempDir(), "installed"),
	}

	writeItem(t, env.RegistryDir, "base", `name: base
type: agent
version: "1.0.0"
description: Baseline instructions
files:
  agents/base.md: base.md
`, map[string]string{"base.md": "# base\n"})

	writeItem(t, env.RegistryDir, "review", `name: review
type: agent
version: "1.2.0"
description: Code review agent
dependencies:
  - base
files:
  agents/review.md: review.md
`, map[string]string{"review.md": "# review\n"})

	writeItem(t, env.RegistryDir, "gh", `name: gh
type: server
version: "2.0.0"
description: GitHub MCP server
dependencies:
  - review
required_env:
  - GITHUB_TOKEN
files:
  servers/gh/run.sh: run.sh
config_fragment:
  mcpServers:
    gh:
      command: servers/gh/run.sh
`, map[string]string{"run.sh": "#!/bin/sh\nexec gh-mcp\n"})

	return env
}

// writeItem writes one item directory with its manifest and source files.
func writeItem(t *testing.T, root, name, manifest string, sources map[string]string) {
	t.Helper()

	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating %s: %v", dir, err)
	}
	if err := os.WriteFile(filepath.Join(dir, "item.yaml"), []byte(manifest), 0644); err != nil {
		t.Fatalf("writing manifest: %v", err)
	}
	for rel, content := range sources {
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file %s: %v", path, err)
	}
}

func assertNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected %s to be absent", path)
	}
}
