//go:build integration

package integration_test

import (
	"path/filepath"
	"testing"

	"github.com/agentpack-dev/agentpack/internal/fragment"
	"github.com/agentpack-dev/agentpack/internal/installer"
	"github.com/agentpack-dev/agentpack/internal/lockfile"
	"github.com/agentpack-dev/agentpack/internal/registry"
	"github.com/agentpack-dev/agentpack/internal/resolver"
)

// TestFullLifecycle walks the whole flow: load, resolve, merge,
// install, verify, uninstall.
func TestFullLifecycle(t *testing.T) {
	env := setupTestEnv(t)

	reg, err := registry.Load(env.RegistryDir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	sel, err := resolver.Resolve(reg, []string{"gh"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := sel.Names(); len(got) != 3 || got[0] != "base" || got[1] != "review" || got[2] != "gh" {
		t.Fatalf("resolution order = %v, want [base review gh]", got)
	}

	merged, conflicts := fragment.Merge(sel.Items())
	if len(conflicts) != 0 {
		t.Fatalf("conflicts = %v, want none", conflicts)
	}

	ins := installer.New(reg, env.DestDir)
	if err := ins.Install(sel, merged); err != nil {
		t.Fatalf("Install: %v", err)
	}

	assertFileExists(t, filepath.Join(env.DestDir, "agents", "base.md"))
	assertFileExists(t, filepath.Join(env.DestDir, "agents", "review.md"))
	assertFileExists(t, filepath.Join(env.DestDir, "servers", "gh", "run.sh"))
	assertFileExists(t, filepath.Join(env.DestDir, installer.ConfigFileName))
	assertFileExists(t, filepath.Join(env.DestDir, lockfile.FileName))

	report, err := ins.Verify()
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !report.Clean() {
		t.Errorf("fresh install is not clean: %+v", report.Files)
	}

	if err := ins.Uninstall([]string{"gh"}, false); err != nil {
		t.Fatalf("Uninstall: %v", err)
	}
	assertNotExists(t, filepath.Join(env.DestDir, "servers"))
	assertFileExists(t, filepath.Join(env.DestDir, "agents", "review.md"))
}

// TestReinstallIsReproducible checks that installing the same selection
// twice produces identical lock file items.
func TestReinstallIsReproducible(t *testing.T) {
	env := setupTestEnv(t)

	reg, err := registry.Load(env.RegistryDir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	sel, err := resolver.Resolve(reg, []string{"gh"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	merged, _ := fragment.Merge(sel.Items())
	ins := installer.New(reg, env.DestDir)

	if err := ins.Install(sel, merged); err != nil {
		t.Fatalf("first Install: %v", err)
	}
	first, err := lockfile.Load(filepath.Join(env.DestDir, lockfile.FileName))
	if err != nil {
		t.Fatal(err)
	}

	if err := ins.Install(sel, merged); err != nil {
		t.Fatalf("second Install: %v", err)
	}
	second, err := lockfile.Load(filepath.Join(env.DestDir, lockfile.FileName))
	if err != nil {
		t.Fatal(err)
	}

	if len(first.Items) != len(second.Items) {
		t.Fatalf("item counts differ: %d vs %d", len(first.Items), len(second.Items))
	}
	for name, entry := range first.Items {
		got := second.Items[name]
		if got.Version != entry.Version || got.Type != entry.Type {
			t.Errorf("item %s changed across reinstall", name)
		}
		for path, hash := range entry.Files {
			if got.Files[path] != hash {
				t.Errorf("item %s file %s hash changed across reinstall", name, path)
			}
		}
	}
}
