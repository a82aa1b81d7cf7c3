package installer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentpack-dev/agentpack/internal/fragment"
	"github.com/agentpack-dev/agentpack/internal/lockfile"
)

func installed(t *testing.T) (*Installer, string) {
	t.Helper()
	reg := testRegistry(t)
	dest := filepath.Join(t.TempDir(), "installed")
	ins := New(reg, dest)
	sel := resolveAll(t, reg, "c")
	merged, _ := fragment.Merge(sel.Items())
	require.NoError(t, ins.Install(sel, merged))
	return ins, dest
}

func TestVerifyCleanInstall(t *testing.T) {
	ins, _ := installed(t)

	report, err := ins.Verify()
	require.NoError(t, err)
	assert.True(t, report.Clean())
	assert.Len(t, report.Files, 3)
}

func TestVerifyDetectsDrift(t *testing.T) {
	ins, dest := installed(t)

	require.NoError(t, os.WriteFile(filepath.Join(dest, "agents", "a.md"), []byte("edited\n"), 0644))
	require.NoError(t, os.Remove(filepath.Join(dest, "agents", "b.md")))

	report, err := ins.Verify()
	require.NoError(t, err)
	assert.False(t, report.Clean())

	states := make(map[string]FileState)
	for _, f := range report.Files {
		states[f.Path] = f.State
	}
	assert.Equal(t, StateModified, states["agents/a.md"])
	assert.Equal(t, StateMissing, states["agents/b.md"])
	assert.Equal(t, StateOK, states["servers/c/run.sh"])
}

func TestVerifyWithoutLockFileFails(t *testing.T) {
	ins := New(testRegistry(t), filepath.Join(t.TempDir(), "never-installed"))
	_, err := ins.Verify()
	assert.Error(t, err)
}

func TestUninstallRemovesOwnedFilesAndUpdatesLock(t *testing.T) {
	ins, dest := installed(t)

	require.NoError(t, ins.Uninstall([]string{"c"}, false))

	assert.NoFileExists(t, filepath.Join(dest, "servers", "c", "run.sh"))
	assert.NoDirExists(t, filepath.Join(dest, "servers"), "empty parents are pruned")
	assert.FileExists(t, filepath.Join(dest, "agents", "a.md"))

	lock, err := lockfile.Load(filepath.Join(dest, lockfile.FileName))
	require.NoError(t, err)
	assert.NotContains(t, lock.Items, "c")
	assert.Contains(t, lock.Items, "a")
}

func TestUninstallUnknownItemFails(t *testing.T) {
	ins, _ := installed(t)
	assert.Error(t, ins.Uninstall([]string{"ghost"}, false))
}

func TestUninstallRefusesDriftedFilesUnlessForced(t *testing.T) {
	ins, dest := installed(t)
	edited := filepath.Join(dest, "servers", "c", "run.sh")
	require.NoError(t, os.WriteFile(edited, []byte("local edits\n"), 0755))

	err := ins.Uninstall([]string{"c"}, false)
	require.Error(t, err)
	assert.FileExists(t, edited, "drifted file is untouched")

	require.NoError(t, ins.Uninstall([]string{"c"}, true))
	assert.NoFileExists(t, edited)
}

func TestUninstallMissingFileIsNotAnError(t *testing.T) {
	ins, dest := installed(t)
	require.NoError(t, os.Remove(filepath.Join(dest, "agents", "b.md")))
	require.NoError(t, ins.Uninstall([]string{"b"}, false))
}
