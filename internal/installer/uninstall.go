package installer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/agentpack-dev/agentpack/internal/lockfile"
)

// Uninstall removes the destination files owned by the named items, as
// recorded in the lock file, and rewrites the lock file without them.
// A file whose live hash drifted from its recorded hash is refused
// unless force is set, so local edits are not destroyed silently.
// Empty parent directories left behind are pruned best-effort.
func (ins *Installer) Uninstall(names []string, force bool) error {
	lockPath := filepath.Join(ins.dest, lockfile.FileName)
	lock, err := lockfile.Load(lockPath)
	if err != nil {
		return fmt.Errorf("loading installed state: %w", err)
	}

	for _, name := range names {
		if _, ok := lock.Items[name]; !ok {
			return fmt.Errorf("item %q is not installed", name)
		}
	}

	if !force {
		for _, name := range names {
			entry := lock.Items[name]
			for _, path := range sortedKeys(entry.Files) {
				live := filepath.Join(ins.dest, filepath.FromSlash(path))
				if _, err := os.Stat(live); err != nil {
					continue // already gone
				}
				if !lockfile.VerifyFile(live, entry.Files[path]) {
					return fmt.Errorf("item %s: %s was modified since install; use --force to remove anyway", name, path)
				}
			}
		}
	}

	for _, name := range names {
		entry := lock.Items[name]
		for _, path := range sortedKeys(entry.Files) {
			live := filepath.Join(ins.dest, filepath.FromSlash(path))
			if err := os.Remove(live); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("removing %s: %w", live, err)
			}
			ins.pruneEmptyDirs(filepath.Dir(live))
		}
		lock.RemoveItem(name)
		ins.log.Info().Str("item", name).Msg("uninstalled")
	}

	if err := lock.Write(lockPath); err != nil {
		return fmt.Errorf("updating installed state: %w", err)
	}
	return nil
}

// pruneEmptyDirs removes now-empty directories between dir and the
// destination root. Best-effort only; errors are swallowed because a
// leftover empty directory is harmless.
func (ins *Installer) pruneEmptyDirs(dir string) {
	for dir != ins.dest && len(dir) > len(ins.dest) {
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			return
		}
		if err := os.Remove(dir); err != nil {
			return
		}
		dir = filepath.Dir(dir)
	}
}
