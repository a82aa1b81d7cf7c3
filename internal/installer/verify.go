package installer

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/agentpack-dev/agentpack/internal/lockfile"
)

// FileState classifies one installed file against its recorded hash.
type FileState string

const (
	StateOK       FileState = "ok"
	StateModified FileState = "modified"
	StateMissing  FileState = "missing"
)

// FileStatus is the drift verdict for one destination file.
type FileStatus struct {
	Item  string
	Path  string
	State FileState
}

// Report is the result of verifying a destination root against its
// lock file.
type Report struct {
	Files []FileStatus
}

// Clean reports whether every recorded file is present and unmodified.
func (r *Report) Clean() bool {
	for _, f := range r.Files {
		if f.State != StateOK {
			return false
		}
	}
	return true
}

// Verify loads the destination's lock file and recomputes every
// recorded content hash, reporting per-file drift. Results are ordered
// by item name, then path.
func (ins *Installer) Verify() (*Report, error) {
	lock, err := lockfile.Load(filepath.Join(ins.dest, lockfile.FileName))
	if err != nil {
		return nil, fmt.Errorf("loading installed state: %w", err)
	}

	report := &Report{}
	for _, name := range sortedKeys(lock.Items) {
		entry := lock.Items[name]
		for _, path := range sortedKeys(entry.Files) {
			live := filepath.Join(ins.dest, filepath.FromSlash(path))
			state := StateOK
			if _, err := os.Stat(live); err != nil {
				state = StateMissing
			} else if !lockfile.VerifyFile(live, entry.Files[path]) {
				state = StateModified
			}
			report.Files = append(report.Files, FileStatus{Item: name, Path: path, State: state})
		}
	}

	return report, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
