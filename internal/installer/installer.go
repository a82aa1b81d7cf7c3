package installer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agentpack-dev/agentpack/internal/item"
	"github.com/agentpack-dev/agentpack/internal/lockfile"
	"github.com/agentpack-dev/agentpack/internal/logging"
	"github.com/agentpack-dev/agentpack/internal/platform"
	"github.com/agentpack-dev/agentpack/internal/registry"
	"github.com/agentpack-dev/agentpack/internal/resolver"
)

// ConfigFileName is the merged configuration document written alongside
// the installed files.
const ConfigFileName = "mcp.json"

// Installer performs transactional installs from one registry into one
// destination root. It assumes single-writer discipline on the
// destination; concurrent runs against the same root are the caller's
// problem to exclude.
type Installer struct {
	reg  *registry.Registry
	dest string
	log  zerolog.Logger
}

// New returns an installer for the given registry and destination root.
func New(reg *registry.Registry, destRoot string) *Installer {
	return &Installer{
		reg:  reg,
		dest: destRoot,
		log:  logging.GetLogger("installer"),
	}
}

// Install materializes the selection and its merged configuration into
// the destination root as a single transaction. On success the
// destination contains every declared file, the merged config document,
// and a fresh lock file. On any failure the destination is left exactly
// as it was and no staging directory remains.
func (ins *Installer) Install(sel *resolver.Selection, merged map[string]interface{}) error {
	// Path safety is checked for the whole selection before anything is
	// written, so a bad mapping can never leave partial staging behind.
	if err := ins.checkPaths(sel); err != nil {
		return err
	}

	staging, err := ins.createStaging()
	if err != nil {
		return &AtomicError{Step: "staging setup", Err: err}
	}

	lock := lockfile.New(ins.reg.Root())
	for _, it := range sel.Items() {
		entry, err := ins.stageItem(it, staging)
		if err != nil {
			return ins.abort(staging, "", &AtomicError{Step: "staging", Err: err})
		}
		lock.AddItem(it.Name, entry)
	}

	if err := writeMergedConfig(filepath.Join(staging, ConfigFileName), merged); err != nil {
		return ins.abort(staging, "", &AtomicError{Step: "staging", Err: err})
	}
	if err := lock.Write(filepath.Join(staging, lockfile.FileName)); err != nil {
		return ins.abort(staging, "", &AtomicError{Step: "staging", Err: err})
	}

	return ins.publish(staging)
}

// publish swaps the fully staged directory into place. The destination
// is never deleted before the replacement exists: an existing root is
// moved aside to a backup first, and the backup is only discarded once
// the swap succeeded.
func (ins *Installer) publish(staging string) error {
	backup := ""
	if _, err := os.Stat(ins.dest); err == nil {
		backup = ins.dest + ".backup-" + shortID()
		if err := os.Rename(ins.dest, backup); err != nil {
			return ins.abort(staging, "", &AtomicError{Step: "backup", Err: err})
		}
	}

	if err := os.Rename(staging, ins.dest); err != nil {
		return ins.abort(staging, backup, &AtomicError{Step: "publish", Err: err})
	}

	if backup != "" {
		// The install is already visible; a stale backup is a wart, not
		// a failure.
		if err := os.RemoveAll(backup); err != nil {
			ins.log.Warn().Str("backup", backup).Err(err).Msg("could not remove backup")
		}
	}

	ins.log.Info().Str("dest", ins.dest).Msg("install published")
	return nil
}

// abort rolls the transaction back: the staging directory is removed
// and, if the destination had been moved aside, the backup is restored.
// A rollback failure escalates to *RollbackError so the caller knows
// the destination may need manual recovery.
func (ins *Installer) abort(staging, backup string, cause error) error {
	ins.log.Warn().Err(cause).Msg("install failed, rolling back")

	if err := os.RemoveAll(staging); err != nil {
		return &RollbackError{Cause: cause, Failure: fmt.Errorf("removing staging %s: %w", staging, err)}
	}

	if backup != "" {
		if _, err := os.Stat(ins.dest); err == nil {
			// Publish half-succeeded; clear it before restoring.
			if err := os.RemoveAll(ins.dest); err != nil {
				return &RollbackError{Cause: cause, Failure: fmt.Errorf("clearing %s: %w", ins.dest, err)}
			}
		}
		if err := os.Rename(backup, ins.dest); err != nil {
			return &RollbackError{Cause: cause, Failure: fmt.Errorf("restoring backup %s: %w", backup, err)}
		}
	}

	return cause
}

// checkPaths validates every file mapping of every selected item before
// the first filesystem operation.
func (ins *Installer) checkPaths(sel *resolver.Selection) error {
	for _, it := range sel.Items() {
		for _, m := range it.SortedFiles() {
			if err := item.CheckRelPath(m.Dest); err != nil {
				return &PathTraversalError{Item: it.Name, Path: m.Dest, Err: err}
			}
			if err := item.CheckRelPath(m.Source); err != nil {
				return &PathTraversalError{Item: it.Name, Path: m.Source, Err: err}
			}
		}
	}
	return nil
}

// createStaging makes the isolated staging directory as a sibling of
// the destination root, so the final publish is a same-volume rename.
func (ins *Installer) createStaging() (string, error) {
	if err := os.MkdirAll(filepath.Dir(ins.dest), 0755); err != nil {
		return "", fmt.Errorf("creating parent of %s: %w", ins.dest, err)
	}
	staging := ins.dest + ".staging-" + shortID()
	if err := os.Mkdir(staging, 0755); err != nil {
		return "", fmt.Errorf("creating staging directory %s: %w", staging, err)
	}
	return staging, nil
}

// stageItem copies every declared file of it into the staging tree and
// returns the item's lock entry with per-file content hashes.
func (ins *Installer) stageItem(it *item.Item, staging string) (lockfile.Entry, error) {
	entry := lockfile.Entry{
		Type:    it.Type.String(),
		Version: it.Version,
		Files:   make(map[string]string, len(it.Files)),
	}

	srcDir := ins.reg.ItemDir(it.Name)
	for _, m := range it.SortedFiles() {
		src := filepath.Join(srcDir, filepath.FromSlash(m.Source))
		dst := filepath.Join(staging, filepath.FromSlash(m.Dest))

		data, err := os.ReadFile(src)
		if err != nil {
			if os.IsNotExist(err) {
				return entry, &SourceNotFoundError{Item: it.Name, Source: src}
			}
			return entry, &CopyError{Item: it.Name, Source: src, Dest: dst, Err: err}
		}

		info, err := os.Stat(src)
		if err != nil {
			return entry, &CopyError{Item: it.Name, Source: src, Dest: dst, Err: err}
		}

		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return entry, &CopyError{Item: it.Name, Source: src, Dest: dst, Err: err}
		}
		if err := os.WriteFile(dst, data, info.Mode().Perm()); err != nil {
			return entry, &CopyError{Item: it.Name, Source: src, Dest: dst, Err: err}
		}
		// WriteFile's mode is filtered by the umask; restore the source
		// permissions exactly.
		if err := platform.Chmod(dst, info.Mode().Perm()); err != nil {
			return entry, &CopyError{Item: it.Name, Source: src, Dest: dst, Err: err}
		}

		entry.Files[m.Dest] = lockfile.HashBytes(data)
		ins.log.Debug().Str("item", it.Name).Str("dest", m.Dest).Msg("staged file")
	}

	return entry, nil
}

// writeMergedConfig serializes the merged configuration document as
// stable-keyed JSON with a trailing newline.
func writeMergedConfig(path string, merged map[string]interface{}) error {
	if merged == nil {
		merged = map[string]interface{}{}
	}
	data, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling merged config: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing merged config %s: %w", path, err)
	}
	return nil
}

// shortID returns a unique suffix for staging and backup directories.
func shortID() string {
	return uuid.NewString()[:8]
}
