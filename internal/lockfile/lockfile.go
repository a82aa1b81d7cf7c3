package lockfile

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/Masterminds/semver/v3"
	"go.yaml.in/yaml/v3"
)

// FormatVersion is the lock file format this package writes.
const FormatVersion = "1.0.0"

// FileName is the lock file's name inside an installed destination root.
const FileName = "agentpack.lock"

// hashPattern is the only accepted shape for recorded content hashes.
var hashPattern = regexp.MustCompile(`^sha256:[0-9a-f]{64}$`)

// Entry records one installed item: its type, version, and the content
// hash of every destination file it owns.
type Entry struct {
	Type    string            `yaml:"type"`
	Version string            `yaml:"version"`
	Files   map[string]string `yaml:"files"`
}

// LockFile is the single source of truth for what an installed
// destination root contains and why.
type LockFile struct {
	Version      string           `yaml:"version"`
	Generated    string           `yaml:"generated"`
	RegistryPath string           `yaml:"registry_path"`
	Items        map[string]Entry `yaml:"items"`
}

// ValidationError reports a malformed lock file field. Malformed data
// is fatal at the boundary; it is never silently coerced.
type ValidationError struct {
	Field string
	Value string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("lock file field %s: %s (got %q)", e.Field, e.Msg, e.Value)
}

// New returns an empty lock file stamped with the current UTC time and
// the registry path the install resolved against.
func New(registryPath string) *LockFile {
	return &LockFile{
		Version:      FormatVersion,
		Generated:    time.Now().UTC().Format(time.RFC3339),
		RegistryPath: registryPath,
		Items:        make(map[string]Entry),
	}
}

// AddItem records an entry under name, replacing any previous entry.
func (lf *LockFile) AddItem(name string, entry Entry) {
	if lf.Items == nil {
		lf.Items = make(map[string]Entry)
	}
	lf.Items[name] = entry
}

// RemoveItem deletes an entry; absent names are a no-op.
func (lf *LockFile) RemoveItem(name string) {
	delete(lf.Items, name)
}

// Validate enforces the data-integrity invariants: a semantic format
// version, an RFC 3339 timestamp, semantic item versions, and hashes of
// exactly the "sha256:" + 64 lowercase hex form.
func (lf *LockFile) Validate() error {
	if _, err := semver.NewVersion(lf.Version); err != nil {
		return &ValidationError{Field: "version", Value: lf.Version, Msg: "not a semantic version"}
	}
	if _, err := time.Parse(time.RFC3339, lf.Generated); err != nil {
		return &ValidationError{Field: "generated", Value: lf.Generated, Msg: "not an RFC 3339 timestamp"}
	}
	for name, entry := range lf.Items {
		if _, err := semver.NewVersion(entry.Version); err != nil {
			return &ValidationError{
				Field: "items." + name + ".version",
				Value: entry.Version,
				Msg:   "not a semantic version",
			}
		}
		for path, hash := range entry.Files {
			if !hashPattern.MatchString(hash) {
				return &ValidationError{
					Field: "items." + name + ".files." + path,
					Value: hash,
					Msg:   "not of the form sha256:<64 lowercase hex>",
				}
			}
		}
	}
	return nil
}

// Marshal serializes the lock file as YAML. Map keys are emitted in
// sorted order and the output ends with a newline, so two lock files
// describing identical installs byte-compare equal.
func (lf *LockFile) Marshal() ([]byte, error) {
	if err := lf.Validate(); err != nil {
		return nil, err
	}
	data, err := yaml.Marshal(lf)
	if err != nil {
		return nil, fmt.Errorf("marshaling lock file: %w", err)
	}
	return data, nil
}

// Parse decodes and validates lock file bytes.
func Parse(data []byte) (*LockFile, error) {
	var lf LockFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("parsing lock file: %w", err)
	}
	if err := lf.Validate(); err != nil {
		return nil, err
	}
	return &lf, nil
}

// Load reads and validates the lock file at path.
func Load(path string) (*LockFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading lock file %s: %w", path, err)
	}
	return Parse(data)
}

// Write serializes the lock file to path.
func (lf *LockFile) Write(path string) error {
	data, err := lf.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing lock file %s: %w", path, err)
	}
	return nil
}
