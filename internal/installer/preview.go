package installer

import (
	"os"
	"path/filepath"

	"github.com/agentpack-dev/agentpack/internal/resolver"
)

// CopyOp is one file copy a real install would perform.
type CopyOp struct {
	Item   string
	Source string // absolute path in the registry
	Dest   string // destination-root-relative path
	Size   int64
}

// Preview is the full effect of an install without the install.
type Preview struct {
	Ops       []CopyOp
	TotalSize int64
}

// DryRun executes the same path validation and size computation a real
// install would, without touching the filesystem. The returned ops are
// in install order.
func (ins *Installer) DryRun(sel *resolver.Selection) (*Preview, error) {
	if err := ins.checkPaths(sel); err != nil {
		return nil, err
	}

	preview := &Preview{}
	for _, it := range sel.Items() {
		srcDir := ins.reg.ItemDir(it.Name)
		for _, m := range it.SortedFiles() {
			src := filepath.Join(srcDir, filepath.FromSlash(m.Source))
			info, err := os.Stat(src)
			if err != nil {
				return nil, &SourceNotFoundError{Item: it.Name, Source: src}
			}
			preview.Ops = append(preview.Ops, CopyOp{
				Item:   it.Name,
				Source: src,
				Dest:   m.Dest,
				Size:   info.Size(),
			})
			preview.TotalSize += info.Size()
		}
	}

	return preview, nil
}

// TotalSize sums the source file sizes across the selection.
func (ins *Installer) TotalSize(sel *resolver.Selection) (int64, error) {
	preview, err := ins.DryRun(sel)
	if err != nil {
		return 0, err
	}
	return preview.TotalSize, nil
}

// ExistingFiles lists the destination paths of the selection that
// already exist under the destination root, so callers can warn before
// overwriting.
func (ins *Installer) ExistingFiles(sel *resolver.Selection) []string {
	var existing []string
	seen := make(map[string]bool)
	for _, it := range sel.Items() {
		for _, m := range it.SortedFiles() {
			if seen[m.Dest] {
				continue
			}
			seen[m.Dest] = true
			if _, err := os.Stat(filepath.Join(ins.dest, filepath.FromSlash(m.Dest))); err == nil {
				existing = append(existing, m.Dest)
			}
		}
	}
	return existing
}
