package installer

import "fmt"

// PathTraversalError reports a file mapping that attempts to escape its
// root. Always fatal, and raised before any filesystem write.
type PathTraversalError struct {
	Item string
	Path string
	Err  error
}

func (e *PathTraversalError) Error() string {
	return fmt.Sprintf("item %s: unsafe path %q: %v", e.Item, e.Path, e.Err)
}

func (e *PathTraversalError) Unwrap() error { return e.Err }

// SourceNotFoundError reports a declared source file missing from the
// registry at staging time.
type SourceNotFoundError struct {
	Item   string
	Source string
}

func (e *SourceNotFoundError) Error() string {
	return fmt.Sprintf("item %s: source file %s not found in registry", e.Item, e.Source)
}

// CopyError reports a failed copy during staging, with both endpoints.
type CopyError struct {
	Item   string
	Source string
	Dest   string
	Err    error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("item %s: copying %s to %s: %v", e.Item, e.Source, e.Dest, e.Err)
}

func (e *CopyError) Unwrap() error { return e.Err }

// AtomicError wraps a staging/publish failure with the step it occurred
// in. Rollback ran (or was attempted) before this error propagated.
type AtomicError struct {
	Step string
	Err  error
}

func (e *AtomicError) Error() string {
	return fmt.Sprintf("install failed during %s: %v", e.Step, e.Err)
}

func (e *AtomicError) Unwrap() error { return e.Err }

// RollbackError means the install failed AND restoring the previous
// state also failed; the destination may need manual recovery. Cause is
// the error that triggered the rollback, Failure the rollback's own.
type RollbackError struct {
	Cause   error
	Failure error
}

func (e *RollbackError) Error() string {
	return fmt.Sprintf("rollback failed (%v) while recovering from: %v; manual recovery may be required", e.Failure, e.Cause)
}

func (e *RollbackError) Unwrap() error { return e.Cause }
