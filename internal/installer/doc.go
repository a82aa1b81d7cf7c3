// Package installer materializes a resolved selection into a
// destination root as one transaction: every file is staged in an
// isolated sibling directory, then the staging directory is swapped
// into place. Any failure rolls back, leaving the destination exactly
// as it was. The package also exposes the read-only queries (dry run,
// total size, existing files) and the lock-file-driven verify and
// uninstall operations.
package installer
