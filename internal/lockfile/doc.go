// Package lockfile models the durable record of an install: item
// versions and per-file content hashes, serialized deterministically so
// identical installs produce byte-identical lock files.
package lockfile
