// Package registry loads item manifests from a registry directory tree
// and exposes them through an explicit Registry handle. The handle is
// plain data passed to the resolver and installer; nothing in this
// package keeps process-wide state.
package registry
