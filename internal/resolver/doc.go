// Package resolver expands an explicit set of item names into a
// complete, cycle-free, dependency-ordered Selection over a registry.
// Resolution is a pure function of the registry and the request.
package resolver
