// Package fragment deep-merges the configuration fragments contributed
// by server items and reports every leaf-key collision. Merging is pure:
// inputs are never mutated and conflicts are advisory data, not errors.
package fragment
