// Package item defines the in-memory model of one installable registry
// item and its construction-time invariants.
package item
