// Package catalog defines the unified Game model and the pure operations
// over it: joining registry records into games, reconciling a fresh catalog
// into a persisted one, and the lookups the CLI presents.
//
// Nothing here touches the filesystem except through the Resolver passed to
// Build. Merge returns a new slice and never mutates its inputs.
package catalog
