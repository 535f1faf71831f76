// Package value provides morf value trees.
//
// # Overview
//
// A Value is one node of a tree. Every Value is described by a
// typedef.Descriptor and has one of four kinds:
//
//   - Scalar: a single Go payload, possibly null, possibly not yet set
//   - Map: children addressed by string key
//   - Array: children addressed by position, contiguous from 0
//   - OrderedMap: children addressed by key and by insertion position
//
// Value is a tagged union: all kinds share one struct and each accessor is
// valid for a subset of kinds. Calling an accessor on a kind which does not
// support it fails with ErrWrongVariant.
//
// # Ownership
//
// A collection owns its children. Each non-root value has exactly one
// parent, reachable with Parent. Children are attached by SetKey and
// SetIndex only; attaching a value which already has a parent, or attaching
// the root of the tree into itself, fails with ErrAttached. Replaced and
// deleted children are detached and become roots of their own trees.
//
// # Locking
//
// Lock makes a value and every value below it immutable. Locking is one way.
// Snapshot returns a locked deep copy of an unlocked tree, or the tree
// itself when it is already locked. Payloads are shared with the source, not
// copied, so a payload of a mutable Go type (a slice, a pointer) may still be
// changed through the source tree's references.
//
// # Errors
//
// All failures are reported as errors wrapping one of the Err variables of
// this package, with the kinded path of the offending value. Checks happen
// before any change: a failed call leaves the tree as it was.
//
// # Concurrency
//
// Values do no synchronization. Callers sharing a tree between goroutines
// must hold a lock over the whole tree for the duration of any mutation,
// Lock or Snapshot call; Lock in particular visits the subtree one node at a
// time.
package value
