// Package libdiff compares two morf value trees, typically a live tree and
// a snapshot taken from it earlier.
//
// Children are aligned before they are compared: Map children by key,
// OrderedMap children by key in insertion order, and Array elements by
// content, using a rune diff over the aligned sequences. Aligned pairs are
// compared recursively; the rest become insertions and deletions.
//
// Paths of Delete, Replace and Move changes index the from tree; paths of
// Insert changes index the to tree.
package libdiff
