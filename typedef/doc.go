// Package typedef provides type descriptors for morf value trees.
//
// A descriptor constrains one position of a value tree. Scalar descriptors
// carry the Go runtime type a payload must be assignable to, and whether the
// payload may be null. Collection descriptors carry the descriptors of their
// children:
//
//   - Map: declared fields by key, optionally an element descriptor for any
//     other key.
//   - OrderedMap: like Map, but its values keep insertion order and are also
//     addressable by position.
//   - Array: one element descriptor for every position.
//
// Descriptors are normally produced by an external compiler. They can also
// be built directly:
//
//	contact := typedef.MapOf(
//	    typedef.Named("Contact"),
//	    typedef.F("name", typedef.String()),
//	    typedef.F("age", typedef.Int(typedef.Nullable())),
//	)
//
// Descriptors are immutable once built and safe to share.
package typedef
