package value

import (
	"reflect"

	"github.com/dilatush/go-morf/typedef"
)

// Equal reports whether a and b hold the same structure and payloads.
// Descriptors, lock state and position in a parent are not compared. Map
// children are compared by key, Array and OrderedMap children by position.
func Equal(a, b *Value) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Kind() != b.Kind() || len(a.children) != len(b.children) {
		return false
	}
	switch a.Kind() {
	case typedef.ScalarKind:
		return a.present == b.present && reflect.DeepEqual(a.payload, b.payload)
	case typedef.MapKind:
		for i, k := range a.keys {
			j, ok := b.index[k]
			if !ok || !Equal(a.children[i], b.children[j]) {
				return false
			}
		}
		return true
	case typedef.OrderedMapKind:
		for i, k := range a.keys {
			if b.keys[i] != k {
				return false
			}
		}
	}
	for i := range a.children {
		if !Equal(a.children[i], b.children[i]) {
			return false
		}
	}
	return true
}
