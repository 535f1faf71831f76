package value

import (
	"maps"
	"slices"

	"github.com/dilatush/go-morf/debug"
)

// Lock makes v and every value below it immutable. Locking is one way and
// idempotent.
//
// Lock is not atomic over the subtree: v is marked before its children are
// visited.
func (v *Value) Lock() {
	if debug.Lock() {
		debug.Logf("lock %s (%s)\n", v.where(), v.Kind())
	}
	v.locked = true
	for _, c := range v.children {
		c.Lock()
	}
}

// Snapshot returns a locked copy of the tree rooted at v, or v itself when v
// is already locked.
//
// The copy is a new root. Descriptors and scalar payloads are shared with v;
// structure and lock state are not.
func (v *Value) Snapshot() *Value {
	if v.locked {
		if debug.Snapshot() {
			debug.Logf("snapshot %s: already locked\n", v.where())
		}
		return v
	}
	res := v.copy(true)
	if debug.Snapshot() {
		debug.Logf("snapshot %s: copied %s\n", v.where(), res)
	}
	return res
}

// Clone returns an unlocked copy of the tree rooted at v, as a new root.
// Descriptors and scalar payloads are shared with v.
func (v *Value) Clone() *Value {
	return v.copy(false)
}

func (v *Value) copy(locked bool) *Value {
	res := &Value{
		desc:    v.desc,
		locked:  locked,
		payload: v.payload,
		present: v.present,
		keys:    slices.Clone(v.keys),
		index:   maps.Clone(v.index),
	}
	if v.children != nil {
		res.children = make([]*Value, len(v.children))
	}
	for i, c := range v.children {
		cc := c.copy(locked)
		cc.parent = res
		cc.parentIndex = i
		res.children[i] = cc
	}
	return res
}
