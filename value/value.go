package value

import (
	"fmt"
	"maps"
	"slices"

	"github.com/dilatush/go-morf/kpath"
	"github.com/dilatush/go-morf/typedef"
)

type Value struct {
	desc        *typedef.Descriptor
	parent      *Value
	parentIndex int
	locked      bool

	// Scalar
	payload any
	present bool

	// Map, OrderedMap: keys[i] is the key of children[i]
	// Array: keys is nil
	keys     []string
	children []*Value
	index    map[string]int
}

// New returns an empty, unlocked value described by desc: an unset scalar or
// an empty collection.
func New(desc *typedef.Descriptor) *Value {
	if desc == nil {
		panic("value: nil descriptor")
	}
	v := &Value{desc: desc}
	if desc.Kind().IsKeyed() {
		v.index = map[string]int{}
	}
	return v
}

// FromScalar returns a scalar value holding x.
func FromScalar(desc *typedef.Descriptor, x any) (*Value, error) {
	v := New(desc)
	if err := v.Set(x); err != nil {
		return nil, err
	}
	return v, nil
}

// FromMap returns a Map or OrderedMap holding the values of m. Keys are
// inserted in sorted order.
func FromMap(desc *typedef.Descriptor, m map[string]*Value) (*Value, error) {
	v := New(desc)
	for _, k := range slices.Sorted(maps.Keys(m)) {
		if err := v.SetKey(k, m[k]); err != nil {
			return nil, err
		}
	}
	return v, nil
}

type KeyVal struct {
	Key string
	Val *Value
}

// FromKeyVals returns a Map or OrderedMap holding kvs, inserted in order.
func FromKeyVals(desc *typedef.Descriptor, kvs []KeyVal) (*Value, error) {
	v := New(desc)
	for _, kv := range kvs {
		if err := v.SetKey(kv.Key, kv.Val); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// FromSlice returns an Array or OrderedMap holding vs, appended in order.
func FromSlice(desc *typedef.Descriptor, vs []*Value) (*Value, error) {
	v := New(desc)
	for i, c := range vs {
		if err := v.SetIndex(i, c); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// noKind is the kind of a zero Value, which has no descriptor.
const noKind typedef.Kind = -1

// Kind returns the kind of v's descriptor. The zero Value has no descriptor
// and no kind: every accessor on it fails with ErrWrongVariant.
func (v *Value) Kind() typedef.Kind {
	if v.desc == nil {
		return noKind
	}
	return v.desc.Kind()
}

func (v *Value) Descriptor() *typedef.Descriptor { return v.desc }

func (v *Value) IsLocked() bool { return v.locked }

// Parent returns the collection holding v, or nil if v is a root.
func (v *Value) Parent() *Value { return v.parent }

func (v *Value) Root() *Value {
	res := v
	for res.parent != nil {
		res = res.parent
	}
	return res
}

// ParentIndex returns the position of v in its parent. It is 0 for roots.
func (v *Value) ParentIndex() int { return v.parentIndex }

// ParentKey returns the key of v in its parent, and false when the parent
// is not keyed or v is a root.
func (v *Value) ParentKey() (string, bool) {
	if v.parent == nil || !v.parent.Kind().IsKeyed() {
		return "", false
	}
	return v.parent.keys[v.parentIndex], true
}

// IsSet reports whether a scalar has been given a payload, including null.
func (v *Value) IsSet() bool { return v.present }

// Len returns the number of children, or 0 for scalars.
func (v *Value) Len() int { return len(v.children) }

// Keys returns the keys of a Map or OrderedMap, in insertion order.
func (v *Value) Keys() []string {
	return slices.Clone(v.keys)
}

func (v *Value) Has(key string) bool {
	_, ok := v.index[key]
	return ok
}

// KPath returns the kinded path from the root of v's tree to v.
func (v *Value) KPath() *kpath.KPath {
	var res *kpath.KPath
	for x := v; x.parent != nil; x = x.parent {
		var seg *kpath.KPath
		if k, ok := x.ParentKey(); ok {
			seg = kpath.Field(k)
		} else {
			seg = kpath.Index(x.parentIndex)
		}
		seg.Next = res
		res = seg
	}
	return res
}

// Path returns KPath as a string, "" for a root.
func (v *Value) Path() string {
	return v.KPath().String()
}

func (v *Value) where() string {
	if v.parent == nil {
		return "root"
	}
	return v.Path()
}

func (v *Value) errorf(err error, format string, args ...any) error {
	return fmt.Errorf("%w at %s: %s", err, v.where(), fmt.Sprintf(format, args...))
}

func (v *Value) wrap(err error) error {
	return fmt.Errorf("at %s: %w", v.where(), err)
}

func (v *Value) variant(op string, ok bool) error {
	if ok {
		return nil
	}
	return v.errorf(ErrWrongVariant, "%s on %s", op, v.Kind())
}

func (v *Value) mutable(op string) error {
	if !v.locked {
		return nil
	}
	return v.errorf(ErrLockedMutation, "%s", op)
}
