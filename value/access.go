package value

import (
	"slices"

	"github.com/dilatush/go-morf/typedef"
)

// Get returns the payload of a scalar. The payload is nil both for null and
// for a scalar which was never set; IsSet tells them apart.
func (v *Value) Get() (any, error) {
	if err := v.variant("get", v.Kind() == typedef.ScalarKind); err != nil {
		return nil, err
	}
	return v.payload, nil
}

// Set replaces the payload of a scalar. x must be nil, when the descriptor
// allows null, or assignable to the descriptor's runtime type. Typed nil
// pointers, maps and slices count as null.
func (v *Value) Set(x any) error {
	if err := v.variant("set", v.Kind() == typedef.ScalarKind); err != nil {
		return err
	}
	if err := v.mutable("set"); err != nil {
		return err
	}
	if err := v.desc.Accepts(x); err != nil {
		return v.wrap(err)
	}
	if typedef.IsNull(x) {
		x = nil
	}
	v.payload = x
	v.present = true
	return nil
}

// Key returns the child of a Map or OrderedMap stored under key.
func (v *Value) Key(key string) (*Value, error) {
	if err := v.variant("get key", v.Kind().IsKeyed()); err != nil {
		return nil, err
	}
	i, ok := v.index[key]
	if !ok {
		return nil, v.errorf(ErrMissingKey, "%q", key)
	}
	return v.children[i], nil
}

// SetKey stores c under key, replacing and detaching any previous child. In
// an OrderedMap a replaced key keeps its position and a new key is appended.
func (v *Value) SetKey(key string, c *Value) error {
	if err := v.variant("set key", v.Kind().IsKeyed()); err != nil {
		return err
	}
	if err := v.mutable("set key"); err != nil {
		return err
	}
	if c == nil {
		return v.errorf(ErrNullNotAllowed, "child %q", key)
	}
	decl, ok := v.desc.Child(key)
	if !ok {
		return v.errorf(ErrMissingKey, "%q not declared in %s", key, v.desc)
	}
	if !c.desc.AssignableTo(decl) {
		return v.errorf(ErrTypeMismatch, "%s is not assignable to %s for %q", c.desc, decl, key)
	}
	i, exists := v.index[key]
	if exists && v.children[i] == c {
		return nil
	}
	if err := v.attachable(c); err != nil {
		return err
	}
	if !exists {
		i = len(v.children)
		v.keys = append(v.keys, key)
		v.children = append(v.children, nil)
		v.index[key] = i
	}
	v.put(i, c)
	return nil
}

// Index returns the child of an Array or OrderedMap at position i.
func (v *Value) Index(i int) (*Value, error) {
	if err := v.variant("get index", v.Kind().IsIndexed()); err != nil {
		return nil, err
	}
	if i < 0 || i >= len(v.children) {
		return nil, v.errorf(ErrIndexOutOfRange, "%d not in [0, %d)", i, len(v.children))
	}
	return v.children[i], nil
}

// SetIndex replaces the child at position i, or appends c when i == Len().
//
// In an OrderedMap, a replaced position keeps its key and an appended child
// takes the first declared field not yet present. When all declared fields
// are present there is nothing to append to and SetIndex fails with
// ErrIndexOutOfRange.
func (v *Value) SetIndex(i int, c *Value) error {
	if err := v.variant("set index", v.Kind().IsIndexed()); err != nil {
		return err
	}
	if err := v.mutable("set index"); err != nil {
		return err
	}
	if c == nil {
		return v.errorf(ErrNullNotAllowed, "child [%d]", i)
	}
	n := len(v.children)
	if i < 0 || i > n {
		return v.errorf(ErrIndexOutOfRange, "%d not in [0, %d]", i, n)
	}
	var (
		key  string
		decl *typedef.Descriptor
	)
	switch {
	case v.Kind() == typedef.ArrayKind:
		decl = v.desc.Elem()
	case i < n:
		key = v.keys[i]
		decl, _ = v.desc.Child(key)
	default:
		f, ok := v.nextField()
		if !ok {
			return v.errorf(ErrIndexOutOfRange, "%d: no declared field left to append", i)
		}
		key, decl = f.Key, f.Desc
	}
	if !c.desc.AssignableTo(decl) {
		return v.errorf(ErrTypeMismatch, "%s is not assignable to %s at [%d]", c.desc, decl, i)
	}
	if i < n && v.children[i] == c {
		return nil
	}
	if err := v.attachable(c); err != nil {
		return err
	}
	if i == n {
		v.children = append(v.children, nil)
		if v.index != nil {
			v.keys = append(v.keys, key)
			v.index[key] = i
		}
	}
	v.put(i, c)
	return nil
}

// DeleteKey removes and detaches the child stored under key. OrderedMap
// positions after it shift down by one.
func (v *Value) DeleteKey(key string) error {
	if err := v.variant("delete key", v.Kind().IsKeyed()); err != nil {
		return err
	}
	if err := v.mutable("delete key"); err != nil {
		return err
	}
	i, ok := v.index[key]
	if !ok {
		return v.errorf(ErrMissingKey, "%q", key)
	}
	v.remove(i)
	return nil
}

// DeleteIndex removes and detaches the child at position i. Positions after
// it shift down by one.
func (v *Value) DeleteIndex(i int) error {
	if err := v.variant("delete index", v.Kind().IsIndexed()); err != nil {
		return err
	}
	if err := v.mutable("delete index"); err != nil {
		return err
	}
	if i < 0 || i >= len(v.children) {
		return v.errorf(ErrIndexOutOfRange, "%d not in [0, %d)", i, len(v.children))
	}
	v.remove(i)
	return nil
}

// attachable checks that c may become a child of v without being shared
// between two parents or closing a cycle.
func (v *Value) attachable(c *Value) error {
	if c.parent != nil {
		return v.errorf(ErrAttached, "child already held at %s", c.Path())
	}
	if c == v.Root() {
		return v.errorf(ErrAttached, "child is the root of this tree")
	}
	return nil
}

func (v *Value) put(i int, c *Value) {
	if old := v.children[i]; old != nil {
		old.detach()
	}
	v.children[i] = c
	c.parent = v
	c.parentIndex = i
}

func (v *Value) remove(i int) {
	v.children[i].detach()
	v.children = slices.Delete(v.children, i, i+1)
	if v.index != nil {
		delete(v.index, v.keys[i])
		v.keys = slices.Delete(v.keys, i, i+1)
	}
	for j := i; j < len(v.children); j++ {
		v.children[j].parentIndex = j
		if v.index != nil {
			v.index[v.keys[j]] = j
		}
	}
}

func (v *Value) detach() {
	v.parent = nil
	v.parentIndex = 0
}

func (v *Value) nextField() (typedef.Field, bool) {
	for _, f := range v.desc.Fields() {
		if _, ok := v.index[f.Key]; !ok {
			return f, true
		}
	}
	return typedef.Field{}, false
}
