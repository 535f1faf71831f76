package typedef

import (
	"fmt"
	"reflect"
	"strings"
)

// Descriptor describes one position in a value tree: either a scalar with a
// Go runtime type and nullability, or a collection with the descriptors of
// its children.
//
// Descriptors are built once, bottom up, and never change afterwards, so a
// single descriptor may be shared by any number of values.
type Descriptor struct {
	kind      Kind
	name      string
	rtype     reflect.Type
	allowNull bool
	fields    []Field
	fieldIdx  map[string]int
	elem      *Descriptor
}

// Field is a declared key of a Map or OrderedMap descriptor.
type Field struct {
	Key  string
	Desc *Descriptor
}

type Option func(*Descriptor)

// Nullable permits a scalar to hold null.
func Nullable() Option {
	return func(d *Descriptor) {
		if d.kind != ScalarKind {
			panic(fmt.Sprintf("typedef: Nullable on %s descriptor", d.kind))
		}
		d.allowNull = true
	}
}

// Named attaches a diagnostic name, such as "Contact".
func Named(name string) Option {
	return func(d *Descriptor) { d.name = name }
}

// F declares a field of a Map or OrderedMap. Field order is kept.
func F(key string, desc *Descriptor) Option {
	return func(d *Descriptor) {
		if !d.kind.IsKeyed() {
			panic(fmt.Sprintf("typedef: field %q on %s descriptor", key, d.kind))
		}
		if desc == nil {
			panic(fmt.Sprintf("typedef: nil descriptor for field %q", key))
		}
		if _, dup := d.fieldIdx[key]; dup {
			panic(fmt.Sprintf("typedef: duplicate field %q", key))
		}
		d.fieldIdx[key] = len(d.fields)
		d.fields = append(d.fields, Field{Key: key, Desc: desc})
	}
}

// Elem admits any key not declared with F, holding values described by desc.
func Elem(desc *Descriptor) Option {
	return func(d *Descriptor) {
		if !d.kind.IsKeyed() {
			panic(fmt.Sprintf("typedef: Elem option on %s descriptor", d.kind))
		}
		if desc == nil {
			panic("typedef: nil element descriptor")
		}
		d.elem = desc
	}
}

func Scalar(t reflect.Type, opts ...Option) *Descriptor {
	if t == nil {
		panic("typedef: nil runtime type")
	}
	return build(&Descriptor{kind: ScalarKind, rtype: t}, opts)
}

func ScalarOf[T any](opts ...Option) *Descriptor {
	return Scalar(reflect.TypeFor[T](), opts...)
}

func String(opts ...Option) *Descriptor  { return ScalarOf[string](opts...) }
func Int(opts ...Option) *Descriptor     { return ScalarOf[int](opts...) }
func Int64(opts ...Option) *Descriptor   { return ScalarOf[int64](opts...) }
func Float64(opts ...Option) *Descriptor { return ScalarOf[float64](opts...) }
func Bool(opts ...Option) *Descriptor    { return ScalarOf[bool](opts...) }

// Any describes a scalar that may hold any non-nil Go value.
func Any(opts ...Option) *Descriptor { return ScalarOf[any](opts...) }

func MapOf(opts ...Option) *Descriptor {
	return build(&Descriptor{kind: MapKind, fieldIdx: map[string]int{}}, opts)
}

// OpenMapOf describes a map admitting any key, all holding values described
// by elem.
func OpenMapOf(elem *Descriptor, opts ...Option) *Descriptor {
	return MapOf(append([]Option{Elem(elem)}, opts...)...)
}

func OrderedMapOf(opts ...Option) *Descriptor {
	return build(&Descriptor{kind: OrderedMapKind, fieldIdx: map[string]int{}}, opts)
}

func ArrayOf(elem *Descriptor, opts ...Option) *Descriptor {
	if elem == nil {
		panic("typedef: nil element descriptor")
	}
	return build(&Descriptor{kind: ArrayKind, elem: elem}, opts)
}

func build(d *Descriptor, opts []Option) *Descriptor {
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Descriptor) Kind() Kind { return d.kind }

func (d *Descriptor) Name() string { return d.name }

// RuntimeType returns the Go type a scalar may hold, or nil for collections.
func (d *Descriptor) RuntimeType() reflect.Type { return d.rtype }

// AllowNull reports whether a scalar may hold null. Always false for
// collections.
func (d *Descriptor) AllowNull() bool { return d.allowNull }

// Fields returns the declared fields of a Map or OrderedMap in declaration
// order.
func (d *Descriptor) Fields() []Field {
	res := make([]Field, len(d.fields))
	copy(res, d.fields)
	return res
}

// Field returns the declared descriptor for key, ignoring Elem.
func (d *Descriptor) Field(key string) (*Descriptor, bool) {
	i, ok := d.fieldIdx[key]
	if !ok {
		return nil, false
	}
	return d.fields[i].Desc, true
}

// Elem returns the element descriptor of an Array, or the open-key
// descriptor of a Map or OrderedMap (nil when keys are closed).
func (d *Descriptor) Elem() *Descriptor { return d.elem }

// Child resolves the descriptor of the child stored under key.
func (d *Descriptor) Child(key string) (*Descriptor, bool) {
	if !d.kind.IsKeyed() {
		return nil, false
	}
	if c, ok := d.Field(key); ok {
		return c, true
	}
	if d.elem != nil {
		return d.elem, true
	}
	return nil, false
}

// ChildAt resolves the descriptor of an Array element. OrderedMap positions
// are resolved by key, since their descriptor depends on which key sits at
// the position.
func (d *Descriptor) ChildAt(i int) (*Descriptor, bool) {
	if d.kind != ArrayKind || i < 0 {
		return nil, false
	}
	return d.elem, true
}

// Accepts checks that v may be stored as the payload of a scalar described
// by d.
func (d *Descriptor) Accepts(v any) error {
	if d.kind != ScalarKind {
		return fmt.Errorf("%w: %s descriptor holds no payload", ErrTypeMismatch, d)
	}
	if IsNull(v) {
		if d.allowNull {
			return nil
		}
		return fmt.Errorf("%w: %s", ErrNullNotAllowed, d)
	}
	vt := reflect.TypeOf(v)
	if !vt.AssignableTo(d.rtype) {
		return fmt.Errorf("%w: %s is not assignable to %s", ErrTypeMismatch, vt, d)
	}
	return nil
}

// AssignableTo reports whether every value valid under d is also valid
// under target.
func (d *Descriptor) AssignableTo(target *Descriptor) bool {
	if d == target {
		return true
	}
	if d == nil || target == nil || d.kind != target.kind {
		return false
	}
	switch d.kind {
	case ScalarKind:
		if d.allowNull && !target.allowNull {
			return false
		}
		return d.rtype.AssignableTo(target.rtype)
	case ArrayKind:
		return d.elem.AssignableTo(target.elem)
	default:
		for _, f := range d.fields {
			tc, ok := target.Child(f.Key)
			if !ok || !f.Desc.AssignableTo(tc) {
				return false
			}
		}
		if d.elem == nil {
			return true
		}
		if target.elem == nil || !d.elem.AssignableTo(target.elem) {
			return false
		}
		// keys open in d but declared in target must still fit the target field
		for _, f := range target.fields {
			if _, declared := d.fieldIdx[f.Key]; !declared && !d.elem.AssignableTo(f.Desc) {
				return false
			}
		}
		return true
	}
}

func (d *Descriptor) String() string {
	if d == nil {
		return "<nil>"
	}
	if d.name != "" {
		return d.name
	}
	switch d.kind {
	case ScalarKind:
		if d.allowNull {
			return d.rtype.String() + "?"
		}
		return d.rtype.String()
	case ArrayKind:
		return "[" + d.elem.String() + "]"
	}
	parts := make([]string, 0, len(d.fields)+1)
	for _, f := range d.fields {
		parts = append(parts, f.Key+": "+f.Desc.String())
	}
	if d.elem != nil {
		parts = append(parts, "*: "+d.elem.String())
	}
	open, close := "{", "}"
	if d.kind == OrderedMapKind {
		open, close = "<", ">"
	}
	return open + strings.Join(parts, ", ") + close
}

// IsNull reports whether v is nil or a typed nil pointer, map, slice,
// interface, channel or func.
func IsNull(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Chan, reflect.Func:
		return rv.IsNil()
	}
	return false
}
