package value

import (
	"fmt"
	"maps"
	"reflect"
	"slices"

	"github.com/dilatush/go-morf/debug"
	"github.com/dilatush/go-morf/typedef"
)

// Entry is one key and Go-native value of an ordered map in FromData input
// and ToData output.
type Entry struct {
	Key string
	Val any
}

// FromData builds an unlocked value tree described by desc and populated
// from Go-native data:
//
//   - Scalar: any payload accepted by Set
//   - Array: any slice or array
//   - Map, OrderedMap: []Entry, inserted in order, or a map with string keys.
//     A map is inserted in declared field order, then the remaining keys in
//     sorted order.
//
// Errors wrap the Err variables of this package and name the kinded path at
// which data did not fit desc.
func FromData(desc *typedef.Descriptor, data any) (*Value, error) {
	v := New(desc)
	if err := v.load(data); err != nil {
		if debug.Build() {
			debug.Logf("build %s: %v\n", desc, err)
		}
		return nil, err
	}
	if debug.Build() {
		debug.Logf("build %s: %s\n", desc, v)
	}
	return v, nil
}

func (v *Value) load(data any) error {
	if v.Kind() == typedef.ScalarKind {
		return v.Set(data)
	}
	if typedef.IsNull(data) {
		return v.errorf(ErrNullNotAllowed, "%s", v.desc)
	}
	switch v.Kind() {
	case typedef.ArrayKind:
		return v.loadSlice(data)
	default:
		return v.loadKeyed(data)
	}
}

func (v *Value) loadSlice(data any) error {
	rv := reflect.ValueOf(data)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return v.errorf(ErrTypeMismatch, "%T is not a slice for %s", data, v.desc)
	}
	for i := range rv.Len() {
		c := New(v.desc.Elem())
		if err := v.SetIndex(i, c); err != nil {
			return err
		}
		if err := c.load(rv.Index(i).Interface()); err != nil {
			return err
		}
	}
	return nil
}

func (v *Value) loadKeyed(data any) error {
	var entries []Entry
	switch d := data.(type) {
	case []Entry:
		entries = d
	case map[string]any:
		entries = v.orderEntries(d)
	default:
		rv := reflect.ValueOf(data)
		if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
			return v.errorf(ErrTypeMismatch, "%T is not a string keyed map for %s", data, v.desc)
		}
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = iter.Value().Interface()
		}
		entries = v.orderEntries(m)
	}
	for _, e := range entries {
		cd, ok := v.desc.Child(e.Key)
		if !ok {
			return v.errorf(ErrMissingKey, "%q not declared in %s", e.Key, v.desc)
		}
		c := New(cd)
		if err := v.SetKey(e.Key, c); err != nil {
			return err
		}
		if err := c.load(e.Val); err != nil {
			return err
		}
	}
	return nil
}

func (v *Value) orderEntries(m map[string]any) []Entry {
	res := make([]Entry, 0, len(m))
	seen := make(map[string]bool, len(m))
	for _, f := range v.desc.Fields() {
		if x, ok := m[f.Key]; ok {
			res = append(res, Entry{Key: f.Key, Val: x})
			seen[f.Key] = true
		}
	}
	for _, k := range slices.Sorted(maps.Keys(m)) {
		if !seen[k] {
			res = append(res, Entry{Key: k, Val: m[k]})
		}
	}
	return res
}

// ToData returns the Go-native form of v: the payload of a scalar,
// map[string]any for a Map, []any for an Array and []Entry for an
// OrderedMap. Payloads are not copied.
func (v *Value) ToData() any {
	switch v.Kind() {
	case typedef.ScalarKind:
		return v.payload
	case typedef.MapKind:
		res := make(map[string]any, len(v.children))
		for i, k := range v.keys {
			res[k] = v.children[i].ToData()
		}
		return res
	case typedef.ArrayKind:
		res := make([]any, len(v.children))
		for i, c := range v.children {
			res[i] = c.ToData()
		}
		return res
	case typedef.OrderedMapKind:
		res := make([]Entry, len(v.children))
		for i, k := range v.keys {
			res[i] = Entry{Key: k, Val: v.children[i].ToData()}
		}
		return res
	case noKind:
		return nil
	}
	panic(fmt.Sprintf("value: unknown kind %s", v.Kind()))
}
