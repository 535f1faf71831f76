package value

import (
	"errors"
	"testing"

	"github.com/dilatush/go-morf/typedef"
)

func personDesc() *typedef.Descriptor {
	return typedef.MapOf(
		typedef.Named("Person"),
		typedef.F("name", typedef.String()),
		typedef.F("age", typedef.Int(typedef.Nullable())),
	)
}

func mustKey(t *testing.T, v *Value, key string) *Value {
	t.Helper()
	c, err := v.Key(key)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func mustIndex(t *testing.T, v *Value, i int) *Value {
	t.Helper()
	c, err := v.Index(i)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func mustScalar(t *testing.T, desc *typedef.Descriptor, x any) *Value {
	t.Helper()
	v, err := FromScalar(desc, x)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestPersonScenario(t *testing.T) {
	desc := personDesc()
	root := New(desc)
	if err := root.SetKey("name", New(typedef.String())); err != nil {
		t.Fatal(err)
	}
	if err := root.SetKey("age", New(typedef.Int(typedef.Nullable()))); err != nil {
		t.Fatal(err)
	}
	name := mustKey(t, root, "name")
	age := mustKey(t, root, "age")

	if err := name.Set("Ann"); err != nil {
		t.Fatalf("set name: %v", err)
	}
	if err := age.Set(nil); err != nil {
		t.Fatalf("set age null: %v", err)
	}
	if err := name.Set(nil); !errors.Is(err, ErrNullNotAllowed) {
		t.Fatalf("set name null: got %v", err)
	}
	if err := root.SetKey("name", nil); !errors.Is(err, ErrNullNotAllowed) {
		t.Fatalf("set key name nil: got %v", err)
	}
	if x, _ := name.Get(); x != "Ann" {
		t.Fatalf("failed null set changed payload to %v", x)
	}

	root.Lock()
	if err := name.Set("Bob"); !errors.Is(err, ErrLockedMutation) {
		t.Fatalf("set after lock: got %v", err)
	}
	if err := root.SetKey("name", mustScalar(t, typedef.String(), "Bob")); !errors.Is(err, ErrLockedMutation) {
		t.Fatalf("set key after lock: got %v", err)
	}
	if x, _ := name.Get(); x != "Ann" {
		t.Fatalf("got %v, want Ann", x)
	}
}

func TestArrayScenario(t *testing.T) {
	arr := New(typedef.ArrayOf(typedef.String()))
	if err := arr.SetIndex(0, mustScalar(t, typedef.String(), "a")); err != nil {
		t.Fatal(err)
	}
	if err := arr.SetIndex(1, mustScalar(t, typedef.String(), "b")); err != nil {
		t.Fatal(err)
	}
	if _, err := arr.Index(2); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("get(2): got %v", err)
	}
	if err := arr.SetIndex(5, mustScalar(t, typedef.String(), "x")); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("set(5): got %v", err)
	}
	if _, err := arr.Index(-1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("get(-1): got %v", err)
	}
	if arr.Len() != 2 {
		t.Fatalf("len %d", arr.Len())
	}
	if x, _ := mustIndex(t, arr, 1).Get(); x != "b" {
		t.Fatalf("got %v", x)
	}
}

func TestZeroValue(t *testing.T) {
	var z Value
	if _, err := z.Get(); !errors.Is(err, ErrWrongVariant) {
		t.Errorf("Get: got %v", err)
	}
	if err := z.Set(1); !errors.Is(err, ErrWrongVariant) {
		t.Errorf("Set: got %v", err)
	}
	if _, err := z.Key("a"); !errors.Is(err, ErrWrongVariant) {
		t.Errorf("Key: got %v", err)
	}
	if err := z.SetIndex(0, New(typedef.Int())); !errors.Is(err, ErrWrongVariant) {
		t.Errorf("SetIndex: got %v", err)
	}
	if z.Descriptor() != nil || z.Len() != 0 || z.ToData() != nil {
		t.Error("zero value is not empty")
	}
	if got := z.String(); got != "<no descriptor>" {
		t.Errorf("String: got %q", got)
	}
	z.Lock()
	if !z.IsLocked() {
		t.Error("zero value not locked")
	}
}

func TestWrongVariant(t *testing.T) {
	scalar := New(typedef.String())
	m := New(personDesc())
	arr := New(typedef.ArrayOf(typedef.Int()))
	om := New(typedef.OrderedMapOf(typedef.F("a", typedef.Int())))

	tests := []struct {
		name string
		call func() error
	}{
		{"get on map", func() error { _, err := m.Get(); return err }},
		{"set on array", func() error { return arr.Set(1) }},
		{"set on ordered map", func() error { return om.Set(1) }},
		{"key on scalar", func() error { _, err := scalar.Key("a"); return err }},
		{"key on array", func() error { _, err := arr.Key("a"); return err }},
		{"set key on array", func() error { return arr.SetKey("a", New(typedef.Int())) }},
		{"index on map", func() error { _, err := m.Index(0); return err }},
		{"index on scalar", func() error { _, err := scalar.Index(0); return err }},
		{"set index on map", func() error { return m.SetIndex(0, New(typedef.String())) }},
		{"delete key on array", func() error { return arr.DeleteKey("a") }},
		{"delete index on map", func() error { return m.DeleteIndex(0) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !errors.Is(err, ErrWrongVariant) {
				t.Errorf("got %v, want ErrWrongVariant", err)
			}
		})
	}
}

func TestSetTypeChecks(t *testing.T) {
	type Color string
	tests := []struct {
		name string
		desc *typedef.Descriptor
		x    any
		want error
	}{
		{"string ok", typedef.String(), "a", nil},
		{"int into string", typedef.String(), 1, ErrTypeMismatch},
		{"int not int64", typedef.Int64(), 1, ErrTypeMismatch},
		{"int64 ok", typedef.Int64(), int64(1), nil},
		{"named type ok", typedef.ScalarOf[Color](), Color("red"), nil},
		{"underlying type rejected", typedef.ScalarOf[Color](), "red", ErrTypeMismatch},
		{"any holds int", typedef.Any(), 3, nil},
		{"any rejects null", typedef.Any(), nil, ErrNullNotAllowed},
		{"typed nil is null", typedef.ScalarOf[*int](), (*int)(nil), ErrNullNotAllowed},
		{"nullable typed nil", typedef.ScalarOf[*int](typedef.Nullable()), (*int)(nil), nil},
		{"interface runtime type", typedef.ScalarOf[error](), errors.New("x"), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New(tt.desc)
			err := v.Set(tt.x)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error %v", err)
				}
				if !v.IsSet() {
					t.Fatal("not set")
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
			if v.IsSet() {
				t.Fatal("failed set marked payload present")
			}
		})
	}
}

func TestSetKey(t *testing.T) {
	root := New(personDesc())
	name := mustScalar(t, typedef.String(), "Ann")
	if err := root.SetKey("name", name); err != nil {
		t.Fatal(err)
	}
	got := mustKey(t, root, "name")
	if got != name || got.Parent() != root {
		t.Fatal("child not attached")
	}
	if k, ok := got.ParentKey(); !ok || k != "name" {
		t.Fatalf("parent key %q %v", k, ok)
	}
	if !Equal(got, mustScalar(t, typedef.String(), "Ann")) {
		t.Fatal("get after set differs")
	}

	if err := root.SetKey("email", mustScalar(t, typedef.String(), "a@b")); !errors.Is(err, ErrMissingKey) {
		t.Fatalf("undeclared key: got %v", err)
	}
	if err := root.SetKey("name", mustScalar(t, typedef.Int(), 3)); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("wrong child type: got %v", err)
	}
	if err := root.SetKey("name", New(typedef.String(typedef.Nullable()))); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("nullable into non-nullable: got %v", err)
	}
	if err := root.SetKey("age", mustScalar(t, typedef.Int(), 3)); err != nil {
		t.Fatalf("non-nullable into nullable: %v", err)
	}
	if _, err := root.Key("email"); !errors.Is(err, ErrMissingKey) {
		t.Fatalf("get missing key: got %v", err)
	}

	bob := mustScalar(t, typedef.String(), "Bob")
	if err := root.SetKey("name", bob); err != nil {
		t.Fatal(err)
	}
	if name.Parent() != nil {
		t.Fatal("replaced child still attached")
	}
	if got := root.Keys(); len(got) != 2 || got[0] != "name" {
		t.Fatalf("keys %v", got)
	}
	if err := root.SetKey("name", bob); err != nil {
		t.Fatalf("re-setting same child: %v", err)
	}
}

func TestAttached(t *testing.T) {
	desc := typedef.OpenMapOf(typedef.OpenMapOf(typedef.Int()))
	a := New(desc)
	b := New(desc.Elem())
	if err := a.SetKey("b", b); err != nil {
		t.Fatal(err)
	}
	other := New(desc)
	if err := other.SetKey("b", b); !errors.Is(err, ErrAttached) {
		t.Fatalf("shared child: got %v", err)
	}
	if b.Parent() != a || other.Len() != 0 {
		t.Fatal("failed attach changed the tree")
	}

	arr := New(typedef.ArrayOf(typedef.Int()))
	x := mustScalar(t, typedef.Int(), 1)
	if err := arr.SetIndex(0, x); err != nil {
		t.Fatal(err)
	}
	if err := arr.SetIndex(1, x); !errors.Is(err, ErrAttached) {
		t.Fatalf("same child twice: got %v", err)
	}
	if arr.Len() != 1 {
		t.Fatalf("len %d", arr.Len())
	}
	if err := arr.SetIndex(0, x); err != nil {
		t.Fatalf("re-setting same child: %v", err)
	}
}

func TestOrderedMap(t *testing.T) {
	desc := typedef.OrderedMapOf(
		typedef.F("first", typedef.String()),
		typedef.F("second", typedef.Int()),
		typedef.F("third", typedef.Bool()),
	)
	om := New(desc)
	if err := om.SetKey("second", mustScalar(t, typedef.Int(), 2)); err != nil {
		t.Fatal(err)
	}
	if err := om.SetIndex(1, mustScalar(t, typedef.String(), "one")); err != nil {
		t.Fatalf("append by index: %v", err)
	}
	if got := om.Keys(); len(got) != 2 || got[0] != "second" || got[1] != "first" {
		t.Fatalf("keys %v", got)
	}
	if err := om.SetIndex(0, mustScalar(t, typedef.String(), "x")); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("replace with wrong type: got %v", err)
	}
	if err := om.SetIndex(0, mustScalar(t, typedef.Int(), 22)); err != nil {
		t.Fatal(err)
	}
	if x, _ := mustKey(t, om, "second").Get(); x != 22 {
		t.Fatalf("got %v", x)
	}
	if err := om.SetIndex(2, mustScalar(t, typedef.Bool(), true)); err != nil {
		t.Fatal(err)
	}
	if err := om.SetIndex(3, mustScalar(t, typedef.Bool(), true)); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("append with no field left: got %v", err)
	}
	third := mustIndex(t, om, 2)
	if k, _ := third.ParentKey(); k != "third" {
		t.Fatalf("parent key %q", k)
	}

	if err := om.DeleteKey("second"); err != nil {
		t.Fatal(err)
	}
	if third.ParentIndex() != 1 || mustIndex(t, om, 1) != third {
		t.Fatal("positions not contiguous after delete")
	}
	if err := om.DeleteIndex(0); err != nil {
		t.Fatal(err)
	}
	if got := om.Keys(); len(got) != 1 || got[0] != "third" {
		t.Fatalf("keys %v", got)
	}
	if om.Has("first") {
		t.Fatal("deleted key still present")
	}
}

func TestDeleteIndex(t *testing.T) {
	arr, err := FromData(typedef.ArrayOf(typedef.Int()), []int{0, 1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	removed := mustIndex(t, arr, 1)
	if err := arr.DeleteIndex(1); err != nil {
		t.Fatal(err)
	}
	if removed.Parent() != nil {
		t.Fatal("deleted child still attached")
	}
	for i := range arr.Len() {
		c := mustIndex(t, arr, i)
		if c.ParentIndex() != i {
			t.Fatalf("child %d has parent index %d", i, c.ParentIndex())
		}
	}
	if err := arr.DeleteIndex(3); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("got %v", err)
	}
	arr.Lock()
	if err := arr.DeleteIndex(0); !errors.Is(err, ErrLockedMutation) {
		t.Fatalf("got %v", err)
	}
}

func TestRootAndPath(t *testing.T) {
	desc := typedef.MapOf(
		typedef.F("people", typedef.ArrayOf(personDesc())),
	)
	root, err := FromData(desc, map[string]any{
		"people": []any{
			map[string]any{"name": "Ann", "age": 30},
			map[string]any{"name": "Bob", "age": nil},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	name, err := root.Lookup("people[1].name")
	if err != nil {
		t.Fatal(err)
	}
	if x, _ := name.Get(); x != "Bob" {
		t.Fatalf("got %v", x)
	}
	if got := name.Path(); got != "people[1].name" {
		t.Fatalf("path %q", got)
	}
	if name.Root() != root || root.Root() != root || root.Root().Parent() != nil {
		t.Fatal("bad root")
	}
	if root.Path() != "" {
		t.Fatalf("root path %q", root.Path())
	}

	_, err = root.Lookup("people[2].name")
	if !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("got %v", err)
	}
	_, err = root.Lookup("people[0].name.first")
	if !errors.Is(err, ErrWrongVariant) {
		t.Fatalf("got %v", err)
	}
	_, err = root.Lookup("people[")
	if !errors.Is(err, ErrBadPath) {
		t.Fatalf("got %v", err)
	}
}

func TestErrorNamesPath(t *testing.T) {
	root, err := FromData(typedef.MapOf(typedef.F("tags", typedef.ArrayOf(typedef.String()))),
		map[string]any{"tags": []string{"a"}})
	if err != nil {
		t.Fatal(err)
	}
	tag, _ := root.Lookup("tags[0]")
	err = tag.Set(1)
	if err == nil {
		t.Fatal("expected error")
	}
	if got := err.Error(); got != "at tags[0]: type mismatch: int is not assignable to string" {
		t.Fatalf("error %q", got)
	}
}

func TestEqual(t *testing.T) {
	desc := typedef.OrderedMapOf(typedef.Elem(typedef.Int()))
	a, _ := FromData(desc, []Entry{{"x", 1}, {"y", 2}})
	b, _ := FromData(desc, []Entry{{"x", 1}, {"y", 2}})
	c, _ := FromData(desc, []Entry{{"y", 2}, {"x", 1}})
	if !Equal(a, b) {
		t.Fatal("a != b")
	}
	if Equal(a, c) {
		t.Fatal("ordered maps with different order are equal")
	}
	md := typedef.OpenMapOf(typedef.Int())
	ma, _ := FromData(md, []Entry{{"x", 1}, {"y", 2}})
	mc, _ := FromData(md, []Entry{{"y", 2}, {"x", 1}})
	if !Equal(ma, mc) {
		t.Fatal("maps differing only in insertion order are not equal")
	}
	if Equal(New(typedef.Int()), mustScalar(t, typedef.Int(), 0)) {
		t.Fatal("unset equals set")
	}
}
