package typedef

import "fmt"

type Kind int

const (
	ScalarKind Kind = iota
	MapKind
	ArrayKind
	OrderedMapKind
)

func (k Kind) String() string {
	s, ok := map[Kind]string{
		ScalarKind:     "Scalar",
		MapKind:        "Map",
		ArrayKind:      "Array",
		OrderedMapKind: "OrderedMap",
	}[k]
	if ok {
		return s
	}
	return "<unknown kind>"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	kk, ok := map[string]Kind{
		"Scalar":     ScalarKind,
		"Map":        MapKind,
		"Array":      ArrayKind,
		"OrderedMap": OrderedMapKind,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized kind %q", d)
	}
	*k = kk
	return nil
}

func Kinds() []Kind {
	return []Kind{
		ScalarKind,
		MapKind,
		ArrayKind,
		OrderedMapKind,
	}
}

func (k Kind) IsLeaf() bool {
	return k == ScalarKind
}

// IsKeyed reports whether nodes of this kind are addressable by string key.
func (k Kind) IsKeyed() bool {
	return k == MapKind || k == OrderedMapKind
}

// IsIndexed reports whether nodes of this kind are addressable by position.
func (k Kind) IsIndexed() bool {
	return k == ArrayKind || k == OrderedMapKind
}
