package encode

import (
	"io"
	"strings"

	"github.com/dilatush/go-morf/kpath"
	"github.com/dilatush/go-morf/typedef"
	"github.com/dilatush/go-morf/value"
)

const LockedTag = "!locked"

type EncState struct {
	depth, indent int
	locks, types  bool

	Color func(typedef.Kind, ColorAttr, string) string
}

func Encode(v *value.Value, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: 2,
	}
	for _, opt := range opts {
		opt(es)
	}
	if err := encode(v, w, es); err != nil {
		return err
	}
	return writeString(w, "\n")
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}

func writeNL(w io.Writer, es *EncState) error {
	return writeString(w, "\n"+strings.Repeat(" ", es.indent*es.depth))
}

func applyColor(es *EncState, k typedef.Kind, attr ColorAttr, v string) string {
	if es.Color == nil {
		return v
	}
	return es.Color(k, attr, v)
}

func encode(v *value.Value, w io.Writer, es *EncState) error {
	if err := writeLockTag(v, w, es); err != nil {
		return err
	}
	switch v.Kind() {
	case typedef.ScalarKind:
		return encodeScalar(v, w, es)
	case typedef.ArrayKind:
		return encodeArray(v, w, es)
	default:
		return encodeKeyed(v, w, es)
	}
}

func writeLockTag(v *value.Value, w io.Writer, es *EncState) error {
	if !es.locks || !v.IsLocked() {
		return nil
	}
	if p := v.Parent(); p != nil && p.IsLocked() {
		return nil
	}
	return writeString(w, applyColor(es, v.Kind(), TagColor, LockedTag)+" ")
}

func writeType(v *value.Value, w io.Writer, es *EncState) error {
	if !es.types {
		return nil
	}
	return writeString(w, "  "+applyColor(es, v.Kind(), TypeColor, "# "+v.Descriptor().String()))
}

func encodeScalar(v *value.Value, w io.Writer, es *EncState) error {
	attr := ValueColor
	if x, _ := v.Get(); x == nil {
		attr = NullColor
	}
	if err := writeString(w, applyColor(es, v.Kind(), attr, value.FormatPayload(v))); err != nil {
		return err
	}
	return writeType(v, w, es)
}

func encodeArray(v *value.Value, w io.Writer, es *EncState) error {
	if err := writeString(w, applyColor(es, v.Kind(), SepColor, "[")); err != nil {
		return err
	}
	if err := writeType(v, w, es); err != nil {
		return err
	}
	es.depth++
	for i := range v.Len() {
		if err := writeNL(w, es); err != nil {
			return err
		}
		c, err := v.Index(i)
		if err != nil {
			return err
		}
		if err := encode(c, w, es); err != nil {
			return err
		}
	}
	es.depth--
	return writeClose(v, "]", w, es)
}

func encodeKeyed(v *value.Value, w io.Writer, es *EncState) error {
	open, close := "{", "}"
	if v.Kind() == typedef.OrderedMapKind {
		open, close = "<", ">"
	}
	if err := writeString(w, applyColor(es, v.Kind(), SepColor, open)); err != nil {
		return err
	}
	if err := writeType(v, w, es); err != nil {
		return err
	}
	es.depth++
	for _, k := range v.Keys() {
		if err := writeNL(w, es); err != nil {
			return err
		}
		if err := writeField(v.Kind(), k, w, es); err != nil {
			return err
		}
		c, err := v.Key(k)
		if err != nil {
			return err
		}
		if err := encode(c, w, es); err != nil {
			return err
		}
	}
	es.depth--
	return writeClose(v, close, w, es)
}

func writeClose(v *value.Value, close string, w io.Writer, es *EncState) error {
	if v.Len() > 0 {
		if err := writeNL(w, es); err != nil {
			return err
		}
	}
	return writeString(w, applyColor(es, v.Kind(), SepColor, close))
}

func writeField(k typedef.Kind, f string, w io.Writer, es *EncState) error {
	f = applyColor(es, k, FieldColor, kpath.QuoteField(f))
	sep := applyColor(es, k, SepColor, ":")
	return writeString(w, f+sep+" ")
}
