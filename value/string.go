package value

import (
	"fmt"
	"strings"

	"github.com/dilatush/go-morf/kpath"
	"github.com/dilatush/go-morf/typedef"
)

// String returns a compact single line rendering of v for messages and
// debugging. Unset scalars render as "<unset>"; OrderedMaps use angle
// brackets.
func (v *Value) String() string {
	if v == nil {
		return "<nil>"
	}
	b := &strings.Builder{}
	v.writeTo(b)
	return b.String()
}

func (v *Value) writeTo(b *strings.Builder) {
	switch v.Kind() {
	case noKind:
		b.WriteString("<no descriptor>")
		return
	case typedef.ScalarKind:
		b.WriteString(FormatPayload(v))
		return
	case typedef.ArrayKind:
		b.WriteByte('[')
		for i, c := range v.children {
			if i > 0 {
				b.WriteString(", ")
			}
			c.writeTo(b)
		}
		b.WriteByte(']')
		return
	}
	open, close := byte('{'), byte('}')
	if v.Kind() == typedef.OrderedMapKind {
		open, close = '<', '>'
	}
	b.WriteByte(open)
	for i, k := range v.keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(kpath.QuoteField(k))
		b.WriteString(": ")
		v.children[i].writeTo(b)
	}
	b.WriteByte(close)
}

// FormatPayload renders the payload of scalar v: "null", "<unset>", a Go
// quoted string, or the %v form of anything else.
func FormatPayload(v *Value) string {
	switch {
	case !v.present:
		return "<unset>"
	case v.payload == nil:
		return "null"
	}
	if s, ok := v.payload.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", v.payload)
}
