package kpath

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrBadPath = errors.New("bad kpath")

// KPath is a linked list of path segments. Each segment sets exactly one of
// Field or Index. The nil *KPath is the root path.
type KPath struct {
	Field *string // Map or OrderedMap key
	Index *int    // Array or OrderedMap position
	Next  *KPath
}

func Field(name string) *KPath {
	return &KPath{Field: &name}
}

func Index(i int) *KPath {
	return &KPath{Index: &i}
}

// String returns the kinded path string representation of this KPath.
//
//	KPath{Field: &"a", Next: &KPath{Index: &0}} → "a[0]"
func (p *KPath) String() string {
	if p == nil {
		return ""
	}
	buf := bytes.NewBuffer(nil)
	for x := p; x != nil; x = x.Next {
		switch {
		case x.Field != nil:
			if buf.Len() > 0 {
				buf.WriteByte('.')
			}
			buf.WriteString(QuoteField(*x.Field))
		case x.Index != nil:
			fmt.Fprintf(buf, "[%d]", *x.Index)
		}
	}
	return buf.String()
}

// SegmentString returns the representation of this segment only.
func (p *KPath) SegmentString() string {
	if p == nil {
		return ""
	}
	switch {
	case p.Field != nil:
		return QuoteField(*p.Field)
	case p.Index != nil:
		return "[" + strconv.Itoa(*p.Index) + "]"
	}
	return ""
}

// Append returns a copy of p with next added at the end.
func (p *KPath) Append(next *KPath) *KPath {
	if p == nil {
		return next.clone()
	}
	res := p.clone()
	last := res
	for last.Next != nil {
		last = last.Next
	}
	last.Next = next.clone()
	return res
}

// Len returns the number of segments.
func (p *KPath) Len() int {
	n := 0
	for x := p; x != nil; x = x.Next {
		n++
	}
	return n
}

func (p *KPath) clone() *KPath {
	if p == nil {
		return nil
	}
	res := &KPath{}
	if p.Field != nil {
		f := *p.Field
		res.Field = &f
	}
	if p.Index != nil {
		i := *p.Index
		res.Index = &i
	}
	res.Next = p.Next.clone()
	return res
}

// Parse parses a kinded path string into a KPath structure.
//
//   - "a.b.c" → 3 field segments
//   - "a[0][1]" → field then 2 index segments
//   - "[2].name" → index then field
//   - "" → root path (nil)
func Parse(kpath string) (*KPath, error) {
	if kpath == "" {
		return nil, nil
	}
	root := &KPath{}
	if err := parseFrag(kpath, root, true); err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrBadPath, kpath, err)
	}
	return root, nil
}

// Join joins two kinded path strings.
func Join(prefix, suffix string) string {
	switch {
	case prefix == "":
		return suffix
	case suffix == "":
		return prefix
	case suffix[0] == '[':
		return prefix + suffix
	}
	return prefix + "." + suffix
}

func parseFrag(frag string, p *KPath, first bool) error {
	var rest string
	switch {
	case frag[0] == '[':
		i := strings.IndexByte(frag, ']')
		if i == -1 {
			return fmt.Errorf("expected '[' <index> ']'")
		}
		digits := frag[1:i]
		if digits == "" || digits[0] < '0' || digits[0] > '9' {
			return fmt.Errorf("invalid index %q", digits)
		}
		index, err := strconv.Atoi(digits)
		if err != nil {
			return fmt.Errorf("invalid index %q", digits)
		}
		p.Index = &index
		rest = frag[i+1:]
	case frag[0] == '.' && !first:
		field, r, err := parseField(frag[1:])
		if err != nil {
			return err
		}
		p.Field = &field
		rest = r
	case first:
		field, r, err := parseField(frag)
		if err != nil {
			return err
		}
		p.Field = &field
		rest = r
	default:
		return fmt.Errorf("expected '.' or '[', got %q", frag[0])
	}
	if rest == "" {
		return nil
	}
	p.Next = &KPath{}
	return parseFrag(rest, p.Next, false)
}

func parseField(frag string) (field, rest string, err error) {
	if frag == "" {
		return "", "", fmt.Errorf("empty field")
	}
	if frag[0] == '"' {
		end, err := quotedEnd(frag)
		if err != nil {
			return "", "", err
		}
		field, err = strconv.Unquote(frag[:end])
		if err != nil {
			return "", "", err
		}
		return field, frag[end:], nil
	}
	i := strings.IndexAny(frag, ".[")
	if i == -1 {
		return frag, "", nil
	}
	if i == 0 {
		return "", "", fmt.Errorf("empty field")
	}
	return frag[:i], frag[i:], nil
}

// quotedEnd returns the index just past the closing quote of the double
// quoted string starting at d[0].
func quotedEnd(d string) (int, error) {
	esc := false
	for i := 1; i < len(d); i++ {
		switch {
		case esc:
			esc = false
		case d[i] == '\\':
			esc = true
		case d[i] == '"':
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("unterminated quoted field")
}

// QuoteField returns f, quoted if it cannot be written bare in a kinded path.
func QuoteField(f string) string {
	if NeedsQuote(f) {
		return strconv.Quote(f)
	}
	return f
}

func NeedsQuote(f string) bool {
	if f == "" {
		return true
	}
	for _, r := range f {
		switch {
		case r == '.', r == '[', r == ']', r == '"', r == '\\':
			return true
		case r <= ' ', r == 0x7f:
			return true
		}
	}
	return false
}
