package libdiff

import (
	"slices"

	"github.com/dilatush/go-morf/debug"
	"github.com/dilatush/go-morf/kpath"
	"github.com/dilatush/go-morf/typedef"
	"github.com/dilatush/go-morf/value"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type Op int

const (
	Insert Op = iota
	Delete
	Replace
	Move
)

func (op Op) String() string {
	switch op {
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	case Replace:
		return "replace"
	case Move:
		return "move"
	}
	return "<unknown op>"
}

type Change struct {
	Path string
	Op   Op
	From *value.Value // nil for Insert
	To   *value.Value // nil for Delete
}

// Diff returns the changes turning from into to, in tree order. Lock state
// and descriptors are ignored, so a tree and its snapshot have no changes.
//
// A Move of an ordered map key is followed by the changes to its value, at
// the same path.
func Diff(from, to *value.Value) []Change {
	var res []Change
	diff(from, to, nil, &res)
	if debug.Diff() {
		debug.Logf("diff %s -> %s: %d changes\n", from, to, len(res))
	}
	return res
}

func diff(from, to *value.Value, at *kpath.KPath, res *[]Change) {
	if from.Kind() != to.Kind() {
		*res = append(*res, Change{Path: at.String(), Op: Replace, From: from, To: to})
		return
	}
	switch from.Kind() {
	case typedef.ScalarKind:
		if !value.Equal(from, to) {
			*res = append(*res, Change{Path: at.String(), Op: Replace, From: from, To: to})
		}
	case typedef.ArrayKind:
		diffArray(from, to, at, res)
	case typedef.MapKind:
		fk, tk := from.Keys(), to.Keys()
		slices.Sort(fk)
		slices.Sort(tk)
		diffKeyed(from, to, fk, tk, at, res)
	case typedef.OrderedMapKind:
		diffKeyed(from, to, from.Keys(), to.Keys(), at, res)
	}
}

func diffKeyed(from, to *value.Value, fk, tk []string, at *kpath.KPath, res *[]Change) {
	runes := map[string]rune{}
	keys := map[rune]string{}
	fromRunes := mapTo(runes, keys, fk)
	toRunes := mapTo(runes, keys, tk)
	diffs := diffpatch.New().DiffMainRunes(fromRunes, toRunes, false)

	deleted := map[string]bool{}
	inserted := map[string]bool{}
	for i := range diffs {
		for _, r := range diffs[i].Text {
			switch diffs[i].Type {
			case diffpatch.DiffDelete:
				deleted[keys[r]] = true
			case diffpatch.DiffInsert:
				inserted[keys[r]] = true
			}
		}
	}
	for i := range diffs {
		d := &diffs[i]
		for _, r := range d.Text {
			k := keys[r]
			kp := at.Append(kpath.Field(k))
			fc, _ := from.Key(k)
			tc, _ := to.Key(k)
			switch d.Type {
			case diffpatch.DiffEqual:
				diff(fc, tc, kp, res)
			case diffpatch.DiffDelete:
				if inserted[k] {
					*res = append(*res, Change{Path: kp.String(), Op: Move, From: fc, To: tc})
					diff(fc, tc, kp, res)
					continue
				}
				*res = append(*res, Change{Path: kp.String(), Op: Delete, From: fc})
			case diffpatch.DiffInsert:
				if deleted[k] {
					continue
				}
				*res = append(*res, Change{Path: kp.String(), Op: Insert, To: tc})
			}
		}
	}
}

// diffArray aligns elements by their rendering. A run of deletions followed
// by a run of insertions is compared pairwise as replacements.
func diffArray(from, to *value.Value, at *kpath.KPath, res *[]Change) {
	runes := map[string]rune{}
	keys := map[rune]string{}
	fromRunes := mapTo(runes, keys, renderings(from))
	toRunes := mapTo(runes, keys, renderings(to))
	diffs := diffpatch.New().DiffMainRunes(fromRunes, toRunes, false)

	fi, ti := 0, 0
	for i := 0; i < len(diffs); i++ {
		d := &diffs[i]
		n := len([]rune(d.Text))
		switch d.Type {
		case diffpatch.DiffEqual:
			// equal renderings may still hold unequal payloads, e.g. int64(1) and 1
			for j := range n {
				fc, _ := from.Index(fi + j)
				tc, _ := to.Index(ti + j)
				diff(fc, tc, at.Append(kpath.Index(fi+j)), res)
			}
			fi += n
			ti += n
		case diffpatch.DiffDelete:
			m := 0
			if i+1 < len(diffs) && diffs[i+1].Type == diffpatch.DiffInsert {
				m = len([]rune(diffs[i+1].Text))
				i++
			}
			for j := range max(n, m) {
				switch {
				case j < n && j < m:
					fc, _ := from.Index(fi + j)
					tc, _ := to.Index(ti + j)
					diff(fc, tc, at.Append(kpath.Index(fi+j)), res)
				case j < n:
					fc, _ := from.Index(fi + j)
					*res = append(*res, Change{Path: at.Append(kpath.Index(fi + j)).String(), Op: Delete, From: fc})
				default:
					tc, _ := to.Index(ti + j)
					*res = append(*res, Change{Path: at.Append(kpath.Index(ti + j)).String(), Op: Insert, To: tc})
				}
			}
			fi += n
			ti += m
		case diffpatch.DiffInsert:
			for j := range n {
				tc, _ := to.Index(ti + j)
				*res = append(*res, Change{Path: at.Append(kpath.Index(ti + j)).String(), Op: Insert, To: tc})
			}
			ti += n
		}
	}
}

func renderings(v *value.Value) []string {
	res := make([]string, v.Len())
	for i := range res {
		c, _ := v.Index(i)
		res[i] = c.String()
	}
	return res
}

func mapTo(m map[string]rune, im map[rune]string, ss []string) []rune {
	rs := make([]rune, len(ss))
	for i, s := range ss {
		r, ok := m[s]
		if !ok {
			r = rune(len(m))
			m[s] = r
			im[r] = s
		}
		rs[i] = r
	}
	return rs
}
