package value

import (
	"github.com/dilatush/go-morf/kpath"
)

// Walk visits v and the values below it depth first. f is called before the
// children of a value with isPost false, and after them with isPost true.
// Children are visited only when the pre call returns true.
func (v *Value) Walk(f func(v *Value, isPost bool) (bool, error)) error {
	dive, err := f(v, false)
	if err != nil {
		return err
	}
	if dive {
		for _, c := range v.children {
			if err := c.Walk(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(v, true); err != nil {
		return err
	}
	return nil
}

// Lookup navigates from v along a kinded path such as "contacts[0].name".
// Field segments use Key and index segments use Index, so the errors are
// theirs.
func (v *Value) Lookup(kp string) (*Value, error) {
	p, err := kpath.Parse(kp)
	if err != nil {
		return nil, err
	}
	return v.LookupKPath(p)
}

func (v *Value) LookupKPath(p *kpath.KPath) (*Value, error) {
	res := v
	for x := p; x != nil; x = x.Next {
		var err error
		switch {
		case x.Field != nil:
			res, err = res.Key(*x.Field)
		case x.Index != nil:
			res, err = res.Index(*x.Index)
		}
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}
