// Package encode renders morf value trees for people: one value per line,
// indented by depth, optionally colored and annotated with lock state and
// descriptors.
//
//	{
//	  name: "Ann"
//	  age: null
//	  tags: [
//	    "a"
//	  ]
//	}
//
// The output is meant for logs, test failures and terminals. It is not an
// interchange format and there is no decoder for it.
package encode
