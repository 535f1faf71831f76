package typedef

import "errors"

var (
	ErrNullNotAllowed = errors.New("null not allowed")
	ErrTypeMismatch   = errors.New("type mismatch")
)
