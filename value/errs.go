package value

import (
	"errors"

	"github.com/dilatush/go-morf/kpath"
	"github.com/dilatush/go-morf/typedef"
)

var (
	ErrWrongVariant    = errors.New("wrong variant")
	ErrLockedMutation  = errors.New("locked mutation")
	ErrMissingKey      = errors.New("missing key")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrAttached        = errors.New("value already attached")

	ErrNullNotAllowed = typedef.ErrNullNotAllowed
	ErrTypeMismatch   = typedef.ErrTypeMismatch
	ErrBadPath        = kpath.ErrBadPath
)
