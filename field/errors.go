package field

import "errors"

var (
	ErrMalformed  = errors.New("field: malformed token")
	ErrOutOfRange = errors.New("field: value out of range")
)
