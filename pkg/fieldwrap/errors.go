package fieldwrap

import "errors"

// Precondition errors. They signal caller mistakes and are never retried.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrTypeMismatch    = errors.New("type mismatch")
)

// Resolution errors.
var (
	ErrFieldNotFound = errors.New("field not found")
	ErrNilEmbedded   = errors.New("nil embedded pointer")
)
