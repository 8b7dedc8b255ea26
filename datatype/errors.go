package datatype

import "errors"

// Common errors
var (
	ErrInvalidBounds      = errors.New("bounds out of order")
	ErrInvalidType        = errors.New("invalid data type")
	ErrDuplicateName      = errors.New("duplicate data type name")
	ErrInvalidDescription = errors.New("invalid data type description")
	ErrUnknownTag         = errors.New("unknown data type description tag")
)
