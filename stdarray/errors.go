package stdarray

import "errors"

// Common errors
var (
	ErrShape             = errors.New("array shape mismatch")
	ErrKindMismatch      = errors.New("value kind does not match column type")
	ErrNoColumn          = errors.New("no such column")
	ErrIncompleteTime    = errors.New("incomplete time specification")
	ErrUnresolvedColumns = errors.New("columns depend on each other and cannot be standardized")
)
