package convert

import "errors"

// Common errors
var (
	// ErrNotSupported is returned when no conversion between the declared
	// units exists.
	ErrNotSupported = errors.New("conversion not supported")

	// ErrNotYet is returned when a conversion depends on a column that has
	// not been standardized yet.
	ErrNotYet = errors.New("cannot convert yet")

	// ErrInvalidValue is returned when a raw value cannot be converted.
	ErrInvalidValue = errors.New("invalid value")
)
