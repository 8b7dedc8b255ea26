package dsg

import (
	"errors"
	"fmt"
	"io"

	"github.com/gnames/gn"
	"github.com/robert-malhotra/go-dsg/internal/cdf"
	"github.com/robert-malhotra/go-dsg/internal/errcode"
)

// Common errors
var (
	ErrNotDSG          = errors.New("not a trajectory DSG file")
	ErrMissingColumn   = errors.New("required data column missing")
	ErrNoTimeColumn    = errors.New("no time column")
	ErrNoSamples       = errors.New("no samples")
	ErrVarNotFound     = errors.New("variable not found")
	ErrShapeMismatch   = errors.New("variable shape mismatch")
	ErrUnsupportedKind = errors.New("unsupported value kind")
	ErrUnknownType     = errors.New("data type not in registry")
	ErrOutOfRange      = errors.New("value does not fit the variable type")
)

// CreateFileError creates an error for when a DSG file cannot be created.
func CreateFileError(path string, err error) error {
	msg := `Cannot create DSG file

<em>Path:</em> %s

<em>Possible causes:</em>
  - Output directory does not exist
  - Insufficient permissions`

	return &gn.Error{
		Code: errcode.CreateFileError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("creating %s: %w", path, err),
	}
}

// OpenFileError creates an error for when a DSG file cannot be opened.
func OpenFileError(path string, err error) error {
	msg := `Cannot open DSG file

<em>Path:</em> %s`

	return &gn.Error{
		Code: errcode.OpenFileError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("opening %s: %w", path, err),
	}
}

// ReadFileError creates an error for when reading a DSG file fails.
func ReadFileError(path string, err error) error {
	msg := `Cannot read DSG file

<em>Path:</em> %s`

	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("reading %s: %w", path, err),
	}
}

// WriteFileError creates an error for when writing a DSG file fails.
func WriteFileError(path string, err error) error {
	msg := `Cannot write DSG file

<em>Path:</em> %s

<em>Possible causes:</em>
  - Disk full
  - Insufficient permissions`

	return &gn.Error{
		Code: errcode.WriteFileError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("writing %s: %w", path, err),
	}
}

// notDSG classifies a header failure: format problems wrap ErrNotDSG,
// anything else is a read error.
func notDSG(path string, err error) error {
	switch {
	case err == nil:
		return fmt.Errorf("%w: %s has no trajectory feature type", ErrNotDSG, path)
	case errors.Is(err, cdf.ErrNotCDF), errors.Is(err, cdf.ErrUnsupportedVersion),
		errors.Is(err, cdf.ErrInvalidHeader), errors.Is(err, io.ErrUnexpectedEOF),
		errors.Is(err, io.EOF):
		return fmt.Errorf("%w: %s: %v", ErrNotDSG, path, err)
	default:
		return ReadFileError(path, err)
	}
}
