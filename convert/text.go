package convert

import (
	"fmt"
	"strings"

	"github.com/robert-malhotra/go-dsg/datatype"
)

// Text passes trimmed strings through.
type Text struct {
	missing Missing
}

// NewText returns a string converter.
func NewText(missing string) *Text {
	return &Text{missing: missingFor(missing, false)}
}

// Convert implements Converter.
func (c *Text) Convert(raw string) (datatype.Value, error) {
	if c.missing.IsMissing(raw) {
		return datatype.Missing(), nil
	}
	return datatype.StringValue(strings.TrimSpace(raw)), nil
}

// Char converts single-character values such as QC flags.
type Char struct {
	missing Missing
}

// NewChar returns a character converter.
func NewChar(missing string) *Char {
	return &Char{missing: missingFor(missing, false)}
}

// Convert implements Converter.
func (c *Char) Convert(raw string) (datatype.Value, error) {
	if c.missing.IsMissing(raw) {
		return datatype.Missing(), nil
	}
	s := strings.TrimSpace(raw)
	if len(s) != 1 {
		return datatype.Missing(), fmt.Errorf("%w: %q is not a single character", ErrInvalidValue, raw)
	}
	return datatype.CharValue(s[0]), nil
}
