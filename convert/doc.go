// Package convert standardizes raw text values of data columns.
//
// A Converter is built from the declared input unit of a column, the
// standard unit of its DataType and an optional missing-value token.
// Converting a raw string yields a typed datatype.Value in the standard
// unit, the missing Value for recognized missing-value tokens, or an
// error wrapping ErrInvalidValue.
//
// Supported conversions:
//   - linear unit scalings for distance, temperature, pressure, speed and
//     mole fraction, each registered together with its inverse
//   - geographic coordinates in degree, degree-minute, degree-minute-second
//     and packed DDD.MMSSsss forms
//   - timestamps, dates and times of day, normalized to
//     "yyyy-mm-dd HH:mm:ss", "yyyy-mm-dd" and "HH:mm:ss"
//   - fractional day of year, checked against the year column when
//     present (see RowConverter and ErrNotYet)
package convert
