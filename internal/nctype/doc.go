// Package nctype provides NetCDF classic external types and Go value conversion.
//
// The classic format stores every value big-endian with one of six external
// types:
//
//	NetCDF type | Size | Go type
//	------------|------|---------
//	NC_BYTE     | 1    | int8
//	NC_CHAR     | 1    | byte (string for attributes)
//	NC_SHORT    | 2    | int16
//	NC_INT      | 4    | int32
//	NC_FLOAT    | 4    | float32
//	NC_DOUBLE   | 8    | float64
//
// # Encoding
//
// Use [Encode] to turn a Go scalar, slice or string into the raw bytes of a
// variable or attribute value (without the trailing 4-byte padding):
//
//	raw, err := nctype.Encode(nctype.Int, []int32{1, 2, 3})
//
// # Decoding
//
// Use [Decode] to convert raw bytes back into a Go slice (or a string for
// NC_CHAR):
//
//	v, err := nctype.Decode(nctype.Double, raw, 3) // []float64
//
// [TypeOf] infers the NetCDF type of an attribute value.
package nctype
