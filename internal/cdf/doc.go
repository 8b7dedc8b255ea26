// Package cdf handles NetCDF classic format headers and variable data.
//
// A classic file starts with a header describing every dimension, global
// attribute and variable, followed by the data of each variable laid out
// contiguously at the offset recorded in the header.
//
// # File Signature
//
// Files are identified by the three bytes 'C' 'D' 'F' followed by a version
// byte: 1 for the classic format (4-byte offsets, CDF-1) and 2 for the
// 64-bit offset format (CDF-2). [Read] accepts both; [Header.Write] writes
// whichever [Version] the header carries.
//
// # Header Contents
//
//	magic numrecs dim_list gatt_list var_list
//
// Each list is either ABSENT (two zero words) or a tag followed by a count
// and the elements. Names and attribute values are padded to 4 bytes. Every
// variable records its type, its padded size (vsize) and the offset of its
// data (begin).
//
// # Data Layout
//
// This package writes only fixed-size dimensions: a zero-length dimension
// would be the record dimension, whose interleaved layout the DSG files never
// need. [Header.Layout] assigns begin offsets after the header in variable
// order.
//
// # Key Functions
//
//   - [Read]: parse a header from an io.ReaderAt
//   - [Header.Layout]: compute vsize/begin for every variable
//   - [Header.Write]: serialize the header at offset 0
//   - [ReadVar] / [WriteVar]: raw access to one variable's data
package cdf
