// Package stdarray holds standardized sample data.
//
// A StdDataArray is a rectangular array of typed values with one
// datatype.DataType per column. Special columns (longitude, latitude,
// sample depth and the date and time components) are located once when
// the array is built and give the sample positions and times.
//
// A StdUserDataArray is built by Standardize from raw user strings. It
// records which columns could be standardized and the diagnostic
// messages produced along the way.
//
// # Key Functions
//
//   - [New]: build an array from typed values
//   - [Standardize]: convert raw user strings into an array
//   - [StdDataArray.SampleTimes]: derive sample times from time columns
//   - [StdUserDataArray.CheckBounds], [StdUserDataArray.CheckMissingLonLatDepthTime]
package stdarray
