// Package datatype describes the kinds of values stored in trajectory
// datasets: data columns as well as dataset metadata.
//
// A DataType carries a variable name, a display name, a sort order, the
// units values may be given in and optional bounds used for range
// checks. Values are carried as Value, a tagged union over strings,
// characters, integers and doubles whose zero value is missing.
//
// # Key Functions
//
//   - [New]: validate a Spec and create a DataType
//   - [DataType.BoundsCheck]: check a value against the type's bounds
//   - [NewRegistry], [Registry.Register], [Registry.Lookup]: name-keyed type sets
//   - [UserTypes], [MetadataTypes], [DataTypes]: the standard catalogs
//   - [ReadDescriptions], [WriteDescriptions]: the "name=JSON" interchange form
package datatype
