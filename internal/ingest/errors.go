package ingest

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/robert-malhotra/go-dsg/internal/errcode"
)

// ColumnsError creates an error for an unusable column mapping file.
func ColumnsError(path string, err error) error {
	msg := `Cannot use column mapping

<em>Path:</em> %s`

	return &gn.Error{
		Code: errcode.IngestColumnsError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("column mapping %s: %w", path, err),
	}
}

// MetadataError creates an error for an unusable metadata file.
func MetadataError(path string, err error) error {
	msg := `Cannot use metadata

<em>Path:</em> %s`

	return &gn.Error{
		Code: errcode.IngestMetadataError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("metadata %s: %w", path, err),
	}
}

// CSVError creates an error for a data file that cannot be read as CSV.
func CSVError(path string, err error) error {
	msg := `Cannot read CSV data

<em>Path:</em> %s

<em>Possible causes:</em>
  - The file has no header line
  - Quotes are not balanced`

	return &gn.Error{
		Code: errcode.IngestCSVError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("reading CSV %s: %w", path, err),
	}
}

// StandardizeError creates an error for data that cannot be
// standardized.
func StandardizeError(path string, err error) error {
	msg := `Cannot standardize data

<em>Path:</em> %s`

	return &gn.Error{
		Code: errcode.IngestStandardizeError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("standardizing %s: %w", path, err),
	}
}

// NoSamplesError creates an error for a data file without data rows.
func NoSamplesError(path string) error {
	return &gn.Error{
		Code: errcode.IngestNoSamplesError,
		Msg:  "No data rows in <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("no data rows in %s", path),
	}
}

// DatasetIDError creates an error for a dataset ID that cannot be used as
// the output file name.
func DatasetIDError(path, id string) error {
	msg := `Cannot name output after dataset ID

<em>Path:</em> %s
<em>Dataset ID:</em> %s

<em>Possible causes:</em>
  - The ID contains a path separator or ".."`

	return &gn.Error{
		Code: errcode.IngestDatasetIDError,
		Msg:  msg,
		Vars: []any{path, id},
		Err:  fmt.Errorf("dataset ID %q of %s is not a file name", id, path),
	}
}
