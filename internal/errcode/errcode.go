package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CreateFileError
	OpenFileError
	ReadFileError
	WriteFileError

	// Logging errors
	CreateLogFileError

	// Configuration errors
	ConfigReadError
	ConfigValueError

	// Data type errors
	TypeDescriptionError

	// DSG file errors
	DSGFormatError

	// Ingest errors
	IngestColumnsError
	IngestMetadataError
	IngestCSVError
	IngestStandardizeError
	IngestNoSamplesError
	IngestDatasetIDError
)
