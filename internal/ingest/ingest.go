// Package ingest turns CSV data files into trajectory DSG files: the
// columns are mapped to user data types, standardized and checked, and
// the result is written with the dataset metadata.
package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gnames/gnlib"
	"github.com/robert-malhotra/go-dsg/datatype"
	"github.com/robert-malhotra/go-dsg/dsg"
	"github.com/robert-malhotra/go-dsg/internal/config"
	"github.com/robert-malhotra/go-dsg/stdarray"
)

// Result describes one ingested file.
type Result struct {
	Input    string
	Output   string
	Samples  int
	Columns  int
	Size     int64
	Messages []stdarray.Message
}

// Ingester converts CSV files with a shared column mapping and metadata.
// It is safe for concurrent use on different files.
type Ingester struct {
	userTypes *datatype.Registry
	metaTypes *datatype.Registry
	dataTypes *datatype.Registry
	mapping   *Mapping
	metadata  map[string]string
	outDir    string
	opts      []dsg.Option
}

// New creates an Ingester. Type descriptions named in cfg are added to
// the standard user and data types.
func New(cfg *config.Config, mapping *Mapping, metadata map[string]string) (*Ingester, error) {
	userTypes, err := datatype.UserTypes()
	if err != nil {
		return nil, err
	}
	metaTypes, err := datatype.MetadataTypes()
	if err != nil {
		return nil, err
	}
	dataTypes, err := datatype.DataTypes()
	if err != nil {
		return nil, err
	}

	if path := cfg.Types.DescriptionFile; path != "" {
		for _, reg := range []*datatype.Registry{userTypes, dataTypes} {
			if err = addDescriptions(reg, path); err != nil {
				return nil, err
			}
		}
	}

	for name := range metadata {
		if _, ok := metaTypes.Lookup(name); !ok {
			return nil, fmt.Errorf("%w: metadata %s", dsg.ErrUnknownType, name)
		}
	}

	res := &Ingester{
		userTypes: userTypes,
		metaTypes: metaTypes,
		dataTypes: dataTypes,
		mapping:   mapping,
		metadata:  metadata,
		outDir:    cfg.OutputDir,
		opts: []dsg.Option{
			dsg.WithOffsetSize(cfg.Codec.OffsetSize),
			dsg.WithHistory(cfg.Codec.History),
		},
	}
	return res, nil
}

func addDescriptions(reg *datatype.Registry, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return dsg.OpenFileError(path, err)
	}
	defer f.Close()
	if err = reg.AddDescriptions(f); err != nil {
		return ColumnsError(path, err)
	}
	return nil
}

// UserTypes returns the registry used to type CSV columns.
func (in *Ingester) UserTypes() *datatype.Registry { return in.userTypes }

// Ingest converts the CSV file at path. The DSG file is named after the
// dataset identifier, or after the input file when there is none.
// Diagnostics do not stop the conversion; they are returned in the
// Result.
func (in *Ingester) Ingest(ctx context.Context, path string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	header, rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, NoSamplesError(path)
	}

	columns, err := in.columns(header)
	if err != nil {
		return nil, ColumnsError(path, err)
	}
	user, err := stdarray.Standardize(columns, rows)
	if err != nil {
		return nil, StandardizeError(path, err)
	}
	user.CheckBounds()
	user.CheckMissingLonLatDepthTime()

	data, err := dsg.BuildDataArray(user, in.dataTypes)
	if err != nil {
		return nil, StandardizeError(path, err)
	}
	meta, err := in.buildMetadata(user)
	if err != nil {
		return nil, MetadataError(path, err)
	}
	meta.UpdateExtents(data)

	if err = ctx.Err(); err != nil {
		return nil, err
	}
	name := meta.DatasetID()
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	} else if !isFileName(name) {
		return nil, DatasetIDError(path, name)
	}
	out := filepath.Join(in.outDir, name+".nc")
	if err = dsg.New(out, in.opts...).Create(meta, data); err != nil {
		return nil, err
	}

	res := &Result{
		Input:    path,
		Output:   out,
		Samples:  data.NumSamples(),
		Columns:  data.NumColumns(),
		Messages: user.Messages(),
	}
	if fi, err := os.Stat(out); err == nil {
		res.Size = fi.Size()
	}
	slog.Info("Ingested data file",
		"input", path,
		"output", out,
		"samples", res.Samples,
		"messages", len(res.Messages),
	)
	return res, nil
}

// isFileName reports whether name can be used as a file name inside the
// output directory.
func isFileName(name string) bool {
	if name == "." || strings.Contains(name, "..") ||
		strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, os.PathSeparator) {
		return false
	}
	return filepath.Base(name) == name
}

// readCSV returns the header and data rows of the CSV file at path, with
// cells trimmed and invalid UTF-8 repaired. Blank lines are skipped.
func readCSV(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, dsg.OpenFileError(path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.Comment = '#'

	var header []string
	var rows [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, CSVError(path, err)
		}
		for i := range rec {
			rec[i] = strings.TrimSpace(gnlib.FixUtf8(rec[i]))
		}
		if header == nil {
			header = rec
			continue
		}
		rows = append(rows, rec)
	}
	if header == nil {
		return nil, nil, CSVError(path, errors.New("no header line"))
	}
	return header, rows, nil
}

// columns types the CSV columns. Columns absent from the mapping are
// typed by their header when it names a user type, and are "other"
// otherwise.
func (in *Ingester) columns(header []string) ([]stdarray.Column, error) {
	other, _ := in.userTypes.Lookup(datatype.VarOther)
	res := make([]stdarray.Column, len(header))
	for i, name := range header {
		spec, ok := in.mapping.Find(name)
		if !ok {
			dt, found := in.userTypes.Lookup(name)
			if !found {
				slog.Debug("Unmapped column", "column", name)
				dt = other
			}
			res[i] = stdarray.Column{Name: name, Type: dt}
			continue
		}
		dt, found := in.userTypes.Lookup(spec.Type)
		if !found {
			return nil, fmt.Errorf("%w: column %s has type %s", dsg.ErrUnknownType, name, spec.Type)
		}
		res[i] = stdarray.Column{Name: name, Type: dt, Unit: spec.Unit, Missing: spec.Missing}
	}
	return res, nil
}

// buildMetadata takes metadata values from the metadata file, falling
// back to the first value of user columns of metadata types.
func (in *Ingester) buildMetadata(user *stdarray.StdUserDataArray) (*dsg.Metadata, error) {
	meta := dsg.NewMetadata(in.metaTypes)
	for col, ut := range user.Types() {
		dt, ok := in.metaTypes.Lookup(ut.VarName())
		if !ok || !user.IsUsable(col) || dt.Kind() != ut.Kind() {
			continue
		}
		for _, v := range user.Column(col) {
			if !v.IsMissing() {
				if err := meta.Set(dt, v); err != nil {
					return nil, err
				}
				break
			}
		}
	}
	for name, raw := range in.metadata {
		dt, _ := in.metaTypes.Lookup(name)
		v, err := datatype.ParseValue(dt.Kind(), raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if err = meta.Set(dt, v); err != nil {
			return nil, err
		}
	}
	return meta, nil
}
