package ingest

import (
	"errors"
	"fmt"
	"os"

	"github.com/robert-malhotra/go-dsg/datatype"
	"gopkg.in/yaml.v3"
)

// ColumnSpec maps a CSV column to a user data type.
type ColumnSpec struct {
	// Name is the CSV header of the column.
	Name string `yaml:"name"`
	// Type is the variable name of the data type.
	Type string `yaml:"type"`
	// Unit of the raw values; empty means the standard unit.
	Unit string `yaml:"unit,omitempty"`
	// Missing is the missing-value token; empty means the defaults.
	Missing string `yaml:"missing,omitempty"`
}

// Mapping is the content of a column mapping file.
type Mapping struct {
	Columns []ColumnSpec `yaml:"columns"`
}

// LoadMapping reads a column mapping YAML file.
func LoadMapping(path string) (*Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ColumnsError(path, err)
	}
	var res Mapping
	if err = yaml.Unmarshal(data, &res); err != nil {
		return nil, ColumnsError(path, err)
	}
	for i, c := range res.Columns {
		if c.Name == "" || c.Type == "" {
			return nil, ColumnsError(path, fmt.Errorf("column %d needs a name and a type", i+1))
		}
	}
	return &res, nil
}

// Find returns the spec for the CSV header name, comparing name keys.
func (m *Mapping) Find(name string) (ColumnSpec, bool) {
	if m == nil {
		return ColumnSpec{}, false
	}
	key := datatype.NameKey(name)
	for _, c := range m.Columns {
		if datatype.NameKey(c.Name) == key {
			return c, true
		}
	}
	return ColumnSpec{}, false
}

// LoadMetadata reads a YAML map of metadata variable names to values.
// An empty path gives no metadata.
func LoadMetadata(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, MetadataError(path, err)
	}
	var res map[string]string
	if err = yaml.Unmarshal(data, &res); err != nil {
		return nil, MetadataError(path, err)
	}
	if res == nil {
		return nil, MetadataError(path, errors.New("no metadata values"))
	}
	return res, nil
}
