package datatype

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Tags recognized in a type description.
const (
	tagDataClass    = "data_class"
	tagSortOrder    = "sort_order"
	tagDisplayName  = "display_name"
	tagDescription  = "description"
	tagIsCritical   = "is_critial"
	tagStandardName = "standard_name"
	tagCategoryName = "category_name"
	tagFileStdUnit  = "file_std_unit"
	tagUnits        = "units"
	tagMinQuestion  = "min_question_value"
	tagMinAccept    = "min_accept_value"
	tagMaxAccept    = "max_accept_value"
	tagMaxQuestion  = "max_question_value"
)

// description is the JSON form of a DataType.
type description struct {
	DataClass    string   `json:"data_class"`
	SortOrder    string   `json:"sort_order"`
	DisplayName  string   `json:"display_name"`
	Description  string   `json:"description,omitempty"`
	IsCritical   string   `json:"is_critial,omitempty"`
	StandardName string   `json:"standard_name,omitempty"`
	CategoryName string   `json:"category_name,omitempty"`
	FileStdUnit  string   `json:"file_std_unit,omitempty"`
	Units        []string `json:"units,omitempty"`
	MinQuestion  string   `json:"min_question_value,omitempty"`
	MinAccept    string   `json:"min_accept_value,omitempty"`
	MaxAccept    string   `json:"max_accept_value,omitempty"`
	MaxQuestion  string   `json:"max_question_value,omitempty"`
}

// ParseDescription parses the JSON description of the type named varName.
// Scalar tags may be given as JSON strings, numbers or booleans.
func ParseDescription(varName, js string) (Spec, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(js), &raw); err != nil {
		return Spec{}, fmt.Errorf("%w: %s: %v", ErrInvalidDescription, varName, err)
	}

	fields := make(map[string]string, len(raw))
	var units []string
	for tag, val := range raw {
		switch tag {
		case tagUnits:
			if err := json.Unmarshal(val, &units); err != nil {
				return Spec{}, fmt.Errorf("%w: %s: units: %v", ErrInvalidDescription, varName, err)
			}
		case tagDataClass, tagSortOrder, tagDisplayName, tagDescription,
			tagIsCritical, tagStandardName, tagCategoryName, tagFileStdUnit,
			tagMinQuestion, tagMinAccept, tagMaxAccept, tagMaxQuestion:
			s, err := scalarString(val)
			if err != nil {
				return Spec{}, fmt.Errorf("%w: %s: %s: %v", ErrInvalidDescription, varName, tag, err)
			}
			fields[tag] = s
		default:
			return Spec{}, fmt.Errorf("%w: %s: %q", ErrUnknownTag, varName, tag)
		}
	}

	for _, tag := range []string{tagDataClass, tagSortOrder, tagDisplayName} {
		if _, ok := fields[tag]; !ok {
			return Spec{}, fmt.Errorf("%w: %s: missing %s", ErrInvalidDescription, varName, tag)
		}
	}
	kind, err := ParseKind(fields[tagDataClass])
	if err != nil {
		return Spec{}, fmt.Errorf("%s: %w", varName, err)
	}
	order, err := strconv.ParseFloat(fields[tagSortOrder], 64)
	if err != nil {
		return Spec{}, fmt.Errorf("%w: %s: sort_order %q", ErrInvalidDescription, varName, fields[tagSortOrder])
	}

	s := Spec{
		Kind:         kind,
		VarName:      varName,
		SortOrder:    order,
		DisplayName:  fields[tagDisplayName],
		Description:  fields[tagDescription],
		Units:        units,
		StandardName: fields[tagStandardName],
		CategoryName: fields[tagCategoryName],
		FileStdUnit:  fields[tagFileStdUnit],
	}
	if c, ok := fields[tagIsCritical]; ok {
		if s.Critical, err = strconv.ParseBool(c); err != nil {
			return Spec{}, fmt.Errorf("%w: %s: is_critial %q", ErrInvalidDescription, varName, c)
		}
	}
	bounds := []struct {
		tag string
		dst *Value
	}{
		{tagMinQuestion, &s.MinQuestionable},
		{tagMinAccept, &s.MinAcceptable},
		{tagMaxAccept, &s.MaxAcceptable},
		{tagMaxQuestion, &s.MaxQuestionable},
	}
	for _, b := range bounds {
		str, ok := fields[b.tag]
		if !ok {
			continue
		}
		if *b.dst, err = ParseValue(kind, str); err != nil {
			return Spec{}, fmt.Errorf("%w: %s: %s: %v", ErrInvalidDescription, varName, b.tag, err)
		}
	}
	return s, nil
}

func scalarString(val json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(val, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(val, &n); err == nil {
		return n.String(), nil
	}
	var b bool
	if err := json.Unmarshal(val, &b); err == nil {
		return strconv.FormatBool(b), nil
	}
	return "", fmt.Errorf("not a scalar: %s", val)
}

// Describe returns the JSON description of dt.
func (dt *DataType) Describe() (string, error) {
	d := description{
		DataClass:    dt.kind.String(),
		SortOrder:    strconv.FormatFloat(dt.sortOrder, 'f', -1, 64),
		DisplayName:  dt.displayName,
		Description:  dt.description,
		StandardName: dt.standardName,
		CategoryName: dt.categoryName,
		FileStdUnit:  dt.fileStdUnit,
		MinQuestion:  boundString(dt.minQuestionable),
		MinAccept:    boundString(dt.minAcceptable),
		MaxAccept:    boundString(dt.maxAcceptable),
		MaxQuestion:  boundString(dt.maxQuestionable),
	}
	if dt.critical {
		d.IsCritical = "true"
	}
	if len(dt.units) > 1 || dt.units[0] != "" {
		d.Units = dt.units
	}
	b, err := json.Marshal(d)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func boundString(v Value) string {
	if v.IsMissing() {
		return ""
	}
	return v.String()
}

// ReadDescriptions parses type descriptions, one "name=JSON" entry per
// line. Blank lines and lines starting with # or ! are skipped.
func ReadDescriptions(r io.Reader) ([]Spec, error) {
	var specs []Spec
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || text[0] == '#' || text[0] == '!' {
			continue
		}
		name, js, ok := strings.Cut(text, "=")
		if !ok {
			return nil, fmt.Errorf("%w: line %d: no '=' separator", ErrInvalidDescription, line)
		}
		s, err := ParseDescription(strings.TrimSpace(name), strings.TrimSpace(js))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		specs = append(specs, s)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return specs, nil
}

// WriteDescriptions writes the descriptions of types in the form read by
// ReadDescriptions.
func WriteDescriptions(w io.Writer, types []*DataType) error {
	bw := bufio.NewWriter(w)
	for _, dt := range types {
		js, err := dt.Describe()
		if err != nil {
			return err
		}
		if _, err = fmt.Fprintf(bw, "%s=%s\n", dt.varName, js); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// AddDescriptions registers the types described in r.
func (r *Registry) AddDescriptions(rd io.Reader) error {
	specs, err := ReadDescriptions(rd)
	if err != nil {
		return err
	}
	return r.RegisterAll(specs...)
}
