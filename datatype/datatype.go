package datatype

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"
)

// Spec carries the fields used to construct a DataType.
type Spec struct {
	Kind         Kind
	VarName      string
	SortOrder    float64
	DisplayName  string
	Description  string
	Critical     bool
	Units        []string
	StandardName string
	CategoryName string
	FileStdUnit  string

	MinQuestionable Value
	MinAcceptable   Value
	MaxAcceptable   Value
	MaxQuestionable Value
}

// DataType describes a kind of data column or metadata value.
// A DataType is immutable once created.
type DataType struct {
	kind         Kind
	varName      string
	sortOrder    float64
	displayName  string
	description  string
	critical     bool
	units        []string
	standardName string
	categoryName string
	fileStdUnit  string

	minQuestionable Value
	minAcceptable   Value
	maxAcceptable   Value
	maxQuestionable Value
}

// New validates s and returns the DataType it describes.
// An empty display name defaults to the variable name and an empty unit
// list becomes a single empty unit.
func New(s Spec) (*DataType, error) {
	if s.Kind < KindString || s.Kind > KindDouble {
		return nil, fmt.Errorf("%w: kind %v", ErrInvalidType, s.Kind)
	}
	if strings.TrimSpace(s.VarName) == "" {
		return nil, fmt.Errorf("%w: empty variable name", ErrInvalidType)
	}
	if math.IsNaN(s.SortOrder) || math.IsInf(s.SortOrder, 0) {
		return nil, fmt.Errorf("%w: %s: sort order %v", ErrInvalidType, s.VarName, s.SortOrder)
	}
	dt := &DataType{
		kind:            s.Kind,
		varName:         s.VarName,
		sortOrder:       s.SortOrder,
		displayName:     s.DisplayName,
		description:     s.Description,
		critical:        s.Critical,
		units:           slices.Clone(s.Units),
		standardName:    s.StandardName,
		categoryName:    s.CategoryName,
		fileStdUnit:     s.FileStdUnit,
		minQuestionable: s.MinQuestionable,
		minAcceptable:   s.MinAcceptable,
		maxAcceptable:   s.MaxAcceptable,
		maxQuestionable: s.MaxQuestionable,
	}
	if dt.displayName == "" {
		dt.displayName = dt.varName
	}
	if len(dt.units) == 0 {
		dt.units = []string{""}
	}

	bounds := dt.bounds()
	for i, b := range bounds {
		if !b.IsMissing() && b.Kind() != s.Kind {
			return nil, fmt.Errorf("%w: %s: bound %s is %v, want %v",
				ErrInvalidBounds, s.VarName, b, b.Kind(), s.Kind)
		}
		if b.IsMissing() {
			continue
		}
		for _, later := range bounds[i+1:] {
			if !later.IsMissing() && b.Compare(later) > 0 {
				return nil, fmt.Errorf("%w: %s: %s > %s", ErrInvalidBounds, s.VarName, b, later)
			}
		}
	}
	return dt, nil
}

func (dt *DataType) bounds() []Value {
	return []Value{dt.minQuestionable, dt.minAcceptable, dt.maxAcceptable, dt.maxQuestionable}
}

// Spec returns the fields of dt, suitable for deriving a modified type.
func (dt *DataType) Spec() Spec {
	return Spec{
		Kind:            dt.kind,
		VarName:         dt.varName,
		SortOrder:       dt.sortOrder,
		DisplayName:     dt.displayName,
		Description:     dt.description,
		Critical:        dt.critical,
		Units:           slices.Clone(dt.units),
		StandardName:    dt.standardName,
		CategoryName:    dt.categoryName,
		FileStdUnit:     dt.fileStdUnit,
		MinQuestionable: dt.minQuestionable,
		MinAcceptable:   dt.minAcceptable,
		MaxAcceptable:   dt.maxAcceptable,
		MaxQuestionable: dt.maxQuestionable,
	}
}

func (dt *DataType) Kind() Kind { return dt.kind }
func (dt *DataType) VarName() string { return dt.varName }
func (dt *DataType) SortOrder() float64 { return dt.sortOrder }
func (dt *DataType) DisplayName() string { return dt.displayName }
func (dt *DataType) Description() string { return dt.description }
func (dt *DataType) IsCritical() bool { return dt.critical }
func (dt *DataType) StandardName() string { return dt.standardName }
func (dt *DataType) CategoryName() string { return dt.categoryName }
func (dt *DataType) MinQuestionable() Value { return dt.minQuestionable }
func (dt *DataType) MinAcceptable() Value { return dt.minAcceptable }
func (dt *DataType) MaxAcceptable() Value { return dt.maxAcceptable }
func (dt *DataType) MaxQuestionable() Value { return dt.maxQuestionable }
func (dt *DataType) String() string { return dt.varName }

// Units returns the accepted input units. The first is the standard unit.
func (dt *DataType) Units() []string { return slices.Clone(dt.units) }

// StdUnit returns the unit values are standardized to.
func (dt *DataType) StdUnit() string { return dt.units[0] }

// FileStdUnit returns the unit written to files, which defaults to the
// standard unit.
func (dt *DataType) FileStdUnit() string {
	if dt.fileStdUnit != "" {
		return dt.fileStdUnit
	}
	return dt.units[0]
}

// HasUnit reports whether unit is one of the accepted units.
func (dt *DataType) HasUnit(unit string) bool {
	return slices.Contains(dt.units, unit)
}

// MissingValue returns the sentinel used for missing values of this type.
func (dt *DataType) MissingValue() Value { return dt.kind.Sentinel() }

// IsMissing reports whether v is missing or equals the type's sentinel.
func (dt *DataType) IsMissing(v Value) bool {
	if v.IsMissing() {
		return true
	}
	if d, ok := v.AsDouble(); ok {
		return CloseTo(d, MissingDouble, 1.0e-6, 1.0e-6)
	}
	return v.Equal(dt.MissingValue())
}

// Equal reports whether all fields of dt and o are equal.
func (dt *DataType) Equal(o *DataType) bool {
	if dt == o {
		return true
	}
	if dt == nil || o == nil {
		return false
	}
	return dt.kind == o.kind &&
		dt.varName == o.varName &&
		dt.sortOrder == o.sortOrder &&
		dt.displayName == o.displayName &&
		dt.description == o.description &&
		dt.critical == o.critical &&
		slices.Equal(dt.units, o.units) &&
		dt.standardName == o.standardName &&
		dt.categoryName == o.categoryName &&
		dt.fileStdUnit == o.fileStdUnit &&
		dt.minQuestionable.Equal(o.minQuestionable) &&
		dt.minAcceptable.Equal(o.minAcceptable) &&
		dt.maxAcceptable.Equal(o.maxAcceptable) &&
		dt.maxQuestionable.Equal(o.maxQuestionable)
}

// Compare orders types by sort order, then variable name, then display name.
func (dt *DataType) Compare(o *DataType) int {
	if c := cmp.Compare(dt.sortOrder, o.sortOrder); c != 0 {
		return c
	}
	if c := strings.Compare(dt.varName, o.varName); c != 0 {
		return c
	}
	return strings.Compare(dt.displayName, o.displayName)
}

// BoundsCheck returns the bounds problem with v, or nil if v is missing
// or within bounds. Values outside the questionable bounds are errors,
// critical for critical types; values outside only the acceptable
// bounds are warnings.
func (dt *DataType) BoundsCheck(v Value) *BoundsIssue {
	if v.IsMissing() || v.Kind() != dt.kind {
		return nil
	}
	outer := SeverityError
	if dt.critical {
		outer = SeverityCritical
	}
	switch {
	case !dt.minQuestionable.IsMissing() && v.Compare(dt.minQuestionable) < 0:
		return &BoundsIssue{
			Severity: outer,
			General:  dt.displayName + ": unreasonably small value",
			Detail: fmt.Sprintf("%s: value %s is less than the lower limit of %s",
				dt.displayName, v, dt.minQuestionable),
		}
	case !dt.maxQuestionable.IsMissing() && v.Compare(dt.maxQuestionable) > 0:
		return &BoundsIssue{
			Severity: outer,
			General:  dt.displayName + ": unreasonably large value",
			Detail: fmt.Sprintf("%s: value %s is greater than the upper limit of %s",
				dt.displayName, v, dt.maxQuestionable),
		}
	case !dt.minAcceptable.IsMissing() && v.Compare(dt.minAcceptable) < 0:
		return &BoundsIssue{
			Severity: SeverityWarning,
			General:  dt.displayName + ": questionably small value",
			Detail: fmt.Sprintf("%s: value %s is less than the acceptable limit of %s",
				dt.displayName, v, dt.minAcceptable),
		}
	case !dt.maxAcceptable.IsMissing() && v.Compare(dt.maxAcceptable) > 0:
		return &BoundsIssue{
			Severity: SeverityWarning,
			General:  dt.displayName + ": questionably large value",
			Detail: fmt.Sprintf("%s: value %s is greater than the acceptable limit of %s",
				dt.displayName, v, dt.maxAcceptable),
		}
	}
	return nil
}
