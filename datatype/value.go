package datatype

import (
	"cmp"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Kind is the payload kind of a DataType.
type Kind uint8

const (
	KindString Kind = iota + 1
	KindChar
	KindInt
	KindDouble
)

// String returns the data_class name used in type descriptions.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "String"
	case KindChar:
		return "Character"
	case KindInt:
		return "Integer"
	case KindDouble:
		return "Double"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// ParseKind parses a data_class name.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "String":
		return KindString, nil
	case "Character":
		return KindChar, nil
	case "Integer":
		return KindInt, nil
	case "Double":
		return KindDouble, nil
	default:
		return 0, fmt.Errorf("%w: unknown data_class %q", ErrInvalidDescription, s)
	}
}

// Missing-value sentinels used in files and dataset metadata.
const (
	MissingString      = ""
	MissingChar   byte = ' '
	MissingInt         = -99
	MissingDouble      = -999.0
)

// Sentinel returns the missing-value sentinel of the kind.
func (k Kind) Sentinel() Value {
	switch k {
	case KindString:
		return StringValue(MissingString)
	case KindChar:
		return CharValue(MissingChar)
	case KindInt:
		return IntValue(MissingInt)
	case KindDouble:
		return DoubleValue(MissingDouble)
	default:
		return Value{}
	}
}

// Value is an optional value of one of the four payload kinds.
// The zero Value is missing.
type Value struct {
	kind Kind
	str  string
	ch   byte
	i    int
	d    float64
}

// Missing returns the missing value.
func Missing() Value { return Value{} }

// StringValue returns a string value.
func StringValue(s string) Value { return Value{kind: KindString, str: s} }

// CharValue returns a character value.
func CharValue(c byte) Value { return Value{kind: KindChar, ch: c} }

// IntValue returns an integer value.
func IntValue(i int) Value { return Value{kind: KindInt, i: i} }

// DoubleValue returns a floating-point value. NaN is stored as missing.
func DoubleValue(d float64) Value {
	if math.IsNaN(d) {
		return Value{}
	}
	return Value{kind: KindDouble, d: d}
}

// Kind returns the payload kind, or 0 for a missing value.
func (v Value) Kind() Kind { return v.kind }

// IsMissing reports whether v holds no value.
func (v Value) IsMissing() bool { return v.kind == 0 }

// AsString returns the string payload.
func (v Value) AsString() (string, bool) { return v.str, v.kind == KindString }

// AsChar returns the character payload.
func (v Value) AsChar() (byte, bool) { return v.ch, v.kind == KindChar }

// AsInt returns the integer payload.
func (v Value) AsInt() (int, bool) { return v.i, v.kind == KindInt }

// AsDouble returns the floating-point payload.
func (v Value) AsDouble() (float64, bool) { return v.d, v.kind == KindDouble }

// Number returns the payload of an Int or Double value as float64.
func (v Value) Number() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindDouble:
		return v.d, true
	default:
		return 0, false
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindChar:
		return string(v.ch)
	case KindInt:
		return strconv.Itoa(v.i)
	case KindDouble:
		return strconv.FormatFloat(v.d, 'g', -1, 64)
	default:
		return "<missing>"
	}
}

// Compare orders two values: missing first, then by kind, then by payload.
func (v Value) Compare(o Value) int {
	if c := cmp.Compare(v.kind, o.kind); c != 0 {
		return c
	}
	switch v.kind {
	case KindString:
		return strings.Compare(v.str, o.str)
	case KindChar:
		return cmp.Compare(v.ch, o.ch)
	case KindInt:
		return cmp.Compare(v.i, o.i)
	case KindDouble:
		return cmp.Compare(v.d, o.d)
	default:
		return 0
	}
}

// Equal reports exact equality.
func (v Value) Equal(o Value) bool {
	return v.Compare(o) == 0
}

// CloseTo reports equality with tolerance on doubles; other kinds compare exactly.
func (v Value) CloseTo(o Value, rtol, atol float64) bool {
	if v.kind == KindDouble && o.kind == KindDouble {
		return CloseTo(v.d, o.d, rtol, atol)
	}
	return v.Equal(o)
}

// ParseValue parses s as a value of kind k.
func ParseValue(k Kind, s string) (Value, error) {
	switch k {
	case KindString:
		return StringValue(s), nil
	case KindChar:
		if len(s) != 1 {
			return Value{}, fmt.Errorf("%q is not a single character", s)
		}
		return CharValue(s[0]), nil
	case KindInt:
		i, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return Value{}, fmt.Errorf("%q is not an integer", s)
		}
		return IntValue(i), nil
	case KindDouble:
		d, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || math.IsNaN(d) {
			return Value{}, fmt.Errorf("%q is not a number", s)
		}
		return DoubleValue(d), nil
	default:
		return Value{}, fmt.Errorf("unknown kind %v", k)
	}
}

// CloseTo reports whether a and b differ by no more than
// atol + rtol * max(|a|, |b|). NaNs are close to each other.
func CloseTo(a, b, rtol, atol float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	if a == b {
		return true
	}
	diff := math.Abs(a - b)
	return diff <= atol+rtol*math.Max(math.Abs(a), math.Abs(b))
}

// LongitudeCloseTo is CloseTo for longitudes, treating values 360 degrees
// apart as equal.
func LongitudeCloseTo(a, b, rtol, atol float64) bool {
	if CloseTo(a, b, rtol, atol) {
		return true
	}
	d := math.Mod(a-b, 360.0)
	if d < 0 {
		d += 360.0
	}
	return CloseTo(d, 0, 0, atol) || CloseTo(d, 360.0, rtol, atol)
}

// NameKey normalizes a type name for lookup: upper case with everything
// but letters and digits removed.
func NameKey(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}
