package nctype

import (
	"encoding/binary"
	"fmt"
	"math"
	"reflect"
)

// Type is a NetCDF classic external data type.
type Type uint32

// NetCDF classic external types.
const (
	Byte   Type = 1
	Char   Type = 2
	Short  Type = 3
	Int    Type = 4
	Float  Type = 5
	Double Type = 6
)

var order = binary.BigEndian

// Valid reports whether t is one of the six classic types.
func (t Type) Valid() bool {
	return t >= Byte && t <= Double
}

// Size returns the size in bytes of one element of type t.
func (t Type) Size() int {
	switch t {
	case Byte, Char:
		return 1
	case Short:
		return 2
	case Int, Float:
		return 4
	case Double:
		return 8
	default:
		return 0
	}
}

func (t Type) String() string {
	switch t {
	case Byte:
		return "byte"
	case Char:
		return "char"
	case Short:
		return "short"
	case Int:
		return "int"
	case Float:
		return "float"
	case Double:
		return "double"
	default:
		return fmt.Sprintf("nc_type(%d)", uint32(t))
	}
}

// GoType returns the Go element type that corresponds to t.
func GoType(t Type) (reflect.Type, error) {
	switch t {
	case Byte:
		return reflect.TypeOf(int8(0)), nil
	case Char:
		return reflect.TypeOf(byte(0)), nil
	case Short:
		return reflect.TypeOf(int16(0)), nil
	case Int:
		return reflect.TypeOf(int32(0)), nil
	case Float:
		return reflect.TypeOf(float32(0)), nil
	case Double:
		return reflect.TypeOf(float64(0)), nil
	default:
		return nil, fmt.Errorf("unsupported type: %v", t)
	}
}

// TypeOf infers the NetCDF type and element count of an attribute value.
func TypeOf(v any) (Type, int, error) {
	switch val := v.(type) {
	case string:
		return Char, len(val), nil
	case []byte:
		return Char, len(val), nil
	case int8:
		return Byte, 1, nil
	case []int8:
		return Byte, len(val), nil
	case int16:
		return Short, 1, nil
	case []int16:
		return Short, len(val), nil
	case int32:
		return Int, 1, nil
	case []int32:
		return Int, len(val), nil
	case float32:
		return Float, 1, nil
	case []float32:
		return Float, len(val), nil
	case float64:
		return Double, 1, nil
	case []float64:
		return Double, len(val), nil
	default:
		return 0, 0, fmt.Errorf("unsupported attribute value type %T", v)
	}
}

// Encode converts a Go value to raw big-endian bytes of type t.
// Scalars are encoded as a single element.
func Encode(t Type, v any) ([]byte, error) {
	vt, _, err := TypeOf(v)
	if err != nil {
		return nil, err
	}
	if vt != t {
		return nil, fmt.Errorf("cannot encode %T as %v", v, t)
	}

	switch val := v.(type) {
	case string:
		return []byte(val), nil
	case []byte:
		out := make([]byte, len(val))
		copy(out, val)
		return out, nil
	case int8:
		return []byte{byte(val)}, nil
	case []int8:
		out := make([]byte, len(val))
		for i, x := range val {
			out[i] = byte(x)
		}
		return out, nil
	case int16:
		return EncodeInt16s([]int16{val}), nil
	case []int16:
		return EncodeInt16s(val), nil
	case int32:
		return EncodeInt32s([]int32{val}), nil
	case []int32:
		return EncodeInt32s(val), nil
	case float32:
		return EncodeFloat32s([]float32{val}), nil
	case []float32:
		return EncodeFloat32s(val), nil
	case float64:
		return EncodeFloat64s([]float64{val}), nil
	case []float64:
		return EncodeFloat64s(val), nil
	}
	return nil, fmt.Errorf("cannot encode %T", v)
}

// EncodeInt16s encodes shorts big-endian.
func EncodeInt16s(vals []int16) []byte {
	out := make([]byte, 2*len(vals))
	for i, v := range vals {
		order.PutUint16(out[2*i:], uint16(v))
	}
	return out
}

// EncodeInt32s encodes ints big-endian.
func EncodeInt32s(vals []int32) []byte {
	out := make([]byte, 4*len(vals))
	for i, v := range vals {
		order.PutUint32(out[4*i:], uint32(v))
	}
	return out
}

// EncodeFloat32s encodes floats big-endian.
func EncodeFloat32s(vals []float32) []byte {
	out := make([]byte, 4*len(vals))
	for i, v := range vals {
		order.PutUint32(out[4*i:], math.Float32bits(v))
	}
	return out
}

// EncodeFloat64s encodes doubles big-endian.
func EncodeFloat64s(vals []float64) []byte {
	out := make([]byte, 8*len(vals))
	for i, v := range vals {
		order.PutUint64(out[8*i:], math.Float64bits(v))
	}
	return out
}

// Decode converts n elements of raw big-endian data of type t to a Go value:
// string for Char, otherwise a slice of the type's Go element type.
func Decode(t Type, data []byte, n int) (any, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative element count %d", n)
	}
	if need := n * t.Size(); len(data) < need {
		return nil, fmt.Errorf("need %d bytes for %d %v values, have %d", need, n, t, len(data))
	}

	switch t {
	case Char:
		return string(data[:n]), nil
	case Byte:
		out := make([]int8, n)
		for i := range out {
			out[i] = int8(data[i])
		}
		return out, nil
	case Short:
		out := make([]int16, n)
		for i := range out {
			out[i] = int16(order.Uint16(data[2*i:]))
		}
		return out, nil
	case Int:
		return DecodeInt32s(data, n), nil
	case Float:
		out := make([]float32, n)
		for i := range out {
			out[i] = math.Float32frombits(order.Uint32(data[4*i:]))
		}
		return out, nil
	case Double:
		return DecodeFloat64s(data, n), nil
	default:
		return nil, fmt.Errorf("unsupported type: %v", t)
	}
}

// DecodeInt32s decodes n big-endian ints. The caller guarantees len(data) >= 4n.
func DecodeInt32s(data []byte, n int) []int32 {
	out := make([]int32, n)
	for i := range out {
		out[i] = int32(order.Uint32(data[4*i:]))
	}
	return out
}

// DecodeFloat64s decodes n big-endian doubles. The caller guarantees len(data) >= 8n.
func DecodeFloat64s(data []byte, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Float64frombits(order.Uint64(data[8*i:]))
	}
	return out
}
