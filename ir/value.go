package ir

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"unicode/utf8"
)

// Value is one node of a decoded MessagePack tree.
//
// The payload fields used depend on Type:
//
//   - IntType: exactly one of Int64 or Uint64 is set.  Unsigned values
//     above math.MaxInt64 can only be carried by Uint64, so the full
//     signed and unsigned 64-bit ranges are distinguishable without loss.
//   - Float32Type / Float64Type: Float32 or Float64.
//   - StringType: Bytes holds the raw encoding; UTF-8 validity is
//     checked lazily by Text, not at decode time.
//   - BinaryType: Bytes.
//   - ExtType: ExtTag and Bytes.
//   - ArrayType: Values in element order.
//   - MapType: Keys and Values in parallel, entry order as decoded.
//     Keys need not be unique nor scalar.
type Value struct {
	Type Type

	Bool    bool
	Int64   *int64
	Uint64  *uint64
	Float32 *float32
	Float64 *float64

	ExtTag int8
	Bytes  []byte

	Keys   []*Value
	Values []*Value
}

type KeyVal struct {
	Key *Value
	Val *Value
}

func Nil() *Value {
	return &Value{Type: NilType}
}

func FromBool(v bool) *Value {
	return &Value{Type: BoolType, Bool: v}
}

func FromInt(v int64) *Value {
	return &Value{Type: IntType, Int64: &v}
}

// FromUint keeps the unsigned representation even when v fits in an
// int64; Equal and Hash treat the two representations as the same
// mathematical value.
func FromUint(v uint64) *Value {
	return &Value{Type: IntType, Uint64: &v}
}

func FromFloat32(v float32) *Value {
	return &Value{Type: Float32Type, Float32: &v}
}

func FromFloat64(v float64) *Value {
	return &Value{Type: Float64Type, Float64: &v}
}

func FromString(v string) *Value {
	return &Value{Type: StringType, Bytes: []byte(v)}
}

// FromStringBytes wraps raw string bytes without validating UTF-8.
func FromStringBytes(v []byte) *Value {
	return &Value{Type: StringType, Bytes: v}
}

func FromBinary(v []byte) *Value {
	return &Value{Type: BinaryType, Bytes: v}
}

func FromExt(tag int8, payload []byte) *Value {
	return &Value{Type: ExtType, ExtTag: tag, Bytes: payload}
}

func FromSlice(vs []*Value) *Value {
	return &Value{Type: ArrayType, Values: vs}
}

func FromKeyVals(kvs []KeyVal) *Value {
	res := &Value{Type: MapType}
	res.Keys = make([]*Value, len(kvs))
	res.Values = make([]*Value, len(kvs))
	for i := range kvs {
		kv := &kvs[i]
		if kv.Key == nil {
			kv.Key = Nil()
		}
		res.Keys[i] = kv.Key
		res.Values[i] = kv.Val
	}
	return res
}

// Text returns the string payload, failing if the bytes are not valid
// UTF-8.  Decoding does not validate strings; callers that render text
// go through here.
func (v *Value) Text() (string, error) {
	if v.Type != StringType {
		return "", fmt.Errorf("%w: Text on %s value", ErrType, v.Type)
	}
	if !utf8.Valid(v.Bytes) {
		return "", fmt.Errorf("%w: %d byte string", ErrInvalidUTF8, len(v.Bytes))
	}
	return string(v.Bytes), nil
}

// Len returns the number of elements for arrays and entries for maps,
// and 0 otherwise.
func (v *Value) Len() int {
	if v.Type == MapType {
		return len(v.Keys)
	}
	return len(v.Values)
}

// Clone deep-copies v.  The copy shares no memory with the original.
// Traversal is iterative, so nesting depth only costs heap.
func (v *Value) Clone() *Value {
	if v == nil {
		return nil
	}
	res := &Value{}
	type task struct {
		src *Value
		dst *Value
	}
	stack := []task{{src: v, dst: res}}
	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		src, dst := t.src, t.dst
		dst.Type = src.Type
		dst.Bool = src.Bool
		dst.ExtTag = src.ExtTag
		if src.Int64 != nil {
			i := *src.Int64
			dst.Int64 = &i
		}
		if src.Uint64 != nil {
			u := *src.Uint64
			dst.Uint64 = &u
		}
		if src.Float32 != nil {
			f := *src.Float32
			dst.Float32 = &f
		}
		if src.Float64 != nil {
			f := *src.Float64
			dst.Float64 = &f
		}
		if src.Bytes != nil {
			dst.Bytes = make([]byte, len(src.Bytes))
			copy(dst.Bytes, src.Bytes)
		}
		if src.Keys != nil {
			dst.Keys = make([]*Value, len(src.Keys))
			for i, k := range src.Keys {
				kc := &Value{}
				dst.Keys[i] = kc
				stack = append(stack, task{src: k, dst: kc})
			}
		}
		if src.Values != nil {
			dst.Values = make([]*Value, len(src.Values))
			for i, c := range src.Values {
				cc := &Value{}
				dst.Values[i] = cc
				stack = append(stack, task{src: c, dst: cc})
			}
		}
	}
	return res
}

// Check verifies the structural invariants of a tree: every node has a
// known type, integer nodes carry exactly one representation, float
// nodes carry their payload, and map key/value slices are parallel.
// A violation indicates a decoder defect and is reported as
// [ErrInvariant] so the load boundary can surface it instead of
// crashing.
func (v *Value) Check() error {
	if v == nil {
		return fmt.Errorf("%w: nil node", ErrInvariant)
	}
	stack := []*Value{v}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == nil {
			return fmt.Errorf("%w: nil child node", ErrInvariant)
		}
		switch n.Type {
		case NilType, BoolType, StringType, BinaryType, ExtType:
		case IntType:
			if (n.Int64 == nil) == (n.Uint64 == nil) {
				return fmt.Errorf("%w: integer with no single representation", ErrInvariant)
			}
		case Float32Type:
			if n.Float32 == nil {
				return fmt.Errorf("%w: float32 without payload", ErrInvariant)
			}
		case Float64Type:
			if n.Float64 == nil {
				return fmt.Errorf("%w: float64 without payload", ErrInvariant)
			}
		case ArrayType:
			if len(n.Keys) != 0 {
				return fmt.Errorf("%w: array with keys", ErrInvariant)
			}
			stack = append(stack, n.Values...)
		case MapType:
			if len(n.Keys) != len(n.Values) {
				return fmt.Errorf("%w: map with %d keys and %d values",
					ErrInvariant, len(n.Keys), len(n.Values))
			}
			stack = append(stack, n.Keys...)
			stack = append(stack, n.Values...)
		default:
			return fmt.Errorf("%w: unknown type %d", ErrInvariant, int(n.Type))
		}
	}
	return nil
}

// ScalarLiteral renders a scalar node as a short literal, reporting ok
// false for arrays, maps and ext values.  Invalid UTF-8 strings render
// with a marker rather than failing; rendering is where the lazy UTF-8
// check surfaces.
func ScalarLiteral(v *Value) (string, bool) {
	switch v.Type {
	case NilType:
		return "null", true
	case BoolType:
		return strconv.FormatBool(v.Bool), true
	case IntType:
		if v.Int64 != nil {
			return strconv.FormatInt(*v.Int64, 10), true
		}
		if v.Uint64 != nil {
			return strconv.FormatUint(*v.Uint64, 10), true
		}
		panic("ir: integer value with no representation")
	case Float32Type:
		return strconv.FormatFloat(float64(*v.Float32), 'g', -1, 32), true
	case Float64Type:
		return strconv.FormatFloat(*v.Float64, 'g', -1, 64), true
	case StringType:
		s, err := v.Text()
		if err != nil {
			return fmt.Sprintf("<invalid utf-8: %d bytes>", len(v.Bytes)), true
		}
		return s, true
	case BinaryType:
		return base64.StdEncoding.EncodeToString(v.Bytes), true
	}
	return "", false
}
