// Package encode renders [ir.Value] trees back into canonical
// MessagePack bytes: every value uses its smallest encoding, so
// decode-encode-decode round trips yield structurally equal trees and
// canonical inputs round trip byte for byte.
package encode

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/mpk-tools/mpk/ir"
)

// Encode writes the canonical MessagePack encoding of v to w.
func Encode(v *ir.Value, w io.Writer) error {
	d, err := Bytes(v)
	if err != nil {
		return err
	}
	_, err = w.Write(d)
	return err
}

// Bytes returns the canonical MessagePack encoding of v.  Emission is
// a pre-order walk over an explicit stack; container headers carry the
// child counts, so no back-patching is needed.
func Bytes(v *ir.Value) ([]byte, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: nil root", ir.ErrInvariant)
	}
	e := &encoder{}
	stack := []*ir.Value{v}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if err := e.emit(n); err != nil {
			return nil, err
		}
		switch n.Type {
		case ir.ArrayType:
			for i := len(n.Values) - 1; i >= 0; i-- {
				stack = append(stack, n.Values[i])
			}
		case ir.MapType:
			for i := len(n.Keys) - 1; i >= 0; i-- {
				stack = append(stack, n.Values[i])
				stack = append(stack, n.Keys[i])
			}
		}
	}
	return e.out, nil
}

type encoder struct {
	out []byte
}

// emit writes one scalar, or one container header.
func (e *encoder) emit(v *ir.Value) error {
	switch v.Type {
	case ir.NilType:
		e.out = append(e.out, 0xc0)
	case ir.BoolType:
		if v.Bool {
			e.out = append(e.out, 0xc3)
		} else {
			e.out = append(e.out, 0xc2)
		}
	case ir.IntType:
		return e.emitInt(v)
	case ir.Float32Type:
		e.out = append(e.out, 0xca)
		e.out = binary.BigEndian.AppendUint32(e.out, math.Float32bits(*v.Float32))
	case ir.Float64Type:
		e.out = append(e.out, 0xcb)
		e.out = binary.BigEndian.AppendUint64(e.out, math.Float64bits(*v.Float64))
	case ir.StringType:
		n := len(v.Bytes)
		switch {
		case n <= 31:
			e.out = append(e.out, 0xa0|byte(n))
		case n <= 0xff:
			e.out = append(e.out, 0xd9, byte(n))
		case n <= 0xffff:
			e.out = append(e.out, 0xda)
			e.out = binary.BigEndian.AppendUint16(e.out, uint16(n))
		default:
			e.out = append(e.out, 0xdb)
			e.out = binary.BigEndian.AppendUint32(e.out, uint32(n))
		}
		e.out = append(e.out, v.Bytes...)
	case ir.BinaryType:
		n := len(v.Bytes)
		switch {
		case n <= 0xff:
			e.out = append(e.out, 0xc4, byte(n))
		case n <= 0xffff:
			e.out = append(e.out, 0xc5)
			e.out = binary.BigEndian.AppendUint16(e.out, uint16(n))
		default:
			e.out = append(e.out, 0xc6)
			e.out = binary.BigEndian.AppendUint32(e.out, uint32(n))
		}
		e.out = append(e.out, v.Bytes...)
	case ir.ExtType:
		return e.emitExt(v)
	case ir.ArrayType:
		n := len(v.Values)
		switch {
		case n <= 15:
			e.out = append(e.out, 0x90|byte(n))
		case n <= 0xffff:
			e.out = append(e.out, 0xdc)
			e.out = binary.BigEndian.AppendUint16(e.out, uint16(n))
		default:
			e.out = append(e.out, 0xdd)
			e.out = binary.BigEndian.AppendUint32(e.out, uint32(n))
		}
	case ir.MapType:
		if len(v.Keys) != len(v.Values) {
			return fmt.Errorf("%w: map with %d keys and %d values",
				ir.ErrInvariant, len(v.Keys), len(v.Values))
		}
		n := len(v.Keys)
		switch {
		case n <= 15:
			e.out = append(e.out, 0x80|byte(n))
		case n <= 0xffff:
			e.out = append(e.out, 0xde)
			e.out = binary.BigEndian.AppendUint16(e.out, uint16(n))
		default:
			e.out = append(e.out, 0xdf)
			e.out = binary.BigEndian.AppendUint32(e.out, uint32(n))
		}
	default:
		return fmt.Errorf("%w: unknown type %d", ir.ErrInvariant, int(v.Type))
	}
	return nil
}

func (e *encoder) emitInt(v *ir.Value) error {
	switch {
	case v.Uint64 != nil:
		u := *v.Uint64
		e.emitUint(u)
	case v.Int64 != nil:
		i := *v.Int64
		if i >= 0 {
			e.emitUint(uint64(i))
			return nil
		}
		switch {
		case i >= -32:
			e.out = append(e.out, byte(i))
		case i >= math.MinInt8:
			e.out = append(e.out, 0xd0, byte(int8(i)))
		case i >= math.MinInt16:
			e.out = append(e.out, 0xd1)
			e.out = binary.BigEndian.AppendUint16(e.out, uint16(int16(i)))
		case i >= math.MinInt32:
			e.out = append(e.out, 0xd2)
			e.out = binary.BigEndian.AppendUint32(e.out, uint32(int32(i)))
		default:
			e.out = append(e.out, 0xd3)
			e.out = binary.BigEndian.AppendUint64(e.out, uint64(i))
		}
	default:
		return fmt.Errorf("%w: integer with no representation", ir.ErrInvariant)
	}
	return nil
}

func (e *encoder) emitUint(u uint64) {
	switch {
	case u <= 0x7f:
		e.out = append(e.out, byte(u))
	case u <= 0xff:
		e.out = append(e.out, 0xcc, byte(u))
	case u <= 0xffff:
		e.out = append(e.out, 0xcd)
		e.out = binary.BigEndian.AppendUint16(e.out, uint16(u))
	case u <= 0xffffffff:
		e.out = append(e.out, 0xce)
		e.out = binary.BigEndian.AppendUint32(e.out, uint32(u))
	default:
		e.out = append(e.out, 0xcf)
		e.out = binary.BigEndian.AppendUint64(e.out, u)
	}
}

func (e *encoder) emitExt(v *ir.Value) error {
	n := len(v.Bytes)
	switch n {
	case 1:
		e.out = append(e.out, 0xd4)
	case 2:
		e.out = append(e.out, 0xd5)
	case 4:
		e.out = append(e.out, 0xd6)
	case 8:
		e.out = append(e.out, 0xd7)
	case 16:
		e.out = append(e.out, 0xd8)
	default:
		switch {
		case n <= 0xff:
			e.out = append(e.out, 0xc7, byte(n))
		case n <= 0xffff:
			e.out = append(e.out, 0xc8)
			e.out = binary.BigEndian.AppendUint16(e.out, uint16(n))
		default:
			e.out = append(e.out, 0xc9)
			e.out = binary.BigEndian.AppendUint32(e.out, uint32(n))
		}
	}
	e.out = append(e.out, byte(v.ExtTag))
	e.out = append(e.out, v.Bytes...)
	return nil
}
