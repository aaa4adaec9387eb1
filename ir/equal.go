package ir

import (
	"bytes"
	"math"
)

// Equal reports structural equality of two trees.
//
// The relation is a true equivalence and is consistent with
// [Value.Hash]: Equal(a, b) implies a.Hash() == b.Hash().  Rules:
//
//   - Values of different kinds are never equal; in particular Nil,
//     Bool false and Int 0 are mutually distinct, and an empty Array is
//     not an empty Map.
//   - Integers compare by mathematical value across the signed and
//     unsigned representations.
//   - Floats compare by IEEE bit pattern: 0.0 and -0.0 differ, NaN
//     equals an identical NaN.  Floats never equal integers.
//   - Strings and binaries compare byte for byte.
//   - Arrays compare element-wise in order.
//   - Maps compare entry-wise in stored order, keys and values both.
//     Entry order is significant; this mirrors the decoder's verbatim
//     entry preservation.
//   - Ext values compare by tag and payload.
//
// Both arguments may be nil; two nils are equal.  Traversal uses an
// explicit stack so adversarial nesting depth cannot overflow the
// goroutine stack.  Malformed integer nodes panic; run [Value.Check]
// at the decode boundary first.
func Equal(a, b *Value) bool {
	type pair struct {
		a, b *Value
	}
	stack := []pair{{a, b}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if p.a == p.b {
			continue
		}
		if p.a == nil || p.b == nil {
			return false
		}
		if p.a.Type != p.b.Type {
			return false
		}
		switch p.a.Type {
		case NilType:
		case BoolType:
			if p.a.Bool != p.b.Bool {
				return false
			}
		case IntType:
			aNeg, aMag := intRep(p.a)
			bNeg, bMag := intRep(p.b)
			if aNeg != bNeg || aMag != bMag {
				return false
			}
		case Float32Type:
			if math.Float32bits(*p.a.Float32) != math.Float32bits(*p.b.Float32) {
				return false
			}
		case Float64Type:
			if math.Float64bits(*p.a.Float64) != math.Float64bits(*p.b.Float64) {
				return false
			}
		case StringType, BinaryType:
			if !bytes.Equal(p.a.Bytes, p.b.Bytes) {
				return false
			}
		case ExtType:
			if p.a.ExtTag != p.b.ExtTag || !bytes.Equal(p.a.Bytes, p.b.Bytes) {
				return false
			}
		case ArrayType:
			if len(p.a.Values) != len(p.b.Values) {
				return false
			}
			for i := range p.a.Values {
				stack = append(stack, pair{p.a.Values[i], p.b.Values[i]})
			}
		case MapType:
			if len(p.a.Keys) != len(p.b.Keys) {
				return false
			}
			for i := range p.a.Keys {
				stack = append(stack, pair{p.a.Keys[i], p.b.Keys[i]})
				stack = append(stack, pair{p.a.Values[i], p.b.Values[i]})
			}
		default:
			panic("ir: Equal: unhandled type " + p.a.Type.String())
		}
	}
	return true
}

// intRep maps an integer node to its canonical (sign, magnitude) form
// so that the signed and unsigned representations of the same
// mathematical value coincide.  For negative v the magnitude is -v.
func intRep(v *Value) (neg bool, mag uint64) {
	switch {
	case v.Int64 != nil:
		i := *v.Int64
		if i < 0 {
			// -(i+1)+1 avoids overflow at MinInt64.
			return true, uint64(-(i + 1)) + 1
		}
		return false, uint64(i)
	case v.Uint64 != nil:
		return false, *v.Uint64
	}
	panic("ir: integer value with no representation")
}
