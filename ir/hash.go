package ir

import (
	"encoding/binary"
	"hash/maphash"
	"math"
)

// hashSeed is shared so hashes are comparable across calls within one
// process.  Values are not stable across processes.
var hashSeed = maphash.MakeSeed()

// Hash returns a 64-bit structural hash of the tree, consistent with
// [Equal].
//
// Every node contributes a leading kind discriminant before its
// payload, and containers contribute their child count, so an empty
// Array, an empty Map and Nil all hash apart, as do [] and [[]].
// Integers hash their canonical (sign, magnitude) form, floats hash
// their IEEE bit pattern.  The tree is folded into a single hash state
// in depth-first order with an explicit stack; since child counts and
// byte lengths are included, the flattened stream of two trees is
// identical exactly when the trees are Equal.
//
// It panics if n is nil or an integer node is malformed.
func (n *Value) Hash() uint64 {
	if n == nil {
		panic("ir: Hash called on nil value")
	}
	var h maphash.Hash
	h.SetSeed(hashSeed)
	var b [8]byte
	stack := []*Value{n}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		h.WriteByte(byte(v.Type))
		switch v.Type {
		case NilType:
		case BoolType:
			if v.Bool {
				h.WriteByte(1)
			} else {
				h.WriteByte(0)
			}
		case IntType:
			neg, mag := intRep(v)
			if neg {
				h.WriteByte(1)
			} else {
				h.WriteByte(0)
			}
			binary.LittleEndian.PutUint64(b[:], mag)
			h.Write(b[:])
		case Float32Type:
			binary.LittleEndian.PutUint32(b[:4], math.Float32bits(*v.Float32))
			h.Write(b[:4])
		case Float64Type:
			binary.LittleEndian.PutUint64(b[:], math.Float64bits(*v.Float64))
			h.Write(b[:])
		case StringType, BinaryType:
			binary.LittleEndian.PutUint64(b[:], uint64(len(v.Bytes)))
			h.Write(b[:])
			h.Write(v.Bytes)
		case ExtType:
			h.WriteByte(byte(v.ExtTag))
			binary.LittleEndian.PutUint64(b[:], uint64(len(v.Bytes)))
			h.Write(b[:])
			h.Write(v.Bytes)
		case ArrayType:
			binary.LittleEndian.PutUint64(b[:], uint64(len(v.Values)))
			h.Write(b[:])
			for i := len(v.Values) - 1; i >= 0; i-- {
				stack = append(stack, v.Values[i])
			}
		case MapType:
			binary.LittleEndian.PutUint64(b[:], uint64(len(v.Keys)))
			h.Write(b[:])
			for i := len(v.Keys) - 1; i >= 0; i-- {
				stack = append(stack, v.Values[i])
				stack = append(stack, v.Keys[i])
			}
		default:
			panic("ir: Hash: unhandled type " + v.Type.String())
		}
	}
	return h.Sum64()
}
