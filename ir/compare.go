package ir

import (
	"bytes"
	"cmp"
	"math"
)

// Compare returns an integer comparing two nodes.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b, under a
// total order that refines [Equal]: Compare(a, b) == 0 exactly when
// Equal(a, b).
func Compare(a, b *Value) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}

	rankA := rank(a.Type)
	rankB := rank(b.Type)
	if rankA != rankB {
		return cmp.Compare(rankA, rankB)
	}

	switch a.Type {
	case NilType:
		return 0
	case BoolType:
		if a.Bool == b.Bool {
			return 0
		}
		if !a.Bool {
			return -1
		}
		return 1
	case IntType:
		return compareInts(a, b)
	case Float32Type:
		if c := cmp.Compare(*a.Float32, *b.Float32); c != 0 {
			return c
		}
		return cmp.Compare(math.Float32bits(*a.Float32), math.Float32bits(*b.Float32))
	case Float64Type:
		if c := cmp.Compare(*a.Float64, *b.Float64); c != 0 {
			return c
		}
		return cmp.Compare(math.Float64bits(*a.Float64), math.Float64bits(*b.Float64))
	case StringType, BinaryType:
		return bytes.Compare(a.Bytes, b.Bytes)
	case ExtType:
		if c := cmp.Compare(a.ExtTag, b.ExtTag); c != 0 {
			return c
		}
		return bytes.Compare(a.Bytes, b.Bytes)
	case ArrayType:
		return compareArrays(a, b)
	case MapType:
		return compareMaps(a, b)
	}
	return 0
}

// rank returns the sorting rank of a type.
// Order: Nil < Bool < Int < Float32 < Float64 < String < Binary < Array < Map < Ext
func rank(t Type) int {
	switch t {
	case NilType:
		return 0
	case BoolType:
		return 1
	case IntType:
		return 2
	case Float32Type:
		return 3
	case Float64Type:
		return 4
	case StringType:
		return 5
	case BinaryType:
		return 6
	case ArrayType:
		return 7
	case MapType:
		return 8
	case ExtType:
		return 9
	}
	return 100
}

func compareInts(a, b *Value) int {
	aNeg, aMag := intRep(a)
	bNeg, bMag := intRep(b)
	if aNeg != bNeg {
		if aNeg {
			return -1
		}
		return 1
	}
	if aNeg {
		// both negative: larger magnitude is smaller
		return cmp.Compare(bMag, aMag)
	}
	return cmp.Compare(aMag, bMag)
}

func compareArrays(a, b *Value) int {
	lenA := len(a.Values)
	lenB := len(b.Values)
	minLen := min(lenA, lenB)

	for i := 0; i < minLen; i++ {
		if c := Compare(a.Values[i], b.Values[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(lenA, lenB)
}

func compareMaps(a, b *Value) int {
	lenA := len(a.Keys)
	lenB := len(b.Keys)
	minLen := min(lenA, lenB)

	for i := 0; i < minLen; i++ {
		if c := Compare(a.Keys[i], b.Keys[i]); c != 0 {
			return c
		}
		if c := Compare(a.Values[i], b.Values[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(lenA, lenB)
}
