package ir

import (
	"math"
	"testing"
)

func kv(k string, v *Value) KeyVal {
	return KeyVal{Key: FromString(k), Val: v}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name     string
		a, b     *Value
		expected bool
	}{
		{"nil == nil", Nil(), Nil(), true},
		{"nil != false", Nil(), FromBool(false), false},
		{"false != 0", FromBool(false), FromInt(0), false},
		{"true == true", FromBool(true), FromBool(true), true},

		// integers compare by mathematical value across representations
		{"int == int", FromInt(42), FromInt(42), true},
		{"int != int", FromInt(42), FromInt(43), false},
		{"int == uint same value", FromInt(42), FromUint(42), true},
		{"max int64 across reps", FromInt(math.MaxInt64), FromUint(math.MaxInt64), true},
		{"uint beyond int64 range", FromUint(math.MaxUint64), FromInt(-1), false},
		{"min int64", FromInt(math.MinInt64), FromInt(math.MinInt64), true},
		{"-1 != 1", FromInt(-1), FromInt(1), false},

		// floats compare by bit pattern, and widths are distinct kinds
		{"float64 == float64", FromFloat64(1.5), FromFloat64(1.5), true},
		{"0.0 != -0.0", FromFloat64(0.0), FromFloat64(math.Copysign(0, -1)), false},
		{"NaN == NaN same bits", FromFloat64(math.NaN()), FromFloat64(math.NaN()), true},
		{"float32 != float64", FromFloat32(1.5), FromFloat64(1.5), false},
		{"float32 0.0 != -0.0", FromFloat32(0), FromFloat32(float32(math.Copysign(0, -1))), false},
		{"int != float", FromInt(1), FromFloat64(1), false},

		{"string == string", FromString("abc"), FromString("abc"), true},
		{"string != string", FromString("abc"), FromString("abd"), false},
		{"empty string == empty string", FromString(""), FromString(""), true},
		{"string != binary same bytes", FromString("abc"), FromBinary([]byte("abc")), false},
		{"invalid utf-8 by bytes", FromStringBytes([]byte{0xff, 0xfe}), FromStringBytes([]byte{0xff, 0xfe}), true},

		{"binary == binary", FromBinary([]byte{1, 2}), FromBinary([]byte{1, 2}), true},
		{"binary != binary", FromBinary([]byte{1, 2}), FromBinary([]byte{1, 3}), false},

		{"ext == ext", FromExt(7, []byte{1}), FromExt(7, []byte{1}), true},
		{"ext tag differs", FromExt(7, []byte{1}), FromExt(8, []byte{1}), false},
		{"ext payload differs", FromExt(7, []byte{1}), FromExt(7, []byte{2}), false},

		{"[] == []", FromSlice(nil), FromSlice(nil), true},
		{"[] != [nil]", FromSlice(nil), FromSlice([]*Value{Nil()}), false},
		{"[[]] != []", FromSlice([]*Value{FromSlice(nil)}), FromSlice(nil), false},
		{"[1,2] == [1,2]", FromSlice([]*Value{FromInt(1), FromInt(2)}), FromSlice([]*Value{FromInt(1), FromInt(2)}), true},
		{"[1,2] != [2,1]", FromSlice([]*Value{FromInt(1), FromInt(2)}), FromSlice([]*Value{FromInt(2), FromInt(1)}), false},
		{"array != map", FromSlice(nil), FromKeyVals(nil), false},

		{"{} == {}", FromKeyVals(nil), FromKeyVals(nil), true},
		{"same entries same order",
			FromKeyVals([]KeyVal{kv("a", FromInt(1)), kv("b", FromInt(2))}),
			FromKeyVals([]KeyVal{kv("a", FromInt(1)), kv("b", FromInt(2))}),
			true},
		{"same entries different order",
			FromKeyVals([]KeyVal{kv("a", FromInt(1)), kv("b", FromInt(2))}),
			FromKeyVals([]KeyVal{kv("b", FromInt(2)), kv("a", FromInt(1))}),
			false},
		{"value differs",
			FromKeyVals([]KeyVal{kv("a", FromInt(1))}),
			FromKeyVals([]KeyVal{kv("a", FromInt(2))}),
			false},
		{"key differs",
			FromKeyVals([]KeyVal{kv("a", FromInt(1))}),
			FromKeyVals([]KeyVal{kv("b", FromInt(1))}),
			false},
		{"composite keys",
			FromKeyVals([]KeyVal{{Key: FromSlice([]*Value{FromInt(1)}), Val: Nil()}}),
			FromKeyVals([]KeyVal{{Key: FromSlice([]*Value{FromInt(1)}), Val: Nil()}}),
			true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.expected {
				t.Errorf("Equal() = %v, want %v", got, tt.expected)
			}
			// symmetry
			if got := Equal(tt.b, tt.a); got != tt.expected {
				t.Errorf("Equal(b, a) = %v, want %v", got, tt.expected)
			}
			// reflexivity
			if !Equal(tt.a, tt.a) || !Equal(tt.b, tt.b) {
				t.Errorf("Equal is not reflexive")
			}
			// equal values must hash equal
			if tt.expected && tt.a.Hash() != tt.b.Hash() {
				t.Errorf("Hash() differs for equal values: %x vs %x", tt.a.Hash(), tt.b.Hash())
			}
		})
	}
}

func TestEqualDeep(t *testing.T) {
	mk := func() *Value {
		v := FromInt(7)
		for i := 0; i < 10000; i++ {
			v = FromSlice([]*Value{v})
		}
		return v
	}
	a, b := mk(), mk()
	if !Equal(a, b) {
		t.Fatal("deep equal trees reported unequal")
	}
	if a.Hash() != b.Hash() {
		t.Fatal("deep equal trees hash differently")
	}
}

func TestHashDiscriminates(t *testing.T) {
	// distinct values whose hashes should (overwhelmingly) differ; a
	// shared-prefix collision here means the stream is ambiguous
	vals := []*Value{
		Nil(),
		FromBool(false),
		FromBool(true),
		FromInt(0),
		FromInt(1),
		FromInt(-1),
		FromUint(math.MaxUint64),
		FromFloat32(0),
		FromFloat64(0),
		FromFloat64(math.Copysign(0, -1)),
		FromString(""),
		FromString("a"),
		FromBinary(nil),
		FromBinary([]byte("a")),
		FromExt(0, nil),
		FromSlice(nil),
		FromSlice([]*Value{FromSlice(nil)}),
		FromSlice([]*Value{FromString("ab"), FromString("c")}),
		FromSlice([]*Value{FromString("a"), FromString("bc")}),
		FromKeyVals(nil),
		FromKeyVals([]KeyVal{kv("a", FromInt(1))}),
	}
	seen := map[uint64]int{}
	for i, v := range vals {
		h := v.Hash()
		if j, ok := seen[h]; ok {
			t.Errorf("values %d and %d hash equal (%x) but are distinct", i, j, h)
		}
		seen[h] = i
	}
}

func TestHashStable(t *testing.T) {
	v := FromKeyVals([]KeyVal{
		kv("a", FromSlice([]*Value{FromInt(1), FromFloat64(2.5)})),
		kv("b", FromString("x")),
	})
	h := v.Hash()
	for i := 0; i < 10; i++ {
		if got := v.Hash(); got != h {
			t.Fatalf("Hash() not stable: %x vs %x", got, h)
		}
	}
	if got := v.Clone().Hash(); got != h {
		t.Fatalf("clone hashes differently: %x vs %x", got, h)
	}
}
