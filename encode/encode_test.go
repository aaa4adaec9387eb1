package encode

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/mpk-tools/mpk/decode"
	"github.com/mpk-tools/mpk/ir"
)

func TestBytesCanonical(t *testing.T) {
	tests := []struct {
		name     string
		v        *ir.Value
		expected []byte
	}{
		{"nil", ir.Nil(), []byte{0xc0}},
		{"false", ir.FromBool(false), []byte{0xc2}},
		{"true", ir.FromBool(true), []byte{0xc3}},

		// smallest width per value
		{"zero", ir.FromInt(0), []byte{0x00}},
		{"fixint max", ir.FromInt(127), []byte{0x7f}},
		{"uint 8", ir.FromInt(128), []byte{0xcc, 0x80}},
		{"uint 16", ir.FromInt(256), []byte{0xcd, 0x01, 0x00}},
		{"uint 32", ir.FromInt(1 << 16), []byte{0xce, 0x00, 0x01, 0x00, 0x00}},
		{"uint 64", ir.FromUint(math.MaxUint64),
			[]byte{0xcf, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
		{"small uint rep uses fixint", ir.FromUint(5), []byte{0x05}},
		{"negative fixint", ir.FromInt(-32), []byte{0xe0}},
		{"int 8", ir.FromInt(-33), []byte{0xd0, 0xdf}},
		{"int 16", ir.FromInt(-129), []byte{0xd1, 0xff, 0x7f}},
		{"int 32", ir.FromInt(-(1 << 16)), []byte{0xd2, 0xff, 0xff, 0x00, 0x00}},
		{"int 64", ir.FromInt(math.MinInt64),
			[]byte{0xd3, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}},

		{"float 32", ir.FromFloat32(1.5), []byte{0xca, 0x3f, 0xc0, 0x00, 0x00}},
		{"float 64 negative zero", ir.FromFloat64(math.Copysign(0, -1)),
			[]byte{0xcb, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}},

		{"fixstr", ir.FromString("abc"), []byte{0xa3, 'a', 'b', 'c'}},
		{"bin 8", ir.FromBinary([]byte{1, 2}), []byte{0xc4, 0x02, 0x01, 0x02}},
		{"fixext 1", ir.FromExt(5, []byte{0xaa}), []byte{0xd4, 0x05, 0xaa}},
		{"fixext 8", ir.FromExt(1, []byte{1, 2, 3, 4, 5, 6, 7, 8}),
			[]byte{0xd7, 0x01, 1, 2, 3, 4, 5, 6, 7, 8}},
		{"ext 8 odd size", ir.FromExt(5, []byte{1, 2, 3}),
			[]byte{0xc7, 0x03, 0x05, 1, 2, 3}},
		{"ext 8 empty", ir.FromExt(5, nil), []byte{0xc7, 0x00, 0x05}},

		{"empty array", ir.FromSlice(nil), []byte{0x90}},
		{"empty map", ir.FromKeyVals(nil), []byte{0x80}},
		{"array", ir.FromSlice([]*ir.Value{ir.FromInt(1), ir.FromInt(2)}),
			[]byte{0x92, 0x01, 0x02}},
		{"map keeps order",
			ir.FromKeyVals([]ir.KeyVal{
				{Key: ir.FromString("b"), Val: ir.FromInt(2)},
				{Key: ir.FromString("a"), Val: ir.FromInt(1)},
			}),
			[]byte{0x82, 0xa1, 'b', 0x02, 0xa1, 'a', 0x01}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Bytes(tt.v)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(got, tt.expected) {
				t.Errorf("Bytes() = % x, want % x", got, tt.expected)
			}
		})
	}
}

func TestWideHeaders(t *testing.T) {
	long := strings.Repeat("x", 300)
	got, err := Bytes(ir.FromString(long))
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != 0xda {
		t.Errorf("300 byte string starts with %02x, want str 16", got[0])
	}

	elems := make([]*ir.Value, 20)
	for i := range elems {
		elems[i] = ir.Nil()
	}
	got, err = Bytes(ir.FromSlice(elems))
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != 0xdc {
		t.Errorf("20 element array starts with %02x, want array 16", got[0])
	}
}

func TestRoundTrip(t *testing.T) {
	trees := []*ir.Value{
		ir.Nil(),
		ir.FromUint(math.MaxUint64),
		ir.FromStringBytes([]byte{0xff, 0xfe}),
		ir.FromKeyVals([]ir.KeyVal{
			{Key: ir.FromString("a"), Val: ir.FromSlice([]*ir.Value{
				ir.FromInt(-1000),
				ir.FromFloat64(math.Copysign(0, -1)),
				ir.FromBinary([]byte{0, 1, 2}),
				ir.FromExt(-7, []byte{9, 9}),
			})},
			{Key: ir.FromSlice([]*ir.Value{ir.FromInt(1)}), Val: ir.Nil()},
			{Key: ir.FromString("a"), Val: ir.FromBool(true)},
		}),
	}
	for _, orig := range trees {
		data, err := Bytes(orig)
		if err != nil {
			t.Fatal(err)
		}
		back, err := decode.Decode(data)
		if err != nil {
			t.Fatalf("decoding % x: %v", data, err)
		}
		if !ir.Equal(orig, back) {
			t.Errorf("round trip changed tree encoded as % x", data)
		}
	}
}

func TestCanonicalInputStable(t *testing.T) {
	// decode-encode of already canonical bytes is the identity
	data := []byte{0x82, 0xa1, 'b', 0x02, 0xa1, 'a', 0x92, 0xc0, 0xc3}
	v, err := decode.Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	out, err := Bytes(v)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, data) {
		t.Errorf("re-encoding changed canonical bytes: % x -> % x", data, out)
	}
}

func TestEncodeErrors(t *testing.T) {
	if _, err := Bytes(nil); err == nil {
		t.Error("Bytes(nil) = nil error")
	}
	if _, err := Bytes(&ir.Value{Type: ir.IntType}); err == nil {
		t.Error("Bytes on int with no representation = nil error")
	}
	if _, err := Bytes(&ir.Value{Type: ir.MapType, Keys: []*ir.Value{ir.Nil()}}); err == nil {
		t.Error("Bytes on lopsided map = nil error")
	}
}
