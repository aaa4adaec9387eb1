package decode

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/mpk-tools/mpk/ir"
)

func TestDecodeScalars(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected *ir.Value
	}{
		{"nil", []byte{0xc0}, ir.Nil()},
		{"false", []byte{0xc2}, ir.FromBool(false)},
		{"true", []byte{0xc3}, ir.FromBool(true)},

		{"positive fixint", []byte{0x00}, ir.FromInt(0)},
		{"positive fixint max", []byte{0x7f}, ir.FromInt(127)},
		{"negative fixint", []byte{0xff}, ir.FromInt(-1)},
		{"negative fixint min", []byte{0xe0}, ir.FromInt(-32)},
		{"uint 8", []byte{0xcc, 0xff}, ir.FromInt(255)},
		{"uint 16", []byte{0xcd, 0x01, 0x00}, ir.FromInt(256)},
		{"uint 32", []byte{0xce, 0x00, 0x01, 0x00, 0x00}, ir.FromInt(65536)},
		{"uint 64 in int64 range",
			[]byte{0xcf, 0x7f, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
			ir.FromInt(math.MaxInt64)},
		{"uint 64 above int64 range",
			[]byte{0xcf, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
			ir.FromUint(math.MaxUint64)},
		{"int 8", []byte{0xd0, 0x80}, ir.FromInt(-128)},
		{"int 16", []byte{0xd1, 0xff, 0x00}, ir.FromInt(-256)},
		{"int 32", []byte{0xd2, 0xff, 0xff, 0x00, 0x00}, ir.FromInt(-65536)},
		{"int 64",
			[]byte{0xd3, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
			ir.FromInt(math.MinInt64)},

		{"float 32", []byte{0xca, 0x3f, 0xc0, 0x00, 0x00}, ir.FromFloat32(1.5)},
		{"float 64",
			[]byte{0xcb, 0x3f, 0xf8, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
			ir.FromFloat64(1.5)},
		{"float 64 negative zero",
			[]byte{0xcb, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
			ir.FromFloat64(math.Copysign(0, -1))},

		{"fixstr empty", []byte{0xa0}, ir.FromString("")},
		{"fixstr", []byte{0xa3, 'a', 'b', 'c'}, ir.FromString("abc")},
		{"str 8", []byte{0xd9, 0x03, 'a', 'b', 'c'}, ir.FromString("abc")},
		{"str 16", []byte{0xda, 0x00, 0x03, 'a', 'b', 'c'}, ir.FromString("abc")},
		{"str 32", []byte{0xdb, 0x00, 0x00, 0x00, 0x03, 'a', 'b', 'c'}, ir.FromString("abc")},
		{"str invalid utf-8 kept", []byte{0xa2, 0xff, 0xfe}, ir.FromStringBytes([]byte{0xff, 0xfe})},

		{"bin 8", []byte{0xc4, 0x02, 0x01, 0x02}, ir.FromBinary([]byte{1, 2})},
		{"bin 16", []byte{0xc5, 0x00, 0x01, 0x07}, ir.FromBinary([]byte{7})},
		{"bin 32", []byte{0xc6, 0x00, 0x00, 0x00, 0x00}, ir.FromBinary(nil)},

		{"fixext 1", []byte{0xd4, 0x05, 0xaa}, ir.FromExt(5, []byte{0xaa})},
		{"fixext 2", []byte{0xd5, 0x05, 0xaa, 0xbb}, ir.FromExt(5, []byte{0xaa, 0xbb})},
		{"fixext 4", []byte{0xd6, 0xff, 1, 2, 3, 4}, ir.FromExt(-1, []byte{1, 2, 3, 4})},
		{"ext 8", []byte{0xc7, 0x01, 0x05, 0xaa}, ir.FromExt(5, []byte{0xaa})},
		{"ext 16", []byte{0xc8, 0x00, 0x01, 0x05, 0xaa}, ir.FromExt(5, []byte{0xaa})},
		{"ext 32", []byte{0xc9, 0x00, 0x00, 0x00, 0x01, 0x05, 0xaa}, ir.FromExt(5, []byte{0xaa})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.data)
			if err != nil {
				t.Fatal(err)
			}
			if !ir.Equal(got, tt.expected) {
				t.Errorf("Decode() mismatch")
			}
			if err := got.Check(); err != nil {
				t.Errorf("Check() = %v", err)
			}
		})
	}
}

func TestDecodeContainers(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected *ir.Value
	}{
		{"empty array", []byte{0x90}, ir.FromSlice(nil)},
		{"empty map", []byte{0x80}, ir.FromKeyVals(nil)},
		{"fixarray", []byte{0x92, 0x01, 0x02},
			ir.FromSlice([]*ir.Value{ir.FromInt(1), ir.FromInt(2)})},
		{"array 16", []byte{0xdc, 0x00, 0x01, 0xc0},
			ir.FromSlice([]*ir.Value{ir.Nil()})},
		{"array 32", []byte{0xdd, 0x00, 0x00, 0x00, 0x01, 0xc0},
			ir.FromSlice([]*ir.Value{ir.Nil()})},
		{"fixmap", []byte{0x81, 0xa1, 'a', 0x01},
			ir.FromKeyVals([]ir.KeyVal{{Key: ir.FromString("a"), Val: ir.FromInt(1)}})},
		{"map 16", []byte{0xde, 0x00, 0x01, 0xa1, 'a', 0x01},
			ir.FromKeyVals([]ir.KeyVal{{Key: ir.FromString("a"), Val: ir.FromInt(1)}})},
		{"map entry order kept", []byte{0x82, 0xa1, 'b', 0x02, 0xa1, 'a', 0x01},
			ir.FromKeyVals([]ir.KeyVal{
				{Key: ir.FromString("b"), Val: ir.FromInt(2)},
				{Key: ir.FromString("a"), Val: ir.FromInt(1)},
			})},
		{"composite map key", []byte{0x81, 0x91, 0x01, 0xc0},
			ir.FromKeyVals([]ir.KeyVal{
				{Key: ir.FromSlice([]*ir.Value{ir.FromInt(1)}), Val: ir.Nil()},
			})},
		{"duplicate keys kept", []byte{0x82, 0xa1, 'a', 0x01, 0xa1, 'a', 0x02},
			ir.FromKeyVals([]ir.KeyVal{
				{Key: ir.FromString("a"), Val: ir.FromInt(1)},
				{Key: ir.FromString("a"), Val: ir.FromInt(2)},
			})},
		{"nested", []byte{0x91, 0x81, 0xa1, 'a', 0x92, 0xc2, 0xc3},
			ir.FromSlice([]*ir.Value{
				ir.FromKeyVals([]ir.KeyVal{{
					Key: ir.FromString("a"),
					Val: ir.FromSlice([]*ir.Value{ir.FromBool(false), ir.FromBool(true)}),
				}}),
			})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.data)
			if err != nil {
				t.Fatal(err)
			}
			if !ir.Equal(got, tt.expected) {
				t.Errorf("Decode() mismatch")
			}
			if err := got.Check(); err != nil {
				t.Errorf("Check() = %v", err)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected error
	}{
		{"empty input", nil, ErrEmpty},
		{"reserved tag", []byte{0xc1}, ErrReserved},
		{"reserved inside array", []byte{0x91, 0xc1}, ErrReserved},
		{"truncated str header", []byte{0xd9}, ErrTruncated},
		{"truncated str payload", []byte{0xa3, 'a'}, ErrLength},
		{"truncated uint", []byte{0xcd, 0x01}, ErrTruncated},
		{"truncated float", []byte{0xcb, 0x00}, ErrTruncated},
		{"array count beyond bytes", []byte{0x92, 0x01}, ErrLength},
		{"truncated array element", []byte{0x92, 0xcd, 0x01}, ErrTruncated},
		{"truncated map value", []byte{0x81, 0xa1, 'a'}, ErrTruncated},
		{"truncated ext", []byte{0xd6, 0x01, 0xaa}, ErrLength},
		{"array length beyond input", []byte{0xdc, 0xff, 0xff, 0x01}, ErrLength},
		{"map length beyond input", []byte{0xde, 0xff, 0xff, 0x01}, ErrLength},
		{"str 32 length overflow", []byte{0xdb, 0xff, 0xff, 0xff, 0xff}, ErrLength},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data)
			if !errors.Is(err, tt.expected) {
				t.Errorf("Decode() = %v, want %v", err, tt.expected)
			}
			var de *Error
			if !errors.As(err, &de) {
				t.Errorf("Decode() error carries no offset: %v", err)
			}
		})
	}
}

func TestDecodeTrailingIgnored(t *testing.T) {
	data := []byte{0x01, 0xc1, 0xc1, 0xc1}
	v, n, err := DecodeFirst(data)
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(v, ir.FromInt(1)) {
		t.Error("DecodeFirst() mismatch")
	}
	if n != 1 {
		t.Errorf("DecodeFirst() consumed %d bytes, want 1", n)
	}
	// Decode ignores the garbage after the first value entirely
	if _, err := Decode(data); err != nil {
		t.Errorf("Decode() = %v, want nil", err)
	}
}

func TestDecodeDeepNesting(t *testing.T) {
	// 100k nested single-element arrays around one empty array; this
	// must not exhaust goroutine stack
	const depth = 100000
	data := append(bytes.Repeat([]byte{0x91}, depth), 0x90)
	v, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	n := 0
	for v.Type == ir.ArrayType && len(v.Values) == 1 {
		v = v.Values[0]
		n++
	}
	if n != depth {
		t.Errorf("decoded %d nesting levels, want %d", n, depth)
	}
	if v.Type != ir.ArrayType || len(v.Values) != 0 {
		t.Error("innermost value is not the empty array")
	}
}

func TestDecodeOwnsPayloads(t *testing.T) {
	data := []byte{0xa3, 'a', 'b', 'c'}
	v, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	data[1] = 'z'
	s, err := v.Text()
	if err != nil {
		t.Fatal(err)
	}
	if s != "abc" {
		t.Errorf("decoded string changed with its input: %q", s)
	}
}

func TestErrorOffset(t *testing.T) {
	_, err := Decode([]byte{0x92, 0x01, 0xc1})
	var de *Error
	if !errors.As(err, &de) {
		t.Fatalf("Decode() = %v, want *Error", err)
	}
	if de.Offset != 2 {
		t.Errorf("Offset = %d, want 2", de.Offset)
	}
}
