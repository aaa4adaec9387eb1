// Package decode parses MessagePack-encoded bytes into [ir.Value]
// trees.  It is a pure function of its input: no I/O, no partial
// results, and no panics on malformed data.
package decode

import (
	"encoding/binary"
	"math"

	"github.com/mpk-tools/mpk/ir"
)

// Decode parses exactly one value from the front of data.  Trailing
// bytes after a complete value are ignored, matching the usual
// read-one-value semantics of MessagePack readers; use DecodeFirst to
// learn how much input was consumed.
//
// The decoded tree owns its byte payloads: mutating data afterwards
// does not affect it.  Parsing uses an explicit frame stack, so
// nesting depth is bounded by available memory, not goroutine stack.
func Decode(data []byte) (*ir.Value, error) {
	v, _, err := DecodeFirst(data)
	return v, err
}

// DecodeFirst parses one value and also returns the number of bytes it
// consumed.
func DecodeFirst(data []byte) (*ir.Value, int, error) {
	d := &decoder{data: data}
	if len(data) == 0 {
		return nil, 0, &Error{Offset: 0, Err: ErrEmpty}
	}

	type frame struct {
		val *ir.Value
		// need counts remaining child slots: elements for an array,
		// keys plus values for a map.
		need int
	}
	var (
		stack []frame
		root  *ir.Value
	)
	for {
		v, children, err := d.readValue()
		if err != nil {
			return nil, 0, err
		}
		if len(stack) == 0 {
			root = v
		} else {
			fr := &stack[len(stack)-1]
			if fr.val.Type == ir.MapType && fr.need%2 == 0 {
				fr.val.Keys = append(fr.val.Keys, v)
			} else {
				fr.val.Values = append(fr.val.Values, v)
			}
			fr.need--
		}
		if children > 0 {
			stack = append(stack, frame{val: v, need: children})
			continue
		}
		for len(stack) > 0 && stack[len(stack)-1].need == 0 {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			return root, d.pos, nil
		}
	}
}

type decoder struct {
	data []byte
	pos  int
}

func (d *decoder) errAt(off int, err error) error {
	return &Error{Offset: off, Err: err}
}

// readValue decodes one scalar, or one container header.  For arrays
// it returns the element count as children, for maps twice the entry
// count; the caller fills the container in.
func (d *decoder) readValue() (v *ir.Value, children int, err error) {
	start := d.pos
	if d.pos >= len(d.data) {
		return nil, 0, d.errAt(start, ErrTruncated)
	}
	c := d.data[d.pos]
	d.pos++
	switch {
	case c <= 0x7f: // positive fixint
		return ir.FromInt(int64(c)), 0, nil
	case c >= 0xe0: // negative fixint
		return ir.FromInt(int64(int8(c))), 0, nil
	case c >= 0x80 && c <= 0x8f: // fixmap
		return d.mapValue(start, int(c&0x0f))
	case c >= 0x90 && c <= 0x9f: // fixarray
		return d.arrayValue(start, int(c&0x0f))
	case c >= 0xa0 && c <= 0xbf: // fixstr
		return d.strValue(start, int(c&0x1f))
	}

	switch c {
	case 0xc0:
		return ir.Nil(), 0, nil
	case 0xc1:
		return nil, 0, d.errAt(start, ErrReserved)
	case 0xc2:
		return ir.FromBool(false), 0, nil
	case 0xc3:
		return ir.FromBool(true), 0, nil

	case 0xc4, 0xc5, 0xc6: // bin 8/16/32
		n, err := d.lengthFor(start, c-0xc4)
		if err != nil {
			return nil, 0, err
		}
		p, err := d.take(start, n)
		if err != nil {
			return nil, 0, err
		}
		return ir.FromBinary(p), 0, nil

	case 0xc7, 0xc8, 0xc9: // ext 8/16/32
		n, err := d.lengthFor(start, c-0xc7)
		if err != nil {
			return nil, 0, err
		}
		tag, err := d.u8(start)
		if err != nil {
			return nil, 0, err
		}
		p, err := d.take(start, n)
		if err != nil {
			return nil, 0, err
		}
		return ir.FromExt(int8(tag), p), 0, nil

	case 0xca: // float 32
		u, err := d.u32(start)
		if err != nil {
			return nil, 0, err
		}
		return ir.FromFloat32(math.Float32frombits(u)), 0, nil
	case 0xcb: // float 64
		u, err := d.u64(start)
		if err != nil {
			return nil, 0, err
		}
		return ir.FromFloat64(math.Float64frombits(u)), 0, nil

	case 0xcc: // uint 8
		u, err := d.u8(start)
		if err != nil {
			return nil, 0, err
		}
		return ir.FromInt(int64(u)), 0, nil
	case 0xcd: // uint 16
		u, err := d.u16(start)
		if err != nil {
			return nil, 0, err
		}
		return ir.FromInt(int64(u)), 0, nil
	case 0xce: // uint 32
		u, err := d.u32(start)
		if err != nil {
			return nil, 0, err
		}
		return ir.FromInt(int64(u)), 0, nil
	case 0xcf: // uint 64
		u, err := d.u64(start)
		if err != nil {
			return nil, 0, err
		}
		// Normalize: only values above MaxInt64 keep the unsigned
		// representation.
		if u <= math.MaxInt64 {
			return ir.FromInt(int64(u)), 0, nil
		}
		return ir.FromUint(u), 0, nil

	case 0xd0: // int 8
		u, err := d.u8(start)
		if err != nil {
			return nil, 0, err
		}
		return ir.FromInt(int64(int8(u))), 0, nil
	case 0xd1: // int 16
		u, err := d.u16(start)
		if err != nil {
			return nil, 0, err
		}
		return ir.FromInt(int64(int16(u))), 0, nil
	case 0xd2: // int 32
		u, err := d.u32(start)
		if err != nil {
			return nil, 0, err
		}
		return ir.FromInt(int64(int32(u))), 0, nil
	case 0xd3: // int 64
		u, err := d.u64(start)
		if err != nil {
			return nil, 0, err
		}
		return ir.FromInt(int64(u)), 0, nil

	case 0xd4, 0xd5, 0xd6, 0xd7, 0xd8: // fixext 1/2/4/8/16
		n := 1 << (c - 0xd4)
		tag, err := d.u8(start)
		if err != nil {
			return nil, 0, err
		}
		p, err := d.take(start, n)
		if err != nil {
			return nil, 0, err
		}
		return ir.FromExt(int8(tag), p), 0, nil

	case 0xd9, 0xda, 0xdb: // str 8/16/32
		n, err := d.lengthFor(start, c-0xd9)
		if err != nil {
			return nil, 0, err
		}
		return d.strValue(start, n)

	case 0xdc, 0xdd: // array 16/32
		n, err := d.lengthFor(start, c-0xdc+1)
		if err != nil {
			return nil, 0, err
		}
		return d.arrayValue(start, n)

	case 0xde, 0xdf: // map 16/32
		n, err := d.lengthFor(start, c-0xde+1)
		if err != nil {
			return nil, 0, err
		}
		return d.mapValue(start, n)
	}
	// Unreachable: every byte value is covered above.
	return nil, 0, d.errAt(start, ErrReserved)
}

func (d *decoder) strValue(start, n int) (*ir.Value, int, error) {
	p, err := d.take(start, n)
	if err != nil {
		return nil, 0, err
	}
	// UTF-8 validity is deliberately not checked here; see ir.Text.
	return ir.FromStringBytes(p), 0, nil
}

func (d *decoder) arrayValue(start, n int) (*ir.Value, int, error) {
	// Each element needs at least one input byte, so n can be used as
	// an allocation bound only after this check.
	if n > len(d.data)-d.pos {
		return nil, 0, d.errAt(start, ErrLength)
	}
	v := &ir.Value{Type: ir.ArrayType}
	if n > 0 {
		v.Values = make([]*ir.Value, 0, n)
	}
	return v, n, nil
}

func (d *decoder) mapValue(start, n int) (*ir.Value, int, error) {
	if n > (len(d.data)-d.pos)/2 {
		return nil, 0, d.errAt(start, ErrLength)
	}
	v := &ir.Value{Type: ir.MapType}
	if n > 0 {
		v.Keys = make([]*ir.Value, 0, n)
		v.Values = make([]*ir.Value, 0, n)
	}
	return v, 2 * n, nil
}

// lengthFor reads a length prefix of width 1<<w bytes.
func (d *decoder) lengthFor(start int, w byte) (int, error) {
	switch w {
	case 0:
		u, err := d.u8(start)
		return int(u), err
	case 1:
		u, err := d.u16(start)
		return int(u), err
	default:
		u, err := d.u32(start)
		if err != nil {
			return 0, err
		}
		if uint64(u) > uint64(math.MaxInt32) {
			return 0, d.errAt(start, ErrLength)
		}
		return int(u), nil
	}
}

func (d *decoder) take(start, n int) ([]byte, error) {
	if n > len(d.data)-d.pos {
		return nil, d.errAt(start, ErrLength)
	}
	b := make([]byte, n)
	copy(b, d.data[d.pos:d.pos+n])
	d.pos += n
	return b, nil
}

func (d *decoder) u8(start int) (uint8, error) {
	if d.pos+1 > len(d.data) {
		return 0, d.errAt(start, ErrTruncated)
	}
	u := d.data[d.pos]
	d.pos++
	return u, nil
}

func (d *decoder) u16(start int) (uint16, error) {
	if d.pos+2 > len(d.data) {
		return 0, d.errAt(start, ErrTruncated)
	}
	u := binary.BigEndian.Uint16(d.data[d.pos:])
	d.pos += 2
	return u, nil
}

func (d *decoder) u32(start int) (uint32, error) {
	if d.pos+4 > len(d.data) {
		return 0, d.errAt(start, ErrTruncated)
	}
	u := binary.BigEndian.Uint32(d.data[d.pos:])
	d.pos += 4
	return u, nil
}

func (d *decoder) u64(start int) (uint64, error) {
	if d.pos+8 > len(d.data) {
		return 0, d.errAt(start, ErrTruncated)
	}
	u := binary.BigEndian.Uint64(d.data[d.pos:])
	d.pos += 8
	return u, nil
}
