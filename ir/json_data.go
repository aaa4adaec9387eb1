package ir

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"unicode/utf8"
)

// Data-level JSON projection of a tree: the document the bytes
// describe, not the node structure.  The projection keeps map entry
// order.  It is lossy for kinds JSON cannot carry: binary becomes a
// base64 string, ext becomes a {"$ext": tag, "$data": base64} object,
// and non-string scalar keys become their literal text.  JSONable
// reports whether a tree survives the round trip unchanged.

// ToJSON renders the data-level JSON projection, preserving map entry
// order (including duplicate keys, which JSON tolerates textually).
func ToJSON(v *Value) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := writeJSON(buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v *Value) error {
	switch v.Type {
	case NilType:
		buf.WriteString("null")
	case BoolType:
		buf.WriteString(strconv.FormatBool(v.Bool))
	case IntType:
		lit, _ := ScalarLiteral(v)
		buf.WriteString(lit)
	case Float32Type:
		return writeJSONFloat(buf, float64(*v.Float32), 32)
	case Float64Type:
		return writeJSONFloat(buf, *v.Float64, 64)
	case StringType:
		s, err := v.Text()
		if err != nil {
			return err
		}
		d, err := json.Marshal(s)
		if err != nil {
			return err
		}
		buf.Write(d)
	case BinaryType:
		buf.WriteByte('"')
		buf.WriteString(base64.StdEncoding.EncodeToString(v.Bytes))
		buf.WriteByte('"')
	case ExtType:
		fmt.Fprintf(buf, `{"$ext":%d,"$data":%q}`,
			v.ExtTag, base64.StdEncoding.EncodeToString(v.Bytes))
	case ArrayType:
		buf.WriteByte('[')
		for i, c := range v.Values {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, c); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case MapType:
		buf.WriteByte('{')
		for i, k := range v.Keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			lit, ok := ScalarLiteral(k)
			if !ok {
				return fmt.Errorf("%w: %s map key has no JSON form", ErrType, k.Type)
			}
			d, err := json.Marshal(lit)
			if err != nil {
				return err
			}
			buf.Write(d)
			buf.WriteByte(':')
			if err := writeJSON(buf, v.Values[i]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("%w: unknown type %d", ErrInvariant, int(v.Type))
	}
	return nil
}

func writeJSONFloat(buf *bytes.Buffer, f float64, bits int) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("%w: %v has no JSON form", ErrType, f)
	}
	buf.WriteString(strconv.FormatFloat(f, 'g', -1, bits))
	return nil
}

// JSONable reports whether the tree projects to JSON and back without
// loss: string keys only, unique per map, valid UTF-8 strings, finite
// floats, no binary or ext payloads.
func JSONable(v *Value) error {
	return Walk(v, func(p Path, n *Value) error {
		switch n.Type {
		case BinaryType, ExtType:
			return fmt.Errorf("%s at %s has no lossless JSON form", n.Type, p)
		case StringType:
			if !utf8.Valid(n.Bytes) {
				return fmt.Errorf("%w at %s", ErrInvalidUTF8, p)
			}
		case Float32Type:
			f := float64(*n.Float32)
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return fmt.Errorf("non-finite float at %s", p)
			}
		case Float64Type:
			if math.IsNaN(*n.Float64) || math.IsInf(*n.Float64, 0) {
				return fmt.Errorf("non-finite float at %s", p)
			}
		case MapType:
			seen := make(map[string]bool, len(n.Keys))
			for _, k := range n.Keys {
				if k.Type != StringType {
					return fmt.Errorf("%s map key at %s", k.Type, p)
				}
				s, err := k.Text()
				if err != nil {
					return fmt.Errorf("map key at %s: %w", p, err)
				}
				if seen[s] {
					return fmt.Errorf("duplicate map key %q at %s", s, p)
				}
				seen[s] = true
			}
		}
		return nil
	})
}

// FromJSON parses a JSON document into a tree, preserving object entry
// order.  Numbers become Int when they parse as (u)int64 and Float64
// otherwise.
func FromJSON(data []byte) (*Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	v, err := fromJSONToken(dec, tok)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("trailing content after JSON document")
	}
	return v, nil
}

func fromJSONToken(dec *json.Decoder, tok json.Token) (*Value, error) {
	switch t := tok.(type) {
	case nil:
		return Nil(), nil
	case bool:
		return FromBool(t), nil
	case string:
		return FromString(t), nil
	case json.Number:
		if i, err := strconv.ParseInt(t.String(), 10, 64); err == nil {
			return FromInt(i), nil
		}
		if u, err := strconv.ParseUint(t.String(), 10, 64); err == nil {
			return FromUint(u), nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, err
		}
		return FromFloat64(f), nil
	case json.Delim:
		switch t {
		case '[':
			res := &Value{Type: ArrayType}
			for dec.More() {
				ct, err := dec.Token()
				if err != nil {
					return nil, err
				}
				c, err := fromJSONToken(dec, ct)
				if err != nil {
					return nil, err
				}
				res.Values = append(res.Values, c)
			}
			if _, err := dec.Token(); err != nil { // ']'
				return nil, err
			}
			return res, nil
		case '{':
			res := &Value{Type: MapType}
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := kt.(string)
				if !ok {
					return nil, fmt.Errorf("unexpected object key token %v", kt)
				}
				vt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				c, err := fromJSONToken(dec, vt)
				if err != nil {
					return nil, err
				}
				res.Keys = append(res.Keys, FromString(key))
				res.Values = append(res.Values, c)
			}
			if _, err := dec.Token(); err != nil { // '}'
				return nil, err
			}
			return res, nil
		}
	}
	return nil, fmt.Errorf("unexpected JSON token %v", tok)
}
