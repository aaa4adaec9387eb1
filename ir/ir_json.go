package ir

import (
	"encoding/json"
	"fmt"
)

// Structural JSON form of a tree, used by `mpk dump` and tests.  This
// serializes the node structure itself (types, representations); the
// data-level projection lives in json_data.go.

type irBase struct {
	Type    Type     `json:"type"`
	Keys    []*Value `json:"keys,omitempty"`
	Values  []*Value `json:"values,omitempty"`
	Int64   *int64   `json:"int,omitempty"`
	Uint64  *uint64  `json:"uint,omitempty"`
	Float32 *float32 `json:"float32,omitempty"`
	Float64 *float64 `json:"float64,omitempty"`
	Bytes   []byte   `json:"bytes,omitempty"`
	ExtTag  int8     `json:"extTag,omitempty"`
}

func (v *Value) MarshalJSON() ([]byte, error) {
	base := &irBase{
		Type:    v.Type,
		Keys:    v.Keys,
		Values:  v.Values,
		Int64:   v.Int64,
		Uint64:  v.Uint64,
		Float32: v.Float32,
		Float64: v.Float64,
		Bytes:   v.Bytes,
		ExtTag:  v.ExtTag,
	}
	switch v.Type {
	case BoolType:
		type C struct {
			irBase
			Bool bool `json:"bool"`
		}
		return json.Marshal(C{irBase: *base, Bool: v.Bool})
	default:
		return json.Marshal(base)
	}
}

func (v *Value) UnmarshalJSON(d []byte) error {
	type C struct {
		irBase
		Bool bool `json:"bool"`
	}
	tmp := &C{irBase: irBase{}}
	if err := json.Unmarshal(d, tmp); err != nil {
		return err
	}
	v.Type = tmp.Type
	v.Keys = tmp.Keys
	v.Values = tmp.Values
	v.Bool = tmp.Bool
	v.Int64 = tmp.Int64
	v.Uint64 = tmp.Uint64
	v.Float32 = tmp.Float32
	v.Float64 = tmp.Float64
	v.Bytes = tmp.Bytes
	v.ExtTag = tmp.ExtTag

	if v.Type == MapType && len(v.Keys) != len(v.Values) {
		return fmt.Errorf("map with %d keys and %d values", len(v.Keys), len(v.Values))
	}
	return nil
}
