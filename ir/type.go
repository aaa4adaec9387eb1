package ir

import "fmt"

type Type int

const (
	NilType Type = iota
	BoolType
	IntType
	Float32Type
	Float64Type
	StringType
	BinaryType
	ArrayType
	MapType
	ExtType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		NilType:     "nil",
		BoolType:    "bool",
		IntType:     "int",
		Float32Type: "float32",
		Float64Type: "float64",
		StringType:  "string",
		BinaryType:  "binary",
		ArrayType:   "array",
		MapType:     "map",
		ExtType:     "ext",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, ok := map[string]Type{
		"nil":     NilType,
		"bool":    BoolType,
		"int":     IntType,
		"float32": Float32Type,
		"float64": Float64Type,
		"string":  StringType,
		"binary":  BinaryType,
		"array":   ArrayType,
		"map":     MapType,
		"ext":     ExtType,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized type %q", d)
	}
	*t = tt
	return nil
}

func Types() []Type {
	return []Type{
		NilType,
		BoolType,
		IntType,
		Float32Type,
		Float64Type,
		StringType,
		BinaryType,
		ArrayType,
		MapType,
		ExtType,
	}
}
