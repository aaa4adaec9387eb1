package render

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"

	"github.com/mpk-tools/mpk/ir"
)

// ExportJSON writes root as indented JSON.  Map order is preserved;
// binary and ext values are projected the way ir.ToJSON projects them.
func ExportJSON(w io.Writer, root *ir.Value) error {
	data, err := ir.ToJSON(root)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err = w.Write(buf.Bytes())
	return err
}

// ExportYAML writes root as YAML, preserving map order via
// yaml.MapSlice.
func ExportYAML(w io.Writer, root *ir.Value) error {
	v, err := yamlValue(root)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func yamlValue(v *ir.Value) (any, error) {
	switch v.Type {
	case ir.NilType:
		return nil, nil
	case ir.BoolType:
		return v.Bool, nil
	case ir.IntType:
		if v.Int64 != nil {
			return *v.Int64, nil
		}
		return *v.Uint64, nil
	case ir.Float32Type:
		return *v.Float32, nil
	case ir.Float64Type:
		return *v.Float64, nil
	case ir.StringType:
		s, err := v.Text()
		if err != nil {
			return nil, err
		}
		return s, nil
	case ir.BinaryType:
		return base64.StdEncoding.EncodeToString(v.Bytes), nil
	case ir.ExtType:
		return yaml.MapSlice{
			{Key: "$ext", Value: int(v.ExtTag)},
			{Key: "$data", Value: base64.StdEncoding.EncodeToString(v.Bytes)},
		}, nil
	case ir.ArrayType:
		out := make([]any, len(v.Values))
		for i, c := range v.Values {
			cv, err := yamlValue(c)
			if err != nil {
				return nil, err
			}
			out[i] = cv
		}
		return out, nil
	case ir.MapType:
		out := make(yaml.MapSlice, len(v.Keys))
		for i, k := range v.Keys {
			kv, err := yamlValue(k)
			if err != nil {
				return nil, err
			}
			vv, err := yamlValue(v.Values[i])
			if err != nil {
				return nil, err
			}
			out[i] = yaml.MapItem{Key: kv, Value: vv}
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: unknown type %d", ir.ErrType, int(v.Type))
}
