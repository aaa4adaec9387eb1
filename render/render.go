// Package render turns decoded trees, file summaries and edit lists
// into terminal output.
package render

import (
	"encoding/base64"
	"fmt"
	"io"
	"strconv"

	"github.com/mpk-tools/mpk/ir"
)

// Tree writes an indented view of root to w.  Containers render a
// header line with their entry count; children render one per line in
// stored order.
func Tree(w io.Writer, root *ir.Value, colors *Colors) error {
	return tree(w, root, colors, "", "")
}

func tree(w io.Writer, v *ir.Value, colors *Colors, prefix, label string) error {
	switch v.Type {
	case ir.ArrayType:
		if _, err := fmt.Fprintf(w, "%s%s%s\n", prefix, label,
			colors.Color(v.Type, TagColor,
				fmt.Sprintf("array (%d)", len(v.Values)))); err != nil {
			return err
		}
		for i, c := range v.Values {
			idx := colors.Color(v.Type, KeyColor, strconv.Itoa(i)) +
				colors.Color(v.Type, SepColor, ": ")
			if err := tree(w, c, colors, prefix+"  ", idx); err != nil {
				return err
			}
		}
		return nil
	case ir.MapType:
		if _, err := fmt.Fprintf(w, "%s%s%s\n", prefix, label,
			colors.Color(v.Type, TagColor,
				fmt.Sprintf("map (%d)", len(v.Keys)))); err != nil {
			return err
		}
		for i, k := range v.Keys {
			lit, ok := ir.ScalarLiteral(k)
			if !ok {
				// composite key: render the key as its own subtree
				// under a positional label, then the value
				kl := colors.Color(v.Type, KeyColor, fmt.Sprintf("#%d/key", i)) +
					colors.Color(v.Type, SepColor, ": ")
				if err := tree(w, k, colors, prefix+"  ", kl); err != nil {
					return err
				}
				vl := colors.Color(v.Type, KeyColor, fmt.Sprintf("#%d/value", i)) +
					colors.Color(v.Type, SepColor, ": ")
				if err := tree(w, v.Values[i], colors, prefix+"  ", vl); err != nil {
					return err
				}
				continue
			}
			if k.Type == ir.StringType {
				lit = strconv.Quote(lit)
			}
			kl := colors.Color(v.Type, KeyColor, lit) +
				colors.Color(v.Type, SepColor, ": ")
			if err := tree(w, v.Values[i], colors, prefix+"  ", kl); err != nil {
				return err
			}
		}
		return nil
	case ir.ExtType:
		_, err := fmt.Fprintf(w, "%s%s%s\n", prefix, label,
			colors.Color(v.Type, ValueColor,
				fmt.Sprintf("ext(%d) %s", v.ExtTag,
					base64.StdEncoding.EncodeToString(v.Bytes))))
		return err
	default:
		_, err := fmt.Fprintf(w, "%s%s%s\n", prefix, label,
			colors.Color(v.Type, ValueColor, Literal(v)))
		return err
	}
}

// Literal renders a scalar for display, quoting strings and tagging
// binary payloads.  Containers and ext values fall back to a type tag.
func Literal(v *ir.Value) string {
	lit, ok := ir.ScalarLiteral(v)
	if !ok {
		return fmt.Sprintf("<%s>", v.Type)
	}
	switch v.Type {
	case ir.StringType:
		return strconv.Quote(lit)
	case ir.BinaryType:
		return fmt.Sprintf("bin(%d) %s", len(v.Bytes), lit)
	}
	return lit
}
