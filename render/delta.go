package render

import (
	"fmt"
	"io"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/mpk-tools/mpk/diff"
	"github.com/mpk-tools/mpk/ir"
)

// Deltas writes one line per edit:
//
//	+ /path: <new>
//	- /path: <old>
//	~ /path: <old> -> <new>
//
// String-to-string updates additionally get a character-level diff of
// the two literals when colors are active.
func Deltas(w io.Writer, deltas []*diff.Delta, colors *Colors) error {
	for _, d := range deltas {
		if err := delta(w, d, colors); err != nil {
			return err
		}
	}
	return nil
}

func delta(w io.Writer, d *diff.Delta, colors *Colors) error {
	path := d.Path.String()
	switch d.Op {
	case diff.OpInsert:
		_, err := fmt.Fprintf(w, "%s %s: %s\n",
			colors.Color(d.To.Type, InsertColor, "+"), path,
			colors.Color(d.To.Type, InsertColor, summary(d.To)))
		return err
	case diff.OpDelete:
		_, err := fmt.Fprintf(w, "%s %s: %s\n",
			colors.Color(d.From.Type, DeleteColor, "-"), path,
			colors.Color(d.From.Type, DeleteColor, summary(d.From)))
		return err
	case diff.OpUpdate:
		if d.From.Type == ir.StringType && d.To.Type == ir.StringType {
			if s, ok := stringDiff(d.From, d.To, colors); ok {
				_, err := fmt.Fprintf(w, "%s %s: %s\n",
					colors.Color(d.To.Type, UpdateColor, "~"), path, s)
				return err
			}
		}
		_, err := fmt.Fprintf(w, "%s %s: %s -> %s\n",
			colors.Color(d.From.Type, UpdateColor, "~"), path,
			colors.Color(d.From.Type, DeleteColor, summary(d.From)),
			colors.Color(d.To.Type, InsertColor, summary(d.To)))
		return err
	}
	return fmt.Errorf("render: unknown delta op %q", d.Op)
}

// stringDiff renders a character-level diff of two valid UTF-8 string
// literals, insert and delete runs colored.  It reports ok false when
// either side is not valid UTF-8.
func stringDiff(from, to *ir.Value, colors *Colors) (string, bool) {
	fs, err := from.Text()
	if err != nil {
		return "", false
	}
	ts, err := to.Text()
	if err != nil {
		return "", false
	}
	dmp := diffpatch.New()
	diffs := dmp.DiffMain(fs, ts, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	out := `"`
	for _, run := range diffs {
		switch run.Type {
		case diffpatch.DiffDelete:
			out += colors.Color(ir.StringType, DeleteColor, run.Text)
		case diffpatch.DiffInsert:
			out += colors.Color(ir.StringType, InsertColor, run.Text)
		default:
			out += run.Text
		}
	}
	return out + `"`, true
}

// summary is a one-line rendering of a delta side: scalars by literal,
// containers by tag and size.
func summary(v *ir.Value) string {
	switch v.Type {
	case ir.ArrayType:
		return fmt.Sprintf("array (%d)", len(v.Values))
	case ir.MapType:
		return fmt.Sprintf("map (%d)", len(v.Keys))
	case ir.ExtType:
		return fmt.Sprintf("ext(%d) %d bytes", v.ExtTag, len(v.Bytes))
	}
	return Literal(v)
}
