package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mpk-tools/mpk/diff"
	"github.com/mpk-tools/mpk/ir"
)

func TestDeltas(t *testing.T) {
	from := ir.FromKeyVals([]ir.KeyVal{
		kv("a", ir.FromInt(1)),
		kv("b", ir.FromInt(2)),
	})
	to := ir.FromKeyVals([]ir.KeyVal{
		kv("a", ir.FromInt(9)),
		kv("c", ir.FromSlice([]*ir.Value{ir.Nil()})),
	})
	ds := diff.Diff(from, to)
	var buf bytes.Buffer
	if err := Deltas(&buf, ds, NoColors()); err != nil {
		t.Fatal(err)
	}
	want := `~ /a: 1 -> 9
- /b: 2
+ /c: array (1)
`
	if got := buf.String(); got != want {
		t.Errorf("Deltas() =\n%s\nwant\n%s", got, want)
	}
}

func TestDeltasStringUpdate(t *testing.T) {
	ds := diff.Diff(ir.FromString("hello world"), ir.FromString("hello there"))
	var buf bytes.Buffer
	if err := Deltas(&buf, ds, NoColors()); err != nil {
		t.Fatal(err)
	}
	// without colors the char diff is unmarked, so both halves appear
	// in order
	out := buf.String()
	if !strings.HasPrefix(out, `~ /: "`) ||
		!strings.Contains(out, "world") || !strings.Contains(out, "there") {
		t.Errorf("Deltas() = %q", out)
	}
}
