// Package diff computes a structural edit list between two decoded
// trees.  Children of arrays and maps are aligned with a sequence diff
// over per-child summaries, then aligned pairs are compared
// recursively, so a single inserted element does not cascade into
// updates for every later sibling.
package diff

import (
	"strconv"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/mpk-tools/mpk/debug"
	"github.com/mpk-tools/mpk/ir"
)

// Diff returns the edits turning from into to, nil when the trees are
// structurally equal (per ir.Equal).  The result is deterministic for
// a given input pair.
func Diff(from, to *ir.Value) []*Delta {
	d := &differ{summaries: map[string]rune{}}
	d.diff(nil, from, to)
	if debug.Diff() {
		debug.Logf("diff: %d deltas\n", len(d.deltas))
	}
	return d.deltas
}

type differ struct {
	deltas []*Delta
	// summaries interns child summary strings as runes for the
	// sequence aligner; shared across the whole diff so equal children
	// map to equal runes everywhere.
	summaries map[string]rune
}

func (d *differ) diff(p ir.Path, from, to *ir.Value) {
	if ir.Equal(from, to) {
		return
	}
	if from.Type != to.Type {
		d.update(p, from, to)
		return
	}
	switch from.Type {
	case ir.ArrayType:
		d.diffArray(p, from, to)
	case ir.MapType:
		d.diffMap(p, from, to)
	default:
		d.update(p, from, to)
	}
}

func (d *differ) update(p ir.Path, from, to *ir.Value) {
	d.deltas = append(d.deltas, &Delta{Op: OpUpdate, Path: p.Clone(), From: from, To: to})
}

func (d *differ) insert(p ir.Path, to *ir.Value) {
	d.deltas = append(d.deltas, &Delta{Op: OpInsert, Path: p.Clone(), To: to})
}

func (d *differ) delete(p ir.Path, from *ir.Value) {
	d.deltas = append(d.deltas, &Delta{Op: OpDelete, Path: p.Clone(), From: from})
}

// rune interns a child summary.  Scalars summarize by value, arrays
// and maps only by kind: aligned container pairs are then recursed
// into, and the recursion re-checks real equality, so summary
// collisions cost precision of alignment, never correctness.
func (d *differ) rune(v *ir.Value) rune {
	var sum string
	switch v.Type {
	case ir.ArrayType, ir.MapType:
		sum = v.Type.String()
	default:
		sum = v.Type.String() + "-" + strconv.FormatUint(v.Hash(), 16)
	}
	return d.intern(sum)
}

// intern maps a summary to a stable rune.  The aligner round-trips
// runes through strings, so the surrogate range must be skipped: those
// code points do not survive the conversion.
func (d *differ) intern(sum string) rune {
	r, ok := d.summaries[sum]
	if !ok {
		r = rune(len(d.summaries))
		if r >= 0xd800 {
			r += 0x800
		}
		d.summaries[sum] = r
	}
	return r
}

func (d *differ) diffArray(p ir.Path, from, to *ir.Value) {
	fromRunes := make([]rune, len(from.Values))
	for i, v := range from.Values {
		fromRunes[i] = d.rune(v)
	}
	toRunes := make([]rune, len(to.Values))
	for i, v := range to.Values {
		toRunes[i] = d.rune(v)
	}
	diffCfg := diffpatch.New()
	diffs := diffCfg.DiffMainRunes(fromRunes, toRunes, false)

	fi, ti := 0, 0
	for i := 0; i < len(diffs); i++ {
		run := &diffs[i]
		switch run.Type {
		case diffpatch.DiffDelete:
			nd := len([]rune(run.Text))
			// a delete run followed by an insert run is a replacement:
			// pair the elements up and report updates, recursing into
			// paired containers
			ni := 0
			if i+1 < len(diffs) && diffs[i+1].Type == diffpatch.DiffInsert {
				ni = len([]rune(diffs[i+1].Text))
				i++
			}
			for nd > 0 && ni > 0 {
				d.diff(append(p, ir.Step{Entry: ti}), from.Values[fi], to.Values[ti])
				fi++
				ti++
				nd--
				ni--
			}
			for ; nd > 0; nd-- {
				d.delete(append(p, ir.Step{Entry: fi}), from.Values[fi])
				fi++
			}
			for ; ni > 0; ni-- {
				d.insert(append(p, ir.Step{Entry: ti}), to.Values[ti])
				ti++
			}
		case diffpatch.DiffInsert:
			for range run.Text {
				d.insert(append(p, ir.Step{Entry: ti}), to.Values[ti])
				ti++
			}
		case diffpatch.DiffEqual:
			for range run.Text {
				d.diff(append(p, ir.Step{Entry: ti}), from.Values[fi], to.Values[ti])
				fi++
				ti++
			}
		}
	}
}

// diffMap aligns entries as (key, value) pairs by key summary, keeping
// stored order significant: the same key set in a different order is a
// difference, consistent with ir.Equal's order-sensitive map equality.
func (d *differ) diffMap(p ir.Path, from, to *ir.Value) {
	fromRunes := make([]rune, len(from.Keys))
	for i, k := range from.Keys {
		fromRunes[i] = d.keyRune(k)
	}
	toRunes := make([]rune, len(to.Keys))
	for i, k := range to.Keys {
		toRunes[i] = d.keyRune(k)
	}
	diffCfg := diffpatch.New()
	diffs := diffCfg.DiffMainRunes(fromRunes, toRunes, false)

	fi, ti := 0, 0
	for i := range diffs {
		run := &diffs[i]
		switch run.Type {
		case diffpatch.DiffDelete:
			for range run.Text {
				d.delete(append(p, ir.Step{Entry: fi, Key: from.Keys[fi]}), from.Values[fi])
				fi++
			}
		case diffpatch.DiffInsert:
			for range run.Text {
				d.insert(append(p, ir.Step{Entry: ti, Key: to.Keys[ti]}), to.Values[ti])
				ti++
			}
		case diffpatch.DiffEqual:
			for range run.Text {
				step := ir.Step{Entry: ti, Key: to.Keys[ti]}
				if !ir.Equal(from.Keys[fi], to.Keys[ti]) {
					// summary collision between distinct keys: report
					// the whole entry replaced
					d.delete(append(p, ir.Step{Entry: fi, Key: from.Keys[fi]}), from.Values[fi])
					d.insert(append(p, step), to.Values[ti])
				} else {
					d.diff(append(p, step), from.Values[fi], to.Values[ti])
				}
				fi++
				ti++
			}
		}
	}
}

// keyRune summarizes a key by full hash regardless of kind; composite
// keys are legal in this model and must align exactly, since there is
// no recursion into key differences.
func (d *differ) keyRune(k *ir.Value) rune {
	return d.intern("k-" + strconv.FormatUint(k.Hash(), 16))
}
