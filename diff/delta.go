package diff

import "github.com/mpk-tools/mpk/ir"

// Op is the kind of a single edit.
type Op string

const (
	OpInsert Op = "+"
	OpDelete Op = "-"
	OpUpdate Op = "~"
)

// Delta is one edit turning the from tree into the to tree.
//
// For inserts Path addresses the position in the to tree and From is
// nil; for deletes Path addresses the position in the from tree and To
// is nil; updates carry both sides.
type Delta struct {
	Op   Op
	Path ir.Path
	From *ir.Value
	To   *ir.Value
}
