package ir

import "fmt"

// Visitor receives every node of a tree in depth-first order.  The
// path identifies the node's position; it is only valid for the
// duration of the call (see [Path.Clone]).
type Visitor func(path Path, v *Value) error

// Walk traverses the tree depth-first: array elements in index order,
// map entries in stored order with each entry's key visited before its
// value.  Every call is independent; there is no shared traversal
// state.  Traversal is iterative, bounded by heap rather than stack.
//
// The switch over node kinds is exhaustive: an unhandled kind stops
// the walk with an error rather than being skipped silently.
func Walk(root *Value, visit Visitor) error {
	if root == nil {
		return nil
	}
	type item struct {
		v     *Value
		step  Step
		depth int // steps in the item's path, including its own
	}
	stack := []item{{v: root}}
	var path Path
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if it.depth > 0 {
			path = append(path[:it.depth-1], it.step)
		} else {
			path = path[:0]
		}
		if err := visit(path, it.v); err != nil {
			return err
		}
		switch it.v.Type {
		case NilType, BoolType, IntType, Float32Type, Float64Type,
			StringType, BinaryType, ExtType:
		case ArrayType:
			for i := len(it.v.Values) - 1; i >= 0; i-- {
				stack = append(stack, item{
					v:     it.v.Values[i],
					step:  Step{Entry: i},
					depth: it.depth + 1,
				})
			}
		case MapType:
			for i := len(it.v.Keys) - 1; i >= 0; i-- {
				stack = append(stack, item{
					v:     it.v.Values[i],
					step:  Step{Entry: i, Key: it.v.Keys[i]},
					depth: it.depth + 1,
				})
				stack = append(stack, item{
					v:     it.v.Keys[i],
					step:  Step{Entry: i, Key: it.v.Keys[i], InKey: true},
					depth: it.depth + 1,
				})
			}
		default:
			return fmt.Errorf("ir: walk: unhandled type %s at %s", it.v.Type, path)
		}
	}
	return nil
}

// Count returns the number of nodes in the tree, keys included.
func Count(root *Value) int {
	n := 0
	Walk(root, func(Path, *Value) error {
		n++
		return nil
	})
	return n
}
