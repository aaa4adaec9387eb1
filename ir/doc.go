// Package ir contains the decoded MessagePack value model: a tagged
// value tree together with structural equality, hashing, ordering, and
// traversal over it.
//
// A decoded tree is immutable by convention: operations that change a
// tree work on a [Value.Clone].
package ir
