package ir

import "errors"

var (
	// ErrInvariant reports a malformed tree, e.g. an integer node with
	// no representation.  It signals a decoder defect rather than bad
	// input.
	ErrInvariant = errors.New("invariant violation")

	ErrInvalidUTF8 = errors.New("invalid utf-8")
	ErrType        = errors.New("wrong type")
)
