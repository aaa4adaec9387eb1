package decode

import (
	"errors"
	"fmt"
)

var (
	ErrTruncated = errors.New("truncated input")
	ErrLength    = errors.New("length exceeds remaining input")
	ErrReserved  = errors.New("reserved type tag 0xc1")
	ErrEmpty     = errors.New("empty input")
)

// Error is a decode failure with the byte offset it occurred at.
type Error struct {
	Offset int
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("msgpack: %v at offset %d", e.Err, e.Offset)
}

func (e *Error) Unwrap() error {
	return e.Err
}
