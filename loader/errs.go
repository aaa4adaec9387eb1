package loader

import "errors"

var (
	// ErrNoPath is returned by Reload on a slot with no bound path.
	ErrNoPath = errors.New("no path bound")
	// ErrNotLoaded is returned when a caller asks for the file of a
	// slot that is not in the Loaded state.
	ErrNotLoaded = errors.New("slot not loaded")
)
