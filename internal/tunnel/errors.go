package tunnel

import "errors"

var (
	// ErrInvalidSize is returned for non-positive surface or texture dimensions.
	ErrInvalidSize = errors.New("invalid size")
	// ErrInvalidColor is returned when a color is outside the defined set.
	ErrInvalidColor = errors.New("invalid color")
)
