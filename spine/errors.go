package spine

import "errors"

var (
	// ErrAnimationNotFound is returned when a requested or queried
	// animation name is absent from the skeleton data.
	ErrAnimationNotFound = errors.New("animation not found")

	// ErrConfiguration is returned when no usable animation source is
	// supplied at (re)initialization.
	ErrConfiguration = errors.New("no usable animation source")
)
