package network

import "github.com/pkg/errors"

// Error kinds reported by cropping layers. Errors returned by this
// package wrap one of these and can be tested for with errors.Is.
var (
	// ErrConfig reports malformed construction arguments
	ErrConfig = errors.New("invalid cropping configuration")

	// ErrShape reports an input with the wrong number of axes or a shape
	// that is incompatible with the shape a layer was bound to
	ErrShape = errors.New("incompatible shape")

	// ErrSlice reports crop amounts that do not fit in the extent of a
	// spatial axis
	ErrSlice = errors.New("invalid crop range")
)

// IsConfigError returns whether or not an error was caused by a
// malformed layer configuration.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrConfig)
}

// IsShapeError returns whether or not an error was caused by an
// incompatible input shape.
func IsShapeError(err error) bool {
	return errors.Is(err, ErrShape)
}

// IsSliceError returns whether or not an error reports crop amounts
// exceeding the extent of an axis.
func IsSliceError(err error) bool {
	return errors.Is(err, ErrSlice)
}
