package network

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// Unknown marks an axis whose extent is not known, for example a
// variable batch dimension.
const Unknown = -1

// Shape is the shape of an N-dimensional array in which some extents
// may be Unknown.
type Shape []int

// NewShape returns a new Shape with the given extents
func NewShape(extents ...int) Shape {
	s := make(Shape, len(extents))
	copy(s, extents)
	return s
}

// ShapeOf converts the concrete shape of a tensor into a Shape
func ShapeOf(s tensor.Shape) Shape {
	return NewShape(s...)
}

// ParseShape parses a comma separated list of extents such as
// "?,10,10,3". Any of "?", "N", "None" or "-1" denotes an unknown
// extent.
func ParseShape(s string) (Shape, error) {
	fields := strings.Split(strings.Trim(strings.TrimSpace(s), "()[]"), ",")
	shape := make(Shape, 0, len(fields))

	for _, field := range fields {
		field = strings.TrimSpace(field)
		switch field {
		case "":
			continue
		case "?", "N", "None", "-1":
			shape = append(shape, Unknown)
			continue
		}

		extent, err := strconv.Atoi(field)
		if err != nil {
			return nil, errors.Wrapf(ErrShape, "parseshape: illegal extent %q",
				field)
		}
		if extent < 0 {
			return nil, errors.Wrapf(ErrShape, "parseshape: negative extent %d",
				extent)
		}
		shape = append(shape, extent)
	}

	if len(shape) == 0 {
		return nil, errors.Wrapf(ErrShape, "parseshape: empty shape %q", s)
	}
	return shape, nil
}

// Rank returns the number of axes in the Shape
func (s Shape) Rank() int {
	return len(s)
}

// IsKnown returns whether the extent along axis is known
func (s Shape) IsKnown(axis int) bool {
	return s[axis] != Unknown
}

// IsFullyKnown returns whether all extents of the Shape are known
func (s Shape) IsFullyKnown() bool {
	for i := range s {
		if !s.IsKnown(i) {
			return false
		}
	}
	return true
}

// Clone returns a copy of the Shape
func (s Shape) Clone() Shape {
	return NewShape(s...)
}

// Eq returns whether two shapes have exactly the same extents,
// unknown extents included.
func (s Shape) Eq(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Compatible returns whether two shapes could describe the same array.
// An unknown extent is compatible with any extent.
func (s Shape) Compatible(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s.IsKnown(i) && other.IsKnown(i) && s[i] != other[i] {
			return false
		}
	}
	return true
}

// TensorShape converts the Shape into a concrete tensor shape. An
// error is returned if any extent is unknown.
func (s Shape) TensorShape() (tensor.Shape, error) {
	if !s.IsFullyKnown() {
		return nil, errors.Wrapf(ErrShape, "tensorshape: shape %v has "+
			"unknown extents", s)
	}
	return tensor.Shape(s.Clone()), nil
}

// String implements the fmt.Stringer interface
func (s Shape) String() string {
	extents := make([]string, len(s))
	for i, extent := range s {
		if extent == Unknown {
			extents[i] = "?"
		} else {
			extents[i] = fmt.Sprint(extent)
		}
	}
	return "(" + strings.Join(extents, ", ") + ")"
}
