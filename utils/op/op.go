// Package op provides extended Gorgonia graph operations.
package op

import (
	"fmt"

	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

// Crop slices a node along each of its axes and returns a node of
// shape to. A nil slice takes the whole axis.
//
// Gorgonia drops every axis which is sliced down to a single element,
// so the sliced node is reshaped to the expected shape if needed. The
// reshape does not change the order of elements.
func Crop(x *G.Node, slices []tensor.Slice, to tensor.Shape) (*G.Node,
	error) {
	if len(slices) != x.Dims() {
		msg := "crop: invalid number of slices\n\twant(%d)\n\thave(%d)"
		return nil, fmt.Errorf(msg, x.Dims(), len(slices))
	}

	if to.TotalSize() != cropSize(x.Shape(), slices) {
		return nil, fmt.Errorf("crop: cannot crop %v into %v", x.Shape(), to)
	}

	if allNil(slices) {
		return x, nil
	}

	cropped, err := G.Slice(x, slices...)
	if err != nil {
		return nil, fmt.Errorf("crop: could not slice: %v", err)
	}

	if cropped.Shape().Eq(to) {
		return cropped, nil
	}
	return G.Reshape(cropped, to)
}

// cropSize returns the number of elements which remain after slicing
// an array of shape s.
func cropSize(s tensor.Shape, slices []tensor.Slice) int {
	size := 1
	for i, extent := range s {
		if slices[i] != nil {
			extent = slices[i].End() - slices[i].Start()
		}
		size *= extent
	}
	return size
}

// allNil returns whether no slice restricts its axis
func allNil(slices []tensor.Slice) bool {
	for _, s := range slices {
		if s != nil {
			return false
		}
	}
	return true
}
