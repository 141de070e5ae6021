// Package tensorutils provides utilities for working with Gorgonia
// tensors.
package tensorutils

import (
	"github.com/samuelfneumann/gocrop/utils/intutils"
	"gonum.org/v1/gonum/stat/combin"
	"gorgonia.org/tensor"
)

// Slice implements a struct that can be used for slicing tensors.
//
// Given a tensor T and a Slice S, T.Slice(..., S, ...) is equivalent to
// T[..., S.start:S.end:S.step, ...]
type Slice struct {
	start, end, step int
}

// Start returns the start index for the tensor slice
func (s Slice) Start() int {
	return s.start
}

// End returns the ending index for the tensor slice
func (s Slice) End() int {
	return s.end
}

// Step returns the step for the tensor slice
func (s Slice) Step() int {
	return s.step
}

// NewSlice returns a new Slice that can be used to slice tensors
func NewSlice(start, stop, step int) Slice {
	return Slice{start, stop, step}
}

// Sequential returns a tensor of the given shape and dtype holding
// 0, 1, 2, ... in row-major order.
func Sequential(dt tensor.Dtype, shape ...int) *tensor.Dense {
	size := intutils.Prod(shape...)
	return tensor.New(
		tensor.WithShape(shape...),
		tensor.WithBacking(tensor.Range(dt, 0, size)),
	)
}

// Coordinates returns every coordinate of an array with the given
// shape, in row-major order.
func Coordinates(shape ...int) [][]int {
	var coords [][]int
	gen := combin.NewCartesianGenerator(shape)
	for gen.Next() {
		coords = append(coords, gen.Product(nil))
	}
	return coords
}

// Offset returns coord shifted by offset along each axis
func Offset(coord, offset []int) []int {
	shifted := make([]int, len(coord))
	for i := range coord {
		shifted[i] = coord[i] + offset[i]
	}
	return shifted
}
