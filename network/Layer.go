package network

import (
	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

// Type is the type of a Layer, used to tag serialized configurations
type Type string

// Available Layer types
const (
	Cropping1DType Type = "Cropping1D"
	Cropping2DType Type = "Cropping2D"
	Cropping3DType Type = "Cropping3D"
)

// ShapeTransform infers the shape of a Layer's output from the shape of
// its input.
type ShapeTransform interface {
	OutputShape(Shape) (Shape, error)
}

// ArrayTransform transforms concrete tensors.
type ArrayTransform interface {
	Apply(tensor.Tensor) (tensor.Tensor, error)
}

// GraphTransform adds a Layer's forward pass to a computational graph.
type GraphTransform interface {
	Fwd(*G.Node) (*G.Node, error)
}

// Layer is a stateless transformation of N-dimensional arrays that can
// be used on concrete tensors as well as on Gorgonia graphs.
type Layer interface {
	ShapeTransform
	ArrayTransform
	GraphTransform

	// Bind associates the Layer with the shape of its input. Binding
	// is idempotent for compatible shapes.
	Bind(Shape) error

	// Config returns a description of the Layer that can be passed to
	// FromConfig to construct an equivalent Layer.
	Config() map[string]interface{}

	Type() Type
}
