package network

import (
	"github.com/pkg/errors"
	"github.com/samuelfneumann/gocrop/utils/op"
	G "gorgonia.org/gorgonia"
)

// Fwd adds the crop to the computational graph of x and returns the
// cropped node. The static shape of x is used to bind the layer once
// it has been validated.
func (c *cropping) Fwd(x *G.Node) (*G.Node, error) {
	if x == nil {
		return nil, errors.Wrap(ErrShape, "fwd: nil input")
	}

	input := ShapeOf(x.Shape())
	slices, want, err := c.prepare("fwd", input)
	if err != nil {
		return nil, err
	}
	to, err := want.TensorShape()
	if err != nil {
		return nil, errors.WithMessage(err, "fwd")
	}

	cropped, err := op.Crop(x, slices, to)
	if err != nil {
		return nil, errors.Wrapf(ErrSlice, "fwd: could not crop %v: %v",
			input, err)
	}
	return cropped, nil
}
