package network

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/pkg/errors"
	"github.com/samuelfneumann/gocrop/utils/intutils"
	"github.com/samuelfneumann/gocrop/utils/tensorutils"
	"gorgonia.org/tensor"
)

// Crop is the number of elements trimmed from the beginning and the
// end of a single spatial axis.
type Crop struct {
	Before int
	After  int
}

// Total returns the number of elements removed from the axis
func (c Crop) Total() int {
	return c.Before + c.After
}

// String implements the fmt.Stringer interface
func (c Crop) String() string {
	return fmt.Sprintf("(%d, %d)", c.Before, c.After)
}

// cropping implements the cropping algorithm shared by all cropping
// layers. The layer crops rank spatial axes of arrays with rank+2 axes,
// the remaining two axes being the batch axis (always first) and the
// channel axis, whose position is given by position.
type cropping struct {
	typ      Type
	rank     int
	crop     []Crop
	position ChannelPosition

	mu    sync.RWMutex
	bound Shape
}

// newCropping returns a new cropping of the given rank. The position
// is resolved so that DefaultPosition never reaches the layer.
func newCropping(typ Type, rank int, crop []Crop,
	position ChannelPosition) (*cropping, error) {
	if rank < 1 || rank > 3 {
		return nil, errors.Wrapf(ErrConfig, "newcropping: rank must be "+
			"1, 2 or 3 but got %d", rank)
	}

	if len(crop) != rank {
		msg := "newcropping: invalid number of crop amounts\n\twant(%d)" +
			"\n\thave(%d)"
		return nil, errors.Wrapf(ErrConfig, msg, rank, len(crop))
	}

	amounts := make([]int, 0, 2*len(crop))
	for _, c := range crop {
		amounts = append(amounts, c.Before, c.After)
	}
	if intutils.Min(amounts...) < 0 {
		return nil, errors.Wrapf(ErrConfig, "newcropping: crop amounts "+
			"must be non-negative but got %v", crop)
	}

	if rank == 1 {
		// Sequences always have their features last
		position = ChannelsLast
	}
	position, err := position.Resolve()
	if err != nil {
		return nil, errors.WithMessage(err, "newcropping")
	}

	c := make([]Crop, len(crop))
	copy(c, crop)

	return &cropping{
		typ:      typ,
		rank:     rank,
		crop:     c,
		position: position,
	}, nil
}

// Type returns the type of the layer
func (c *cropping) Type() Type {
	return c.typ
}

// Rank returns the number of spatial axes cropped by the layer
func (c *cropping) Rank() int {
	return c.rank
}

// Cropping returns the crop amounts of each spatial axis, in the order
// in which the spatial axes appear in the input.
func (c *cropping) Cropping() []Crop {
	crop := make([]Crop, len(c.crop))
	copy(crop, c.crop)
	return crop
}

// ChannelPosition returns the position of the channel axis
func (c *cropping) ChannelPosition() ChannelPosition {
	return c.position
}

// SpatialAxes returns the indices of the spatial axes of the input, in
// the order in which they are cropped.
func (c *cropping) SpatialAxes() []int {
	first := 1
	if c.position == ChannelsFirst {
		first = 2
	}

	axes := make([]int, c.rank)
	for i := range axes {
		axes[i] = first + i
	}
	return axes
}

// ChannelAxis returns the index of the channel axis of the input
func (c *cropping) ChannelAxis() int {
	if c.position == ChannelsFirst {
		return 1
	}
	return c.rank + 1
}

// checkRank ensures a shape has one axis for the batch, one for the
// channels and one for each cropped axis.
func (c *cropping) checkRank(op string, s Shape) error {
	if s.Rank() != c.rank+2 {
		msg := "%v: %v expects inputs with %d axes but got shape %v"
		return errors.Wrapf(ErrShape, msg, op, c.typ, c.rank+2, s)
	}
	return nil
}

// Bind binds the layer to the shape of its input. The first call
// records the shape, later calls only check that the new shape is
// compatible with the bound one. The batch extent is never bound, so
// a layer accepts batches of any size.
//
// Binding does not check that the crop amounts fit into the input,
// this is deferred to Apply and Fwd.
func (c *cropping) Bind(input Shape) error {
	if err := c.checkRank("bind", input); err != nil {
		return err
	}
	input = input.Clone()
	input[0] = Unknown

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.bound == nil {
		c.bound = input
		return nil
	}

	if !c.bound.Compatible(input) {
		msg := "bind: shape %v is incompatible with bound shape %v"
		return errors.Wrapf(ErrShape, msg, input, c.bound)
	}
	return nil
}

// Bound returns the shape the layer is bound to and whether the layer
// has been bound at all.
func (c *cropping) Bound() (Shape, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.bound == nil {
		return nil, false
	}
	return c.bound.Clone(), true
}

// OutputShape returns the shape of the layer's output given an input
// of shape input. Unknown spatial extents stay unknown, the batch and
// channel axes are passed through untouched.
//
// An error is returned if a known extent is smaller than the amount
// cropped from it. Crops which leave exactly zero elements are legal
// here but fail when applied.
func (c *cropping) OutputShape(input Shape) (Shape, error) {
	if err := c.checkRank("outputshape", input); err != nil {
		return nil, err
	}

	out := input.Clone()
	for i, axis := range c.SpatialAxes() {
		if !out.IsKnown(axis) {
			continue
		}

		out[axis] -= c.crop[i].Total()
		if out[axis] < 0 {
			msg := "outputshape: cannot crop %v from axis %d of shape %v"
			return nil, errors.Wrapf(ErrShape, msg, c.crop[i], axis, input)
		}
	}
	return out, nil
}

// slices returns the tensor slices which crop an array of shape input.
// Axes which are not cropped get a nil slice.
func (c *cropping) slices(op string, input Shape) ([]tensor.Slice, error) {
	slices := make([]tensor.Slice, input.Rank())

	for i, axis := range c.SpatialAxes() {
		crop := c.crop[i]
		if crop.Total() == 0 {
			continue
		}

		if !input.IsKnown(axis) {
			msg := "%v: cannot crop axis %d of unknown extent"
			return nil, errors.Wrapf(ErrShape, msg, op, axis)
		}

		extent := input[axis]
		if crop.Total() >= extent {
			msg := "%v: crop %v leaves no elements on axis %d of extent %d"
			return nil, errors.Wrapf(ErrSlice, msg, op, crop, axis, extent)
		}

		slices[axis] = tensorutils.NewSlice(crop.Before, extent-crop.After, 1)
	}
	return slices, nil
}

// prepare validates an input of shape input and returns the slices
// cropping it along with the output shape. The layer is bound to input
// only if validation succeeds.
func (c *cropping) prepare(op string, input Shape) ([]tensor.Slice, Shape,
	error) {
	if err := c.checkRank(op, input); err != nil {
		return nil, nil, err
	}

	slices, err := c.slices(op, input)
	if err != nil {
		return nil, nil, err
	}

	want, err := c.OutputShape(input)
	if err != nil {
		return nil, nil, errors.WithMessage(err, op)
	}

	if err := c.Bind(input); err != nil {
		return nil, nil, errors.WithMessage(err, op)
	}
	return slices, want, nil
}

// Apply crops the spatial axes of x and returns the result as a new
// tensor. The input is never modified.
func (c *cropping) Apply(x tensor.Tensor) (tensor.Tensor, error) {
	if x == nil {
		return nil, errors.Wrap(ErrShape, "apply: nil input")
	}

	input := ShapeOf(x.Shape())
	slices, want, err := c.prepare("apply", input)
	if err != nil {
		return nil, err
	}

	view, err := x.Slice(slices...)
	if err != nil {
		return nil, errors.Wrapf(ErrSlice, "apply: could not slice %v: %v",
			input, err)
	}
	out := tensor.Materialize(view)

	// Slicing drops axes of extent 1
	if !out.Shape().Eq(tensor.Shape(want)) {
		if err := out.Reshape(want...); err != nil {
			return nil, errors.Wrapf(ErrShape, "apply: could not restore "+
				"shape %v: %v", want, err)
		}
	}
	return out, nil
}

// pairs returns the crop amounts as (before, after) pairs
func (c *cropping) pairs() [][2]int {
	return pairsFromCrops(c.crop)
}

// Config returns a description of the layer. The returned map can be
// passed to FromConfig to construct an equivalent layer.
func (c *cropping) Config() map[string]interface{} {
	config := map[string]interface{}{
		"name":     string(c.typ),
		"cropping": c.pairs(),
	}
	if c.rank > 1 {
		config["channel_position"] = string(c.position)
	}
	return config
}

// typedConfig returns the serializable configuration of the layer
func (c *cropping) typedConfig() Config {
	switch c.rank {
	case 1:
		return Cropping1DConfig{Cropping: c.pairs()}

	case 2:
		return Cropping2DConfig{
			Cropping:        c.pairs(),
			ChannelPosition: c.position,
		}
	}

	return Cropping3DConfig{
		Cropping:        c.pairs(),
		ChannelPosition: c.position,
	}
}

// MarshalJSON implements the json.Marshaler interface
func (c *cropping) MarshalJSON() ([]byte, error) {
	return json.Marshal(NewTypedConfig(c.typedConfig()))
}

// String implements the fmt.Stringer interface
func (c *cropping) String() string {
	if c.rank == 1 {
		return fmt.Sprintf("%v{cropping: %v}", c.typ, c.crop)
	}
	return fmt.Sprintf("%v{cropping: %v, channel_position: %v}", c.typ,
		c.crop, c.position)
}
