package network

// Cropping2D crops the two spatial axes of images.
//
// With ChannelsFirst inputs have shape (samples, channels, rows, cols),
// with ChannelsLast they have shape (samples, rows, cols, channels).
// crop[0] is applied to the rows and crop[1] to the columns.
type Cropping2D struct {
	*cropping
}

// NewCropping2D returns a new Cropping2D. If position is
// DefaultPosition, the channel position is taken from the package
// config.
func NewCropping2D(crop []Crop, position ChannelPosition) (*Cropping2D,
	error) {
	c, err := newCropping(Cropping2DType, 2, crop, position)
	if err != nil {
		return nil, err
	}
	return &Cropping2D{c}, nil
}

// Cropping2DConfig implements a configuration of a Cropping2D layer.
type Cropping2DConfig struct {
	Cropping        [][2]int        `mapstructure:"cropping"`
	ChannelPosition ChannelPosition `mapstructure:"channel_position"`
}

// Type returns the type of layer described by the configuration
func (c Cropping2DConfig) Type() Type {
	return Cropping2DType
}

// Create returns the Cropping2D described by the configuration
func (c Cropping2DConfig) Create() (Layer, error) {
	layer, err := NewCropping2D(cropsFromPairs(c.Cropping), c.ChannelPosition)
	if err != nil {
		return nil, err
	}
	return layer, nil
}
