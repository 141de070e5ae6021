package network

// Cropping3D crops the three spatial axes of volumes, e.g. of
// spatio-temporal data.
//
// With ChannelsFirst inputs have shape
// (samples, channels, dim1, dim2, dim3), with ChannelsLast they have
// shape (samples, dim1, dim2, dim3, channels).
type Cropping3D struct {
	*cropping
}

// NewCropping3D returns a new Cropping3D. If position is
// DefaultPosition, the channel position is taken from the package
// config.
func NewCropping3D(crop []Crop, position ChannelPosition) (*Cropping3D,
	error) {
	c, err := newCropping(Cropping3DType, 3, crop, position)
	if err != nil {
		return nil, err
	}
	return &Cropping3D{c}, nil
}

// Cropping3DConfig implements a configuration of a Cropping3D layer.
type Cropping3DConfig struct {
	Cropping        [][2]int        `mapstructure:"cropping"`
	ChannelPosition ChannelPosition `mapstructure:"channel_position"`
}

// Type returns the type of layer described by the configuration
func (c Cropping3DConfig) Type() Type {
	return Cropping3DType
}

// Create returns the Cropping3D described by the configuration
func (c Cropping3DConfig) Create() (Layer, error) {
	layer, err := NewCropping3D(cropsFromPairs(c.Cropping), c.ChannelPosition)
	if err != nil {
		return nil, err
	}
	return layer, nil
}
