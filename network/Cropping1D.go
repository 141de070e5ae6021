package network

// Cropping1D crops the single spatial axis of sequences, for example
// the time axis of a temporal sequence.
//
// Inputs have shape (samples, steps, features) and outputs have shape
// (samples, steps - before - after, features).
type Cropping1D struct {
	*cropping
}

// NewCropping1D returns a new Cropping1D which trims crop.Before
// elements from the beginning and crop.After elements from the end of
// axis 1.
func NewCropping1D(crop Crop) (*Cropping1D, error) {
	c, err := newCropping(Cropping1DType, 1, []Crop{crop}, ChannelsLast)
	if err != nil {
		return nil, err
	}
	return &Cropping1D{c}, nil
}

// Cropping1DConfig implements a configuration of a Cropping1D layer.
type Cropping1DConfig struct {
	Cropping [][2]int `mapstructure:"cropping"`
}

// Type returns the type of layer described by the configuration
func (c Cropping1DConfig) Type() Type {
	return Cropping1DType
}

// Create returns the Cropping1D described by the configuration
func (c Cropping1DConfig) Create() (Layer, error) {
	crop := cropsFromPairs(c.Cropping)
	if len(crop) != 1 {
		return nil, errInvalidPairs(Cropping1DType, 1, len(crop))
	}

	layer, err := NewCropping1D(crop[0])
	if err != nil {
		return nil, err
	}
	return layer, nil
}
