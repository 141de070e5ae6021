package network

import (
	"encoding/json"
	"math"
	"reflect"
	"sort"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// Config implements a Layer configuration and can be used to create
// the described Layer.
type Config interface {
	// Create returns the Layer that the Config describes
	Create() (Layer, error)

	// Type returns the type of Layer that is created
	Type() Type
}

// Registered types with the package. Once a Type has been registered
// with this map, a TypedConfig of that Type can be unmarshalled. The
// registered Config holds the values of keys missing from the decoded
// data.
var registeredTypes = map[Type]Config{
	Cropping1DType: Cropping1DConfig{},
	Cropping2DType: Cropping2DConfig{ChannelPosition: DefaultPosition},
	Cropping3DType: Cropping3DConfig{ChannelPosition: DefaultPosition},
}

// Register registers a Layer Type with a concrete Config so that
// TypedConfigs and configuration maps of that Type can be decoded into
// the concrete Config type. Fields of config serve as defaults.
func Register(layerType Type, config Config) {
	registeredTypes[layerType] = config
}

// NewCropping returns a new cropping Layer which crops rank spatial
// axes. For rank 1 the channel position is ignored.
func NewCropping(rank int, crop []Crop, position ChannelPosition) (Layer,
	error) {
	switch rank {
	case 1:
		if len(crop) != 1 {
			return nil, errInvalidPairs(Cropping1DType, 1, len(crop))
		}
		return Cropping1DConfig{Cropping: pairsFromCrops(crop)}.Create()

	case 2:
		return Cropping2DConfig{pairsFromCrops(crop), position}.Create()

	case 3:
		return Cropping3DConfig{pairsFromCrops(crop), position}.Create()
	}

	return nil, errors.Wrapf(ErrConfig, "newcropping: rank must be 1, 2 "+
		"or 3 but got %d", rank)
}

// TypedConfig wraps a Config so that it can be JSON marshalled and
// unmarshalled into its concrete type. The Type of the Config is
// stored alongside it.
type TypedConfig struct {
	Type
	Config
}

// NewTypedConfig types the argument Config
func NewTypedConfig(c Config) TypedConfig {
	return TypedConfig{Type: c.Type(), Config: c}
}

// UnmarshalJSON implements the json.Unmarshaler interface
func (t *TypedConfig) UnmarshalJSON(data []byte) error {
	config, typeName, err := unmarshalConfig(data, "Type", "Config")
	if err != nil {
		return err
	}

	t.Type = typeName
	t.Config = config

	return nil
}

// unmarshalConfig uses reflection to unmarshal a Config into its
// concrete type. Both the Config and its Type are returned.
func unmarshalConfig(data []byte, typeJSONField,
	valueJSONField string) (Config, Type, error) {
	m := map[string]interface{}{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, "", errors.Wrapf(ErrConfig, "unmarshalconfig: %v", err)
	}

	typeName, ok := m[typeJSONField].(string)
	if !ok {
		return nil, "", errors.Wrapf(ErrConfig, "unmarshalconfig: missing "+
			"field %q", typeJSONField)
	}

	// JSON configs use the Go field names as keys
	config, _, err := decodeConfig(Type(typeName), m[valueJSONField], "json")
	if err != nil {
		return nil, "", errors.WithMessage(err, "unmarshalconfig")
	}

	return config, Type(typeName), nil
}

// Unmarshal constructs the Layer described by a JSON encoded
// TypedConfig, as produced by json.Marshal on any cropping layer.
func Unmarshal(data []byte) (Layer, error) {
	var config TypedConfig
	if err := config.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return config.Create()
}

// FromConfig constructs the Layer described by config, a map as
// returned by Layer.Config. The map must hold the Layer's Type under
// the key "name".
func FromConfig(config map[string]interface{}) (Layer, error) {
	name, ok := config["name"].(string)
	if !ok {
		return nil, errors.Wrap(ErrConfig, "fromconfig: missing layer name")
	}

	value, unusedKeys, err := decodeConfig(Type(name), config, "mapstructure")
	if err != nil {
		return nil, errors.WithMessage(err, "fromconfig")
	}

	var unused []string
	for _, key := range unusedKeys {
		// Sequences have no channel position but may be described
		// alongside layers that do
		if key != "name" && key != "channel_position" {
			unused = append(unused, key)
		}
	}
	if len(unused) > 0 {
		sort.Strings(unused)
		return nil, errors.Wrapf(ErrConfig, "fromconfig: unknown keys %v "+
			"for layer type %v", unused, name)
	}

	return value.Create()
}

// decodeConfig decodes data into a copy of the Config registered for
// typ. Struct fields are matched to keys by the tag tagName, or by
// field name for untagged fields. The keys of data which match no
// field are returned.
func decodeConfig(typ Type, data interface{}, tagName string) (Config,
	[]string, error) {
	registered, found := registeredTypes[typ]
	if !found {
		return nil, nil, errors.Wrapf(ErrConfig, "no such layer type %q", typ)
	}
	value := reflect.New(reflect.TypeOf(registered))
	value.Elem().Set(reflect.ValueOf(registered))

	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: strictIntegers,
		Metadata:   &md,
		Result:     value.Interface(),
		TagName:    tagName,
	})
	if err != nil {
		return nil, nil, errors.Wrap(ErrConfig, err.Error())
	}
	if err := decoder.Decode(data); err != nil {
		return nil, nil, errors.Wrap(ErrConfig, err.Error())
	}

	return value.Elem().Interface().(Config), md.Unused, nil
}

// strictIntegers is a mapstructure.DecodeHookFuncType which refuses to
// truncate fractional numbers into ints and to pad or truncate lists
// decoded into fixed size arrays, such as (before, after) pairs.
func strictIntegers(from, to reflect.Type, data interface{}) (interface{},
	error) {
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Int64:
		var f float64
		switch v := data.(type) {
		case float64:
			f = v
		case float32:
			f = float64(v)
		default:
			return data, nil
		}
		if f != math.Trunc(f) || math.IsInf(f, 0) {
			return nil, errors.Errorf("%v is not an integer", f)
		}

	case reflect.Array:
		if from.Kind() != reflect.Slice && from.Kind() != reflect.Array {
			return data, nil
		}
		if n := reflect.ValueOf(data).Len(); n != to.Len() {
			return nil, errors.Errorf("expected %d elements but got %d in %v",
				to.Len(), n, data)
		}
	}
	return data, nil
}

// cropsFromPairs converts (before, after) pairs into Crops
func cropsFromPairs(pairs [][2]int) []Crop {
	crop := make([]Crop, len(pairs))
	for i, pair := range pairs {
		crop[i] = Crop{Before: pair[0], After: pair[1]}
	}
	return crop
}

// pairsFromCrops converts Crops into (before, after) pairs
func pairsFromCrops(crop []Crop) [][2]int {
	pairs := make([][2]int, len(crop))
	for i, c := range crop {
		pairs[i] = [2]int{c.Before, c.After}
	}
	return pairs
}

// errInvalidPairs returns the error reported when a configuration
// holds the wrong number of crop pairs
func errInvalidPairs(typ Type, want, have int) error {
	msg := "create: invalid number of crop amounts for %v\n\twant(%d)" +
		"\n\thave(%d)"
	return errors.Wrapf(ErrConfig, msg, typ, want, have)
}
