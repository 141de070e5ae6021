package network

import (
	"github.com/pkg/errors"
	"github.com/samuelfneumann/gocrop/config"
)

// ChannelPosition describes where the channel axis of an array sits.
type ChannelPosition string

// Available channel positions
const (
	// ChannelsFirst places the channel axis directly after the batch
	// axis: (batch, channels, spatial...)
	ChannelsFirst ChannelPosition = "channels_first"

	// ChannelsLast places the channel axis last:
	// (batch, spatial..., channels)
	ChannelsLast ChannelPosition = "channels_last"

	// DefaultPosition resolves to the process-wide default, see
	// config.ChannelPosition
	DefaultPosition ChannelPosition = "default"
)

// ParseChannelPosition parses a channel position token. Besides the
// names of the ChannelPosition constants, the legacy tokens "th"
// (channels first) and "tf" (channels last) are accepted. Tokens are
// case sensitive and the empty token is illegal.
//
// DefaultPosition is not resolved by this function, use Resolve.
func ParseChannelPosition(s string) (ChannelPosition, error) {
	switch s {
	case string(ChannelsFirst), "th":
		return ChannelsFirst, nil

	case string(ChannelsLast), "tf":
		return ChannelsLast, nil

	case string(DefaultPosition):
		return DefaultPosition, nil
	}

	return "", errors.Wrapf(ErrConfig, "parsechannelposition: illegal "+
		"channel position %q", s)
}

// Resolve returns the concrete channel position described by c. If c
// is DefaultPosition, the process-wide default is returned.
func (c ChannelPosition) Resolve() (ChannelPosition, error) {
	pos, err := ParseChannelPosition(string(c))
	if err != nil {
		return "", err
	}
	if pos != DefaultPosition {
		return pos, nil
	}

	pos, err = ParseChannelPosition(config.ChannelPosition())
	if err != nil || pos == DefaultPosition {
		return "", errors.Wrapf(ErrConfig, "resolve: illegal default "+
			"channel position %q", config.ChannelPosition())
	}
	return pos, nil
}

// String implements the fmt.Stringer interface
func (c ChannelPosition) String() string {
	return string(c)
}
