// Package config provides process-wide defaults for cropping layers.
//
// The default channel position is consulted whenever a layer is
// constructed with the "default" channel position. It is read, in
// order of precedence, from
//
//	1. the GOCROP_CHANNEL_POSITION environment variable,
//	2. the "channel_position" key of the JSON file gocrop.json in
//	   $GOCROP_HOME (default ~/.gocrop),
//
// and falls back to "channels_first" if neither is set. Values are not
// validated by this package.
package config

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Environment variables read by this package
const (
	EnvChannelPosition = "GOCROP_CHANNEL_POSITION"
	EnvHome            = "GOCROP_HOME"
)

// FileName is the name of the configuration file in Home
const FileName = "gocrop.json"

// DefaultChannelPosition is used when no channel position is configured
const DefaultChannelPosition = "channels_first"

// File is the content of the configuration file
type File struct {
	ChannelPosition string `json:"channel_position"`
}

var (
	mu              sync.Mutex
	loaded          bool
	channelPosition string
)

// Home returns the directory holding the configuration file
func Home() string {
	if home := strings.TrimSpace(os.Getenv(EnvHome)); home != "" {
		return home
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ".gocrop"
	}
	return filepath.Join(home, ".gocrop")
}

// Path returns the path of the configuration file
func Path() string {
	return filepath.Join(Home(), FileName)
}

// LoadFile reads the configuration file at path
func LoadFile(path string) (File, error) {
	var f File

	data, err := os.ReadFile(path)
	if err != nil {
		return f, err
	}

	if err := json.Unmarshal(data, &f); err != nil {
		return f, err
	}
	return f, nil
}

// load determines the default channel position. It must be called with
// mu held.
func load() {
	loaded = true
	channelPosition = DefaultChannelPosition

	if pos := strings.TrimSpace(os.Getenv(EnvChannelPosition)); pos != "" {
		channelPosition = pos
		return
	}

	path := Path()
	f, err := LoadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return

	case err != nil:
		slog.Warn("could not read config file, using defaults", "path", path,
			"error", err)
		return
	}

	if pos := strings.TrimSpace(f.ChannelPosition); pos != "" {
		channelPosition = pos
	}
}

// ChannelPosition returns the default channel position
func ChannelPosition() string {
	mu.Lock()
	defer mu.Unlock()

	if !loaded {
		load()
	}
	return channelPosition
}

// SetChannelPosition overrides the default channel position until the
// next call to Reset.
func SetChannelPosition(pos string) {
	mu.Lock()
	defer mu.Unlock()

	loaded = true
	channelPosition = pos
}

// Reset discards overrides so that the default channel position is
// read again from the environment and the configuration file.
func Reset() {
	mu.Lock()
	defer mu.Unlock()

	loaded = false
	channelPosition = ""
}

// AsMap returns the current configuration keyed by the environment
// variable which sets each value.
func AsMap() map[string]string {
	return map[string]string{
		EnvChannelPosition: ChannelPosition(),
		EnvHome:            Home(),
	}
}
