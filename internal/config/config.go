// Package config loads settings for the interactive music expression demo.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/musicexpr"
)

// Config holds the session configuration.
type Config struct {
	// Octave is the octave in which notes are turned into MIDI keys and
	// frequencies.
	Octave int `yaml:"octave"`
	// Channel is the MIDI channel, 0 to 15.
	Channel int `yaml:"channel"`
	// Velocity is the MIDI note-on velocity, 1 to 127.
	Velocity int `yaml:"velocity"`
	// Precision is the number of bits used to compute frequencies.
	Precision uint `yaml:"precision"`
	// Verbose enables diagnostic logging.
	Verbose bool `yaml:"verbose"`
}

// Environment variables that override file settings.
const (
	EnvOctave    = "MUSICEXPR_OCTAVE"
	EnvChannel   = "MUSICEXPR_CHANNEL"
	EnvVelocity  = "MUSICEXPR_VELOCITY"
	EnvPrecision = "MUSICEXPR_PRECISION"
	EnvVerbose   = "MUSICEXPR_VERBOSE"
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Octave:    4,
		Channel:   0,
		Velocity:  100,
		Precision: 64,
	}
}

// Load builds a configuration from the defaults, then the YAML file at path
// unless path is empty, then environment variables. Variables in envFiles
// apply where the process environment does not set them; env files that do
// not exist are skipped. The result is validated.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		if err := cfg.decode(b); err != nil {
			return nil, fmt.Errorf("config: %s: %w", path, err)
		}
	}
	dotenv := make(map[string]string)
	for _, f := range envFiles {
		m, err := godotenv.Read(f)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("config: %s: %w", f, err)
		}
		for k, v := range m {
			if _, ok := dotenv[k]; !ok {
				dotenv[k] = v
			}
		}
	}
	getEnv := func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return dotenv[key]
	}
	if err := cfg.applyEnv(getEnv); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode reads YAML settings over the current values. Unknown keys are
// errors.
func (c *Config) decode(b []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) applyEnv(getEnv func(string) string) error {
	ints := []struct {
		key string
		dst *int
	}{
		{EnvOctave, &c.Octave},
		{EnvChannel, &c.Channel},
		{EnvVelocity, &c.Velocity},
	}
	for _, v := range ints {
		s := getEnv(v.key)
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("%s: %w", v.key, err)
		}
		*v.dst = n
	}
	if s := getEnv(EnvPrecision); s != "" {
		n, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPrecision, err)
		}
		c.Precision = uint(n)
	}
	if s := getEnv(EnvVerbose); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvVerbose, err)
		}
		c.Verbose = b
	}
	return nil
}

// Validate checks that every setting is in range.
func (c *Config) Validate() error {
	switch {
	case c.Octave < musicexpr.MinOctave || c.Octave > musicexpr.MaxOctave:
		return fmt.Errorf("config: octave %d outside %d to %d", c.Octave, musicexpr.MinOctave, musicexpr.MaxOctave)
	case c.Channel < 0 || c.Channel > 15:
		return fmt.Errorf("config: channel %d outside 0 to 15", c.Channel)
	case c.Velocity < 1 || c.Velocity > 127:
		return fmt.Errorf("config: velocity %d outside 1 to 127", c.Velocity)
	case c.Precision < 16 || c.Precision > 1024:
		return fmt.Errorf("config: precision %d outside 16 to 1024", c.Precision)
	}
	return nil
}
