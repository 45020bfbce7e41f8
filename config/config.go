package config

import (
	"io"
	"os"
	"path"

	"tagwire/codec"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
)

const ConfigName = "config.toml"

type Config struct {
	LogLevel string      `mapstructure:"log_level"`
	Codec    CodecConfig `mapstructure:"codec"`
}

type CodecConfig struct {
	MaxByteFieldLen uint64 `mapstructure:"max_byte_field_len"`
	MaxArrayLen     int    `mapstructure:"max_array_len"`
	MaxTupleArity   int    `mapstructure:"max_tuple_arity"`
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Codec: CodecConfig{
			MaxByteFieldLen: codec.DefaultMaxByteFieldLen,
			MaxArrayLen:     codec.DefaultMaxArrayLen,
			MaxTupleArity:   codec.DefaultMaxTupleArity,
		},
	}
}

// CodecLimits converts the on-disk limits into a codec Config, filling
// unset values with the defaults.
func (c *Config) CodecLimits() *codec.Config {
	limits := codec.DefaultConfig()
	if c.Codec.MaxByteFieldLen > 0 {
		limits.MaxByteFieldLen = c.Codec.MaxByteFieldLen
	}
	if c.Codec.MaxArrayLen > 0 {
		limits.MaxArrayLen = c.Codec.MaxArrayLen
	}
	if c.Codec.MaxTupleArity > 0 {
		limits.MaxTupleArity = c.Codec.MaxTupleArity
	}
	return limits
}

func ReadConfig(r io.Reader) (*Config, error) {
	decoder := toml.NewDecoder(r)
	decoder.SetTagName("mapstructure")
	config := DefaultConfig()
	if err := decoder.Decode(config); err != nil {
		return nil, errors.Wrap(err, "error decoding config file")
	}
	return config, nil
}

// ReadConfigFile loads the config from homePath. A missing file yields
// the defaults.
func ReadConfigFile(homePath string) (*Config, error) {
	p := ExpandConfigPath(homePath)
	f, err := os.Open(p)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	} else if err != nil {
		return nil, errors.Wrap(err, "error opening config file")
	}
	defer f.Close()
	return ReadConfig(f)
}

func WriteDefaultConfigFile(homePath string) error {
	f, err := os.OpenFile(ExpandConfigPath(homePath), os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return errors.Wrap(err, "error creating config file")
	}
	defer f.Close()
	encoder := toml.NewEncoder(f)
	encoder.SetTagName("mapstructure")
	if err := encoder.Encode(DefaultConfig()); err != nil {
		return errors.Wrap(err, "error writing config file")
	}
	return nil
}

func ExpandConfigPath(homePath string) string {
	return path.Join(ExpandHomePath(homePath), ConfigName)
}
