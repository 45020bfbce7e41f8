package config

import (
	"io/ioutil"
	"os"
	"path"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadConfig(t *testing.T) {
	in := `
log_level = "debug"

[codec]
max_byte_field_len = 1024
max_tuple_arity = 4
`
	cfg, err := ReadConfig(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, uint64(1024), cfg.Codec.MaxByteFieldLen)
	require.Equal(t, 4, cfg.Codec.MaxTupleArity)

	limits := cfg.CodecLimits()
	require.Equal(t, uint64(1024), limits.MaxByteFieldLen)
	require.Equal(t, 4, limits.MaxTupleArity)
	// Unset values fall back to the defaults.
	require.Equal(t, DefaultConfig().Codec.MaxArrayLen, limits.MaxArrayLen)
}

func TestReadConfig_Invalid(t *testing.T) {
	_, err := ReadConfig(strings.NewReader("log_level = ["))
	require.Error(t, err)
}

func TestReadConfigFile_Missing(t *testing.T) {
	cfg, err := ReadConfigFile(path.Join(os.TempDir(), "tagwire-nonexistent"))
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}

func TestInitHomeDirRoundTrip(t *testing.T) {
	home, err := ioutil.TempDir("", "tagwire-test")
	require.NoError(t, err)
	defer os.RemoveAll(home)

	require.NoError(t, InitHomeDir(home))
	exists, err := HomeDirExists(home)
	require.NoError(t, err)
	require.True(t, exists)

	cfg, err := ReadConfigFile(home)
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}
