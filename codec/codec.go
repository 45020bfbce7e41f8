// Package codec maps Go values onto the tagged wire format: every value
// is committed as one tag byte followed by a representation-specific
// payload. Encoding drives a wire.Sink; decoding consumes an io.Reader.
package codec

const (
	DefaultMaxByteFieldLen = 256 * 1024
	DefaultMaxArrayLen     = 1024
	DefaultMaxTupleArity   = 16
)

// Config bounds what the codec is willing to produce or reconstruct.
// Limits apply to length prefixes read off the wire before any payload
// allocation happens.
type Config struct {
	// MaxByteFieldLen is the largest byte/string field the codec will
	// encode or decode.
	MaxByteFieldLen uint64

	// MaxArrayLen is the largest element count accepted for arrays.
	MaxArrayLen int

	// MaxTupleArity is the largest argument tuple accepted.
	MaxTupleArity int
}

var defaultConfig = &Config{
	MaxByteFieldLen: DefaultMaxByteFieldLen,
	MaxArrayLen:     DefaultMaxArrayLen,
	MaxTupleArity:   DefaultMaxTupleArity,
}

// DefaultConfig returns a fresh copy of the default limits.
func DefaultConfig() *Config {
	cfg := *defaultConfig
	return &cfg
}
