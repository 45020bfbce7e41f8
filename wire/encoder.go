package wire

import "io"

// Encoder is implemented by types that know how to commit themselves to
// a Sink, tag byte first. Satisfying Encoder is the static form of the
// fungibility gate: a type that resolves the interface may serialize as
// itself.
type Encoder interface {
	Encode(s Sink) error
}

// Decoder is implemented by types that can reconstruct themselves from
// a byte stream.
type Decoder interface {
	Decode(r io.Reader) error
}

type EncodeDecoder interface {
	Encoder
	Decoder
}
