package rpc

import (
	"encoding/binary"
	"io"

	"tagwire/codec"
	"tagwire/wire"

	"github.com/pkg/errors"
)

// Codec is the concrete Serializer/Deserializer pair over the tagged
// wire format. Requests carry a selector followed by an argument tuple;
// responses carry a single return value. On the wire:
//
//	TagSelector <uint16>  TagTuple <arity> <tagged value>...
//	TagReturn <tagged value>
type Codec struct {
	r   io.Reader
	s   wire.Sink
	cfg *codec.Config
}

var (
	_ Serializer   = (*Codec)(nil)
	_ Deserializer = (*Codec)(nil)
)

func NewCodec(r io.Reader, s wire.Sink) *Codec {
	return NewConfiguredCodec(r, s, codec.DefaultConfig())
}

func NewConfiguredCodec(r io.Reader, s wire.Sink, cfg *codec.Config) *Codec {
	return &Codec{r: r, s: s, cfg: cfg}
}

func (c *Codec) ReadSelector(sel *Selector) error {
	if err := codec.ExpectTag(c.r, wire.TagSelector); err != nil {
		return err
	}
	var b [2]byte
	if _, err := io.ReadFull(c.r, b[:]); err != nil {
		return errors.Wrapf(wire.ErrIO, "premature end of input: %v", err)
	}
	*sel = Selector(binary.BigEndian.Uint16(b[:]))
	return nil
}

func (c *Codec) ReadArgs(args ...interface{}) error {
	if err := codec.ExpectTag(c.r, wire.TagTuple); err != nil {
		return err
	}
	var b [1]byte
	if _, err := io.ReadFull(c.r, b[:]); err != nil {
		return errors.Wrapf(wire.ErrIO, "premature end of input: %v", err)
	}
	arity := int(b[0])
	if arity > c.cfg.MaxTupleArity {
		return errors.Wrapf(wire.ErrReadLimitReached, "tuple arity %d exceeds limit %d", arity, c.cfg.MaxTupleArity)
	}
	if arity != len(args) {
		return errors.Wrapf(wire.ErrIncompatible, "wire arity %d does not match declared arity %d", arity, len(args))
	}
	for _, arg := range args {
		if err := c.cfg.Decode(c.r, arg); err != nil {
			return err
		}
	}
	return nil
}

func (c *Codec) WriteReturn(v interface{}) error {
	if v != nil && !wire.CanEncode(v) {
		return errors.Wrapf(wire.ErrIncompatible, "return type %T is not encodable", v)
	}
	if err := c.s.WriteTag(wire.TagReturn); err != nil {
		return err
	}
	return c.cfg.Encode(c.s, v)
}

// WriteCall emits a complete request: selector, then the argument tuple.
// Every argument is gated before the first byte goes out.
func (c *Codec) WriteCall(sel Selector, args ...interface{}) error {
	if len(args) > c.cfg.MaxTupleArity || len(args) > 0xff {
		return errors.Wrapf(wire.ErrWriteLimitReached, "tuple arity %d exceeds limit %d", len(args), c.cfg.MaxTupleArity)
	}
	for _, arg := range args {
		if arg != nil && !wire.CanEncode(arg) {
			return errors.Wrapf(wire.ErrIncompatible, "argument type %T is not encodable", arg)
		}
	}

	var selBuf [2]byte
	binary.BigEndian.PutUint16(selBuf[:], uint16(sel))
	if err := c.s.Prepare(3 + 2); err != nil {
		return err
	}
	if err := c.s.WriteTag(wire.TagSelector); err != nil {
		return err
	}
	if err := c.s.WriteRaw(selBuf[:]); err != nil {
		return err
	}
	if err := c.s.WriteTag(wire.TagTuple); err != nil {
		return err
	}
	if err := c.s.WriteRaw([]byte{byte(len(args))}); err != nil {
		return err
	}
	for _, arg := range args {
		if err := c.cfg.Encode(c.s, arg); err != nil {
			return err
		}
	}
	return nil
}

// WriteFault reports a failed call to the peer as a tagged error string
// in place of a return value.
func (c *Codec) WriteFault(msg string) error {
	if err := c.s.WriteTag(wire.TagError); err != nil {
		return err
	}
	return c.cfg.Encode(c.s, msg)
}
