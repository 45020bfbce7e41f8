package rpc

import (
	"bytes"
	"testing"

	"tagwire/codec"
	"tagwire/wire"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestMux_Dispatch(t *testing.T) {
	m := NewMux()
	m.Handle(7, func(r *Receiver) error {
		var a, b int32
		if err := r.GetArgs(&a, &b); err != nil {
			return err
		}
		return r.SendReturn(a + b)
	})

	in := bytes.NewReader(callBytes(t, 7, int32(40), int32(2)))
	out := wire.NewBufferSink(make([]byte, 64))
	require.NoError(t, m.Serve(in, out))

	var ret int32
	r := bytes.NewReader(out.Bytes())
	require.NoError(t, codec.ExpectTag(r, wire.TagReturn))
	require.NoError(t, codec.Decode(r, &ret))
	require.Equal(t, int32(42), ret)
}

func TestMux_UnknownSelector(t *testing.T) {
	m := NewMux()

	in := bytes.NewReader(callBytes(t, 9))
	out := wire.NewBufferSink(make([]byte, 64))
	err := m.Serve(in, out)
	require.True(t, wire.Is(err, wire.ErrIncompatible))

	// The peer sees a tagged fault in place of a return value.
	r := bytes.NewReader(out.Bytes())
	require.NoError(t, codec.ExpectTag(r, wire.TagError))
	var msg string
	require.NoError(t, codec.Decode(r, &msg))
	require.Equal(t, "unknown selector", msg)
}

func TestMux_HandlerError(t *testing.T) {
	m := NewMux()
	m.Handle(1, func(r *Receiver) error {
		var arg uint64
		return r.GetArgs(&arg)
	})

	// Declared arity 1, wire carries 0.
	in := bytes.NewReader(callBytes(t, 1))
	out := wire.NewBufferSink(make([]byte, 64))
	err := m.Serve(in, out)
	require.True(t, wire.Is(err, wire.ErrIncompatible))
	require.Equal(t, 0, out.Size())
}

func TestMux_LastRegistrationWins(t *testing.T) {
	m := NewMux()
	m.Handle(1, func(r *Receiver) error {
		return errors.New("first handler should have been replaced")
	})
	m.Handle(1, func(r *Receiver) error {
		if err := r.GetArgs(); err != nil {
			return err
		}
		return r.SendReturn(uint8(1))
	})

	in := bytes.NewReader(callBytes(t, 1))
	out := wire.NewBufferSink(make([]byte, 64))
	require.NoError(t, m.Serve(in, out))
}
