package wire

import (
	"bytes"
	"testing"

	"tagwire/testutil"

	"github.com/stretchr/testify/require"
)

func TestStreamSink_Writes(t *testing.T) {
	var buf bytes.Buffer
	s := NewStreamSink(&buf)

	require.NoError(t, s.Prepare(1 << 30))
	require.NoError(t, s.WriteTag(TagString))
	require.NoError(t, s.WriteRaw([]byte{0x03, 'f', 'o', 'o'}))
	require.NoError(t, s.Skip(3, 0x00))

	require.Equal(t, 8, s.Size())
	require.Equal(t, []byte{byte(TagString), 0x03, 'f', 'o', 'o', 0x00, 0x00, 0x00}, buf.Bytes())
}

func TestStreamSink_SkipFill(t *testing.T) {
	var buf bytes.Buffer
	s := NewStreamSink(&buf)
	require.NoError(t, s.Skip(130, 0x5a))
	require.Equal(t, 130, s.Size())
	for _, b := range buf.Bytes() {
		require.Equal(t, byte(0x5a), b)
	}
}

func TestStreamSink_FaultMidWrite(t *testing.T) {
	w := &testutil.FlakyWriter{Remaining: 2}
	s := NewStreamSink(w)

	require.NoError(t, s.WriteTag(TagBytes))
	require.Equal(t, 1, s.Size())

	err := s.WriteRaw([]byte{0x01, 0x02, 0x03})
	require.Error(t, err)
	require.True(t, Is(err, ErrIO))
	// Size counts the accepted prefix; the message is invalid and must
	// be discarded along with the sink.
	require.Equal(t, 2, s.Size())
}

func TestStreamSink_FaultOnTag(t *testing.T) {
	w := &testutil.FlakyWriter{Remaining: 0}
	s := NewStreamSink(w)
	err := s.WriteTag(TagVoid)
	require.True(t, Is(err, ErrIO))
	require.Equal(t, 0, s.Size())
}

type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) {
	if len(p) > 1 {
		return 1, nil
	}
	return len(p), nil
}

func TestStreamSink_ShortWriteIsFault(t *testing.T) {
	s := NewStreamSink(shortWriter{})
	err := s.WriteRaw([]byte{0x01, 0x02})
	require.True(t, Is(err, ErrIO))
	require.Equal(t, 1, s.Size())
}
