package wire

import (
	"io"

	"github.com/pkg/errors"
)

const skipChunkLen = 64

// StreamSink commits bytes to an arbitrary io.Writer. Streams are
// treated as unbounded, so Prepare always succeeds; faults are only
// knowable after a write is attempted and surface as ErrIO. Size counts
// the bytes the stream accepted, including any short-write prefix.
//
// StreamSink makes no promise about operations after the first ErrIO:
// callers must discard the sink and the message being built.
type StreamSink struct {
	w    io.Writer
	size int
	tag  [1]byte
}

var _ Sink = (*StreamSink)(nil)

func NewStreamSink(w io.Writer) *StreamSink {
	return &StreamSink{w: w}
}

func (s *StreamSink) Prepare(n int) error {
	return nil
}

func (s *StreamSink) WriteTag(t Tag) error {
	s.tag[0] = byte(t)
	return s.forward(s.tag[:])
}

func (s *StreamSink) WriteRaw(p []byte) error {
	return s.forward(p)
}

func (s *StreamSink) Skip(n int, fill byte) error {
	var chunk [skipChunkLen]byte
	if fill != 0x00 {
		for i := range chunk {
			chunk[i] = fill
		}
	}
	for n > 0 {
		l := n
		if l > skipChunkLen {
			l = skipChunkLen
		}
		if err := s.forward(chunk[:l]); err != nil {
			return err
		}
		n -= l
	}
	return nil
}

func (s *StreamSink) Size() int {
	return s.size
}

func (s *StreamSink) forward(p []byte) error {
	n, err := s.w.Write(p)
	if n > len(p) {
		n = len(p)
	}
	s.size += n
	if err != nil {
		return errors.Wrapf(ErrIO, "stream fault after %d of %d bytes: %v", n, len(p), err)
	}
	if n < len(p) {
		return errors.Wrapf(ErrIO, "short write: %d of %d bytes", n, len(p))
	}
	return nil
}
