package wire

import (
	"github.com/pkg/errors"
)

// BufferSink commits bytes into a caller-owned fixed-size region. Every
// operation checks the remaining room before mutating the buffer, so a
// refused write leaves both the buffer and Size untouched. BufferSink
// never allocates.
type BufferSink struct {
	buf []byte
	off int
}

var _ Sink = (*BufferSink)(nil)

// NewBufferSink wraps buf. The sink's capacity is len(buf); the caller
// retains ownership of the backing array.
func NewBufferSink(buf []byte) *BufferSink {
	return &BufferSink{buf: buf}
}

func (b *BufferSink) remaining() int {
	return len(b.buf) - b.off
}

func (b *BufferSink) Prepare(n int) error {
	if n > b.remaining() {
		return errors.Wrapf(ErrWriteLimitReached, "need %d bytes, %d remain", n, b.remaining())
	}
	return nil
}

func (b *BufferSink) WriteTag(t Tag) error {
	if b.remaining() < 1 {
		return errors.Wrapf(ErrWriteLimitReached, "no room for tag %s", t)
	}
	b.buf[b.off] = byte(t)
	b.off++
	return nil
}

func (b *BufferSink) WriteRaw(p []byte) error {
	if len(p) > b.remaining() {
		return errors.Wrapf(ErrWriteLimitReached, "need %d bytes, %d remain", len(p), b.remaining())
	}
	copy(b.buf[b.off:], p)
	b.off += len(p)
	return nil
}

func (b *BufferSink) Skip(n int, fill byte) error {
	if n > b.remaining() {
		return errors.Wrapf(ErrWriteLimitReached, "need %d bytes, %d remain", n, b.remaining())
	}
	for i := 0; i < n; i++ {
		b.buf[b.off+i] = fill
	}
	b.off += n
	return nil
}

func (b *BufferSink) Size() int {
	return b.off
}

// Bytes returns the committed prefix of the backing buffer.
func (b *BufferSink) Bytes() []byte {
	return b.buf[:b.off]
}
