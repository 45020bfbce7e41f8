package wire

// Sink is the capability set every byte sink honors. Encoders commit
// values by emitting exactly one tag byte followed by the value's
// payload through WriteRaw.
//
// Sinks are exclusively owned by the single message-building sequence
// that created them; no internal synchronization is provided. A failed
// write is not rolled back: Size still reflects only committed bytes,
// but the message under construction is invalid and must be discarded
// whole. None of these operations retries or logs.
type Sink interface {
	// Prepare validates that room exists for n more bytes without
	// writing anything. Unbounded sinks always succeed.
	Prepare(n int) error

	// WriteTag emits the single tag byte t.
	WriteTag(t Tag) error

	// WriteRaw emits p verbatim. The range is committed atomically with
	// respect to Size: either all of p is counted or none of it.
	WriteRaw(p []byte) error

	// Skip emits n copies of fill, for alignment and padding.
	Skip(n int, fill byte) error

	// Size returns the cumulative count of bytes actually committed.
	Size() int
}
