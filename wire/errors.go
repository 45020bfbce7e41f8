package wire

import (
	"github.com/pkg/errors"
)

var (
	// ErrWriteLimitReached is returned when a bounded sink has no room
	// for the requested write. The sink is unchanged.
	ErrWriteLimitReached = errors.New("write limit reached")

	// ErrReadLimitReached is returned when decoding would exceed a
	// configured read limit.
	ErrReadLimitReached = errors.New("read limit reached")

	// ErrIO is returned when an underlying stream faults, including a
	// premature end of input. The instance that surfaced it must be
	// discarded along with the in-flight message.
	ErrIO = errors.New("i/o fault")

	// ErrIncompatible is returned when a concrete type is not fungible
	// with the declared protocol type. No bytes are emitted.
	ErrIncompatible = errors.New("incompatible type")
)

// Is reports whether err's root cause is the given sentinel.
func Is(err error, sentinel error) bool {
	return errors.Cause(err) == sentinel
}
