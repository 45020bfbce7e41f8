// Package rpc packages tagged values into remote-procedure-call
// requests and responses. The Receiver is the dispatch shim: it turns
// an inbound byte stream into a method invocation in three strictly
// sequential steps, one call per instance.
package rpc

import (
	"github.com/pkg/errors"
)

// Selector identifies which remote method a request invokes. It is the
// first value read from every request.
type Selector uint16

// Deserializer reads request parts off the inbound stream. Failures are
// reported verbatim; malformed data, read limits, and stream faults all
// abort the call.
type Deserializer interface {
	ReadSelector(sel *Selector) error
	ReadArgs(args ...interface{}) error
}

// Serializer writes the call's result to the outbound sink.
type Serializer interface {
	WriteReturn(v interface{}) error
}

// ErrReceiverState is returned when the three-step protocol is driven
// out of order or an instance is reused without Reset.
var ErrReceiverState = errors.New("receiver step out of order")

type step int

const (
	stepSelector step = iota
	stepArgs
	stepReturn
	stepDone
)

// Receiver composes an injected serializer/deserializer pair into a
// single-use call decoder: GetMethodSelector, then GetArgs, then
// SendReturn, each exactly once. Any failure poisons the instance; no
// step retries, and no state survives into the next call without an
// explicit Reset.
type Receiver struct {
	in   Deserializer
	out  Serializer
	step step
}

func NewReceiver(in Deserializer, out Serializer) *Receiver {
	return &Receiver{in: in, out: out}
}

// GetMethodSelector deserializes exactly one selector from the input.
func (r *Receiver) GetMethodSelector() (Selector, error) {
	if r.step != stepSelector {
		return 0, errors.Wrap(ErrReceiverState, "selector may only be read first")
	}
	var sel Selector
	if err := r.in.ReadSelector(&sel); err != nil {
		r.step = stepDone
		return 0, err
	}
	r.step = stepArgs
	return sel, nil
}

// GetArgs deserializes exactly one argument tuple into args. The
// declared arity and types are fixed by the method being dispatched; a
// wire shape that does not match fails the call.
func (r *Receiver) GetArgs(args ...interface{}) error {
	if r.step != stepArgs {
		return errors.Wrap(ErrReceiverState, "args may only be read after the selector")
	}
	if err := r.in.ReadArgs(args...); err != nil {
		r.step = stepDone
		return err
	}
	r.step = stepReturn
	return nil
}

// SendReturn serializes exactly one return value to the output sink.
// Pass nil for a void return.
func (r *Receiver) SendReturn(v interface{}) error {
	if r.step != stepReturn {
		return errors.Wrap(ErrReceiverState, "return may only be sent after the args")
	}
	r.step = stepDone
	return r.out.WriteReturn(v)
}

// Reset re-arms the receiver for a fresh call.
func (r *Receiver) Reset() {
	r.step = stepSelector
}
