package rpc

import (
	"io"

	"tagwire/log"
	"tagwire/wire"

	"github.com/pkg/errors"
)

// Handler services one decoded call. It must drive the receiver through
// GetArgs and SendReturn itself; the selector has already been consumed
// when the handler runs.
type Handler func(r *Receiver) error

// Mux maps selectors to handlers. It is the external collaborator the
// receiver's contract assumes: the receiver performs the three steps,
// the mux decides which handler gets them. Logging happens here, never
// inside the sink or receiver operations.
type Mux struct {
	handlers map[Selector]Handler
	lgr      log.Logger
}

func NewMux() *Mux {
	return &Mux{
		handlers: make(map[Selector]Handler),
		lgr:      log.WithModule("rpc-mux"),
	}
}

// Handle registers h for sel, replacing any previous registration.
func (m *Mux) Handle(sel Selector, h Handler) {
	m.handlers[sel] = h
}

// Serve performs exactly one dispatch: it reads a selector from in and
// hands a fresh receiver to the matching handler. An unknown selector
// is reported to the peer as a tagged fault. Any error invalidates the
// in-flight call; the caller decides whether the underlying stream
// survives.
func (m *Mux) Serve(in io.Reader, out wire.Sink) error {
	c := NewCodec(in, out)
	rcv := NewReceiver(c, c)

	sel, err := rcv.GetMethodSelector()
	if err != nil {
		m.lgr.Error("failed to read selector", "err", err)
		return err
	}

	h, ok := m.handlers[sel]
	if !ok {
		m.lgr.Warn("no handler for selector", "selector", uint16(sel))
		if wErr := c.WriteFault("unknown selector"); wErr != nil {
			return wErr
		}
		return errors.Wrapf(wire.ErrIncompatible, "no handler for selector %d", sel)
	}

	if err := h(rcv); err != nil {
		m.lgr.Error("handler failed", "selector", uint16(sel), "err", err)
		return err
	}
	return nil
}
