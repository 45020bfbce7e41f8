// Package testutil holds shared test doubles for exercising sink and
// codec failure paths.
package testutil

import (
	"bytes"

	"github.com/pkg/errors"
)

// FlakyWriter accepts Remaining bytes and then faults mid-write,
// reporting the prefix it accepted the way a real stream would.
type FlakyWriter struct {
	Remaining int
	Buf       bytes.Buffer
}

var ErrFlaky = errors.New("flaky writer fault")

func (f *FlakyWriter) Write(p []byte) (int, error) {
	if len(p) <= f.Remaining {
		f.Remaining -= len(p)
		return f.Buf.Write(p)
	}
	n := f.Remaining
	f.Remaining = 0
	f.Buf.Write(p[:n])
	return n, ErrFlaky
}
