package chanq

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidHandle is wrapped by the panic value raised when a moved-from
	// (or nil) Sender or Receiver is used.
	ErrInvalidHandle = errors.New("chanq: invalid handle")

	// ErrClosed is returned by RecvContext when the channel is closed and
	// drained.
	ErrClosed = errors.New("chanq: channel closed")

	// ErrIteratorDone is the panic value raised by Iterator.Value on an
	// exhausted iterator.
	ErrIteratorDone = errors.New("chanq: iterator exhausted")
)

// HandleError describes an operation attempted on an empty handle.
type HandleError struct {
	Handle string // "Sender" or "Receiver"
	Op     string
}

func (e *HandleError) Error() string {
	return fmt.Sprintf("%v: %s.%s after the handle was moved", ErrInvalidHandle, e.Handle, e.Op)
}

func (e *HandleError) Unwrap() error {
	return ErrInvalidHandle
}

func invalidHandle(handle, op string) error {
	return errors.WithStack(&HandleError{Handle: handle, Op: op})
}
