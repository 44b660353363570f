package frame

import (
	"errors"
	"fmt"
)

// ErrFrameFault indicates a frame step failed and the loop was stopped.
var ErrFrameFault = errors.New("frame: step failed, loop stopped")

// FaultError wraps the cause of a faulted frame with its sequence number.
type FaultError struct {
	Frame   uint64
	Wrapped error
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("%v at frame %d: %v", ErrFrameFault, e.Frame, e.Wrapped)
}

func (e *FaultError) Unwrap() []error {
	return []error{ErrFrameFault, e.Wrapped}
}
