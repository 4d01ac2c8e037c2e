package payload

import (
	"errors"
	"fmt"
)

// ErrShortRead is wrapped by IOError when a file yields fewer bytes than its stat size.
var ErrShortRead = errors.New("not all data was read")

// IOError indicates the payload file could not be sized, opened or fully read.
type IOError struct {
	// Op is the failing step: "stat", "open" or "read"
	Op string

	// Path is the file being loaded
	Path string

	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("payload %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
