package sg

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnsupported is returned by Open on platforms without SCSI generic support.
var ErrUnsupported = errors.New("sg: SCSI generic is only supported on linux")

// ErrClosed is returned by Transfer after Close.
var ErrClosed = errors.New("sg: device is closed")

// MaxCommandLen is the largest CDB the sg driver accepts.
const MaxCommandLen = 16

// MaxSenseLen is the largest sense buffer the sg driver fills.
const MaxSenseLen = 255

// IoctlError reports a failed SG_IO request.
type IoctlError struct {
	Path string
	Err  error
}

func (e *IoctlError) Error() string {
	return fmt.Sprintf("SG_IO ioctl error on %s: %v", e.Path, e.Err)
}

func (e *IoctlError) Unwrap() error {
	return e.Err
}

func validate(cdb, sense []byte, timeout time.Duration) error {
	if len(cdb) == 0 || len(cdb) > MaxCommandLen {
		return fmt.Errorf("sg: command length %d out of range 1-%d", len(cdb), MaxCommandLen)
	}
	if len(sense) > MaxSenseLen {
		return fmt.Errorf("sg: sense buffer of %d bytes exceeds %d", len(sense), MaxSenseLen)
	}
	if timeout < 0 {
		return fmt.Errorf("sg: negative timeout %s", timeout)
	}
	return nil
}

// timeoutMillis converts a timeout to the driver's millisecond field.
// Zero maps to the driver's "no timeout" value.
func timeoutMillis(timeout time.Duration) uint32 {
	ms := timeout.Milliseconds()
	if ms <= 0 || ms > int64(^uint32(0)) {
		return ^uint32(0)
	}
	return uint32(ms)
}
