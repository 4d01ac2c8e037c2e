package updater

import (
	"context"
	"errors"
	"fmt"

	"github.com/ixonos/utp-com/payload"
	"github.com/ixonos/utp-com/protocol"
)

// ErrDeviceClosed is wrapped by TransportError when an exchange is attempted
// after the device handle was released.
var ErrDeviceClosed = errors.New("device is closed")

// ArgumentError indicates a missing or out-of-range input. No exchange is attempted.
type ArgumentError struct {
	Field  string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// DeviceOpenError indicates the device handle could not be opened.
type DeviceOpenError struct {
	Path string
	Err  error
}

func (e *DeviceOpenError) Error() string {
	return fmt.Sprintf("error opening device %s: %v", e.Path, e.Err)
}

func (e *DeviceOpenError) Unwrap() error {
	return e.Err
}

// TransportError indicates the underlying request mechanism failed.
// The device has been closed by the time this error is returned.
type TransportError struct {
	// Op is the sub-command being exchanged ("exec", "poll", "put")
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s exchange failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// BusyTimeoutError indicates the poll budget ran out without a Pass reply.
type BusyTimeoutError struct {
	Attempts  int
	LastReply protocol.Reply
}

func (e *BusyTimeoutError) Error() string {
	return fmt.Sprintf("device is busy: no pass reply after %d polls (last reply %s)", e.Attempts, e.LastReply)
}

// Kind classifies session failures for reporting.
type Kind int

const (
	KindNone Kind = iota
	KindArgument
	KindPayloadIO
	KindDeviceOpen
	KindTransport
	KindProtocolExit
	KindBusyTimeout
	KindCanceled
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "success"
	case KindArgument:
		return "invalid arguments"
	case KindPayloadIO:
		return "file error"
	case KindDeviceOpen:
		return "device open failed"
	case KindTransport:
		return "transport error"
	case KindProtocolExit:
		return "target reported exit"
	case KindBusyTimeout:
		return "device busy"
	case KindCanceled:
		return "canceled"
	default:
		return "error"
	}
}

// KindOf returns the classification of err, looking through wrapped errors.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}

	var (
		argErr   *ArgumentError
		ioErr    *payload.IOError
		openErr  *DeviceOpenError
		exitErr  *protocol.ProtocolError
		busyErr  *BusyTimeoutError
		transErr *TransportError
	)

	switch {
	case errors.As(err, &argErr):
		return KindArgument
	case errors.As(err, &ioErr):
		return KindPayloadIO
	case errors.As(err, &openErr):
		return KindDeviceOpen
	case errors.As(err, &exitErr):
		return KindProtocolExit
	case errors.As(err, &busyErr):
		return KindBusyTimeout
	case errors.As(err, &transErr):
		return KindTransport
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	default:
		return KindUnknown
	}
}
