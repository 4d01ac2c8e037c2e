package updater

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ixonos/utp-com/payload"
	"github.com/ixonos/utp-com/protocol"
)

func TestErrorMessages(t *testing.T) {
	cause := errors.New("no such file or directory")

	tests := []struct {
		err  error
		want string
	}{
		{&ArgumentError{Field: "device", Reason: "device path is required"}, "invalid device: device path is required"},
		{&DeviceOpenError{Path: "/dev/sdb", Err: cause}, "error opening device /dev/sdb: no such file or directory"},
		{&TransportError{Op: "poll", Err: cause}, "poll exchange failed: no such file or directory"},
		{&BusyTimeoutError{Attempts: 500, LastReply: protocol.ReplyBusy}, "device is busy: no pass reply after 500 polls (last reply busy)"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.Error())
	}
}

func TestErrorsUnwrap(t *testing.T) {
	cause := errors.New("EIO")

	assert.ErrorIs(t, &DeviceOpenError{Path: "/dev/sdb", Err: cause}, cause)
	assert.ErrorIs(t, &TransportError{Op: "exec", Err: cause}, cause)
	assert.ErrorIs(t, &TransportError{Op: "exec", Err: ErrDeviceClosed}, ErrDeviceClosed)
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, KindNone},
		{"argument", &ArgumentError{Field: "command", Reason: "command is required"}, KindArgument},
		{"payload", &payload.IOError{Op: "open", Path: "a.bin", Err: fs.ErrPermission}, KindPayloadIO},
		{"open", &DeviceOpenError{Path: "/dev/sdb", Err: fs.ErrNotExist}, KindDeviceOpen},
		{"transport", &TransportError{Op: "put", Err: errors.New("EIO")}, KindTransport},
		{"exit", &protocol.ProtocolError{Operation: "exec", Reply: protocol.ReplyExit}, KindProtocolExit},
		{"busy", &BusyTimeoutError{Attempts: 500, LastReply: protocol.ReplyBusy}, KindBusyTimeout},
		{"canceled", context.Canceled, KindCanceled},
		{"deadline", fmt.Errorf("poll canceled after 3 attempts: %w", context.DeadlineExceeded), KindCanceled},
		{"wrapped busy", fmt.Errorf("wait for completion: %w", &BusyTimeoutError{Attempts: 1}), KindBusyTimeout},
		{"wrapped exit", fmt.Errorf("exec: %w", &protocol.ProtocolError{Operation: "exec", Reply: protocol.ReplyExit}), KindProtocolExit},
		{"other", errors.New("something else"), KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "success", KindNone.String())
	assert.Equal(t, "device busy", KindBusyTimeout.String())
	assert.Equal(t, "device open failed", KindDeviceOpen.String())
	assert.Equal(t, "error", KindUnknown.String())
	assert.Equal(t, "error", Kind(99).String())
}

func TestCheckPayloadSize(t *testing.T) {
	tests := []struct {
		size    int64
		wantErr bool
	}{
		{size: 0},
		{size: protocol.MaxTransferSize},
		{size: math.MaxUint32},
		{size: math.MaxUint32 + 1, wantErr: true},
		{size: -1, wantErr: true},
	}

	for _, tt := range tests {
		err := CheckPayloadSize(tt.size)
		if !tt.wantErr {
			assert.NoError(t, err, "size %d", tt.size)
			continue
		}

		var argErr *ArgumentError
		if assert.ErrorAs(t, err, &argErr, "size %d", tt.size) {
			assert.Equal(t, "file", argErr.Field)
		}
		assert.Equal(t, KindArgument, KindOf(err))
	}
}
