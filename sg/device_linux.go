//go:build linux

package sg

import (
	"runtime"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Constants from <scsi/sg.h>.
const (
	sgIO          = 0x2285
	sgDxferToDev  = -2
	sgInterfaceID = 'S'
)

// sgIOHdr mirrors struct sg_io_hdr from <scsi/sg.h>.
type sgIOHdr struct {
	interfaceID    int32
	dxferDirection int32
	cmdLen         uint8
	mxSbLen        uint8
	iovecCount     uint16
	dxferLen       uint32
	dxferp         unsafe.Pointer
	cmdp           unsafe.Pointer
	sbp            unsafe.Pointer
	timeout        uint32
	flags          uint32
	packID         int32
	usrPtr         unsafe.Pointer
	status         uint8
	maskedStatus   uint8
	msgStatus      uint8
	sbLenWr        uint8
	hostStatus     uint16
	driverStatus   uint16
	resid          int32
	duration       uint32
	info           uint32
}

// Device is an open SCSI generic handle.
type Device struct {
	path string
	fd   int
}

// Open opens path read-write for SG_IO requests.
func Open(path string) (*Device, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, err
	}
	return &Device{path: path, fd: fd}, nil
}

// Path returns the device node this handle was opened on.
func (d *Device) Path() string {
	return d.path
}

// Transfer sends cdb with data as a host-to-device data phase and blocks
// until the driver completes the request or timeout elapses. The sense
// buffer is filled by the target. Only an ioctl failure is reported as an
// error; SCSI status bytes are left to the caller's protocol.
func (d *Device) Transfer(cdb, data, sense []byte, timeout time.Duration) error {
	if d.fd < 0 {
		return ErrClosed
	}
	if err := validate(cdb, sense, timeout); err != nil {
		return err
	}

	hdr := sgIOHdr{
		interfaceID:    sgInterfaceID,
		dxferDirection: sgDxferToDev,
		cmdLen:         uint8(len(cdb)),
		mxSbLen:        uint8(len(sense)),
		dxferLen:       uint32(len(data)),
		cmdp:           unsafe.Pointer(&cdb[0]),
		timeout:        timeoutMillis(timeout),
	}
	if len(data) > 0 {
		hdr.dxferp = unsafe.Pointer(&data[0])
	}
	if len(sense) > 0 {
		hdr.sbp = unsafe.Pointer(&sense[0])
	}

	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(d.fd), sgIO, uintptr(unsafe.Pointer(&hdr)))
	runtime.KeepAlive(cdb)
	runtime.KeepAlive(data)
	runtime.KeepAlive(sense)
	if errno != 0 {
		return &IoctlError{Path: d.path, Err: errno}
	}

	return nil
}

// Close releases the file descriptor. Calling Close twice is a no-op.
func (d *Device) Close() error {
	if d.fd < 0 {
		return nil
	}
	err := unix.Close(d.fd)
	d.fd = -1
	return err
}
