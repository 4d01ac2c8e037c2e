//go:build !linux

package sg

import "time"

// Device is unavailable on this platform.
type Device struct {
	path string
}

// Open always fails with ErrUnsupported.
func Open(path string) (*Device, error) {
	return nil, ErrUnsupported
}

// Path returns the device node this handle was opened on.
func (d *Device) Path() string {
	return d.path
}

// Transfer always fails with ErrUnsupported.
func (d *Device) Transfer(cdb, data, sense []byte, timeout time.Duration) error {
	return ErrUnsupported
}

// Close is a no-op.
func (d *Device) Close() error {
	return nil
}
