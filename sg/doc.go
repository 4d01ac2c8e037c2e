// Package sg issues SCSI commands through the Linux SCSI generic driver.
//
// A Device wraps a file descriptor opened read-write on a block or sg node
// (for example /dev/sdb or /dev/sg2) and performs one blocking SG_IO ioctl
// per Transfer. Only host-to-device transfers are supported; the status
// returned by the target comes back through the sense buffer.
//
//	dev, err := sg.Open("/dev/sdb")
//	if err != nil {
//	    return err
//	}
//	defer dev.Close()
//
//	sense := make([]byte, 16)
//	err = dev.Transfer(cdb, data, sense, 5*time.Minute)
//
// On platforms other than Linux, Open returns ErrUnsupported.
package sg
