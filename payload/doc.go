// Package payload loads the file that accompanies an upload command.
//
// The UTP upload announces the total size before the first Put chunk, so the
// file is sized and buffered completely up front:
//
//	p, err := payload.Load("/tmp/u-boot.imx")
//	if err != nil {
//	    var ioErr *payload.IOError
//	    if errors.As(err, &ioErr) {
//	        log.Printf("%s failed: %v", ioErr.Op, ioErr.Err)
//	    }
//	    return err
//	}
//
// A file that shrinks between stat and read fails with ErrShortRead.
package payload
