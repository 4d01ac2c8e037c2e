package payload

import (
	"errors"
	"fmt"
	"io"
	"os"
)

var errIsDir = errors.New("is a directory")

// Load reads the whole file at path into memory.
// The file is sized first and the read must return exactly that many bytes.
//
// Example:
//
//	p, err := payload.Load("rootfs.tar.bz2")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d bytes\n", p.Len())
func Load(path string) (*Payload, error) {
	size, err := Size(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	return LoadReader(path, f, size)
}

// Size returns the size of the regular file at path without reading it.
func Size(path string) (int64, error) {
	st, err := os.Stat(path)
	if err != nil {
		return 0, &IOError{Op: "stat", Path: path, Err: err}
	}
	if st.IsDir() {
		return 0, &IOError{Op: "stat", Path: path, Err: errIsDir}
	}
	return st.Size(), nil
}

// LoadReader reads exactly size bytes from r.
// This is useful for testing and for sources that are not plain files.
func LoadReader(name string, r io.Reader, size int64) (*Payload, error) {
	if size < 0 {
		return nil, &IOError{Op: "read", Path: name, Err: fmt.Errorf("invalid size %d", size)}
	}

	data := make([]byte, size)
	n, err := io.ReadFull(r, data)
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			err = fmt.Errorf("%w: size %d read %d", ErrShortRead, size, n)
		}
		return nil, &IOError{Op: "read", Path: name, Err: err}
	}

	return &Payload{Name: name, Data: data}, nil
}
