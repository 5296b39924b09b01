// Container header.
//
// The header is always the first 4 bytes of the file and is never
// compressed: the 3-byte tag "CKT" followed by a compression flag byte. When
// the flag is set everything after the header is a single zstd frame that
// inflates to the uncompressed payload.
package cktext

import (
	"fmt"
	"io"
)

// Magic is the file tag at the start of every container.
const Magic = "CKT"

// HeaderSize is the size of the uncompressed header in bytes.
const HeaderSize = 4

// header encodes the container header.
func header(compressed bool) []byte {
	buf := []byte{Magic[0], Magic[1], Magic[2], 0}
	if compressed {
		buf[3] = 1
	}
	return buf
}

// readHeader parses the container header. On a bad tag the stream is put
// back where it was.
func readHeader(r io.ReadSeeker) (compressed bool, err error) {
	start, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return false, err
	}

	var buf [HeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		r.Seek(start, io.SeekStart)
		return false, fmt.Errorf("%w: %w", ErrBadMagic, err)
	}
	if string(buf[:3]) != Magic {
		r.Seek(start, io.SeekStart)
		return false, fmt.Errorf("%w: %q", ErrBadMagic, buf[:3])
	}
	return buf[3] != 0, nil
}
