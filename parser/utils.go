package parser

import (
	"errors"
	"fmt"
	"io"
)

func CapInt64(v int64, max int64) int64 {
	if v > max {
		return max
	}
	return v
}

func isZero(buf []byte) bool {
	for _, c := range buf {
		if c != 0 {
			return false
		}
	}
	return true
}

// Fill buf completely from offset. A short read means the stream is
// shorter than we were told so it is always an error, even when the
// reader reports a clean EOF.
func readFull(reader io.ReaderAt, buf []byte, offset int64) error {
	n, err := reader.ReadAt(buf, offset)
	if n == len(buf) {
		return nil
	}

	if err == nil || errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}

	return fmt.Errorf("%w: read %d bytes at %#x (got %d): %w",
		ErrIOFailure, len(buf), offset, n, err)
}
