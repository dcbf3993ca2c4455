package parser

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

const copyBufferSize = 1024 * 1024

// ExtractTail writes the tail described by boundary into dir/name,
// replacing any existing file of that name. The data is first written
// to a temporary file next to the output which is renamed into place
// once complete, so a failed extraction never leaves a truncated
// output behind.
func ExtractTail(reader io.ReaderAt, boundary *Boundary,
	dir, name string) (int64, error) {
	output_path := filepath.Join(dir, name)

	// Only one trim may write this output at a time.
	lock := flock.New(output_path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return 0, fmt.Errorf("%w: lock %v: %w", ErrIOFailure, output_path, err)
	}
	if !locked {
		return 0, fmt.Errorf("%w: %v", ErrOutputLocked, output_path)
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(lock.Path())
	}()

	fd, err := os.CreateTemp(dir, name+".*.tmp")
	if err != nil {
		return 0, fmt.Errorf("%w: create %v: %w", ErrIOFailure, output_path, err)
	}
	tmp_path := fd.Name()

	written, err := copyTail(fd, reader, boundary)
	if err == nil {
		err = fd.Sync()
	}

	close_err := fd.Close()
	if err == nil {
		err = close_err
	}

	if err == nil {
		err = os.Rename(tmp_path, output_path)
	}

	if err != nil {
		_ = os.Remove(tmp_path)
		return 0, fmt.Errorf("%w: write %v: %w", ErrIOFailure, output_path, err)
	}

	DebugPrint("ExtractTail: wrote %v bytes from %#x to %v\n",
		written, boundary.Offset, output_path)

	return written, nil
}

func copyTail(out io.Writer, reader io.ReaderAt, boundary *Boundary) (int64, error) {
	tail_size := boundary.TailSize()
	section := io.NewSectionReader(reader, boundary.Offset, tail_size)

	buf := make([]byte, CapInt64(tail_size, copyBufferSize)+1)
	written, err := io.CopyBuffer(out, section, buf)
	if err != nil {
		return written, err
	}

	// The journal shrank under us.
	if written != tail_size {
		return written, fmt.Errorf("short copy: %d of %d bytes: %w",
			written, tail_size, io.ErrUnexpectedEOF)
	}

	return written, nil
}
