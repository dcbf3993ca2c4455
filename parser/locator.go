package parser

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// A Journal is an open USN journal data stream. The size is taken
// once when the file is opened and is not refreshed - a journal which
// is being appended to while we scan it will only be read up to that
// size.
type Journal struct {
	Name string
	Path string
	Size int64

	fd *os.File
}

func (self *Journal) ReadAt(buf []byte, offset int64) (int, error) {
	return self.fd.ReadAt(buf, offset)
}

func (self *Journal) Close() error {
	return self.fd.Close()
}

func (self *Journal) DebugString() string {
	return fmt.Sprintf("Journal %v (%v) Size %#x\n", self.Name, self.Path, self.Size)
}

// FindJournal opens the first of the candidate names which exists as
// a regular file inside dir. When none exist the returned error
// matches ErrJournalNotFound.
func FindJournal(dir string, candidates []string) (*Journal, error) {
	for _, name := range candidates {
		path := filepath.Join(dir, name)

		stat, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				DebugPrint("FindJournal: %v does not exist\n", path)
				continue
			}
			return nil, fmt.Errorf("%w: stat %v: %w", ErrIOFailure, path, err)
		}

		// A directory called $J is not a journal.
		if !stat.Mode().IsRegular() {
			DebugPrint("FindJournal: %v is not a regular file\n", path)
			continue
		}

		fd, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("%w: open %v: %w", ErrIOFailure, path, err)
		}

		// Take the size from the open handle.
		stat, err = fd.Stat()
		if err != nil {
			fd.Close()
			return nil, fmt.Errorf("%w: stat %v: %w", ErrIOFailure, path, err)
		}

		return &Journal{
			Name: name,
			Path: path,
			Size: stat.Size(),
			fd:   fd,
		}, nil
	}

	return nil, fmt.Errorf("%w at %v", ErrJournalNotFound, dir)
}
