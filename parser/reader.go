package parser

import (
	"errors"
	"io"
	"sync"

	"github.com/Velocidex/ordereddict"
)

// This reader is needed for reading raw windows devices, such as
// \\.\c: On windows, such devices may only be read using sector
// alignment in whole sector numbers. The reader turns arbitrary reads
// into page aligned reads of the delegate and keeps the last page in
// memory, since the probes of the boundary scan often straddle a page
// boundary.
type PagedReader struct {
	mu sync.Mutex

	reader   io.ReaderAt
	pagesize int64

	page     []byte
	page_len int
	page_off int64

	Hits int64
	Miss int64
}

// ReadAt reads a buffer from an offset in the backing file.
//
// Unlike the delegate, reads are never padded: a read which extends
// past the end of the file returns the bytes which exist and io.EOF,
// a read outside the file returns n = 0 and io.EOF.
func (self *PagedReader) ReadAt(buf []byte, offset int64) (int, error) {
	if offset < 0 {
		return 0, io.EOF
	}

	self.mu.Lock()
	defer self.mu.Unlock()

	// If the read is very large and page aligned it is faster to
	// just delegate reading to the underlying reader.
	if len(buf) > 10*int(self.pagesize) &&
		len(buf)%int(self.pagesize) == 0 &&
		offset%self.pagesize == 0 {
		return self.reader.ReadAt(buf, offset)
	}

	buf_idx := 0
	for buf_idx < len(buf) {
		page := offset - offset%self.pagesize

		if page != self.page_off || self.page_len < 0 {
			self.Miss++
			n, err := self.reader.ReadAt(self.page, page)

			// A real read error
			if err != nil && !errors.Is(err, io.EOF) {
				self.page_len = -1
				return buf_idx, err
			}

			self.page_off = page
			self.page_len = n
		} else {
			self.Hits++
		}

		page_offset := int(offset - page)
		if page_offset >= self.page_len {
			return buf_idx, io.EOF
		}

		to_read := copy(buf[buf_idx:], self.page[page_offset:self.page_len])
		buf_idx += to_read
		offset += int64(to_read)

		// The page was short so this is the end of the file.
		if buf_idx < len(buf) && self.page_len < int(self.pagesize) {
			return buf_idx, io.EOF
		}
	}

	return buf_idx, nil
}

func (self *PagedReader) Stats() *ordereddict.Dict {
	self.mu.Lock()
	defer self.mu.Unlock()

	return ordereddict.NewDict().
		Set("PageSize", self.pagesize).
		Set("Hits", self.Hits).
		Set("Miss", self.Miss)
}

func NewPagedReader(reader io.ReaderAt, pagesize int64) (*PagedReader, error) {
	if pagesize <= 0 {
		return nil, errors.New("NewPagedReader: pagesize must be positive")
	}

	DebugPrint("Creating paged reader with pagesize %v\n", pagesize)

	return &PagedReader{
		reader:   reader,
		pagesize: pagesize,
		page:     make([]byte, pagesize),
		page_len: -1,
	}, nil
}
