package parser

import (
	"fmt"
	"io"

	"github.com/Velocidex/ordereddict"
)

// Gaps are verified in chunks of at most this size.
const gapChunkSize = 1 << 20

// A Boundary describes where the live tail of a journal stream
// starts. The tail is the range [Offset, Size).
type Boundary struct {
	Size   int64
	Offset int64

	// The cursor and end of the last probe window read.
	LastProbe int64
	ProbeEnd  int64

	Probes   int
	GapBytes int64

	// The cursor reached the start of the stream.
	Clamped bool
}

func (self *Boundary) TailSize() int64 {
	return self.Size - self.Offset
}

func (self *Boundary) Stats() *ordereddict.Dict {
	return ordereddict.NewDict().
		Set("Size", self.Size).
		Set("TrimOffset", self.Offset).
		Set("TailSize", self.TailSize()).
		Set("LastProbe", self.LastProbe).
		Set("ProbeEnd", self.ProbeEnd).
		Set("Probes", self.Probes).
		Set("GapBytes", self.GapBytes).
		Set("Clamped", self.Clamped)
}

func (self *Boundary) DebugString() string {
	return fmt.Sprintf("Boundary Size %#x Offset %#x Probes %v GapBytes %v Clamped %v\n",
		self.Size, self.Offset, self.Probes, self.GapBytes, self.Clamped)
}

// FindBoundary locates the start of the trailing non-zero region of
// the stream.
//
// USN journals are sparse files: Windows allocates the journal with
// a large maximum size but only a window at the end holds records,
// everything before reads back as zeros. Rather than reading the
// whole file, we walk back from the end one step at a time and read
// a small probe window at each position. While the probes contain
// data we keep going. The first probe which is all zeros marks the
// start of the sparse region and the tail begins right after it.
//
// The boundary is only accurate to one step - the tail may start with
// up to a step of zeros, which the linker skips over anyway.
//
// If the very first probes are empty we have not seen any data yet,
// so the rest of the step after the probe is read fully. This catches
// journals whose data lives entirely inside the last step and lets us
// tell an all zero stream apart from one we sampled badly.
func FindBoundary(reader io.ReaderAt, size int64, options Options) (*Boundary, error) {
	err := options.Validate()
	if err != nil {
		return nil, err
	}

	if size <= 0 {
		return nil, fmt.Errorf("%w: stream is empty", ErrBoundaryExhausted)
	}

	result := &Boundary{Size: size}
	probe := make([]byte, options.ProbeSize)
	seen_data := false

	for cursor := size; cursor > 0; {
		previous := cursor

		cursor -= options.StepSize
		if cursor <= 0 {
			cursor = 0
			result.Clamped = true
		}

		// Never probe past the region already classified.
		probe_end := cursor + options.ProbeSize
		if probe_end > previous {
			probe_end = previous
		}

		window := probe[:probe_end-cursor]
		err := readFull(reader, window, cursor)
		if err != nil {
			return nil, err
		}

		result.Probes++
		result.LastProbe = cursor
		result.ProbeEnd = probe_end

		if !isZero(window) {
			DebugPrint("FindBoundary: data at %#x\n", cursor)
			seen_data = true
			continue
		}

		if !seen_data && options.VerifyTrailingGap {
			has_data, err := spanHasData(reader, probe_end, previous, result)
			if err != nil {
				return nil, err
			}

			// The whole step is zero - keep looking.
			if !has_data {
				DebugPrint("FindBoundary: %#x-%#x is empty\n", cursor, previous)
				continue
			}
		}

		DebugPrint("FindBoundary: sparse region ends at %#x\n", probe_end)
		result.Offset = probe_end
		return result, nil
	}

	if !seen_data {
		return nil, fmt.Errorf("%w: %d bytes are all zero",
			ErrBoundaryExhausted, size)
	}

	// Data all the way to the start of the stream so the entire
	// stream is the tail.
	result.Offset = 0
	return result, nil
}

func spanHasData(reader io.ReaderAt, start, end int64, result *Boundary) (bool, error) {
	if end <= start {
		return false, nil
	}

	buf := make([]byte, CapInt64(end-start, gapChunkSize))
	for offset := start; offset < end; {
		to_read := CapInt64(end-offset, int64(len(buf)))
		chunk := buf[:to_read]

		err := readFull(reader, chunk, offset)
		if err != nil {
			return false, err
		}
		result.GapBytes += to_read

		if !isZero(chunk) {
			return true, nil
		}
		offset += to_read
	}

	return false, nil
}
