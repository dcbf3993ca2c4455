package parser

import "errors"

var (
	// None of the candidate journal names exist. This is an expected
	// outcome and callers should skip the trim rather than fail.
	ErrJournalNotFound = errors.New("USN journal file not found")

	// The scan reached the start of the stream without finding any
	// non-zero byte.
	ErrBoundaryExhausted = errors.New("no journal data found in stream")

	// Opening, reading or writing failed. The underlying error is
	// wrapped as well.
	ErrIOFailure = errors.New("I/O failure")

	// Another trim is currently writing the same output.
	ErrOutputLocked = errors.New("output is locked by another process")

	ErrInvalidOptions = errors.New("invalid options")
)
