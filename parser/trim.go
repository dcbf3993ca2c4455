package parser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
)

type Status int

const (
	StatusTrimmed Status = iota
	StatusNotFound
)

func (self Status) String() string {
	switch self {
	case StatusTrimmed:
		return "Trimmed"
	case StatusNotFound:
		return "NotFound"
	default:
		return fmt.Sprintf("Status(%d)", int(self))
	}
}

// Config carries everything a trim run needs.
type Config struct {
	// Directory holding the journal. The trimmed $USN is written
	// here too.
	InputDir string

	// Where the linker writes its output.
	OutputDir string

	// Append to existing linker output instead of overwriting it.
	Append bool

	Options Options
}

func NewConfig(input_dir, output_dir string) *Config {
	return &Config{
		InputDir:  input_dir,
		OutputDir: output_dir,
		Options:   GetDefaultOptions(),
	}
}

type Result struct {
	Status Status

	JournalName string
	JournalPath string

	Boundary     *Boundary
	OutputPath   string
	BytesWritten int64

	// Only set when the linker was run.
	LinkerStatus int
}

// Trim locates the journal in config.InputDir, finds its live tail
// and writes it to config.InputDir/$USN. A missing journal is not an
// error: the result has StatusNotFound and nothing is written.
func Trim(config *Config) (*Result, error) {
	options := config.Options
	err := options.Validate()
	if err != nil {
		return nil, err
	}

	journal, err := FindJournal(config.InputDir, options.Candidates)
	if errors.Is(err, ErrJournalNotFound) {
		DebugPrint("Trim: %v\n", err)
		return &Result{Status: StatusNotFound}, nil
	}
	if err != nil {
		return nil, err
	}
	defer journal.Close()

	DebugPrint("Trim: %v", journal.DebugString())

	var reader io.ReaderAt = journal
	if options.PageSize > 0 {
		paged, err := NewPagedReader(journal, options.PageSize)
		if err != nil {
			return nil, err
		}
		reader = paged
	}

	boundary, err := FindBoundary(reader, journal.Size, options)
	if err != nil {
		return nil, fmt.Errorf("scan %v: %w", journal.Path, err)
	}

	written, err := ExtractTail(reader, boundary,
		config.InputDir, options.OutputName)
	if err != nil {
		return nil, err
	}

	return &Result{
		Status:       StatusTrimmed,
		JournalName:  journal.Name,
		JournalPath:  journal.Path,
		Boundary:     boundary,
		OutputPath:   filepath.Join(config.InputDir, options.OutputName),
		BytesWritten: written,
	}, nil
}

// Run trims the journal and then hands the directory to the
// collaborator. When there is no journal the collaborator is not
// called.
func Run(ctx context.Context, config *Config,
	collaborator Collaborator) (*Result, error) {
	result, err := Trim(config)
	if err != nil {
		return nil, err
	}

	if result.Status != StatusTrimmed {
		return result, nil
	}

	status, err := collaborator.Link(ctx,
		config.InputDir, config.OutputDir, !config.Append)
	if err != nil {
		return result, err
	}
	result.LinkerStatus = status

	return result, nil
}
