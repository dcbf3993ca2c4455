package parser

import "fmt"

const (
	// The backward stride between two probes.
	DefaultStepSize = 1 << 20

	// The size of each probe window.
	DefaultProbeSize = 4096

	// The trimmed journal is written under this name.
	DefaultOutputName = "$USN"
)

// The known names of the USN journal data stream in priority
// order. $J is the name of the $UsnJrnl data stream, $USNJR~1 is the
// short name some acquisition tools extract it under.
var DefaultCandidates = []string{"$J", "$USNJR~1"}

type Options struct {
	// Journal file names to look for, first match wins.
	Candidates []string

	// Distance the scan cursor moves back between probes.
	StepSize int64

	// Number of bytes read at each probe.
	ProbeSize int64

	// Name of the trimmed output file.
	OutputName string

	// When set, all reads of the journal go through a PagedReader
	// with this page size. This is needed for raw devices which can
	// only be read in whole sectors.
	PageSize int64

	// Read the untested gap after an empty probe when no data was
	// seen yet. Without this, data which lives entirely inside the
	// last step is not distinguished from an all zero stream.
	VerifyTrailingGap bool
}

func GetDefaultOptions() Options {
	return Options{
		Candidates:        DefaultCandidates,
		StepSize:          DefaultStepSize,
		ProbeSize:         DefaultProbeSize,
		OutputName:        DefaultOutputName,
		VerifyTrailingGap: true,
	}
}

func (self Options) Validate() error {
	if self.StepSize <= 0 {
		return fmt.Errorf("%w: step size %d must be positive",
			ErrInvalidOptions, self.StepSize)
	}

	if self.ProbeSize <= 0 {
		return fmt.Errorf("%w: probe size %d must be positive",
			ErrInvalidOptions, self.ProbeSize)
	}

	// Probes must not overlap or the walk could never move past a
	// window it already classified.
	if self.ProbeSize > self.StepSize {
		return fmt.Errorf("%w: probe size %d larger than step size %d",
			ErrInvalidOptions, self.ProbeSize, self.StepSize)
	}

	if self.PageSize < 0 {
		return fmt.Errorf("%w: page size %d must not be negative",
			ErrInvalidOptions, self.PageSize)
	}

	if len(self.Candidates) == 0 {
		return fmt.Errorf("%w: no journal candidates", ErrInvalidOptions)
	}

	if self.OutputName == "" {
		return fmt.Errorf("%w: no output name", ErrInvalidOptions)
	}

	return nil
}
