package parser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

const DefaultLinkerBinary = "ntfs-linker-v4.3.exe"

// A Collaborator consumes the trimmed journal. It is handed the
// directory holding $USN (and the other NTFS artifacts), the output
// directory, and whether existing output should be overwritten. It
// returns the status code of the run.
type Collaborator interface {
	Link(ctx context.Context, input_dir, output_dir string, overwrite bool) (int, error)
}

type CollaboratorFunc func(ctx context.Context,
	input_dir, output_dir string, overwrite bool) (int, error)

func (self CollaboratorFunc) Link(ctx context.Context,
	input_dir, output_dir string, overwrite bool) (int, error) {
	return self(ctx, input_dir, output_dir, overwrite)
}

// LinkerCollaborator runs the ntfs-linker binary as a child process.
type LinkerCollaborator struct {
	Binary string

	// Default to os.Stdout and os.Stderr
	Stdout io.Writer
	Stderr io.Writer
}

func (self *LinkerCollaborator) Args(
	input_dir, output_dir string, overwrite bool) []string {
	args := []string{"--python", "-i", input_dir, "-o", output_dir}
	if overwrite {
		args = append(args, "--overwrite")
	}
	return args
}

// Link runs the linker. A non zero exit status is reported through
// the status code rather than as an error - only a failure to run the
// binary at all is an error.
func (self *LinkerCollaborator) Link(ctx context.Context,
	input_dir, output_dir string, overwrite bool) (int, error) {
	binary := self.Binary
	if binary == "" {
		binary = DefaultLinkerBinary
	}

	cmd := exec.CommandContext(ctx, binary,
		self.Args(input_dir, output_dir, overwrite)...)
	cmd.Stdout = self.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = self.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	DebugPrint("Running linker %v %v\n", binary, cmd.Args[1:])

	err := cmd.Run()
	if err != nil {
		exit_err := &exec.ExitError{}
		if errors.As(err, &exit_err) {
			return exit_err.ExitCode(), nil
		}
		return -1, fmt.Errorf("run %v: %w", binary, err)
	}

	return 0, nil
}
