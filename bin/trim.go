package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	kingpin "gopkg.in/alecthomas/kingpin.v2"
	"www.velocidex.com/golang/go-usntrim/parser"
)

var (
	trim_command = app.Command(
		"trim", "Trim the USN journal then run the linker.").Default()

	trim_command_input = trim_command.Flag(
		"input", "Path to directory containing $MFT, $LogFile, and $UsnJrnl (or $J)").
		Short('i').Required().String()

	trim_command_output = trim_command.Flag(
		"output", "Path to output directory").
		Short('o').Required().String()

	trim_command_append = trim_command.Flag(
		"append", "Append output instead of overwriting").Bool()

	trim_command_linker = trim_command.Flag(
		"linker", "Path to the ntfs-linker binary").
		Default(parser.DefaultLinkerBinary).String()

	trim_command_no_link = trim_command.Flag(
		"no_link", "Only trim the journal, do not run the linker").Bool()
)

func doTrim() {
	config := getConfig(*trim_command_input, *trim_command_output,
		*trim_command_append)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	fmt.Println("Trimming USN Journal file")

	var collaborator parser.Collaborator = &parser.LinkerCollaborator{
		Binary: *trim_command_linker,
	}
	if *trim_command_no_link {
		collaborator = parser.CollaboratorFunc(func(ctx context.Context,
			input_dir, output_dir string, overwrite bool) (int, error) {
			return 0, nil
		})
	}

	result, err := parser.Run(ctx, config, collaborator)
	kingpin.FatalIfError(err, "Can not trim journal")

	if result.Status == parser.StatusNotFound {
		fmt.Printf("USN Journal file not found at %v\n", config.InputDir)
		return
	}

	fmt.Printf("Wrote %v from %v: %v\n", result.OutputPath,
		result.JournalName, describeBoundary(result.Boundary))

	if result.LinkerStatus != 0 {
		kingpin.Fatalf("Linker exited with status %v", result.LinkerStatus)
	}
}

func init() {
	command_handlers = append(command_handlers, func(command string) bool {
		switch command {
		case trim_command.FullCommand():
			doTrim()
		default:
			return false
		}
		return true
	})
}
