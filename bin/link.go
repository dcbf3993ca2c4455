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
	link_command = app.Command(
		"link", "Run the linker over an already trimmed directory.")

	link_command_input = link_command.Flag(
		"input", "Path to directory containing $MFT, $LogFile and $USN").
		Short('i').Required().String()

	link_command_output = link_command.Flag(
		"output", "Path to output directory").
		Short('o').Required().String()

	link_command_append = link_command.Flag(
		"append", "Append output instead of overwriting").Bool()

	link_command_linker = link_command.Flag(
		"linker", "Path to the ntfs-linker binary").
		Default(parser.DefaultLinkerBinary).String()
)

func doLink() {
	config := getConfig(*link_command_input, *link_command_output,
		*link_command_append)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	linker := &parser.LinkerCollaborator{Binary: *link_command_linker}
	fmt.Printf("NTFS Linker running with arguments: %v\n",
		linker.Args(config.InputDir, config.OutputDir, !config.Append))

	status, err := linker.Link(ctx, config.InputDir, config.OutputDir,
		!config.Append)
	kingpin.FatalIfError(err, "Can not run linker")

	if status != 0 {
		kingpin.Fatalf("Linker exited with status %v", status)
	}
}

func init() {
	command_handlers = append(command_handlers, func(command string) bool {
		switch command {
		case link_command.FullCommand():
			doLink()
		default:
			return false
		}
		return true
	})
}
