package main

import (
	"fmt"
	"os"

	humanize "github.com/dustin/go-humanize"
	kingpin "gopkg.in/alecthomas/kingpin.v2"
	"www.velocidex.com/golang/go-usntrim/parser"
)

var (
	step_flag = app.Flag(
		"step", "Distance between probes when scanning backwards.").
		Default(fmt.Sprintf("%d", parser.DefaultStepSize)).Int64()

	probe_flag = app.Flag(
		"probe", "Size of each probe window.").
		Default(fmt.Sprintf("%d", parser.DefaultProbeSize)).Int64()

	page_size_flag = app.Flag(
		"page_size", "Read the journal in aligned pages of this size (0 to disable).").
		Default("0").Int64()
)

func getOptions() parser.Options {
	options := parser.GetDefaultOptions()
	options.StepSize = *step_flag
	options.ProbeSize = *probe_flag
	options.PageSize = *page_size_flag

	kingpin.FatalIfError(options.Validate(), "Invalid scan options")

	return options
}

func checkFolder(path string) bool {
	stat, err := os.Stat(path)
	if err == nil && stat.IsDir() {
		return true
	}
	fmt.Printf("Folder was not found at the location specified: %s\n", path)
	return false
}

func checkCreateFolder(path string) bool {
	_, err := os.Stat(path)
	if err == nil {
		return true
	}

	err = os.MkdirAll(path, 0777)
	if err != nil {
		fmt.Printf("Could not create output directory at: %s\n", path)
		return false
	}
	return true
}

func getConfig(input_dir, output_dir string, append_output bool) *parser.Config {
	if !checkFolder(input_dir) {
		kingpin.Fatalf("Input folder cannot be accessed (%s)", input_dir)
	}

	if !checkCreateFolder(output_dir) {
		kingpin.Fatalf("Output folder cannot be accessed (%s)", output_dir)
	}

	config := parser.NewConfig(input_dir, output_dir)
	config.Append = append_output
	config.Options = getOptions()
	return config
}

func describeBoundary(boundary *parser.Boundary) string {
	return fmt.Sprintf("kept %v of %v (trimmed at %#x)",
		humanize.IBytes(uint64(boundary.TailSize())),
		humanize.IBytes(uint64(boundary.Size)),
		boundary.Offset)
}
