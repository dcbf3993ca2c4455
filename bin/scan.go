package main

import (
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"
	kingpin "gopkg.in/alecthomas/kingpin.v2"
	"www.velocidex.com/golang/go-usntrim/parser"
)

var (
	scan_command = app.Command(
		"scan", "Report where the live tail of a journal file starts.")

	scan_command_file_arg = scan_command.Arg(
		"file", "The journal file to inspect",
	).Required().File()

	scan_command_verbose = scan_command.Flag(
		"verbose", "Dump the boundary").Bool()
)

func doScan() {
	fd := *scan_command_file_arg
	defer fd.Close()

	stat, err := fd.Stat()
	kingpin.FatalIfError(err, "Can not stat file")

	options := getOptions()

	var reader io.ReaderAt = fd
	var paged *parser.PagedReader
	if options.PageSize > 0 {
		paged, err = parser.NewPagedReader(fd, options.PageSize)
		kingpin.FatalIfError(err, "Can not create paged reader")
		reader = paged
	}

	boundary, err := parser.FindBoundary(reader, stat.Size(), options)
	kingpin.FatalIfError(err, "Can not scan %v", fd.Name())

	if *scan_command_verbose {
		fmt.Print(parser.DebugString(boundary, ""))
		parser.Debug(boundary)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Field", "Value"})
	table.SetCaption(true, fmt.Sprintf("%v: %v", fd.Name(),
		describeBoundary(boundary)))
	defer table.Render()

	stats := boundary.Stats()
	if paged != nil {
		paged_stats := paged.Stats()
		for _, k := range paged_stats.Keys() {
			v, _ := paged_stats.Get(k)
			stats.Set("Reader"+k, v)
		}
	}

	for _, k := range stats.Keys() {
		v, _ := stats.Get(k)
		table.Append([]string{k, fmt.Sprintf("%v", v)})
	}
}

func init() {
	command_handlers = append(command_handlers, func(command string) bool {
		switch command {
		case scan_command.FullCommand():
			doScan()
		default:
			return false
		}
		return true
	})
}
