package parser

import (
	"fmt"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

var (
	USN_DEBUG *bool
)

func Debug(arg interface{}) {
	spew.Dump(arg)
}

type Debugger interface {
	DebugString() string
}

func DebugString(arg interface{}, indent string) string {
	debugger, ok := arg.(Debugger)
	if ok {
		lines := strings.Split(debugger.DebugString(), "\n")
		for idx, line := range lines {
			lines[idx] = indent + line
		}
		return strings.Join(lines, "\n")
	}

	return ""
}

func DebugPrint(fmt_str string, v ...interface{}) {
	if USN_DEBUG == nil {
		// os.Environ() seems very expensive in Go so we cache
		// it.
		for _, x := range os.Environ() {
			if strings.HasPrefix(x, "USN_DEBUG=") {
				value := true
				USN_DEBUG = &value
				break
			}
		}
	}

	if USN_DEBUG == nil {
		value := false
		USN_DEBUG = &value
	}

	if *USN_DEBUG {
		fmt.Printf(fmt_str, v...)
	}
}
