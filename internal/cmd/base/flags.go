package base

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"strings"
)

// FlagSet wraps flag.FlagSet with help text rendering for command usage.
type FlagSet struct {
	*flag.FlagSet
}

// NewFlagSet wraps f. Parse errors are reported by the command, not by the
// flag package.
func NewFlagSet(f *flag.FlagSet) *FlagSet {
	f.SetOutput(io.Discard)
	return &FlagSet{FlagSet: f}
}

// Help returns the flag section of a command's help text.
func (f *FlagSet) Help() string {
	var out bytes.Buffer
	n := 0
	f.VisitAll(func(fl *flag.Flag) {
		if n == 0 {
			out.WriteString("\n\nOptions:\n")
		}
		n++
		name, usage := flag.UnquoteUsage(fl)
		if name != "" {
			fmt.Fprintf(&out, "\n  -%s=<%s>\n", fl.Name, name)
		} else {
			fmt.Fprintf(&out, "\n  -%s\n", fl.Name)
		}
		for _, line := range strings.Split(usage, "\n") {
			fmt.Fprintf(&out, "    %s\n", line)
		}
		if fl.DefValue != "" && fl.DefValue != "false" && fl.DefValue != "0" {
			fmt.Fprintf(&out, "    Default: %s\n", fl.DefValue)
		}
	})
	return strings.TrimRight(out.String(), "\n")
}
