// Package argparse wraps pflag so every odin command starts the same way:
// banner first, then the parsed arguments echoed back to the user.
package argparse

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"github.com/spf13/pflag"
)

var dumper = spew.ConfigState{
	Indent:                  "  ",
	SortKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

var bannerColor = color.New(color.FgCyan)

// Parser is a pflag.FlagSet that prints Banner before parsing and dumps
// the parsed flags afterwards. Define flags on the embedded FlagSet.
type Parser struct {
	*pflag.FlagSet

	// Out receives the banner and the echo. Defaults to os.Stdout.
	Out io.Writer

	// Quiet suppresses the banner and the echo.
	Quiet bool

	usageOut io.Writer
}

// New returns a Parser that reports errors instead of exiting.
func New(name, description string) *Parser {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SortFlags = true

	p := &Parser{
		FlagSet:  fs,
		Out:      os.Stdout,
		usageOut: os.Stderr,
	}
	fs.Usage = func() {
		fmt.Fprintf(p.usageOut, "%s\n\nUsage of %s:\n", description, name)
		fs.PrintDefaults()
	}
	return p
}

// SetOutput sets where usage and parse errors go. Defaults to os.Stderr.
func (p *Parser) SetOutput(w io.Writer) {
	p.usageOut = w
	p.FlagSet.SetOutput(w)
}

// Parse prints the banner, parses args (without the program name) and
// echoes the resulting flag values.
func (p *Parser) Parse(args []string) error {
	if !p.Quiet {
		bannerColor.Fprintln(p.Out, Banner)
	}

	if err := p.FlagSet.Parse(args); err != nil {
		return err
	}

	if !p.Quiet {
		dumper.Fdump(p.Out, p.Values())
		if p.NArg() > 0 {
			dumper.Fdump(p.Out, p.Args())
		}
	}
	return nil
}

// Values returns every defined flag with its current value, as text.
func (p *Parser) Values() map[string]string {
	values := make(map[string]string)
	p.VisitAll(func(f *pflag.Flag) {
		values[f.Name] = f.Value.String()
	})
	return values
}

// Changed returns the names of the flags set on the command line, sorted.
func (p *Parser) Changed() []string {
	var names []string
	p.Visit(func(f *pflag.Flag) {
		names = append(names, f.Name)
	})
	sort.Strings(names)
	return names
}
