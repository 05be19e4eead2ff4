// dump.go -- 'dump' and 'fsck' command implementation
//
// (c) Sudhi Herle 2018
//
// License GPLv2
//
// If you need a commercial license for this work, please contact
// the author.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package main

import (
	"fmt"
	"os"

	flag "github.com/opencoff/pflag"
)

type dumpCommand struct{}

type fsckCommand struct{}

func init() {
	registerCommand("dump", &dumpCommand{})
	registerCommand("fsck", &fsckCommand{})
}

func (m *dumpCommand) run(args []string, opt *Option) (err error) {
	var raw bool

	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	fs.SetOutput(os.Stdout)
	fs.BoolVarP(&raw, "raw", "r", false, "Dump the raw filter image to stdout")
	fs.Usage = func() {
		fmt.Printf(`Usage: dump [options] FILTER

where  'FILTER' is the name of the filter file

Options:
`)
		fs.PrintDefaults()
		os.Exit(0)
	}

	err = fs.Parse(args[1:])
	if err != nil {
		return fmt.Errorf("dump: %w", err)
	}

	args = fs.Args()
	if len(args) < 1 {
		return fmt.Errorf("dump: insufficient args")
	}

	f, err := openFilter(args[0])
	if err != nil {
		return fmt.Errorf("dump: %w", err)
	}

	defer f.Close()

	if raw {
		if _, err = f.WriteTo(os.Stdout); err != nil {
			return fmt.Errorf("dump: %w", err)
		}
		return nil
	}

	f.DumpMeta(os.Stdout)
	return nil
}

func (m *fsckCommand) run(args []string, opt *Option) (err error) {
	fs := flag.NewFlagSet("fsck", flag.ExitOnError)
	fs.SetOutput(os.Stdout)
	fs.Usage = func() {
		fmt.Printf(`Usage: fsck [options] FILTER

where  'FILTER' is the name of the filter file

Options:
`)
		fs.PrintDefaults()
		os.Exit(0)
	}

	err = fs.Parse(args[1:])
	if err != nil {
		return fmt.Errorf("fsck: %w", err)
	}

	args = fs.Args()
	if len(args) < 1 {
		return fmt.Errorf("fsck: insufficient args")
	}

	fn := args[0]
	f, err := openFilter(fn)
	if err != nil {
		return fmt.Errorf("fsck: %w", err)
	}

	defer f.Close()

	if err = fsck(f); err != nil {
		return fmt.Errorf("fsck: %s: %w", fn, err)
	}

	opt.Printf("%s", f.Desc())
	return nil
}
