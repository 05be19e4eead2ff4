// main.go -- mmbloom: make, query and inspect persistent bloom filters
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

// mmbloom is an example of using mmbloom.Filter on a file backed bitmap.
// Keys can be read from a variety of inputs:
//   - text file: one key per line; only the first white space delimited
//     field is used
//   - Comma Separated text file (CSV): a chosen field is the key
//
// Filters made by 'make' are ordinary files; they can be re-opened by
// 'add', 'query', 'dump' and 'fsck' any number of times.

package main

import (
	"fmt"
	"os"

	flag "github.com/opencoff/pflag"
)

func main() {
	var opt Option

	usage := fmt.Sprintf(
		`%s - make, update and query persistent bloom filters

Usage: %s [global-options] CMD CMD-ARGS...

CMD is an operation to be performed and CMD-ARGS are operation specific
arguments. The list of supported operations are:

  make [options] FILTER [INPUTS...]  -- Make a new filter from the inputs
  add [options] FILTER [INPUTS...]   -- Add keys from the inputs (or stdin)
  query [options] FILTER KEY...      -- Test keys for membership
  dump [options] FILTER              -- Dump filter metadata
  fsck [options] FILTER              -- Verify the filter footer
  size [options]                     -- Calculate filter sizes
  fpr [options]                      -- Measure the false positive rate

Options:
`, os.Args[0], os.Args[0])

	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	fs.SetInterspersed(false)
	fs.SetOutput(os.Stdout)
	fs.BoolVarP(&opt.verbose, "verbose", "V", false, "Show verbose output")
	fs.Usage = func() {
		fmt.Print(usage)
		fs.PrintDefaults()
		os.Exit(0)
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		die("%s", err)
	}

	args := fs.Args()
	if len(args) < 1 {
		fmt.Print(usage)
		fs.PrintDefaults()
		os.Exit(0)
	}

	err := runCommand(fs.Args(), &opt)
	if err != nil {
		die("%s", err)
	}
}

// die with error
func die(f string, v ...interface{}) {
	warn(f, v...)
	os.Exit(1)
}

func warn(f string, v ...interface{}) {
	z := fmt.Sprintf("%s: %s", os.Args[0], f)
	s := fmt.Sprintf(z, v...)
	if n := len(s); s[n-1] != '\n' {
		s += "\n"
	}

	os.Stderr.WriteString(s)
	os.Stderr.Sync()
}

// vim: ft=go:sw=4:ts=4:noexpandtab:tw=78:
