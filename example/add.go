// add.go -- 'add' command implementation
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

type addCommand struct{}

func init() {
	m := addCommand{}
	registerCommand("add", &m)
}

func (m *addCommand) run(args []string, opt *Option) (err error) {
	var check bool
	var cache, field int

	fs := flag.NewFlagSet("add", flag.ExitOnError)
	fs.SetOutput(os.Stdout)
	fs.BoolVarP(&check, "check", "c", false, "Don't add keys that are already present")
	fs.IntVarP(&cache, "unique", "u", 0, "Skip keys seen among the last `N` unique keys")
	fs.IntVarP(&field, "field", "f", 0, "Use CSV field# `F` as the key")
	fs.Usage = func() {
		fmt.Printf(`Usage: add [options] FILTER [INPUT...]

where:
   FILTER   is the name of an existing filter file
   INPUT    is one or more input files (.txt or .csv); if none are
            given, keys are read one per line from stdin.

options:
`)
		fs.PrintDefaults()
		os.Exit(0)
	}

	err = fs.Parse(args[1:])
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}

	args = fs.Args()
	if len(args) < 1 {
		return fmt.Errorf("add: insufficient args")
	}

	fn := args[0]
	args = args[1:]

	f, err := openFilter(fn)
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}

	defer func() {
		if e := f.Close(); e != nil && err == nil {
			err = fmt.Errorf("add: %w", e)
		}
	}()

	l, err := newLoader(f, check, cache)
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}

	if len(args) == 0 {
		n, err := l.AddTextStream(os.Stdin, " \t")
		if err != nil {
			return fmt.Errorf("add: can't add keys from stdin: %w", err)
		}
		opt.Printf("+ <STDIN>: %d keys\n", n)
	}

	for _, in := range args {
		n, err := l.AddFile(in, field)
		if err != nil {
			return fmt.Errorf("add: can't add %s: %w", in, err)
		}
		opt.Printf("+ %s: %d keys\n", in, n)
	}

	opt.Printf("%d keys, %d duplicates skipped, exp fp-rate %6.4g\n",
		f.Len(), l.dups, f.FalsePositiveRate())
	return nil
}
