// make.go -- 'make' command implementation
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
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/opencoff/go-mmbloom"
	flag "github.com/opencoff/pflag"
)

type makeCommand struct{}

func init() {
	m := makeCommand{}
	registerCommand("make", &m)
}

func (m *makeCommand) run(args []string, opt *Option) (err error) {
	var size int64
	var nkeys uint64
	var prob float64
	var k, field int
	var force bool

	fs := flag.NewFlagSet("make", flag.ExitOnError)
	fs.SetOutput(os.Stdout)
	fs.Int64VarP(&size, "size", "s", 0, "Use `B` bytes of filter bits")
	fs.Uint64VarP(&nkeys, "capacity", "n", 0, "Size the filter for `N` keys")
	fs.Float64VarP(&prob, "prob", "p", 0.01, "Size the filter for false positive probability `P`")
	fs.IntVarP(&k, "hashes", "k", 0, "Use `K` hash probes per key [optimal for -n, else 4]")
	fs.IntVarP(&field, "field", "f", 0, "Use CSV field# `F` as the key")
	fs.BoolVarP(&force, "force", "F", false, "Overwrite an existing filter")
	fs.Usage = func() {
		fmt.Printf(`Usage: make [options] FILTER [INPUT...]

where:
   FILTER   is the name of the output filter file
   INPUT    is one or more optional input files

The filter is sized by -s, or by -n and -p, or defaults to 16 MiB.
The input file(s) must have a name suffix of one of the following:
   .txt	    one key per line (first white space delimited field)
   .csv	    A comma-separated file; the key is field -f

options:
`)
		fs.PrintDefaults()
		os.Exit(0)
	}

	err = fs.Parse(args[1:])
	if err != nil {
		return fmt.Errorf("make: %w", err)
	}

	args = fs.Args()
	if len(args) < 1 {
		return fmt.Errorf("make: insufficient args")
	}

	fn := args[0]
	args = args[1:]

	size, k, err = makeParams(size, nkeys, prob, k)
	if err != nil {
		return fmt.Errorf("make: %w", err)
	}

	if _, err = os.Stat(fn); err == nil {
		if !force {
			return fmt.Errorf("make: %s already exists; use --force to overwrite", fn)
		}
		if err = os.Remove(fn); err != nil {
			return fmt.Errorf("make: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("make: %w", err)
	}

	f, err := mmbloom.Open(fn, size, k)
	if err != nil {
		return fmt.Errorf("make: can't create filter: %w", err)
	}

	defer func() {
		if e := f.Close(); e != nil && err == nil {
			err = fmt.Errorf("make: %w", e)
		}
	}()

	opt.Printf("+ %s: %d bits, k %d\n", fn, f.Bits(), f.K())

	l, err := newLoader(f, false, 0)
	if err != nil {
		return fmt.Errorf("make: %w", err)
	}

	start := time.Now()
	for _, in := range args {
		n, err := l.AddFile(in, field)
		if err != nil {
			return fmt.Errorf("make: can't add %s: %w", in, err)
		}

		opt.Printf("+ %s: %d keys\n", in, n)
	}

	delta := time.Since(start)
	opt.Printf("%d keys, %s\n", f.Len(), delta.Truncate(time.Millisecond).String())
	return nil
}

// choose filter size and hash count from the options
func makeParams(size int64, nkeys uint64, prob float64, k int) (int64, int, error) {
	if prob <= 0 || prob >= 1 {
		return 0, 0, fmt.Errorf("false positive probability %g must be in (0, 1)", prob)
	}

	switch {
	case size > 0:
	case nkeys > 0:
		size = int64(mmbloom.RequiredBytes(nkeys, prob))
	default:
		size = mmbloom.DefaultLength
	}

	if k <= 0 {
		k = mmbloom.DefaultK
		if nkeys > 0 {
			k = mmbloom.OptimalK(uint64(size)*8, nkeys)
		}
	}
	return size, k, nil
}
