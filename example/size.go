// size.go -- 'size' command implementation
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
	"io"
	"os"

	"github.com/opencoff/go-mmbloom"
	flag "github.com/opencoff/pflag"
)

type sizeCommand struct{}

func init() {
	registerCommand("size", &sizeCommand{})
}

func (m *sizeCommand) run(args []string, opt *Option) error {
	var nkeys uint64
	var size int64
	var prob float64

	fs := flag.NewFlagSet("size", flag.ExitOnError)
	fs.SetOutput(os.Stdout)
	fs.Uint64VarP(&nkeys, "capacity", "n", 0, "Number of keys `N`")
	fs.Int64VarP(&size, "size", "s", 0, "Filter size `B` in bytes")
	fs.Float64VarP(&prob, "prob", "p", 0.01, "False positive probability `P`")
	fs.Usage = func() {
		fmt.Printf(`Usage: size [options]

Print the filter size needed for -n keys at probability -p; if -s is
given, print the capacity and probability of a filter of that size.

Options:
`)
		fs.PrintDefaults()
		os.Exit(0)
	}

	err := fs.Parse(args[1:])
	if err != nil {
		return fmt.Errorf("size: %w", err)
	}

	if prob <= 0 || prob >= 1 {
		return fmt.Errorf("size: false positive probability %g must be in (0, 1)", prob)
	}
	if nkeys == 0 && size <= 0 {
		return fmt.Errorf("size: need one of -n or -s")
	}

	printSizes(os.Stdout, nkeys, size, prob)
	return nil
}

func printSizes(w io.Writer, nkeys uint64, size int64, prob float64) {
	if nkeys > 0 {
		bits := mmbloom.RequiredBits(nkeys, prob)
		nb := mmbloom.RequiredBytes(nkeys, prob)
		fmt.Fprintf(w, "%d keys at p=%g: %d bits, %d bytes (+12 footer), k %d\n",
			nkeys, prob, bits, nb, mmbloom.OptimalK(nb*8, nkeys))
	}

	if size > 0 {
		bits := uint64(size) * 8
		fmt.Fprintf(w, "%d bytes at p=%g: capacity %.0f keys\n",
			size, prob, mmbloom.ExpectedCapacity(bits, prob))

		if nkeys > 0 {
			fmt.Fprintf(w, "%d bytes with %d keys: p=%6.4g\n",
				size, nkeys, mmbloom.ExpectedProbability(bits, nkeys))
		}
	}
}
