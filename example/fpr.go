// fpr.go -- 'fpr' command implementation
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
	"encoding/binary"
	"fmt"
	"os"
	"time"

	"github.com/opencoff/go-fasthash"
	"github.com/opencoff/go-mmbloom"
	flag "github.com/opencoff/pflag"
)

type fprCommand struct{}

func init() {
	registerCommand("fpr", &fprCommand{})
}

type fprResult struct {
	added  uint64
	probed uint64
	fp     uint64
	exp    float64
}

func (r *fprResult) rate() float64 {
	return float64(r.fp) / float64(r.probed)
}

func (m *fprCommand) run(args []string, opt *Option) error {
	var nkeys, probes, seed uint64
	var size int64
	var prob float64
	var k int

	fs := flag.NewFlagSet("fpr", flag.ExitOnError)
	fs.SetOutput(os.Stdout)
	fs.Uint64VarP(&nkeys, "keys", "n", 100000, "Add `N` synthetic keys")
	fs.Uint64VarP(&probes, "probes", "m", 1000000, "Probe `M` keys that were never added")
	fs.Int64VarP(&size, "size", "s", 0, "Use `B` bytes of filter bits [sized for -n and -p]")
	fs.Float64VarP(&prob, "prob", "p", 0.01, "Size the filter for probability `P`")
	fs.IntVarP(&k, "hashes", "k", 0, "Use `K` hash probes per key [optimal]")
	fs.Uint64VarP(&seed, "seed", "S", uint64(time.Now().UnixNano()), "Key generator seed `S`")
	fs.Usage = func() {
		fmt.Printf(`Usage: fpr [options]

Measure the false positive rate of an in-memory filter holding -n
synthetic keys and compare it with the expected rate.

Options:
`)
		fs.PrintDefaults()
		os.Exit(0)
	}

	err := fs.Parse(args[1:])
	if err != nil {
		return fmt.Errorf("fpr: %w", err)
	}

	if nkeys == 0 || probes == 0 {
		return fmt.Errorf("fpr: need non-zero keys and probes")
	}

	size, k, err = makeParams(size, nkeys, prob, k)
	if err != nil {
		return fmt.Errorf("fpr: %w", err)
	}

	opt.Printf("fpr: %d bytes, k %d, seed %#x\n", size, k, seed)

	start := time.Now()
	r, err := measureFPR(size, k, nkeys, probes, seed)
	if err != nil {
		return fmt.Errorf("fpr: %w", err)
	}

	fmt.Printf("%d keys, %d probes: %d false positives; saw %6.4g, exp %6.4g (%s)\n",
		r.added, r.probed, r.fp, r.rate(), r.exp, time.Since(start).Truncate(time.Millisecond))
	return nil
}

// measureFPR adds 'nkeys' synthetic keys to an anonymous filter and
// counts how many of 'probes' never-added keys it reports present.
func measureFPR(size int64, k int, nkeys, probes, seed uint64) (*fprResult, error) {
	f, err := mmbloom.New(size, k)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	for i := uint64(0); i < nkeys; i++ {
		f.Add(synthKey(seed, i), false)
	}

	r := &fprResult{
		added:  f.Len(),
		probed: probes,
		exp:    f.FalsePositiveRate(),
	}

	for i := nkeys; i < nkeys+probes; i++ {
		if f.Contains(synthKey(seed, i)) {
			r.fp++
		}
	}
	return r, nil
}

// synthetic 8 byte key: fasthash of counter 'i'
func synthKey(seed, i uint64) []byte {
	var b [8]byte

	binary.LittleEndian.PutUint64(b[:], i)
	binary.LittleEndian.PutUint64(b[:], fasthash.Hash64(seed, b[:]))
	return b[:]
}
