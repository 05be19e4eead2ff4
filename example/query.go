// query.go -- 'query' command implementation
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

type queryCommand struct{}

func init() {
	m := queryCommand{}
	registerCommand("query", &m)
}

func (m *queryCommand) run(args []string, opt *Option) error {
	var quiet bool

	fs := flag.NewFlagSet("query", flag.ExitOnError)
	fs.SetOutput(os.Stdout)
	fs.BoolVarP(&quiet, "quiet", "q", false, "Print nothing; fail if any key is absent")
	fs.Usage = func() {
		fmt.Printf(`Usage: query [options] FILTER KEY...

where  'FILTER' is the name of the filter file

Options:
`)
		fs.PrintDefaults()
		os.Exit(0)
	}

	err := fs.Parse(args[1:])
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}

	args = fs.Args()
	if len(args) < 2 {
		return fmt.Errorf("query: insufficient args")
	}

	f, err := openFilter(args[0])
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}

	defer f.Close()

	var missing int
	for _, k := range args[1:] {
		ok := f.Contains([]byte(k))
		if !ok {
			missing++
		}

		if !quiet {
			if ok {
				fmt.Printf("%s: present\n", k)
			} else {
				fmt.Printf("%s: absent\n", k)
			}
		}
	}

	if quiet && missing > 0 {
		return fmt.Errorf("query: %d of %d keys absent", missing, len(args)-1)
	}
	return nil
}
