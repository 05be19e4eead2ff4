// cmds.go -- commands abstraction
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
	"sync"

	"github.com/opencoff/go-mmbloom"
)

type command interface {
	run(args []string, opt *Option) error
}

var cmds = struct {
	sync.Mutex
	m map[string]command
}{
	m: make(map[string]command),
}

func registerCommand(nm string, cmd command) {
	cmds.Lock()
	if _, ok := cmds.m[nm]; ok {
		panic(fmt.Sprintf("%s already registered", nm))
	}
	cmds.m[nm] = cmd
	cmds.Unlock()
}

func runCommand(args []string, o *Option) error {
	nm := args[0]

	cmds.Lock()
	defer cmds.Unlock()
	cmd, ok := cmds.m[nm]
	if !ok {
		return fmt.Errorf("unknown command %s", nm)
	}

	return cmd.run(args, o)
}

type Option struct {
	verbose bool
}

func (o *Option) Printf(s string, v ...interface{}) {
	if o.verbose {
		fmt.Printf(s, v...)
	}
}

// openFilter opens an existing filter in file 'fn'. Unlike mmbloom.Open()
// it refuses files that don't carry a filter footer.
func openFilter(fn string) (*mmbloom.Filter, error) {
	st, err := os.Stat(fn)
	if err != nil {
		return nil, err
	}

	sz := st.Size()
	if sz <= 12 {
		return nil, fmt.Errorf("%s: file too small (%d bytes) for a filter", fn, sz)
	}

	bm, err := mmbloom.NewBitmap(sz, fn)
	if err != nil {
		return nil, err
	}

	kb, err := bm.GetRange(sz-4, sz)
	if err != nil {
		bm.Close()
		return nil, err
	}
	if kb[0]|kb[1]|kb[2]|kb[3] == 0 {
		bm.Close()
		return nil, fmt.Errorf("%s: not a bloom filter (no hash count in footer)", fn)
	}

	// the persisted k wins; the 1 is never used
	f, err := mmbloom.NewWithBitmap(bm, 1)
	if err != nil {
		bm.Close()
		return nil, err
	}
	return f, nil
}
