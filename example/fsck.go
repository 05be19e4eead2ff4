// fsck.go -- filter consistency checks
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

	"github.com/opencoff/go-mmbloom"
)

// the largest hash count we consider sane
const maxK = 64

// fsck checks that the footer of 'f' is consistent with its bits:
// the hash count is sane and no key count implies fewer set bits than
// are actually set.
func fsck(f *mmbloom.Filter) error {
	k := f.K()
	if k < 1 || k > maxK {
		return fmt.Errorf("implausible hash count %d", k)
	}

	set := f.Fill()

	// every add sets at most k bits; round up so a partial key counts
	if keys := (set + uint64(k) - 1) / uint64(k); keys > f.Len() {
		return fmt.Errorf("%d bits set need at least %d keys with k %d; saw %d", set, keys, k, f.Len())
	}
	return nil
}
