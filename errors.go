// errors.go - public errors exposed by mmbloom
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

package mmbloom

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArg is returned when a caller supplied size, hash count
	// or byte range is out of bounds.
	ErrInvalidArg = errors.New("invalid argument")

	// ErrIO is returned when growing, mapping, syncing or closing the
	// backing store fails. The underlying OS error is wrapped as well.
	ErrIO = errors.New("i/o failure")
)

func errRange(who string, i, j, sz int64) error {
	return fmt.Errorf("%w: %s: bad range [%d, %d) for %d bytes", ErrInvalidArg, who, i, j, sz)
}

func errIO(fn, what string, err error) error {
	if len(fn) == 0 {
		fn = "<anon>"
	}
	return fmt.Errorf("%w: %s: %s: %w", ErrIO, fn, what, err)
}
