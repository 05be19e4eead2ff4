// errwriter.go -- io.writer that handles errors gracefully
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
	"fmt"
	"io"
)

// errWriter remembers the first failed or short write; every later write
// is a no-op that returns the same error.
type errWriter struct {
	w   io.Writer
	err error
}

func newErrWriter(w io.Writer) *errWriter {
	return &errWriter{
		w: w,
	}
}

func (e *errWriter) Write(b []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}

	n, err := e.w.Write(b)
	switch {
	case err != nil:
		e.err = fmt.Errorf("%w: write: %w", ErrIO, err)
	case n != len(b):
		e.err = fmt.Errorf("%w: short write: exp %d, wrote %d", ErrIO, len(b), n)
	}
	return n, e.err
}

func (e *errWriter) Error() error {
	return e.err
}
