// utils.go -- utility functions
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
	"encoding/binary"
	"fmt"
	"math/bits"
)

func popcount(b []byte) uint64 {
	var p uint64

	// whole words first
	for len(b) >= 8 {
		p += uint64(bits.OnesCount64(binary.LittleEndian.Uint64(b)))
		b = b[8:]
	}
	for _, c := range b {
		p += uint64(bits.OnesCount8(c))
	}
	return p
}

// humansize returns a human readable size for 'sz' bytes
func humansize(sz uint64) string {
	const (
		_kB uint64 = 1 << (10 * (iota + 1))
		_MB
		_GB
		_TB
	)

	switch {
	case sz >= _TB:
		return fmt.Sprintf("%4.2f TB", float64(sz)/float64(_TB))
	case sz >= _GB:
		return fmt.Sprintf("%4.2f GB", float64(sz)/float64(_GB))
	case sz >= _MB:
		return fmt.Sprintf("%4.2f MB", float64(sz)/float64(_MB))
	case sz >= _kB:
		return fmt.Sprintf("%4.2f kB", float64(sz)/float64(_kB))
	}
	return fmt.Sprintf("%d bytes", sz)
}
