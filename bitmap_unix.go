// bitmap_unix.go -- OS specific sync of mapped bitmaps
//
// (c) Sudhi Herle 2018
//
// License GPLv2
// If you need a commercial license for this work, please contact
// the author.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

//go:build unix

package mmbloom

import (
	"golang.org/x/sys/unix"
)

// go-mmap's Mapping.Flush() hands the fd to msync(2) as its flags
func msync(b []byte) error {
	return unix.Msync(b, unix.MS_SYNC)
}
