// bitmap.go -- bit addressable memory mapped region
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

package mmbloom

import (
	"fmt"
	"os"

	"github.com/opencoff/go-mmap"
)

// Bitmap is a fixed size, bit addressable region of memory. The region is
// either an anonymous mapping that lives as long as the process or a
// shared mapping of the first 'Size()' bytes of a file.
//
// Bits are numbered MSB first within each byte: bit 0 is the most
// significant bit of byte 0. This ordering is part of the on-disk format.
//
// A Bitmap is not safe for concurrent use.
type Bitmap struct {
	// mapped region; nil once closed
	mem  []byte
	size int64

	mm *mmap.Mapping

	// only set for file backed bitmaps
	fd *os.File
	fn string
}

// NewBitmap creates a bitmap of 'size' bytes. If 'fn' is empty, the bitmap
// is backed by an anonymous mapping. Otherwise the file 'fn' is opened
// (created if needed), grown to at least 'size' bytes and its first 'size'
// bytes are mapped read-write.
func NewBitmap(size int64, fn string) (*Bitmap, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: bitmap size %d must be positive", ErrInvalidArg, size)
	}

	if len(fn) == 0 {
		mapping, err := mmap.NewAnon().Map(size, 0, mmap.PROT_READ|mmap.PROT_WRITE, 0)
		if err != nil {
			return nil, errIO(fn, fmt.Sprintf("can't mmap %d bytes", size), err)
		}
		return &Bitmap{mem: mapping.Bytes(), size: size, mm: mapping}, nil
	}

	return openBitmap(size, fn)
}

func openBitmap(size int64, fn string) (bm *Bitmap, err error) {
	fd, err := os.OpenFile(fn, os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return nil, errIO(fn, "can't open", err)
	}

	// never leak the fd on a partial construction
	defer func(e *error) {
		if *e != nil {
			fd.Close()
		}
	}(&err)

	st, err := fd.Stat()
	if err != nil {
		return nil, errIO(fn, "can't stat", err)
	}

	if st.Size() < size {
		if err = fd.Truncate(size); err != nil {
			return nil, errIO(fn, fmt.Sprintf("can't grow from %d to %d bytes", st.Size(), size), err)
		}
	}

	mm := mmap.New(fd)
	mapping, err := mm.Map(size, 0, mmap.PROT_READ|mmap.PROT_WRITE, 0)
	if err != nil {
		return nil, errIO(fn, fmt.Sprintf("can't mmap %d bytes", size), err)
	}

	bm = &Bitmap{
		mem:  mapping.Bytes(),
		size: size,
		mm:   mapping,
		fd:   fd,
		fn:   fn,
	}
	return bm, nil
}

// Bits returns the number of addressable bits
func (bm *Bitmap) Bits() uint64 {
	return 8 * uint64(bm.size)
}

// Size returns the size of the bitmap in bytes
func (bm *Bitmap) Size() int64 {
	return bm.size
}

// Filename returns the backing file name; it is empty for anonymous
// bitmaps.
func (bm *Bitmap) Filename() string {
	return bm.fn
}

// Bit returns the value (0 or 1) of bit 'i'. The caller must ensure
// i < Bits().
func (bm *Bitmap) Bit(i uint64) int {
	return int(bm.mem[i/8]>>(7-i%8)) & 1
}

// IsSet returns true if bit 'i' is set
func (bm *Bitmap) IsSet(i uint64) bool {
	return bm.Bit(i) == 1
}

// SetBit sets bit 'i' if 'v' is non-zero and clears it otherwise.
func (bm *Bitmap) SetBit(i uint64, v int) {
	m := byte(1) << (7 - i%8)
	if v != 0 {
		bm.mem[i/8] |= m
	} else {
		bm.mem[i/8] &= ^m
	}
}

// Set sets bit 'i'
func (bm *Bitmap) Set(i uint64) {
	bm.SetBit(i, 1)
}

// Clear clears bit 'i'
func (bm *Bitmap) Clear(i uint64) {
	bm.SetBit(i, 0)
}

// GetRange returns a copy of the raw bytes in [i, j).
func (bm *Bitmap) GetRange(i, j int64) ([]byte, error) {
	if err := bm.checkRange("get", i, j); err != nil {
		return nil, err
	}

	b := make([]byte, j-i)
	copy(b, bm.mem[i:j])
	return b, nil
}

// SetRange overwrites the raw bytes in [i, j) with 'b'; 'b' must be
// exactly j-i bytes long.
func (bm *Bitmap) SetRange(i, j int64, b []byte) error {
	if err := bm.checkRange("set", i, j); err != nil {
		return err
	}
	if int64(len(b)) != j-i {
		return fmt.Errorf("%w: set: range [%d, %d) needs %d bytes, saw %d",
			ErrInvalidArg, i, j, j-i, len(b))
	}

	copy(bm.mem[i:j], b)
	return nil
}

// PopCount returns the number of set bits
func (bm *Bitmap) PopCount() uint64 {
	return popcount(bm.mem)
}

// Union returns a new anonymous bitmap that is the bitwise OR of 'bm'
// and 'o'. Both bitmaps must be the same size.
func (bm *Bitmap) Union(o *Bitmap) (*Bitmap, error) {
	return bm.combine(o, "union", func(a, b byte) byte { return a | b })
}

// Intersect returns a new anonymous bitmap that is the bitwise AND of
// 'bm' and 'o'. Both bitmaps must be the same size.
func (bm *Bitmap) Intersect(o *Bitmap) (*Bitmap, error) {
	return bm.combine(o, "intersect", func(a, b byte) byte { return a & b })
}

func (bm *Bitmap) combine(o *Bitmap, who string, op func(a, b byte) byte) (*Bitmap, error) {
	if bm.size != o.size {
		return nil, fmt.Errorf("%w: %s: size mismatch; %d vs %d bytes", ErrInvalidArg, who, bm.size, o.size)
	}

	r, err := NewBitmap(bm.size, "")
	if err != nil {
		return nil, err
	}

	for i, b := range bm.mem {
		r.mem[i] = op(b, o.mem[i])
	}
	return r, nil
}

// Flush synchronously writes dirty pages to the backing file. It is a
// no-op for anonymous bitmaps.
func (bm *Bitmap) Flush() error {
	if bm.fd == nil || bm.mem == nil {
		return nil
	}

	if err := msync(bm.mem); err != nil {
		return errIO(bm.fn, "can't sync", err)
	}
	return nil
}

// Close flushes the bitmap, unmaps it and closes the backing file (if
// any). Calling Close more than once is harmless. The first error seen
// is returned; cleanup continues regardless.
func (bm *Bitmap) Close() error {
	if bm.mem == nil {
		return nil
	}

	err := bm.Flush()

	if e := bm.mm.Unmap(); e != nil && err == nil {
		err = errIO(bm.fn, "can't unmap", e)
	}

	if bm.fd != nil {
		if e := bm.fd.Close(); e != nil && err == nil {
			err = errIO(bm.fn, "can't close", e)
		}
	}

	bm.mem = nil
	bm.mm = nil
	bm.fd = nil
	return err
}

func (bm *Bitmap) checkRange(who string, i, j int64) error {
	if i < 0 || i > j || j > bm.size {
		return errRange(who, i, j, bm.size)
	}
	return nil
}
