// bloom.go -- persistent bloom filter on a memory mapped bitmap
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
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dchest/siphash"
)

// The filter occupies the entire bitmap. The last 12 bytes hold the
// metadata footer; all multibyte ints are little-endian:
//
//   - filter bits  [nbits/8]byte  MSB first within each byte
//   - nkeys        uint64         elements added (as of the last flush)
//   - k            uint32         hash probes per key
const (
	_CountSize  = 8
	_KSize      = 4
	_FooterSize = _CountSize + _KSize

	// DefaultLength is the default size of the filter bits in bytes
	DefaultLength int64 = 16 * 1024 * 1024

	// DefaultK is the default number of hash probes per key
	DefaultK = 4
)

// siphash key for Digest(); fixed so digests compare across processes
var digestKey = [16]byte{'m', 'm', 'b', 'l', 'o', 'o', 'm', '-', 'd', 'i', 'g', 'e', 's', 't', 'v', '1'}

// Filter is a bloom filter whose bits and metadata live in a Bitmap.
// Adding a key sets k bits; a key is reported present when all of its k
// bits are set. Filters have false positives but no false negatives.
//
// The element count is only durable after Flush() or Close(). A Filter
// is not safe for concurrent use.
type Filter struct {
	bm *Bitmap

	// usable bits (excludes the footer)
	nbits uint64

	// byte offset of the footer
	foff int64

	k uint32
	n uint64
}

// New creates a filter with 'length' bytes of filter bits on an anonymous
// bitmap owned by the filter. The bitmap has room for the footer in
// addition to 'length'.
func New(length int64, k int) (*Filter, error) {
	if err := checkK(k); err != nil {
		return nil, err
	}

	bm, err := NewBitmap(length+_FooterSize, "")
	if err != nil {
		return nil, err
	}
	return newOwned(bm, k)
}

// Open creates or re-opens a filter persisted in file 'fn'. The file is
// grown if needed to hold 'length' bytes of filter bits and the footer.
// If the file already holds a filter, its persisted 'k' is used.
//
// An existing file larger than 'length' plus the footer is mapped whole:
// the footer always lives at the end of the file, so 'length' only sets
// a lower bound on the filter size.
func Open(fn string, length int64, k int) (*Filter, error) {
	if err := checkK(k); err != nil {
		return nil, err
	}

	sz := length + _FooterSize
	if st, err := os.Stat(fn); err == nil && st.Mode().IsRegular() && st.Size() > sz {
		sz = st.Size()
	}

	bm, err := NewBitmap(sz, fn)
	if err != nil {
		return nil, err
	}
	return newOwned(bm, k)
}

// NewWithBitmap layers a filter on 'bm'. If the footer of 'bm' has no
// persisted hash count, 'k' is adopted and written to the footer;
// otherwise the persisted value is used and 'k' is ignored.
//
// The caller owns 'bm'. Closing the filter also closes 'bm'.
func NewWithBitmap(bm *Bitmap, k int) (*Filter, error) {
	if err := checkK(k); err != nil {
		return nil, err
	}

	if bm.Size() <= _FooterSize {
		return nil, fmt.Errorf("%w: bitmap of %d bytes has no room for filter bits", ErrInvalidArg, bm.Size())
	}

	foff := bm.Size() - _FooterSize
	f := &Filter{
		bm:    bm,
		nbits: bm.Bits() - 8*_FooterSize,
		foff:  foff,
	}

	kb, err := bm.GetRange(foff+_CountSize, foff+_FooterSize)
	if err != nil {
		return nil, err
	}

	f.k = binary.LittleEndian.Uint32(kb)
	if f.k == 0 {
		f.k = uint32(k)
		binary.LittleEndian.PutUint32(kb, f.k)
		if err := bm.SetRange(foff+_CountSize, foff+_FooterSize, kb); err != nil {
			return nil, err
		}
	}

	nb, err := bm.GetRange(foff, foff+_CountSize)
	if err != nil {
		return nil, err
	}
	f.n = binary.LittleEndian.Uint64(nb)
	return f, nil
}

// construct on a bitmap we created; tear it down on failure
func newOwned(bm *Bitmap, k int) (*Filter, error) {
	f, err := NewWithBitmap(bm, k)
	if err != nil {
		bm.Close()
		return nil, err
	}
	return f, nil
}

func checkK(k int) error {
	if k < 1 || uint64(k) > uint64(^uint32(0)) {
		return fmt.Errorf("%w: hash count %d must be in [1, 2^32)", ErrInvalidArg, k)
	}
	return nil
}

// Add adds 'key' to the filter and returns true. If 'checkFirst' is true
// and the key is already present, the filter is unchanged and Add
// returns false.
func (f *Filter) Add(key []byte, checkFirst bool) bool {
	if checkFirst && f.Contains(key) {
		return false
	}

	bm := f.bm
	probes(key, f.k, func(h uint32) bool {
		bm.Set(uint64(h) % f.nbits)
		return true
	})
	f.n++
	return true
}

// Contains returns true if 'key' is probably in the filter and false if
// it definitely is not.
func (f *Filter) Contains(key []byte) bool {
	bm := f.bm
	return probes(key, f.k, func(h uint32) bool {
		return bm.IsSet(uint64(h) % f.nbits)
	})
}

// Len returns the number of successful Add() calls; this may be ahead of
// the count persisted in the footer.
func (f *Filter) Len() uint64 {
	return f.n
}

// Bits returns the number of usable filter bits
func (f *Filter) Bits() uint64 {
	return f.nbits
}

// K returns the number of hash probes per key
func (f *Filter) K() int {
	return int(f.k)
}

// Bitmap returns the underlying bitmap
func (f *Filter) Bitmap() *Bitmap {
	return f.bm
}

// FalsePositiveRate returns the expected false positive probability for
// the current number of elements.
func (f *Filter) FalsePositiveRate() float64 {
	return ExpectedProbability(f.nbits, f.n)
}

// Flush writes the element count to the footer. Unless 'metaOnly' is
// true, the bitmap is also flushed to its backing file. The persisted
// hash count is never rewritten.
func (f *Filter) Flush(metaOnly bool) error {
	var b [_CountSize]byte

	binary.LittleEndian.PutUint64(b[:], f.n)
	if err := f.bm.SetRange(f.foff, f.foff+_CountSize, b[:]); err != nil {
		return err
	}

	if metaOnly {
		return nil
	}
	return f.bm.Flush()
}

// Close flushes the filter and closes the underlying bitmap
func (f *Filter) Close() error {
	if f.bm.mem == nil {
		return nil
	}

	err := f.Flush(false)
	if e := f.bm.Close(); e != nil && err == nil {
		err = e
	}
	return err
}

// Digest returns a siphash-2-4 of the filter bits. Filters built from the
// same keys with the same size and k have equal digests.
func (f *Filter) Digest() uint64 {
	h := siphash.New(digestKey[:])
	h.Write(f.bm.mem[:f.foff])
	return h.Sum64()
}

// WriteTo writes the byte-exact image of the filter (bits and footer) to
// 'w'. The footer is refreshed first so the image carries the current
// element count. The image can be opened with Open() once written to a
// file.
func (f *Filter) WriteTo(w io.Writer) (int64, error) {
	if err := f.Flush(true); err != nil {
		return 0, err
	}

	wr := newErrWriter(w)
	n, _ := wr.Write(f.bm.mem)
	return int64(n), wr.Error()
}

// Fill returns the number of set filter bits
func (f *Filter) Fill() uint64 {
	return popcount(f.bm.mem[:f.foff])
}

// DumpMeta dumps the filter metadata to io.Writer 'w'
func (f *Filter) DumpMeta(w io.Writer) {
	fmt.Fprintf(w, "%s", f.Desc())
}

// Desc provides a human description of the filter
func (f *Filter) Desc() string {
	var w strings.Builder

	fn := f.bm.Filename()
	if len(fn) == 0 {
		fn = "<anon>"
	}

	fmt.Fprintf(&w, "bloom: %s: %d bits (%s), k %d, %d keys\n",
		fn, f.nbits, humansize(uint64(f.foff)), f.k, f.n)
	fmt.Fprintf(&w, "  fill %d bits, exp fp-rate %6.4g, digest %#x\n",
		f.Fill(), f.FalsePositiveRate(), f.Digest())
	return w.String()
}
