// hash.go -- hash probes for the bloom filter
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
	"os"
)

// set to true for verbose debug
const debug bool = false

const (
	_DJBSeed uint32 = 5381
	_FNVMul  uint32 = 0x811C9DC5
	_JSSeed  uint32 = 1315423911

	// hashes produced by one pass over the key
	_PassWidth = 4
)

// running state of the four string hashes: DJB2, DEK, FNV-1 (multiply
// then xor) and JS.
type hash4 [_PassWidth]uint32

func newHash4(keylen int) hash4 {
	return hash4{_DJBSeed, uint32(keylen), 0, _JSSeed}
}

func (h *hash4) update(b []byte) {
	djb, dek, fnv, js := h[0], h[1], h[2], h[3]
	for _, c := range b {
		x := uint32(c)
		djb = djb*33 + x
		dek = ((dek << 6) ^ (dek >> 27)) ^ x
		fnv = (fnv * _FNVMul) ^ x
		js ^= (js << 5) + x + (js >> 2)
	}
	h[0], h[1], h[2], h[3] = djb, dek, fnv, js
}

// one pass over the key. Every pass after the first mixes in the
// little-endian salt before the key bytes.
func hashPass(key []byte, salt uint32, salted bool) hash4 {
	h := newHash4(len(key))
	if salted {
		var s [4]byte

		binary.LittleEndian.PutUint32(s[:], salt)
		h.update(s[:])
	}
	h.update(key)
	return h
}

// probes calls 'fp' with each of the first 'k' hashes of 'key' in order.
// Passes of four hashes are generated until 'k' are produced; the salt of
// pass i is the xor of the four outputs of pass i-1. Iteration stops
// early when 'fp' returns false and probes returns false.
func probes(key []byte, k uint32, fp func(h uint32) bool) bool {
	var salt uint32

	for pass := 0; k > 0; pass++ {
		h := hashPass(key, salt, pass > 0)
		if debug {
			printf("pass %d: salt %#x => %#x", pass, salt, h)
		}

		for i := 0; i < _PassWidth && k > 0; i++ {
			if !fp(h[i]) {
				return false
			}
			k--
		}
		salt = h[0] ^ h[1] ^ h[2] ^ h[3]
	}
	return true
}

// Hashes returns the first 'k' probe hashes of 'key'. It is the
// allocating form of what Add and Contains compute internally.
func Hashes(key []byte, k int) []uint32 {
	if k <= 0 {
		return nil
	}

	v := make([]uint32, 0, k)
	probes(key, uint32(k), func(h uint32) bool {
		v = append(v, h)
		return true
	})
	return v
}

func printf(f string, v ...interface{}) {
	if !debug {
		return
	}

	s := fmt.Sprintf(f, v...)
	if n := len(s); s[n-1] != '\n' {
		s += "\n"
	}

	os.Stdout.WriteString(s)
	os.Stdout.Sync()
}
