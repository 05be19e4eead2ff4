// doc.go - top level documentation
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

// Package mmbloom implements a persistent bloom filter on top of a memory
// mapped bitmap.
//
// The 'Bitmap' is a fixed size, bit addressable region that is either an
// anonymous mapping or a shared mapping of a (possibly grown) file. Bits
// are numbered MSB first within each byte.
//
// The 'Filter' is a bloom filter that uses all but the last 12 bytes of a
// Bitmap for its bits; the last 12 bytes hold the number of keys added
// (uint64) and the number of hash probes per key (uint32), both
// little-endian. A file backed filter survives process restarts: re-opening
// the file recovers the hash count and the element count as of the last
// Flush() or Close().
//
// Each key is hashed with four classic 32-bit string hashes (DJB2, DEK,
// FNV-1 and JS); when more than four probes are needed, further passes
// are salted with the xor of the previous pass.
//
// Neither type is safe for concurrent use; callers must serialize access.
package mmbloom
