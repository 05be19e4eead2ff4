// sizing.go -- optimal bloom filter sizing relations
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
	"math"
)

// ln(2)^2
var ln2sq = math.Ln2 * math.Ln2

// RequiredBits returns the number of bits needed to hold 'capacity'
// elements with a false positive probability of 'p':
//
//	ceil(-capacity * ln(p) / ln(2)^2)
func RequiredBits(capacity uint64, p float64) uint64 {
	return uint64(math.Ceil(-float64(capacity) * math.Log(p) / ln2sq))
}

// RequiredBytes is RequiredBits rounded up to whole bytes. It does not
// include the 12 byte metadata footer.
func RequiredBytes(capacity uint64, p float64) uint64 {
	return (RequiredBits(capacity, p) + 7) / 8
}

// ExpectedProbability returns the false positive probability of a filter
// of 'bits' bits holding 'capacity' elements:
//
//	e^(-(bits/capacity) * ln(2)^2)
func ExpectedProbability(bits, capacity uint64) float64 {
	return math.Exp(-(float64(bits) / float64(capacity)) * ln2sq)
}

// ExpectedCapacity returns the number of elements a filter of 'bits' bits
// can hold before its false positive probability reaches 'p'.
func ExpectedCapacity(bits uint64, p float64) float64 {
	return -float64(bits) / math.Log(p) * ln2sq
}

// OptimalK returns the hash fan-out that minimizes the false positive rate
// for a filter of 'bits' bits holding 'capacity' elements. It is at
// least 1.
func OptimalK(bits, capacity uint64) int {
	if capacity == 0 {
		return 1
	}

	k := int(math.Round(float64(bits) / float64(capacity) * math.Ln2))
	if k < 1 {
		k = 1
	}
	return k
}
