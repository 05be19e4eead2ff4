// sizing_test.go -- test suite for the sizing relations
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
	"testing"
)

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol*math.Max(math.Abs(a), math.Abs(b))
}

func TestSizingKnown(t *testing.T) {
	assert := newAsserter(t)

	// 10k elements at 1%: ~9.585 bits per element
	bits := RequiredBits(10000, 0.01)
	assert(bits == 95851, "required bits: exp 95851, saw %d", bits)

	nb := RequiredBytes(10000, 0.01)
	assert(nb == 11982, "required bytes: exp 11982, saw %d", nb)

	k := OptimalK(nb*8, 10000)
	assert(k == 7, "optimal k: exp 7, saw %d", k)
	assert(OptimalK(8, 10000) == 1, "optimal k must be at least 1")
	assert(OptimalK(8, 0) == 1, "optimal k for empty filter must be 1")
}

func TestSizingRoundTrip(t *testing.T) {
	assert := newAsserter(t)

	caps := []uint64{1, 10, 1000, 123457, 10000000}
	probs := []float64{0.5, 0.1, 0.01, 0.001, 1e-6}

	for _, c := range caps {
		for _, p := range probs {
			bits := RequiredBits(c, p)

			// rounding up bits can only lower the probability
			ep := ExpectedProbability(bits, c)
			assert(ep <= p*(1+1e-9), "cap %d p %g: exp prob %g > p", c, p, ep)

			// and not by much for non-trivial filters
			if bits > 1000 {
				assert(approx(ep, p, 1e-2), "cap %d p %g: exp prob %g", c, p, ep)
			}

			ec := ExpectedCapacity(bits, p)
			assert(ec >= float64(c)*(1-1e-9), "cap %d p %g: exp capacity %g < cap", c, p, ec)
			if bits > 1000 {
				assert(approx(ec, float64(c), 1e-2), "cap %d p %g: exp capacity %g", c, p, ec)
			}
		}
	}
}

func TestSizingEmpty(t *testing.T) {
	assert := newAsserter(t)

	assert(ExpectedProbability(1024, 0) == 0, "empty filter must have no false positives")
	assert(RequiredBits(0, 0.01) == 0, "no capacity needs no bits")
}
