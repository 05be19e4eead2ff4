// helpers_test.go - helper routines for tests
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
	"crypto/rand"
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/opencoff/go-fasthash"
)

var keep bool

func init() {
	flag.BoolVar(&keep, "keep", false, "Keep test files")
}

func rand64() uint64 {
	var b [8]byte

	_, err := io.ReadFull(rand.Reader, b[:])
	if err != nil {
		panic("can't read crypto/rand")
	}

	return binary.BigEndian.Uint64(b[:])
}

// tmpfile returns a fresh file name for test 't'; the file is removed
// after the test unless -keep is given.
func tmpfile(t *testing.T, pref string) string {
	fn := filepath.Join(os.TempDir(), fmt.Sprintf("%s%d.bloom", pref, rand64()))
	t.Cleanup(func() {
		if keep {
			t.Logf("%s retained after test\n", fn)
			return
		}
		os.Remove(fn)
	})
	return fn
}

// synthetic 8 byte key derived from 'seed' and 'i'
func synthKey(seed uint64, i uint64) []byte {
	var b [8]byte

	binary.LittleEndian.PutUint64(b[:], i)
	h := fasthash.Hash64(seed, b[:])
	binary.LittleEndian.PutUint64(b[:], h)
	return b[:]
}

func newAsserter(t *testing.T) func(cond bool, msg string, args ...interface{}) {
	return func(cond bool, msg string, args ...interface{}) {
		if cond {
			return
		}

		_, file, line, ok := runtime.Caller(1)
		if !ok {
			file = "???"
			line = 0
		}

		s := fmt.Sprintf(msg, args...)
		t.Fatalf("%s: %d: Assertion failed: %s\n", file, line, s)
	}
}

var keyw = []string{
	"expectoration",
	"mizzenmastman",
	"stockfather",
	"pictorialness",
	"villainous",
	"unquality",
	"sized",
	"Tarahumari",
	"endocrinotherapy",
	"quicksandy",
	"heretics",
	"pediment",
	"spleen's",
	"Shepard's",
	"paralyzed",
	"megahertzes",
	"Richardson's",
	"mechanics's",
	"Springfield",
	"burlesques",
}
