// cmds_test.go -- tests for command helpers
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

package main

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/opencoff/go-mmbloom"
	"github.com/stretchr/testify/require"
)

func TestMakeParams(t *testing.T) {
	size, k, err := makeParams(0, 0, 0.01, 0)
	require.NoError(t, err)
	require.Equal(t, mmbloom.DefaultLength, size)
	require.Equal(t, mmbloom.DefaultK, k)

	size, k, err = makeParams(0, 10000, 0.01, 0)
	require.NoError(t, err)
	require.Equal(t, int64(11982), size)
	require.Equal(t, 7, k)

	size, k, err = makeParams(2048, 10000, 0.01, 3)
	require.NoError(t, err)
	require.Equal(t, int64(2048), size)
	require.Equal(t, 3, k)

	_, _, err = makeParams(0, 0, 1.5, 0)
	require.Error(t, err)
}

func TestRunCommandUnknown(t *testing.T) {
	var opt Option

	err := runCommand([]string{"frobnicate"}, &opt)
	require.Error(t, err)
}

func TestOpenFilter(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "words.bloom")

	f, err := mmbloom.Open(fn, 1024, 5)
	require.NoError(t, err)
	require.True(t, f.Add([]byte("burlesques"), false))
	require.NoError(t, f.Close())

	g, err := openFilter(fn)
	require.NoError(t, err)
	require.Equal(t, 5, g.K())
	require.Equal(t, uint64(1), g.Len())
	require.True(t, g.Contains([]byte("burlesques")))
	require.NoError(t, fsck(g))
	require.NoError(t, g.Close())

	// a zero filled file has no hash count
	zero := filepath.Join(dir, "zero.bloom")
	require.NoError(t, os.WriteFile(zero, make([]byte, 64), 0600))
	_, err = openFilter(zero)
	require.Error(t, err)

	tiny := filepath.Join(dir, "tiny.bloom")
	require.NoError(t, os.WriteFile(tiny, make([]byte, 12), 0600))
	_, err = openFilter(tiny)
	require.Error(t, err)

	_, err = openFilter(filepath.Join(dir, "missing.bloom"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestFsckLostCount(t *testing.T) {
	bm, err := mmbloom.NewBitmap(256+12, "")
	require.NoError(t, err)

	f, err := mmbloom.NewWithBitmap(bm, 4)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, fsck(f))

	// bits set without a recorded count
	bm.Set(17)
	require.Error(t, fsck(f))

	bm.Clear(17)
	f.Add([]byte("Springfield"), false)
	require.NoError(t, fsck(f))
}

func TestFsckHugeCount(t *testing.T) {
	bm, err := mmbloom.NewBitmap(256+12, "")
	require.NoError(t, err)

	// a count whose product with k wraps around a uint64
	var nb [8]byte
	binary.LittleEndian.PutUint64(nb[:], 1<<62)
	require.NoError(t, bm.SetRange(256, 256+8, nb[:]))

	f, err := mmbloom.NewWithBitmap(bm, 4)
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, uint64(1)<<62, f.Len())
	f.Add([]byte("paralyzed"), false)
	require.NoError(t, fsck(f))
}

func TestFsckTooManyBits(t *testing.T) {
	f, err := mmbloom.New(256, 2)
	require.NoError(t, err)
	defer f.Close()

	f.Add([]byte("heretics"), false)
	require.NoError(t, fsck(f))

	// one more bit than a single key with k 2 can set
	for i := uint64(0); f.Fill() < 3; i++ {
		f.Bitmap().Set(i)
	}
	require.Error(t, fsck(f))
}

func TestMeasureFPR(t *testing.T) {
	size, k, err := makeParams(0, 5000, 0.02, 0)
	require.NoError(t, err)

	r, err := measureFPR(size, k, 5000, 50000, 0xdeadbeef)
	require.NoError(t, err)
	require.Equal(t, uint64(5000), r.added)
	require.InDelta(t, 0.02, r.exp, 0.001)
	require.InDelta(t, r.exp, r.rate(), r.exp*0.5)
}

func TestPrintSizes(t *testing.T) {
	var b bytes.Buffer

	printSizes(&b, 10000, 11982, 0.01)
	out := b.String()
	require.True(t, strings.Contains(out, "95851 bits, 11982 bytes"), out)
	require.True(t, strings.Contains(out, "k 7"), out)
	require.True(t, strings.Contains(out, "capacity 10001 keys"), out)
}
