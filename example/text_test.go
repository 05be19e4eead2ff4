// text_test.go -- tests for the key loaders
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
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/opencoff/go-mmbloom"
	"github.com/stretchr/testify/require"
)

const textKeys = `
# comment
expectoration  first
mizzenmastman
	stockfather second field

pictorialness
mizzenmastman
`

func newTestFilter(t *testing.T) *mmbloom.Filter {
	f, err := mmbloom.New(4096, mmbloom.DefaultK)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestTextStream(t *testing.T) {
	f := newTestFilter(t)

	l, err := newLoader(f, false, 0)
	require.NoError(t, err)

	n, err := l.AddTextStream(strings.NewReader(textKeys), " \t")
	require.NoError(t, err)
	require.Equal(t, uint64(5), n)
	require.Equal(t, uint64(5), f.Len())

	for _, k := range []string{"expectoration", "mizzenmastman", "stockfather", "pictorialness"} {
		require.True(t, l.Query(k), "%s missing", k)
	}
	require.False(t, l.Query("# comment"))
	require.False(t, l.Query("second"))
}

func TestTextStreamCheck(t *testing.T) {
	f := newTestFilter(t)

	l, err := newLoader(f, true, 0)
	require.NoError(t, err)

	n, err := l.AddTextStream(strings.NewReader(textKeys), "")
	require.NoError(t, err)
	require.Equal(t, uint64(4), n)
	require.Equal(t, uint64(1), l.dups)
	require.Equal(t, uint64(4), f.Len())
}

func TestTextStreamCache(t *testing.T) {
	f := newTestFilter(t)

	l, err := newLoader(f, false, 16)
	require.NoError(t, err)

	n, err := l.AddTextStream(strings.NewReader(textKeys+textKeys), " \t")
	require.NoError(t, err)
	require.Equal(t, uint64(4), n)
	require.Equal(t, uint64(6), l.dups)
	require.Equal(t, uint64(4), f.Len())
}

func TestCSVStream(t *testing.T) {
	f := newTestFilter(t)

	l, err := newLoader(f, false, 0)
	require.NoError(t, err)

	in := "id,name\n# skipped,line\n1,villainous\n2,unquality\n3\n4,\n"
	n, err := l.AddCSVStream(strings.NewReader(in), ',', '#', 1)
	require.NoError(t, err)
	require.Equal(t, uint64(3), n)

	require.True(t, l.Query("name"))
	require.True(t, l.Query("villainous"))
	require.True(t, l.Query("unquality"))
	require.False(t, l.Query("line"))
}

func TestCSVStreamBadRecord(t *testing.T) {
	f := newTestFilter(t)

	l, err := newLoader(f, false, 0)
	require.NoError(t, err)

	in := "1,alpha\n2,\"bro\"ken\n3,gamma\n4,delta\n"
	n, err := l.AddCSVStream(strings.NewReader(in), ',', 0, 1)

	var perr *csv.ParseError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, 2, perr.Line)
	require.Equal(t, uint64(1), n)
	require.True(t, l.Query("alpha"))
	require.False(t, l.Query("gamma"))
}

func TestAddFile(t *testing.T) {
	f := newTestFilter(t)
	dir := t.TempDir()

	txt := filepath.Join(dir, "keys.txt")
	require.NoError(t, os.WriteFile(txt, []byte("heretics\npediment\n"), 0600))

	cfn := filepath.Join(dir, "keys.csv")
	require.NoError(t, os.WriteFile(cfn, []byte("sized,Tarahumari\n"), 0600))

	l, err := newLoader(f, false, 0)
	require.NoError(t, err)

	n, err := l.AddFile(txt, 0)
	require.NoError(t, err)
	require.Equal(t, uint64(2), n)

	n, err = l.AddFile(cfn, 1)
	require.NoError(t, err)
	require.Equal(t, uint64(1), n)
	require.True(t, l.Query("Tarahumari"))
	require.False(t, l.Query("sized"))

	_, err = l.AddFile(filepath.Join(dir, "keys.json"), 0)
	require.Error(t, err)

	_, err = l.AddFile(filepath.Join(dir, "missing.txt"), 0)
	require.ErrorIs(t, err, os.ErrNotExist)
}
