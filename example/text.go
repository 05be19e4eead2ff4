// text.go -- read keys from a variety of text files and add them to a filter
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
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/golang-lru/arc/v2"
	"github.com/opencoff/go-mmbloom"
)

// loader adds keys to a filter. When 'seen' is non-nil, keys found in
// the cache of recently added keys are skipped without touching the
// filter. When 'check' is true, keys already in the filter are not
// added again (and not counted).
type loader struct {
	f     *mmbloom.Filter
	check bool
	seen  *arc.ARCCache[string, struct{}]

	// keys skipped as duplicates
	dups uint64
}

func newLoader(f *mmbloom.Filter, check bool, cache int) (*loader, error) {
	l := &loader{
		f:     f,
		check: check,
	}

	if cache > 0 {
		c, err := arc.NewARC[string, struct{}](cache)
		if err != nil {
			return nil, err
		}
		l.seen = c
	}
	return l, nil
}

// AddFile adds keys from file 'fn'; the file suffix determines how it
// is parsed. CSV files use field 'field' as the key.
func (l *loader) AddFile(fn string, field int) (uint64, error) {
	switch {
	case strings.HasSuffix(fn, ".txt"):
		return l.AddTextFile(fn, " \t")

	case strings.HasSuffix(fn, ".csv"):
		return l.AddCSVFile(fn, ',', '#', field)
	}
	return 0, fmt.Errorf("don't know how to add %s", fn)
}

// AddTextFile adds keys from text file 'fn'. The key is the first field
// of each line; fields are separated by one of the characters in 'delim'.
// Empty lines and lines beginning with '#' are skipped.
// Returns number of keys added.
func (l *loader) AddTextFile(fn string, delim string) (uint64, error) {
	fd, err := os.Open(fn)
	if err != nil {
		return 0, err
	}

	defer fd.Close()

	return l.AddTextStream(fd, delim)
}

// AddTextStream adds keys from text stream 'fd'; see AddTextFile.
// Returns number of keys added.
func (l *loader) AddTextStream(fd io.Reader, delim string) (uint64, error) {
	if len(delim) == 0 {
		delim = " \t"
	}

	sc := bufio.NewScanner(bufio.NewReader(fd))
	ch := make(chan string, 10)

	var rerr error

	// do I/O asynchronously
	go func(sc *bufio.Scanner, ch chan string) {
		for sc.Scan() {
			s := strings.TrimSpace(sc.Text())
			if len(s) == 0 || s[0] == '#' {
				continue
			}

			if i := strings.IndexAny(s, delim); i > 0 {
				s = s[:i]
			}
			ch <- s
		}

		rerr = sc.Err()
		close(ch)
	}(sc, ch)

	n := l.addFromChan(ch)
	return n, rerr
}

// AddCSVFile adds keys from CSV file 'fn'. The key is field# 'field'
// (default 0). If 'comma' is 0, the default CSV delimiter ',' is used.
// If 'comment' is not 0, then lines beginning with that rune are
// discarded. Records without the key field are discarded. A malformed
// record stops the load and its parse error is returned.
// Returns number of keys added.
func (l *loader) AddCSVFile(fn string, comma, comment rune, field int) (uint64, error) {
	fd, err := os.Open(fn)
	if err != nil {
		return 0, err
	}

	defer fd.Close()

	return l.AddCSVStream(fd, comma, comment, field)
}

// AddCSVStream adds keys from CSV stream 'fd'; see AddCSVFile.
// Returns number of keys added.
func (l *loader) AddCSVStream(fd io.Reader, comma, comment rune, field int) (uint64, error) {
	if field < 0 {
		field = 0
	}

	ch := make(chan string, 10)
	cr := csv.NewReader(fd)
	if comma != 0 {
		cr.Comma = comma
	}
	cr.Comment = comment
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	var rerr error

	go func(cr *csv.Reader, ch chan string) {
		for {
			v, err := cr.Read()
			if err != nil {
				if err != io.EOF {
					rerr = err
				}
				break
			}

			if len(v) <= field || len(v[field]) == 0 {
				continue
			}

			ch <- v[field]
		}
		close(ch)
	}(cr, ch)

	n := l.addFromChan(ch)
	return n, rerr
}

// Query returns true if key 's' is probably in the filter
func (l *loader) Query(s string) bool {
	return l.f.Contains([]byte(s))
}

// read keys from the chan and add them to the filter
func (l *loader) addFromChan(ch chan string) uint64 {
	var n uint64
	for s := range ch {
		if l.seen != nil {
			if l.seen.Contains(s) {
				l.dups++
				continue
			}
			l.seen.Add(s, struct{}{})
		}

		if l.f.Add([]byte(s), l.check) {
			n++
		} else {
			l.dups++
		}
	}

	return n
}
