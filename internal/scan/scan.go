// Package scan locates a byte marker in a stream by feeding one byte at a time
// through a finite-state matcher.
//
// The scan is a byte-level heuristic rather than a structural container parse:
// the first occurrence of the marker wins, whether or not it starts a real
// chunk.
package scan

import (
	"errors"
	"io"
)

// ErrNotFound is returned when the source is exhausted before the marker is
// seen.
var ErrNotFound = errors.New("scan: marker not found")

// A Matcher is a finite-state automaton recognizing a fixed byte marker. Its
// state is the length of the longest marker prefix which is also a suffix of
// the input seen so far; on mismatch it falls back along the failure table
// instead of rescanning input.
type Matcher struct {
	marker []byte
	// fail[i] is the state to fall back to after a mismatch in state i+1.
	fail  []int
	state int
}

// NewMatcher returns a matcher for the given non-empty marker.
func NewMatcher(marker []byte) *Matcher {
	if len(marker) == 0 {
		panic("scan.NewMatcher: empty marker")
	}
	m := &Matcher{
		marker: append([]byte(nil), marker...),
		fail:   make([]int, len(marker)),
	}
	k := 0
	for i := 1; i < len(marker); i++ {
		for k > 0 && marker[i] != marker[k] {
			k = m.fail[k-1]
		}
		if marker[i] == marker[k] {
			k++
		}
		m.fail[i] = k
	}
	return m
}

// Feed advances the automaton by one input byte and reports whether the marker
// has just been completed. After a match the automaton continues as if the
// marker were ordinary input, so overlapping occurrences are reported too.
func (m *Matcher) Feed(c byte) bool {
	if m.state == len(m.marker) {
		m.state = m.fail[m.state-1]
	}
	for m.state > 0 && c != m.marker[m.state] {
		m.state = m.fail[m.state-1]
	}
	if c == m.marker[m.state] {
		m.state++
	}
	return m.state == len(m.marker)
}

// Reset returns the automaton to its initial state.
func (m *Matcher) Reset() {
	m.state = 0
}

// Prefix reads r one byte at a time until marker has been read. It returns the
// bytes preceding the first occurrence of marker, and the number of bytes
// consumed from r, i.e. the offset immediately after the marker. If r is
// exhausted first, Prefix returns ErrNotFound; other read errors are returned
// as is.
func Prefix(r io.ByteReader, marker []byte) (prefix []byte, end int64, err error) {
	return PrefixLimit(r, marker, -1)
}

// PrefixLimit is like Prefix, but stops reading with ErrNotFound as soon as the
// prefix is known to be longer than limit bytes. A negative limit means no limit.
func PrefixLimit(r io.ByteReader, marker []byte, limit int) (prefix []byte, end int64, err error) {
	m := NewMatcher(marker)
	var buf []byte
	for {
		c, err := r.ReadByte()
		if err != nil {
			if err == io.EOF {
				return nil, 0, ErrNotFound
			}
			return nil, 0, err
		}
		buf = append(buf, c)
		if m.Feed(c) {
			n := len(buf) - len(marker)
			return buf[:n:n], int64(len(buf)), nil
		}
		if limit >= 0 && len(buf) >= limit+len(marker) {
			return nil, 0, ErrNotFound
		}
	}
}
