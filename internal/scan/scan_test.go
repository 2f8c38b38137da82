package scan

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestPrefix(t *testing.T) {
	golden := []struct {
		in     string
		marker string
		prefix string
		end    int64
	}{
		{in: "data", marker: "data", prefix: "", end: 4},
		{in: "RIFFdata\x08\x00\x00\x00", marker: "data", prefix: "RIFF", end: 8},
		{in: "dadata", marker: "data", prefix: "da", end: 6},
		{in: "datdata", marker: "data", prefix: "dat", end: 7},
		{in: "ddddata", marker: "data", prefix: "ddd", end: 7},
		{in: "aaab", marker: "aab", prefix: "a", end: 4},
		{in: "abababc", marker: "ababc", prefix: "ab", end: 7},
		{in: "xdataydata", marker: "data", prefix: "x", end: 5},
	}
	for _, g := range golden {
		prefix, end, err := Prefix(strings.NewReader(g.in), []byte(g.marker))
		if err != nil {
			t.Errorf("%q: unexpected error; %v", g.in, err)
			continue
		}
		if string(prefix) != g.prefix {
			t.Errorf("%q: prefix mismatch; expected %q, got %q", g.in, g.prefix, prefix)
		}
		if end != g.end {
			t.Errorf("%q: end offset mismatch; expected %d, got %d", g.in, g.end, end)
		}
	}
}

func TestPrefixNotFound(t *testing.T) {
	golden := []string{
		"",
		"dat",
		"RIFF\x24\x00\x00\x00WAVEfmt ",
		"DATA",
		"d a t a",
	}
	for _, in := range golden {
		prefix, _, err := Prefix(strings.NewReader(in), []byte("data"))
		if err != ErrNotFound {
			t.Errorf("%q: expected ErrNotFound, got %v", in, err)
		}
		if prefix != nil {
			t.Errorf("%q: expected nil prefix, got %q", in, prefix)
		}
	}
}

type failingReader struct {
	n   int
	err error
}

func (r *failingReader) ReadByte() (byte, error) {
	if r.n == 0 {
		return 0, r.err
	}
	r.n--
	return 'x', nil
}

func TestPrefixReadError(t *testing.T) {
	want := errors.New("disk on fire")
	_, _, err := Prefix(&failingReader{n: 10, err: want}, []byte("data"))
	if err != want {
		t.Fatalf("expected %v, got %v", want, err)
	}
}

func TestPrefixStopsAtMarker(t *testing.T) {
	payload := []byte{0xde, 0xad, 0xbe, 0xef}
	in := append(append(make([]byte, 36), "data"...), payload...)
	br := bufio.NewReader(bytes.NewReader(in))
	prefix, end, err := Prefix(br, []byte("data"))
	if err != nil {
		t.Fatal(err)
	}
	if len(prefix) != 36 || end != 40 {
		t.Fatalf("expected 36 byte prefix ending at 40, got %d ending at %d", len(prefix), end)
	}
	rest, err := io.ReadAll(br)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(rest, payload) {
		t.Fatalf("scanner read past the marker; remaining % X", rest)
	}
}

func TestPrefixLimit(t *testing.T) {
	golden := []struct {
		in     string
		limit  int
		prefix string
		err    error
		// Number of unread bytes left in the source.
		left int
	}{
		{in: "0123data", limit: 4, prefix: "0123", left: 0},
		{in: "0123data", limit: 8, prefix: "0123", left: 0},
		{in: "0123data", limit: -1, prefix: "0123", left: 0},
		{in: "0123data", limit: 3, err: ErrNotFound, left: 1},
		{in: "01234567890123456789data", limit: 0, err: ErrNotFound, left: 20},
		{in: "dat", limit: 4, err: ErrNotFound, left: 0},
	}
	for _, g := range golden {
		r := strings.NewReader(g.in)
		prefix, _, err := PrefixLimit(r, []byte("data"), g.limit)
		if err != g.err {
			t.Errorf("%q (limit %d): error mismatch; expected %v, got %v", g.in, g.limit, g.err, err)
			continue
		}
		if string(prefix) != g.prefix {
			t.Errorf("%q (limit %d): prefix mismatch; expected %q, got %q", g.in, g.limit, g.prefix, prefix)
		}
		if r.Len() != g.left {
			t.Errorf("%q (limit %d): expected %d unread bytes, got %d", g.in, g.limit, g.left, r.Len())
		}
	}
}

func TestMatcherOverlap(t *testing.T) {
	m := NewMatcher([]byte("aa"))
	var hits []int
	for i, c := range []byte("aaaa") {
		if m.Feed(c) {
			hits = append(hits, i)
		}
	}
	if len(hits) != 3 || hits[0] != 1 || hits[2] != 3 {
		t.Fatalf("expected matches ending at 1, 2, 3; got %v", hits)
	}
	m.Reset()
	if m.Feed('a') {
		t.Fatal("match after reset with a single byte")
	}
}
