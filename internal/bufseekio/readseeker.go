// Package bufseekio implements a buffered io.ReadSeeker which keeps track of
// the absolute read offset, so that byte-at-a-time scanners can report file
// positions without issuing a system call per byte.
package bufseekio

import (
	"errors"
	"io"
)

const (
	defaultBufSize = 4096
	minBufSize     = 16
)

var errNegativeRead = errors.New("bufseekio: reader returned negative count from Read")

// ReadSeeker implements buffering for an io.ReadSeeker object. It is modelled
// on bufio.Reader, with Seek added and unneeded functionality removed.
type ReadSeeker struct {
	buf  []byte
	pos  int64         // absolute offset of buf[0] in rd
	rd   io.ReadSeeker // read-seeker provided by the client
	r, w int           // read and write positions within buf
	err  error
}

// NewReadSeekerSize returns a new ReadSeeker whose buffer has at least the
// specified size. If rd is already a ReadSeeker with a large enough buffer, it
// is returned as is.
func NewReadSeekerSize(rd io.ReadSeeker, size int) *ReadSeeker {
	if b, ok := rd.(*ReadSeeker); ok && len(b.buf) >= size {
		return b
	}
	if size < minBufSize {
		size = minBufSize
	}
	return &ReadSeeker{buf: make([]byte, size), rd: rd}
}

// NewReadSeeker returns a new ReadSeeker whose buffer has the default size.
func NewReadSeeker(rd io.ReadSeeker) *ReadSeeker {
	return NewReadSeekerSize(rd, defaultBufSize)
}

func (b *ReadSeeker) readErr() error {
	err := b.err
	b.err = nil
	return err
}

// fill discards the consumed part of the buffer and reads a new chunk from
// the underlying reader.
func (b *ReadSeeker) fill() {
	b.pos += int64(b.w)
	b.r, b.w = 0, 0
	n, err := b.rd.Read(b.buf)
	if n < 0 {
		panic(errNegativeRead)
	}
	b.w = n
	b.err = err
}

// Read reads data into p. The bytes are taken from at most one Read on the
// underlying reader, hence n may be less than len(p).
func (b *ReadSeeker) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		if b.buffered() > 0 {
			return 0, nil
		}
		return 0, b.readErr()
	}
	if b.r == b.w {
		if b.err != nil {
			return 0, b.readErr()
		}
		b.fill()
		if b.w == 0 {
			return 0, b.readErr()
		}
	}
	n = copy(p, b.buf[b.r:b.w])
	b.r += n
	return n, nil
}

// ReadByte reads and returns a single byte. At the end of the underlying
// stream it returns io.EOF.
func (b *ReadSeeker) ReadByte() (byte, error) {
	for b.r == b.w {
		if b.err != nil {
			return 0, b.readErr()
		}
		b.fill()
	}
	c := b.buf[b.r]
	b.r++
	return c, nil
}

// buffered returns the number of bytes that can be read from the current
// buffer.
func (b *ReadSeeker) buffered() int { return b.w - b.r }

// Offset returns the absolute read offset.
func (b *ReadSeeker) Offset() int64 {
	return b.pos + int64(b.r)
}

// Seek implements io.Seeker. Seeks that land inside the current buffer are
// served without touching the underlying reader.
func (b *ReadSeeker) Seek(offset int64, whence int) (int64, error) {
	if offset == 0 && whence == io.SeekCurrent {
		return b.Offset(), nil
	}
	if whence == io.SeekEnd {
		return b.seek(offset, whence)
	}
	abs := offset
	if whence == io.SeekCurrent {
		abs += b.Offset()
	}
	if abs >= b.pos && abs < b.pos+int64(b.w) {
		b.r = int(abs - b.pos)
		return abs, nil
	}
	return b.seek(abs, io.SeekStart)
}

func (b *ReadSeeker) seek(offset int64, whence int) (int64, error) {
	b.r, b.w = 0, 0
	b.err = nil
	pos, err := b.rd.Seek(offset, whence)
	if err != nil {
		return pos, err
	}
	b.pos = pos
	return pos, nil
}
