package auxi

import (
	"bytes"
	"io"

	"github.com/icza/bitio"
	"github.com/mewkiz/sdriq/internal/bits"
	"github.com/pkg/errors"
)

// Parse decodes the auxi record at the start of buf. Times are returned in UTC,
// holding the wall clock fields of the record. Optional fields are decoded as
// present, i.e. non-nil, even when zero.
func Parse(buf []byte) (*Params, error) {
	if len(buf) < Size {
		return nil, errors.Errorf("auxi.Parse: record too short; expected %d bytes, got %d", Size, len(buf))
	}
	br := bitio.NewReader(bytes.NewReader(buf[:Size]))
	p := new(Params)
	for _, f := range Fields {
		var v value
		var err error
		switch {
		case f.Kind == KindString, f.Kind == KindConst && isString(f, p):
			v.s, err = readString(br, f.Width)
		case f.Kind == KindInt:
			v.n, err = readUint(br, f.Width)
			v.n = uint64(bits.IntN(v.n, uint(8*f.Width)))
		default:
			v.n, err = readUint(br, f.Width)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "auxi.Parse: field %q", f.Name)
		}
		if f.Kind == KindConst {
			if err := checkConst(f, p, v); err != nil {
				return nil, err
			}
			continue
		}
		if f.set != nil {
			f.set(p, v)
		}
	}
	return p, nil
}

// checkConst verifies the value of a constant field.
func checkConst(f Field, p *Params, v value) error {
	want, _ := f.get(p)
	if want.s != "" {
		if v.s != want.s {
			return errors.Errorf("auxi.Parse: invalid %s; expected %q, got %q", f.Name, want.s, v.s)
		}
		return nil
	}
	if v.n != want.n {
		return errors.Errorf("auxi.Parse: invalid %s; expected %d, got %d", f.Name, want.n, v.n)
	}
	return nil
}

// isString reports whether the constant field f holds a byte string.
func isString(f Field, p *Params) bool {
	v, _ := f.get(p)
	return v.s != ""
}

// readUint reads a little-endian unsigned integer of n bytes, stored as a
// single 8*n bit field.
func readUint(br *bitio.Reader, n int) (uint64, error) {
	x, err := br.ReadBits(uint8(8 * n))
	if err != nil {
		return 0, err
	}
	return bits.ReverseBytes(x, uint(n)), nil
}

// readString reads an n byte string, up to the first NUL byte.
func readString(br *bitio.Reader, n int) (string, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(br, buf); err != nil {
		return "", err
	}
	return string(trimNUL(buf)), nil
}

// trimNUL returns buf up to the first NUL byte.
func trimNUL(buf []byte) []byte {
	if i := bytes.IndexByte(buf, 0); i != -1 {
		return buf[:i]
	}
	return buf
}
