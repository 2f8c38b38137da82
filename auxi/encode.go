package auxi

import (
	"bytes"
	"io"

	"github.com/icza/bitio"
	"github.com/mewkiz/pkg/errutil"
	"github.com/mewkiz/sdriq/internal/bits"
	"github.com/pkg/errors"
)

// A Record is an encoded auxi record.
type Record [Size]byte

// Bytes returns the encoded record as a byte slice.
func (rec *Record) Bytes() []byte {
	return rec[:]
}

// Encode returns the auxi record of the given parameters. Encode does not
// validate p; see Params.Validate. Level differences outside the signed 16-bit
// range are saturated and filenames are truncated to FilenameLen bytes.
func Encode(p *Params) *Record {
	buf, err := encode(p)
	if err != nil {
		// Only reachable with a corrupt field table.
		panic(err)
	}
	rec := new(Record)
	copy(rec[:], buf)
	return rec
}

// Write writes the auxi record of the given parameters to w.
func Write(w io.Writer, p *Params) error {
	buf, err := encode(p)
	if err != nil {
		return errutil.Err(err)
	}
	if _, err := w.Write(buf); err != nil {
		return errutil.Err(err)
	}
	return nil
}

// encode stores the fields of the record in table order.
func encode(p *Params) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, Size))
	bw := bitio.NewWriter(buf)
	pos := 0
	for _, f := range Fields {
		if f.Offset != pos {
			return nil, errors.Errorf("auxi.encode: field %q at offset %d; expected offset %d", f.Name, f.Offset, pos)
		}
		if err := writeField(bw, f, p); err != nil {
			return nil, errutil.Err(err)
		}
		pos += f.Width
	}
	if pos != Size {
		return nil, errors.Errorf("auxi.encode: record length %d; expected %d", pos, Size)
	}
	// Flush pending bits.
	if err := bw.Close(); err != nil {
		return nil, errutil.Err(err)
	}
	return buf.Bytes(), nil
}

// fieldWriter is the subset of the bit writer used to store fields.
type fieldWriter interface {
	io.Writer
	WriteBits(r uint64, n uint8) error
}

// writeField stores a single field of the record, substituting the field
// default for absent parameters.
func writeField(bw fieldWriter, f Field, p *Params) error {
	var v value
	ok := false
	if f.get != nil {
		v, ok = f.get(p)
	}
	if !ok {
		v = value{n: f.Default}
	}
	switch f.Kind {
	case KindConst:
		if v.s != "" {
			return writeString(bw, v.s, f.Width)
		}
		return writeUint(bw, v.n, f.Width)
	case KindUint:
		return writeUint(bw, v.n, f.Width)
	case KindInt:
		x := bits.UintN(int64(v.n), uint(8*f.Width))
		return writeUint(bw, x, f.Width)
	case KindString:
		return writeString(bw, v.s, f.Width)
	case KindReserved:
		return writeUint(bw, 0, f.Width)
	}
	return errors.Errorf("auxi.writeField: field %q has unknown kind %d", f.Name, f.Kind)
}

// writeUint stores the n least significant bytes of x in little-endian byte
// order, as a single 8*n bit field.
func writeUint(bw fieldWriter, x uint64, n int) error {
	if err := bw.WriteBits(bits.ReverseBytes(x, uint(n)), uint8(8*n)); err != nil {
		return errutil.Err(err)
	}
	return nil
}

// writeString stores s truncated to n bytes, padded with NUL bytes.
func writeString(bw io.Writer, s string, n int) error {
	buf := make([]byte, n)
	copy(buf, s)
	if _, err := bw.Write(buf); err != nil {
		return errutil.Err(err)
	}
	return nil
}
