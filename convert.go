package sdriq

import (
	"os"
	"path/filepath"

	"github.com/mewkiz/sdriq/auxi"
	"github.com/pkg/errors"
)

// Options controls a conversion.
type Options struct {
	// Atomic writes the output to a temporary file next to the output path and
	// renames it into place once complete, so that a failed conversion never
	// leaves a partial output behind.
	Atomic bool
}

// Convert writes a copy of the WAV file at inPath to outPath with the auxi
// record of p inserted between the WAV header and the data chunk. The input
// must have a canonical 36 byte header; otherwise Convert fails with
// ErrUnrecognizedFormat before anything is written. inPath and outPath may be
// the same file. A nil opts is equivalent to the zero Options.
//
// Convert does not validate p; see auxi.Params.Validate.
func Convert(inPath, outPath string, p *auxi.Params, opts *Options) error {
	if opts == nil {
		opts = new(Options)
	}
	header, _, err := readHeader(inPath, CanonicalHeaderSize)
	if err != nil {
		return err
	}
	if len(header) != CanonicalHeaderSize {
		return newError(ErrUnrecognizedFormat, "scan", inPath, errors.Errorf("header of %d bytes before %q chunk; expected %d", len(header), DataMarker, CanonicalHeaderSize))
	}

	rec := auxi.Encode(p)
	out := make([]byte, 0, len(header)+auxi.Size)
	out = append(out, header...)
	out = append(out, rec.Bytes()...)

	if !opts.Atomic {
		return Splice(inPath, outPath, int64(len(header)), out)
	}
	return spliceAtomic(inPath, outPath, int64(len(header)), out)
}

// spliceAtomic splices into a temporary file in the directory of outPath and
// renames it to outPath on success. The output gets the permissions of the
// input, as with Splice.
func spliceAtomic(inPath, outPath string, n int64, header []byte) error {
	inInfo, err := os.Stat(inPath)
	if err != nil {
		return newError(ErrIO, "stat", inPath, err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(outPath), "."+filepath.Base(outPath)+".*.tmp")
	if err != nil {
		return newError(ErrIO, "create", outPath, err)
	}
	tmpPath := tmp.Name()
	// CreateTemp uses mode 0600.
	if err := tmp.Chmod(inInfo.Mode().Perm()); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return newError(ErrIO, "create", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return newError(ErrIO, "create", tmpPath, err)
	}
	if err := Splice(inPath, tmpPath, n, header); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, outPath); err != nil {
		os.Remove(tmpPath)
		return newError(ErrIO, "rename", outPath, err)
	}
	return nil
}
