// Package sdriq turns canonical WAV recordings into I/Q recordings readable by
// SDR software, by splicing an auxi metadata record between the WAV header and
// the data chunk. [1]
//
// The basic structure of a converted file is:
//   - The 36 byte RIFF/WAVE header and fmt chunk of the input, unchanged.
//   - The 172 byte auxi record.
//   - The data chunk of the input, unchanged.
//
// Samples are never decoded or modified.
//
// [1]: http://www.moetronix.com/files/spectravue.pdf
package sdriq

import (
	"fmt"
	"os"

	"github.com/mewkiz/sdriq/internal/bufseekio"
	"github.com/mewkiz/sdriq/internal/scan"
	"github.com/pkg/errors"
)

const (
	// CanonicalHeaderSize is the length of the RIFF header and fmt chunk which
	// precede the data chunk of a recognized input file.
	CanonicalHeaderSize = 36
	// DataMarker is the chunk ID of the data chunk.
	DataMarker = "data"
)

// Error kinds; use errors.Cause to obtain the kind of an error returned by
// this package.
var (
	// ErrUnrecognizedFormat is returned when the data chunk cannot be located,
	// or the header which precedes it is not CanonicalHeaderSize bytes long.
	ErrUnrecognizedFormat = errors.New("unrecognized format")
	// ErrPrefixExceedsFileSize is returned when the length of the header to
	// replace is negative or larger than the file, e.g. because the file
	// changed after it was scanned.
	ErrPrefixExceedsFileSize = errors.New("prefix exceeds file size")
	// ErrIO is returned for failed file system operations.
	ErrIO = errors.New("I/O failure")
)

// An Error records the failed stage of a conversion.
type Error struct {
	// Error kind: ErrUnrecognizedFormat, ErrPrefixExceedsFileSize or ErrIO.
	Kind error
	// Stage of the conversion, e.g. "scan" or "write".
	Stage string
	// Path of the file involved.
	Path string
	// Underlying error; may be nil.
	Err error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("sdriq: %s %q: %v", e.Stage, e.Path, e.Kind)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Cause returns the error kind.
func (e *Error) Cause() error {
	return e.Kind
}

// Is reports whether target is the error kind, so that errors.Is matches the
// sentinel errors of this package.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// newError returns a new Error with a stack trace attached.
func newError(kind error, stage, path string, err error) error {
	return errors.WithStack(&Error{Kind: kind, Stage: stage, Path: path, Err: err})
}

// ReadHeader returns the bytes of the file preceding the first occurrence of
// DataMarker, and the offset immediately after the marker. The file is read
// sequentially and not modified.
func ReadHeader(path string) (header []byte, dataOffset int64, err error) {
	return readHeader(path, -1)
}

// readHeader is like ReadHeader, but fails with ErrUnrecognizedFormat once
// more than limit bytes precede the marker. A negative limit means no limit.
func readHeader(path string, limit int) (header []byte, dataOffset int64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, newError(ErrIO, "open", path, err)
	}
	defer f.Close()

	header, dataOffset, err = scan.PrefixLimit(bufseekio.NewReadSeeker(f), []byte(DataMarker), limit)
	if err != nil {
		if err == scan.ErrNotFound {
			if limit >= 0 {
				return nil, 0, newError(ErrUnrecognizedFormat, "scan", path, errors.Errorf("no %q chunk found within the first %d bytes", DataMarker, limit+len(DataMarker)))
			}
			return nil, 0, newError(ErrUnrecognizedFormat, "scan", path, errors.Errorf("no %q chunk found", DataMarker))
		}
		return nil, 0, newError(ErrIO, "scan", path, err)
	}
	return header, dataOffset, nil
}
