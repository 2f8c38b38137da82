package sdriq

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// Splice writes header followed by the bytes of the input file from offset n
// onwards to the output file, i.e. it replaces the first n bytes of the input
// with header. The input file is only modified if it is also the output file.
//
// The output is first made a copy of the input. Its tail is then read into
// memory in full before header and tail are written back, so header may be
// longer than n. A failed Splice leaves the output in an unspecified state;
// use Convert with Options.Atomic if that is not acceptable.
func Splice(inPath, outPath string, n int64, header []byte) error {
	if n < 0 {
		return newError(ErrPrefixExceedsFileSize, "splice", inPath, errors.Errorf("negative prefix length %d", n))
	}
	inInfo, err := os.Stat(inPath)
	if err != nil {
		return newError(ErrIO, "stat", inPath, err)
	}
	// Fail before the output is created.
	if n > inInfo.Size() {
		return newError(ErrPrefixExceedsFileSize, "splice", inPath, errors.Errorf("cannot remove %d bytes from file of size %d", n, inInfo.Size()))
	}

	// Step 1: copy the input file to the output file.
	same, err := sameFile(inInfo, outPath)
	if err != nil {
		return err
	}
	if !same {
		if err := copyFile(inPath, outPath, inInfo.Mode().Perm()); err != nil {
			return err
		}
	}

	// Step 2: read the output file, skipping the bytes to remove.
	f, err := os.OpenFile(outPath, os.O_RDWR, 0)
	if err != nil {
		return newError(ErrIO, "open", outPath, err)
	}
	defer f.Close()
	tail, err := readTail(f, outPath, n)
	if err != nil {
		return err
	}

	// Step 3: write the new header and the tail.
	if _, err := f.WriteAt(header, 0); err != nil {
		return newError(ErrIO, "write", outPath, err)
	}
	if _, err := f.WriteAt(tail, int64(len(header))); err != nil {
		return newError(ErrIO, "write", outPath, err)
	}
	if err := f.Truncate(int64(len(header) + len(tail))); err != nil {
		return newError(ErrIO, "write", outPath, err)
	}
	if err := f.Sync(); err != nil {
		return newError(ErrIO, "write", outPath, err)
	}
	if err := f.Close(); err != nil {
		return newError(ErrIO, "close", outPath, err)
	}
	return nil
}

// readTail returns the contents of f from offset n to the end of the file.
func readTail(f *os.File, path string, n int64) ([]byte, error) {
	info, err := f.Stat()
	if err != nil {
		return nil, newError(ErrIO, "stat", path, err)
	}
	size := info.Size()
	if n > size {
		return nil, newError(ErrPrefixExceedsFileSize, "splice", path, errors.Errorf("cannot remove %d bytes from file of size %d", n, size))
	}
	tail := make([]byte, size-n)
	if _, err := io.ReadFull(io.NewSectionReader(f, n, size-n), tail); err != nil {
		return nil, newError(ErrIO, "read", path, err)
	}
	return tail, nil
}

// sameFile reports whether path refers to the file described by info. A
// missing path is not an error.
func sameFile(info os.FileInfo, path string) (bool, error) {
	other, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, newError(ErrIO, "stat", path, err)
	}
	return os.SameFile(info, other), nil
}

// copyFile copies the contents of src to dst, creating or truncating dst.
func copyFile(src, dst string, perm os.FileMode) error {
	r, err := os.Open(src)
	if err != nil {
		return newError(ErrIO, "open", src, err)
	}
	defer r.Close()
	w, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return newError(ErrIO, "create", dst, err)
	}
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return newError(ErrIO, "copy", dst, err)
	}
	if err := w.Close(); err != nil {
		return newError(ErrIO, "copy", dst, err)
	}
	return nil
}
