// auxidump lists the auxi metadata record of SDR I/Q recordings.
//
// Usage:
//
//	auxidump FILE.wav...
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mewkiz/sdriq/auxi"
	"github.com/mewkiz/sdriq/internal/bufseekio"
	"github.com/mewkiz/sdriq/internal/scan"
	"github.com/pkg/errors"
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: auxidump FILE...")
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}
	for _, path := range flag.Args() {
		if err := dump(os.Stdout, path); err != nil {
			log.Fatalf("%+v", err)
		}
	}
}

// dump prints the auxi record of the given file to w.
func dump(w io.Writer, path string) error {
	p, offset, err := readRecord(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s: auxi record at offset %d\n", path, offset)
	list(w, p)
	return nil
}

// readRecord locates the first auxi record of the file and decodes it.
func readRecord(path string) (p *auxi.Params, offset int64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}
	defer f.Close()
	rs := bufseekio.NewReadSeeker(f)
	_, end, err := scan.Prefix(rs, []byte(auxi.ID))
	if err != nil {
		if err == scan.ErrNotFound {
			return nil, 0, errors.Errorf("%q: no auxi record found", path)
		}
		return nil, 0, errors.WithStack(err)
	}
	offset = end - int64(len(auxi.ID))
	if _, err := rs.Seek(offset, io.SeekStart); err != nil {
		return nil, 0, errors.WithStack(err)
	}
	buf := make([]byte, auxi.Size)
	if _, err := io.ReadFull(rs, buf); err != nil {
		return nil, 0, errors.Wrapf(err, "%q: truncated auxi record", path)
	}
	p, err = auxi.Parse(buf)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "%q", path)
	}
	return p, offset, nil
}

// timeLayout is the format of recording times.
const timeLayout = "2006-01-02 15:04:05.000 Monday"

func list(w io.Writer, p *auxi.Params) {
	fmt.Fprintf(w, "  start time:     %s\n", p.Start.Format(timeLayout))
	fmt.Fprintf(w, "  stop time:      %s\n", p.End.Format(timeLayout))
	fmt.Fprintf(w, "  center freq:    %d Hz\n", p.CenterFreq)
	fmt.Fprintf(w, "  A/D freq:       %d Hz\n", *p.ADFreq)
	fmt.Fprintf(w, "  IF freq:        %d Hz\n", *p.IFFreq)
	fmt.Fprintf(w, "  bandwidth:      %d Hz\n", *p.Bandwidth)
	fmt.Fprintf(w, "  I/Q offset:     %d\n", *p.IQOffset)
	fmt.Fprintf(w, "  level diff:     %.2f dB\n", float64(*p.LevelDiff)/100)
	fmt.Fprintf(w, "  I/Q mode:       %d (%v)\n", uint8(*p.IQMode), *p.IQMode)
	fmt.Fprintf(w, "  center freq hi: %d\n", *p.CenterFreqHi)
	fmt.Fprintf(w, "  prev filename:  %q\n", p.PrevFilename)
	fmt.Fprintf(w, "  next filename:  %q\n", p.NextFilename)
}
