package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mewkiz/sdriq"
	"github.com/mewkiz/sdriq/auxi"
)

func TestDump(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "in.wav")
	in := append(make([]byte, 36), "data\x02\x00\x00\x00\x7f\x80"...)
	if err := os.WriteFile(inPath, in, 0o644); err != nil {
		t.Fatal(err)
	}
	start := time.Date(2024, time.March, 15, 13, 45, 30, 0, time.UTC)
	p := &auxi.Params{
		Start:        start,
		End:          start.Add(5 * time.Minute),
		CenterFreq:   450000,
		LevelDiff:    auxi.Int32(-150),
		NextFilename: "part2.wav",
	}
	outPath := filepath.Join(dir, "out.wav")
	if err := sdriq.Convert(inPath, outPath, p, nil); err != nil {
		t.Fatalf("%+v", err)
	}

	buf := new(bytes.Buffer)
	if err := dump(buf, outPath); err != nil {
		t.Fatalf("%+v", err)
	}
	got := buf.String()
	for _, want := range []string{
		"auxi record at offset 36",
		"start time:     2024-03-15 13:45:30.000 Friday",
		"stop time:      2024-03-15 13:50:30.000 Friday",
		"center freq:    450000 Hz",
		"level diff:     -1.50 dB",
		"I/Q mode:       4 (IQ)",
		`next filename:  "part2.wav"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q;\n%s", want, got)
		}
	}

	if err := dump(buf, inPath); err == nil {
		t.Errorf("expected error for file without auxi record")
	}
}
