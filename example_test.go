package sdriq_test

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/mewkiz/sdriq"
	"github.com/mewkiz/sdriq/auxi"
)

func ExampleConvert() {
	dir, err := os.MkdirTemp("", "sdriq")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	// 36 header bytes, the data chunk marker and 8 bytes of payload.
	in := append(make([]byte, 36), "data\x04\x00\x00\x00\x01\x02\x03\x04"...)
	inPath := filepath.Join(dir, "in.wav")
	if err := os.WriteFile(inPath, in, 0o644); err != nil {
		log.Fatal(err)
	}

	start := time.Date(2024, time.March, 15, 13, 45, 30, 0, time.UTC)
	p := &auxi.Params{
		Start:      start,
		End:        start.Add(5 * time.Minute),
		CenterFreq: 450000,
	}
	outPath := filepath.Join(dir, "out.wav")
	if err := sdriq.Convert(inPath, outPath, p, nil); err != nil {
		log.Fatalf("%+v", err)
	}

	out, err := os.ReadFile(outPath)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("input size:", len(in))
	fmt.Println("output size:", len(out))
	fmt.Printf("chunk: %q, size %d\n", out[36:40], binary.LittleEndian.Uint32(out[40:44]))
	fmt.Println("center frequency:", binary.LittleEndian.Uint32(out[76:80]))
	fmt.Println("I/Q mode:", auxi.IQMode(out[36+67]))
	fmt.Println("payload preserved:", bytes.Equal(out[208:], in[36:]))
	// Output:
	// input size: 48
	// output size: 220
	// chunk: "auxi", size 164
	// center frequency: 450000
	// I/Q mode: IQ
	// payload preserved: true
}
