package sdriq

import (
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/pkg/errors"
)

// Info describes the sample format of a WAV file.
type Info struct {
	// Number of channels and sample rate.
	*audio.Format
	// Bits per sample.
	BitDepth int
	// WAVE format tag; 1 is integer PCM, 3 is IEEE float.
	AudioFormat uint16
}

// Probe reads the fmt chunk of the WAV file at path. Conversion does not
// depend on it; it lets callers report the recording format and derive the A/D
// sample frequency.
func Probe(path string) (*Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newError(ErrIO, "open", path, err)
	}
	defer f.Close()
	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, newError(ErrUnrecognizedFormat, "probe", path, errors.New("invalid WAV file"))
	}
	info := &Info{
		Format:      dec.Format(),
		BitDepth:    int(dec.BitDepth),
		AudioFormat: dec.WavAudioFormat,
	}
	return info, nil
}
