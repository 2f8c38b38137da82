// Package auxi implements the "auxi" metadata record which SDR receiver
// software (SpectraVue, WinRad, HDSDR and friends) expects between the header
// and the data chunk of an I/Q recording stored as a WAV file.
//
// The record is 172 bytes long and has a fixed layout; all integers are stored
// in little-endian byte order.
//
//	type auxi struct {
//	   id             [4]byte // "auxi"
//	   size           uint32  // 164
//	   start          SYSTEMTIME
//	   stop           SYSTEMTIME
//	   center_freq    uint32
//	   ad_freq        uint32
//	   if_freq        uint32
//	   bandwidth      uint32
//	   iq_offset      uint32
//	   unused         uint32
//	   level_diff     int16
//	   unused         uint8
//	   iq_mode        uint8
//	   center_freq_lo uint32
//	   center_freq_hi uint32
//	   prev_filename  [48]byte
//	   next_filename  [48]byte
//	}
//
// Fields contains the authoritative layout.
package auxi

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"
)

const (
	// ID is the chunk identifier of the record.
	ID = "auxi"
	// Size is the total length in bytes of an encoded record.
	Size = 172
	// BodySize is the value of the chunk size field, which covers the record
	// minus its 8 byte identifier and size header.
	BodySize = Size - 8
	// FilenameLen is the length in bytes of each multipart filename field.
	FilenameLen = 48
)

// Level difference range, in 1/100 dB as stored in the record.
const (
	LevelDiffMin = -32768
	LevelDiffMax = 32768
)

// IQMode specifies how the channels of the recording map to I and Q.
type IQMode uint8

// I/Q modes.
const (
	IQModeUnknown   IQMode = iota // unknown
	IQModeLeft                    // left channel only
	IQModeRight                   // right channel only
	IQModeLeftRight               // left and right, independent
	IQModeIQ                      // left is I, right is Q
	IQModeQI                      // left is Q, right is I

	// DefaultIQMode is stored when no I/Q mode is given.
	DefaultIQMode = IQModeIQ
)

// iqModeName is a map from IQMode to name.
var iqModeName = map[IQMode]string{
	IQModeUnknown:   "UNKNOWN",
	IQModeLeft:      "LEFT",
	IQModeRight:     "RIGHT",
	IQModeLeftRight: "LEFTRIGHT",
	IQModeIQ:        "IQ",
	IQModeQI:        "QI",
}

func (mode IQMode) String() string {
	if s, ok := iqModeName[mode]; ok {
		return s
	}
	return fmt.Sprintf("<invalid I/Q mode: %d>", uint8(mode))
}

// Valid reports whether mode is one of the defined I/Q modes.
func (mode IQMode) Valid() bool {
	return mode <= IQModeQI
}

// Params holds the values stored in an auxi record. Optional fields are
// pointers; a nil pointer is encoded as zero, except for IQMode which defaults
// to DefaultIQMode. Empty filenames are encoded as all zero bytes.
type Params struct {
	// Recording start and stop time. The wall clock fields are stored as is,
	// in the location of the value; no time zone conversion takes place.
	Start, End time.Time
	// Receiver center frequency in Hz.
	CenterFreq uint32
	// A/D sample frequency before downsampling, in Hz.
	ADFreq *uint32
	// IF frequency if an external down converter is used, in Hz.
	IFFreq *uint32
	// Displayable bandwidth, in Hz.
	Bandwidth *uint32
	// DC offset of the I and Q channels in 1/1000's of a count.
	IQOffset *uint32
	// Level difference to add to each sample, in 1/100 dB.
	LevelDiff *int32
	// Channel to I/Q mapping.
	IQMode *IQMode
	// High 32 bits of the center frequency; only meaningful to readers when the
	// low part equals CenterFreq.
	CenterFreqHi *uint32
	// Multipart recording; filename of the previous and next file.
	PrevFilename string
	NextFilename string
}

// Uint32 returns a pointer to v, for use with the optional Params fields.
func Uint32(v uint32) *uint32 { return &v }

// Int32 returns a pointer to v.
func Int32(v int32) *int32 { return &v }

// Mode returns a pointer to mode.
func Mode(mode IQMode) *IQMode { return &mode }

// Validate checks the parameter ranges which the encoder does not enforce.
func (p *Params) Validate() error {
	if p.End.Before(p.Start) {
		return errors.Errorf("auxi.Params.Validate: end time %v before start time %v", p.End, p.Start)
	}
	for _, t := range []time.Time{p.Start, p.End} {
		if t.Year() < 1601 || t.Year() > 30827 {
			return errors.Errorf("auxi.Params.Validate: year %d out of range", t.Year())
		}
	}
	if p.LevelDiff != nil && (*p.LevelDiff < LevelDiffMin || *p.LevelDiff > LevelDiffMax) {
		return errors.Errorf("auxi.Params.Validate: level difference %d out of range [%d, %d]", *p.LevelDiff, LevelDiffMin, LevelDiffMax)
	}
	if p.IQMode != nil && !p.IQMode.Valid() {
		return errors.Errorf("auxi.Params.Validate: invalid I/Q mode %d", uint8(*p.IQMode))
	}
	for _, name := range []string{p.PrevFilename, p.NextFilename} {
		if len(name) > FilenameLen {
			return errors.Errorf("auxi.Params.Validate: filename %q longer than %d bytes", name, FilenameLen)
		}
		if !isASCII(name) {
			return errors.Errorf("auxi.Params.Validate: filename %q contains non-ASCII characters", name)
		}
	}
	return nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
