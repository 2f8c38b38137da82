// wav2sdriq inserts an auxi metadata record into WAV recordings, so that SDR
// software such as HDSDR recognizes them as I/Q recordings.
//
// Usage:
//
//	wav2sdriq [OPTION]... -center HZ FILE.wav
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/mewkiz/pkg/pathutil"
	"github.com/mewkiz/sdriq"
	"github.com/mewkiz/sdriq/auxi"
	"github.com/mewkiz/sdriq/internal/profile"
	"github.com/pkg/errors"
	"gopkg.in/natefinch/lumberjack.v2"
)

// defaultDuration is the recording length assumed when neither an end time nor
// a duration is given.
const defaultDuration = 5 * time.Minute

// Command line flags.
var (
	// Output file path; defaults to FILE_auxi.wav.
	flagOutput string
	// Force overwrite of the output file.
	flagForce bool
	// Write to a temporary file and rename it into place.
	flagAtomic bool
	// Recording profile with default parameters.
	flagProfile string
	// Log file, rotated when it grows large.
	flagLog string
	// Start and end of the recording, and its duration.
	flagStart    string
	flagEnd      string
	flagDuration time.Duration
	// Use the WAV sample rate as A/D frequency unless -ad is given.
	flagADFromWAV bool
	// auxi record fields.
	flagCenter   optUint32
	flagAD       optUint32
	flagIF       optUint32
	flagBW       optUint32
	flagIQOffset optUint32
	flagCenterHi optUint32
	flagLevel    optInt32
	flagIQMode   optUint32
	flagNext     string
	flagPrev     string
)

func init() {
	flag.StringVar(&flagOutput, "o", "", "Output file path (default FILE_auxi.wav).")
	flag.BoolVar(&flagForce, "f", false, "Force overwrite of the output file.")
	flag.BoolVar(&flagAtomic, "atomic", false, "Write to a temporary file and rename it into place.")
	flag.StringVar(&flagProfile, "profile", "", "YAML recording profile providing default values.")
	flag.StringVar(&flagLog, "log", "", "Append log output to this file.")
	flag.StringVar(&flagStart, "start", "", "Recording start time (default now).")
	flag.StringVar(&flagEnd, "end", "", "Recording end time (default start + duration).")
	flag.DurationVar(&flagDuration, "duration", 0, "Recording duration (default 5m).")
	flag.BoolVar(&flagADFromWAV, "ad-from-wav", false, "Use the WAV sample rate as A/D frequency.")
	flag.Var(&flagCenter, "center", "Center frequency in Hz (required).")
	flag.Var(&flagAD, "ad", "A/D sample frequency in Hz.")
	flag.Var(&flagIF, "if", "IF frequency in Hz.")
	flag.Var(&flagBW, "bw", "Bandwidth in Hz.")
	flag.Var(&flagIQOffset, "iq-offset", "I/Q DC offset in 1/1000 counts.")
	flag.Var(&flagCenterHi, "center-hi", "High 32 bits of the center frequency.")
	flag.Var(&flagLevel, "level-diff", "Level difference in 1/100 dB (-32768..32768).")
	flag.Var(&flagIQMode, "iq-mode", "I/Q mode: 0=UNKNOWN, 1=LEFT, 2=RIGHT, 3=LEFTRIGHT, 4=IQ, 5=QI (default 4).")
	flag.StringVar(&flagNext, "next", "", "Filename of the next file of a multipart recording.")
	flag.StringVar(&flagPrev, "prev", "", "Filename of the previous file of a multipart recording.")
	flag.Usage = usage
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: wav2sdriq [OPTION]... -center HZ FILE.wav")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Date-times are given as RFC 3339 or \"2006-01-02 15:04:05.000\" in local time.")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Flags:")
	flag.PrintDefaults()
}

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	if flagLog != "" {
		setupLogging(flagLog)
	}
	wavPath := flag.Arg(0)
	outPath, err := wav2sdriq(wavPath)
	if err != nil {
		log.Fatalf("%+v", err)
	}
	log.Printf("wrote %q", outPath)
	fmt.Println("Conversion completed successfully")
}

// setupLogging tees log output to a rotating log file.
func setupLogging(path string) {
	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}
	log.SetOutput(io.MultiWriter(os.Stderr, rotator))
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
}

// wav2sdriq converts the given WAV file and returns the output path.
func wav2sdriq(wavPath string) (string, error) {
	outPath := flagOutput
	if outPath == "" {
		outPath = pathutil.TrimExt(wavPath) + "_auxi.wav"
	}
	if !flagForce {
		if _, err := os.Stat(outPath); err == nil {
			return "", errors.Errorf("output file %q already present; use -f flag to force overwrite", outPath)
		}
	}

	var prof *profile.Profile
	if flagProfile != "" {
		var err error
		if prof, err = profile.Load(flagProfile); err != nil {
			return "", err
		}
	}
	p, err := params(prof)
	if err != nil {
		return "", err
	}

	// The fmt chunk is informational only; conversion does not rely on it.
	if info, err := sdriq.Probe(wavPath); err != nil {
		log.Printf("warning: %v", err)
	} else {
		log.Printf("%s: %d channels, %d Hz, %d bits", wavPath, info.NumChannels, info.SampleRate, info.BitDepth)
		if flagADFromWAV && p.ADFreq == nil {
			p.ADFreq = auxi.Uint32(uint32(info.SampleRate))
		}
	}
	if err := p.Validate(); err != nil {
		return "", err
	}

	log.Printf("center %d Hz, %s - %s, I/Q mode %v", p.CenterFreq, p.Start.Format(timeLayout), p.End.Format(timeLayout), mode(p))
	opts := &sdriq.Options{Atomic: flagAtomic}
	if err := sdriq.Convert(wavPath, outPath, p, opts); err != nil {
		return "", err
	}
	return outPath, nil
}

// params returns the auxi parameters given on the command line, completed by
// the profile.
func params(prof *profile.Profile) (*auxi.Params, error) {
	p := &auxi.Params{
		ADFreq:       flagAD.v,
		IFFreq:       flagIF.v,
		Bandwidth:    flagBW.v,
		IQOffset:     flagIQOffset.v,
		CenterFreqHi: flagCenterHi.v,
		LevelDiff:    flagLevel.v,
		PrevFilename: flagPrev,
		NextFilename: flagNext,
	}
	if flagCenter.v != nil {
		p.CenterFreq = *flagCenter.v
	}
	if flagIQMode.v != nil {
		if *flagIQMode.v > uint32(auxi.IQModeQI) {
			return nil, errors.Errorf("invalid I/Q mode %d", *flagIQMode.v)
		}
		p.IQMode = auxi.Mode(auxi.IQMode(*flagIQMode.v))
	}
	duration := defaultDuration
	if prof != nil {
		prof.Apply(p)
		if prof.Duration != nil {
			duration = time.Duration(*prof.Duration)
		}
	}
	if flagDuration != 0 {
		duration = flagDuration
	}
	if p.CenterFreq == 0 {
		return nil, errors.New("center frequency required; use -center flag")
	}

	// Recording time.
	p.Start = time.Now()
	if flagStart != "" {
		t, err := parseTime(flagStart)
		if err != nil {
			return nil, err
		}
		p.Start = t
	}
	p.End = p.Start.Add(duration)
	if flagEnd != "" {
		t, err := parseTime(flagEnd)
		if err != nil {
			return nil, err
		}
		p.End = t
	}
	return p, nil
}

// timeLayout is the local date-time format accepted on the command line, next
// to RFC 3339.
const timeLayout = "2006-01-02 15:04:05.000"

// parseTime parses a date-time given on the command line.
func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	for _, layout := range []string{timeLayout, "2006-01-02 15:04:05", "2006-01-02T15:04:05", "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Errorf("invalid date-time %q", s)
}

// mode returns the I/Q mode which will be stored.
func mode(p *auxi.Params) auxi.IQMode {
	if p.IQMode == nil {
		return auxi.DefaultIQMode
	}
	return *p.IQMode
}

// optUint32 is an optional unsigned 32-bit command line flag.
type optUint32 struct {
	v *uint32
}

func (f *optUint32) String() string {
	if f.v == nil {
		return ""
	}
	return strconv.FormatUint(uint64(*f.v), 10)
}

func (f *optUint32) Set(s string) error {
	x, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return err
	}
	f.v = auxi.Uint32(uint32(x))
	return nil
}

// optInt32 is an optional signed 32-bit command line flag.
type optInt32 struct {
	v *int32
}

func (f *optInt32) String() string {
	if f.v == nil {
		return ""
	}
	return strconv.FormatInt(int64(*f.v), 10)
}

func (f *optInt32) Set(s string) error {
	x, err := strconv.ParseInt(s, 0, 32)
	if err != nil {
		return err
	}
	f.v = auxi.Int32(int32(x))
	return nil
}
