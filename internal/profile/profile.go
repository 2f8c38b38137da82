// Package profile loads recording profiles: YAML files holding default auxi
// parameters for a receiver setup, so that repeated conversions only need the
// values which change per recording.
//
// Example profile:
//
//	center_freq: 7050000
//	ad_freq: 64000000
//	bandwidth: 192000
//	iq_mode: 4
//	duration: 5m
package profile

import (
	"os"
	"time"

	"github.com/mewkiz/sdriq/auxi"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// A Profile holds optional defaults for the auxi parameters. Absent keys are
// nil.
type Profile struct {
	CenterFreq   *uint32 `yaml:"center_freq"`
	ADFreq       *uint32 `yaml:"ad_freq"`
	IFFreq       *uint32 `yaml:"if_freq"`
	Bandwidth    *uint32 `yaml:"bandwidth"`
	IQOffset     *uint32 `yaml:"iq_offset"`
	LevelDiff    *int32  `yaml:"level_diff"`
	IQMode       *uint8  `yaml:"iq_mode"`
	CenterFreqHi *uint32 `yaml:"center_freq_hi"`
	PrevFilename string  `yaml:"prev_filename"`
	NextFilename string  `yaml:"next_filename"`
	// Recording length, used when no end time is given.
	Duration *Duration `yaml:"duration"`
}

// Duration is a time.Duration which unmarshals from strings such as "5m".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	x, err := time.ParseDuration(s)
	if err != nil {
		return errors.Wrapf(err, "line %d", node.Line)
	}
	*d = Duration(x)
	return nil
}

// Load reads and parses the profile at path. Unknown keys are rejected.
func Load(path string) (*Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	prof := new(Profile)
	if err := dec.Decode(prof); err != nil {
		return nil, errors.Wrapf(err, "parse profile %q", path)
	}
	return prof, nil
}

// Apply copies the values of the profile into the unset fields of p. Fields
// already set in p take precedence.
func (prof *Profile) Apply(p *auxi.Params) {
	if p.CenterFreq == 0 && prof.CenterFreq != nil {
		p.CenterFreq = *prof.CenterFreq
	}
	setUint32(&p.ADFreq, prof.ADFreq)
	setUint32(&p.IFFreq, prof.IFFreq)
	setUint32(&p.Bandwidth, prof.Bandwidth)
	setUint32(&p.IQOffset, prof.IQOffset)
	setUint32(&p.CenterFreqHi, prof.CenterFreqHi)
	if p.LevelDiff == nil && prof.LevelDiff != nil {
		p.LevelDiff = auxi.Int32(*prof.LevelDiff)
	}
	if p.IQMode == nil && prof.IQMode != nil {
		p.IQMode = auxi.Mode(auxi.IQMode(*prof.IQMode))
	}
	if p.PrevFilename == "" {
		p.PrevFilename = prof.PrevFilename
	}
	if p.NextFilename == "" {
		p.NextFilename = prof.NextFilename
	}
}

func setUint32(dst **uint32, src *uint32) {
	if *dst == nil && src != nil {
		*dst = auxi.Uint32(*src)
	}
}
