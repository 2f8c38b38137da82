package main

import (
	"testing"
	"time"
)

func TestParseTime(t *testing.T) {
	golden := []struct {
		in   string
		want time.Time
	}{
		{in: "2024-03-15T13:45:30Z", want: time.Date(2024, 3, 15, 13, 45, 30, 0, time.UTC)},
		{in: "2024-03-15T13:45:30.125+02:00", want: time.Date(2024, 3, 15, 13, 45, 30, 125e6, time.FixedZone("", 2*60*60))},
		{in: "2024-03-15 13:45:30.125", want: time.Date(2024, 3, 15, 13, 45, 30, 125e6, time.Local)},
		{in: "2024-03-15 13:45:30", want: time.Date(2024, 3, 15, 13, 45, 30, 0, time.Local)},
		{in: "2024-03-15T13:45:30", want: time.Date(2024, 3, 15, 13, 45, 30, 0, time.Local)},
		{in: "2024-03-15", want: time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local)},
	}
	for _, g := range golden {
		got, err := parseTime(g.in)
		if err != nil {
			t.Errorf("%q: unexpected error; %v", g.in, err)
			continue
		}
		if !got.Equal(g.want) {
			t.Errorf("%q: expected %v, got %v", g.in, g.want, got)
		}
	}
	for _, in := range []string{"", "yesterday", "15/03/2024"} {
		if _, err := parseTime(in); err == nil {
			t.Errorf("%q: expected error", in)
		}
	}
}

func TestOptFlags(t *testing.T) {
	var u optUint32
	if u.String() != "" {
		t.Errorf("unset flag has value %q", u.String())
	}
	if err := u.Set("0x10"); err != nil || *u.v != 16 {
		t.Errorf("Set(0x10) = %v, %v", u.String(), err)
	}
	if err := u.Set("-1"); err == nil {
		t.Errorf("Set(-1): expected error")
	}
	if err := u.Set("4294967296"); err == nil {
		t.Errorf("Set(4294967296): expected error")
	}
	var i optInt32
	if err := i.Set("-32768"); err != nil || *i.v != -32768 {
		t.Errorf("Set(-32768) = %v, %v", i.String(), err)
	}
}

func TestParams(t *testing.T) {
	defer func(start, end string, d time.Duration) {
		flagStart, flagEnd, flagDuration = start, end, d
		flagCenter = optUint32{}
	}(flagStart, flagEnd, flagDuration)

	flagStart = "2024-03-15 13:45:30"
	flagEnd = ""
	flagDuration = 0
	if _, err := params(nil); err == nil {
		t.Fatal("expected error for missing center frequency")
	}
	if err := flagCenter.Set("450000"); err != nil {
		t.Fatal(err)
	}
	p, err := params(nil)
	if err != nil {
		t.Fatal(err)
	}
	if p.CenterFreq != 450000 {
		t.Errorf("center frequency mismatch; got %d", p.CenterFreq)
	}
	if d := p.End.Sub(p.Start); d != defaultDuration {
		t.Errorf("duration mismatch; expected %v, got %v", defaultDuration, d)
	}
	if p.IQMode != nil || p.ADFreq != nil {
		t.Errorf("unset optional flags decoded as present")
	}
}
