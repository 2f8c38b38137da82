package auxi

import (
	"time"
)

// Kind specifies how a field is encoded.
type Kind uint8

// Field kinds.
const (
	// KindConst is a fixed byte string or integer which every record carries.
	KindConst Kind = iota
	// KindUint is an unsigned little-endian integer.
	KindUint
	// KindInt is a signed two's complement little-endian integer.
	KindInt
	// KindString is an ASCII string, truncated to the field width and padded
	// with NUL bytes.
	KindString
	// KindReserved is always zero.
	KindReserved
)

// A Field describes one entry of the record layout.
type Field struct {
	// Field name.
	Name string
	// Offset in bytes from the start of the record.
	Offset int
	// Width in bytes.
	Width int
	// Encoding of the field.
	Kind Kind
	// Default is stored when the parameter is absent.
	Default uint64
	// get returns the value of the field; ok is false if the optional parameter
	// is absent.
	get func(p *Params) (v value, ok bool)
	// set stores a decoded value.
	set func(p *Params, v value)
}

// value is a decoded field value; n holds integers (signed values in two's
// complement) and s holds strings.
type value struct {
	n uint64
	s string
}

// Fields is the record layout, ordered by offset.
var Fields = layout()

func layout() []Field {
	fs := []Field{
		{
			Name: "id", Offset: 0, Width: 4, Kind: KindConst,
			get: func(*Params) (value, bool) { return value{s: ID}, true },
		},
		{
			Name: "size", Offset: 4, Width: 4, Kind: KindConst,
			get: func(*Params) (value, bool) { return value{n: BodySize}, true },
		},
	}
	fs = append(fs, systemTime("start", 8,
		func(p *Params) time.Time { return p.Start },
		func(p *Params) *time.Time { return &p.Start })...)
	fs = append(fs, systemTime("end", 24,
		func(p *Params) time.Time { return p.End },
		func(p *Params) *time.Time { return &p.End })...)
	fs = append(fs,
		Field{
			Name: "center_freq", Offset: 40, Width: 4, Kind: KindUint,
			get: func(p *Params) (value, bool) { return value{n: uint64(p.CenterFreq)}, true },
			set: func(p *Params, v value) { p.CenterFreq = uint32(v.n) },
		},
		optUint32("ad_freq", 44, func(p *Params) **uint32 { return &p.ADFreq }),
		optUint32("if_freq", 48, func(p *Params) **uint32 { return &p.IFFreq }),
		optUint32("bandwidth", 52, func(p *Params) **uint32 { return &p.Bandwidth }),
		optUint32("iq_offset", 56, func(p *Params) **uint32 { return &p.IQOffset }),
		Field{Name: "unused2", Offset: 60, Width: 4, Kind: KindReserved},
		Field{
			Name: "level_diff", Offset: 64, Width: 2, Kind: KindInt,
			get: func(p *Params) (value, bool) {
				if p.LevelDiff == nil {
					return value{}, false
				}
				return value{n: uint64(int64(*p.LevelDiff))}, true
			},
			set: func(p *Params, v value) { p.LevelDiff = Int32(int32(int64(v.n))) },
		},
		Field{Name: "unused3", Offset: 66, Width: 1, Kind: KindReserved},
		Field{
			Name: "iq_mode", Offset: 67, Width: 1, Kind: KindUint, Default: uint64(DefaultIQMode),
			get: func(p *Params) (value, bool) {
				if p.IQMode == nil {
					return value{}, false
				}
				return value{n: uint64(*p.IQMode)}, true
			},
			set: func(p *Params, v value) { p.IQMode = Mode(IQMode(v.n)) },
		},
		// The low part mirrors the center frequency; readers use the high part
		// only when both agree.
		Field{
			Name: "center_freq_lo", Offset: 68, Width: 4, Kind: KindUint,
			get: func(p *Params) (value, bool) { return value{n: uint64(p.CenterFreq)}, true },
		},
		optUint32("center_freq_hi", 72, func(p *Params) **uint32 { return &p.CenterFreqHi }),
		// The layout stores the previous filename before the next filename.
		filename("prev_filename", 76, func(p *Params) *string { return &p.PrevFilename }),
		filename("next_filename", 124, func(p *Params) *string { return &p.NextFilename }),
	)
	return fs
}

// optUint32 returns an optional 32-bit unsigned field.
func optUint32(name string, offset int, ptr func(p *Params) **uint32) Field {
	return Field{
		Name: name, Offset: offset, Width: 4, Kind: KindUint,
		get: func(p *Params) (value, bool) {
			x := *ptr(p)
			if x == nil {
				return value{}, false
			}
			return value{n: uint64(*x)}, true
		},
		set: func(p *Params, v value) { *ptr(p) = Uint32(uint32(v.n)) },
	}
}

// filename returns a multipart filename field.
func filename(name string, offset int, ptr func(p *Params) *string) Field {
	return Field{
		Name: name, Offset: offset, Width: FilenameLen, Kind: KindString,
		get: func(p *Params) (value, bool) {
			s := *ptr(p)
			return value{s: s}, s != ""
		},
		set: func(p *Params, v value) { *ptr(p) = v.s },
	}
}

// systemTime returns the eight 16-bit fields of a Windows SYSTEMTIME
// structure starting at offset.
//
//	type SYSTEMTIME struct {
//	   year         uint16
//	   month        uint16 // 1-12
//	   day_of_week  uint16 // 0-6, Sunday is 0
//	   day          uint16
//	   hour         uint16
//	   minute       uint16
//	   second       uint16
//	   milliseconds uint16
//	}
//
// Decoded values are applied in field order, which keeps time.Date from
// normalizing a day against the wrong month.
func systemTime(prefix string, offset int, get func(p *Params) time.Time, ptr func(p *Params) *time.Time) []Field {
	parts := []struct {
		name string
		get  func(t time.Time) int
		set  func(t time.Time, x int) time.Time
	}{
		{"year",
			func(t time.Time) int { return t.Year() },
			func(t time.Time, x int) time.Time { return date(x, t.Month(), t.Day(), t) }},
		{"month",
			func(t time.Time) int { return int(t.Month()) },
			func(t time.Time, x int) time.Time { return date(t.Year(), time.Month(x), t.Day(), t) }},
		// Derived from the date on decoding.
		{"day_of_week",
			func(t time.Time) int { return int(t.Weekday()) },
			nil},
		{"day",
			func(t time.Time) int { return t.Day() },
			func(t time.Time, x int) time.Time { return date(t.Year(), t.Month(), x, t) }},
		{"hour",
			func(t time.Time) int { return t.Hour() },
			func(t time.Time, x int) time.Time { return t.Add(time.Duration(x-t.Hour()) * time.Hour) }},
		{"minute",
			func(t time.Time) int { return t.Minute() },
			func(t time.Time, x int) time.Time { return t.Add(time.Duration(x-t.Minute()) * time.Minute) }},
		{"second",
			func(t time.Time) int { return t.Second() },
			func(t time.Time, x int) time.Time { return t.Add(time.Duration(x-t.Second()) * time.Second) }},
		{"milliseconds",
			func(t time.Time) int { return t.Nanosecond() / int(time.Millisecond) },
			func(t time.Time, x int) time.Time {
				return t.Add(time.Duration(x)*time.Millisecond - time.Duration(t.Nanosecond()))
			}},
	}
	fs := make([]Field, len(parts))
	for i, part := range parts {
		part := part
		f := Field{
			Name:   prefix + "_" + part.name,
			Offset: offset + 2*i,
			Width:  2,
			Kind:   KindUint,
			get: func(p *Params) (value, bool) {
				return value{n: uint64(part.get(get(p)))}, true
			},
		}
		if part.set != nil {
			f.set = func(p *Params, v value) {
				t := ptr(p)
				*t = part.set(*t, int(v.n))
			}
		}
		fs[i] = f
	}
	return fs
}

// date replaces the date of t, keeping its clock and location.
func date(year int, month time.Month, day int, t time.Time) time.Time {
	return time.Date(year, month, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
