package value

import "fmt"

// Date is a TOML local date: `1979-05-27`.
type Date struct {
	Year  int
	Month int
	Day   int
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Time is a TOML local time: `07:32:00` or `07:32:00.999999`.
type Time struct {
	Hour       int
	Minute     int
	Second     int
	Nanosecond int
}

func (t Time) String() string {
	s := fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
	if t.Nanosecond > 0 {
		frac := fmt.Sprintf("%09d", t.Nanosecond)
		for len(frac) > 0 && frac[len(frac)-1] == '0' {
			frac = frac[:len(frac)-1]
		}
		s += "." + frac
	}
	return s
}

// Datetime is a TOML offset or local date-time. OffsetSet distinguishes
// an explicit `Z`/`+00:00` offset (even one that is numerically zero)
// from a local date-time with no offset at all: the TOML grammar and
// this module's round-trip guarantee both depend on that distinction,
// not just on the numeric offset value.
type Datetime struct {
	Date         Date
	Time         Time
	OffsetSet    bool
	OffsetMinute int // signed minutes east of UTC, meaningful iff OffsetSet
}

func (dt Datetime) String() string {
	s := dt.Date.String() + "T" + dt.Time.String()
	if dt.OffsetSet {
		if dt.OffsetMinute == 0 {
			s += "Z"
		} else {
			sign := "+"
			m := dt.OffsetMinute
			if m < 0 {
				sign = "-"
				m = -m
			}
			s += fmt.Sprintf("%s%02d:%02d", sign, m/60, m%60)
		}
	}
	return s
}
