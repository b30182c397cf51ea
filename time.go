package jpegexif

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Exif time layouts. Exif has no time zone, values are
// interpreted as UTC in this package.
const (
	dateTimeLayout  = "2006:01:02 15:04:05"
	gpsDateLayout   = "2006:01:02"
	timePrecision   = 1000
	secondsPerDay   = 24 * 60 * 60
	gpsTimeRatCount = 3
)

// parseDateTime parses an Exif date/time value.
//
// Some cameras use spaces for unknown components,
// such values are rejected.
func parseDateTime(s string) (time.Time, error) {
	s = strings.TrimRight(s, "\x00")
	t, err := time.ParseInLocation(dateTimeLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "invalid date/time %q", s)
	}
	return t, nil
}

func formatDateTime(t time.Time) string {
	return t.UTC().Format(dateTimeLayout)
}

// gpsTimeStamp returns the hour, minute and second of t in UTC.
func gpsTimeStamp(t time.Time) []Rational {
	h, m, s := t.UTC().Clock()
	return []Rational{
		FromDouble(float64(h), timePrecision),
		FromDouble(float64(m), timePrecision),
		FromDouble(float64(s), timePrecision),
	}
}

func gpsDateStamp(t time.Time) string {
	return t.UTC().Format(gpsDateLayout)
}

// parseGPSDateTime combines a GPS date stamp and time stamp.
func parseGPSDateTime(date string, hms []Rational) (time.Time, error) {
	date = strings.TrimRight(date, "\x00")
	d, err := time.ParseInLocation(gpsDateLayout, date, time.UTC)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "invalid gps date %q", date)
	}
	if len(hms) != gpsTimeRatCount {
		return time.Time{}, errors.Errorf("gps time has %d components", len(hms))
	}

	var sec float64
	for i, mul := range []float64{3600, 60, 1} {
		v := hms[i].Float64()
		if !hms[i].Valid() || v < 0 {
			return time.Time{}, errors.Errorf("invalid gps time component %v", hms[i])
		}
		sec += v * mul
	}
	if sec >= secondsPerDay {
		return time.Time{}, errors.Errorf("gps time %v out of range", hms)
	}

	return d.Add(time.Duration(sec * float64(time.Second))).Truncate(time.Second), nil
}
