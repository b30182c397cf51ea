package jpegexif

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultPrecision is the largest denominator
// used by FromDouble in this package.
const DefaultPrecision = 1000

// Rational is an unsigned fraction as stored in Exif.
// A zero denominator marks an invalid value.
type Rational struct {
	Num, Den uint32
}

// Valid reports if r has a nonzero denominator.
func (r Rational) Valid() bool { return r.Den != 0 }

// Float64 returns the value of r, or NaN if r is invalid.
func (r Rational) Float64() float64 {
	if !r.Valid() {
		return math.NaN()
	}
	return float64(r.Num) / float64(r.Den)
}

func (r Rational) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

// FromDouble returns the best approximation of v with a
// denominator not larger than precision, using continued fractions.
//
// Negative values, NaN and values too large for a
// Rational yield an invalid Rational. Values below 1e-9 yield 0/1.
// A zero precision means DefaultPrecision.
func FromDouble(v float64, precision uint32) Rational {
	if math.IsNaN(v) || v < 0 || v > math.MaxUint32 {
		return Rational{}
	}
	if v < 1e-9 {
		return Rational{0, 1}
	}
	if precision == 0 {
		precision = DefaultPrecision
	}
	prec := int64(precision)

	// convergents are m00/m10, previous ones are m01/m11
	m00, m01 := int64(1), int64(0)
	m10, m11 := int64(0), int64(1)

	x := v
	for {
		ai := int64(x)
		if m10*ai+m11 > prec {
			break
		}
		m00, m01 = m00*ai+m01, m00
		m10, m11 = m10*ai+m11, m10
		if x == float64(ai) {
			break
		}
		x = 1 / (x - float64(ai))
		if x > math.MaxInt32 {
			break
		}
	}

	best := Rational{}
	bestErr := math.Inf(1)
	try := func(num, den int64) {
		if den <= 0 || num < 0 || num > math.MaxUint32 {
			return
		}
		if e := math.Abs(v - float64(num)/float64(den)); e < bestErr {
			best, bestErr = Rational{uint32(num), uint32(den)}, e
		}
	}

	// The closer of the last convergent and the largest semiconvergent
	// is returned, not simply the last convergent. This gives the best
	// fraction within precision, so pi at 100 is 311/99 rather than 22/7.
	try(m00, m10)

	// largest semiconvergent within precision
	if m10 != 0 {
		ai := (prec - m11) / m10
		try(m00*ai+m01, m10*ai+m11)
	}

	return best
}

// ParseExposureTime parses an exposure time in seconds in one of
// the forms "N", "N/D" or "I N/D".
//
// An exposure time of zero is invalid, as are
// malformed strings.
func ParseExposureTime(s string) Rational {
	s = strings.TrimSpace(s)
	if s == "" {
		return Rational{}
	}

	var whole uint64
	frac := s
	if i := strings.IndexByte(s, ' '); i >= 0 {
		w, err := strconv.ParseUint(s[:i], 10, 32)
		if err != nil {
			return Rational{}
		}
		whole = w
		frac = strings.TrimSpace(s[i+1:])
		if !strings.Contains(frac, "/") {
			return Rational{}
		}
	}

	num, den := frac, "1"
	if i := strings.IndexByte(frac, '/'); i >= 0 {
		num, den = frac[:i], frac[i+1:]
	}

	n, err := strconv.ParseUint(num, 10, 32)
	if err != nil {
		return Rational{}
	}
	d, err := strconv.ParseUint(den, 10, 32)
	if err != nil || d == 0 {
		return Rational{}
	}

	n += whole * d
	if n == 0 || n > math.MaxUint32 {
		return Rational{}
	}
	return Rational{uint32(n), uint32(d)}
}

// ExposureTimeString formats r as an exposure time
// in seconds, such as "1/200", "2" or "1 1/3".
// It returns the empty string if r is invalid or zero.
func (r Rational) ExposureTimeString() string {
	if !r.Valid() || r.Num == 0 {
		return ""
	}
	if r.Num < r.Den {
		return r.String()
	}
	q, rem := r.Num/r.Den, r.Num%r.Den
	if rem == 0 {
		return strconv.FormatUint(uint64(q), 10)
	}
	return fmt.Sprintf("%d %d/%d", q, rem, r.Den)
}
