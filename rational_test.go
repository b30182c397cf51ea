package jpegexif

import (
	"math"
	"testing"
)

func TestFromDouble(t *testing.T) {
	f := func(v float64, prec uint32, num, den uint32) {
		testFromDouble(t, v, prec, Rational{num, den})
	}
	f(1.5, 1000, 3, 2)
	f(0.5, 0, 1, 2)
	f(0.25, 0, 1, 4)
	f(4, 0, 4, 1)
	f(0, 0, 0, 1)
	f(1e-10, 0, 0, 1)
	f(math.Pi, 1000, 355, 113)
	f(math.Pi, 100, 311, 99)
	f(math.Pi, 10, 22, 7)
	f(1.0/3, 1000, 1, 3)
	f(2.8, 0, 14, 5)
	f(40.7128, 1000, 39125, 961)
	f(123456, 0, 123456, 1)

	// invalid
	f(-1, 0, 0, 0)
	f(-1e-12, 0, 0, 0)
	f(math.NaN(), 0, 0, 0)
	f(math.Inf(1), 0, 0, 0)
	f(1e12, 0, 0, 0)
}

func testFromDouble(t *testing.T, v float64, prec uint32, want Rational) {
	got := FromDouble(v, prec)
	if got != want {
		t.Errorf("FromDouble(%v, %d) = %v, want %v", v, prec, got, want)
	}
	if prec == 0 {
		prec = DefaultPrecision
	}
	if got.Valid() && got.Den > prec {
		t.Errorf("FromDouble(%v, %d) = %v has denominator above precision", v, prec, got)
	}
}

func TestFromDoubleBest(t *testing.T) {
	// no fraction with a small denominator is closer than the result
	for _, v := range []float64{0.1, 0.7071, 1.41421356, 2.718281828, 59.9996, 0.001, 0.0004} {
		const prec = 100
		r := FromDouble(v, prec)
		e := math.Abs(v - r.Float64())
		for den := 1; den <= prec; den++ {
			num := math.Round(v * float64(den))
			if d := math.Abs(v - num/float64(den)); d < e-1e-12 {
				t.Errorf("FromDouble(%v, %d) = %v, but %v/%d is closer", v, prec, r, num, den)
				break
			}
		}
	}
}

func TestRational(t *testing.T) {
	r := Rational{3, 2}
	if !r.Valid() || r.Float64() != 1.5 || r.String() != "3/2" {
		t.Errorf("Rational %v: valid %v, value %v", r, r.Valid(), r.Float64())
	}

	z := Rational{0, 5}
	if !z.Valid() || z.Float64() != 0 {
		t.Errorf("Rational %v: valid %v, value %v", z, z.Valid(), z.Float64())
	}

	inv := Rational{3, 0}
	if inv.Valid() || !math.IsNaN(inv.Float64()) {
		t.Errorf("Rational %v: valid %v, value %v", inv, inv.Valid(), inv.Float64())
	}
}

func TestExposureTime(t *testing.T) {
	tests := []struct {
		s    string
		want Rational
		back string
	}{
		{"1/200", Rational{1, 200}, "1/200"},
		{"4", Rational{4, 1}, "4"},
		{"1 1/3", Rational{4, 3}, "1 1/3"},
		{" 2 1/2 ", Rational{5, 2}, "2 1/2"},
		{"30/10", Rational{30, 10}, "3"},
		{"0 1/4", Rational{1, 4}, "1/4"},

		{"", Rational{}, ""},
		{"0", Rational{}, ""},
		{"0/5", Rational{}, ""},
		{"1/0", Rational{}, ""},
		{"a/b", Rational{}, ""},
		{"1/", Rational{}, ""},
		{"1 2", Rational{}, ""},
		{"-1/2", Rational{}, ""},
		{"99999999999", Rational{}, ""},
	}
	for _, tt := range tests {
		got := ParseExposureTime(tt.s)
		if got != tt.want {
			t.Errorf("ParseExposureTime(%q) = %v, want %v", tt.s, got, tt.want)
		}
		if s := got.ExposureTimeString(); s != tt.back {
			t.Errorf("ParseExposureTime(%q).ExposureTimeString() = %q, want %q", tt.s, s, tt.back)
		}
	}

	if v := ParseExposureTime("4").Float64(); v != 4 {
		t.Errorf("exposure time 4 is %v", v)
	}
	if s := (Rational{0, 1}).ExposureTimeString(); s != "" {
		t.Errorf("zero exposure time formats as %q", s)
	}
}
