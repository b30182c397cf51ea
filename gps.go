package jpegexif

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
)

// GCSPosition is a geographic coordinate in
// degrees, minutes and seconds.
type GCSPosition struct {
	Degrees, Minutes, Seconds Rational
}

// GCSPositionFromDecimal converts decimal degrees to a GCSPosition.
//
// Degrees and minutes are whole numbers, seconds are rounded to
// the nearest whole second. Values outside [0, 180] yield an
// invalid position.
func GCSPositionFromDecimal(v float64) GCSPosition {
	if math.IsNaN(v) || v < 0 || v > 180 {
		log.Warn().Float64("value", v).Msg("gcs position out of range")
		return GCSPosition{}
	}

	deg := math.Floor(v)
	left := v - deg

	min := math.Floor(left * 60)
	left -= min / 60

	sec := math.Round(left * 3600)

	if sec >= 60 {
		sec -= 60
		min++
	}
	if min >= 60 {
		min -= 60
		deg++
	}

	return GCSPosition{
		Degrees: Rational{uint32(deg), 1},
		Minutes: Rational{uint32(min), 1},
		Seconds: FromDouble(sec, 0),
	}
}

// Valid reports if all components of p are valid and
// within their ranges, and p is not beyond 180 degrees.
func (p GCSPosition) Valid() bool {
	if !p.Degrees.Valid() || !p.Minutes.Valid() || !p.Seconds.Valid() {
		return false
	}
	if p.Degrees.Float64() > 180 || p.Minutes.Float64() > 60 || p.Seconds.Float64() > 60 {
		return false
	}
	return p.Float64() <= 180
}

// Float64 returns p in decimal degrees.
func (p GCSPosition) Float64() float64 {
	return p.Degrees.Float64() + p.Minutes.Float64()/60 + p.Seconds.Float64()/3600
}

func (p GCSPosition) String() string {
	return fmt.Sprintf("%vd %vm %vs", p.Degrees, p.Minutes, p.Seconds)
}

func (p GCSPosition) rationals() []uint32 {
	return []uint32{
		p.Degrees.Num, p.Degrees.Den,
		p.Minutes.Num, p.Minutes.Den,
		p.Seconds.Num, p.Seconds.Den,
	}
}

// LongitudeRef is the hemisphere of a longitude.
type LongitudeRef byte

// LongitudeRef values
const (
	East LongitudeRef = 'E'
	West LongitudeRef = 'W'
)

func (r LongitudeRef) String() string {
	switch r {
	case East:
		return "EAST"
	case West:
		return "WEST"
	}
	return ""
}

// LatitudeRef is the hemisphere of a latitude.
type LatitudeRef byte

// LatitudeRef values
const (
	North LatitudeRef = 'N'
	South LatitudeRef = 'S'
)

func (r LatitudeRef) String() string {
	switch r {
	case North:
		return "NORTH"
	case South:
		return "SOUTH"
	}
	return ""
}

// GPSLocation is a GPS position stored in Exif.
//
// The four components are set independently,
// as they are stored in separate tags.
type GPSLocation struct {
	lon, lat       GCSPosition
	lonRef         LongitudeRef
	latRef         LatitudeRef
	hasLon, hasLat bool

	hasLonRef, hasLatRef bool
}

// SetLongitude sets the longitude. Invalid positions are ignored.
func (l *GPSLocation) SetLongitude(p GCSPosition) {
	if !p.Valid() {
		log.Warn().Stringer("position", p).Msg("ignoring invalid longitude")
		return
	}
	l.lon, l.hasLon = p, true
}

// SetLatitude sets the latitude. Invalid positions are ignored.
func (l *GPSLocation) SetLatitude(p GCSPosition) {
	if !p.Valid() {
		log.Warn().Stringer("position", p).Msg("ignoring invalid latitude")
		return
	}
	l.lat, l.hasLat = p, true
}

func (l *GPSLocation) SetLongitudeRef(r LongitudeRef) {
	l.lonRef, l.hasLonRef = r, true
}

func (l *GPSLocation) SetLatitudeRef(r LatitudeRef) {
	l.latRef, l.hasLatRef = r, true
}

func (l *GPSLocation) Longitude() (GCSPosition, bool)     { return l.lon, l.hasLon }
func (l *GPSLocation) Latitude() (GCSPosition, bool)      { return l.lat, l.hasLat }
func (l *GPSLocation) LongitudeRef() (LongitudeRef, bool) { return l.lonRef, l.hasLonRef }
func (l *GPSLocation) LatitudeRef() (LatitudeRef, bool)   { return l.latRef, l.hasLatRef }

func (l *GPSLocation) UnsetLongitude()    { l.lon, l.hasLon = GCSPosition{}, false }
func (l *GPSLocation) UnsetLatitude()     { l.lat, l.hasLat = GCSPosition{}, false }
func (l *GPSLocation) UnsetLongitudeRef() { l.lonRef, l.hasLonRef = 0, false }
func (l *GPSLocation) UnsetLatitudeRef()  { l.latRef, l.hasLatRef = 0, false }

// UnsetAll unsets all components of l.
func (l *GPSLocation) UnsetAll() {
	*l = GPSLocation{}
}

// IsComplete reports if all four components are set.
func (l *GPSLocation) IsComplete() bool {
	return l.hasLon && l.hasLonRef && l.hasLat && l.hasLatRef
}

// anySet reports if any of the four components are set.
func (l *GPSLocation) anySet() bool {
	return l.hasLon || l.hasLonRef || l.hasLat || l.hasLatRef
}

// Valid reports if l is complete with valid positions.
func (l *GPSLocation) Valid() bool {
	return l.IsComplete() && l.lon.Valid() && l.lat.Valid()
}

// Set sets l from signed decimal degrees.
//
// Components already holding the new value are left unchanged.
func (l *GPSLocation) Set(lon, lat float64) {
	lonRef := East
	if lon < 0 {
		lonRef = West
	}
	latRef := North
	if lat < 0 {
		latRef = South
	}

	if !l.hasLon || l.lon.Float64() != math.Abs(lon) {
		l.SetLongitude(GCSPositionFromDecimal(math.Abs(lon)))
	}
	if !l.hasLonRef || l.lonRef != lonRef {
		l.SetLongitudeRef(lonRef)
	}
	if !l.hasLat || l.lat.Float64() != math.Abs(lat) {
		l.SetLatitude(GCSPositionFromDecimal(math.Abs(lat)))
	}
	if !l.hasLatRef || l.latRef != latRef {
		l.SetLatitudeRef(latRef)
	}
}

// Coordinates returns l in signed decimal degrees.
// It returns ok == false if l is not complete.
func (l *GPSLocation) Coordinates() (lon, lat float64, ok bool) {
	if !l.IsComplete() {
		return 0, 0, false
	}
	lon = l.lon.Float64()
	if l.lonRef == West {
		lon = -lon
	}
	lat = l.lat.Float64()
	if l.latRef == South {
		lat = -lat
	}
	return lon, lat, true
}
