package exif

import (
	"bytes"
	"encoding/binary"
)

// Tag is an Entry together with the byte order
// needed to interpret its value.
//
// The getters may be used on a nil *Tag, they
// report a missing value in that case.
type Tag struct {
	binary.ByteOrder
	E Entry
}

// Valid reports if the value of t has the length
// implied by its type and count.
func (t *Tag) Valid() bool {
	if t == nil {
		return false
	}
	n := typeSize(t.E.Type, t.E.Count)
	return n >= 0 && n == len(t.E.Value)
}

// IsType reports if t is valid and has type typ.
func (t *Tag) IsType(typ uint16) bool {
	return t.Valid() && t.E.Type == typ
}

// Byte returns the values of a Byte tag.
func (t *Tag) Byte() []byte {
	if !t.IsType(TypeByte) {
		return nil
	}
	return t.E.Value
}

// Undef returns the values of an Undef tag.
func (t *Tag) Undef() []byte {
	if !t.IsType(TypeUndef) {
		return nil
	}
	return t.E.Value
}

// Ascii returns the value of an Ascii tag without
// the terminating NUL and anything after it.
func (t *Tag) Ascii() (string, bool) {
	if !t.IsType(TypeAscii) {
		return "", false
	}
	p := t.E.Value
	if i := bytes.IndexByte(p, 0); i >= 0 {
		p = p[:i]
	}
	return string(p), true
}

// Short returns the values of a Short tag.
func (t *Tag) Short() []uint16 {
	if !t.IsType(TypeShort) {
		return nil
	}
	v := make([]uint16, t.E.Count)
	for i := range v {
		v[i] = t.Uint16(t.E.Value[2*i:])
	}
	return v
}

// Long returns the values of a Long tag.
func (t *Tag) Long() []uint32 {
	if !t.IsType(TypeLong) {
		return nil
	}
	v := make([]uint32, t.E.Count)
	for i := range v {
		v[i] = t.Uint32(t.E.Value[4*i:])
	}
	return v
}

// SLong returns the values of a SLong tag.
func (t *Tag) SLong() []int32 {
	if !t.IsType(TypeSLong) {
		return nil
	}
	v := make([]int32, t.E.Count)
	for i := range v {
		v[i] = int32(t.Uint32(t.E.Value[4*i:]))
	}
	return v
}

// Rational returns the values of a Rational tag
// as numerator and denominator pairs.
func (t *Tag) Rational() Rational {
	if !t.IsType(TypeRational) {
		return nil
	}
	v := make(Rational, 2*t.E.Count)
	for i := range v {
		v[i] = t.Uint32(t.E.Value[4*i:])
	}
	return v
}

// Uint returns the first value of a Short or Long tag.
func (t *Tag) Uint() (uint32, bool) {
	switch {
	case t.IsType(TypeShort) && t.E.Count > 0:
		return uint32(t.Uint16(t.E.Value)), true
	case t.IsType(TypeLong) && t.E.Count > 0:
		return t.Uint32(t.E.Value), true
	}
	return 0, false
}
