package exif

import "encoding/binary"

// Tiff field types
const (
	TypeByte      = 1
	TypeAscii     = 2
	TypeShort     = 3
	TypeLong      = 4
	TypeRational  = 5
	TypeSByte     = 6
	TypeUndef     = 7
	TypeSShort    = 8
	TypeSLong     = 9
	TypeSRational = 10
	TypeFloat     = 11
	TypeDouble    = 12
)

// typeSize returns the number of bytes needed for count values of typ,
// or -1 if typ is unknown or the size would not fit in a Tiff file.
func typeSize(typ uint16, count uint32) int {
	var n uint64
	switch typ {
	case TypeByte, TypeAscii, TypeSByte, TypeUndef:
		n = 1
	case TypeShort, TypeSShort:
		n = 2
	case TypeLong, TypeSLong, TypeFloat:
		n = 4
	case TypeRational, TypeSRational, TypeDouble:
		n = 8
	default:
		return -1
	}
	n *= uint64(count)
	if n > 1<<32-1 {
		return -1
	}
	return int(n)
}

// Entry is a raw tagged field within a Dir.
type Entry struct {
	Tag   uint16
	Type  uint16
	Count uint32

	// Value is the raw value of the entry in the byte order of
	// the Exif it belongs to.
	Value []byte
}

// Value is a typed value that can be stored in an Entry.
type Value interface {
	Type() uint16
	Count() uint32
	Bytes(bo binary.ByteOrder) []byte
}

// Byte is a list of unsigned bytes.
type Byte []byte

func (v Byte) Type() uint16                     { return TypeByte }
func (v Byte) Count() uint32                    { return uint32(len(v)) }
func (v Byte) Bytes(bo binary.ByteOrder) []byte { return append([]byte(nil), v...) }

// Undef is a list of bytes with no specific meaning.
type Undef []byte

func (v Undef) Type() uint16                     { return TypeUndef }
func (v Undef) Count() uint32                    { return uint32(len(v)) }
func (v Undef) Bytes(bo binary.ByteOrder) []byte { return append([]byte(nil), v...) }

// Ascii is a string. It is stored with a terminating NUL.
type Ascii string

func (v Ascii) Type() uint16  { return TypeAscii }
func (v Ascii) Count() uint32 { return uint32(len(v) + 1) }
func (v Ascii) Bytes(bo binary.ByteOrder) []byte {
	p := make([]byte, len(v)+1)
	copy(p, v)
	return p
}

// Short is a list of 16-bit unsigned values.
type Short []uint16

func (v Short) Type() uint16  { return TypeShort }
func (v Short) Count() uint32 { return uint32(len(v)) }
func (v Short) Bytes(bo binary.ByteOrder) []byte {
	p := make([]byte, 2*len(v))
	for i, x := range v {
		bo.PutUint16(p[2*i:], x)
	}
	return p
}

// Long is a list of 32-bit unsigned values.
type Long []uint32

func (v Long) Type() uint16  { return TypeLong }
func (v Long) Count() uint32 { return uint32(len(v)) }
func (v Long) Bytes(bo binary.ByteOrder) []byte {
	p := make([]byte, 4*len(v))
	for i, x := range v {
		bo.PutUint32(p[4*i:], x)
	}
	return p
}

// Rational is a list of numerator and denominator pairs,
// therefore its length must be even.
type Rational []uint32

func (v Rational) Type() uint16  { return TypeRational }
func (v Rational) Count() uint32 { return uint32(len(v) / 2) }
func (v Rational) Bytes(bo binary.ByteOrder) []byte {
	n := len(v) &^ 1
	p := make([]byte, 4*n)
	for i := 0; i < n; i++ {
		bo.PutUint32(p[4*i:], v[i])
	}
	return p
}

func newEntry(bo binary.ByteOrder, tag uint32, v Value) Entry {
	return Entry{
		Tag:   uint16(tag),
		Type:  v.Type(),
		Count: v.Count(),
		Value: v.Bytes(bo),
	}
}
