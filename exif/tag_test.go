package exif

import (
	"encoding/binary"
	"reflect"
	"testing"
)

func TestTagGetters(t *testing.T) {
	tests := []struct {
		typ          uint16
		count        uint32
		beraw, leraw []byte
		get          func(tag *Tag) interface{}
		want         interface{}
	}{
		{
			TypeByte, 2, []byte{1, 2}, []byte{1, 2},
			func(tag *Tag) interface{} { return tag.Byte() },
			[]byte{1, 2},
		},
		{
			TypeUndef, 2, []byte{1, 2}, []byte{1, 2},
			func(tag *Tag) interface{} { return tag.Undef() },
			[]byte{1, 2},
		},
		{
			TypeAscii, 6, []byte("hello\x00"), []byte("hello\x00"),
			func(tag *Tag) interface{} { s, _ := tag.Ascii(); return s },
			"hello",
		},
		{
			TypeAscii, 4, []byte("ab\x00c"), []byte("ab\x00c"),
			func(tag *Tag) interface{} { s, _ := tag.Ascii(); return s },
			"ab",
		},
		{
			TypeShort, 1, []byte{1, 2}, []byte{2, 1},
			func(tag *Tag) interface{} { return tag.Short() },
			[]uint16{0x102},
		},
		{
			TypeLong, 1, []byte{1, 2, 3, 4}, []byte{4, 3, 2, 1},
			func(tag *Tag) interface{} { return tag.Long() },
			[]uint32{0x1020304},
		},
		{
			TypeSLong, 1, []byte{0xff, 0xff, 0xff, 0xfe}, []byte{0xfe, 0xff, 0xff, 0xff},
			func(tag *Tag) interface{} { return tag.SLong() },
			[]int32{-2},
		},
		{
			TypeRational, 1,
			[]byte{1, 2, 3, 4, 5, 6, 7, 8},
			[]byte{4, 3, 2, 1, 8, 7, 6, 5},
			func(tag *Tag) interface{} { return tag.Rational() },
			Rational{0x1020304, 0x5060708},
		},
		{
			TypeShort, 2, []byte{0, 7, 0, 8}, []byte{7, 0, 8, 0},
			func(tag *Tag) interface{} { v, _ := tag.Uint(); return v },
			uint32(7),
		},
		{
			TypeLong, 1, []byte{0, 1, 0, 0}, []byte{0, 0, 1, 0},
			func(tag *Tag) interface{} { v, _ := tag.Uint(); return v },
			uint32(0x10000),
		},
	}

	for _, tt := range tests {
		testTagGetter(t, binary.BigEndian, tt.typ, tt.count, tt.beraw, tt.get, tt.want)
		testTagGetter(t, binary.LittleEndian, tt.typ, tt.count, tt.leraw, tt.get, tt.want)
	}
}

func testTagGetter(t *testing.T, bo binary.ByteOrder, typ uint16, count uint32, raw []byte,
	get func(tag *Tag) interface{}, want interface{}) {

	tag := &Tag{
		ByteOrder: bo,
		E: Entry{
			Type:  typ,
			Count: count,
			Value: raw,
		},
	}
	if !tag.Valid() {
		t.Errorf("tag %s thinks it is invalid", typeStr(typ))
		return
	}
	if !tag.IsType(typ) {
		t.Errorf("tag thinks it is not %s", typeStr(typ))
		return
	}
	if got := get(tag); !reflect.DeepEqual(got, want) {
		t.Errorf("%v %s got %v, want %v", bo, typeStr(typ), got, want)
	}
}

func TestTagInvalid(t *testing.T) {
	var nilTag *Tag
	if nilTag.Valid() {
		t.Error("nil tag is valid")
	}
	if _, ok := nilTag.Ascii(); ok {
		t.Error("nil tag has Ascii value")
	}
	if _, ok := nilTag.Uint(); ok {
		t.Error("nil tag has Uint value")
	}

	short := &Tag{
		ByteOrder: binary.BigEndian,
		E:         Entry{Type: TypeRational, Count: 3, Value: make([]byte, 16)},
	}
	if short.Valid() {
		t.Error("tag with short value is valid")
	}
	if r := short.Rational(); r != nil {
		t.Errorf("tag with short value returned %v", r)
	}

	wrongType := &Tag{
		ByteOrder: binary.BigEndian,
		E:         Entry{Type: TypeShort, Count: 1, Value: []byte{0, 1}},
	}
	if v := wrongType.Long(); v != nil {
		t.Errorf("Short tag returned Long value %v", v)
	}
}

func typeStr(typ uint16) string {
	switch typ {
	case TypeByte:
		return "Byte"
	case TypeAscii:
		return "Ascii"
	case TypeShort:
		return "Short"
	case TypeLong:
		return "Long"
	case TypeRational:
		return "Rational"
	case TypeUndef:
		return "Undef"
	case TypeSLong:
		return "SLong"
	case TypeSRational:
		return "SRational"
	}
	return "«invalid»"
}
