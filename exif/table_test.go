package exif

import (
	"encoding/binary"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/tajtiattila/jpegexif/exif/exiftag"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		tag uint32
		dir uint32
		typ uint16
	}{
		{exiftag.Make, exiftag.Tiff, TypeAscii},
		{exiftag.ImageWidth, exiftag.Tiff, TypeLong},
		{exiftag.Orientation, exiftag.Tiff, TypeShort},
		{exiftag.UserComment, exiftag.Exif, TypeUndef},
		{exiftag.ISOSpeedRatings, exiftag.Exif, TypeShort},
		{exiftag.FocalLength, exiftag.Exif, TypeRational},
		{exiftag.GPSAltitudeRef, exiftag.GPS, TypeByte},
		{exiftag.GPSLatitude, exiftag.GPS, TypeRational},
		{exiftag.GPSDateStamp, exiftag.GPS, TypeAscii},
	}
	for _, tt := range tests {
		s, err := Lookup(tt.tag)
		if err != nil {
			t.Errorf("Lookup(%v): %v", exiftag.Id(tt.tag), err)
			continue
		}
		if s.Dir() != tt.dir || s.Type != tt.typ {
			t.Errorf("Lookup(%v) = dir %#x type %d, want dir %#x type %d",
				exiftag.Id(tt.tag), s.Dir(), s.Type, tt.dir, tt.typ)
		}
	}
}

func TestLookupUnsupported(t *testing.T) {
	// same tag number as GPSLatitudeRef in IFD0
	for _, tag := range []uint32{exiftag.Tiff | 1, exiftag.XResolution, exiftag.InteroperabilityIndex} {
		_, err := Lookup(tag)
		var ute *UnsupportedTagError
		if !errors.As(err, &ute) || ute.Tag != tag {
			t.Errorf("Lookup(%#x) returned %v", tag, err)
		}
	}
}

func TestAccepts(t *testing.T) {
	w, _ := Lookup(exiftag.ImageWidth)
	if !w.Accepts(TypeShort) || !w.Accepts(TypeLong) || w.Accepts(TypeAscii) {
		t.Error("ImageWidth should accept Short and Long only")
	}
	o, _ := Lookup(exiftag.Orientation)
	if o.Accepts(TypeLong) {
		t.Error("Orientation accepts Long")
	}
}

func TestPutDelete(t *testing.T) {
	x := New()

	if err := x.Put(exiftag.Make, Ascii("Maker")); err != nil {
		t.Fatal(err)
	}
	if s, ok := x.Tag(exiftag.Make).Ascii(); !ok || s != "Maker" {
		t.Errorf("Make is %q", s)
	}

	err := x.Put(exiftag.Make, Short{1})
	if err == nil || !strings.Contains(err.Error(), "needs type") {
		t.Errorf("Put with wrong type returned %v", err)
	}

	var ute *UnsupportedTagError
	if err := x.Put(exiftag.XResolution, Rational{72, 1}); !errors.As(err, &ute) {
		t.Errorf("Put of unsupported tag returned %v", err)
	}
	if err := x.Delete(exiftag.XResolution); !errors.As(err, &ute) {
		t.Errorf("Delete of unsupported tag returned %v", err)
	}

	if err := x.Delete(exiftag.Make); err != nil {
		t.Fatal(err)
	}
	if x.Tag(exiftag.Make) != nil {
		t.Error("Make not deleted")
	}

	if x.ByteOrder != binary.BigEndian {
		t.Error("New Exif is not big-endian")
	}
}
