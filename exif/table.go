package exif

import (
	"fmt"

	"github.com/tajtiattila/jpegexif/exif/exiftag"
)

// TagSpec records where a supported tag lives and how it is stored.
type TagSpec struct {
	Tag  uint32 // tag with its directory
	Type uint16 // wire format
}

// Dir returns the directory of s, one of
// exiftag.Tiff, exiftag.Exif or exiftag.GPS.
func (s TagSpec) Dir() uint32 { return exiftag.Dir(s.Tag) }

// Accepts reports whether an entry of type typ can be read as s.
// Long tags may also be stored as Short.
func (s TagSpec) Accepts(typ uint16) bool {
	if typ == s.Type {
		return true
	}
	return s.Type == TypeLong && typ == TypeShort
}

// UnsupportedTagError is returned for tags missing from the tag table.
type UnsupportedTagError struct {
	Tag uint32
}

func (e *UnsupportedTagError) Error() string {
	return fmt.Sprintf("exif: unsupported tag %v (%#08x)", exiftag.Id(e.Tag), e.Tag)
}

// Lookup returns the TagSpec of tag.
func Lookup(tag uint32) (TagSpec, error) {
	s, ok := tagTable[tag]
	if !ok {
		return TagSpec{}, &UnsupportedTagError{Tag: tag}
	}
	return s, nil
}

var tagTable = make(map[uint32]TagSpec)

func init() {
	for _, s := range []TagSpec{
		{exiftag.ImageWidth, TypeLong},
		{exiftag.ImageLength, TypeLong},
		{exiftag.Make, TypeAscii},
		{exiftag.Model, TypeAscii},
		{exiftag.Orientation, TypeShort},

		{exiftag.ExifVersion, TypeUndef},
		{exiftag.UserComment, TypeUndef},
		{exiftag.DateTimeOriginal, TypeAscii},
		{exiftag.ExposureTime, TypeRational},
		{exiftag.FNumber, TypeRational},
		{exiftag.ExposureProgram, TypeShort},
		{exiftag.ISOSpeedRatings, TypeShort},
		{exiftag.WhiteBalance, TypeShort},
		{exiftag.Flash, TypeShort},
		{exiftag.FocalLength, TypeRational},

		{exiftag.GPSVersionID, TypeByte},
		{exiftag.GPSLatitudeRef, TypeAscii},
		{exiftag.GPSLatitude, TypeRational},
		{exiftag.GPSLongitudeRef, TypeAscii},
		{exiftag.GPSLongitude, TypeRational},
		{exiftag.GPSAltitudeRef, TypeByte},
		{exiftag.GPSAltitude, TypeRational},
		{exiftag.GPSTimeStamp, TypeRational},
		{exiftag.GPSProcessingMethod, TypeUndef},
		{exiftag.GPSDateStamp, TypeAscii},
	} {
		tagTable[s.Tag] = s
	}
}
