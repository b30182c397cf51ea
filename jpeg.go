package jpegexif

import (
	"github.com/tajtiattila/jpegexif/exif"
	"github.com/tajtiattila/jpegexif/jpeg"
)

// Load returns the attributes of the JPEG file in p.
//
// A file without Exif yields an ExifInformation
// with all attributes unset.
func Load(p []byte) (*ExifInformation, error) {
	c, err := jpeg.Parse(p)
	if err != nil {
		return nil, err
	}
	x := c.Exif()
	if x == nil {
		return NewExifInformation(), nil
	}
	return FromExif(x), nil
}

// Apply returns the JPEG file in p with the attributes of
// info stored in its Exif. A new Exif segment is created
// if p has none.
//
// Segments other than Exif are copied unchanged.
func (info *ExifInformation) Apply(p []byte) ([]byte, error) {
	c, err := jpeg.Parse(p)
	if err != nil {
		return nil, err
	}

	x := c.Exif()
	if x == nil {
		x = exif.New()
	}
	if err := info.ApplyTo(x); err != nil {
		return nil, err
	}
	if err := c.SetExif(x); err != nil {
		return nil, err
	}
	return c.Bytes()
}
