// Package exif implements encoding and decoding of the Tiff
// structure that holds Exif data within JPEG files.
package exif

import (
	"encoding/binary"

	"github.com/pkg/errors"
	"github.com/tajtiattila/jpegexif/exif/exiftag"
)

// Exif represents Exif format metadata in JPEG files.
type Exif struct {
	// ByteOrder is the byte order used for decoding and encoding
	binary.ByteOrder

	// Main image IFD and thumbnail IFD
	IFD0, IFD1 Dir

	// Sub-IFDs
	Exif, GPS, Interop Dir

	// Thumb is the raw JPEG thumbnail referenced from IFD1.
	Thumb []byte
}

// New returns an empty big-endian Exif.
func New() *Exif {
	return &Exif{ByteOrder: binary.BigEndian}
}

// dirp returns the Dir for the directory of tag.
// IFD1 is never returned, tags in exiftag.Tiff refer to IFD0.
func (x *Exif) dirp(tag uint32) *Dir {
	switch exiftag.Dir(tag) {
	case exiftag.Tiff:
		return &x.IFD0
	case exiftag.Exif:
		return &x.Exif
	case exiftag.GPS:
		return &x.GPS
	case exiftag.Interop:
		return &x.Interop
	}
	return nil
}

// Tag returns the Tag for tag, or nil if it is not present.
func (x *Exif) Tag(tag uint32) *Tag {
	d := x.dirp(tag)
	if d == nil {
		return nil
	}
	e := d.Tag(uint16(tag))
	if e == nil {
		return nil
	}
	return &Tag{ByteOrder: x.ByteOrder, E: *e}
}

// Set sets tag to v, or removes tag if v is nil.
// It returns false if the directory of tag is unknown.
func (x *Exif) Set(tag uint32, v Value) bool {
	d := x.dirp(tag)
	if d == nil {
		return false
	}
	if v == nil {
		d.Remove(uint16(tag))
		return true
	}
	*d.EnsureTag(uint16(tag)) = newEntry(x.ByteOrder, tag, v)
	return true
}

// Put sets a supported tag to v. The tag and the type of v
// are checked against the tag table.
func (x *Exif) Put(tag uint32, v Value) error {
	s, err := Lookup(tag)
	if err != nil {
		return err
	}
	if v.Type() != s.Type {
		return errors.Errorf("exif: tag %v needs type %d, got %d", exiftag.Id(tag), s.Type, v.Type())
	}
	x.Set(tag, v)
	return nil
}

// Delete removes a supported tag.
func (x *Exif) Delete(tag uint32) error {
	if _, err := Lookup(tag); err != nil {
		return err
	}
	x.Set(tag, nil)
	return nil
}

// SetThumbnail sets the JPEG thumbnail stored in IFD1.
// A nil p removes the thumbnail and IFD1.
func (x *Exif) SetThumbnail(p []byte) {
	if p == nil {
		x.IFD1, x.Thumb = nil, nil
		return
	}
	*x.IFD1.EnsureTag(uint16(exiftag.Compression)) = newEntry(x.ByteOrder, exiftag.Compression, Short{6})
	*x.IFD1.EnsureTag(uint16(exiftag.JPEGInterchangeFormat)) = newEntry(x.ByteOrder, exiftag.JPEGInterchangeFormat, Long{0})
	*x.IFD1.EnsureTag(uint16(exiftag.JPEGInterchangeFormatLength)) = newEntry(x.ByteOrder, exiftag.JPEGInterchangeFormatLength, Long{0})
	x.Thumb = p
}

// fieldOfs reports the value of an offset or length field.
func fieldOfs(bo binary.ByteOrder, e *Entry) (int, bool) {
	if e == nil {
		return 0, false
	}
	t := Tag{ByteOrder: bo, E: *e}
	v, ok := t.Uint()
	if !ok {
		return 0, false
	}
	return int(v), true
}

// putFieldOfs stores v in an offset or length field.
// Only Long fields can be updated.
func putFieldOfs(bo binary.ByteOrder, e *Entry, v int) bool {
	if e == nil || e.Type != TypeLong || e.Count != 1 || len(e.Value) != 4 {
		return false
	}
	bo.PutUint32(e.Value, uint32(v))
	return true
}
