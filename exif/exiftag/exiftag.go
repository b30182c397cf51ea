// Package exiftag names the Exif tags used by this module.
//
// A tag is identified by its directory and its 16-bit tag number
// combined into a single uint32, so that tags in different
// directories (such as GPSVersionID and the first Tiff tags)
// never collide.
package exiftag

import "fmt"

// Directories. The value of a directory is the tag
// of the pointer in IFD0 that points to it.
const (
	Tiff    = 0x0000 << 16
	Exif    = 0x8769 << 16
	GPS     = 0x8825 << 16
	Interop = 0xa005 << 16
)

// Tiff (IFD0 and IFD1) tags
const (
	ImageWidth                  = Tiff | 0x0100
	ImageLength                 = Tiff | 0x0101
	Compression                 = Tiff | 0x0103
	Make                        = Tiff | 0x010f
	Model                       = Tiff | 0x0110
	Orientation                 = Tiff | 0x0112
	XResolution                 = Tiff | 0x011a
	YResolution                 = Tiff | 0x011b
	ResolutionUnit              = Tiff | 0x0128
	DateTime                    = Tiff | 0x0132
	JPEGInterchangeFormat       = Tiff | 0x0201
	JPEGInterchangeFormatLength = Tiff | 0x0202
	YCbCrPositioning            = Tiff | 0x0213

	ExifIFDPointer    = Tiff | 0x8769
	GPSInfoIFDPointer = Tiff | 0x8825
)

// Exif tags
const (
	ExposureTime               = Exif | 0x829a
	FNumber                    = Exif | 0x829d
	ExposureProgram            = Exif | 0x8822
	ISOSpeedRatings            = Exif | 0x8827
	ExifVersion                = Exif | 0x9000
	DateTimeOriginal           = Exif | 0x9003
	DateTimeDigitized          = Exif | 0x9004
	ComponentsConfiguration    = Exif | 0x9101
	Flash                      = Exif | 0x9209
	FocalLength                = Exif | 0x920a
	UserComment                = Exif | 0x9286
	FlashpixVersion            = Exif | 0xa000
	ColorSpace                 = Exif | 0xa001
	PixelXDimension            = Exif | 0xa002
	PixelYDimension            = Exif | 0xa003
	InteroperabilityIFDPointer = Exif | 0xa005
	WhiteBalance               = Exif | 0xa403
)

// GPS tags
const (
	GPSVersionID        = GPS | 0x00
	GPSLatitudeRef      = GPS | 0x01
	GPSLatitude         = GPS | 0x02
	GPSLongitudeRef     = GPS | 0x03
	GPSLongitude        = GPS | 0x04
	GPSAltitudeRef      = GPS | 0x05
	GPSAltitude         = GPS | 0x06
	GPSTimeStamp        = GPS | 0x07
	GPSProcessingMethod = GPS | 0x1b
	GPSDateStamp        = GPS | 0x1d
)

// Interop tags
const (
	InteroperabilityIndex = Interop | 0x01
)

// Dir returns the directory part of tag.
func Dir(tag uint32) uint32 {
	return tag &^ 0xffff
}

// Id is a tag with a name.
type Id uint32

func (id Id) String() string {
	if n, ok := names[uint32(id)]; ok {
		return n
	}
	return fmt.Sprintf("%s.%#04x", DirName(Dir(uint32(id))), uint16(id))
}

// DirName returns the name of the directory dir.
func DirName(dir uint32) string {
	switch dir {
	case Tiff:
		return "Tiff"
	case Exif:
		return "Exif"
	case GPS:
		return "GPS"
	case Interop:
		return "Interop"
	}
	return fmt.Sprintf("Dir%#04x", dir>>16)
}

var names = map[uint32]string{
	ImageWidth:                  "ImageWidth",
	ImageLength:                 "ImageLength",
	Compression:                 "Compression",
	Make:                        "Make",
	Model:                       "Model",
	Orientation:                 "Orientation",
	XResolution:                 "XResolution",
	YResolution:                 "YResolution",
	ResolutionUnit:              "ResolutionUnit",
	DateTime:                    "DateTime",
	JPEGInterchangeFormat:       "JPEGInterchangeFormat",
	JPEGInterchangeFormatLength: "JPEGInterchangeFormatLength",
	YCbCrPositioning:            "YCbCrPositioning",
	ExifIFDPointer:              "ExifIFDPointer",
	GPSInfoIFDPointer:           "GPSInfoIFDPointer",

	ExposureTime:               "ExposureTime",
	FNumber:                    "FNumber",
	ExposureProgram:            "ExposureProgram",
	ISOSpeedRatings:            "ISOSpeedRatings",
	ExifVersion:                "ExifVersion",
	DateTimeOriginal:           "DateTimeOriginal",
	DateTimeDigitized:          "DateTimeDigitized",
	ComponentsConfiguration:    "ComponentsConfiguration",
	Flash:                      "Flash",
	FocalLength:                "FocalLength",
	UserComment:                "UserComment",
	FlashpixVersion:            "FlashpixVersion",
	ColorSpace:                 "ColorSpace",
	PixelXDimension:            "PixelXDimension",
	PixelYDimension:            "PixelYDimension",
	InteroperabilityIFDPointer: "InteroperabilityIFDPointer",
	WhiteBalance:               "WhiteBalance",

	GPSVersionID:        "GPSVersionID",
	GPSLatitudeRef:      "GPSLatitudeRef",
	GPSLatitude:         "GPSLatitude",
	GPSLongitudeRef:     "GPSLongitudeRef",
	GPSLongitude:        "GPSLongitude",
	GPSAltitudeRef:      "GPSAltitudeRef",
	GPSAltitude:         "GPSAltitude",
	GPSTimeStamp:        "GPSTimeStamp",
	GPSProcessingMethod: "GPSProcessingMethod",
	GPSDateStamp:        "GPSDateStamp",

	InteroperabilityIndex: "InteroperabilityIndex",
}
