// Package jpegexif reads and writes camera and GPS metadata
// stored as Exif within JPEG files.
//
// ExifInformation holds the supported attributes. Each attribute
// is either set or unset. When saved, set attributes are written
// to the file, and the tags of unset attributes are removed.
package jpegexif

import (
	"math"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// ErrNotValid is returned for attribute values that
// can't be stored in Exif.
var ErrNotValid = errors.New("value not valid")

// Attr identifies an attribute of ExifInformation.
type Attr int

// Attributes
const (
	AttrURI Attr = iota
	AttrWidth
	AttrHeight
	AttrDeviceMaker
	AttrDeviceModel
	AttrOriginalTime
	AttrOrientation
	AttrFNumber
	AttrISOSpeedRatings
	AttrExposureTime
	AttrExposureProgram
	AttrFlash
	AttrFocalLength
	AttrWhiteBalance
	AttrGPSLocation
	AttrGPSAltitude
	AttrGPSAltitudeRef
	AttrGPSProcessingMethod
	AttrGPSTime
	AttrUserComment

	numAttr
)

var attrNames = [numAttr]string{
	AttrURI:                 "uri",
	AttrWidth:               "width",
	AttrHeight:              "height",
	AttrDeviceMaker:         "deviceMaker",
	AttrDeviceModel:         "deviceModel",
	AttrOriginalTime:        "originalTime",
	AttrOrientation:         "orientation",
	AttrFNumber:             "fNumber",
	AttrISOSpeedRatings:     "isoSpeedRatings",
	AttrExposureTime:        "exposureTime",
	AttrExposureProgram:     "exposureProgram",
	AttrFlash:               "flash",
	AttrFocalLength:         "focalLength",
	AttrWhiteBalance:        "whiteBalance",
	AttrGPSLocation:         "gpsLocation",
	AttrGPSAltitude:         "gpsAltitude",
	AttrGPSAltitudeRef:      "gpsAltitudeRef",
	AttrGPSProcessingMethod: "gpsProcessingMethod",
	AttrGPSTime:             "gpsTime",
	AttrUserComment:         "userComment",
}

func (a Attr) String() string {
	if a < 0 || a >= numAttr {
		return ""
	}
	return attrNames[a]
}

// Attrs returns all attributes in order.
func Attrs() []Attr {
	v := make([]Attr, numAttr)
	for i := range v {
		v[i] = Attr(i)
	}
	return v
}

// ParseAttr returns the attribute with name s.
// The comparison is case insensitive.
func ParseAttr(s string) (Attr, error) {
	for i, n := range attrNames {
		if strings.EqualFold(n, s) {
			return Attr(i), nil
		}
	}
	return -1, errors.Errorf("unknown attribute %q", s)
}

// ExifInformation holds the Exif attributes of an image.
//
// Use the setters to set attributes and Unset to unset them.
// The zero value has all attributes unset.
type ExifInformation struct {
	set uint32 // bit per Attr, except AttrGPSLocation

	uri             string
	width, height   uint32
	deviceMaker     string
	deviceModel     string
	originalTime    time.Time
	orientation     Orientation
	fNumber         Rational
	isoSpeedRatings []uint16
	exposureTime    Rational
	exposureProgram ExposureProgram
	flash           bool
	focalLength     Rational
	whiteBalance    WhiteBalance
	gpsLocation     GPSLocation
	gpsAltitude     Rational
	gpsAltitudeRef  AltitudeRef
	gpsTime         time.Time

	gpsProcessingMethodType UndefinedType
	gpsProcessingMethod     string

	userCommentType UndefinedType
	userComment     string
}

// NewExifInformation returns an ExifInformation
// with all attributes unset.
func NewExifInformation() *ExifInformation {
	x := new(ExifInformation)
	for _, a := range Attrs() {
		x.Unset(a)
	}
	return x
}

// IsSet reports if attribute a is set.
//
// The GPS location is reported as set if
// any of its components are set.
func (x *ExifInformation) IsSet(a Attr) bool {
	if a == AttrGPSLocation {
		return x.gpsLocation.anySet()
	}
	if a < 0 || a >= numAttr {
		return false
	}
	return x.set&(1<<uint(a)) != 0
}

func (x *ExifInformation) mark(a Attr) {
	x.set |= 1 << uint(a)
}

// Unset unsets attribute a and resets its value to the default.
func (x *ExifInformation) Unset(a Attr) {
	switch a {
	case AttrURI:
		x.uri = ""
	case AttrWidth:
		x.width = 0
	case AttrHeight:
		x.height = 0
	case AttrDeviceMaker:
		x.deviceMaker = ""
	case AttrDeviceModel:
		x.deviceModel = ""
	case AttrOriginalTime:
		x.originalTime = time.Time{}
	case AttrOrientation:
		x.orientation = OrientationNotValid
	case AttrFNumber:
		x.fNumber = Rational{}
	case AttrISOSpeedRatings:
		x.isoSpeedRatings = nil
	case AttrExposureTime:
		x.exposureTime = Rational{}
	case AttrExposureProgram:
		x.exposureProgram = ExposureProgramNotValid
	case AttrFlash:
		x.flash = false
	case AttrFocalLength:
		x.focalLength = Rational{}
	case AttrWhiteBalance:
		x.whiteBalance = WhiteBalanceNotValid
	case AttrGPSLocation:
		x.gpsLocation.UnsetAll()
	case AttrGPSAltitude:
		x.gpsAltitude = Rational{}
	case AttrGPSAltitudeRef:
		x.gpsAltitudeRef = AboveSeaLevel
	case AttrGPSProcessingMethod:
		x.gpsProcessingMethodType, x.gpsProcessingMethod = UndefinedASCII, ""
	case AttrGPSTime:
		x.gpsTime = time.Time{}
	case AttrUserComment:
		x.userCommentType, x.userComment = UndefinedASCII, ""
	default:
		return
	}
	x.set &^= 1 << uint(a)
}

func (x *ExifInformation) URI() string { return x.uri }

func (x *ExifInformation) SetURI(uri string) {
	x.uri = uri
	x.mark(AttrURI)
}

func (x *ExifInformation) Width() uint32 { return x.width }

func (x *ExifInformation) SetWidth(w uint32) {
	x.width = w
	x.mark(AttrWidth)
}

func (x *ExifInformation) Height() uint32 { return x.height }

func (x *ExifInformation) SetHeight(h uint32) {
	x.height = h
	x.mark(AttrHeight)
}

func (x *ExifInformation) DeviceMaker() string { return x.deviceMaker }

func (x *ExifInformation) SetDeviceMaker(s string) {
	x.deviceMaker = s
	x.mark(AttrDeviceMaker)
}

func (x *ExifInformation) DeviceModel() string { return x.deviceModel }

func (x *ExifInformation) SetDeviceModel(s string) {
	x.deviceModel = s
	x.mark(AttrDeviceModel)
}

// OriginalTime returns the time the image was taken.
func (x *ExifInformation) OriginalTime() time.Time { return x.originalTime }

// SetOriginalTime sets the time the image was taken.
// It is stored in UTC with second precision.
func (x *ExifInformation) SetOriginalTime(t time.Time) {
	x.originalTime = t.UTC().Truncate(time.Second)
	x.mark(AttrOriginalTime)
}

func (x *ExifInformation) Orientation() Orientation { return x.orientation }

func (x *ExifInformation) SetOrientation(o Orientation) error {
	if !o.Valid() {
		return errors.Wrapf(ErrNotValid, "orientation %d", int(o))
	}
	x.orientation = o
	x.mark(AttrOrientation)
	return nil
}

func (x *ExifInformation) FNumber() Rational { return x.fNumber }

func (x *ExifInformation) SetFNumber(r Rational) error {
	if !r.Valid() {
		return errors.Wrapf(ErrNotValid, "f-number %v", r)
	}
	x.fNumber = r
	x.mark(AttrFNumber)
	return nil
}

// ISOSpeedRatings returns the ISO speed ratings.
// The returned slice must not be modified.
func (x *ExifInformation) ISOSpeedRatings() []uint16 { return x.isoSpeedRatings }

func (x *ExifInformation) SetISOSpeedRatings(v []uint16) error {
	if len(v) == 0 {
		return errors.Wrap(ErrNotValid, "empty iso speed ratings")
	}
	x.isoSpeedRatings = append([]uint16(nil), v...)
	x.mark(AttrISOSpeedRatings)
	return nil
}

func (x *ExifInformation) ExposureTime() Rational { return x.exposureTime }

// SetExposureTime sets the exposure time in seconds.
// A zero exposure time is not valid.
func (x *ExifInformation) SetExposureTime(r Rational) error {
	if !r.Valid() || r.Num == 0 {
		return errors.Wrapf(ErrNotValid, "exposure time %v", r)
	}
	x.exposureTime = r
	x.mark(AttrExposureTime)
	return nil
}

func (x *ExifInformation) ExposureProgram() ExposureProgram { return x.exposureProgram }

func (x *ExifInformation) SetExposureProgram(p ExposureProgram) error {
	if !p.Valid() {
		return errors.Wrapf(ErrNotValid, "exposure program %d", int(p))
	}
	x.exposureProgram = p
	x.mark(AttrExposureProgram)
	return nil
}

// Flash reports if the flash fired.
func (x *ExifInformation) Flash() bool { return x.flash }

func (x *ExifInformation) SetFlash(on bool) {
	x.flash = on
	x.mark(AttrFlash)
}

func (x *ExifInformation) FocalLength() Rational { return x.focalLength }

func (x *ExifInformation) SetFocalLength(r Rational) error {
	if !r.Valid() {
		return errors.Wrapf(ErrNotValid, "focal length %v", r)
	}
	x.focalLength = r
	x.mark(AttrFocalLength)
	return nil
}

func (x *ExifInformation) WhiteBalance() WhiteBalance { return x.whiteBalance }

func (x *ExifInformation) SetWhiteBalance(w WhiteBalance) error {
	if !w.Valid() {
		return errors.Wrapf(ErrNotValid, "white balance %d", int(w))
	}
	x.whiteBalance = w
	x.mark(AttrWhiteBalance)
	return nil
}

// GPSLocation returns the GPS location of x.
// Changes made through it are saved with x.
func (x *ExifInformation) GPSLocation() *GPSLocation { return &x.gpsLocation }

// SetGPSLocation sets the GPS location from signed decimal degrees.
func (x *ExifInformation) SetGPSLocation(lon, lat float64) {
	x.gpsLocation.Set(lon, lat)
}

func (x *ExifInformation) GPSAltitude() Rational { return x.gpsAltitude }

// SetGPSAltitude sets the altitude in meters
// relative to the reference set with SetGPSAltitudeRef.
func (x *ExifInformation) SetGPSAltitude(r Rational) error {
	if !r.Valid() {
		return errors.Wrapf(ErrNotValid, "gps altitude %v", r)
	}
	x.gpsAltitude = r
	x.mark(AttrGPSAltitude)
	return nil
}

func (x *ExifInformation) GPSAltitudeRef() AltitudeRef { return x.gpsAltitudeRef }

func (x *ExifInformation) SetGPSAltitudeRef(r AltitudeRef) error {
	if !r.Valid() {
		return errors.Wrapf(ErrNotValid, "gps altitude ref %d", int(r))
	}
	x.gpsAltitudeRef = r
	x.mark(AttrGPSAltitudeRef)
	return nil
}

// SetGPSAltitudeWithRef sets the altitude and its reference
// from the signed altitude v in meters.
func (x *ExifInformation) SetGPSAltitudeWithRef(v float64) error {
	ref := AboveSeaLevel
	if v < 0 {
		ref = BelowSeaLevel
	}
	if err := x.SetGPSAltitude(FromDouble(math.Abs(v), 0)); err != nil {
		return err
	}
	return x.SetGPSAltitudeRef(ref)
}

// SignedGPSAltitude returns the altitude in meters, negative
// below sea level. It returns NaN if the altitude is not set.
func (x *ExifInformation) SignedGPSAltitude() float64 {
	if !x.IsSet(AttrGPSAltitude) {
		return math.NaN()
	}
	v := x.gpsAltitude.Float64()
	if x.gpsAltitudeRef == BelowSeaLevel {
		v = -v
	}
	return v
}

func (x *ExifInformation) GPSProcessingMethod() (UndefinedType, string) {
	return x.gpsProcessingMethodType, x.gpsProcessingMethod
}

func (x *ExifInformation) SetGPSProcessingMethod(typ UndefinedType, s string) error {
	if !typ.Valid() {
		return errors.Wrapf(ErrNotValid, "gps processing method type %d", int(typ))
	}
	x.gpsProcessingMethodType, x.gpsProcessingMethod = typ, s
	x.mark(AttrGPSProcessingMethod)
	return nil
}

// GPSTime returns the time of the GPS fix.
func (x *ExifInformation) GPSTime() time.Time { return x.gpsTime }

// SetGPSTime sets the time of the GPS fix.
// It is stored in UTC with second precision.
func (x *ExifInformation) SetGPSTime(t time.Time) {
	x.gpsTime = t.UTC().Truncate(time.Second)
	x.mark(AttrGPSTime)
}

func (x *ExifInformation) UserComment() (UndefinedType, string) {
	return x.userCommentType, x.userComment
}

func (x *ExifInformation) SetUserComment(typ UndefinedType, s string) error {
	if !typ.Valid() {
		return errors.Wrapf(ErrNotValid, "user comment type %d", int(typ))
	}
	x.userCommentType, x.userComment = typ, s
	x.mark(AttrUserComment)
	return nil
}
