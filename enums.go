package jpegexif

import (
	"strings"

	"github.com/pkg/errors"
)

// Orientation is the Exif image orientation.
type Orientation int

// Orientation values
const (
	OrientationNotValid Orientation = -1

	OrientationNormal         Orientation = 1
	OrientationFlipHorizontal Orientation = 2
	OrientationRotate180      Orientation = 3
	OrientationFlipVertical   Orientation = 4
	OrientationTranspose      Orientation = 5
	OrientationRotate90       Orientation = 6
	OrientationTransverse     Orientation = 7
	OrientationRotate270      Orientation = 8
)

var orientationNames = []string{
	OrientationNormal:         "NORMAL",
	OrientationFlipHorizontal: "FLIP_HORIZONTAL",
	OrientationRotate180:      "ROTATE_180",
	OrientationFlipVertical:   "FLIP_VERTICAL",
	OrientationTranspose:      "TRANSPOSE",
	OrientationRotate90:       "ROTATE_90",
	OrientationTransverse:     "TRANSVERSE",
	OrientationRotate270:      "ROTATE_270",
}

// Valid reports if o is one of the eight Exif orientations.
func (o Orientation) Valid() bool {
	return OrientationNormal <= o && o <= OrientationRotate270
}

func (o Orientation) String() string {
	if !o.Valid() {
		return ""
	}
	return orientationNames[o]
}

// ParseOrientation parses the name of an orientation.
func ParseOrientation(s string) (Orientation, error) {
	i, err := parseName(orientationNames, s)
	return Orientation(i), errors.Wrap(err, "orientation")
}

// ExposureProgram is the program used by the camera
// to set the exposure.
type ExposureProgram int

// ExposureProgram values
const (
	ExposureProgramNotValid ExposureProgram = -1

	ExposureProgramNotDefined       ExposureProgram = 0
	ExposureProgramManual           ExposureProgram = 1
	ExposureProgramNormal           ExposureProgram = 2
	ExposureProgramAperturePriority ExposureProgram = 3
	ExposureProgramShutterPriority  ExposureProgram = 4
	ExposureProgramCreative         ExposureProgram = 5
	ExposureProgramAction           ExposureProgram = 6
	ExposureProgramPortrait         ExposureProgram = 7
	ExposureProgramLandscape        ExposureProgram = 8
)

var exposureProgramNames = []string{
	ExposureProgramNotDefined:       "NOT_DEFINED",
	ExposureProgramManual:           "MANUAL",
	ExposureProgramNormal:           "NORMAL",
	ExposureProgramAperturePriority: "APERTURE_PRIORITY",
	ExposureProgramShutterPriority:  "SHUTTER_PRIORITY",
	ExposureProgramCreative:         "CREATIVE_PROGRAM",
	ExposureProgramAction:           "ACTION_PROGRAM",
	ExposureProgramPortrait:         "PORTRAIT_MODE",
	ExposureProgramLandscape:        "LANDSCAPE_MODE",
}

func (p ExposureProgram) Valid() bool {
	return ExposureProgramNotDefined <= p && p <= ExposureProgramLandscape
}

func (p ExposureProgram) String() string {
	if !p.Valid() {
		return ""
	}
	return exposureProgramNames[p]
}

// ParseExposureProgram parses the name of an exposure program.
func ParseExposureProgram(s string) (ExposureProgram, error) {
	i, err := parseName(exposureProgramNames, s)
	return ExposureProgram(i), errors.Wrap(err, "exposure program")
}

// WhiteBalance is the white balance mode.
type WhiteBalance int

// WhiteBalance values
const (
	WhiteBalanceNotValid WhiteBalance = -1
	WhiteBalanceAuto     WhiteBalance = 0
	WhiteBalanceManual   WhiteBalance = 1
)

var whiteBalanceNames = []string{
	WhiteBalanceAuto:   "AUTO",
	WhiteBalanceManual: "MANUAL",
}

func (w WhiteBalance) Valid() bool {
	return w == WhiteBalanceAuto || w == WhiteBalanceManual
}

func (w WhiteBalance) String() string {
	if !w.Valid() {
		return ""
	}
	return whiteBalanceNames[w]
}

// ParseWhiteBalance parses the name of a white balance mode.
func ParseWhiteBalance(s string) (WhiteBalance, error) {
	i, err := parseName(whiteBalanceNames, s)
	return WhiteBalance(i), errors.Wrap(err, "white balance")
}

// AltitudeRef tells if the GPS altitude is above or below sea level.
type AltitudeRef int

// AltitudeRef values
const (
	AboveSeaLevel AltitudeRef = 0
	BelowSeaLevel AltitudeRef = 1
)

func (r AltitudeRef) Valid() bool {
	return r == AboveSeaLevel || r == BelowSeaLevel
}

func (r AltitudeRef) String() string {
	switch r {
	case AboveSeaLevel:
		return "ABOVE_SEA_LEVEL"
	case BelowSeaLevel:
		return "BELOW_SEA_LEVEL"
	}
	return ""
}

// UndefinedType is the character code of strings
// stored in Exif tags of undefined type.
type UndefinedType int

// UndefinedType values
const (
	UndefinedASCII UndefinedType = iota
	UndefinedJIS
	UndefinedUnicode
	UndefinedUndefined
)

// undefinedTypeTags are the 8-byte character code prefixes.
var undefinedTypeTags = [...]string{
	UndefinedASCII:     "ASCII\x00\x00\x00",
	UndefinedJIS:       "JIS\x00\x00\x00\x00\x00",
	UndefinedUnicode:   "UNICODE\x00",
	UndefinedUndefined: "\x00\x00\x00\x00\x00\x00\x00\x00",
}

var undefinedTypeNames = []string{
	UndefinedASCII:     "ASCII",
	UndefinedJIS:       "JIS",
	UndefinedUnicode:   "UNICODE",
	UndefinedUndefined: "UNDEFINED",
}

func (u UndefinedType) Valid() bool {
	return UndefinedASCII <= u && u <= UndefinedUndefined
}

func (u UndefinedType) String() string {
	if !u.Valid() {
		return ""
	}
	return undefinedTypeNames[u]
}

// ParseUndefinedType parses the name of a character code.
func ParseUndefinedType(s string) (UndefinedType, error) {
	i, err := parseName(undefinedTypeNames, s)
	return UndefinedType(i), errors.Wrap(err, "character code")
}

// composeUndefined returns the value of an undefined string tag.
func composeUndefined(typ UndefinedType, value string) []byte {
	p := make([]byte, 0, 8+len(value))
	p = append(p, undefinedTypeTags[typ]...)
	return append(p, value...)
}

// decomposeUndefined splits the value of an undefined string tag
// into its character code and value.
// An unknown character code is reported as UndefinedUndefined.
func decomposeUndefined(p []byte) (UndefinedType, string, error) {
	if len(p) < 8 {
		return 0, "", errors.Errorf("undefined string too short (%d bytes)", len(p))
	}
	for i, tag := range undefinedTypeTags {
		if string(p[:8]) == tag {
			return UndefinedType(i), string(p[8:]), nil
		}
	}
	return UndefinedUndefined, string(p[8:]), nil
}

func parseName(names []string, s string) (int, error) {
	for i, n := range names {
		if n != "" && strings.EqualFold(n, s) {
			return i, nil
		}
	}
	return -1, errors.Wrapf(ErrNotValid, "unknown name %q", s)
}
