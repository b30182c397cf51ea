package jpegexif

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/tajtiattila/jpegexif/exif"
	"github.com/tajtiattila/jpegexif/exif/exiftag"
)

// gpsVersion is written to new GPS directories.
var gpsVersion = exif.Byte{2, 2, 0, 0}

// exifVersion is written to new Exif directories.
var exifVersion = exif.Undef("0220")

// attrConv converts between an attribute and its tags.
type attrConv struct {
	attr Attr
	tags []uint32

	// read sets the attribute from the tag t.
	read func(info *ExifInformation, t *exif.Tag) error

	// values returns the values for tags, called if attr is set.
	// A nil value removes the tag.
	values func(info *ExifInformation) []exif.Value
}

var attrConvs = []attrConv{
	{
		attr:   AttrWidth,
		tags:   []uint32{exiftag.ImageWidth},
		read:   readUint(func(x *ExifInformation, v uint32) { x.SetWidth(v) }),
		values: func(x *ExifInformation) []exif.Value { return []exif.Value{exif.Long{x.width}} },
	},
	{
		attr:   AttrHeight,
		tags:   []uint32{exiftag.ImageLength},
		read:   readUint(func(x *ExifInformation, v uint32) { x.SetHeight(v) }),
		values: func(x *ExifInformation) []exif.Value { return []exif.Value{exif.Long{x.height}} },
	},
	{
		attr: AttrDeviceMaker,
		tags: []uint32{exiftag.Make},
		read: readAscii(func(x *ExifInformation, s string) error {
			x.SetDeviceMaker(s)
			return nil
		}),
		values: func(x *ExifInformation) []exif.Value { return []exif.Value{exif.Ascii(x.deviceMaker)} },
	},
	{
		attr: AttrDeviceModel,
		tags: []uint32{exiftag.Model},
		read: readAscii(func(x *ExifInformation, s string) error {
			x.SetDeviceModel(s)
			return nil
		}),
		values: func(x *ExifInformation) []exif.Value { return []exif.Value{exif.Ascii(x.deviceModel)} },
	},
	{
		attr: AttrOriginalTime,
		tags: []uint32{exiftag.DateTimeOriginal},
		read: readAscii(func(x *ExifInformation, s string) error {
			t, err := parseDateTime(s)
			if err != nil {
				return err
			}
			x.SetOriginalTime(t)
			return nil
		}),
		values: func(x *ExifInformation) []exif.Value {
			return []exif.Value{exif.Ascii(formatDateTime(x.originalTime))}
		},
	},
	{
		attr: AttrOrientation,
		tags: []uint32{exiftag.Orientation},
		read: readShort(func(x *ExifInformation, v uint16) error {
			return x.SetOrientation(Orientation(v))
		}),
		values: func(x *ExifInformation) []exif.Value { return []exif.Value{exif.Short{uint16(x.orientation)}} },
	},
	{
		attr:   AttrFNumber,
		tags:   []uint32{exiftag.FNumber},
		read:   readRational((*ExifInformation).SetFNumber),
		values: func(x *ExifInformation) []exif.Value { return []exif.Value{ratValue(x.fNumber)} },
	},
	{
		attr: AttrISOSpeedRatings,
		tags: []uint32{exiftag.ISOSpeedRatings},
		read: func(x *ExifInformation, t *exif.Tag) error {
			return x.SetISOSpeedRatings(t.Short())
		},
		values: func(x *ExifInformation) []exif.Value { return []exif.Value{exif.Short(x.isoSpeedRatings)} },
	},
	{
		attr:   AttrExposureTime,
		tags:   []uint32{exiftag.ExposureTime},
		read:   readRational((*ExifInformation).SetExposureTime),
		values: func(x *ExifInformation) []exif.Value { return []exif.Value{ratValue(x.exposureTime)} },
	},
	{
		attr: AttrExposureProgram,
		tags: []uint32{exiftag.ExposureProgram},
		read: readShort(func(x *ExifInformation, v uint16) error {
			return x.SetExposureProgram(ExposureProgram(v))
		}),
		values: func(x *ExifInformation) []exif.Value { return []exif.Value{exif.Short{uint16(x.exposureProgram)}} },
	},
	{
		attr: AttrFlash,
		tags: []uint32{exiftag.Flash},
		read: readShort(func(x *ExifInformation, v uint16) error {
			x.SetFlash(v != 0)
			return nil
		}),
		values: func(x *ExifInformation) []exif.Value {
			var v uint16
			if x.flash {
				v = 1
			}
			return []exif.Value{exif.Short{v}}
		},
	},
	{
		attr:   AttrFocalLength,
		tags:   []uint32{exiftag.FocalLength},
		read:   readRational((*ExifInformation).SetFocalLength),
		values: func(x *ExifInformation) []exif.Value { return []exif.Value{ratValue(x.focalLength)} },
	},
	{
		attr: AttrWhiteBalance,
		tags: []uint32{exiftag.WhiteBalance},
		read: readShort(func(x *ExifInformation, v uint16) error {
			return x.SetWhiteBalance(WhiteBalance(v))
		}),
		values: func(x *ExifInformation) []exif.Value { return []exif.Value{exif.Short{uint16(x.whiteBalance)}} },
	},
	{
		attr:   AttrGPSAltitude,
		tags:   []uint32{exiftag.GPSAltitude},
		read:   readRational((*ExifInformation).SetGPSAltitude),
		values: func(x *ExifInformation) []exif.Value { return []exif.Value{ratValue(x.gpsAltitude)} },
	},
	{
		attr: AttrGPSAltitudeRef,
		tags: []uint32{exiftag.GPSAltitudeRef},
		read: func(x *ExifInformation, t *exif.Tag) error {
			v := t.Byte()
			if len(v) == 0 {
				return errors.New("empty value")
			}
			return x.SetGPSAltitudeRef(AltitudeRef(v[0]))
		},
		values: func(x *ExifInformation) []exif.Value { return []exif.Value{exif.Byte{byte(x.gpsAltitudeRef)}} },
	},
	{
		attr: AttrGPSProcessingMethod,
		tags: []uint32{exiftag.GPSProcessingMethod},
		read: readUndefined((*ExifInformation).SetGPSProcessingMethod),
		values: func(x *ExifInformation) []exif.Value {
			return []exif.Value{exif.Undef(composeUndefined(x.gpsProcessingMethodType, x.gpsProcessingMethod))}
		},
	},
	{
		attr: AttrUserComment,
		tags: []uint32{exiftag.UserComment},
		read: readUndefined((*ExifInformation).SetUserComment),
		values: func(x *ExifInformation) []exif.Value {
			return []exif.Value{exif.Undef(composeUndefined(x.userCommentType, x.userComment))}
		},
	},

	// GPS time and location span several tags,
	// they are read by gpsReader.
	{
		attr: AttrGPSTime,
		tags: []uint32{exiftag.GPSTimeStamp, exiftag.GPSDateStamp},
		values: func(x *ExifInformation) []exif.Value {
			return []exif.Value{
				ratValue(gpsTimeStamp(x.gpsTime)...),
				exif.Ascii(gpsDateStamp(x.gpsTime)),
			}
		},
	},
	{
		attr: AttrGPSLocation,
		tags: []uint32{
			exiftag.GPSLongitude,
			exiftag.GPSLongitudeRef,
			exiftag.GPSLatitude,
			exiftag.GPSLatitudeRef,
		},
		values: func(x *ExifInformation) []exif.Value {
			l := &x.gpsLocation
			v := make([]exif.Value, 4)
			if p, ok := l.Longitude(); ok {
				v[0] = exif.Rational(p.rationals())
			}
			if r, ok := l.LongitudeRef(); ok {
				v[1] = exif.Ascii(string(r))
			}
			if p, ok := l.Latitude(); ok {
				v[2] = exif.Rational(p.rationals())
			}
			if r, ok := l.LatitudeRef(); ok {
				v[3] = exif.Ascii(string(r))
			}
			return v
		},
	},
}

var attrConvByTag = make(map[uint32]*attrConv)

func init() {
	for i := range attrConvs {
		ac := &attrConvs[i]
		if ac.read == nil {
			continue
		}
		for _, t := range ac.tags {
			attrConvByTag[t] = ac
		}
	}
}

func ratValue(v ...Rational) exif.Rational {
	r := make(exif.Rational, 0, 2*len(v))
	for _, x := range v {
		r = append(r, x.Num, x.Den)
	}
	return r
}

func tagRationals(t *exif.Tag) []Rational {
	v := t.Rational()
	r := make([]Rational, len(v)/2)
	for i := range r {
		r[i] = Rational{v[2*i], v[2*i+1]}
	}
	return r
}

func readUint(f func(x *ExifInformation, v uint32)) func(*ExifInformation, *exif.Tag) error {
	return func(x *ExifInformation, t *exif.Tag) error {
		v, ok := t.Uint()
		if !ok {
			return errors.New("empty value")
		}
		f(x, v)
		return nil
	}
}

func readShort(f func(x *ExifInformation, v uint16) error) func(*ExifInformation, *exif.Tag) error {
	return func(x *ExifInformation, t *exif.Tag) error {
		v := t.Short()
		if len(v) == 0 {
			return errors.New("empty value")
		}
		return f(x, v[0])
	}
}

func readAscii(f func(x *ExifInformation, s string) error) func(*ExifInformation, *exif.Tag) error {
	return func(x *ExifInformation, t *exif.Tag) error {
		s, ok := t.Ascii()
		if !ok {
			return errors.New("not ascii")
		}
		return f(x, s)
	}
}

func readRational(f func(x *ExifInformation, r Rational) error) func(*ExifInformation, *exif.Tag) error {
	return func(x *ExifInformation, t *exif.Tag) error {
		v := tagRationals(t)
		if len(v) == 0 {
			return errors.New("empty value")
		}
		return f(x, v[0])
	}
}

func readUndefined(f func(x *ExifInformation, typ UndefinedType, s string) error) func(*ExifInformation, *exif.Tag) error {
	return func(x *ExifInformation, t *exif.Tag) error {
		typ, s, err := decomposeUndefined(t.Undef())
		if err != nil {
			return err
		}
		return f(x, typ, s)
	}
}

// gpsReader collects the GPS tags that make up
// a single attribute.
type gpsReader struct {
	date    string
	hasDate bool
	hms     []Rational
}

func (g *gpsReader) read(x *ExifInformation, key uint32, t *exif.Tag) (bool, error) {
	l := &x.gpsLocation
	switch key {
	case exiftag.GPSLongitude, exiftag.GPSLatitude:
		v := tagRationals(t)
		if len(v) != 3 {
			return true, errors.Errorf("position has %d components", len(v))
		}
		p := GCSPosition{v[0], v[1], v[2]}
		if !p.Valid() {
			return true, errors.Errorf("invalid position %v", p)
		}
		if key == exiftag.GPSLongitude {
			l.SetLongitude(p)
		} else {
			l.SetLatitude(p)
		}

	case exiftag.GPSLongitudeRef:
		s, _ := t.Ascii()
		switch strings.ToUpper(s) {
		case "E":
			l.SetLongitudeRef(East)
		case "W":
			l.SetLongitudeRef(West)
		default:
			return true, errors.Errorf("unknown longitude ref %q", s)
		}

	case exiftag.GPSLatitudeRef:
		s, _ := t.Ascii()
		switch strings.ToUpper(s) {
		case "N":
			l.SetLatitudeRef(North)
		case "S":
			l.SetLatitudeRef(South)
		default:
			return true, errors.Errorf("unknown latitude ref %q", s)
		}

	case exiftag.GPSTimeStamp:
		g.hms = tagRationals(t)

	case exiftag.GPSDateStamp:
		g.date, g.hasDate = t.Ascii()

	default:
		return false, nil
	}
	return true, nil
}

func (g *gpsReader) finish(x *ExifInformation) {
	if !g.hasDate || g.hms == nil {
		if g.hasDate || g.hms != nil {
			log.Debug().Msg("exif: gps time needs both date and time stamps")
		}
		return
	}
	t, err := parseGPSDateTime(g.date, g.hms)
	if err != nil {
		log.Warn().Err(err).Msg("exif: skipping gps time")
		return
	}
	x.SetGPSTime(t)
}

// FromExif returns the attributes found in x.
//
// Only IFD0 and the Exif and GPS directories are used.
// Entries that can't be read are skipped with a warning.
func FromExif(x *exif.Exif) *ExifInformation {
	info := NewExifInformation()
	var gps gpsReader

	for _, d := range []struct {
		dir uint32
		ifd exif.Dir
	}{
		{exiftag.Tiff, x.IFD0},
		{exiftag.Exif, x.Exif},
		{exiftag.GPS, x.GPS},
	} {
		for _, e := range d.ifd {
			key := d.dir | uint32(e.Tag)
			tt, err := exif.Lookup(key)
			if err != nil {
				continue
			}

			t := &exif.Tag{ByteOrder: x.ByteOrder, E: e}
			if !t.Valid() || !tt.Accepts(e.Type) {
				log.Warn().
					Stringer("tag", exiftag.Id(key)).
					Uint16("type", e.Type).
					Uint32("count", e.Count).
					Msg("exif: skipping entry with unexpected format")
				continue
			}

			if ok, err := gps.read(info, key, t); ok {
				if err != nil {
					log.Warn().Err(err).Stringer("tag", exiftag.Id(key)).Msg("exif: skipping entry")
				}
				continue
			}

			ac, ok := attrConvByTag[key]
			if !ok {
				continue
			}
			if err := ac.read(info, t); err != nil {
				log.Warn().Err(err).Stringer("tag", exiftag.Id(key)).Msg("exif: skipping entry")
			}
		}
	}

	gps.finish(info)
	return info
}

// ApplyTo stores the attributes of info in x.
//
// Tags of set attributes are created or updated,
// tags of unset attributes are removed. Other tags in x
// are left unchanged. The uri is not stored.
func (info *ExifInformation) ApplyTo(x *exif.Exif) error {
	for i := range attrConvs {
		ac := &attrConvs[i]

		var vals []exif.Value
		if info.IsSet(ac.attr) {
			vals = ac.values(info)
		} else {
			vals = make([]exif.Value, len(ac.tags))
		}

		for j, tag := range ac.tags {
			if err := putTag(x, tag, vals[j]); err != nil {
				return errors.Wrapf(err, "can't store %s", ac.attr)
			}
		}
	}

	if len(x.Exif) != 0 && x.Tag(exiftag.ExifVersion) == nil {
		if err := x.Put(exiftag.ExifVersion, exifVersion); err != nil {
			return err
		}
	}
	if len(x.GPS) != 0 && x.Tag(exiftag.GPSVersionID) == nil {
		if err := x.Put(exiftag.GPSVersionID, gpsVersion); err != nil {
			return err
		}
	}
	return nil
}

func putTag(x *exif.Exif, tag uint32, v exif.Value) error {
	if v == nil {
		if x.Tag(tag) != nil {
			log.Debug().Stringer("tag", exiftag.Id(tag)).Msg("exif: removing tag")
		}
		return x.Delete(tag)
	}
	log.Debug().Stringer("tag", exiftag.Id(tag)).Msg("exif: storing tag")
	return x.Put(tag, v)
}
