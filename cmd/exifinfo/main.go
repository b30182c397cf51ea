// Command exifinfo prints and edits the Exif attributes of JPEG files.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"image/jpeg"
	"image/png"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tajtiattila/jpegexif"
	"github.com/tajtiattila/jpegexif/exif"
	jpegc "github.com/tajtiattila/jpegexif/jpeg"
	"github.com/tajtiattila/jpegexif/orient"
)

const usage = `usage: exifinfo [-v] command [flags] file...

commands:
  print   print the attributes that are set
  set     set attributes
  unset   unset attributes
  dump    dump JPEG segments and Exif entries
  thumb   write the thumbnail as PNG
`

var commands = map[string]func(args []string) error{
	"print": printCmd,
	"set":   setCmd,
	"unset": unsetCmd,
	"dump":  dumpCmd,
	"thumb": thumbCmd,
}

func main() {
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	setupLog(*verbose)

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	cmd, ok := commands[flag.Arg(0)]
	if !ok {
		log.Fatal().Str("command", flag.Arg(0)).Msg("unknown command")
	}
	if err := cmd(flag.Args()[1:]); err != nil {
		log.Fatal().Err(err).Msg(flag.Arg(0))
	}
}

func setupLog(verbose bool) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	if s := os.Getenv("EXIFINFO_LOG"); s != "" {
		l, err := zerolog.ParseLevel(s)
		if err != nil {
			log.Warn().Err(err).Msg("EXIFINFO_LOG")
		} else {
			level = l
		}
	}
	zerolog.SetGlobalLevel(level)
}

func printCmd(args []string) error {
	fs := flag.NewFlagSet("print", flag.ExitOnError)
	asJSON := fs.Bool("json", false, "print JSON")
	fs.Parse(args)

	var all []map[string]interface{}
	for _, fn := range fs.Args() {
		info, err := jpegexif.LoadFile(fn)
		if err != nil {
			log.Error().Err(err).Str("file", fn).Msg("load")
			continue
		}
		m := attrMap(info)
		if *asJSON {
			all = append(all, m)
			continue
		}
		fmt.Printf("%s:\n", fn)
		for _, a := range jpegexif.Attrs() {
			if v, ok := m[a.String()]; ok {
				fmt.Printf("  %s: %v\n", a, v)
			}
		}
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(all)
	}
	return nil
}

// attrMap returns the set attributes of info keyed by name.
func attrMap(info *jpegexif.ExifInformation) map[string]interface{} {
	m := make(map[string]interface{})
	for _, a := range jpegexif.Attrs() {
		if !info.IsSet(a) {
			continue
		}
		var v interface{}
		switch a {
		case jpegexif.AttrURI:
			v = info.URI()
		case jpegexif.AttrWidth:
			v = info.Width()
		case jpegexif.AttrHeight:
			v = info.Height()
		case jpegexif.AttrDeviceMaker:
			v = info.DeviceMaker()
		case jpegexif.AttrDeviceModel:
			v = info.DeviceModel()
		case jpegexif.AttrOriginalTime:
			v = info.OriginalTime().Format(time.RFC3339)
		case jpegexif.AttrOrientation:
			v = info.Orientation().String()
		case jpegexif.AttrFNumber:
			v = info.FNumber().Float64()
		case jpegexif.AttrISOSpeedRatings:
			v = info.ISOSpeedRatings()
		case jpegexif.AttrExposureTime:
			v = info.ExposureTime().ExposureTimeString()
		case jpegexif.AttrExposureProgram:
			v = info.ExposureProgram().String()
		case jpegexif.AttrFlash:
			v = info.Flash()
		case jpegexif.AttrFocalLength:
			v = info.FocalLength().Float64()
		case jpegexif.AttrWhiteBalance:
			v = info.WhiteBalance().String()
		case jpegexif.AttrGPSLocation:
			v = locationValue(info.GPSLocation())
		case jpegexif.AttrGPSAltitude:
			v = info.GPSAltitude().Float64()
		case jpegexif.AttrGPSAltitudeRef:
			v = info.GPSAltitudeRef().String()
		case jpegexif.AttrGPSProcessingMethod:
			typ, s := info.GPSProcessingMethod()
			v = typ.String() + ":" + s
		case jpegexif.AttrGPSTime:
			v = info.GPSTime().Format(time.RFC3339)
		case jpegexif.AttrUserComment:
			typ, s := info.UserComment()
			v = typ.String() + ":" + s
		}
		m[a.String()] = v
	}
	return m
}

func locationValue(l *jpegexif.GPSLocation) interface{} {
	if lon, lat, ok := l.Coordinates(); ok {
		return map[string]float64{"longitude": lon, "latitude": lat}
	}
	m := make(map[string]string)
	if p, ok := l.Longitude(); ok {
		m["longitude"] = p.String()
	}
	if r, ok := l.LongitudeRef(); ok {
		m["longitudeRef"] = r.String()
	}
	if p, ok := l.Latitude(); ok {
		m["latitude"] = p.String()
	}
	if r, ok := l.LatitudeRef(); ok {
		m["latitudeRef"] = r.String()
	}
	return m
}

func setCmd(args []string) error {
	fs := flag.NewFlagSet("set", flag.ExitOnError)
	maker := fs.String("make", "", "device maker")
	model := fs.String("model", "", "device model")
	orientation := fs.String("orientation", "", "orientation name such as ROTATE_90")
	lat := fs.Float64("lat", 0, "latitude in decimal degrees")
	lon := fs.Float64("lon", 0, "longitude in decimal degrees")
	alt := fs.Float64("alt", 0, "altitude in meters, negative below sea level")
	comment := fs.String("comment", "", "user comment")
	taken := fs.String("time", "", "original time in RFC 3339 format")
	fs.Parse(args)

	seen := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { seen[f.Name] = true })
	if seen["lat"] != seen["lon"] {
		return errors.New("-lat and -lon must be used together")
	}

	return eachFile(fs.Args(), func(info *jpegexif.ExifInformation) error {
		if seen["make"] {
			info.SetDeviceMaker(*maker)
		}
		if seen["model"] {
			info.SetDeviceModel(*model)
		}
		if seen["orientation"] {
			o, err := jpegexif.ParseOrientation(*orientation)
			if err != nil {
				return err
			}
			if err := info.SetOrientation(o); err != nil {
				return err
			}
		}
		if seen["lat"] {
			info.SetGPSLocation(*lon, *lat)
		}
		if seen["alt"] {
			if err := info.SetGPSAltitudeWithRef(*alt); err != nil {
				return err
			}
		}
		if seen["comment"] {
			if err := info.SetUserComment(jpegexif.UndefinedASCII, *comment); err != nil {
				return err
			}
		}
		if seen["time"] {
			t, err := time.Parse(time.RFC3339, *taken)
			if err != nil {
				return errors.Wrap(err, "time")
			}
			info.SetOriginalTime(t)
		}
		return nil
	})
}

func unsetCmd(args []string) error {
	fs := flag.NewFlagSet("unset", flag.ExitOnError)
	names := fs.String("attr", "", "comma separated attribute names")
	fs.Parse(args)

	var attrs []jpegexif.Attr
	for _, s := range strings.Split(*names, ",") {
		if s = strings.TrimSpace(s); s == "" {
			continue
		}
		a, err := jpegexif.ParseAttr(s)
		if err != nil {
			return err
		}
		attrs = append(attrs, a)
	}
	if len(attrs) == 0 {
		return errors.New("no attributes to unset")
	}

	return eachFile(fs.Args(), func(info *jpegexif.ExifInformation) error {
		for _, a := range attrs {
			info.Unset(a)
		}
		return nil
	})
}

// eachFile loads each file, calls f with its attributes and saves it.
func eachFile(names []string, f func(info *jpegexif.ExifInformation) error) error {
	for _, fn := range names {
		info, err := jpegexif.LoadFile(fn)
		if err != nil {
			return err
		}
		if err := f(info); err != nil {
			return errors.Wrap(err, fn)
		}
		if err := info.SaveToFile(fn); err != nil {
			return err
		}
		log.Debug().Str("file", fn).Msg("saved")
	}
	return nil
}

func dumpCmd(args []string) error {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	fs.Parse(args)

	for _, fn := range fs.Args() {
		p, err := os.ReadFile(jpegexif.PathFromURI(fn))
		if err != nil {
			return err
		}
		c, err := jpegc.Parse(p)
		if err != nil {
			return errors.Wrap(err, fn)
		}
		fmt.Printf("%s:\n", fn)
		c.Fdump(os.Stdout)
		if x := c.Exif(); x != nil {
			exif.Fdump(os.Stdout, x)
		}
	}
	return nil
}

func thumbCmd(args []string) error {
	fs := flag.NewFlagSet("thumb", flag.ExitOnError)
	out := fs.String("o", "thumb.png", "output PNG file")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return errors.New("thumb needs exactly one file")
	}
	fn := fs.Arg(0)
	p, err := os.ReadFile(jpegexif.PathFromURI(fn))
	if err != nil {
		return err
	}
	t, err := jpegexif.ThumbnailBytes(p)
	if err != nil {
		return errors.Wrap(err, fn)
	}
	im, err := jpeg.Decode(bytes.NewReader(t))
	if err != nil {
		return errors.Wrap(err, "decode thumbnail")
	}

	if info, err := jpegexif.Load(p); err == nil && info.IsSet(jpegexif.AttrOrientation) {
		im = orient.Orient(im, info.Orientation())
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, im); err != nil {
		return err
	}
	return os.WriteFile(*out, buf.Bytes(), 0644)
}
