package exif

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/tajtiattila/jpegexif/exif/exiftag"
)

// Fdump writes the entries of all directories of x to w.
func Fdump(w io.Writer, x *Exif) {
	f := Formatter{x.ByteOrder}
	for _, d := range []struct {
		name string
		dir  uint32
		d    Dir
	}{
		{"IFD0", exiftag.Tiff, x.IFD0},
		{"IFD1", exiftag.Tiff, x.IFD1},
		{"Exif", exiftag.Exif, x.Exif},
		{"GPS", exiftag.GPS, x.GPS},
		{"Interop", exiftag.Interop, x.Interop},
	} {
		f.dumpDir(w, d.name, d.dir, d.d)
	}

	if x.Thumb != nil {
		fmt.Fprintf(w, "thumb: %v bytes\n", len(x.Thumb))
	}
}

// Sdump returns the output of Fdump as a string.
func Sdump(x *Exif) string {
	buf := new(bytes.Buffer)
	Fdump(buf, x)
	return buf.String()
}

func (f Formatter) dumpDir(w io.Writer, name string, dir uint32, d Dir) {
	if len(d) == 0 {
		return
	}
	fmt.Fprintln(w, name+":")
	for _, e := range d {
		id := exiftag.Id(dir | uint32(e.Tag))
		fmt.Fprintf(w, "  %04x %-20.20s %s: %s\n", e.Tag, id, typeCount(e.Type, e.Count),
			f.Value(e.Type, e.Count, e.Value))
	}
}

func typeCount(typ uint16, count uint32) string {
	var n string
	switch typ {
	case TypeByte:
		n = "b"
	case TypeAscii:
		n = "a"
	case TypeShort:
		n = "s"
	case TypeLong:
		n = "l"
	case TypeRational:
		n = "r"
	case TypeUndef:
		n = "u"
	case TypeSLong:
		n = "L"
	case TypeSRational:
		n = "R"
	case TypeSByte:
		n = "B"
	case TypeSShort:
		n = "S"
	case TypeFloat, TypeDouble:
		n = "f"
	default:
		n = "?"
	}
	return fmt.Sprintf("%d%s", count, n)
}

// Formatter formats entry values using its byte order.
type Formatter struct {
	binary.ByteOrder
}

// RawValue formats p as hex bytes grouped by the size of typ.
// Bytes missing from p are shown as dashes.
func (f Formatter) RawValue(typ uint16, count uint32, p []byte) string {
	g := 1
	switch typ {
	case TypeShort, TypeSShort:
		g = 2
	case TypeLong, TypeSLong, TypeRational, TypeSRational, TypeFloat, TypeDouble:
		g = 4
	}

	l := typeSize(typ, count)
	if l < len(p) {
		l = len(p)
	}
	buf := new(bytes.Buffer)
	buf.WriteRune('[')
	for i := 0; i < l; i++ {
		if i != 0 && i%g == 0 {
			buf.WriteRune(' ')
		}
		if i < len(p) {
			fmt.Fprintf(buf, "%02x", p[i])
		} else {
			buf.WriteString("--")
		}
	}
	buf.WriteRune(']')
	return buf.String()
}

// Value formats the value p of an entry.
func (f Formatter) Value(typ uint16, count uint32, p []byte) string {
	n := typeSize(typ, count)
	if n < 0 || len(p) != n {
		// show raw value for invalid Entry
		return f.RawValue(typ, count, p)
	}

	cnt := int(count)
	var values []interface{}

	switch typ {
	case TypeByte, TypeUndef, TypeSByte:
		return fmt.Sprintf("[% x]", p)

	case TypeAscii:
		if cnt < 1 || p[cnt-1] != 0 {
			// Ascii too short or without NUL
			return f.RawValue(typ, count, p)
		}
		return fmt.Sprintf("%q", p[:cnt-1])

	case TypeRational, TypeSRational:
		for i := 0; i < cnt; i++ {
			num := f.Uint32(p[8*i:])
			den := f.Uint32(p[8*i+4:])
			if typ == TypeRational {
				values = append(values, fmt.Sprintf("%d/%d", num, den))
			} else {
				values = append(values, fmt.Sprintf("%d/%d", int32(num), int32(den)))
			}
		}

	case TypeShort, TypeSShort:
		for i := 0; i < cnt; i++ {
			v := f.Uint16(p[2*i:])
			if typ == TypeSShort {
				values = append(values, int16(v))
			} else {
				values = append(values, v)
			}
		}

	case TypeLong, TypeSLong, TypeFloat:
		for i := 0; i < cnt; i++ {
			v := f.Uint32(p[4*i:])
			switch typ {
			case TypeSLong:
				values = append(values, int32(v))
			case TypeFloat:
				values = append(values, math.Float32frombits(v))
			default:
				values = append(values, v)
			}
		}

	case TypeDouble:
		for i := 0; i < cnt; i++ {
			values = append(values, math.Float64frombits(f.Uint64(p[8*i:])))
		}
	}

	buf := new(bytes.Buffer)
	buf.WriteRune('[')
	for i, e := range values {
		if i != 0 {
			buf.WriteRune(' ')
		}
		fmt.Fprint(buf, e)
	}
	buf.WriteRune(']')
	return buf.String()
}
