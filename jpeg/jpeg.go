// Package jpeg scans JPEG files into segments and
// rewrites them with new Exif data.
package jpeg

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// Markers
const (
	SOF0 = 0xc0 // baseline DCT
	SOF2 = 0xc2 // progressive DCT
	DHT  = 0xc4 // define Huffman table
	SOI  = 0xd8 // start of image
	EOI  = 0xd9 // end of image
	SOS  = 0xda // start of scan
	DQT  = 0xdb // define quantization table
	DRI  = 0xdd // define restart interval
	APP0 = 0xe0 // JFIF
	APP1 = 0xe1 // Exif, XMP
	COM  = 0xfe // comment
)

// MarkerName returns a short name for marker m.
func MarkerName(m byte) string {
	switch {
	case m == DHT:
		return "DHT"
	case m == 0xc8:
		return "JPG"
	case m == 0xcc:
		return "DAC"
	case 0xc0 <= m && m <= 0xcf:
		return fmt.Sprintf("SOF%d", m-0xc0)
	case 0xd0 <= m && m <= 0xd7:
		return fmt.Sprintf("RST%d", m-0xd0)
	case m == SOI:
		return "SOI"
	case m == EOI:
		return "EOI"
	case m == SOS:
		return "SOS"
	case m == DQT:
		return "DQT"
	case m == DRI:
		return "DRI"
	case 0xe0 <= m && m <= 0xef:
		return fmt.Sprintf("APP%d", m-0xe0)
	case m == COM:
		return "COM"
	}
	return fmt.Sprintf("%#02x", m)
}

// hasLength reports if a segment with marker m has a length field.
func hasLength(m byte) bool {
	return m != SOI && m != EOI
}

// MaxExifSize is the maximum size of the Exif payload of an APP1
// segment including the Exif prefix, since the 16-bit segment
// length includes its own two bytes.
const MaxExifSize = 65535 - 2

// ErrNoSOI is wrapped in the FormatError returned when
// the first segment is not the start of image.
var ErrNoSOI = errors.New("jpeg: missing start of image marker")

// FormatError reports a structural problem at a byte offset.
type FormatError struct {
	Offset int
	Msg    string
	Err    error // underlying error, if any
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("jpeg: malformed file at offset %d: %s", e.Offset, e.Msg)
}

func (e *FormatError) Unwrap() error { return e.Err }

func formatError(offset int, format string, args ...interface{}) error {
	return &FormatError{Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

// ExifTooLargeError is returned if the encoded Exif
// does not fit into an APP1 segment.
type ExifTooLargeError struct {
	Size int // size of the Exif payload
}

func (e *ExifTooLargeError) Error() string {
	return fmt.Sprintf("jpeg: Exif size %d exceeds maximum %d", e.Size, MaxExifSize)
}

// WriteChunk writes a segment with marker and a length field
// followed by chunkdata.
func WriteChunk(w io.Writer, marker byte, chunkdata []byte) error {
	n := len(chunkdata) + 2
	if n > 65535 {
		return errors.Errorf("jpeg: %s segment length %d too long", MarkerName(marker), n)
	}

	ew := errw{w: w}
	ew.write([]byte{0xff, marker, byte(n >> 8), byte(n)})
	ew.write(chunkdata)
	return ew.err
}

type errw struct {
	w   io.Writer
	n   int64
	err error
}

func (w *errw) write(p []byte) {
	if w.err != nil || len(p) == 0 {
		return
	}
	var n int
	n, w.err = w.w.Write(p)
	w.n += int64(n)
	if w.err == nil && n != len(p) {
		w.err = io.ErrShortWrite
	}
}
